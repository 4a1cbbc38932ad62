package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the carpools table when it does not exist yet.
// The CHECK constraints mirror the reservation invariants: seats stay
// between zero and the capacity recorded at creation.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS carpools (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		driver_name     VARCHAR(255)    NOT NULL,
		destination     VARCHAR(255)    NOT NULL,
		departure_time  DATETIME        NOT NULL,
		available_seats INT             NOT NULL,
		seat_capacity   INT             NOT NULL,
		notes           TEXT            NULL,
		created_at      TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_carpools_departure (departure_time, id),
		CONSTRAINT chk_seats_nonnegative CHECK (available_seats >= 0),
		CONSTRAINT chk_seats_capacity   CHECK (available_seats <= seat_capacity)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := db.ExecContext(ctx, ddl)
	return err
}
