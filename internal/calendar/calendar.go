// Package calendar derives date-bucketed views over the current
// carpool list.  Day equality compares year, month and day in UTC;
// that reference is fixed here, once, for the whole system so list and
// calendar views can never disagree about which day a departure falls
// on.  Everything in this package is a pure function recomputed from
// the trip list on every call — there is no cache to keep consistent.
package calendar

import (
	"sort"
	"time"

	"github.com/vanklomk/zoo-school-carpool/internal/model"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// SameDay reports whether two instants fall on the same UTC calendar
// day regardless of their time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// CarpoolsOnDate returns the subsequence of carpools whose departure
// falls on the same calendar day as date, preserving the input order.
func CarpoolsOnDate(date time.Time, carpools []model.Carpool) []model.Carpool {
	out := make([]model.Carpool, 0)
	for _, cp := range carpools {
		if SameDay(cp.DepartureTime, date) {
			out = append(out, cp)
		}
	}
	return out
}

// DatesWithCarpools returns the distinct calendar days that have at
// least one carpool, formatted as YYYY-MM-DD and sorted ascending.
// It is used purely for highlighting days in a calendar view.
func DatesWithCarpools(carpools []model.Carpool) []string {
	seen := make(map[string]struct{}, len(carpools))
	out := make([]string, 0, len(carpools))
	for _, cp := range carpools {
		day := cp.DepartureTime.UTC().Format(DateLayout)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			out = append(out, day)
		}
	}
	sort.Strings(out)
	return out
}
