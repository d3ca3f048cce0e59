package core

import (
	"sort"
	"time"
)

// FilterByRange returns the transactions whose date falls inside the rolling
// window selected by rng, anchored at ref. Window bounds reproduce the
// user-facing semantics exactly:
//
//	today:  [start of ref's day, start of ref's day + 24h)
//	7days:  [ref - 7 calendar days, ref]   inclusive both ends
//	30days: [ref - 30 calendar days, ref]  inclusive both ends
//	1year:  [ref - 1 calendar year, ref]   inclusive both ends
//
// Subtraction is calendar arithmetic (AddDate), so month lengths and leap
// years behave the way a user expects "30 days ago" to behave. An unknown
// range tag passes everything through.
func FilterByRange(txs []Transaction, rng TimeRange, ref time.Time) []Transaction {
	var inWindow func(time.Time) bool

	switch rng {
	case RangeToday:
		start := StartOfDay(ref)
		end := start.Add(24 * time.Hour)
		inWindow = func(d time.Time) bool {
			return !d.Before(start) && d.Before(end)
		}
	case Range7Days:
		start := ref.AddDate(0, 0, -7)
		inWindow = func(d time.Time) bool {
			return !d.Before(start) && !d.After(ref)
		}
	case Range30Days:
		start := ref.AddDate(0, 0, -30)
		inWindow = func(d time.Time) bool {
			return !d.Before(start) && !d.After(ref)
		}
	case Range1Year:
		start := ref.AddDate(-1, 0, 0)
		inWindow = func(d time.Time) bool {
			return !d.Before(start) && !d.After(ref)
		}
	default:
		// Unknown tag: pass-through rather than a validation error.
		inWindow = func(time.Time) bool { return true }
	}

	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if inWindow(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDay returns the transactions dated on the same calendar day as day,
// independent of time-of-day.
func FilterByDay(txs []Transaction, day time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if SameDay(t.Date, day) {
			out = append(out, t)
		}
	}
	return out
}

// SameDay reports whether two instants fall on the same local calendar day.
// Only year, month and day-of-month are compared.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SortByDateDesc orders txs most recent first, in place. The sort is stable:
// entries with equal timestamps keep their original relative order.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}

// View describes what the dashboard is showing: either a rolling range
// anchored to now, or a single historical calendar date.
type View struct {
	Range TimeRange
	Date  time.Time
}

// IsToday reports whether the view date is the current calendar day, which
// switches the dashboard between range filtering and historical day lookup.
func (v View) IsToday(now time.Time) bool {
	return v.Date.IsZero() || SameDay(v.Date, now)
}

// Display applies the view-mode switch to the full transaction collection and
// returns the ordered subset together with its totals. Pure function; callers
// inject now for reproducible results.
func Display(txs []Transaction, v View, now time.Time) ([]Transaction, Summary) {
	var selected []Transaction
	if v.IsToday(now) {
		selected = FilterByRange(txs, v.Range, now)
	} else {
		selected = FilterByDay(txs, v.Date)
	}
	SortByDateDesc(selected)
	return selected, Summarize(selected)
}
