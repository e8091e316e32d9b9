package kpi

import "time"

// Window bounds which historical records count toward a KPI view. The
// same bounds apply to work-order report times and maintenance-record
// completion times. A nil bound means unrestricted on that side.
type Window struct {
	GTE *time.Time
	LTE *time.Time
}

// ResolveWindow turns a filter into concrete date bounds.
//
// An explicit start date always wins over a named range. A named range
// is resolved against now with calendar arithmetic (one month back is a
// calendar month, not thirty days). The end date, when present, is the
// upper bound regardless of how the lower bound was chosen.
func ResolveWindow(f Filter, now time.Time) Window {
	var w Window
	switch {
	case f.StartDate != nil:
		start := *f.StartDate
		w.GTE = &start
	case f.TimeRange.IsValid():
		lower := lowerBoundFor(f.TimeRange, now)
		w.GTE = &lower
	}
	if f.EndDate != nil {
		end := *f.EndDate
		w.LTE = &end
	}
	return w
}

func lowerBoundFor(r TimeRange, now time.Time) time.Time {
	switch r {
	case TimeRangeWeek:
		return now.AddDate(0, 0, -7)
	case TimeRangeMonth:
		return now.AddDate(0, -1, 0)
	case TimeRangeQuarter:
		return now.AddDate(0, -3, 0)
	case TimeRangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}

// Contains reports whether an instant falls inside the window. Both
// bounds are inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.GTE != nil && t.Before(*w.GTE) {
		return false
	}
	if w.LTE != nil && t.After(*w.LTE) {
		return false
	}
	return true
}

// IsUnbounded reports whether the window restricts nothing.
func (w Window) IsUnbounded() bool {
	return w.GTE == nil && w.LTE == nil
}
