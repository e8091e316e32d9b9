package kpi

import "time"

// TimeRange is a closed set of relative windows resolved against "now".
type TimeRange string

const (
	TimeRangeWeek    TimeRange = "week"
	TimeRangeMonth   TimeRange = "month"
	TimeRangeQuarter TimeRange = "quarter"
	TimeRangeYear    TimeRange = "year"
)

// IsValid reports whether the range is one of the known literals.
func (r TimeRange) IsValid() bool {
	switch r {
	case TimeRangeWeek, TimeRangeMonth, TimeRangeQuarter, TimeRangeYear:
		return true
	default:
		return false
	}
}

// ParseTimeRange normalizes a range string. Unknown literals resolve to
// the zero value: the filter policy is permissive, not strict.
func ParseTimeRange(value string) (TimeRange, bool) {
	r := TimeRange(value)
	if r.IsValid() {
		return r, true
	}
	return "", false
}

// Filter selects which assets and which historical records a KPI view
// considers. All fields are optional; a zero Filter is unrestricted.
type Filter struct {
	Location  string
	AssetType string
	StartDate *time.Time
	EndDate   *time.Time
	TimeRange TimeRange
	Limit     int
}

const maxLimit = 100

// LimitOrDefault resolves the requested result cap. Values outside
// 1..100 silently fall back to the view default.
func (f Filter) LimitOrDefault(viewDefault int) int {
	if f.Limit >= 1 && f.Limit <= maxLimit {
		return f.Limit
	}
	return viewDefault
}
