package report

import (
	"fmt"
	"time"

	"github.com/cleared-dev/tracker/internal/model"
)

// Preset names one of the canned date-range reports.
type Preset int

const (
	MonthToDate Preset = iota
	PreviousMonth
	YearToDate
	PreviousYear
)

// Presets lists every Preset in menu order.
var Presets = []Preset{MonthToDate, PreviousMonth, YearToDate, PreviousYear}

func (p Preset) String() string {
	switch p {
	case MonthToDate:
		return "Month To Date"
	case PreviousMonth:
		return "Previous Month"
	case YearToDate:
		return "Year To Date"
	case PreviousYear:
		return "Previous Year"
	default:
		panic(fmt.Sprintf("unknown preset %d", p))
	}
}

// Range is a pair of calendar dates.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) String() string {
	return r.Start.Format(model.DateLayout) + " .. " + r.End.Format(model.DateLayout)
}

// Range computes the preset's bounds relative to now.
//
//	MonthToDate:   first of this month .. today
//	PreviousMonth: first .. last day of last month
//	YearToDate:    January 1 .. today
//	PreviousYear:  January 1 .. December 31 of last year
func (p Preset) Range(now time.Time) Range {
	today := model.DateOf(now)
	y, m, _ := today.Date()

	switch p {
	case MonthToDate:
		return Range{Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), End: today}
	case PreviousMonth:
		first := time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC)
		return Range{Start: first, End: first.AddDate(0, 1, -1)}
	case YearToDate:
		return Range{Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), End: today}
	case PreviousYear:
		return Range{
			Start: time.Date(y-1, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y-1, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	default:
		panic(fmt.Sprintf("unknown preset %d", p))
	}
}

// Run applies the preset to txns through ByDateRange, so both bounds are
// exclusive.
func (p Preset) Run(txns []model.Transaction, now time.Time) []model.Transaction {
	r := p.Range(now)
	return ByDateRange(txns, r.Start, r.End)
}
