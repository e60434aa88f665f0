package study

import (
	"strings"
	"time"
)

// Offset labels. They double as the suffix of the table column names, e.g.
// VIX_2_months_before.
const (
	TwoMonthsBefore = "2_months_before"
	OneMonthBefore  = "1_month_before"
	OneMonthAfter   = "1_month_after"
	TwoMonthsAfter  = "2_months_after"
)

// OffsetOrder fixes the column order of every report artifact.
var OffsetOrder = []string{TwoMonthsBefore, OneMonthBefore, OneMonthAfter, TwoMonthsAfter}

// OffsetMonths maps each offset label to its signed displacement in whole
// calendar months.
var OffsetMonths = map[string]int{
	TwoMonthsBefore: -2,
	OneMonthBefore:  -1,
	OneMonthAfter:   1,
	TwoMonthsAfter:  2,
}

// AddMonths shifts d by the given number of calendar months. The day of
// month is preserved, clamped to the last day of the target month when that
// month is shorter. This deliberately avoids time.AddDate, which normalizes
// Nov 31 into Dec 1 instead of clamping to Nov 30.
func AddMonths(d time.Time, months int) time.Time {
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, months, 0)

	day := d.Day()
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, d.Location())
}

// daysIn returns the number of days in the given month. Day zero of the
// following month is the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RelativeDates computes the target calendar date for every offset label
// around the anchor date.
func RelativeDates(anchor time.Time) map[string]time.Time {
	dates := make(map[string]time.Time, len(OffsetMonths))
	for label, months := range OffsetMonths {
		dates[label] = AddMonths(anchor, months)
	}

	return dates
}

// ColumnName builds the composite column key for an instrument prefix and
// offset label.
func ColumnName(prefix, label string) string {
	return prefix + "_" + label
}

// ChangeColumn is the derived percentage-change column key for an
// instrument prefix.
func ChangeColumn(prefix string) string {
	return prefix + "_change"
}

// ColumnPrefix normalizes a ticker into a column prefix. Index symbols carry
// a leading caret on the wire that has no place in a column name.
func ColumnPrefix(ticker string) string {
	return strings.TrimPrefix(ticker, "^")
}
