package types

import (
	"sort"
	"time"
)

// Bar is a single daily observation for one instrument.
type Bar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Series is a date-ordered sequence of daily bars for a single symbol.
// Bars are strictly increasing by date once Sort has been called; the
// fetch layer sorts every series it returns.
type Series struct {
	Symbol string
	Bars   []Bar
}

// Empty reports whether the series contains no bars.
func (s Series) Empty() bool {
	return len(s.Bars) == 0
}

// Sort orders the bars by ascending date.
func (s *Series) Sort() {
	sort.Slice(s.Bars, func(i, j int) bool {
		return s.Bars[i].Time.Before(s.Bars[j].Time)
	})
}

// First returns the earliest bar. The series must not be empty.
func (s Series) First() Bar {
	return s.Bars[0]
}

// Last returns the latest bar. The series must not be empty.
func (s Series) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}
