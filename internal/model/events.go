package model

import "time"

// EventType classifies a row of the annotated series.
type EventType string

const (
	NoEvent EventType = "no_event"
	DCUp    EventType = "dc_up"
	DCDown  EventType = "dc_down"
)

// AnnotatedPoint is one row of the detector output: the original observation
// plus the DC classification and derived fields. ExtremePrice and ChangePct
// are sentinel zeros on non-event rows; callers filter on EventType and never
// treat the sentinel as a real price.
type AnnotatedPoint struct {
	Time         time.Time
	Price        float64
	EventType    EventType
	ExtremePrice float64
	ChangePct    float64
	EventPeriod  int // rows since the most recent confirmed event, 0 on event rows
}

// AnnotatedSeries is the detector output: the price series extended
// row-for-row with event annotations. Produced by the detector, consumed
// read-only by analytics and the backtest.
type AnnotatedSeries struct {
	Symbol    string
	Threshold float64
	Points    []AnnotatedPoint
}

// Len returns the number of rows.
func (s AnnotatedSeries) Len() int { return len(s.Points) }

// Events returns the confirmed-event rows in order. The returned slice
// strictly alternates between DCUp and DCDown by construction.
func (s AnnotatedSeries) Events() []AnnotatedPoint {
	var events []AnnotatedPoint
	for _, p := range s.Points {
		if p.EventType != NoEvent {
			events = append(events, p)
		}
	}
	return events
}
