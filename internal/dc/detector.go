// Package dc implements the directional-change event detector: a two-mode
// extremum-tracking automaton that classifies a price series into
// alternating upward and downward threshold-confirmation events.
package dc

import (
	"fmt"

	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
)

type mode int

const (
	modeUp mode = iota
	modeDown
)

// state is the automaton state threaded through the forward scan.
type state struct {
	mode    mode
	extreme float64
}

// Detect classifies the series into alternating directional-change events
// under the given threshold and returns the annotated series, event periods
// included. The detector is a pure function: two calls on the same input
// produce identical output.
//
// A series with fewer than two points is not an error; it yields an
// all-no_event result with a warning. Malformed input (non-monotonic or
// duplicate timestamps, non-positive prices) is rejected before the state
// machine runs.
func Detect(series model.PriceSeries, threshold float64, log logging.Logger) (model.AnnotatedSeries, error) {
	if log == nil {
		log = logging.Nop{}
	}
	if threshold <= 0 || threshold >= 1 {
		return model.AnnotatedSeries{}, fmt.Errorf("threshold must be in (0, 1), got %v", threshold)
	}
	if err := series.Validate(); err != nil {
		return model.AnnotatedSeries{}, fmt.Errorf("invalid price series: %w", err)
	}

	log.Infof("starting DC transformation - symbol: %s, threshold: %.2f%%", series.Symbol, threshold*100)

	out := model.AnnotatedSeries{
		Symbol:    series.Symbol,
		Threshold: threshold,
		Points:    make([]model.AnnotatedPoint, len(series.Points)),
	}
	for i, p := range series.Points {
		out.Points[i] = model.AnnotatedPoint{
			Time:      p.Time,
			Price:     p.Price,
			EventType: model.NoEvent,
		}
	}

	if len(series.Points) < 2 {
		log.Warnf("insufficient data for DC transformation (%d points)", len(series.Points))
		annotatePeriods(out.Points)
		return out, nil
	}

	st := state{mode: modeUp, extreme: series.Points[0].Price}
	for i, p := range series.Points {
		st = step(st, p.Price, threshold, &out.Points[i])
	}
	annotatePeriods(out.Points)

	nUp, nDown := 0, 0
	for _, p := range out.Points {
		switch p.EventType {
		case model.DCUp:
			nUp++
		case model.DCDown:
			nDown++
		}
	}
	log.Infof("DC transformation completed - rows: %d, events: %d (up: %d, down: %d)",
		len(out.Points), nUp+nDown, nUp, nDown)

	return out, nil
}

// step advances the automaton by one observation, recording a confirmed
// event on row when the threshold is crossed. The reference extreme is
// updated in the searching branch so that intra-swing retracements are
// measured from the unconfirmed running extreme, not from the last
// confirmed event's price.
func step(st state, price, threshold float64, row *model.AnnotatedPoint) state {
	switch st.mode {
	case modeUp:
		if price >= st.extreme*(1+threshold) {
			row.EventType = model.DCUp
			row.ExtremePrice = st.extreme
			row.ChangePct = (price - st.extreme) / st.extreme
			return state{mode: modeDown, extreme: price}
		}
		if price < st.extreme {
			st.extreme = price // new running minimum
		}
	case modeDown:
		if price <= st.extreme*(1-threshold) {
			row.EventType = model.DCDown
			row.ExtremePrice = st.extreme
			row.ChangePct = (price - st.extreme) / st.extreme
			return state{mode: modeUp, extreme: price}
		}
		if price > st.extreme {
			st.extreme = price // new running maximum
		}
	}
	return st
}
