package analyzer

import (
	"fmt"
	"math"
	"sync"

	"DCSentinel/internal/dc"
	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
	"DCSentinel/internal/stats"
)

// ThresholdSensitivity re-runs the detector once per threshold and collects
// one summary row per threshold that confirmed at least one event, in input
// order. Runs are independent, so they execute concurrently; each allocates
// its own annotated series and shares no state with the others.
func (a *Analyzer) ThresholdSensitivity(series model.PriceSeries, thresholds []float64) ([]model.SensitivityRow, error) {
	log := a.logger()
	log.Infof("analyzing threshold sensitivity for %d thresholds", len(thresholds))

	rows := make([]*model.SensitivityRow, len(thresholds))
	errs := make([]error, len(thresholds))

	var wg sync.WaitGroup
	for i, threshold := range thresholds {
		wg.Add(1)
		go func(i int, threshold float64) {
			defer wg.Done()
			annotated, err := dc.Detect(series, threshold, logging.Nop{})
			if err != nil {
				errs[i] = fmt.Errorf("threshold %v: %w", threshold, err)
				return
			}
			rows[i] = summarize(annotated, threshold)
		}(i, threshold)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make([]model.SensitivityRow, 0, len(thresholds))
	for _, row := range rows {
		if row != nil {
			out = append(out, *row)
		}
	}

	log.Infof("threshold sensitivity analysis completed - %d rows", len(out))
	return out, nil
}

// summarize reduces one detector run to a sensitivity row, nil when the run
// confirmed no events.
func summarize(annotated model.AnnotatedSeries, threshold float64) *model.SensitivityRow {
	events := annotated.Events()
	if len(events) == 0 {
		return nil
	}

	var nUp, nDown int
	var periods, changes []float64
	for _, ev := range events {
		if ev.EventType == model.DCUp {
			nUp++
		} else {
			nDown++
		}
		if ev.EventPeriod > 0 {
			periods = append(periods, float64(ev.EventPeriod))
		}
		changes = append(changes, math.Abs(ev.ChangePct))
	}

	row := model.SensitivityRow{
		Threshold:       threshold,
		ThresholdPct:    fmt.Sprintf("%.1f%%", threshold*100),
		TotalEvents:     len(events),
		UpEvents:        nUp,
		DownEvents:      nDown,
		MeanChangePct:   stats.Mean(changes),
		MedianChangePct: stats.Median(changes),
	}
	if len(periods) > 0 {
		row.MeanEventPeriod = stats.Mean(periods)
		row.MedianEventPeriod = stats.Median(periods)
	}
	return &row
}
