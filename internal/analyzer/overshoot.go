package analyzer

import (
	"fmt"
	"math"

	"DCSentinel/internal/model"
	"DCSentinel/internal/stats"
)

// Overshoot measures how far each confirmed event's magnitude exceeds the
// nominal threshold, absolute and as a percentage of the threshold, and
// aggregates overall and per event type. Aggregates over zero events come
// out as NaN.
func (a *Analyzer) Overshoot(series model.AnnotatedSeries, threshold float64) (model.OvershootStats, error) {
	if threshold <= 0 || threshold >= 1 {
		return model.OvershootStats{}, fmt.Errorf("threshold must be in (0, 1), got %v", threshold)
	}
	log := a.logger()
	log.Infof("analyzing overshoot patterns")

	var all, pcts, up, down []float64
	for _, ev := range series.Events() {
		overshoot := math.Abs(ev.ChangePct) - threshold
		all = append(all, overshoot)
		pcts = append(pcts, overshoot/threshold*100)
		if ev.EventType == model.DCUp {
			up = append(up, overshoot)
		} else {
			down = append(down, overshoot)
		}
	}

	out := model.OvershootStats{
		Mean:    stats.Mean(all),
		Median:  stats.Median(all),
		Std:     stats.Std(all),
		Max:     stats.Max(all),
		Min:     stats.Min(all),
		MeanPct: stats.Mean(pcts),
		Up:      model.OvershootSide{Mean: stats.Mean(up), Median: stats.Median(up)},
		Down:    model.OvershootSide{Mean: stats.Mean(down), Median: stats.Median(down)},
	}

	log.Infof("overshoot analysis completed - mean: %.4f", out.Mean)
	return out, nil
}
