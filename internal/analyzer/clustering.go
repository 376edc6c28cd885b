package analyzer

import (
	"fmt"

	"DCSentinel/internal/model"
	"DCSentinel/internal/stats"
)

// EventClustering computes the rolling count of events in the trailing
// window at every row and flags rows whose density reaches the 75th
// percentile of all densities as high-volatility. The window shrinks to the
// available rows at the start of the series, so the first row already has a
// defined density.
func (a *Analyzer) EventClustering(series model.AnnotatedSeries, window int) (model.ClusteringResult, error) {
	if window < 1 {
		return model.ClusteringResult{}, fmt.Errorf("window must be at least 1, got %d", window)
	}
	log := a.logger()
	log.Infof("analyzing event clustering with %d-row window", window)

	n := series.Len()
	out := model.ClusteringResult{Window: window, Points: make([]model.ClusterPoint, n)}
	densities := make([]float64, n)

	running := 0
	for i, p := range series.Points {
		isEvent := p.EventType != model.NoEvent
		if isEvent {
			running++
		}
		if i >= window && series.Points[i-window].EventType != model.NoEvent {
			running--
		}
		out.Points[i] = model.ClusterPoint{Time: p.Time, IsEvent: isEvent, Density: running}
		densities[i] = float64(running)
	}

	out.HighVolThreshold = stats.Quantile(densities, 0.75)
	for i := range out.Points {
		out.Points[i].HighVolatility = densities[i] >= out.HighVolThreshold
	}

	log.Infof("event clustering analyzed - high vol threshold: %.1f events/%d rows",
		out.HighVolThreshold, window)
	return out, nil
}
