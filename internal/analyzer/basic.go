package analyzer

import (
	"math"

	"DCSentinel/internal/model"
	"DCSentinel/internal/stats"
)

// BasicStatistics computes event counts, the up/down ratio and event-period
// and change-magnitude statistics. The ratio is NaN when there are no down
// events; period statistics are 0 when no event has a positive period, the
// original convention for short series.
func (a *Analyzer) BasicStatistics(series model.AnnotatedSeries) model.BasicStats {
	log := a.logger()
	log.Infof("calculating basic DC statistics")

	events := series.Events()

	var nUp, nDown int
	var periods, changes []float64
	for _, ev := range events {
		switch ev.EventType {
		case model.DCUp:
			nUp++
		case model.DCDown:
			nDown++
		}
		if ev.EventPeriod > 0 {
			periods = append(periods, float64(ev.EventPeriod))
		}
		changes = append(changes, math.Abs(ev.ChangePct))
	}

	out := model.BasicStats{
		TotalDays:   series.Len(),
		TotalEvents: len(events),
		UpEvents:    nUp,
		DownEvents:  nDown,
		UpDownRatio: math.NaN(),
		EventsPct:   math.NaN(),

		MeanChangePct:   stats.Mean(changes),
		MedianChangePct: stats.Median(changes),
		StdChangePct:    stats.Std(changes),
		MinChangePct:    stats.Min(changes),
		MaxChangePct:    stats.Max(changes),
	}
	if series.Len() > 0 {
		out.EventsPct = float64(len(events)) / float64(series.Len())
	}
	if nDown > 0 {
		out.UpDownRatio = float64(nUp) / float64(nDown)
	}
	if len(periods) > 0 {
		out.MeanEventPeriod = stats.Mean(periods)
		out.MedianEventPeriod = stats.Median(periods)
		out.StdEventPeriod = stats.Std(periods)
		out.MinEventPeriod = stats.Min(periods)
		out.MaxEventPeriod = stats.Max(periods)
	}

	log.Infof("statistics calculated - total events: %d", len(events))
	return out
}
