package analyzer

import (
	"math"

	"DCSentinel/internal/model"
	"DCSentinel/internal/stats"
)

// RegimeCharacteristics compares up and down regimes: per-side period and
// change-magnitude statistics plus the up/down symmetry ratio pair. Both
// ratios are NaN when the down-side denominator is zero.
func (a *Analyzer) RegimeCharacteristics(series model.AnnotatedSeries) model.RegimeStats {
	log := a.logger()
	log.Infof("analyzing regime characteristics")

	var upPeriods, downPeriods, upChanges, downChanges []float64
	for _, ev := range series.Events() {
		change := math.Abs(ev.ChangePct)
		switch ev.EventType {
		case model.DCUp:
			upChanges = append(upChanges, change)
			if ev.EventPeriod > 0 {
				upPeriods = append(upPeriods, float64(ev.EventPeriod))
			}
		case model.DCDown:
			downChanges = append(downChanges, change)
			if ev.EventPeriod > 0 {
				downPeriods = append(downPeriods, float64(ev.EventPeriod))
			}
		}
	}

	out := model.RegimeStats{
		Up:          regimeSide(upPeriods, upChanges),
		Down:        regimeSide(downPeriods, downChanges),
		PeriodRatio: math.NaN(),
		ChangeRatio: math.NaN(),
	}
	if out.Down.MeanPeriod > 0 {
		out.PeriodRatio = out.Up.MeanPeriod / out.Down.MeanPeriod
	}
	if out.Down.MeanChange > 0 {
		out.ChangeRatio = out.Up.MeanChange / out.Down.MeanChange
	}

	log.Infof("regime characteristics analyzed")
	return out
}

func regimeSide(periods, changes []float64) model.RegimeSide {
	side := model.RegimeSide{
		MeanChange:   stats.Mean(changes),
		MedianChange: stats.Median(changes),
		StdChange:    stats.Std(changes),
	}
	if len(periods) > 0 {
		side.MeanPeriod = stats.Mean(periods)
		side.MedianPeriod = stats.Median(periods)
	}
	return side
}
