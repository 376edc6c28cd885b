package analyzer

import (
	"math"

	"DCSentinel/internal/model"
)

// shortPeriodMax is the longest event period still counted as "short".
const shortPeriodMax = 3

// ConsecutiveShortRuns flags events with period <= 3 as short, groups
// maximal consecutive runs of short events and reports run statistics. A
// run breaks as soon as a non-short event interrupts the streak.
func (a *Analyzer) ConsecutiveShortRuns(series model.AnnotatedSeries) model.ConsecutiveStats {
	log := a.logger()
	log.Infof("analyzing consecutive event patterns")

	events := series.Events()

	var runs []int
	current := 0
	short := 0
	for _, ev := range events {
		if ev.EventPeriod <= shortPeriodMax {
			short++
			current++
			continue
		}
		if current > 0 {
			runs = append(runs, current)
			current = 0
		}
	}
	if current > 0 {
		runs = append(runs, current)
	}

	out := model.ConsecutiveStats{
		ShortEvents:   short,
		ShortFraction: math.NaN(),
		TotalRuns:     len(runs),
	}
	if len(events) > 0 {
		out.ShortFraction = float64(short) / float64(len(events))
	}
	if len(runs) > 0 {
		sum, max := 0, 0
		for _, r := range runs {
			sum += r
			if r > max {
				max = r
			}
		}
		out.MaxRun = max
		out.MeanRun = float64(sum) / float64(len(runs))
	}

	log.Infof("consecutive events analyzed - %d runs identified", out.TotalRuns)
	return out
}
