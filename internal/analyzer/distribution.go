package analyzer

import "DCSentinel/internal/model"

// periodBuckets are the right-closed histogram bins for event periods.
var periodBuckets = []struct {
	label string
	upper int
}{
	{"0-5", 5},
	{"6-10", 10},
	{"11-20", 20},
	{"21-50", 50},
	{"51-100", 100},
	{"100+", -1}, // open-ended
}

func bucketLabel(period int) string {
	for _, b := range periodBuckets {
		if b.upper < 0 || period <= b.upper {
			return b.label
		}
	}
	return periodBuckets[len(periodBuckets)-1].label
}

// EventDistribution bins event periods into the fixed histogram per event
// type and reports within-type percentages. All six buckets are emitted for
// each type so the table shape is stable regardless of the data.
func (a *Analyzer) EventDistribution(series model.AnnotatedSeries) []model.PeriodBucket {
	log := a.logger()
	log.Infof("analyzing event period distribution")

	counts := map[model.EventType]map[string]int{
		model.DCUp:   {},
		model.DCDown: {},
	}
	totals := map[model.EventType]int{}
	for _, ev := range series.Events() {
		counts[ev.EventType][bucketLabel(ev.EventPeriod)]++
		totals[ev.EventType]++
	}

	var out []model.PeriodBucket
	for _, eventType := range []model.EventType{model.DCUp, model.DCDown} {
		for _, b := range periodBuckets {
			n := counts[eventType][b.label]
			pct := 0.0
			if totals[eventType] > 0 {
				pct = float64(n) / float64(totals[eventType])
			}
			out = append(out, model.PeriodBucket{
				EventType:  eventType,
				Bucket:     b.label,
				Count:      n,
				Percentage: pct,
			})
		}
	}

	log.Infof("event period distribution calculated")
	return out
}
