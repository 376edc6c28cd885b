package analyzer

import (
	"sort"

	"DCSentinel/internal/model"
)

// TemporalPatterns pivots event counts by calendar year, month and quarter,
// split by event type. Months 1-12 and quarters 1-4 are always present with
// zero fill; years cover only those observed, ascending.
func (a *Analyzer) TemporalPatterns(series model.AnnotatedSeries) model.TemporalPatterns {
	log := a.logger()
	log.Infof("analyzing temporal patterns")

	type counter struct{ up, down int }
	years := map[int]*counter{}
	var months [12]counter
	var quarters [4]counter

	for _, ev := range series.Events() {
		y := ev.Time.Year()
		m := int(ev.Time.Month())
		q := (m-1)/3 + 1

		yc, ok := years[y]
		if !ok {
			yc = &counter{}
			years[y] = yc
		}
		if ev.EventType == model.DCUp {
			yc.up++
			months[m-1].up++
			quarters[q-1].up++
		} else {
			yc.down++
			months[m-1].down++
			quarters[q-1].down++
		}
	}

	out := model.TemporalPatterns{}
	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	for _, y := range yearKeys {
		out.ByYear = append(out.ByYear, model.YearCount{Year: y, Up: years[y].up, Down: years[y].down})
	}
	for m := 1; m <= 12; m++ {
		out.ByMonth = append(out.ByMonth, model.MonthCount{Month: m, Up: months[m-1].up, Down: months[m-1].down})
	}
	for q := 1; q <= 4; q++ {
		out.ByQuarter = append(out.ByQuarter, model.QuarterCount{Quarter: q, Up: quarters[q-1].up, Down: quarters[q-1].down})
	}

	log.Infof("temporal patterns analyzed")
	return out
}
