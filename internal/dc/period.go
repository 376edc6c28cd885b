package dc

import "DCSentinel/internal/model"

// annotatePeriods fills EventPeriod for every row: the row-count distance to
// the most recent confirmed event at or before it, or the absolute row index
// when no event precedes it. A single forward pass with a running cursor;
// event rows themselves come out as 0.
func annotatePeriods(points []model.AnnotatedPoint) {
	last := -1
	for i := range points {
		if points[i].EventType != model.NoEvent {
			last = i
		}
		if last >= 0 {
			points[i].EventPeriod = i - last
		} else {
			points[i].EventPeriod = i
		}
	}
}
