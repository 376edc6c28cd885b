package model

import "time"

// BasicStats summarizes event counts, period statistics and change-magnitude
// statistics for one annotated series. Ratio and change fields are NaN when
// their denominators are degenerate.
type BasicStats struct {
	TotalDays   int
	TotalEvents int
	EventsPct   float64
	UpEvents    int
	DownEvents  int
	UpDownRatio float64

	MeanEventPeriod   float64
	MedianEventPeriod float64
	StdEventPeriod    float64
	MinEventPeriod    float64
	MaxEventPeriod    float64

	MeanChangePct   float64
	MedianChangePct float64
	StdChangePct    float64
	MinChangePct    float64
	MaxChangePct    float64
}

// PeriodBucket is one histogram cell of the event-period distribution:
// a bucket label for one event type with its count and within-type share.
type PeriodBucket struct {
	EventType  EventType
	Bucket     string
	Count      int
	Percentage float64
}

// YearCount, MonthCount and QuarterCount are calendar pivots of event counts
// split by type. Months and quarters always cover 1-12 / 1-4 with zero fill;
// years are limited to those observed, ascending.
type YearCount struct {
	Year int
	Up   int
	Down int
}

type MonthCount struct {
	Month int
	Up    int
	Down  int
}

type QuarterCount struct {
	Quarter int
	Up      int
	Down    int
}

// TemporalPatterns holds the three calendar pivots.
type TemporalPatterns struct {
	ByYear    []YearCount
	ByMonth   []MonthCount
	ByQuarter []QuarterCount
}

// SensitivityRow is one summary row of the threshold-sensitivity table.
type SensitivityRow struct {
	Threshold         float64
	ThresholdPct      string
	TotalEvents       int
	UpEvents          int
	DownEvents        int
	MeanEventPeriod   float64
	MedianEventPeriod float64
	MeanChangePct     float64
	MedianChangePct   float64
}

// RegimeSide describes one swing direction.
type RegimeSide struct {
	MeanPeriod   float64
	MedianPeriod float64
	MeanChange   float64
	MedianChange float64
	StdChange    float64
}

// RegimeStats compares up and down regimes; the ratios are NaN when the
// down-side denominator is zero.
type RegimeStats struct {
	Up          RegimeSide
	Down        RegimeSide
	PeriodRatio float64
	ChangeRatio float64
}

// ClusterPoint is one row of the rolling event-density series.
type ClusterPoint struct {
	Time           time.Time
	IsEvent        bool
	Density        int
	HighVolatility bool
}

// ClusteringResult is the rolling event-density classification for a series.
type ClusteringResult struct {
	Window           int
	HighVolThreshold float64
	Points           []ClusterPoint
}

// OvershootSide aggregates overshoot for one event type.
type OvershootSide struct {
	Mean   float64
	Median float64
}

// OvershootStats aggregates how far confirmed events exceed the nominal
// threshold, overall and per type.
type OvershootStats struct {
	Mean    float64
	Median  float64
	Std     float64
	Max     float64
	Min     float64
	MeanPct float64
	Up      OvershootSide
	Down    OvershootSide
}

// ConsecutiveStats summarizes runs of consecutive short-period events.
type ConsecutiveStats struct {
	ShortEvents   int
	ShortFraction float64
	MaxRun        int
	MeanRun       float64
	TotalRuns     int
}
