package dc

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"DCSentinel/internal/model"
)

func seriesFromPrices(prices ...float64) model.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Time: base.AddDate(0, 0, i), Price: p}
	}
	return model.PriceSeries{Symbol: "TEST", Points: points}
}

// randomWalk builds a deterministic geometric random walk.
func randomWalk(n int, seed int64) model.PriceSeries {
	rng := rand.New(rand.NewSource(seed))
	prices := make([]float64, n)
	p := 100.0
	for i := 0; i < n; i++ {
		p *= 1 + rng.NormFloat64()*0.01
		prices[i] = p
	}
	return seriesFromPrices(prices...)
}

func TestDetect_ConcreteScenario(t *testing.T) {
	s := seriesFromPrices(100, 100, 103, 103, 96, 96, 101)
	annotated, err := Detect(s, 0.02, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := annotated.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 confirmed events, got %d", len(events))
	}

	tests := []struct {
		eventType model.EventType
		extreme   float64
		change    float64
		price     float64
	}{
		{model.DCUp, 100, 0.03, 103},
		{model.DCDown, 103, (96.0 - 103.0) / 103.0, 96},
		{model.DCUp, 96, (101.0 - 96.0) / 96.0, 101},
	}
	for i, tt := range tests {
		ev := events[i]
		if ev.EventType != tt.eventType {
			t.Errorf("event %d: expected type %s, got %s", i, tt.eventType, ev.EventType)
		}
		if ev.ExtremePrice != tt.extreme {
			t.Errorf("event %d: expected extreme %.2f, got %.2f", i, tt.extreme, ev.ExtremePrice)
		}
		if math.Abs(ev.ChangePct-tt.change) > 1e-12 {
			t.Errorf("event %d: expected change %.6f, got %.6f", i, tt.change, ev.ChangePct)
		}
		if ev.Price != tt.price {
			t.Errorf("event %d: expected trigger price %.2f, got %.2f", i, tt.price, ev.Price)
		}
	}

	// First confirmation happens at the first occurrence of 103 (row 2),
	// not the repeat at row 3.
	if annotated.Points[2].EventType != model.DCUp {
		t.Errorf("expected dc_up at row 2, got %s", annotated.Points[2].EventType)
	}
	if annotated.Points[3].EventType != model.NoEvent {
		t.Errorf("expected no_event at row 3, got %s", annotated.Points[3].EventType)
	}
}

func TestDetect_EventPeriods(t *testing.T) {
	s := seriesFromPrices(100, 100, 103, 103, 96, 96, 101)
	annotated, err := Detect(s, 0.02, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 0, 1, 0, 1, 0}
	for i, p := range annotated.Points {
		if p.EventPeriod != want[i] {
			t.Errorf("row %d: expected period %d, got %d", i, want[i], p.EventPeriod)
		}
	}
}

func TestDetect_Alternation(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		s := randomWalk(2000, seed)
		annotated, err := Detect(s, 0.02, nil)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		events := annotated.Events()
		if len(events) == 0 {
			t.Fatalf("seed %d: expected at least one event in a 2000-point walk", seed)
		}
		for i := 1; i < len(events); i++ {
			if events[i].EventType == events[i-1].EventType {
				t.Fatalf("seed %d: events %d and %d share type %s, alternation violated",
					seed, i-1, i, events[i].EventType)
			}
		}
	}
}

func TestDetect_PeriodNonNegativeAndReset(t *testing.T) {
	s := randomWalk(500, 3)
	annotated, err := Detect(s, 0.015, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range annotated.Points {
		if p.EventPeriod < 0 {
			t.Fatalf("row %d: negative period %d", i, p.EventPeriod)
		}
		if p.EventType != model.NoEvent && p.EventPeriod != 0 {
			t.Fatalf("row %d: event row has period %d, expected 0", i, p.EventPeriod)
		}
	}
}

func TestDetect_Idempotence(t *testing.T) {
	s := randomWalk(800, 11)
	first, err := Detect(s, 0.02, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Detect(s, 0.02, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two detector runs on the same input produced different output")
	}
}

func TestDetect_InsufficientData(t *testing.T) {
	for _, s := range []model.PriceSeries{
		seriesFromPrices(),
		seriesFromPrices(100),
	} {
		annotated, err := Detect(s, 0.02, nil)
		if err != nil {
			t.Fatalf("len %d: expected no error, got %v", s.Len(), err)
		}
		if annotated.Len() != s.Len() {
			t.Fatalf("len %d: expected %d rows, got %d", s.Len(), s.Len(), annotated.Len())
		}
		for i, p := range annotated.Points {
			if p.EventType != model.NoEvent {
				t.Errorf("len %d, row %d: expected no_event, got %s", s.Len(), i, p.EventType)
			}
		}
	}
}

func TestDetect_RejectsMalformedInput(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	duplicate := model.PriceSeries{Symbol: "TEST", Points: []model.PricePoint{
		{Time: base, Price: 100},
		{Time: base, Price: 101},
	}}
	backwards := model.PriceSeries{Symbol: "TEST", Points: []model.PricePoint{
		{Time: base.AddDate(0, 0, 1), Price: 100},
		{Time: base, Price: 101},
	}}
	negative := seriesFromPrices(100, -5, 102)

	for name, s := range map[string]model.PriceSeries{
		"duplicate timestamps": duplicate,
		"backwards timestamps": backwards,
		"negative price":       negative,
	} {
		if _, err := Detect(s, 0.02, nil); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestDetect_RejectsBadThreshold(t *testing.T) {
	s := seriesFromPrices(100, 101, 102)
	for _, tau := range []float64{0, -0.01, 1, 1.5} {
		if _, err := Detect(s, tau, nil); err == nil {
			t.Errorf("threshold %v: expected error", tau)
		}
	}
}

// Larger thresholds are expected to confirm fewer events. The property is
// not an absolute guarantee for pathological inputs, so violations are
// flagged rather than failed.
func TestDetect_ThresholdMonotonicityExpected(t *testing.T) {
	s := randomWalk(3000, 99)
	thresholds := []float64{0.005, 0.01, 0.02, 0.05}
	prev := math.MaxInt
	for _, tau := range thresholds {
		annotated, err := Detect(s, tau, nil)
		if err != nil {
			t.Fatalf("threshold %v: unexpected error: %v", tau, err)
		}
		n := len(annotated.Events())
		if n > prev {
			t.Logf("monotonicity flag: threshold %v produced %d events, previous threshold produced %d", tau, n, prev)
		}
		prev = n
	}
}
