// Package backtest turns an annotated DC series into long/flat trading
// signals and simulates them with transaction costs. It treats the
// annotated series as a read-only, fully-computed artifact.
package backtest

import (
	"time"

	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
)

// Action is the per-row trading decision.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Signal is one row of the signal series: the observation, the decision and
// the resulting long/flat position.
type Signal struct {
	Time     time.Time
	Price    float64
	Action   Action
	Invested bool
}

// GenerateSignals produces the long/flat signal series: buy on a dc_up
// event while flat, sell on a dc_down event while long, hold otherwise.
func GenerateSignals(series model.AnnotatedSeries, initialInvested bool, log logging.Logger) []Signal {
	if log == nil {
		log = logging.Nop{}
	}
	log.Infof("generating DC trading signals")

	signals := make([]Signal, 0, series.Len())
	invested := initialInvested
	nBuys, nSells := 0, 0

	for _, p := range series.Points {
		action := ActionHold
		switch {
		case p.EventType == model.DCUp && !invested:
			action = ActionBuy
			invested = true
			nBuys++
		case p.EventType == model.DCDown && invested:
			action = ActionSell
			invested = false
			nSells++
		}
		signals = append(signals, Signal{Time: p.Time, Price: p.Price, Action: action, Invested: invested})
	}

	log.Infof("signals generated - buys: %d, sells: %d", nBuys, nSells)
	return signals
}
