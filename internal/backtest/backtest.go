package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"DCSentinel/internal/logging"
	"DCSentinel/internal/model"
)

// Row is one row of the simulation output. Monetary amounts are decimals to
// keep the accounting exact; Return is the simple return of the portfolio
// value against the previous row, NaN on the first row.
type Row struct {
	Time           time.Time
	Price          float64
	Action         Action
	Cash           decimal.Decimal
	Shares         decimal.Decimal
	PortfolioValue decimal.Decimal
	TradeCost      decimal.Decimal
	Return         float64
}

// Run simulates the signal series with all-in buys and all-out sells.
// transactionCost is a decimal fraction (0.001 = 0.1%) charged on each
// trade's notional.
func Run(signals []Signal, initialCapital, transactionCost float64, log logging.Logger) ([]Row, error) {
	if log == nil {
		log = logging.Nop{}
	}
	if initialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %v", initialCapital)
	}
	if transactionCost < 0 || transactionCost >= 1 {
		return nil, fmt.Errorf("transaction cost must be in [0, 1), got %v", transactionCost)
	}

	log.Infof("running backtest - initial capital: %.2f", initialCapital)

	cash := decimal.NewFromFloat(initialCapital)
	shares := decimal.Zero
	fee := decimal.NewFromFloat(transactionCost)

	rows := make([]Row, 0, len(signals))
	for _, sig := range signals {
		price := decimal.NewFromFloat(sig.Price)
		tradeCost := decimal.Zero

		switch {
		case sig.Action == ActionBuy && cash.IsPositive():
			tradeCost = cash.Mul(fee)
			shares = shares.Add(cash.Sub(tradeCost).Div(price))
			cash = decimal.Zero
		case sig.Action == ActionSell && shares.IsPositive():
			proceeds := shares.Mul(price)
			tradeCost = proceeds.Mul(fee)
			cash = proceeds.Sub(tradeCost)
			shares = decimal.Zero
		}

		rows = append(rows, Row{
			Time:           sig.Time,
			Price:          sig.Price,
			Action:         sig.Action,
			Cash:           cash,
			Shares:         shares,
			PortfolioValue: cash.Add(shares.Mul(price)),
			TradeCost:      tradeCost,
		})
	}
	fillReturns(rows)

	if len(rows) > 0 {
		final := rows[len(rows)-1].PortfolioValue
		log.Infof("backtest completed - final value: %s", final.StringFixed(2))
	}
	return rows, nil
}

// RunBuyAndHold simulates the benchmark: buy at the first price, hold to
// the end.
func RunBuyAndHold(series model.PriceSeries, initialCapital, transactionCost float64, log logging.Logger) ([]Row, error) {
	if log == nil {
		log = logging.Nop{}
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("empty price series")
	}
	if initialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %v", initialCapital)
	}

	log.Infof("running buy & hold benchmark")

	capital := decimal.NewFromFloat(initialCapital)
	fee := decimal.NewFromFloat(transactionCost)
	firstPrice := decimal.NewFromFloat(series.Points[0].Price)
	cost := capital.Mul(fee)
	shares := capital.Sub(cost).Div(firstPrice)

	rows := make([]Row, 0, series.Len())
	for i, p := range series.Points {
		price := decimal.NewFromFloat(p.Price)
		action := ActionHold
		tradeCost := decimal.Zero
		if i == 0 {
			action = ActionBuy
			tradeCost = cost
		}
		rows = append(rows, Row{
			Time:           p.Time,
			Price:          p.Price,
			Action:         action,
			Cash:           decimal.Zero,
			Shares:         shares,
			PortfolioValue: shares.Mul(price),
			TradeCost:      tradeCost,
		})
	}
	fillReturns(rows)
	return rows, nil
}

func fillReturns(rows []Row) {
	for i := range rows {
		if i == 0 {
			rows[i].Return = math.NaN()
			continue
		}
		prev := rows[i-1].PortfolioValue
		if prev.IsZero() {
			rows[i].Return = math.NaN()
			continue
		}
		rows[i].Return = rows[i].PortfolioValue.Sub(prev).Div(prev).InexactFloat64()
	}
}
