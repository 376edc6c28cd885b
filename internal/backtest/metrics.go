package backtest

import (
	"fmt"
	"math"

	"DCSentinel/internal/logging"
	"DCSentinel/internal/stats"
)

const tradingDaysPerYear = 252

// PerformanceMetrics summarizes a simulation run.
type PerformanceMetrics struct {
	TotalReturn      float64
	AnnualizedReturn float64
	SharpeRatio      float64
	MaxDrawdown      float64
	Volatility       float64
	Days             int
	Trades           int
}

// Metrics computes performance metrics over simulation rows. riskFreeRate is
// annual; it is de-annualized to a daily rate for the Sharpe ratio.
func Metrics(rows []Row, riskFreeRate float64, log logging.Logger) (PerformanceMetrics, error) {
	if log == nil {
		log = logging.Nop{}
	}
	if len(rows) == 0 {
		return PerformanceMetrics{}, fmt.Errorf("no simulation rows")
	}

	initial := rows[0].PortfolioValue
	final := rows[len(rows)-1].PortfolioValue
	total := final.Sub(initial).Div(initial).InexactFloat64()

	n := len(rows)
	annualized := math.Pow(1+total, float64(tradingDaysPerYear)/float64(n)) - 1

	// Daily simple returns, first-row NaN excluded.
	returns := make([]float64, 0, n-1)
	for _, r := range rows[1:] {
		if !math.IsNaN(r.Return) {
			returns = append(returns, r.Return)
		}
	}

	dailyRF := math.Pow(1+riskFreeRate, 1.0/tradingDaysPerYear) - 1
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - dailyRF
	}
	sharpe := 0.0
	if sd := stats.Std(excess); sd > 0 {
		sharpe = stats.Mean(excess) / sd * math.Sqrt(tradingDaysPerYear)
	}

	metrics := PerformanceMetrics{
		TotalReturn:      total,
		AnnualizedReturn: annualized,
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDrawdown(returns),
		Volatility:       stats.Std(returns) * math.Sqrt(tradingDaysPerYear),
		Days:             n,
		Trades:           countTrades(rows),
	}

	log.Infof("performance - total: %.2f%%, sharpe: %.2f, max drawdown: %.2f%%",
		metrics.TotalReturn*100, metrics.SharpeRatio, metrics.MaxDrawdown*100)
	return metrics, nil
}

// maxDrawdown is the largest peak-to-trough decline of the cumulative
// return path, reported as a negative fraction (0 when the path never dips).
func maxDrawdown(returns []float64) float64 {
	cum := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		if dd := cum/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// countTrades counts round trips: a buy and its matching sell are one trade.
func countTrades(rows []Row) int {
	executed := 0
	for _, r := range rows {
		if r.Action == ActionBuy || r.Action == ActionSell {
			executed++
		}
	}
	return executed / 2
}
