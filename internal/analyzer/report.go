package analyzer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"DCSentinel/internal/model"
)

// SummaryReport renders the fixed-section text report from basic statistics
// and regime characteristics. It is purely a rendering of already-computed
// numbers; persistence is the caller's responsibility. Undefined ratios
// render as NaN.
func (a *Analyzer) SummaryReport(series model.AnnotatedSeries, threshold float64) string {
	log := a.logger()
	log.Infof("generating summary report")

	quiet := New(nil)
	basic := quiet.BasicStatistics(series)
	regime := quiet.RegimeCharacteristics(series)

	var b strings.Builder
	b.WriteString("============================================\n")
	b.WriteString("DC ANALYSIS SUMMARY REPORT\n")
	b.WriteString("============================================\n\n")

	b.WriteString(fmt.Sprintf("Threshold: %.2f%%\n\n", threshold*100))

	b.WriteString("BASIC STATISTICS\n")
	b.WriteString("----------------\n")
	b.WriteString(fmt.Sprintf("Total Days: %s\n", humanize.Comma(int64(basic.TotalDays))))
	b.WriteString(fmt.Sprintf("Total Events: %d\n", basic.TotalEvents))
	b.WriteString(fmt.Sprintf("Event Frequency: %.2f%%\n\n", basic.EventsPct*100))
	b.WriteString(fmt.Sprintf("Up Events: %d\n", basic.UpEvents))
	b.WriteString(fmt.Sprintf("Down Events: %d\n", basic.DownEvents))
	b.WriteString(fmt.Sprintf("Up/Down Ratio: %.2f\n\n", basic.UpDownRatio))

	b.WriteString("EVENT PERIODS (days between events)\n")
	b.WriteString("-----------------------------------\n")
	b.WriteString(fmt.Sprintf("Mean: %.1f\n", basic.MeanEventPeriod))
	b.WriteString(fmt.Sprintf("Median: %.1f\n", basic.MedianEventPeriod))
	b.WriteString(fmt.Sprintf("Std Dev: %.1f\n", basic.StdEventPeriod))
	b.WriteString(fmt.Sprintf("Min: %.0f\n", basic.MinEventPeriod))
	b.WriteString(fmt.Sprintf("Max: %.0f\n\n", basic.MaxEventPeriod))

	b.WriteString("CHANGE MAGNITUDES\n")
	b.WriteString("-----------------\n")
	b.WriteString(fmt.Sprintf("Mean: %.2f%%\n", basic.MeanChangePct*100))
	b.WriteString(fmt.Sprintf("Median: %.2f%%\n", basic.MedianChangePct*100))
	b.WriteString(fmt.Sprintf("Std Dev: %.2f%%\n", basic.StdChangePct*100))
	b.WriteString(fmt.Sprintf("Min: %.2f%%\n", basic.MinChangePct*100))
	b.WriteString(fmt.Sprintf("Max: %.2f%%\n\n", basic.MaxChangePct*100))

	b.WriteString("REGIME CHARACTERISTICS\n")
	b.WriteString("----------------------\n")
	b.WriteString("Up Regime:\n")
	b.WriteString(fmt.Sprintf("  Mean Period: %.1f days\n", regime.Up.MeanPeriod))
	b.WriteString(fmt.Sprintf("  Mean Change: %.2f%%\n\n", regime.Up.MeanChange*100))
	b.WriteString("Down Regime:\n")
	b.WriteString(fmt.Sprintf("  Mean Period: %.1f days\n", regime.Down.MeanPeriod))
	b.WriteString(fmt.Sprintf("  Mean Change: %.2f%%\n\n", regime.Down.MeanChange*100))
	b.WriteString("Symmetry:\n")
	b.WriteString(fmt.Sprintf("  Period Ratio (Up/Down): %.2f\n", regime.PeriodRatio))
	b.WriteString(fmt.Sprintf("  Change Ratio (Up/Down): %.2f\n\n", regime.ChangeRatio))

	b.WriteString("============================================\n")

	log.Infof("summary report generated")
	return b.String()
}
