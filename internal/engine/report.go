package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"eventbt/types"

	"github.com/mitchellh/colorstring"
	"github.com/shopspring/decimal"
)

// Report is the data contract of a finished run. Everything in it derives
// from the holdings history and the loop counters; how it is presented is
// up to the caller.
type Report struct {
	RunID     string
	StartDate time.Time
	EndDate   time.Time

	InitialCapital decimal.Decimal
	FinalEquity    decimal.Decimal

	CumulativeReturn float64
	SharpeRatio      float64
	MaxDrawdown      float64
	DrawdownDuration int

	TotalCommission decimal.Decimal

	SignalsSeen int
	OrdersSeen  int
	FillsSeen   int

	EquityCurve []types.HoldingsSnapshot
}

func buildReport(runID string, interval types.Interval, p *portfolio, signals, orders, fills int) *Report {
	report := &Report{
		RunID:           runID,
		InitialCapital:  p.initialCapital,
		TotalCommission: p.commission,
		SignalsSeen:     signals,
		OrdersSeen:      orders,
		FillsSeen:       fills,
		EquityCurve:     p.holdings,
	}

	equity := equityCurve(p.holdings)
	if len(p.holdings) > 0 {
		report.StartDate = p.holdings[0].Timestamp
		report.EndDate = p.holdings[len(p.holdings)-1].Timestamp
		report.FinalEquity = equity[len(equity)-1]
	} else {
		report.FinalEquity = p.initialCapital
	}

	periods, ok := types.AnnualizationPeriods[interval]
	if !ok {
		periods = types.AnnualizationPeriods[types.Day]
	}

	report.CumulativeReturn = cumulativeReturn(equity)
	report.SharpeRatio = sharpeRatio(periodReturns(equity), periods)
	report.MaxDrawdown, report.DrawdownDuration = maxDrawdown(equity)
	return report
}

func (r *Report) Print() {
	colorstring.Println("[bold]===== Backtest Report =====")
	fmt.Printf("Run ID:              %s\n", r.RunID)
	fmt.Printf("Start Date:          %s\n", r.StartDate.Format("2006-01-02"))
	fmt.Printf("End Date:            %s\n", r.EndDate.Format("2006-01-02"))

	colorstring.Println("\n[bold]-- Performance --")
	fmt.Printf("Initial Capital:     %s\n", r.InitialCapital)
	fmt.Printf("Final Equity:        %s\n", r.FinalEquity)
	colorstring.Printf("Cumulative Return:   %s\n", colorizePct(r.CumulativeReturn))
	fmt.Printf("Sharpe Ratio:        %s\n", formatMetric(r.SharpeRatio))
	colorstring.Printf("Max Drawdown:        [red]%s[reset]\n", formatPct(r.MaxDrawdown))
	fmt.Printf("Drawdown Duration:   %d bars\n", r.DrawdownDuration)
	fmt.Printf("Total Commission:    %s\n", r.TotalCommission)

	colorstring.Println("\n[bold]-- Event Counters --")
	fmt.Printf("Signals:             %d\n", r.SignalsSeen)
	fmt.Printf("Orders:              %d\n", r.OrdersSeen)
	fmt.Printf("Fills:               %d\n", r.FillsSeen)
	colorstring.Println("[bold]===========================")
}

func colorizePct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if v < 0 {
		return fmt.Sprintf("[red]%s[reset]", formatPct(v))
	}
	return fmt.Sprintf("[green]%s[reset]", formatPct(v))
}

func formatPct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// WriteEquityCSV writes the equity curve to a CSV file at the given path.
func (r *Report) WriteEquityCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity file: %w", err)
	}
	defer f.Close()

	return r.writeEquityCSV(f)
}

func (r *Report) writeEquityCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	tickers := equityCurveTickers(r.EquityCurve)
	header := []string{"timestamp", "cash"}
	header = append(header, tickers...)
	header = append(header, "commission", "total_equity")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, snap := range r.EquityCurve {
		record := []string{
			snap.Timestamp.Format(time.RFC3339),
			snap.Cash.String(),
		}
		for _, t := range tickers {
			record = append(record, snap.MarketValue[t].String())
		}
		record = append(record, snap.Commission.String(), snap.TotalEquity.String())
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func equityCurveTickers(curve []types.HoldingsSnapshot) []string {
	if len(curve) == 0 {
		return nil
	}
	tickers := make([]string, 0, len(curve[0].MarketValue))
	for t := range curve[0].MarketValue {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
