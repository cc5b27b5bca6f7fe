package engine

import (
	"time"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

type DataFeedConfig struct {
	Ticker   string
	Interval types.Interval
	Start    time.Time
	End      time.Time
	bars     []types.Bar
}

func NewDataFeedConfig(ticker string, interval types.Interval, start, end time.Time) *DataFeedConfig {
	return &DataFeedConfig{
		Ticker:   ticker,
		Interval: interval,
		Start:    start,
		End:      end,
	}
}

func NewDataFeedConfigs(feeds ...*DataFeedConfig) []*DataFeedConfig {
	return feeds
}

type PortfolioConfig struct {
	initialCapital decimal.Decimal
	sizer          sizer
}

// NewPortfolioConfig sets the starting cash and the sizing rule used for
// entry signals. A nil sizing rule falls back to a fixed 100-unit quantity.
func NewPortfolioConfig(initialCapital decimal.Decimal, sizing sizer) *PortfolioConfig {
	if sizing == nil {
		sizing = FixedSizer{Quantity: decimal.NewFromInt(100)}
	}
	return &PortfolioConfig{
		initialCapital: initialCapital,
		sizer:          sizing,
	}
}

type ReportingConfig struct {
	writeEquityCSV bool
	equityCSVPath  string
}

func NewReportingConfig(writeEquityCSV bool, equityCSVPath string) *ReportingConfig {
	return &ReportingConfig{
		writeEquityCSV: writeEquityCSV,
		equityCSVPath:  equityCSVPath,
	}
}
