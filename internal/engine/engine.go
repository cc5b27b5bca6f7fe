package engine

import (
	"context"
	"fmt"

	"eventbt/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine ties the data store, the feed, the strategy, the venue and the
// portfolio together for one backtest run. Collaborators are injected at
// construction; the engine only owns the wiring and the run lifecycle.
type Engine struct {
	feeds           []*DataFeedConfig
	strategy        strategy
	venue           executionVenue
	portfolioConfig *PortfolioConfig
	reportingConfig *ReportingConfig
	db              dataStore
	logger          *zap.Logger
}

func NewEngine(
	feeds []*DataFeedConfig,
	strat strategy,
	venue executionVenue,
	portfolioConfig *PortfolioConfig,
	reportingConfig *ReportingConfig,
	db dataStore,
	logger *zap.Logger,
) *Engine {
	if venue == nil {
		venue = NewSimulatedVenue("SIMULATED", ZeroCommission)
	}
	if reportingConfig == nil {
		reportingConfig = NewReportingConfig(false, "")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		feeds:           feeds,
		strategy:        strat,
		venue:           venue,
		portfolioConfig: portfolioConfig,
		reportingConfig: reportingConfig,
		db:              db,
		logger:          logger,
	}
}

// Run loads the historical data, drives the simulation until the feed is
// exhausted and builds the performance report exactly once.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	log := e.logger.With(zap.String("run_id", runID))

	series, err := e.loadData(ctx)
	if err != nil {
		return nil, err
	}

	feed, err := newHistFeed(series)
	if err != nil {
		return nil, err
	}

	portfolio := newPortfolio(e.portfolioConfig, feed.Instruments())
	if err := e.strategy.Init(feed.View()); err != nil {
		return nil, fmt.Errorf("init strategy: %w", err)
	}

	bt := newBacktester(feed, e.strategy, e.venue, portfolio)
	bt.progress = true

	log.Info("starting backtest",
		zap.Strings("tickers", feed.Instruments()),
		zap.Int("steps", feed.Steps()),
	)
	if err := bt.run(); err != nil {
		log.Error("backtest aborted", zap.Error(err))
		return nil, err
	}

	report := buildReport(runID, e.primaryInterval(), portfolio, bt.signalsSeen, bt.ordersSeen, bt.fillsSeen)
	log.Info("backtest complete",
		zap.Int("signals", report.SignalsSeen),
		zap.Int("orders", report.OrdersSeen),
		zap.Int("fills", report.FillsSeen),
		zap.String("final_equity", report.FinalEquity.String()),
	)

	if e.reportingConfig.writeEquityCSV {
		if err := report.WriteEquityCSV(e.reportingConfig.equityCSVPath); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (e *Engine) loadData(ctx context.Context) (map[string][]types.Bar, error) {
	series := make(map[string][]types.Bar, len(e.feeds))
	for _, feed := range e.feeds {
		if len(feed.bars) > 0 {
			series[feed.Ticker] = feed.bars
			continue
		}
		asset, err := e.db.GetAssetByTicker(ctx, feed.Ticker)
		if err != nil {
			return nil, fmt.Errorf("load asset %s: %w", feed.Ticker, err)
		}
		bars, err := e.db.GetBars(ctx, asset.Id, feed.Ticker, feed.Interval, feed.Start, feed.End)
		if err != nil {
			return nil, fmt.Errorf("load bars %s: %w", feed.Ticker, err)
		}
		feed.bars = bars
		series[feed.Ticker] = bars
	}
	return series, nil
}

func (e *Engine) primaryInterval() types.Interval {
	if len(e.feeds) == 0 {
		return types.Day
	}
	return e.feeds[0].Interval
}
