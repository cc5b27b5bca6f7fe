package repository

import (
	"context"
	"errors"
	"time"

	"eventbt/types"

	"github.com/jackc/pgx/v5"
)

var bucketToInterval = map[types.Interval]string{
	types.OneMinute:      "1 minute",
	types.FiveMinutes:    "5 minutes",
	types.FifteenMinutes: "15 minutes",
	types.ThirtyMinutes:  "30 minutes",
	types.Hour:           "1 hour",
	types.FourHours:      "4 hours",
	types.Day:            "1 day",
}

// GetBars returns time-ordered bars for one asset over [start, end),
// aggregated up to the requested interval.
func (db *Database) GetBars(ctx context.Context, assetId int, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	bucket, ok := bucketToInterval[interval]
	if !ok {
		return nil, ErrIntervalNotSupported
	}
	args := getAggregatesParams{
		TimeBucket: bucket,
		AssetID:    int32(assetId),
		StartTime:  start,
		EndTime:    end,
	}
	rows, err := db.bars.GetAggregates(ctx, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoBars
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoBars
	}
	return convertBars(rows, interval, ticker), nil
}

func convertBars(daos []barRow, interval types.Interval, ticker string) []types.Bar {
	var bars []types.Bar
	for _, dao := range daos {
		bars = append(bars, types.Bar{
			AssetId:   int(dao.AssetID),
			Ticker:    ticker,
			Open:      dao.Open,
			Close:     dao.Close,
			High:      dao.High,
			Low:       dao.Low,
			Volume:    dao.Volume,
			Interval:  interval,
			Timestamp: dao.Bucket,
		})
	}
	return bars
}
