package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventbt/types"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var testInterval = types.OneMinute
var startTime = time.UnixMilli(0)
var endTime = startTime.Add(time.Minute * 5)

type mockBarsRepository struct {
	sqlError error
}

func (m mockBarsRepository) GetAggregates(_ context.Context, arg getAggregatesParams) ([]barRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	var rows []barRow
	i := arg.StartTime
	for i.Before(arg.EndTime) {
		rows = append(rows, barRow{
			Bucket:  i,
			AssetID: arg.AssetID,
			Open:    decimal.NewFromInt(i.UnixMilli()),
			High:    decimal.NewFromInt(i.UnixMilli()),
			Low:     decimal.NewFromInt(i.UnixMilli()),
			Close:   decimal.NewFromInt(i.UnixMilli()),
			Volume:  decimal.NewFromInt(i.UnixMilli()),
		})
		i = i.Add(types.IntervalToTime[testInterval])
	}
	return rows, nil
}

func TestDatabase_GetBars(t *testing.T) {
	type args struct {
		assetId  int
		interval types.Interval
		start    time.Time
		end      time.Time
	}
	tests := []struct {
		name    string
		args    args
		sqlErr  error
		wantErr error
		wantLen int
	}{
		{"should throw ErrNoBars on empty result", args{999, testInterval, startTime, startTime}, nil, ErrNoBars, 0},
		{"should throw ErrNoBars on no rows", args{999, testInterval, startTime, endTime}, pgx.ErrNoRows, ErrNoBars, 0},
		{"should throw ErrIntervalNotSupported", args{999, "W", startTime, endTime}, nil, ErrIntervalNotSupported, 0},
		{"should return bars", args{999, testInterval, startTime, endTime}, nil, nil, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				bars: mockBarsRepository{sqlError: tt.sqlErr},
			}
			got, err := db.GetBars(context.Background(), tt.args.assetId, "AAPL", tt.args.interval, tt.args.start, tt.args.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetBars() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("GetBars() returned %d bars, want %d", len(got), tt.wantLen)
			}
			for i, bar := range got {
				if bar.AssetId != tt.args.assetId {
					t.Errorf("bar %d assetId = %v, want %v", i, bar.AssetId, tt.args.assetId)
					break
				}
				if bar.Ticker != "AAPL" {
					t.Errorf("bar %d ticker = %v, want AAPL", i, bar.Ticker)
					break
				}
				if bar.Interval != tt.args.interval {
					t.Errorf("bar %d interval = %v, want %v", i, bar.Interval, tt.args.interval)
					break
				}
			}
		})
	}
}
