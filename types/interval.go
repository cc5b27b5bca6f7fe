package types

import "time"

type Interval string

const (
	OneMinute      Interval = "1"
	FiveMinutes    Interval = "5"
	FifteenMinutes Interval = "15"
	ThirtyMinutes  Interval = "30"
	Hour           Interval = "60"
	FourHours      Interval = "240"
	Day            Interval = "D"
)

var IntervalToTime = map[Interval]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    time.Minute * 5,
	FifteenMinutes: time.Minute * 15,
	ThirtyMinutes:  time.Minute * 30,
	Hour:           time.Hour,
	FourHours:      time.Hour * 4,
	Day:            time.Hour * 24,
}

// AnnualizationPeriods is the number of bars per trading year for each
// interval, used to annualize per-bar return statistics. Assumes 252
// trading days and 6.5 trading hours per day.
var AnnualizationPeriods = map[Interval]float64{
	OneMinute:      252 * 6.5 * 60,
	FiveMinutes:    252 * 6.5 * 12,
	FifteenMinutes: 252 * 6.5 * 4,
	ThirtyMinutes:  252 * 6.5 * 2,
	Hour:           252 * 6.5,
	FourHours:      252 * 6.5 / 4,
	Day:            252,
}
