package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill confirms that an order executed at a price and cost. FillCost is the
// gross trade value (price * quantity), commission excluded.
type Fill struct {
	Timestamp  time.Time
	Ticker     string
	VenueID    string
	Quantity   decimal.Decimal
	Side       Side
	FillCost   decimal.Decimal
	Commission decimal.Decimal
}

func NewFill(
	timestamp time.Time,
	ticker string,
	venueID string,
	quantity decimal.Decimal,
	side Side,
	fillCost decimal.Decimal,
	commission decimal.Decimal,
) Fill {
	return Fill{
		Timestamp:  timestamp,
		Ticker:     ticker,
		VenueID:    venueID,
		Quantity:   quantity,
		Side:       side,
		FillCost:   fillCost,
		Commission: commission,
	}
}
