package types

type Side string

type SignalDirection string

type OrderKind string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"

	DirectionLong  SignalDirection = "LONG"
	DirectionShort SignalDirection = "SHORT"
	DirectionExit  SignalDirection = "EXIT"

	KindMarket OrderKind = "MARKET"
	KindLimit  OrderKind = "LIMIT"
)
