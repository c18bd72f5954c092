package money

import "github.com/shopspring/decimal"

type Direction string

const (
	Add    Direction = "+"
	Deduct Direction = "-"
)

// Adjustment is a magnitude entered next to a +/- selector, the way freight
// and traveling cost are captured on the bill forms.
type Adjustment struct {
	Amount    Lenient   `json:"amount"`
	Direction Direction `json:"direction"`
}

// Signed normalizes an adjustment into one signed value. A missing or unknown
// direction falls back to def.
func (a Adjustment) Signed(def Direction) decimal.Decimal {
	return Signed(a.Amount.Decimal(), a.Direction, def)
}

// Signed applies dir to the magnitude of amount.
func Signed(amount decimal.Decimal, dir, def Direction) decimal.Decimal {
	if dir != Add && dir != Deduct {
		dir = def
	}
	magnitude := amount.Abs()
	if dir == Deduct {
		return magnitude.Neg()
	}
	return magnitude
}
