package debtledger

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a display amount in a currency.
//
// Discontinued currencies (XEU, SKK, ...) are no longer in the ISO table
// go-money ships; those fall back to a plain fixed-point rendering so old
// documents still display.
type Money struct {
	value *money.Money
	raw   float64
	cur   string
}

// NewMoney creates a display amount from a float.
func NewMoney(amount float64, currency string) Money {
	m := Money{raw: amount, cur: currency}
	if cur := money.GetCurrency(currency); cur != nil {
		factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
		units := decimal.NewFromFloat(amount).Mul(factor).RoundBank(0)
		m.value = money.New(units.IntPart(), currency)
	}
	return m
}

// String returns the currency-aware rendering of the amount.
func (m Money) String() string {
	if m.value != nil {
		return m.value.Display()
	}
	return fmt.Sprintf("%s %s", decimal.NewFromFloat(m.raw).StringFixed(2), m.cur)
}

// AsFloat returns the original float amount.
func (m Money) AsFloat() float64 { return m.raw }

func (m Money) IsZero() bool     { return m.raw > -LIM && m.raw < LIM }
func (m Money) IsNegative() bool { return m.raw <= -LIM }

// KnownCurrency reports whether the code is in the current ISO-4217 table.
// Structural validation of documents is looser on purpose; see Validate.
func KnownCurrency(code string) bool { return money.GetCurrency(code) != nil }
