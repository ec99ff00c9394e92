package debtledger

import (
	"strings"
	"testing"
)

func TestMoneyString(t *testing.T) {
	// Current ISO currencies render through the currency table.
	m := NewMoney(1234.5, "CZK")
	if s := m.String(); !strings.Contains(s, "1") || !strings.Contains(s, "234") {
		t.Errorf("String() = %q", s)
	}
	// Discontinued currencies fall back to a plain rendering.
	if got := NewMoney(100, "XEU").String(); got != "100.00 XEU" {
		t.Errorf("String() = %q, want %q", got, "100.00 XEU")
	}
}

func TestMoneyPredicates(t *testing.T) {
	tests := []struct {
		amount   float64
		zero     bool
		negative bool
	}{
		{0, true, false},
		{0.004, true, false},
		{-0.004, true, false},
		{1, false, false},
		{-1, false, true},
	}
	for _, tc := range tests {
		m := NewMoney(tc.amount, "CZK")
		if m.IsZero() != tc.zero || m.IsNegative() != tc.negative {
			t.Errorf("%v: IsZero=%v IsNegative=%v, want %v/%v",
				tc.amount, m.IsZero(), m.IsNegative(), tc.zero, tc.negative)
		}
		if m.AsFloat() != tc.amount {
			t.Errorf("AsFloat() = %v, want %v", m.AsFloat(), tc.amount)
		}
	}
}

func TestKnownCurrency(t *testing.T) {
	if !KnownCurrency("CZK") || !KnownCurrency("EUR") {
		t.Error("current codes must be known")
	}
	if KnownCurrency("XEU") || KnownCurrency("XXX_") {
		t.Error("discontinued or malformed codes must not be known")
	}
}
