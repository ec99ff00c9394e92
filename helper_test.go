package debtledger

import (
	"fmt"
	"time"
)

// stubSource is a RateSource for tests: fixed per-currency quotes against
// CZK and piecewise-constant policy rates.
type stubSource struct {
	fx    map[string]FXQuote
	rates []stubRate
}

type stubRate struct {
	kind  RateKind
	valid Date
	rate  float64
}

func (s *stubSource) FXRate(currency string, on Date) (FXQuote, error) {
	if q, ok := s.fx[currency]; ok {
		q.Date = on
		return q, nil
	}
	return FXQuote{}, &LookupError{What: "fx", Date: on, Err: fmt.Errorf("no quote for %s", currency)}
}

func (s *stubSource) StatutoryRate(kind RateKind, on Date) (float64, error) {
	found := false
	var best Date
	var rate float64
	for _, r := range s.rates {
		if r.kind != kind || r.valid.After(on) {
			continue
		}
		if !found || best.Before(r.valid) {
			found, best, rate = true, r.valid, r.rate
		}
	}
	if !found {
		return 0, &LookupError{What: string(kind), Date: on}
	}
	return rate, nil
}

// d is a shorthand date constructor for test tables.
func d(y, m, day int) Date { return NewDate(y, time.Month(m), day) }
