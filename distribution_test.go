package debtledger

import (
	"math"
	"testing"
)

func newTestRun(l *Ledger, src RateSource, balances ...float64) *run {
	r := &run{
		ledger:  l,
		src:     src,
		audit:   &Audit{},
		obs:     make([]obState, len(l.Obligations)),
		surplus: make([]float64, len(l.Payments)),
	}
	r.nextSurp = make([]float64, len(l.Payments))
	for i := range r.obs {
		r.obs[i].currency = l.Obligations[i].Currency(l)
		r.obs[i].working = balances[i]
	}
	return r
}

func TestFXRatio(t *testing.T) {
	src := &stubSource{fx: map[string]FXQuote{
		"EUR": {Currency: "EUR", Rate: 25.0, Quantity: 1},
		"HUF": {Currency: "HUF", Rate: 8.0, Quantity: 100},
	}}
	l := &Ledger{FXRates: []FXRate{
		{From: "USD", To: "CZK", RateFrom: 1, RateTo: 20, DateFrom: d(2017, 1, 1), DateTo: d(2017, 12, 31)},
	}}
	r := newTestRun(l, src)

	tests := []struct {
		name     string
		on       Date
		from, to string
		want     float64
	}{
		{"same currency", d(2017, 6, 1), "EUR", "EUR", 1.0},
		{"manual override", d(2017, 6, 1), "USD", "CZK", 20.0},
		{"foreign to reference", d(2017, 6, 1), "EUR", "CZK", 25.0},
		{"reference to foreign", d(2017, 6, 1), "CZK", "EUR", 1.0 / 25.0},
		{"cross via reference", d(2017, 6, 1), "EUR", "HUF", 25.0 / 0.08},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.fxRatio(tc.on, tc.from, tc.to)
			if err != nil {
				t.Fatalf("fxRatio() error = %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("fxRatio(%s->%s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}

	t.Run("override outside window falls through", func(t *testing.T) {
		_, err := r.fxRatio(d(2018, 6, 1), "USD", "CZK")
		if err == nil {
			t.Fatal("expected a lookup error once the override window ends")
		}
	})
}

func TestDistributeOrder(t *testing.T) {
	l := &Ledger{Obligations: []Obligation{
		{Regime: Fixed, FixedAmount: 100, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
		{Regime: Fixed, FixedAmount: 200, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
	}}
	r := newTestRun(l, &stubSource{}, 100, 200)

	alloc := make([]float64, 2)
	rem, err := r.distribute(d(2017, 2, 1), 150, "CZK", []int{1, 0}, alloc)
	if err != nil {
		t.Fatalf("distribute() error = %v", err)
	}
	if rem != 0 {
		t.Errorf("remainder = %v, want 0", rem)
	}
	// Priority order 1 then 0: nothing reaches obligation 0.
	if alloc[1] != 150 || alloc[0] != 0 {
		t.Errorf("alloc = %v, want [0 150]", alloc)
	}
	if r.obs[1].working != 50 || r.obs[0].working != 100 {
		t.Errorf("working = [%v %v], want [100 50]", r.obs[0].working, r.obs[1].working)
	}
}

func TestDistributeSkipsSettled(t *testing.T) {
	l := &Ledger{Obligations: []Obligation{
		{Regime: Fixed, FixedAmount: 100, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
		{Regime: Fixed, FixedAmount: 200, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
	}}
	r := newTestRun(l, &stubSource{}, 0.001, 200) // first already settled within tolerance

	alloc := make([]float64, 2)
	rem, err := r.distribute(d(2017, 2, 1), 50, "CZK", []int{0, 1}, alloc)
	if err != nil {
		t.Fatalf("distribute() error = %v", err)
	}
	if rem != 0 {
		t.Errorf("remainder = %v, want 0", rem)
	}
	if alloc[0] != 0 || alloc[1] != 50 {
		t.Errorf("alloc = %v, want [0 50]", alloc)
	}
}

func TestDistributeSurplus(t *testing.T) {
	l := &Ledger{Obligations: []Obligation{
		{Regime: Fixed, FixedAmount: 100, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
	}}
	r := newTestRun(l, &stubSource{}, 100)

	alloc := make([]float64, 1)
	rem, err := r.distribute(d(2017, 2, 1), 130, "CZK", []int{0}, alloc)
	if err != nil {
		t.Fatalf("distribute() error = %v", err)
	}
	if math.Abs(rem-30) > 1e-9 {
		t.Errorf("remainder = %v, want 30", rem)
	}
	if alloc[0] != 100 || r.obs[0].working != 0 {
		t.Errorf("alloc[0] = %v, working = %v, want 100 and 0", alloc[0], r.obs[0].working)
	}
}

func TestDistributeNegligibleAmount(t *testing.T) {
	l := &Ledger{Obligations: []Obligation{
		{Regime: Fixed, FixedAmount: 100, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
	}}
	r := newTestRun(l, &stubSource{}, 100)

	alloc := make([]float64, 1)
	rem, err := r.distribute(d(2017, 2, 1), 0.004, "CZK", []int{0}, alloc)
	if err != nil {
		t.Fatalf("distribute() error = %v", err)
	}
	if rem != 0 || alloc[0] != 0 || r.obs[0].working != 100 {
		t.Errorf("got rem=%v alloc=%v working=%v, want untouched state", rem, alloc[0], r.obs[0].working)
	}
}

func TestDistributeConverts(t *testing.T) {
	src := &stubSource{fx: map[string]FXQuote{
		"EUR": {Currency: "EUR", Rate: 25.0, Quantity: 1},
	}}
	l := &Ledger{Obligations: []Obligation{
		{Regime: Fixed, FixedAmount: 1000, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
	}}
	r := newTestRun(l, src, 1000)

	// 10 EUR at 25 CZK/EUR pays off 250 CZK.
	alloc := make([]float64, 1)
	rem, err := r.distribute(d(2017, 2, 1), 10, "EUR", []int{0}, alloc)
	if err != nil {
		t.Fatalf("distribute() error = %v", err)
	}
	if rem != 0 {
		t.Errorf("remainder = %v, want 0", rem)
	}
	if math.Abs(alloc[0]-250) > 1e-9 {
		t.Errorf("alloc[0] = %v, want 250", alloc[0])
	}
	if math.Abs(r.obs[0].working-750) > 1e-9 {
		t.Errorf("working = %v, want 750", r.obs[0].working)
	}
	if len(r.audit.FX) == 0 {
		t.Error("expected an fx audit entry")
	}
}
