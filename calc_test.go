package debtledger

import (
	"errors"
	"math"
	"testing"
)

func TestCalcFixedOnly(t *testing.T) {
	l := &Ledger{
		Rounding: 2,
		Obligations: []Obligation{
			{Description: "Loan", Regime: Fixed, FixedAmount: 10000, FixedCurrency: "CZK", FixedDate: d(2016, 12, 31)},
		},
		Checkpoints: []Checkpoint{{Description: "Status", Date: d(2017, 6, 30)}},
	}
	res := Calc(l, &stubSource{})
	if res.Err != nil {
		t.Fatalf("Calc() error = %v", res.Err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(res.Rows))
	}

	cr := res.Rows[0]
	if cr.Kind != ObligationRow || cr.Label != "A" || cr.Amount != 10000 {
		t.Errorf("creation row = %+v", cr)
	}
	if cr.Pre[0] != 0 || cr.Change[0] != 10000 || cr.Post[0] != 10000 {
		t.Errorf("creation balances = %v/%v/%v", cr.Pre[0], cr.Change[0], cr.Post[0])
	}

	cp := res.Rows[1]
	if cp.Kind != CheckpointRow || cp.Post[0] != 10000 {
		t.Errorf("checkpoint row = %+v", cp)
	}
	if res.SingleCurrency != "CZK" || res.MultiCurrency {
		t.Errorf("currency summary = %q multi=%v", res.SingleCurrency, res.MultiCurrency)
	}
}

func TestCalcInterestAndPayment(t *testing.T) {
	l := &Ledger{
		Rounding: 2,
		Obligations: []Obligation{
			{Description: "Loan", Regime: Fixed, FixedAmount: 10000, FixedCurrency: "CZK", FixedDate: d(2016, 12, 31)},
			{Description: "Interest", Regime: PerAnnum, Rate: 10, Convention: ActAct, Principal: PrincipalRef(0)},
		},
		Payments: []Payment{
			{Description: "Payment", Date: d(2017, 12, 31), Amount: 1000, Currency: "CZK", Debits: []int{1, 0}},
		},
	}
	res := Calc(l, &stubSource{})
	if res.Err != nil {
		t.Fatalf("Calc() error = %v", res.Err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(res.Rows))
	}

	// Exactly one year of interest at 10 % accrued by the payment day,
	// and the payment consumes it to the fillér.
	pr := res.Rows[1]
	if pr.Kind != PaymentRow || pr.Amount != -1000 {
		t.Errorf("payment row = %+v", pr)
	}
	if math.Abs(pr.Pre[1]-1000) > 1e-9 {
		t.Errorf("interest before payment = %v, want 1000", pr.Pre[1])
	}
	if math.Abs(pr.Allocation[1]-1000) > 1e-9 || pr.Allocation[0] != 0 {
		t.Errorf("allocation = %v, want [0 1000]", pr.Allocation)
	}
	if pr.Post[0] != 10000 || math.Abs(pr.Post[1]) > LIM {
		t.Errorf("closing balances = %v, want [10000 0]", pr.Post)
	}
	if len(pr.Surpluses) != 0 {
		t.Errorf("unexpected surplus %v", pr.Surpluses)
	}
}

func TestCalcStatutory4Fee(t *testing.T) {
	l := &Ledger{
		Rounding: 2,
		Obligations: []Obligation{
			{Description: "Premium", Regime: Fixed, FixedAmount: 10000, FixedCurrency: "CZK", FixedDate: d(2017, 1, 14)},
			{Description: "Fee", Regime: Statutory4, Principal: PrincipalRef(0)},
		},
		Checkpoints: []Checkpoint{
			{Date: d(2017, 1, 15)},
			{Date: d(2017, 1, 16)},
			{Date: d(2017, 2, 15)},
		},
	}
	res := Calc(l, &stubSource{})
	if res.Err != nil {
		t.Fatalf("Calc() error = %v", res.Err)
	}
	if len(res.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(res.Rows))
	}

	// Day one books the monthly minimum of 25; the daily 0.25 % of 10000
	// is exactly 25, so day two books the 25 above the cap; by the next
	// anchor the fee is 31 days of 25 plus the new monthly minimum.
	if got := res.Rows[1].Post[1]; math.Abs(got-25) > 1e-9 {
		t.Errorf("fee after day one = %v, want 25", got)
	}
	if got := res.Rows[2].Post[1]; math.Abs(got-50) > 1e-9 {
		t.Errorf("fee after day two = %v, want 50", got)
	}
	if got := res.Rows[3].Post[1]; math.Abs(got-(31*25+25)) > 1e-9 {
		t.Errorf("fee at the next anchor = %v, want %v", got, 31*25+25)
	}
}

func TestCalcSurplusCarriedForward(t *testing.T) {
	l := &Ledger{
		Rounding: 2,
		Obligations: []Obligation{
			{Description: "First", Regime: Fixed, FixedAmount: 1000, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
			{Description: "Second", Regime: Fixed, FixedAmount: 500, FixedCurrency: "CZK", FixedDate: d(2017, 6, 1)},
		},
		Payments: []Payment{
			{Description: "Payment", Date: d(2017, 3, 1), Amount: 1500, Currency: "CZK", Debits: []int{0, 1}},
		},
	}
	res := Calc(l, &stubSource{})
	if res.Err != nil {
		t.Fatalf("Calc() error = %v", res.Err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Rows))
	}

	// The payment overshoots: the second obligation does not exist yet,
	// so 500 is carried as surplus.
	pr := res.Rows[1]
	if pr.Allocation[0] != 1000 || pr.Post[0] != 0 {
		t.Errorf("payment row alloc=%v post=%v", pr.Allocation, pr.Post)
	}
	if len(pr.Surpluses) != 1 || pr.Surpluses[0].Currency != "CZK" || math.Abs(pr.Surpluses[0].Total-500) > 1e-9 {
		t.Errorf("surpluses = %v, want 500 CZK", pr.Surpluses)
	}

	// Creating the second obligation immediately absorbs the surplus.
	cr := res.Rows[2]
	if math.Abs(cr.Surplus[1]-500) > 1e-9 {
		t.Errorf("redistributed surplus = %v, want 500", cr.Surplus[1])
	}
	if math.Abs(cr.Post[1]) > LIM {
		t.Errorf("second obligation balance = %v, want 0", cr.Post[1])
	}
	if len(cr.Surpluses) != 0 {
		t.Errorf("surplus still carried: %v", cr.Surpluses)
	}
}

func TestCalcPartialResultOnLookupFailure(t *testing.T) {
	l := &Ledger{
		Rounding: 2,
		Obligations: []Obligation{
			{Regime: Fixed, FixedAmount: 10000, FixedCurrency: "CZK", FixedDate: d(2013, 8, 15)},
			{Regime: Statutory3, Principal: PrincipalRef(0)},
		},
		Checkpoints: []Checkpoint{{Date: d(2014, 8, 15)}},
	}
	res := Calc(l, &stubSource{}) // no statutory rates available
	var lerr *LookupError
	if !errors.As(res.Err, &lerr) {
		t.Fatalf("Calc() error = %v, want *LookupError", res.Err)
	}
	// The creation row produced before the failure survives.
	if len(res.Rows) != 1 || res.Rows[0].Kind != ObligationRow {
		t.Errorf("rows = %+v, want the creation row only", res.Rows)
	}
}

func TestCalcCurrencySummary(t *testing.T) {
	l := &Ledger{
		Obligations: []Obligation{
			{Regime: Fixed, FixedAmount: 10000, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
			{Regime: PerAnnum, Rate: 10, Convention: ActAct, Principal: PrincipalRef(0)},
		},
		Payments: []Payment{
			{Date: d(2017, 6, 1), Amount: 100, Currency: "EUR", Debits: []int{0}},
		},
	}
	var res Result
	res.summarizeCurrencies(l)
	if !res.MultiCurrency || res.MultiCurrencyDebit {
		t.Errorf("multi=%v multiDebit=%v, want true/false", res.MultiCurrency, res.MultiCurrencyDebit)
	}
	if res.ObligationCurrency != "CZK" || res.SingleCurrency != "" {
		t.Errorf("obligation currency %q, single %q", res.ObligationCurrency, res.SingleCurrency)
	}
}
