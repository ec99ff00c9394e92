package debtledger

import (
	"fmt"
	"sort"
)

// LIM is the tolerance under which a balance or a payment remainder is
// treated as zero.
const LIM = 0.005

// Ledger is the aggregate root of one debt history: the obligations owed,
// the payments made against them, report checkpoints, and manual FX
// overrides. A Ledger is a plain document; all running state lives inside
// one Calc invocation.
type Ledger struct {
	Title        string
	Note         string
	InternalNote string
	Rounding     int32 // display precision, 0 or 2 decimals

	Obligations []Obligation
	Payments    []Payment
	Checkpoints []Checkpoint
	FXRates     []FXRate
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Principal designates the amount a non-fixed obligation accrues against:
// either a back-reference to an earlier obligation (whose running balance is
// the principal) or an explicit amount with a currency.
type Principal struct {
	ref      int // obligation index, meaningful when byRef
	byRef    bool
	amount   float64
	currency string
}

// PrincipalRef returns a Principal referring to the obligation at index.
func PrincipalRef(index int) Principal {
	return Principal{ref: index, byRef: true}
}

// PrincipalAmount returns an explicit Principal.
func PrincipalAmount(amount float64, currency string) Principal {
	return Principal{amount: amount, currency: currency}
}

// Ref returns the referenced obligation index, and whether the principal is
// a back-reference at all.
func (p Principal) Ref() (int, bool) { return p.ref, p.byRef }

// Explicit returns the explicit amount and currency; meaningful only when
// the principal is not a back-reference.
func (p Principal) Explicit() (float64, string) { return p.amount, p.currency }

// Obligation is a single debit entry: a fixed principal or an accruing
// interest/fee clause. Obligations are identified by their position in
// Ledger.Obligations; a Principal back-reference must point to an earlier
// position.
type Obligation struct {
	Description string
	Regime      Regime

	// Fixed regime only.
	FixedAmount   float64
	FixedCurrency string
	FixedDate     Date

	// Rate regimes. PerAnnum and PerMensem also carry a day-count
	// convention; PerDiem is a per-mil daily rate.
	Rate       float64
	Convention Convention      // PerAnnum
	MonthConv  MonthConvention // PerMensem

	// Non-fixed regimes accrue against this principal.
	Principal Principal

	// Validity window. A zero DateFrom means "from the principal's due
	// date"; a zero DateTo means "until paid".
	DateFrom Date
	DateTo   Date
}

// Currency returns the currency the obligation's balance is kept in.
func (o *Obligation) Currency(l *Ledger) string {
	if o.Regime == Fixed {
		return o.FixedCurrency
	}
	if i, ok := o.Principal.Ref(); ok && i >= 0 && i < len(l.Obligations) {
		return l.Obligations[i].FixedCurrency
	}
	_, cur := o.Principal.Explicit()
	return cur
}

// DefaultDate returns the first day the obligation accrues: the day after
// its DateFrom if set, otherwise the day after its principal's due date.
// Meaningless for Fixed obligations.
func (o *Obligation) DefaultDate(l *Ledger) Date {
	if !o.DateFrom.IsZero() {
		return o.DateFrom.Add(1)
	}
	if i, ok := o.Principal.Ref(); ok && i >= 0 && i < len(l.Obligations) {
		return l.Obligations[i].FixedDate.Add(1)
	}
	return Date{}
}

// Label returns the display identifier of the obligation at index: "A" for
// the first, "B" for the second, and so on.
func Label(index int) string {
	if index <= 'Z'-'A' {
		return string(rune('A' + index))
	}
	return "?"
}

// Payment is a credit applied on a date against the obligations listed in
// Debits, in that exact order.
type Payment struct {
	Description string
	Date        Date
	Amount      float64
	Currency    string
	Debits      []int // allocation priority, obligation indices
}

// Checkpoint is a report-only marker: it produces a balance row on its date
// and never mutates any balance.
type Checkpoint struct {
	Description string
	Date        Date
}

// FXRate is a manually configured conversion: RateFrom units of From equal
// RateTo units of To, within the optional [DateFrom, DateTo] window.
type FXRate struct {
	From     string
	To       string
	RateFrom float64
	RateTo   float64
	DateFrom Date
	DateTo   Date
}

// covers reports whether the override applies on the given date.
func (r *FXRate) covers(on Date) bool {
	if !r.DateFrom.IsZero() && on.Before(r.DateFrom) {
		return false
	}
	if !r.DateTo.IsZero() && on.After(r.DateTo) {
		return false
	}
	return true
}

// validCurrency reports whether code looks like an ISO-4217 currency code.
// Discontinued codes (XEU, SKK, ...) must pass: old documents carry them and
// the CNB fixed-peg table resolves them.
func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of the ledger: known regimes,
// earlier-only principal back-references (which also rules out cycles),
// plausible currencies, valid conventions and non-inverted date windows.
func (l *Ledger) Validate() error {
	if l.Rounding != 0 && l.Rounding != 2 {
		return fmt.Errorf("rounding must be 0 or 2, got %d", l.Rounding)
	}
	for i := range l.Obligations {
		o := &l.Obligations[i]
		if err := l.validateObligation(i, o); err != nil {
			return fmt.Errorf("obligation %s: %w", Label(i), err)
		}
	}
	for i := range l.Payments {
		p := &l.Payments[i]
		if p.Date.IsZero() {
			return fmt.Errorf("payment %d: missing date", i+1)
		}
		if !validCurrency(p.Currency) {
			return fmt.Errorf("payment %d: invalid currency %q", i+1, p.Currency)
		}
		for _, d := range p.Debits {
			if d < 0 || d >= len(l.Obligations) {
				return fmt.Errorf("payment %d: debit index %d out of range", i+1, d)
			}
		}
	}
	for i := range l.Checkpoints {
		if l.Checkpoints[i].Date.IsZero() {
			return fmt.Errorf("checkpoint %d: missing date", i+1)
		}
	}
	for i := range l.FXRates {
		r := &l.FXRates[i]
		if !validCurrency(r.From) || !validCurrency(r.To) {
			return fmt.Errorf("fx rate %d: invalid currency pair %q/%q", i+1, r.From, r.To)
		}
		if r.RateFrom <= 0 || r.RateTo <= 0 {
			return fmt.Errorf("fx rate %d: non-positive rate", i+1)
		}
		if !r.DateFrom.IsZero() && !r.DateTo.IsZero() && r.DateTo.Before(r.DateFrom) {
			return fmt.Errorf("fx rate %d: inverted validity window", i+1)
		}
	}
	return nil
}

func (l *Ledger) validateObligation(i int, o *Obligation) error {
	switch o.Regime {
	case Fixed:
		if o.FixedDate.IsZero() {
			return fmt.Errorf("missing due date")
		}
		if !validCurrency(o.FixedCurrency) {
			return fmt.Errorf("invalid currency %q", o.FixedCurrency)
		}
		return nil
	case PerAnnum:
		if !o.Convention.Valid() {
			return fmt.Errorf("invalid day-count convention %q", o.Convention)
		}
	case PerMensem:
		if !o.MonthConv.Valid() {
			return fmt.Errorf("invalid day-count convention %q", o.MonthConv)
		}
	case PerDiem, Statutory1, Statutory2, Statutory3, Statutory4, Statutory5, Statutory6:
		// no extra payload
	default:
		return fmt.Errorf("unknown regime %d", o.Regime)
	}
	if ref, ok := o.Principal.Ref(); ok {
		if ref < 0 || ref >= i {
			return fmt.Errorf("principal reference %d must point to an earlier obligation", ref)
		}
		if l.Obligations[ref].Regime != Fixed {
			return fmt.Errorf("principal reference %d must point to a fixed obligation", ref)
		}
	} else {
		_, cur := o.Principal.Explicit()
		if !validCurrency(cur) {
			return fmt.Errorf("invalid principal currency %q", cur)
		}
		if o.DateFrom.IsZero() {
			return fmt.Errorf("explicit principal requires a start date")
		}
	}
	if !o.DateFrom.IsZero() && !o.DateTo.IsZero() && o.DateTo.Before(o.DateFrom) {
		return fmt.Errorf("inverted validity window")
	}
	return nil
}

// Currencies returns the sorted list of distinct currencies appearing in the
// ledger's obligations and payments, obligations first.
func (l *Ledger) Currencies() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for i := range l.Obligations {
		add(l.Obligations[i].Currency(l))
	}
	for i := range l.Payments {
		add(l.Payments[i].Currency)
	}
	sort.Strings(out)
	return out
}
