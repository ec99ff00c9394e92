package debtledger

import "fmt"

// RateKind selects a central-bank policy rate series.
type RateKind string

const (
	// Discount is the central bank discount rate (used by Statutory1).
	Discount RateKind = "DISC"
	// Repo is the two-week repo rate (used by Statutory2, 3, 5 and 6).
	Repo RateKind = "REPO"
	// Lombard is the lombard rate. The engine never asks for it, but rate
	// sources publish it and the CLI can query it.
	Lombard RateKind = "LOMB"
)

// Peg describes a fixed conversion from a discontinued currency to its
// successor, effective since a given date.
type Peg struct {
	From  string
	To    string
	Rate  float64 // units of From per one unit of To
	Since Date
}

// FXQuote is one resolved spot rate against the reference currency (CZK).
//
// Rate is the published table rate for Quantity units of Currency. When the
// requested currency was discontinued, Peg is set and Currency holds the
// successor actually found in the table.
type FXQuote struct {
	Currency string
	Rate     float64
	Quantity int
	Date     Date // effective date of the table the rate came from
	Peg      *Peg // non-nil when resolved through a fixed peg
}

// PerUnit returns the reference-currency value of one unit of the originally
// requested currency, folding in quantity and peg.
func (q FXQuote) PerUnit() float64 {
	r := q.Rate
	if q.Peg != nil {
		r /= q.Peg.Rate
	}
	return r / float64(q.Quantity)
}

// RateSource provides the external central-bank data the engine depends on.
// Both calls are blocking and fallible; failures must be *LookupError so the
// driver can attach them to the partial result.
type RateSource interface {
	// FXRate returns the spot rate of the currency against the reference
	// currency as published for the given date.
	FXRate(currency string, on Date) (FXQuote, error)
	// StatutoryRate returns the policy rate (percent per annum) in effect
	// on the given date.
	StatutoryRate(kind RateKind, on Date) (float64, error)
}

// LookupError reports that an external rate was unavailable: the service
// could not be reached, or no rate is published for the requested date.
type LookupError struct {
	What string // "fx" or the rate kind
	Date Date
	Err  error // optional cause
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s rate for %s: %v", e.What, e.Date, e.Err)
	}
	return fmt.Sprintf("%s rate for %s: not available", e.What, e.Date)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ComputeError reports invalid input discovered during simulation, such as
// an unknown regime tag. It is terminal for the invocation.
type ComputeError struct {
	Msg string
}

func (e *ComputeError) Error() string { return e.Msg }

// FXAudit records one successful spot-rate lookup, for the report's
// traceability section.
type FXAudit struct {
	Currency     string
	Quantity     int
	Rate         float64
	DateRequired Date
	Date         Date
}

// PegAudit records one fixed-peg conversion used during FX resolution.
type PegAudit struct {
	From  string
	To    string
	Rate  float64
	Since Date
}

// StatutoryAudit records one successful policy-rate lookup.
type StatutoryAudit struct {
	Kind RateKind
	Rate float64
	Date Date
}

// Audit accumulates the external data one Calc invocation relied on. It is
// informational only; duplicates are removed at render time.
type Audit struct {
	FX        []FXAudit
	Pegs      []PegAudit
	Statutory []StatutoryAudit
}

func (a *Audit) addQuote(q FXQuote, requested Date) {
	a.FX = append(a.FX, FXAudit{
		Currency:     q.Currency,
		Quantity:     q.Quantity,
		Rate:         q.Rate,
		DateRequired: requested,
		Date:         q.Date,
	})
	if q.Peg != nil {
		a.Pegs = append(a.Pegs, PegAudit{From: q.Peg.From, To: q.Peg.To, Rate: q.Peg.Rate, Since: q.Peg.Since})
	}
}

func (a *Audit) addStatutory(kind RateKind, rate float64, on Date) {
	a.Statutory = append(a.Statutory, StatutoryAudit{Kind: kind, Rate: rate, Date: on})
}
