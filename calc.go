package debtledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RowKind orders same-day events: obligations are created first, then
// payments apply, then checkpoints report.
type RowKind int

const (
	ObligationRow RowKind = iota
	PaymentRow
	CheckpointRow
)

// SurplusAmount is the unconsumed part of payments in one currency, carried
// forward from a row.
type SurplusAmount struct {
	Currency string
	Total    float64
}

// Row is one display line of the simulated history.
type Row struct {
	Kind        RowKind
	Date        Date
	Description string
	Label       string  // obligation label, set for ObligationRow
	Amount      float64 // fixed amount created, or negated payment amount
	Currency    string  // display currency of Amount
	Debits      []int   // payment priority order, set for PaymentRow

	Pre    []float64 // per-obligation balance before the event
	Change []float64 // per-obligation delta
	Post   []float64 // per-obligation balance after the event

	// Totals across obligations, meaningful only when all obligations
	// share one currency.
	PreTotal  float64
	PostTotal float64

	Allocation []float64 // this payment's split over obligations
	Surplus    []float64 // prior surpluses re-distributed over obligations

	Surpluses []SurplusAmount // remaining carried-forward surpluses
}

// Result is the outcome of one Calc invocation.
//
// Rows are valid up to the point Err was hit: a lookup or computation
// failure stops the simulation but does not discard what was already
// produced.
type Result struct {
	Rows  []Row
	Err   error
	Audit Audit

	// Currency summary for rendering.
	Currencies           []string
	MultiCurrency        bool
	MultiCurrencyDebit   bool
	ObligationCurrency   string // set when all obligations share one currency
	SingleCurrency       string // set when the whole ledger is one currency
	ObligationCurrencies []string
}

// obState is the per-invocation running state of one obligation. Engine
// state never leaks into the Ledger: two runs over the same document are
// independent.
type obState struct {
	currency    string
	balance     float64 // committed balance
	working     float64 // balance inside the current event step (pre-round)
	previous    float64 // balance at the start of the current event step
	defaultDate Date    // first accrual day, non-fixed regimes only

	// Statutory4 running fee state.
	anchor     Date    // next monthly cap reset
	monthlyMin float64 // fixed monthly fee component
	cap        float64 // current cap
	running    float64 // accrued in the current month
}

// run is the scratch arena of one Calc invocation.
type run struct {
	ledger *Ledger
	src    RateSource
	audit  *Audit

	obs      []obState
	surplus  []float64 // committed carried surplus per payment
	nextSurp []float64 // surplus inside the current event step
}

// event is one dated entry of the merged timeline.
type event struct {
	kind  RowKind
	date  Date
	index int // into Obligations, Payments or Checkpoints
}

// roundTo rounds half-to-even at the ledger's display precision.
func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).RoundBank(places).InexactFloat64()
}

// Calc replays the whole ledger and returns its day-by-day history.
//
// The returned result is complete on success; on a lookup or computation
// failure it carries the rows produced so far plus the error. The ledger
// itself is never mutated.
func Calc(l *Ledger, src RateSource) *Result {
	res := &Result{}
	res.summarizeCurrencies(l)

	r := &run{
		ledger:  l,
		src:     src,
		audit:   &res.Audit,
		obs:     make([]obState, len(l.Obligations)),
		surplus: make([]float64, len(l.Payments)),
	}
	r.nextSurp = make([]float64, len(l.Payments))

	events := r.timeline()
	if len(events) == 0 {
		return res
	}

	// The clock starts one day before the earliest of the first event and
	// the earliest default date, so first-day accrual sees a valid cursor.
	day := events[0].date
	for i := range l.Obligations {
		if l.Obligations[i].Regime != Fixed && r.obs[i].defaultDate.Before(day) {
			day = r.obs[i].defaultDate
		}
	}
	day = day.Add(-1)
	last := events[len(events)-1].date

	next := 0       // index of the next unprocessed event
	var cursor Date // date of the last balance-mutating event
	for !day.After(last) {
		r.statutory4Day(day)

		for next < len(events) && events[next].date == day {
			row, err := r.step(events[next], cursor)
			if row != nil {
				res.Rows = append(res.Rows, *row)
			}
			if err != nil {
				res.Err = err
				return res
			}
			if events[next].kind != CheckpointRow {
				r.commit()
				cursor = day
			}
			next++
		}
		day = day.Add(1)
	}
	return res
}

// timeline seeds the per-obligation state and returns all events ordered by
// date, same-day events ordered obligation, payment, checkpoint.
func (r *run) timeline() []event {
	l := r.ledger
	var events []event
	for i := range l.Obligations {
		o := &l.Obligations[i]
		st := &r.obs[i]
		st.currency = o.Currency(l)
		if o.Regime == Fixed {
			events = append(events, event{kind: ObligationRow, date: o.FixedDate, index: i})
			continue
		}
		st.defaultDate = o.DefaultDate(l)
		if o.Regime == Statutory4 {
			st.anchor = st.defaultDate
			if st.currency == "CZK" {
				st.monthlyMin = 25.0
			}
		}
	}
	for i := range l.Payments {
		events = append(events, event{kind: PaymentRow, date: l.Payments[i].Date, index: i})
	}
	for i := range l.Checkpoints {
		events = append(events, event{kind: CheckpointRow, date: l.Checkpoints[i].Date, index: i})
	}
	// Stable: same-day events keep input order within a kind, kinds order
	// within a day.
	sort.SliceStable(events, func(i, j int) bool { return events[i].kind < events[j].kind })
	sort.SliceStable(events, func(i, j int) bool { return events[i].date.Before(events[j].date) })
	return events
}

// statutory4Day books the day's fee for every active Statutory4 obligation.
//
// The fee is 0.25 % of the principal per day, but only the part exceeding
// the monthly cap is booked; the cap starts each month at the fixed monthly
// minimum (booked in full on the anchor day) and is raised whenever the
// running accrual overtakes it. The anchor advances to the same day of the
// next month, clamped to that month's length, and stays tied to the original
// default date's day across short months.
func (r *run) statutory4Day(day Date) {
	l := r.ledger
	for i := range l.Obligations {
		o := &l.Obligations[i]
		if o.Regime != Statutory4 {
			continue
		}
		st := &r.obs[i]
		if day.Before(st.defaultDate) {
			continue
		}
		if !o.DateTo.IsZero() && day.After(o.DateTo) {
			continue
		}
		reset := day == st.anchor
		if reset {
			st.running = 0
			st.cap = st.monthlyMin
		}
		principal := r.principalOf(o)
		daily := max(principal*0.0025, 0)
		st.running += daily
		var booked float64
		if st.running > st.cap {
			booked = st.running - st.cap
			st.cap = st.running
		}
		if reset {
			booked += st.monthlyMin
			st.anchor = nextAnchor(st.defaultDate.Day(), day)
		}
		st.balance += booked
	}
}

// nextAnchor returns the anchor day-of-month in the month after cur, clamped
// to that month's length. The day stays tied to the original default date,
// so an anchor never drifts after a short month.
func nextAnchor(dayOfMonth int, cur Date) Date {
	first := NewDate(cur.Year(), cur.Month()+1, 1)
	return NewDate(first.Year(), first.Month(), min(dayOfMonth, first.DaysInMonth()))
}

// principalOf resolves the committed principal balance of a non-fixed
// obligation.
func (r *run) principalOf(o *Obligation) float64 {
	if i, ok := o.Principal.Ref(); ok {
		return r.obs[i].balance
	}
	amount, _ := o.Principal.Explicit()
	return amount
}

// step processes one event: accrue interest since the cursor, apply the
// event, and emit the display row. Working balances are rounded at display
// precision; committed state is updated by the caller for non-checkpoint
// events.
func (r *run) step(e event, cursor Date) (*Row, error) {
	l := r.ledger
	day := e.date

	// Snapshot committed balances into the working set.
	for i := range r.obs {
		r.obs[i].working = r.obs[i].balance
	}

	// Accrue every non-Statutory4, non-fixed obligation since the cursor.
	for i := range l.Obligations {
		o := &l.Obligations[i]
		if o.Regime == Fixed || o.Regime == Statutory4 {
			continue
		}
		ai, err := accrue(o, r.obs[i].defaultDate, r.principalOf(o), cursor, day, r.src, r.audit)
		if err != nil {
			return nil, err
		}
		r.obs[i].working += ai
	}

	row := &Row{
		Kind:       e.kind,
		Date:       day,
		Pre:        make([]float64, len(l.Obligations)),
		Change:     make([]float64, len(l.Obligations)),
		Post:       make([]float64, len(l.Obligations)),
		Allocation: make([]float64, len(l.Obligations)),
		Surplus:    make([]float64, len(l.Obligations)),
	}

	for i := range r.obs {
		st := &r.obs[i]
		st.working = roundTo(st.working, l.Rounding)
		st.previous = st.working
		if e.kind != CheckpointRow {
			row.Pre[i] = st.working
			row.PreTotal += st.working
		}
	}

	switch e.kind {
	case ObligationRow:
		o := &l.Obligations[e.index]
		row.Description = o.Description
		row.Label = Label(e.index)
		row.Amount = o.FixedAmount
		row.Currency = o.FixedCurrency
		st := &r.obs[e.index]
		st.working = roundTo(st.working+o.FixedAmount, l.Rounding)
	case PaymentRow:
		row.Description = l.Payments[e.index].Description
	case CheckpointRow:
		row.Description = l.Checkpoints[e.index].Description
	}

	// Re-distribute every prior payment's carried surplus first.
	for i := range l.Payments {
		p := &l.Payments[i]
		rem, err := r.distribute(day, r.surplus[i], p.Currency, p.Debits, row.Surplus)
		if err != nil {
			return row, err
		}
		r.nextSurp[i] = rem
	}

	if e.kind == PaymentRow {
		p := &l.Payments[e.index]
		row.Amount = -p.Amount
		row.Currency = p.Currency
		row.Debits = p.Debits
		rem, err := r.distribute(day, p.Amount, p.Currency, p.Debits, row.Allocation)
		if err != nil {
			return row, err
		}
		r.nextSurp[e.index] += rem
	}

	for i := range r.obs {
		st := &r.obs[i]
		row.Post[i] = st.working
		row.PostTotal += st.working
		if e.kind != CheckpointRow {
			row.Change[i] = st.working - st.previous
		}
	}
	row.PostTotal = roundTo(row.PostTotal, l.Rounding)

	// Surpluses still carried after this event, grouped by currency.
	for i := range l.Payments {
		if r.nextSurp[i] > LIM {
			cur := l.Payments[i].Currency
			found := false
			for j := range row.Surpluses {
				if row.Surpluses[j].Currency == cur {
					row.Surpluses[j].Total += r.nextSurp[i]
					found = true
					break
				}
			}
			if !found {
				row.Surpluses = append(row.Surpluses, SurplusAmount{Currency: cur, Total: r.nextSurp[i]})
			}
		}
	}
	sort.Slice(row.Surpluses, func(i, j int) bool {
		return row.Surpluses[i].Currency < row.Surpluses[j].Currency
	})
	return row, nil
}

// commit promotes working state to committed state after a mutating event.
func (r *run) commit() {
	for i := range r.obs {
		r.obs[i].balance = r.obs[i].working
	}
	copy(r.surplus, r.nextSurp)
}

func (res *Result) summarizeCurrencies(l *Ledger) {
	seen := make(map[string]bool)
	for i := range l.Obligations {
		c := l.Obligations[i].Currency(l)
		if c != "" && !seen[c] {
			seen[c] = true
			res.ObligationCurrencies = append(res.ObligationCurrencies, c)
		}
	}
	res.MultiCurrencyDebit = len(res.ObligationCurrencies) > 1
	if len(res.ObligationCurrencies) == 1 {
		res.ObligationCurrency = res.ObligationCurrencies[0]
	}
	res.Currencies = l.Currencies()
	res.MultiCurrency = len(res.Currencies) > 1
	if len(res.Currencies) == 1 {
		res.SingleCurrency = res.Currencies[0]
	}
}
