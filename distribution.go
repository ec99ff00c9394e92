package debtledger

// fxRatio resolves how many units of the target currency one unit of the
// source currency buys on the given date: 1 for a same-currency pair, the
// first manual override whose window covers the date, and otherwise the
// ratio of the two spot rates against the reference currency (a CZK leg
// short-circuits to 1).
func (r *run) fxRatio(on Date, from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}
	for i := range r.ledger.FXRates {
		fx := &r.ledger.FXRates[i]
		if fx.From == from && fx.To == to && fx.covers(on) {
			return fx.RateTo / fx.RateFrom, nil
		}
	}
	src := 1.0
	if from != "CZK" {
		q, err := r.src.FXRate(from, on)
		if err != nil {
			return 0, err
		}
		r.audit.addQuote(q, on)
		src = q.PerUnit()
	}
	dst := 1.0
	if to != "CZK" {
		q, err := r.src.FXRate(to, on)
		if err != nil {
			return 0, err
		}
		r.audit.addQuote(q, on)
		dst = q.PerUnit()
	}
	return src / dst, nil
}

// distribute allocates amount (in the payment's currency) over the listed
// obligations in strict order, consuming working balances. Obligations with
// a working balance under LIM are skipped; the walk stops once the remaining
// amount falls under LIM. alloc collects the per-obligation consumption in
// each obligation's own currency; the unconsumed remainder is returned as
// the carried-forward surplus.
func (r *run) distribute(on Date, amount float64, currency string, debits []int, alloc []float64) (float64, error) {
	if amount < LIM {
		return 0, nil
	}
	for _, i := range debits {
		st := &r.obs[i]
		if st.working < LIM {
			continue
		}
		ratio, err := r.fxRatio(on, currency, st.currency)
		if err != nil {
			return 0, err
		}
		converted := amount * ratio
		if converted < st.working {
			st.working = roundTo(st.working-converted, r.ledger.Rounding)
			alloc[i] += converted
			return 0, nil
		}
		alloc[i] += st.working
		amount -= st.working / ratio
		st.working = 0
	}
	return amount, nil
}
