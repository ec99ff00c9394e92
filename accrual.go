package debtledger

import "time"

// accrue computes the interest an obligation earned between past and present
// (exclusive of past, inclusive of present) on the given principal.
//
// past is clamped to the day before the obligation's default date, present
// to the obligation's DateTo; a non-positive span yields 0. Statutory4 never
// reaches this function: its daily fee compounds against a resetting monthly
// cap and is driven day by day by the simulation loop.
func accrue(o *Obligation, defaultDate Date, principal float64, past, present Date, src RateSource, audit *Audit) (float64, error) {
	floor := defaultDate.Add(-1)
	if past.IsZero() || past.Before(floor) {
		past = floor
	}
	if !o.DateTo.IsZero() && o.DateTo.Before(present) {
		present = o.DateTo
	}
	if !past.Before(present) {
		return 0, nil
	}

	switch o.Regime {
	case Fixed:
		// The fixed amount is booked by the creation event, nothing accrues.
		return 0, nil

	case PerAnnum:
		return principal * YearFraction(past, present, o.Convention) * o.Rate / 100.0, nil

	case PerMensem:
		return principal * MonthFraction(past, present, o.MonthConv) * o.Rate / 100.0, nil

	case PerDiem:
		return principal * float64(present.Sub(past)) * o.Rate / 1000.0, nil

	case Statutory1:
		rate, err := src.StatutoryRate(Discount, defaultDate)
		if err != nil {
			return 0, err
		}
		audit.addStatutory(Discount, rate, defaultDate)
		return principal * YearFraction(past, present, ActAct) * rate / 50.0, nil

	case Statutory2:
		return statutory2(principal, past, present, src, audit)

	case Statutory3, Statutory5:
		// Rate effective at the end of the semester preceding the default.
		on := defaultDate.PrecedingSemesterEnd()
		rate, err := src.StatutoryRate(Repo, on)
		if err != nil {
			return 0, err
		}
		audit.addStatutory(Repo, rate, on)
		spread := 7.0
		if o.Regime == Statutory5 {
			spread = 8.0
		}
		return principal * YearFraction(past, present, ActAct) * (rate + spread) / 100.0, nil

	case Statutory6:
		// Rate effective at the start of the semester containing the default.
		on := defaultDate.SemesterStart()
		rate, err := src.StatutoryRate(Repo, on)
		if err != nil {
			return 0, err
		}
		audit.addStatutory(Repo, rate, on)
		return principal * YearFraction(past, present, ActAct) * (rate + 8.0) / 100.0, nil
	}

	return 0, &ComputeError{Msg: "unknown model"}
}

// statutory2 walks the span semester by semester, looking up the repo rate
// at the start of each semester and accruing rate+7 over its fraction of the
// year. The division by 100 happens once, over the accumulated sum.
func statutory2(principal float64, past, present Date, src RateSource, audit *Audit) (float64, error) {
	sum := 0.0
	t := past
	for {
		t = t.Add(1)
		start := t.SemesterStart()
		rate, err := src.StatutoryRate(Repo, start)
		if err != nil {
			return 0, err
		}
		audit.addStatutory(Repo, rate, start)
		if t.Year() < present.Year() || (start.Month() == time.January && present.Month() > time.June) {
			// The span continues past this semester: accrue to its end and move on.
			end := t.SemesterEnd()
			sum += YearFraction(t.Add(-1), end, ActAct) * (rate + 7.0)
			t = end
			continue
		}
		end := NewDate(t.Year(), present.Month(), present.Day())
		sum += YearFraction(t.Add(-1), end, ActAct) * (rate + 7.0)
		return principal * sum / 100.0, nil
	}
}
