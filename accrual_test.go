package debtledger

import (
	"errors"
	"math"
	"testing"
)

func TestAccrueConventional(t *testing.T) {
	src := &stubSource{}
	tests := []struct {
		name string
		o    Obligation
		past Date
		pres Date
		want float64
	}{
		{
			name: "per annum over one year",
			o:    Obligation{Regime: PerAnnum, Rate: 10, Convention: ActAct, DateFrom: d(2016, 12, 31)},
			past: Date{}, pres: d(2017, 12, 31),
			want: 1000,
		},
		{
			name: "per mensem over one month",
			o:    Obligation{Regime: PerMensem, Rate: 1, MonthConv: MonthAct, DateFrom: d(2017, 1, 31)},
			past: Date{}, pres: d(2017, 2, 28),
			want: 100,
		},
		{
			name: "per diem",
			o:    Obligation{Regime: PerDiem, Rate: 1, DateFrom: d(2017, 1, 1)},
			past: d(2017, 1, 1), pres: d(2017, 1, 11),
			want: 100, // 10 days at 1 per mil of 10000
		},
		{
			name: "window cap",
			o:    Obligation{Regime: PerDiem, Rate: 1, DateFrom: d(2017, 1, 1), DateTo: d(2017, 1, 6)},
			past: d(2017, 1, 1), pres: d(2017, 1, 11),
			want: 50,
		},
		{
			name: "empty span",
			o:    Obligation{Regime: PerAnnum, Rate: 10, Convention: ActAct, DateFrom: d(2017, 1, 1)},
			past: d(2017, 6, 1), pres: d(2017, 6, 1),
			want: 0,
		},
		{
			name: "fixed accrues nothing",
			o:    Obligation{Regime: Fixed, FixedAmount: 500, FixedCurrency: "CZK", FixedDate: d(2017, 1, 1)},
			past: d(2017, 1, 1), pres: d(2018, 1, 1),
			want: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var audit Audit
			dd := tc.o.DateFrom.Add(1)
			got, err := accrue(&tc.o, dd, 10000, tc.past, tc.pres, src, &audit)
			if err != nil {
				t.Fatalf("accrue() error = %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("accrue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAccrueStatutoryLookupDates(t *testing.T) {
	// One rate per kind and date, so a wrong lookup date shows up as a
	// wrong amount.
	src := &stubSource{rates: []stubRate{
		{Discount, d(1990, 1, 1), 1.0},
		{Repo, d(2012, 12, 31), 0.05},
		{Repo, d(2013, 7, 1), 0.25},
	}}

	tests := []struct {
		name string
		o    Obligation
		want float64
	}{
		// default date 2013-08-16: preceding semester end is 2013-06-30,
		// where the repo rate is still 0.05.
		{
			name: "statutory3 repo plus seven at preceding semester end",
			o:    Obligation{Regime: Statutory3, DateFrom: d(2013, 8, 15), DateTo: d(2014, 8, 15)},
			want: 10000 * (0.05 + 7.0) / 100.0,
		},
		{
			name: "statutory5 repo plus eight at preceding semester end",
			o:    Obligation{Regime: Statutory5, DateFrom: d(2013, 8, 15), DateTo: d(2014, 8, 15)},
			want: 10000 * (0.05 + 8.0) / 100.0,
		},
		// same default date, but the rate is taken at the start of the
		// containing semester, 2013-07-01, where it is 0.25.
		{
			name: "statutory6 repo plus eight at semester start",
			o:    Obligation{Regime: Statutory6, DateFrom: d(2013, 8, 15), DateTo: d(2014, 8, 15)},
			want: 10000 * (0.25 + 8.0) / 100.0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var audit Audit
			dd := tc.o.DateFrom.Add(1)
			// exactly one ACT/ACT year: 2013-08-15 to 2014-08-15
			got, err := accrue(&tc.o, dd, 10000, d(2013, 8, 15), d(2014, 8, 15), src, &audit)
			if err != nil {
				t.Fatalf("accrue() error = %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("accrue() = %v, want %v", got, tc.want)
			}
			if len(audit.Statutory) == 0 {
				t.Error("expected a statutory audit entry")
			}
		})
	}
}

func TestAccrueStatutory1(t *testing.T) {
	src := &stubSource{rates: []stubRate{{Discount, d(1990, 1, 1), 2.0}}}
	o := Obligation{Regime: Statutory1, DateFrom: d(2002, 12, 31)}
	var audit Audit
	got, err := accrue(&o, d(2003, 1, 1), 10000, d(2002, 12, 31), d(2003, 12, 31), src, &audit)
	if err != nil {
		t.Fatalf("accrue() error = %v", err)
	}
	// one year at twice the discount rate: rate/50 instead of rate/100
	want := 10000 * 1.0 * 2.0 / 50.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("accrue() = %v, want %v", got, want)
	}
}

func TestAccrueStatutory2SemesterWalk(t *testing.T) {
	src := &stubSource{rates: []stubRate{
		{Repo, d(2012, 1, 1), 0.05},
		{Repo, d(2013, 7, 1), 0.25},
	}}
	o := Obligation{Regime: Statutory2, DateFrom: d(2012, 12, 31)}
	var audit Audit
	got, err := accrue(&o, d(2013, 1, 1), 10000, d(2012, 12, 31), d(2013, 12, 31), src, &audit)
	if err != nil {
		t.Fatalf("accrue() error = %v", err)
	}
	// first semester at 0.05+7, second at 0.25+7, each over its actual
	// fraction of the year
	want := 10000 * (181.0/365.0*(0.05+7.0) + 184.0/365.0*(0.25+7.0)) / 100.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("accrue() = %v, want %v", got, want)
	}
	if len(audit.Statutory) != 2 {
		t.Errorf("expected 2 statutory audit entries, got %d", len(audit.Statutory))
	}
}

func TestAccrueLookupFailure(t *testing.T) {
	src := &stubSource{} // no rates at all
	o := Obligation{Regime: Statutory3, DateFrom: d(2013, 8, 15)}
	var audit Audit
	_, err := accrue(&o, d(2013, 8, 16), 10000, d(2013, 8, 15), d(2014, 8, 15), src, &audit)
	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("accrue() error = %v, want *LookupError", err)
	}
}
