package debtledger

import "fmt"

// Regime identifies how an obligation accrues.
//
// The statutory regimes are the Czech late-payment formulas, numbered by
// their period of legal effect; their exact meaning is encoded in accrue and
// in the simulation driver (Statutory4).
type Regime int

const (
	// Fixed is a one-off amount due on a fixed date.
	Fixed Regime = iota
	// PerAnnum accrues a yearly percentage under a day-count convention.
	PerAnnum
	// PerMensem accrues a monthly percentage under a day-count convention.
	PerMensem
	// PerDiem accrues a daily per-mil rate.
	PerDiem
	// Statutory1 is the discount-rate regime (in effect until 2005-04-27).
	Statutory1
	// Statutory2 is the semester-stepped repo regime (2005-04-28 to 2010-06-30).
	Statutory2
	// Statutory3 is the repo+7 regime (from 2010-07-01).
	Statutory3
	// Statutory4 is the flat per-diem fee with a monthly cap, handled by the
	// simulation driver rather than accrue.
	Statutory4
	// Statutory5 is the repo+8 regime (2013-07-01 to 2013-12-31).
	Statutory5
	// Statutory6 is the repo+8 regime under the 2013 regulation.
	Statutory6
)

// String returns the wire tag used in the XML model attribute.
func (r Regime) String() string {
	switch r {
	case Fixed:
		return "fixed"
	case PerAnnum:
		return "per_annum"
	case PerMensem:
		return "per_mensem"
	case PerDiem:
		return "per_diem"
	case Statutory1:
		return "cust1"
	case Statutory2:
		return "cust2"
	case Statutory3:
		return "cust3"
	case Statutory4:
		return "cust4"
	case Statutory5:
		return "cust5"
	case Statutory6:
		return "cust6"
	default:
		return "unknown"
	}
}

// ParseRegime parses a wire tag into a Regime.
func ParseRegime(s string) (Regime, error) {
	switch s {
	case "fixed":
		return Fixed, nil
	case "per_annum":
		return PerAnnum, nil
	case "per_mensem":
		return PerMensem, nil
	case "per_diem":
		return PerDiem, nil
	case "cust1":
		return Statutory1, nil
	case "cust2":
		return Statutory2, nil
	case "cust3":
		return Statutory3, nil
	case "cust4":
		return Statutory4, nil
	case "cust5":
		return Statutory5, nil
	case "cust6":
		return Statutory6, nil
	default:
		return 0, fmt.Errorf("unknown regime: %q", s)
	}
}

// IsStatutory reports whether the regime takes its rate from the central
// bank rather than from the obligation itself.
func (r Regime) IsStatutory() bool {
	switch r {
	case Statutory1, Statutory2, Statutory3, Statutory4, Statutory5, Statutory6:
		return true
	}
	return false
}
