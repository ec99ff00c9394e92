package debtledger

import "time"

// Convention is a day-count convention used to turn a date span into a
// fractional year count.
type Convention string

// Year-fraction conventions accepted by YearFraction.
const (
	ActAct     Convention = "ACT/ACT"
	Act365     Convention = "ACT/365"
	Act360     Convention = "ACT/360"
	Act364     Convention = "ACT/364"
	Conv30U360 Convention = "30U/360"
	Conv30E360 Convention = "30E/360"
	ConvISDA   Convention = "30E/360 ISDA"
	Conv30EP   Convention = "30E+/360"
)

// MonthConvention is a day-count convention used to turn a date span into a
// fractional month count.
type MonthConvention string

// Month-fraction conventions accepted by MonthFraction.
const (
	MonthAct     MonthConvention = "ACT"
	Month30U     MonthConvention = "30U"
	Month30E     MonthConvention = "30E"
	MonthISDA    MonthConvention = "30E ISDA"
	Month30EPlus MonthConvention = "30E+"
)

// YearConventions lists the valid year-fraction conventions in display order.
var YearConventions = []Convention{ActAct, Act365, Act360, Act364, Conv30U360, Conv30E360, ConvISDA, Conv30EP}

// MonthConventions lists the valid month-fraction conventions in display order.
var MonthConventions = []MonthConvention{MonthAct, Month30U, Month30E, MonthISDA, Month30EPlus}

// Valid reports whether c is a known year-fraction convention.
func (c Convention) Valid() bool {
	for _, k := range YearConventions {
		if c == k {
			return true
		}
	}
	return false
}

// Valid reports whether c is a known month-fraction convention.
func (c MonthConvention) Valid() bool {
	for _, k := range MonthConventions {
		if c == k {
			return true
		}
	}
	return false
}

// YearFraction converts the span (from, to] into a fractional year count
// under the given convention. The span is treated as exclusive of the first
// day and inclusive of the last, which is the natural reading for default
// interest: a debt due on day D starts accruing on D+1.
//
// An inverted span or an unknown convention yields 0.
func YearFraction(from, to Date, conv Convention) float64 {
	if to.Before(from) || !conv.Valid() {
		return 0
	}

	switch conv {
	case ActAct:
		beg, end := from.Add(1), to.Add(1)
		// Walk year by year, splitting actual days into leap and non-leap
		// buckets; each bucket is divided by its own year length.
		var leap, nonleap int
		y1, cursor := beg.Year(), beg
		for y1 < end.Year() {
			n := NewDate(y1+1, time.January, 1).Sub(cursor)
			if cursor.IsLeapYear() {
				leap += n
			} else {
				nonleap += n
			}
			y1++
			cursor = NewDate(y1, time.January, 1)
		}
		n := end.Sub(cursor)
		if cursor.IsLeapYear() {
			leap += n
		} else {
			nonleap += n
		}
		return float64(nonleap)/365.0 + float64(leap)/366.0
	case Act365:
		return float64(to.Sub(from)) / 365.0
	case Act360:
		return float64(to.Sub(from)) / 360.0
	case Act364:
		return float64(to.Sub(from)) / 364.0
	}

	// 30x/360 family: adjust the day numbers, then count 30-day months.
	y1, m1, d1 := from.Year(), int(from.Month()), from.Day()
	y2, m2, d2 := to.Year(), int(to.Month()), to.Day()
	switch conv {
	case Conv30U360:
		if d2 == 31 && d1 >= 30 {
			d2 = 30
		}
		if d1 == 31 {
			d1 = 30
		}
	case Conv30E360:
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 {
			d2 = 30
		}
	case ConvISDA:
		if d1 == from.DaysInMonth() {
			d1 = 30
		}
		if d2 == to.DaysInMonth() {
			d2 = 30
		}
	case Conv30EP:
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 {
			m2++
			d2 = 1
		}
	}
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

// MonthFraction converts the span (from, to] into a fractional month count
// under the given convention, with the same exclusive/inclusive reading as
// YearFraction. An inverted span or an unknown convention yields 0.
func MonthFraction(from, to Date, conv MonthConvention) float64 {
	if to.Before(from) || !conv.Valid() {
		return 0
	}

	if conv == MonthAct {
		beg := from.Add(1)
		y, m, d := beg.Year(), beg.Month(), beg.Day()
		var r float64
		for y < to.Year() || m != to.Month() {
			if d == 1 {
				r += 1.0
			} else {
				dm := NewDate(y, m, 1).DaysInMonth()
				r += float64(dm-d+1) / float64(dm)
			}
			m++
			if m > time.December {
				m = time.January
				y++
			}
			d = 1
		}
		r += float64(to.Day()-d+1) / float64(NewDate(y, m, 1).DaysInMonth())
		return r
	}

	y1, m1, d1 := from.Year(), int(from.Month()), from.Day()
	y2, m2, d2 := to.Year(), int(to.Month()), to.Day()
	switch conv {
	case Month30U:
		if d2 == 31 && d1 >= 30 {
			d2 = 30
		}
		if d1 == 31 {
			d1 = 30
		}
	case Month30E:
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 {
			d2 = 30
		}
	case MonthISDA:
		if d1 == from.DaysInMonth() {
			d1 = 30
		}
		if d2 == to.DaysInMonth() {
			d2 = 30
		}
	case Month30EPlus:
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 {
			m2++
			d2 = 1
		}
	}
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 30.0
}
