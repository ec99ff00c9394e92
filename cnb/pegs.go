package cnb

import "github.com/etnz/debtledger"

// pegs maps discontinued currencies to their fixed successor conversion.
// A peg is only consulted when the bank's table no longer lists the
// currency and the requested date falls on or after the changeover.
var pegs = map[string]debtledger.Peg{
	"XEU": {From: "XEU", To: "EUR", Rate: 1.0, Since: debtledger.NewDate(1999, 1, 1)},
	"ATS": {From: "ATS", To: "EUR", Rate: 13.7603, Since: debtledger.NewDate(1998, 12, 31)},
	"BEF": {From: "BEF", To: "EUR", Rate: 40.3399, Since: debtledger.NewDate(1998, 12, 31)},
	"NLG": {From: "NLG", To: "EUR", Rate: 2.20371, Since: debtledger.NewDate(1998, 12, 31)},
	"FIM": {From: "FIM", To: "EUR", Rate: 5.94573, Since: debtledger.NewDate(1998, 12, 31)},
	"FRF": {From: "FRF", To: "EUR", Rate: 6.55957, Since: debtledger.NewDate(1998, 12, 31)},
	"DEM": {From: "DEM", To: "EUR", Rate: 1.95583, Since: debtledger.NewDate(1998, 12, 31)},
	"IEP": {From: "IEP", To: "EUR", Rate: 0.787564, Since: debtledger.NewDate(1998, 12, 31)},
	"ITL": {From: "ITL", To: "EUR", Rate: 1936.27, Since: debtledger.NewDate(1998, 12, 31)},
	"LUF": {From: "LUF", To: "EUR", Rate: 40.3399, Since: debtledger.NewDate(1998, 12, 31)},
	"MCF": {From: "MCF", To: "EUR", Rate: 6.55957, Since: debtledger.NewDate(1998, 12, 31)},
	"PTE": {From: "PTE", To: "EUR", Rate: 200.482, Since: debtledger.NewDate(1998, 12, 31)},
	"SML": {From: "SML", To: "EUR", Rate: 1936.27, Since: debtledger.NewDate(1998, 12, 31)},
	"ESP": {From: "ESP", To: "EUR", Rate: 166.386, Since: debtledger.NewDate(1998, 12, 31)},
	"VAL": {From: "VAL", To: "EUR", Rate: 1936.27, Since: debtledger.NewDate(1998, 12, 31)},
	"GRD": {From: "GRD", To: "EUR", Rate: 340.75, Since: debtledger.NewDate(2000, 6, 19)},
	"SIT": {From: "SIT", To: "EUR", Rate: 239.64, Since: debtledger.NewDate(2006, 7, 11)},
	"CYP": {From: "CYP", To: "EUR", Rate: 0.585274, Since: debtledger.NewDate(2007, 7, 10)},
	"MTL": {From: "MTL", To: "EUR", Rate: 0.4293, Since: debtledger.NewDate(2007, 7, 10)},
	"SKK": {From: "SKK", To: "EUR", Rate: 30.126, Since: debtledger.NewDate(2008, 7, 8)},
	"EEK": {From: "EEK", To: "EUR", Rate: 15.6466, Since: debtledger.NewDate(2010, 7, 13)},
	"ROL": {From: "ROL", To: "RON", Rate: 10000.0, Since: debtledger.NewDate(2005, 7, 1)},
	"RUR": {From: "RUR", To: "RUB", Rate: 1000.0, Since: debtledger.NewDate(1998, 1, 1)},
	"MXP": {From: "MXP", To: "MXN", Rate: 1000.0, Since: debtledger.NewDate(1993, 1, 1)},
	"UAK": {From: "UAK", To: "UAH", Rate: 100000.0, Since: debtledger.NewDate(1996, 9, 2)},
	"TRL": {From: "TRL", To: "TRY", Rate: 1000000.0, Since: debtledger.NewDate(2005, 1, 1)},
	"BGL": {From: "BGL", To: "BGN", Rate: 1000.0, Since: debtledger.NewDate(1999, 7, 5)},
	"PLZ": {From: "PLZ", To: "PLN", Rate: 10000.0, Since: debtledger.NewDate(1995, 1, 1)},
	"CSD": {From: "CSD", To: "RSD", Rate: 1.0, Since: debtledger.NewDate(2003, 1, 1)},
}
