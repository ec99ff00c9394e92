package debtledger

import (
	"encoding/xml"
	"time"

	"github.com/shopspring/decimal"
)

// Wire constants of the exchange format. Existing exported documents carry
// these values; do not change them without a schema migration.
const (
	xmlApplication = "hsp"
	xmlVersion     = "1.7"
	xmlLegacyApp   = "hjp"
	xmlDomain      = "legal.pecina.cz"
	xmlNamespace   = "http://" + xmlDomain
	xmlSchema      = xmlNamespace + " https://" + xmlDomain + "/static/" + xmlApplication + "-" + xmlVersion + ".xsd"
	iso4217        = "ISO 4217"
)

type xmlCurrency struct {
	Standard string `xml:"standard,attr"`
	Code     string `xml:",chardata"`
}

type xmlRate struct {
	Unit  string `xml:"unit,attr"`
	Value string `xml:",chardata"`
}

type xmlRef struct {
	ID int `xml:"id,attr"`
}

type xmlDebit struct {
	Model             string       `xml:"model,attr"`
	Description       string       `xml:"description"`
	FixedDate         *string      `xml:"fixed_date"`
	FixedAmount       *string      `xml:"fixed_amount"`
	FixedCurrency     *xmlCurrency `xml:"fixed_currency"`
	PaRate            *xmlRate     `xml:"pa_rate"`
	PmRate            *xmlRate     `xml:"pm_rate"`
	PdRate            *xmlRate     `xml:"pd_rate"`
	DayCount          *string      `xml:"day_count_convention"`
	PrincipalDebit    *xmlRef      `xml:"principal_debit"`
	PrincipalAmount   *string      `xml:"principal_amount"`
	PrincipalCurrency *xmlCurrency `xml:"principal_currency"`
	DateFrom          *string      `xml:"date_from"`
	DateTo            *string      `xml:"date_to"`
}

type xmlCredit struct {
	Description string      `xml:"description"`
	Date        string      `xml:"date"`
	Amount      string      `xml:"amount"`
	Currency    xmlCurrency `xml:"currency"`
	Debits      struct {
		Debit []xmlRef `xml:"debit"`
	} `xml:"debits"`
}

type xmlBalance struct {
	Description string `xml:"description"`
	Date        string `xml:"date"`
}

type xmlFXRate struct {
	CurrencyFrom xmlCurrency `xml:"currency_from"`
	CurrencyTo   xmlCurrency `xml:"currency_to"`
	RateFrom     string      `xml:"rate_from"`
	RateTo       string      `xml:"rate_to"`
	DateFrom     *string     `xml:"date_from"`
	DateTo       *string     `xml:"date_to"`
}

type xmlDebt struct {
	XMLName      xml.Name   `xml:"debt"`
	Attrs        []xml.Attr `xml:",any,attr"`
	Title        string     `xml:"title"`
	Note         string     `xml:"note"`
	InternalNote string     `xml:"internal_note"`
	Rounding     string     `xml:"rounding"`
	Debits       struct {
		Debit []xmlDebit `xml:"debit"`
	} `xml:"debits"`
	Credits struct {
		Credit []xmlCredit `xml:"credit"`
	} `xml:"credits"`
	Balances struct {
		Balance []xmlBalance `xml:"balance"`
	} `xml:"balances"`
	FXRates struct {
		FXRate []xmlFXRate `xml:"fxrate"`
	} `xml:"fxrates"`
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func amount2(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }
func rate6(v float64) string   { return decimal.NewFromFloat(v).StringFixed(6) }
func rate3(v float64) string   { return decimal.NewFromFloat(v).StringFixed(3) }

func optDate(d Date) *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

func strptr(s string) *string { return &s }

// EncodeXML serializes the ledger into the versioned exchange document.
func EncodeXML(l *Ledger) ([]byte, error) {
	doc := &xmlDebt{
		Attrs: []xml.Attr{
			attr("xmlns", xmlNamespace),
			attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance"),
			attr("xsi:schemaLocation", xmlSchema),
			attr("application", xmlApplication),
			attr("version", xmlVersion),
			attr("created", time.Now().Format("2006-01-02T15:04:05")),
		},
		Title:        l.Title,
		Note:         l.Note,
		InternalNote: l.InternalNote,
		Rounding:     decimal.NewFromInt32(l.Rounding).String(),
	}

	for i := range l.Obligations {
		o := &l.Obligations[i]
		d := xmlDebit{Model: o.Regime.String(), Description: o.Description}
		if o.Regime == Fixed {
			d.FixedDate = strptr(o.FixedDate.String())
			d.FixedAmount = strptr(amount2(o.FixedAmount))
			d.FixedCurrency = &xmlCurrency{Standard: iso4217, Code: o.FixedCurrency}
		} else {
			switch o.Regime {
			case PerAnnum:
				d.PaRate = &xmlRate{Unit: "percent per annum", Value: rate6(o.Rate)}
				d.DayCount = strptr(string(o.Convention))
			case PerMensem:
				d.PmRate = &xmlRate{Unit: "percent per month", Value: rate6(o.Rate)}
				d.DayCount = strptr(string(o.MonthConv))
			case PerDiem:
				d.PdRate = &xmlRate{Unit: "per mil per day", Value: rate6(o.Rate)}
			}
			if ref, ok := o.Principal.Ref(); ok {
				d.PrincipalDebit = &xmlRef{ID: ref}
			} else {
				amt, cur := o.Principal.Explicit()
				d.PrincipalAmount = strptr(amount2(amt))
				d.PrincipalCurrency = &xmlCurrency{Standard: iso4217, Code: cur}
			}
			d.DateFrom = optDate(o.DateFrom)
			d.DateTo = optDate(o.DateTo)
		}
		doc.Debits.Debit = append(doc.Debits.Debit, d)
	}

	for i := range l.Payments {
		p := &l.Payments[i]
		c := xmlCredit{
			Description: p.Description,
			Date:        p.Date.String(),
			Amount:      amount2(p.Amount),
			Currency:    xmlCurrency{Standard: iso4217, Code: p.Currency},
		}
		for _, d := range p.Debits {
			c.Debits.Debit = append(c.Debits.Debit, xmlRef{ID: d})
		}
		doc.Credits.Credit = append(doc.Credits.Credit, c)
	}

	for i := range l.Checkpoints {
		b := &l.Checkpoints[i]
		doc.Balances.Balance = append(doc.Balances.Balance, xmlBalance{
			Description: b.Description,
			Date:        b.Date.String(),
		})
	}

	for i := range l.FXRates {
		r := &l.FXRates[i]
		doc.FXRates.FXRate = append(doc.FXRates.FXRate, xmlFXRate{
			CurrencyFrom: xmlCurrency{Standard: iso4217, Code: r.From},
			CurrencyTo:   xmlCurrency{Standard: iso4217, Code: r.To},
			RateFrom:     rate3(r.RateFrom),
			RateTo:       rate3(r.RateTo),
			DateFrom:     optDate(r.DateFrom),
			DateTo:       optDate(r.DateTo),
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := append([]byte("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"), body...)
	return append(out, '\n'), nil
}
