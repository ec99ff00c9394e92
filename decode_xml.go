package debtledger

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type hjpTransaction struct {
	XMLName     xml.Name
	Type        string `xml:"type,attr"`
	Description string `xml:"description"`
	Amount      string `xml:"amount"`
	Date        string `xml:"date"`
	Preference  string `xml:"repayment_preference"`
}

type hjpDebt struct {
	Title        string      `xml:"title"`
	Note         string      `xml:"note"`
	InternalNote string      `xml:"internal_note"`
	Rounding     string      `xml:"rounding"`
	Currency     xmlCurrency `xml:"currency"`
	Interest     struct {
		Model    string `xml:"model,attr"`
		Amount   string `xml:"amount"`
		PaRate   string `xml:"pa_rate"`
		PmRate   string `xml:"pm_rate"`
		PdRate   string `xml:"pd_rate"`
		DayCount string `xml:"day_count_convention"`
	} `xml:"interest"`
	Transactions struct {
		Items []hjpTransaction `xml:",any"`
	} `xml:"transactions"`
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseOptDate(s *string) (Date, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Date{}, nil
	}
	return ParseDate(strings.TrimSpace(*s))
}

// DecodeXML parses an exchange document into a ledger. Documents written by
// the legacy single-debt application are migrated into the composite form.
func DecodeXML(data []byte) (*Ledger, error) {
	var probe struct {
		XMLName     xml.Name
		Application string `xml:"application,attr"`
	}
	if err := xml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	if probe.XMLName.Local != "debt" {
		return nil, fmt.Errorf("unexpected root element %q", probe.XMLName.Local)
	}
	switch probe.Application {
	case xmlApplication:
		return decodeCurrent(data)
	case xmlLegacyApp:
		return decodeLegacy(data)
	}
	return nil, fmt.Errorf("unknown application %q", probe.Application)
}

func decodeCurrent(data []byte) (*Ledger, error) {
	var doc xmlDebt
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	rounding, err := strconv.Atoi(strings.TrimSpace(doc.Rounding))
	if err != nil {
		return nil, fmt.Errorf("invalid rounding: %w", err)
	}
	l := &Ledger{
		Title:        strings.TrimSpace(doc.Title),
		Note:         strings.TrimSpace(doc.Note),
		InternalNote: strings.TrimSpace(doc.InternalNote),
		Rounding:     int32(rounding),
	}

	for i, d := range doc.Debits.Debit {
		regime, err := ParseRegime(d.Model)
		if err != nil {
			return nil, fmt.Errorf("debit %d: %w", i, err)
		}
		o := Obligation{Description: strings.TrimSpace(d.Description), Regime: regime}
		if d.FixedAmount != nil {
			if o.FixedAmount, err = parseAmount(*d.FixedAmount); err != nil {
				return nil, fmt.Errorf("debit %d fixed_amount: %w", i, err)
			}
		}
		if d.FixedCurrency != nil {
			o.FixedCurrency = strings.TrimSpace(d.FixedCurrency.Code)
		}
		if o.FixedDate, err = parseOptDate(d.FixedDate); err != nil {
			return nil, fmt.Errorf("debit %d fixed_date: %w", i, err)
		}
		for _, r := range []*xmlRate{d.PaRate, d.PmRate, d.PdRate} {
			if r == nil {
				continue
			}
			if o.Rate, err = parseAmount(r.Value); err != nil {
				return nil, fmt.Errorf("debit %d rate: %w", i, err)
			}
		}
		if d.DayCount != nil {
			conv := strings.TrimSpace(*d.DayCount)
			if regime == PerMensem {
				o.MonthConv = MonthConvention(conv)
			} else {
				o.Convention = Convention(conv)
			}
		}
		switch {
		case d.PrincipalDebit != nil:
			o.Principal = PrincipalRef(d.PrincipalDebit.ID)
		case d.PrincipalAmount != nil:
			amt, err := parseAmount(*d.PrincipalAmount)
			if err != nil {
				return nil, fmt.Errorf("debit %d principal_amount: %w", i, err)
			}
			cur := ""
			if d.PrincipalCurrency != nil {
				cur = strings.TrimSpace(d.PrincipalCurrency.Code)
			}
			o.Principal = PrincipalAmount(amt, cur)
		}
		if o.DateFrom, err = parseOptDate(d.DateFrom); err != nil {
			return nil, fmt.Errorf("debit %d date_from: %w", i, err)
		}
		if o.DateTo, err = parseOptDate(d.DateTo); err != nil {
			return nil, fmt.Errorf("debit %d date_to: %w", i, err)
		}
		l.Obligations = append(l.Obligations, o)
	}

	for i, c := range doc.Credits.Credit {
		p := Payment{
			Description: strings.TrimSpace(c.Description),
			Currency:    strings.TrimSpace(c.Currency.Code),
		}
		var err error
		if p.Date, err = ParseDate(strings.TrimSpace(c.Date)); err != nil {
			return nil, fmt.Errorf("credit %d date: %w", i, err)
		}
		if p.Amount, err = parseAmount(c.Amount); err != nil {
			return nil, fmt.Errorf("credit %d amount: %w", i, err)
		}
		for _, ref := range c.Debits.Debit {
			p.Debits = append(p.Debits, ref.ID)
		}
		l.Payments = append(l.Payments, p)
	}

	for i, b := range doc.Balances.Balance {
		cp := Checkpoint{Description: strings.TrimSpace(b.Description)}
		var err error
		if cp.Date, err = ParseDate(strings.TrimSpace(b.Date)); err != nil {
			return nil, fmt.Errorf("balance %d date: %w", i, err)
		}
		l.Checkpoints = append(l.Checkpoints, cp)
	}

	for i, r := range doc.FXRates.FXRate {
		fx := FXRate{
			From: strings.TrimSpace(r.CurrencyFrom.Code),
			To:   strings.TrimSpace(r.CurrencyTo.Code),
		}
		var err error
		if fx.RateFrom, err = parseAmount(r.RateFrom); err != nil {
			return nil, fmt.Errorf("fxrate %d rate_from: %w", i, err)
		}
		if fx.RateTo, err = parseAmount(r.RateTo); err != nil {
			return nil, fmt.Errorf("fxrate %d rate_to: %w", i, err)
		}
		if fx.DateFrom, err = parseOptDate(r.DateFrom); err != nil {
			return nil, fmt.Errorf("fxrate %d date_from: %w", i, err)
		}
		if fx.DateTo, err = parseOptDate(r.DateTo); err != nil {
			return nil, fmt.Errorf("fxrate %d date_to: %w", i, err)
		}
		l.FXRates = append(l.FXRates, fx)
	}

	return l, nil
}

func decodeLegacy(data []byte) (*Ledger, error) {
	var doc struct {
		XMLName xml.Name `xml:"debt"`
		hjpDebt
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	rounding, err := strconv.Atoi(strings.TrimSpace(doc.Rounding))
	if err != nil {
		return nil, fmt.Errorf("invalid rounding: %w", err)
	}
	l := &Ledger{
		Title:        strings.TrimSpace(doc.Title),
		Note:         strings.TrimSpace(doc.Note),
		InternalNote: strings.TrimSpace(doc.InternalNote),
		Rounding:     int32(rounding),
	}
	currency := strings.TrimSpace(doc.Currency.Code)
	model := doc.Interest.Model

	isDebit := func(t *hjpTransaction) bool {
		return t.Type == "debit" || t.XMLName.Local == "debit"
	}

	// Debits first, so payment references can cover all of them.
	firstFixed := true
	var principals, interests []int
	for idx := range doc.Transactions.Items {
		t := &doc.Transactions.Items[idx]
		if !isDebit(t) {
			continue
		}
		date, err := ParseDate(strings.TrimSpace(t.Date))
		if err != nil {
			return nil, fmt.Errorf("debit date: %w", err)
		}
		amount, err := parseAmount(t.Amount)
		if err != nil {
			return nil, fmt.Errorf("debit amount: %w", err)
		}
		i := len(l.Obligations)
		principals = append(principals, i)
		l.Obligations = append(l.Obligations, Obligation{
			Description:   strings.TrimSpace(t.Description),
			Regime:        Fixed,
			FixedAmount:   amount,
			FixedCurrency: currency,
			FixedDate:     date,
		})
		if model == "none" || (model == "fixed" && !firstFixed) {
			continue
		}
		firstFixed = false
		o := Obligation{Description: "Úrok", Principal: PrincipalRef(i)}
		switch model {
		case "fixed":
			o.Regime = Fixed
			if o.FixedAmount, err = parseAmount(doc.Interest.Amount); err != nil {
				return nil, fmt.Errorf("interest amount: %w", err)
			}
			o.FixedCurrency = currency
			o.FixedDate = date
			o.Principal = Principal{}
		case "per_annum":
			o.Regime = PerAnnum
			if o.Rate, err = parseAmount(doc.Interest.PaRate); err != nil {
				return nil, fmt.Errorf("interest rate: %w", err)
			}
			o.Convention = Convention(strings.TrimSpace(doc.Interest.DayCount))
		case "per_mensem":
			o.Regime = PerMensem
			if o.Rate, err = parseAmount(doc.Interest.PmRate); err != nil {
				return nil, fmt.Errorf("interest rate: %w", err)
			}
			o.MonthConv = MonthConvention(strings.TrimSpace(doc.Interest.DayCount))
		case "per_diem":
			o.Regime = PerDiem
			if o.Rate, err = parseAmount(doc.Interest.PdRate); err != nil {
				return nil, fmt.Errorf("interest rate: %w", err)
			}
		default:
			if o.Regime, err = ParseRegime(model); err != nil {
				return nil, fmt.Errorf("interest: %w", err)
			}
		}
		interests = append(interests, len(l.Obligations))
		l.Obligations = append(l.Obligations, o)
	}

	interestFirst := append(append([]int{}, interests...), principals...)
	principalFirst := append(append([]int{}, principals...), interests...)

	for idx := range doc.Transactions.Items {
		t := &doc.Transactions.Items[idx]
		switch t.XMLName.Local {
		case "credit":
			date, err := ParseDate(strings.TrimSpace(t.Date))
			if err != nil {
				return nil, fmt.Errorf("credit date: %w", err)
			}
			amount, err := parseAmount(t.Amount)
			if err != nil {
				return nil, fmt.Errorf("credit amount: %w", err)
			}
			order := interestFirst
			if strings.TrimSpace(t.Preference) == "principal" {
				order = principalFirst
			}
			l.Payments = append(l.Payments, Payment{
				Description: strings.TrimSpace(t.Description),
				Date:        date,
				Amount:      amount,
				Currency:    currency,
				Debits:      append([]int{}, order...),
			})
		case "balance":
			date, err := ParseDate(strings.TrimSpace(t.Date))
			if err != nil {
				return nil, fmt.Errorf("balance date: %w", err)
			}
			l.Checkpoints = append(l.Checkpoints, Checkpoint{
				Description: strings.TrimSpace(t.Description),
				Date:        date,
			})
		}
	}

	return l, nil
}
