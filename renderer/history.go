// Package renderer turns calculation results into markdown and CSV reports.
package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/debtledger"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// History renders the full day-by-day report of one calculation.
func History(res *debtledger.Result, l *debtledger.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := l.Title
	if title == "" {
		title = "Debt history"
	}
	doc.H1(title)
	if l.Note != "" {
		doc.PlainText(l.Note)
	}

	if len(l.Obligations) > 0 {
		doc.H2("Obligations")
		items := make([]string, 0, len(l.Obligations))
		for i := range l.Obligations {
			items = append(items, fmt.Sprintf("**%s** %s", debtledger.Label(i), describe(&l.Obligations[i], l)))
		}
		doc.BulletList(items...)
	}

	if len(l.FXRates) > 0 {
		doc.H2("Manual exchange rates")
		items := make([]string, 0, len(l.FXRates))
		for i := range l.FXRates {
			items = append(items, describeFX(&l.FXRates[i]))
		}
		doc.BulletList(items...)
	}

	doc.H2("History")
	doc.Table(historyTable(res, l))

	auditSections(doc, &res.Audit)

	if res.Err != nil {
		doc.H2("Incomplete result")
		doc.PlainText(fmt.Sprintf("The simulation stopped early: %v. Rows up to that point are shown.", res.Err))
	}

	return doc.String()
}

// describe renders one obligation clause in words.
func describe(o *debtledger.Obligation, l *debtledger.Ledger) string {
	switch o.Regime {
	case debtledger.Fixed:
		return fmt.Sprintf("%s: %s due %s",
			o.Description, debtledger.NewMoney(o.FixedAmount, o.FixedCurrency), o.FixedDate)
	case debtledger.PerAnnum:
		return fmt.Sprintf("%s: interest at %s %% per annum (%s) on %s%s",
			o.Description, rate(o.Rate), o.Convention, principalOf(o, l), window(o))
	case debtledger.PerMensem:
		return fmt.Sprintf("%s: interest at %s %% per month (%s) on %s%s",
			o.Description, rate(o.Rate), o.MonthConv, principalOf(o, l), window(o))
	case debtledger.PerDiem:
		return fmt.Sprintf("%s: interest at %s ‰ per day on %s%s",
			o.Description, rate(o.Rate), principalOf(o, l), window(o))
	default:
		return fmt.Sprintf("%s: %s on %s%s",
			o.Description, statutoryName(o.Regime), principalOf(o, l), window(o))
	}
}

// statutoryName spells out the statutory regimes of Czech civil law.
func statutoryName(r debtledger.Regime) string {
	switch r {
	case debtledger.Statutory1:
		return "statutory default interest (double the discount rate at default)"
	case debtledger.Statutory2:
		return "statutory default interest (repo rate + 7 %, updated each semester)"
	case debtledger.Statutory3:
		return "statutory default interest (repo rate + 7 % at default)"
	case debtledger.Statutory4:
		return "statutory late fee (0.25 % per day with a monthly minimum)"
	case debtledger.Statutory5:
		return "statutory default interest (repo rate + 8 % at default)"
	case debtledger.Statutory6:
		return "statutory default interest (repo rate + 8 % at the semester of default)"
	}
	return "unknown regime"
}

func principalOf(o *debtledger.Obligation, l *debtledger.Ledger) string {
	if i, ok := o.Principal.Ref(); ok {
		return fmt.Sprintf("obligation %s", debtledger.Label(i))
	}
	amount, cur := o.Principal.Explicit()
	return debtledger.NewMoney(amount, cur).String()
}

func window(o *debtledger.Obligation) string {
	s := ""
	if !o.DateFrom.IsZero() {
		s += fmt.Sprintf(", from %s", o.DateFrom)
	}
	if !o.DateTo.IsZero() {
		s += fmt.Sprintf(", until %s", o.DateTo)
	}
	return s
}

func describeFX(r *debtledger.FXRate) string {
	s := fmt.Sprintf("%s %s = %s %s", rate3(r.RateFrom), r.From, rate3(r.RateTo), r.To)
	if !r.DateFrom.IsZero() {
		s += fmt.Sprintf(", from %s", r.DateFrom)
	}
	if !r.DateTo.IsZero() {
		s += fmt.Sprintf(", until %s", r.DateTo)
	}
	return s
}

func historyTable(res *debtledger.Result, l *debtledger.Ledger) md.TableSet {
	header := []string{"Date", "Event", "Amount"}
	align := []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight}
	for i := range l.Obligations {
		header = append(header, fmt.Sprintf("%s (%s)", debtledger.Label(i), l.Obligations[i].Currency(l)))
		align = append(align, md.AlignRight)
	}
	if !res.MultiCurrencyDebit && len(l.Obligations) > 1 {
		header = append(header, "Total")
		align = append(align, md.AlignRight)
	}
	header = append(header, "Surplus")
	align = append(align, md.AlignRight)

	table := md.TableSet{Alignment: align, Header: header, Rows: [][]string{}}
	for ri := range res.Rows {
		row := &res.Rows[ri]
		cells := []string{row.Date.String(), eventCell(row), amountCell(row)}
		for i := range l.Obligations {
			cells = append(cells, balanceCell(row, i))
		}
		if !res.MultiCurrencyDebit && len(l.Obligations) > 1 {
			cells = append(cells, amount(row.PostTotal))
		}
		cells = append(cells, surplusCell(row))
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func eventCell(row *debtledger.Row) string {
	switch row.Kind {
	case debtledger.ObligationRow:
		return fmt.Sprintf("%s (%s)", row.Description, row.Label)
	case debtledger.PaymentRow:
		order := ""
		for _, d := range row.Debits {
			order += debtledger.Label(d)
		}
		return fmt.Sprintf("%s → %s", row.Description, order)
	}
	return row.Description
}

func amountCell(row *debtledger.Row) string {
	if row.Kind == debtledger.CheckpointRow {
		return ""
	}
	return debtledger.NewMoney(row.Amount, row.Currency).String()
}

// balanceCell shows the closing balance of one obligation, with the opening
// balance prefixed when the event changed it.
func balanceCell(row *debtledger.Row, i int) string {
	if row.Kind != debtledger.CheckpointRow {
		change := row.Change[i]
		if change > debtledger.LIM || change < -debtledger.LIM {
			return fmt.Sprintf("%s → %s", amount(row.Pre[i]), amount(row.Post[i]))
		}
	}
	return amount(row.Post[i])
}

func surplusCell(row *debtledger.Row) string {
	s := ""
	for _, sur := range row.Surpluses {
		if s != "" {
			s += ", "
		}
		s += debtledger.NewMoney(sur.Total, sur.Currency).String()
	}
	return s
}

// auditSections lists the external data the run relied on, deduplicated.
func auditSections(doc *md.Markdown, a *debtledger.Audit) {
	if items := fxAuditItems(a.FX); len(items) > 0 {
		doc.H2("Exchange rates used")
		doc.BulletList(items...)
	}
	if items := pegAuditItems(a.Pegs); len(items) > 0 {
		doc.H2("Fixed currency conversions used")
		doc.BulletList(items...)
	}
	if items := statutoryAuditItems(a.Statutory); len(items) > 0 {
		doc.H2("Statutory rates used")
		doc.BulletList(items...)
	}
}

func fxAuditItems(fx []debtledger.FXAudit) []string {
	seen := make(map[debtledger.FXAudit]bool)
	var items []string
	for _, f := range fx {
		if seen[f] {
			continue
		}
		seen[f] = true
		line := fmt.Sprintf("%d %s = %s CZK on %s", f.Quantity, f.Currency, rate3(f.Rate), f.DateRequired)
		if f.Date != f.DateRequired {
			line += fmt.Sprintf(" (table of %s)", f.Date)
		}
		items = append(items, line)
	}
	sort.Strings(items)
	return items
}

func pegAuditItems(pegs []debtledger.PegAudit) []string {
	seen := make(map[debtledger.PegAudit]bool)
	var items []string
	for _, p := range pegs {
		if seen[p] {
			continue
		}
		seen[p] = true
		items = append(items, fmt.Sprintf("%s %s = 1 %s since %s", rate(p.Rate), p.From, p.To, p.Since))
	}
	sort.Strings(items)
	return items
}

func statutoryAuditItems(st []debtledger.StatutoryAudit) []string {
	seen := make(map[debtledger.StatutoryAudit]bool)
	var items []string
	for _, s := range st {
		if seen[s] {
			continue
		}
		seen[s] = true
		items = append(items, fmt.Sprintf("%s %s %% on %s", s.Kind, rate(s.Rate), s.Date))
	}
	sort.Strings(items)
	return items
}

func amount(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }
func rate(v float64) string   { return decimal.NewFromFloat(v).String() }
func rate3(v float64) string  { return decimal.NewFromFloat(v).StringFixed(3) }
