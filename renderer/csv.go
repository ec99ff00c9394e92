package renderer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/etnz/debtledger"
)

// CSV exports the history rows as CSV, one column group per obligation for
// the opening balance, the change and the closing balance.
func CSV(res *debtledger.Result, l *debtledger.Ledger) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "Description", "Amount", "Currency"}
	for _, group := range []string{"Opening balance", "Change", "Closing balance"} {
		for i := range l.Obligations {
			header = append(header, fmt.Sprintf("%s %s (%s)", group, debtledger.Label(i), l.Obligations[i].Currency(l)))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for ri := range res.Rows {
		row := &res.Rows[ri]
		rec := []string{row.Date.String(), row.Description, amount(row.Amount), row.Currency}
		for _, group := range [][]float64{row.Pre, row.Change, row.Post} {
			for _, v := range group {
				rec = append(rec, amount(v))
			}
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
