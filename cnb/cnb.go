package cnb

import (
	"bytes"
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/etnz/debtledger"
	"golang.org/x/text/encoding/htmlindex"
)

const cnb_base_url = "CNB_BASE_URL"

var cnbURLFlag = flag.String("cnb-url", "", "Base URL of the Czech National Bank site.\n If missing it will read the environment variable \""+cnb_base_url+"\", defaulting to https://www.cnb.cz")

func baseURL() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *cnbURLFlag == "" {
		*cnbURLFlag = os.Getenv(cnb_base_url)
	}
	if *cnbURLFlag == "" {
		return "https://www.cnb.cz"
	}
	return *cnbURLFlag
}

const (
	fxPath        = "/cs/financni_trhy/devizovy_trh/kurzy_devizoveho_trhu/denni_kurz.xml"
	ratePath      = "/cs/faq/vyvoj_%s_historie.txt"
	fxTableType   = "XML_TYP_CNB_KURZY_DEVIZOVEHO_TRHU"
	minFXYear     = 1991 // the bank publishes no FX tables before 1991
	minPolicyYear = 1990
)

// policySeries maps a rate kind to its history file name and expected header.
var policySeries = map[debtledger.RateKind][2]string{
	debtledger.Discount: {"diskontni", "PLATNA_OD|CNB_DISKONTNI_SAZBA_V_%"},
	debtledger.Lombard:  {"lombard", "PLATNA_OD|CNB_LOMBARDNI_SAZBA_V_%"},
	debtledger.Repo:     {"repo", "PLATNA_OD|CNB_REPO_SAZBA_V_%"},
}

type fxRow struct {
	quantity int
	rate     float64
}

// fxTable is one parsed daily exchange-rate table. Its date can precede the
// requested one: on weekends and holidays the bank serves the last table.
type fxTable struct {
	date debtledger.Date
	rows map[string]fxRow
}

type ratePoint struct {
	valid debtledger.Date
	rate  float64
}

// Client looks up rates on the Czech National Bank website. Fetched tables
// and series are memoized for the lifetime of the client; the underlying
// HTTP responses are also cached on disk with a daily expiry.
//
// The zero value is not usable; call New.
type Client struct {
	http *http.Client
	base string

	mu     sync.Mutex
	tables map[debtledger.Date]*fxTable
	series map[debtledger.RateKind][]ratePoint
}

// New returns a client for the bank site (or the -cnb-url override).
func New() *Client {
	return &Client{
		http:   daily(),
		base:   baseURL(),
		tables: make(map[debtledger.Date]*fxTable),
		series: make(map[debtledger.RateKind][]ratePoint),
	}
}

// newAt is used by tests to point the client at an httptest server.
func newAt(base string, hc *http.Client) *Client {
	return &Client{
		http:   hc,
		base:   base,
		tables: make(map[debtledger.Date]*fxTable),
		series: make(map[debtledger.RateKind][]ratePoint),
	}
}

// get fetches a bank URL and returns the response body.
func (c *Client) get(addr string) ([]byte, error) {
	resp, err := c.http.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FXRate implements debtledger.RateSource.
func (c *Client) FXRate(currency string, on debtledger.Date) (debtledger.FXQuote, error) {
	if on.Year() < minFXYear || on.After(debtledger.Today()) {
		return debtledger.FXQuote{}, &debtledger.LookupError{What: "fx", Date: on, Err: fmt.Errorf("date out of range")}
	}
	table, err := c.table(on)
	if err != nil {
		return debtledger.FXQuote{}, &debtledger.LookupError{What: "fx", Date: on, Err: err}
	}
	if row, ok := table.rows[currency]; ok {
		return debtledger.FXQuote{Currency: currency, Rate: row.rate, Quantity: row.quantity, Date: table.date}, nil
	}
	// The table no longer lists discontinued currencies; resolve through
	// the successor when the date is past the changeover.
	if peg, ok := pegs[currency]; ok && !on.Before(peg.Since) {
		if row, ok := table.rows[peg.To]; ok {
			p := peg
			return debtledger.FXQuote{Currency: peg.To, Rate: row.rate, Quantity: row.quantity, Date: table.date, Peg: &p}, nil
		}
	}
	return debtledger.FXQuote{}, &debtledger.LookupError{What: "fx", Date: on, Err: fmt.Errorf("currency %s not in the rate table", currency)}
}

// StatutoryRate implements debtledger.RateSource.
func (c *Client) StatutoryRate(kind debtledger.RateKind, on debtledger.Date) (float64, error) {
	what := string(kind)
	series, ok := policySeries[kind]
	if !ok {
		return 0, &debtledger.LookupError{What: what, Date: on, Err: fmt.Errorf("unknown rate kind")}
	}
	if on.Year() < minPolicyYear || on.After(debtledger.Today()) {
		return 0, &debtledger.LookupError{What: what, Date: on, Err: fmt.Errorf("date out of range")}
	}
	points, err := c.history(kind, series)
	if err != nil {
		return 0, &debtledger.LookupError{What: what, Date: on, Err: err}
	}
	// latest change on or before the requested date
	found := false
	var rate float64
	var valid debtledger.Date
	for _, p := range points {
		if p.valid.After(on) {
			continue
		}
		if !found || valid.Before(p.valid) {
			found, rate, valid = true, p.rate, p.valid
		}
	}
	if !found {
		return 0, &debtledger.LookupError{What: what, Date: on}
	}
	return rate, nil
}

// table returns the daily FX table covering the given date, memoized.
func (c *Client) table(on debtledger.Date) (*fxTable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[on]; ok {
		return t, nil
	}
	addr := fmt.Sprintf("%s%s?date=%d.%d.%d", c.base, fxPath, on.Day(), int(on.Month()), on.Year())
	body, err := c.get(addr)
	if err != nil {
		return nil, err
	}
	t, err := parseFXTable(body)
	if err != nil {
		return nil, err
	}
	c.tables[on] = t
	return t, nil
}

// history returns the full policy-rate series for one kind, memoized.
func (c *Client) history(kind debtledger.RateKind, series [2]string) ([]ratePoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if points, ok := c.series[kind]; ok {
		return points, nil
	}
	body, err := c.get(c.base + fmt.Sprintf(ratePath, series[0]))
	if err != nil {
		return nil, err
	}
	points, err := parseHistory(body, series[1])
	if err != nil {
		return nil, err
	}
	c.series[kind] = points
	return points, nil
}

// parseFXTable reads the bank's daily table. The document declares
// windows-1250 and uses decimal commas.
func parseFXTable(body []byte) (*fxTable, error) {
	var doc struct {
		XMLName xml.Name `xml:"kurzy"`
		Banka   string   `xml:"banka,attr"`
		Datum   string   `xml:"datum,attr"`
		Tabulka []struct {
			Typ   string `xml:"typ,attr"`
			Radek []struct {
				Kod      string `xml:"kod,attr"`
				Mnozstvi string `xml:"mnozstvi,attr"`
				Kurz     string `xml:"kurz,attr"`
				Pomer    string `xml:"pomer,attr"`
			} `xml:"radek"`
		} `xml:"tabulka"`
	}
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, err
		}
		return enc.NewDecoder().Reader(input), nil
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid rate table: %w", err)
	}
	if doc.Banka != "CNB" {
		return nil, fmt.Errorf("invalid rate table: bank %q", doc.Banka)
	}
	// effective date attribute is DD.MM.YYYY
	var d, m, y int
	if _, err := fmt.Sscanf(doc.Datum, "%d.%d.%d", &d, &m, &y); err != nil {
		return nil, fmt.Errorf("invalid rate table date %q: %w", doc.Datum, err)
	}
	t := &fxTable{date: debtledger.NewDate(y, time.Month(m), d), rows: make(map[string]fxRow)}
	for _, tab := range doc.Tabulka {
		if tab.Typ != fxTableType {
			continue
		}
		for _, r := range tab.Radek {
			qty, err := strconv.Atoi(r.Mnozstvi)
			if err != nil {
				return nil, fmt.Errorf("invalid quantity for %s: %w", r.Kod, err)
			}
			text := r.Kurz
			if text == "" {
				text = r.Pomer
			}
			rate, err := parseCzFloat(text)
			if err != nil {
				return nil, fmt.Errorf("invalid rate for %s: %w", r.Kod, err)
			}
			t.rows[r.Kod] = fxRow{quantity: qty, rate: rate}
		}
	}
	if len(t.rows) == 0 {
		return nil, fmt.Errorf("invalid rate table: no %s section", fxTableType)
	}
	return t, nil
}

// parseHistory reads one "PLATNA_OD|..." pipe-delimited history file.
func parseHistory(body []byte, header string) ([]ratePoint, error) {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r", ""), "\n")
	if len(lines) == 0 || lines[0] != header {
		return nil, fmt.Errorf("invalid rate history header")
	}
	var points []ratePoint
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		if len(line) < 10 || line[8] != '|' {
			return nil, fmt.Errorf("invalid rate history line %q", line)
		}
		y, err1 := strconv.Atoi(line[0:4])
		m, err2 := strconv.Atoi(line[4:6])
		d, err3 := strconv.Atoi(line[6:8])
		rate, err4 := parseCzFloat(line[9:])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, fmt.Errorf("invalid rate history line %q", line)
		}
		points = append(points, ratePoint{valid: debtledger.NewDate(y, time.Month(m), d), rate: rate})
	}
	return points, nil
}

// parseCzFloat parses a number with a decimal comma.
func parseCzFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
