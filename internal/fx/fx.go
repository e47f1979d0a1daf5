// Package fx converts amounts between currencies using a table of captured
// exchange rates. A rate row (base, quote, r) means 1 base = r quote.
package fx

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/models"
)

// Rate is one directed edge of the rate table.
type Rate struct {
	Base  string
	Quote string
	Rate  decimal.Decimal
}

type pair struct{ from, to string }

// Table resolves conversion rates from a set of captured rows. Lookups try a
// direct edge, then the inverse edge, then exactly one hop through the pivot
// currency. Rates are only ever captured relative to one pivot, so no longer
// paths are searched.
type Table struct {
	pivot string
	edges map[pair]decimal.Decimal
}

var one = decimal.NewFromInt(1)

// NewTable builds a Table from rows. When pivot is empty it is inferred as
// the most common base currency among the rows. Non-positive rates are
// dropped as malformed.
func NewTable(rows []Rate, pivot string) *Table {
	t := &Table{
		pivot: strings.ToUpper(pivot),
		edges: make(map[pair]decimal.Decimal, len(rows)),
	}
	for _, r := range rows {
		if !r.Rate.IsPositive() {
			continue
		}
		t.edges[pair{strings.ToUpper(r.Base), strings.ToUpper(r.Quote)}] = r.Rate
	}
	if t.pivot == "" {
		t.pivot = inferPivot(rows)
	}
	return t
}

// RatesFromSnapshots adapts stored FX snapshots to table rows.
func RatesFromSnapshots(snaps []models.FxRateSnapshot) []Rate {
	rows := make([]Rate, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, Rate{Base: s.BaseCurrency, Quote: s.QuoteCurrency, Rate: s.Rate})
	}
	return rows
}

// Pivot returns the triangulation currency.
func (t *Table) Pivot() string { return t.pivot }

// Rate returns how many units of to one unit of from buys.
func (t *Table) Rate(from, to string) (decimal.Decimal, bool) {
	from, to = code(from), code(to)
	if from == to {
		return one, true
	}
	if r, ok := t.edge(from, to); ok {
		return r, true
	}
	if t.pivot == "" || from == t.pivot || to == t.pivot {
		return decimal.Zero, false
	}
	toPivot, ok := t.edge(from, t.pivot)
	if !ok {
		return decimal.Zero, false
	}
	fromPivot, ok := t.edge(t.pivot, to)
	if !ok {
		return decimal.Zero, false
	}
	return toPivot.Mul(fromPivot), true
}

// code uppercases an all-lowercase currency code. Mixed case is kept, so a
// sub-unit code such as GBp never matches GBP.
func code(c string) string {
	if c == strings.ToLower(c) {
		return strings.ToUpper(c)
	}
	return c
}

// edge looks up a direct or inverse edge.
func (t *Table) edge(from, to string) (decimal.Decimal, bool) {
	if r, ok := t.edges[pair{from, to}]; ok {
		return r, true
	}
	if r, ok := t.edges[pair{to, from}]; ok {
		return one.Div(r), true
	}
	return decimal.Zero, false
}

// Convert converts amount from one currency to another. Identical currencies
// return amount unchanged. The boolean is false when no rate path exists.
func (t *Table) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if strings.EqualFold(from, to) {
		return amount, true
	}
	r, ok := t.Rate(from, to)
	if !ok {
		return decimal.Zero, false
	}
	return amount.Mul(r), true
}

// ConvertFloat is Convert for float amounts. NaN and infinite amounts are
// unconvertible.
func (t *Table) ConvertFloat(amount float64, from, to string) (float64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	if strings.EqualFold(from, to) {
		return amount, true
	}
	v, ok := t.Convert(decimal.NewFromFloat(amount), from, to)
	if !ok {
		return 0, false
	}
	return v.InexactFloat64(), true
}

func inferPivot(rows []Rate) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, r := range rows {
		base := strings.ToUpper(r.Base)
		counts[base]++
		// ties go to the lexically smaller code so the result is stable
		if c := counts[base]; c > bestCount || (c == bestCount && base < best) {
			best, bestCount = base, c
		}
	}
	return best
}
