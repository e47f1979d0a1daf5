package provider

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// chartIter is the part of *chart.Iter that FinanceGoProvider reads.
type chartIter interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
	Meta() finance.ChartMeta
}

// FinanceGoProvider quotes symbols from daily chart bars through the
// finance-go client. The last close is the price; the close before it gives
// the change.
type FinanceGoProvider struct {
	lookback time.Duration
	now      func() time.Time
	chart    func(*chart.Params) chartIter // overridable for tests
}

// NewFinanceGoProvider creates a quote source backed by finance-go charts.
func NewFinanceGoProvider() *FinanceGoProvider {
	return &FinanceGoProvider{
		lookback: 7 * 24 * time.Hour,
		now:      time.Now,
		chart:    func(p *chart.Params) chartIter { return chart.Get(p) },
	}
}

// Name returns the source recorded on snapshots.
func (p *FinanceGoProvider) Name() string { return "finance-go" }

// Supports returns true for every non-empty symbol.
func (p *FinanceGoProvider) Supports(symbol string) bool { return symbol != "" }

// FetchQuote reads the last week of daily bars for symbol.
func (p *FinanceGoProvider) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.now()
	start := now.Add(-p.lookback)
	iter := p.chart(&chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	})

	var last, previous *finance.ChartBar
	for iter.Next() {
		bar := iter.Bar()
		if bar == nil || !bar.Close.IsPositive() {
			continue
		}
		previous, last = last, bar
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get chart for %s: %w", symbol, err)
	}
	if last == nil {
		return nil, fmt.Errorf("%w for %s: no bars", ErrNoPrice, symbol)
	}

	q := &Quote{
		Symbol:   symbol,
		Price:    last.Close,
		Currency: iter.Meta().Currency,
		Source:   p.Name(),
	}
	if previous != nil {
		q.Change, q.ChangePercent = changeFromPrevious(last.Close, previous.Close)
	}
	q.toMajorUnits()
	return q, nil
}
