package provider

import (
	"context"
	"errors"
	"fmt"
)

// Chain tries each supporting source in order and returns the first quote.
type Chain struct {
	sources []QuoteSource
}

// NewChain creates a QuoteSource that falls back across sources.
func NewChain(sources ...QuoteSource) *Chain {
	return &Chain{sources: sources}
}

// Name returns the name of the primary source.
func (c *Chain) Name() string {
	if len(c.sources) == 0 {
		return "chain"
	}
	return c.sources[0].Name()
}

// Supports returns true if any source supports symbol.
func (c *Chain) Supports(symbol string) bool {
	for _, s := range c.sources {
		if s.Supports(symbol) {
			return true
		}
	}
	return false
}

// FetchQuote returns the first successful quote. When every source fails,
// the errors are joined.
func (c *Chain) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	var errs []error
	for _, s := range c.sources {
		if !s.Supports(symbol) {
			continue
		}
		q, err := s.FetchQuote(ctx, symbol)
		if err == nil {
			return q, nil
		}
		errs = append(errs, &FetchError{Symbol: symbol, Source: s.Name(), Err: err})
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no source supports %s", symbol)
	}
	return nil, errors.Join(errs...)
}
