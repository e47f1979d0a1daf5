package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// CatalogEntry is one row of the ticker catalog CSV:
//
//	symbol,label
//	AAPL,Apple
//	VOO,Vanguard S&P 500 ETF
type CatalogEntry struct {
	Symbol string `csv:"symbol"`
	Label  string `csv:"label"`
}

// LoadCatalog reads the ticker catalog CSV at path. An empty path yields an
// empty catalog.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ticker catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []CatalogEntry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, fmt.Errorf("parsing ticker catalog %s: %w", path, err)
	}

	out := entries[:0]
	for _, e := range entries {
		e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
		if e.Symbol == "" {
			continue
		}
		e.Label = strings.TrimSpace(e.Label)
		out = append(out, e)
	}
	return out, nil
}

// SeedSymbols returns the symbols to seed an empty ticker registry with: the
// TICKERS list followed by the catalog file, deduplicated.
func (c *Config) SeedSymbols() ([]string, error) {
	catalog, err := LoadCatalog(c.TickersFile)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range c.SeedTickers {
		add(s)
	}
	for _, e := range catalog {
		add(e.Symbol)
	}
	return out, nil
}
