package fx

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tally/internal/models"
)

func rate(base, quote string, r float64) Rate {
	return Rate{Base: base, Quote: quote, Rate: decimal.NewFromFloat(r)}
}

// eurTable mirrors what a Frankfurter capture stores: EUR pivot plus identity.
func eurTable() *Table {
	return NewTable([]Rate{
		rate("EUR", "EUR", 1),
		rate("EUR", "USD", 1.1),
		rate("EUR", "CNY", 7.8),
	}, "EUR")
}

func TestConvert_Identity(t *testing.T) {
	for _, table := range []*Table{eurTable(), NewTable(nil, "")} {
		got, ok := table.ConvertFloat(100, "USD", "USD")
		require.True(t, ok)
		require.Equal(t, 100.0, got)
	}

	amount := decimal.RequireFromString("123.456789")
	got, ok := eurTable().Convert(amount, "CNY", "cny")
	require.True(t, ok)
	require.True(t, got.Equal(amount))
}

func TestConvert_Direct(t *testing.T) {
	got, ok := eurTable().ConvertFloat(100, "EUR", "USD")
	require.True(t, ok)
	require.InEpsilon(t, 110.0, got, 1e-6)
}

func TestConvert_Inverse(t *testing.T) {
	table := NewTable([]Rate{rate("EUR", "USD", 1.1)}, "")
	got, ok := table.ConvertFloat(110, "USD", "EUR")
	require.True(t, ok)
	require.InEpsilon(t, 100.0, got, 1e-6)
}

func TestConvert_Triangulation(t *testing.T) {
	table := NewTable([]Rate{
		rate("EUR", "USD", 1.1),
		rate("EUR", "CNY", 7.8),
	}, "")
	require.Equal(t, "EUR", table.Pivot())

	got, ok := table.ConvertFloat(100, "USD", "CNY")
	require.True(t, ok)
	require.InEpsilon(t, 100*(7.8/1.1), got, 1e-6)

	back, ok := table.ConvertFloat(got, "CNY", "USD")
	require.True(t, ok)
	require.InEpsilon(t, 100.0, back, 1e-6)
}

func TestConvert_DirectAndTriangulatedAgree(t *testing.T) {
	rows := []Rate{
		rate("EUR", "USD", 1.1),
		rate("EUR", "CNY", 7.8),
	}
	triangulated, ok := NewTable(rows, "EUR").ConvertFloat(250, "USD", "CNY")
	require.True(t, ok)

	direct, ok := NewTable(append(rows, rate("USD", "CNY", 7.8/1.1)), "EUR").ConvertFloat(250, "USD", "CNY")
	require.True(t, ok)
	require.InEpsilon(t, direct, triangulated, 1e-6)
}

func TestConvert_Unconvertible(t *testing.T) {
	t.Run("unknown_currency", func(t *testing.T) {
		_, ok := eurTable().ConvertFloat(100, "USD", "JPY")
		require.False(t, ok)
	})

	t.Run("empty_table", func(t *testing.T) {
		_, ok := NewTable(nil, "EUR").ConvertFloat(100, "USD", "CNY")
		require.False(t, ok)
	})

	t.Run("missing_pivot_leg", func(t *testing.T) {
		table := NewTable([]Rate{rate("EUR", "USD", 1.1), rate("GBP", "CNY", 9.1)}, "EUR")
		_, ok := table.ConvertFloat(100, "USD", "CNY")
		require.False(t, ok)
	})

	t.Run("non_finite_amount", func(t *testing.T) {
		_, ok := eurTable().ConvertFloat(math.NaN(), "EUR", "USD")
		require.False(t, ok)
		_, ok = eurTable().ConvertFloat(math.Inf(1), "USD", "USD")
		require.False(t, ok)
	})

	t.Run("zero_rate_is_ignored", func(t *testing.T) {
		table := NewTable([]Rate{rate("EUR", "USD", 0)}, "EUR")
		_, ok := table.ConvertFloat(100, "USD", "EUR")
		require.False(t, ok)
	})
}

func TestConvert_CyclicRowsTerminate(t *testing.T) {
	// A malformed table where every currency points at another must still
	// resolve in bounded steps.
	table := NewTable([]Rate{
		rate("USD", "CNY", 7),
		rate("CNY", "JPY", 20),
		rate("JPY", "USD", 0.007),
	}, "USD")

	got, ok := table.ConvertFloat(1, "CNY", "JPY")
	require.True(t, ok)
	require.InEpsilon(t, 20.0, got, 1e-6)

	_, ok = table.ConvertFloat(1, "CNY", "GBP")
	require.False(t, ok)
}

func TestRatesFromSnapshots(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := RatesFromSnapshots([]models.FxRateSnapshot{
		{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.NewFromFloat(1.08), AsOfDate: day},
		{BaseCurrency: "EUR", QuoteCurrency: "EUR", Rate: decimal.NewFromInt(1), AsOfDate: day},
	})
	require.Len(t, rows, 2)

	got, ok := NewTable(rows, "").ConvertFloat(54, "USD", "EUR")
	require.True(t, ok)
	require.InEpsilon(t, 50.0, got, 1e-6)
}

func TestConvert_SubUnitCodeIsNotItsCurrency(t *testing.T) {
	table := NewTable([]Rate{
		rate("EUR", "EUR", 1),
		rate("EUR", "GBP", 0.85),
	}, "EUR")

	_, ok := table.ConvertFloat(72.5, "GBp", "EUR")
	require.False(t, ok, "pence must not convert at the pound rate")

	got, ok := table.ConvertFloat(85, "gbp", "EUR")
	require.True(t, ok)
	require.InEpsilon(t, 100.0, got, 1e-6)
}
