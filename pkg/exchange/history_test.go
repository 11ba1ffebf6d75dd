package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func record(ts int64, price int64) Trade {
	return Trade{Time: ts, Price: decimal.NewFromInt(price), Amount: decimal.NewFromInt(1)}
}

func histWith(records ...Trade) *History {
	h := NewHistory()
	for _, r := range records {
		h.Append(r)
	}
	return h
}

func requireCandles(t *testing.T, candles []Candle, want ...[2]int64) {
	t.Helper()
	require.Len(t, candles, len(want))
	for i, w := range want {
		require.Equal(t, w[0], candles[i].Time, "candle %d timestamp", i)
		require.True(t, candles[i].Close.Equal(decimal.NewFromInt(w[1])),
			"candle %d close: want %d got %s", i, w[1], candles[i].Close)
	}
}

func TestCandlesEmptyHistory(t *testing.T) {
	h := NewHistory()
	require.Empty(t, h.Candles(3, 2, 1))
}

func TestCandlesEnoughHistory(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101), record(3, 102))
	requireCandles(t, h.Candles(3, 2, 1), [2]int64{2, 101}, [2]int64{3, 102})
}

func TestCandlesClampedToAvailableHistory(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101), record(3, 102))
	// Asking for more candles than history covers returns only the
	// coverable ones, never fabricated buckets.
	requireCandles(t, h.Candles(3, 4, 1),
		[2]int64{1, 100}, [2]int64{2, 101}, [2]int64{3, 102})
}

func TestCandlesWidthGreaterThanHistory(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101), record(3, 102))
	requireCandles(t, h.Candles(3, 1, 5), [2]int64{3, 102})
}

func TestCandlesCarryForward(t *testing.T) {
	// No trade at t=2 or t=4: those buckets carry the previous close.
	h := histWith(record(1, 100), record(3, 105), record(5, 110))
	requireCandles(t, h.Candles(5, 5, 1),
		[2]int64{1, 100}, [2]int64{2, 100}, [2]int64{3, 105}, [2]int64{4, 105}, [2]int64{5, 110})
}

func TestCandlesSeedFromBeforeWindow(t *testing.T) {
	// The first bucket of the window has no trades; it takes the last
	// price strictly before the window.
	h := histWith(record(1, 100), record(4, 108))
	requireCandles(t, h.Candles(4, 2, 1), [2]int64{3, 100}, [2]int64{4, 108})
}

func TestCandlesBoundaryIsRightClosed(t *testing.T) {
	// A record exactly on a boundary belongs to the candle ending there.
	h := histWith(record(2, 100), record(4, 104))
	requireCandles(t, h.Candles(4, 2, 2), [2]int64{2, 100}, [2]int64{4, 104})
}

func TestCandlesCacheIdempotent(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101), record(3, 102))

	first := h.Candles(3, 2, 1)
	second := h.Candles(3, 2, 1)
	require.Equal(t, first, second)

	// Callers get copies; mutating a result must not corrupt the cache.
	first[0].Close = decimal.NewFromInt(9999)
	third := h.Candles(3, 2, 1)
	require.Equal(t, second, third)
}

func TestCandlesCacheServesSmallerLimit(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101), record(3, 102))

	h.Candles(3, 3, 1)
	// Same time and width with a smaller limit is served from the cached
	// suffix.
	requireCandles(t, h.Candles(3, 1, 1), [2]int64{3, 102})
}

func TestCandlesCacheInvalidation(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101))

	requireCandles(t, h.Candles(2, 1, 1), [2]int64{2, 101})

	// Time moved: recompute.
	requireCandles(t, h.Candles(3, 1, 1), [2]int64{3, 101})

	// Width changed: recompute.
	requireCandles(t, h.Candles(3, 1, 2), [2]int64{3, 101})

	// New trade invalidates the cache.
	h.Append(record(3, 150))
	requireCandles(t, h.Candles(3, 1, 1), [2]int64{3, 150})
}

func TestHistoryRecords(t *testing.T) {
	h := histWith(record(1, 100), record(2, 101), record(3, 102))

	all := h.Records(0)
	require.Len(t, all, 3)

	recent := h.Records(2)
	require.Len(t, recent, 2)
	require.Equal(t, int64(2), recent[0].Time)

	last, ok := h.Last()
	require.True(t, ok)
	require.Equal(t, int64(3), last.Time)
}
