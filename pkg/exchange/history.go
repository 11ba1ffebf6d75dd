package exchange

import "sort"

// History is the append-only trade log for one symbol plus a single-entry
// candle cache keyed by (now, candle width). Timestamps are non-decreasing
// because the clock only moves forward between submissions.
type History struct {
	records []Trade

	// Last computed candles, valid only for the exact (time, width) pair.
	cachedTime  int64
	cachedWidth int64
	cached      []Candle
	cacheSet    bool
}

func NewHistory() *History {
	return &History{}
}

// Append records a settled trade and invalidates the candle cache.
func (h *History) Append(t Trade) {
	h.records = append(h.records, t)
	h.cacheSet = false
	h.cached = nil
}

// Last returns the most recent trade.
func (h *History) Last() (Trade, bool) {
	if len(h.records) == 0 {
		return Trade{}, false
	}
	return h.records[len(h.records)-1], true
}

// Len reports the number of recorded trades.
func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of the trade log, oldest first. A non-positive
// limit returns everything; otherwise only the most recent limit records.
func (h *History) Records(limit int) []Trade {
	records := h.records
	if limit > 0 && limit < len(records) {
		records = records[len(records)-limit:]
	}
	out := make([]Trade, len(records))
	copy(out, records)
	return out
}

// Candles returns up to limit candles of the given width (in raw time units)
// ending at now. Each candle carries the closing price of its left-open,
// right-closed interval, falling back to the previous bucket's price when no
// trade landed in it. The window is clamped so it never starts before the
// first record; candles outside available history are not fabricated.
func (h *History) Candles(now int64, limit int, width int64) []Candle {
	if limit <= 0 || width <= 0 {
		return nil
	}
	if h.cacheSet && h.cachedTime == now && h.cachedWidth == width && len(h.cached) >= limit {
		return cloneCandles(h.cached[len(h.cached)-limit:])
	}
	if len(h.records) == 0 {
		return nil
	}

	end := now
	start := end - width*int64(limit)

	first := h.records[0].Time
	if start < first {
		// Not enough history for the requested window. Start the first
		// candle in the interval containing the first record, keeping
		// bucket boundaries aligned with now.
		span := now - first
		if width <= span {
			start = first - (width - span%width)
		} else {
			start = first - (width - span)
		}
	}

	// First record inside the window: boundaries are left-open, so a record
	// at exactly start belongs to the candle before the window.
	idx := sort.Search(len(h.records), func(i int) bool {
		return h.records[i].Time > start
	})

	// Carry-forward seed: the last price before the window, or the first
	// known price when the window covers all history.
	carry := h.records[0].Price
	if idx > 0 {
		carry = h.records[idx-1].Price
	}

	var candles []Candle
	for t := start + width; t <= end; t += width {
		for idx < len(h.records) && h.records[idx].Time <= t {
			carry = h.records[idx].Price
			idx++
		}
		candles = append(candles, Candle{Time: t, Close: carry})
	}

	h.cachedTime = now
	h.cachedWidth = width
	h.cached = candles
	h.cacheSet = true
	return cloneCandles(candles)
}

func cloneCandles(candles []Candle) []Candle {
	out := make([]Candle, len(candles))
	copy(out, candles)
	return out
}
