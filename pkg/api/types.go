package api

// API response types for REST endpoints and WebSocket messages.

// OrderInfo is one pending order in an orderbook snapshot.
type OrderInfo struct {
	ID     uint64 `json:"id"`
	Side   string `json:"side"`
	Market bool   `json:"market"`
	Price  string `json:"price,omitempty"` // empty for market orders
	Amount string `json:"amount"`
}

// OrderbookResponse lists pending orders in current queue priority order.
type OrderbookResponse struct {
	Symbol string      `json:"symbol"`
	Bids   []OrderInfo `json:"bids"`
	Asks   []OrderInfo `json:"asks"`
}

// PriceResponse is the last traded price for a symbol.
type PriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Time   int64  `json:"time"`
}

// CandleInfo is one closing-price candle.
type CandleInfo struct {
	Time  int64  `json:"time"`
	Close string `json:"close"`
}

// TradeInfo is one settled trade.
type TradeInfo struct {
	Time   int64  `json:"time"`
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WSMessage wraps every event pushed to websocket clients.
type WSMessage struct {
	Type string      `json:"type"` // "order" or "trade"
	Data interface{} `json:"data"`
}
