package feed

import "go.uber.org/zap"

// LogSink writes engine events to a zap logger at debug level.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) OrderPlaced(ev OrderEvent) {
	s.log.Debug("order placed",
		zap.String("symbol", ev.Symbol),
		zap.Uint64("id", ev.ID),
		zap.String("side", ev.Side),
		zap.Bool("market", ev.Market),
		zap.String("price", ev.Price.String()),
		zap.String("amount", ev.Amount.String()),
	)
}

func (s *LogSink) TradeExecuted(ev TradeEvent) {
	s.log.Debug("trade executed",
		zap.String("symbol", ev.Symbol),
		zap.Int64("time", ev.Time),
		zap.String("price", ev.Price.String()),
		zap.String("amount", ev.Amount.String()),
		zap.Uint64("bid_id", ev.BidID),
		zap.Uint64("ask_id", ev.AskID),
	)
}
