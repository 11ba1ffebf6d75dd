// Package api serves read-only market data over REST and a WebSocket feed of
// engine events. Order submission stays an in-process library call; the API
// exists so the running simulation can be observed from outside.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/feed"
	"github.com/uhyunpark/marketsim/pkg/util"
)

// Server handles REST API and WebSocket connections for one exchange.
type Server struct {
	ex      *exchange.Exchange
	clock   util.Clock
	router  *mux.Router
	hub     *Hub
	metrics *feed.Metrics
	log     *zap.Logger

	allowedOrigins []string
}

// NewServer creates the API server. hub and metrics are optional; when nil
// the corresponding endpoints are not registered.
func NewServer(ex *exchange.Exchange, clock util.Clock, hub *Hub, metrics *feed.Metrics, allowedOrigins []string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		ex:             ex,
		clock:          clock,
		router:         mux.NewRouter(),
		hub:            hub,
		metrics:        metrics,
		log:            log,
		allowedOrigins: allowedOrigins,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/symbols", s.handleGetSymbols).Methods("GET")
	api.HandleFunc("/price/{symbol}", s.handleGetPrice).Methods("GET")
	api.HandleFunc("/orderbook/{symbol}", s.handleGetOrderbook).Methods("GET")
	api.HandleFunc("/history/{symbol}", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/trades/{symbol}", s.handleGetTrades).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.hub.ServeWS)
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start runs the WebSocket hub and blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	if s.hub != nil {
		go s.hub.Run()
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.log.Info("api server starting", zap.String("addr", addr))
	return http.ListenAndServe(addr, c.Handler(s.router))
}

func (s *Server) handleGetSymbols(w http.ResponseWriter, r *http.Request) {
	symbols := s.ex.GetSymbols()
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = string(sym)
	}
	respondJSON(w, out)
}

func (s *Server) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	sym := asset.Symbol(mux.Vars(r)["symbol"])
	price, err := s.ex.GetPrice(sym)
	if err != nil {
		respondError(w, statusFor(err), "price unavailable", err.Error())
		return
	}
	respondJSON(w, PriceResponse{Symbol: string(sym), Price: price.String(), Time: s.clock.Now()})
}

func (s *Server) handleGetOrderbook(w http.ResponseWriter, r *http.Request) {
	sym := asset.Symbol(mux.Vars(r)["symbol"])
	book, err := s.ex.GetOrderbook(sym)
	if err != nil {
		respondError(w, statusFor(err), "orderbook unavailable", err.Error())
		return
	}
	respondJSON(w, OrderbookResponse{
		Symbol: string(sym),
		Bids:   toOrderInfos(book.Bids),
		Asks:   toOrderInfos(book.Asks),
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sym := asset.Symbol(mux.Vars(r)["symbol"])
	limit := queryInt(r, "limit", 25)
	candleSize := int64(queryInt(r, "candle_size", 1))

	candles, err := s.ex.GetHistory(sym, limit, candleSize)
	if err != nil {
		respondError(w, statusFor(err), "history unavailable", err.Error())
		return
	}
	out := make([]CandleInfo, len(candles))
	for i, c := range candles {
		out[i] = CandleInfo{Time: c.Time, Close: c.Close.String()}
	}
	respondJSON(w, out)
}

func (s *Server) handleGetTrades(w http.ResponseWriter, r *http.Request) {
	sym := asset.Symbol(mux.Vars(r)["symbol"])
	limit := queryInt(r, "limit", 100)

	trades, err := s.ex.GetTrades(sym, limit)
	if err != nil {
		respondError(w, statusFor(err), "trades unavailable", err.Error())
		return
	}
	out := make([]TradeInfo, len(trades))
	for i, t := range trades {
		out[i] = TradeInfo{Time: t.Time, Price: t.Price.String(), Amount: t.Amount.String()}
	}
	respondJSON(w, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func toOrderInfos(orders []exchange.Order) []OrderInfo {
	out := make([]OrderInfo, len(orders))
	for i, o := range orders {
		info := OrderInfo{
			ID:     o.ID,
			Side:   o.Side.String(),
			Market: o.Market,
			Amount: o.Amount.String(),
		}
		if !o.Market {
			info.Price = o.Price.String()
		}
		out[i] = info
	}
	return out
}

func statusFor(err error) int {
	if errors.Is(err, exchange.ErrUnknownSymbol) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Details: details})
}
