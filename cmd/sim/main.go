package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uhyunpark/marketsim/params"
	"github.com/uhyunpark/marketsim/pkg/agent"
	"github.com/uhyunpark/marketsim/pkg/api"
	"github.com/uhyunpark/marketsim/pkg/asset"
	"github.com/uhyunpark/marketsim/pkg/env"
	"github.com/uhyunpark/marketsim/pkg/exchange"
	"github.com/uhyunpark/marketsim/pkg/feed"
	"github.com/uhyunpark/marketsim/pkg/util"
)

func main() {
	// Load config from .env file and environment variables.
	cfg := params.LoadFromEnv("")

	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "data/sim.log"
	}
	logger, err := util.NewLoggerWithFile(logFile, cfg.Simulation.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("simulation starting",
		zap.Int("agents", cfg.Simulation.Agents),
		zap.Int("timesteps", cfg.Simulation.Timesteps),
		zap.Int64("seed", seed),
	)

	clock := util.NewSimClock(0, 1)

	// ---- Exchange ----
	markets := make(map[asset.Symbol]decimal.Decimal, len(cfg.Simulation.Symbols))
	for _, sym := range cfg.Simulation.Symbols {
		markets[sym] = cfg.Simulation.SeedPrice
	}

	hub := api.NewHub(logger)
	metrics := feed.NewMetrics("marketsim")
	sink := feed.Multi{feed.NewLogSink(logger), metrics, hub}

	ex, err := exchange.New(clock, exchange.Config{Cash: asset.USD, Markets: markets},
		exchange.WithSink(sink),
		exchange.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("exchange: %v", err)
	}

	// ---- Agents ----
	environment := env.New(clock, []*exchange.Exchange{ex}, logger)
	strategy := agent.NewRandomStrategy(asset.USD, cfg.Simulation.BuyPriceStd, cfg.Simulation.SellPriceStd, rng)
	initialFunds := map[asset.Symbol]decimal.Decimal{
		asset.USD: cfg.Simulation.InitialCash,
	}
	for _, sym := range cfg.Simulation.Symbols {
		initialFunds[sym] = cfg.Simulation.InitialAssets
	}
	environment.GenerateAgents(cfg.Simulation.Agents, map[agent.Strategy]float64{strategy: 1.0}, initialFunds)

	// ---- API ----
	server := api.NewServer(ex, clock, hub, metrics, cfg.API.AllowedOrigins, logger)
	go func() {
		if err := server.Start(cfg.API.Addr); err != nil {
			logger.Error("api server stopped", zap.Error(err))
		}
	}()

	// ---- Run ----
	environment.Run(cfg.Simulation.Timesteps)

	for _, sym := range ex.GetSymbols() {
		price, _ := ex.GetPrice(sym)
		book, _ := ex.GetOrderbook(sym)
		logger.Info("market summary",
			zap.String("symbol", string(sym)),
			zap.String("price", price.String()),
			zap.Int("pending_bids", len(book.Bids)),
			zap.Int("pending_asks", len(book.Asks)),
		)
	}
	logger.Info("simulation finished", zap.Int64("time", clock.Now()))
}
