package params

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/uhyunpark/marketsim/pkg/asset"
)

type Simulation struct {
	// Agents is the size of the trader population.
	Agents int
	// Timesteps the simulation runs for.
	Timesteps int
	// Seed for the shared random source; 0 means seed from the current time.
	Seed int64
	// SeedPrice is the reference price each market starts with.
	SeedPrice decimal.Decimal
	// InitialCash / InitialAssets fund every generated agent's wallet.
	InitialCash   decimal.Decimal
	InitialAssets decimal.Decimal
	// Price stddev for the random strategy's gaussian around the last price.
	BuyPriceStd  float64
	SellPriceStd float64
	// Symbols traded, besides the cash symbol.
	Symbols []asset.Symbol
	Debug   bool
}

type API struct {
	Addr           string
	AllowedOrigins []string
}

type Config struct {
	Simulation Simulation
	API        API
}

func Default() Config {
	return Config{
		Simulation: Simulation{
			Agents:        100,
			Timesteps:     200,
			Seed:          0,
			SeedPrice:     decimal.NewFromInt(100),
			InitialCash:   decimal.NewFromInt(1000),
			InitialAssets: decimal.NewFromInt(10),
			BuyPriceStd:   1,
			SellPriceStd:  1,
			Symbols:       []asset.Symbol{asset.BTC},
		},
		API: API{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("SIM_AGENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Agents = n
		}
	}
	if v := os.Getenv("SIM_TIMESTEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Timesteps = n
		}
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = n
		}
	}
	if v := os.Getenv("SIM_SEED_PRICE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.Simulation.SeedPrice = d
		}
	}
	if v := os.Getenv("SIM_INITIAL_CASH"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.Simulation.InitialCash = d
		}
	}
	if v := os.Getenv("SIM_INITIAL_ASSETS"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.Simulation.InitialAssets = d
		}
	}
	if v := os.Getenv("SIM_BUY_PRICE_STD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.BuyPriceStd = f
		}
	}
	if v := os.Getenv("SIM_SELL_PRICE_STD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.SellPriceStd = f
		}
	}
	if v := os.Getenv("SIM_SYMBOLS"); v != "" {
		// Example: "btc,eth"
		var symbols []asset.Symbol
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, asset.Symbol(s))
			}
		}
		if len(symbols) > 0 {
			cfg.Simulation.Symbols = symbols
		}
	}
	if v := os.Getenv("SIM_DEBUG"); v != "" {
		cfg.Simulation.Debug = v == "true"
	}

	if v := os.Getenv("API_ADDR"); v != "" {
		cfg.API.Addr = v
	}
	if v := os.Getenv("API_ALLOWED_ORIGINS"); v != "" {
		cfg.API.AllowedOrigins = strings.Split(v, ",")
	}

	return cfg
}
