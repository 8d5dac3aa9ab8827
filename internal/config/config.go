package config

import (
	"log"
	"os"
	"strconv"
)

// OrderSource decides where the sheet's order counts come from.
type OrderSource string

const (
	// OrderSourceManual: the operator types the day's sold units.
	OrderSourceManual OrderSource = "manual"
	// OrderSourceOrders: units are derived from the day's paid orders.
	OrderSourceOrders OrderSource = "orders"
)

type Config struct {
	Port              string
	JWTSecret         string
	CORSOrigins       string
	LowStockThreshold int
	StockOrderSource  OrderSource
}

func Load() *Config {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", ""),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
		StockOrderSource:  OrderSource(getEnv("STOCK_ORDER_SOURCE", string(OrderSourceManual))),
	}

	switch cfg.StockOrderSource {
	case OrderSourceManual, OrderSourceOrders:
	default:
		log.Printf("Warning: unknown STOCK_ORDER_SOURCE %q, falling back to manual", cfg.StockOrderSource)
		cfg.StockOrderSource = OrderSourceManual
	}

	if cfg.LowStockThreshold < 0 {
		log.Printf("Warning: negative LOW_STOCK_THRESHOLD, using default of 5")
		cfg.LowStockThreshold = 5
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s is not a number, using default %d", key, def)
		return def
	}
	return n
}
