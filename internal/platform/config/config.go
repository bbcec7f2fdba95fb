package config

import (
	"os"
	"strconv"
	"time"
)

// Config junta todo lo que main necesita de env, para que main quede
// corto y las decisiones de wiring en un solo lugar.
type Config struct {
	Addr string

	// DBDSN vacío => repos en memoria (modo dev).
	DBDSN string

	// AuthJWTSecret no vacío => verificación local HS256.
	AuthJWTSecret string

	// GatehouseBaseURL no vacío => verificación remota contra gatehouse.
	// Tiene prioridad sobre AuthJWTSecret.
	GatehouseBaseURL string
	GatehouseAPIKey  string
	GatehouseTimeout time.Duration
}

func FromEnv() Config {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	timeout := 5 * time.Second
	if v, err := strconv.Atoi(os.Getenv("GATEHOUSE_TIMEOUT_MS")); err == nil && v > 0 {
		timeout = time.Duration(v) * time.Millisecond
	}

	return Config{
		Addr:             addr,
		DBDSN:            os.Getenv("DB_DSN"),
		AuthJWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
		GatehouseBaseURL: os.Getenv("GATEHOUSE_BASE_URL"),
		GatehouseAPIKey:  os.Getenv("GATEHOUSE_API_KEY"),
		GatehouseTimeout: timeout,
	}
}
