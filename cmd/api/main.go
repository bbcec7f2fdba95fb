package main

import (
	"database/sql"
	"net/http"
	"time"

	"front-desk/internal/adapters/auth/gatehouse"
	"front-desk/internal/adapters/auth/jwtverify"
	"front-desk/internal/adapters/storage/postgres"
	"front-desk/internal/platform/config"
	"front-desk/internal/platform/logger"
	"front-desk/internal/ports/auth"
	"front-desk/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional para dev; en deploy las vars vienen del entorno.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	verifier, mode := buildVerifier(cfg, log)

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"err": err.Error()})
			return
		}
		db = opened
	}

	storage := "memory"
	if db != nil {
		storage = "postgres"
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{
		"addr":    cfg.Addr,
		"auth":    mode,
		"storage": storage,
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
	}
}

// buildVerifier elige cómo verificar tokens:
// gatehouse remoto > HS256 local > nil (modo dev con headers de debug).
func buildVerifier(cfg config.Config, log logger.Logger) (auth.AuthVerifier, string) {
	if cfg.GatehouseBaseURL != "" {
		client, err := gatehouse.NewClient(gatehouse.Config{
			BaseURL: cfg.GatehouseBaseURL,
			APIKey:  cfg.GatehouseAPIKey,
			Timeout: cfg.GatehouseTimeout,
		})
		if err != nil {
			log.Warn("gatehouse misconfigured, falling back", map[string]any{"err": err.Error()})
		} else {
			return gatehouse.NewVerifier(client), "gatehouse"
		}
	}

	if cfg.AuthJWTSecret != "" {
		return jwtverify.New(cfg.AuthJWTSecret), "jwt"
	}

	return nil, "dev"
}
