package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "front-desk/internal/adapters/storage/memory"
	pg "front-desk/internal/adapters/storage/postgres"
	"front-desk/internal/domain/destinations"
	"front-desk/internal/domain/stats"
	"front-desk/internal/domain/visits"
	"front-desk/internal/middleware"
	"front-desk/internal/platform/metrics"
	"front-desk/internal/ports/auth"

	_ "front-desk/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	m := metrics.New()
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		visitRepo visits.Repository
		destRepo  destinations.Repository
		statsRepo stats.Repository
	)

	// Si no pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		visitRepo = pg.NewVisitsRepo(db)
		destRepo = pg.NewDestinationsRepo(db)
		statsRepo = pg.NewStatsRepo(db)
	} else {
		vr := mem.NewVisitRepo()
		visitRepo = vr
		statsRepo = vr // los conteos leen el mismo store
		destRepo = mem.NewDestinationRepo(mem.DefaultSeed())
	}

	// Services por módulo
	destSvc := destinations.NewService(destRepo)
	visitSvc := visits.NewService(visitRepo, destRepo)
	statsSvc := stats.NewService(statsRepo)

	// Rutas por módulo
	destinations.RegisterRoutes(r, destSvc)
	visits.RegisterRoutes(r, visitSvc, destSvc, m)
	stats.RegisterRoutes(r, statsSvc)

	return r
}
