package wire

import (
	"context"
	"net/http"
	"time"

	"user-api/internal/adaptor"
	"user-api/internal/data/repository"
	"user-api/internal/usecase"
	"user-api/pkg/metrics"
	"user-api/pkg/middleware"
	"user-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router from the repositories.
func Wiring(repo *repository.Repository, db Pinger, config *utils.Config, m *metrics.Metrics, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, config, m, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, config, logger)

	return &App{
		Router:  setupRouter(handler, service, db, config, m, logger),
		Service: service,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	db Pinger,
	config *utils.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.FrontendURL))
	r.Use(middleware.Metrics(m))

	authenticate := middleware.Authenticate(service.Auth, logger)

	wireAuth(r, handler.Auth, authenticate, config, logger)
	wireUser(r, handler.User, authenticate, logger)

	r.Get("/health", health(db))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route "+r.URL.Path+" not found")
	})

	return r
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "up"}
		if err := db.Ping(ctx); err != nil {
			status["database"] = "down"
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Service unavailable", status, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", status)
	}
}
