package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pedrohsales/comparaprecos/internal/ratelimit"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
)

type App struct {
	Auth         *AuthHandler
	Funcionarios *FuncionariosHandler
}

// NewApp wires the handlers over a single repo.
func NewApp(repo *Repo) *App {
	return &App{
		Auth: &AuthHandler{
			Repo:    repo,
			Limiter: ratelimit.New(10, time.Minute),
		},
		Funcionarios: &FuncionariosHandler{Repo: repo},
	}
}

// NewRouter mounts the routes the mobile client calls. Paths are flat,
// no version prefix, matching the backend the app was written against.
func NewRouter(app *App, serviceName string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.ChiTraceMiddleware(serviceName))
	r.Use(telemetry.ChiLogMiddleware(serviceName))
	r.Use(telemetry.ChiMetricsMiddleware)

	r.Get("/health", healthHandler)

	r.Post("/login", app.Auth.Login)
	r.Post("/auth/refresh", app.Auth.Refresh)

	r.Route("/funcionarios", func(r chi.Router) {
		r.Get("/", app.Funcionarios.List)
		r.Post("/", app.Funcionarios.Create)
		r.Get("/{id}", app.Funcionarios.GetByID)
		r.Put("/{id}", app.Funcionarios.Update)
		r.Delete("/{id}", app.Funcionarios.Delete)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	type resp struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
