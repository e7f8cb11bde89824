package http

import (
	"log/slog"

	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/middleware"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Driver  DriverHandler
	Load    LoadHandler
	Bonus   BonusHandler
	Payroll PayrollHandler
	Report  ReportHandler
	Event   EventHandler
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.With(
			jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery),
			middleware.AuthRequired,
		).Get("/events", h.Event.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/drivers", func(r chi.Router) {
				r.Get("/", h.Driver.List)
				r.Post("/", h.Driver.Create)
				r.Get("/{id}", h.Driver.Get)
				r.Put("/{id}", h.Driver.Update)
				r.Delete("/{id}", h.Driver.Delete)
			})

			r.Route("/loads", func(r chi.Router) {
				r.Get("/", h.Load.List)
				r.Post("/", h.Load.Create)
				r.Get("/exists", h.Load.Exists)
				r.Get("/full", h.Load.ListFull)
				r.Get("/{id}", h.Load.Get)
				r.Put("/{id}", h.Load.Update)
				r.Delete("/{id}", h.Load.Delete)
			})

			r.Route("/bonuses", func(r chi.Router) {
				r.Get("/", h.Bonus.List)
				r.Post("/", h.Bonus.Create)
				r.Put("/{id}", h.Bonus.Update)
				r.Delete("/{id}", h.Bonus.Delete)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/dashboard", h.Payroll.GetDashboard)
				r.Get("/weekly-gross", h.Payroll.GetWeeklyGross)
				r.Post("/reconcile", h.Payroll.Reconcile)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/weekly-gross.xlsx", h.Report.ExportWeeklyGross)
				r.Get("/statement.pdf", h.Report.ExportStatement)
			})
		})
	})

	return r
}
