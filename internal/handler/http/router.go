package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/chantify/chantify-backend-go/internal/handler/http/middleware"
	"github.com/chantify/chantify-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func NewRouter(
	JWTService jwt.Service,
	opts RouterOptions,
	timeSessionHandler TimeSessionHandler,
	summaryHandler SummaryHandler,
	paymentHandler PaymentHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "chantify"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/time-sessions", func(r chi.Router) {
				r.Use(middleware.RequireWorker)
				r.Post("/clock-in", timeSessionHandler.ClockIn)
				r.Post("/clock-out", timeSessionHandler.ClockOut)
				r.Get("/active", timeSessionHandler.GetMyActiveSession)
				r.Get("/hours", timeSessionHandler.GetMyHours)
			})

			r.Route("/summaries", func(r chi.Router) {
				r.Use(middleware.RequireWorker)
				r.Get("/my", summaryHandler.GetMySummaries)
			})

			r.Route("/workers/{workerID}", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/hours", timeSessionHandler.GetWorkerHours)
				r.Get("/active-session", timeSessionHandler.GetWorkerActiveSession)
				r.Get("/summaries", summaryHandler.GetWorkerSummaries)
				r.Post("/summaries/{year}/{month}/recompute", summaryHandler.Recompute)
			})

			r.Route("/payments", func(r chi.Router) {
				// Worker self-service
				r.With(middleware.RequireWorker).Get("/my", paymentHandler.ListMyPayments)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", paymentHandler.GetOrCreatePayment)
					r.Get("/", paymentHandler.ListPayments)
					r.Post("/generate", paymentHandler.GenerateMonthlyPayments)
					r.Get("/summary", paymentHandler.GetMonthSummary)
					r.Get("/{id}", paymentHandler.GetPayment)
					r.Patch("/{id}/adjustments", paymentHandler.UpdateAdjustments)
					r.Post("/{id}/toggle-status", paymentHandler.ToggleStatus)
				})
			})
		})
	})
	return r
}
