package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(payslipHandler PayslipHandler, rateHandler RateHandler, profileHandler SalaryProfileHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/payslips", func(r chi.Router) {
			r.Post("/", payslipHandler.Generate)
			r.Post("/batch", payslipHandler.GenerateBatch)
			r.Get("/", payslipHandler.ListByMonth)
			r.Get("/{id}", payslipHandler.Get)
			r.Patch("/{id}/status", payslipHandler.UpdateStatus)
		})

		r.Route("/rates", func(r chi.Router) {
			r.Post("/", rateHandler.Create)
			r.Get("/", rateHandler.List)
			r.Get("/{id}", rateHandler.Get)
			r.Post("/{id}/close", rateHandler.Close)
			r.Delete("/{id}", rateHandler.Deactivate)
		})

		r.Route("/employees/{employeeId}/salary-profiles", func(r chi.Router) {
			r.Post("/", profileHandler.Create)
			r.Get("/", profileHandler.List)
		})
	})
	return r
}
