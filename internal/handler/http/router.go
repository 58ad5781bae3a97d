package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/mfl-hr/attendance-dashboard-go/internal/handler/http/middleware"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/token"
)

func NewRouter(env string, tokenSvc token.Service, reportHandler ReportHandler, holidayHandler HolidayHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-dashboard"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenSvc.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/api", func(r chi.Router) {
			r.Route("/reports", func(r chi.Router) {
				r.Get("/sections", reportHandler.Sections)
				r.Get("/sub_sections", reportHandler.SubSections)
				r.Get("/categories", reportHandler.Categories)
				r.Post("/present_status", reportHandler.PresentStatus)
				r.Post("/payment_sheet", reportHandler.PaymentSheet)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.Post("/", holidayHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Post("/process", holidayHandler.Process)
					r.Post("/finalize", holidayHandler.Finalize)
					r.Delete("/", holidayHandler.Delete)
				})
			})
		})

		// Export routes sit outside /api: the PDF ones are form-submitted
		// from a new browsing context, which authenticates via the token
		// cookie rather than a header.
		r.Route("/reports", func(r chi.Router) {
			r.Post("/present_status/pdf", reportHandler.PresentStatusPDF)
			r.Route("/payment_sheet", func(r chi.Router) {
				r.Post("/pdf", reportHandler.PaymentSheetPDF)
				r.Post("/excel", reportHandler.PaymentSheetExcel)
			})
		})
	})

	return r
}
