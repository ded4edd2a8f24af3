package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the cross-cutting settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	// RequestLogger is the access log middleware; nil disables access logs.
	RequestLogger func(http.Handler) http.Handler
}

// Handlers groups the HTTP handlers mounted under /api/v1.
type Handlers struct {
	Worktime    WorktimeHandler
	Attendance  AttendanceHandler
	ShiftPlan   ShiftPlanHandler
	RateSetting RateSettingHandler
	Report      ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger)
	} else {
		slog.Debug("HTTP access log disabled")
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/worktime", func(r chi.Router) {
				r.Post("/daily", h.Worktime.ComputeDaily)
				r.Post("/weekly", h.Worktime.ComputeWeekly)
				r.Post("/normalize", h.Worktime.Normalize)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/metrics", h.Attendance.ListMetrics)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
					r.Post("/clock-in", h.Attendance.ClockIn)
					r.Post("/clock-out", h.Attendance.ClockOut)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceImport)).
					Post("/import", h.Attendance.Import)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Get("/metrics", h.Attendance.GetMetrics)
				})
			})

			r.Route("/shift-plans", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftPlanView))
				r.Get("/", h.ShiftPlan.List)
				r.Get("/{employeeID}/{date}", h.ShiftPlan.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/", h.ShiftPlan.Upsert)
					r.Delete("/{employeeID}/{date}", h.ShiftPlan.Delete)
				})
			})

			r.Route("/rate-settings/{employeeID}", func(r chi.Router) {
				r.Get("/", h.RateSetting.Get)
				r.With(middleware.RequireManager).Put("/", h.RateSetting.Upsert)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/weekly", h.Report.GetWeeklyOverview)
				r.Get("/weekly/export", h.Report.ExportWeeklyOverview)
			})
		})
	})
	return r
}
