package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Profile    ProfileHandler
	Division   DivisionHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Dashboard  DashboardHandler
	Export     ExportHandler
}

func NewRouter(jwtService jwt.Service, logger *slog.Logger, frontendURL string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Post("/employee-code", h.Auth.LoginWithEmployeeCode)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/auth/register", h.Auth.Register)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.GetProfile)
				r.Put("/", h.Profile.UpdateProfile)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.Profile.ListUsers)
				r.Delete("/{id}", h.Profile.DeactivateUser)
			})

			r.Route("/divisions", func(r chi.Router) {
				r.Get("/", h.Division.List)
				r.Get("/tree", h.Division.Tree)
				r.Get("/{id}", h.Division.GetByID)
				r.Get("/{id}/children", h.Division.Children)
				r.Get("/{id}/ancestors", h.Division.Ancestors)
				r.Get("/{id}/employees", h.Division.Employees)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDivisionManage))
					r.Post("/", h.Division.Create)
					r.Put("/{id}", h.Division.Update)
					r.Delete("/{id}", h.Division.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/me", h.Attendance.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/me", h.Leave.ListMine)
				r.Get("/{id}", h.Leave.GetByID)
				r.Post("/{id}/cancel", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRequestViewAll))
					r.Get("/", h.Leave.List)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRequestDecide))
					r.Post("/{id}/decision", h.Leave.Decide)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", h.Overtime.Submit)
				r.Get("/me", h.Overtime.ListMine)
				r.Get("/{id}", h.Overtime.GetByID)
				r.Post("/{id}/cancel", h.Overtime.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRequestViewAll))
					r.Get("/", h.Overtime.List)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRequestDecide))
					r.Post("/{id}/decision", h.Overtime.Decide)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/summary", h.Dashboard.Summary)
				r.Get("/approvals", h.Dashboard.PendingApprovals)
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportExport))
				r.Get("/attendance", h.Export.Attendance)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
	})

	return r
}
