package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth     AuthHandler
	Employee EmployeeHandler
	Device   DeviceHandler
	Punch    PunchHandler
	Report   ReportHandler
	Events   EventsHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, frontendURL string, env string, storageBasePath string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shancon-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Proof photos are served as plain static files
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(storageBasePath))))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			// sse-token needs a valid access token
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/sse-token", h.Auth.SSEToken)
			})
		})

		// Kiosk endpoints. Devices authenticate with their fingerprint,
		// not a JWT; the punch service rejects unapproved devices.
		r.Post("/devices/register", h.Device.RegisterDevice)
		r.Post("/punches", h.Punch.MarkPunch)

		// EventSource authenticates via a token query param
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Post("/", h.Employee.RegisterEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", h.Employee.DeactivateEmployee)
				})
			})

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", h.Device.ListDevices)
				r.Get("/{id}", h.Device.GetDevice)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", h.Device.ApproveDevice)
					r.Post("/{id}/revoke", h.Device.RevokeDevice)
				})
			})

			r.Get("/punches", h.Punch.ListPunches)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly", h.Report.MonthlyReport)
				r.Get("/monthly/export", h.Report.ExportMonthlyCSV)
				r.Get("/range", h.Report.RangeReport)
				r.Get("/daily", h.Report.DailyOverview)
			})
		})
	})
	return r
}
