package http

import (
	"log/slog"
	"os"

	"github.com/employeeflow/employeeflow-backend-go/internal/config"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/middleware"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth        AuthHandler
	User        UserHandler
	WorkSheet   WorkSheetHandler
	PayRoll     PayRollHandler
	Transaction TransactionHandler
	Contact     ContactHandler
	Dashboard   DashboardHandler
	Webhook     WebhookHandler
	Health      HealthHandler
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "employeeflow"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

	// Public
	r.Get("/ready", h.Health.Ready)
	r.Post("/register", h.Auth.Register)
	r.Post("/jwt", h.Auth.IssueToken)
	r.Post("/contact", h.Contact.Create)
	r.Get("/user/email/{email}", h.Auth.GetStatus)
	r.Post("/webhooks/xendit", h.Webhook.HandleXendit)

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		// Ownership is checked by the services
		r.Get("/user/{email}", h.User.GetProfile)
		r.Patch("/login", h.Auth.UpdateLogin)
		r.Get("/myWorkSheet/{email}", h.WorkSheet.ListMine)
		r.Delete("/myWorkSheet/{id}", h.WorkSheet.Delete)
		r.Patch("/workSheet/{id}", h.WorkSheet.Update)
		r.Get("/dashboard-employee/{email}", h.Dashboard.EmployeeDashboard)
		r.Get("/transactions/{email}", h.Transaction.ListForEmployee)

		// Employee
		r.With(middleware.RequirePermission(user.PermissionWorkSheetCreate)).Post("/workSheet", h.WorkSheet.Create)

		// HR
		r.With(middleware.RequirePermission(user.PermissionPayRollCreate)).Post("/payRoll", h.PayRoll.Create)
		r.With(middleware.RequirePermission(user.PermissionEmployeeVerify)).Patch("/user/{id}/verify", h.User.Verify)

		// HR and Admin
		r.With(middleware.RequirePermission(user.PermissionWorkSheetViewAll)).Get("/workSheets", h.WorkSheet.ListAll)
		r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/users", h.User.List)
		r.With(middleware.RequirePermission(user.PermissionHRSummaryView)).Get("/hrDashboardSummary/{hrEmail}", h.Dashboard.HRSummary)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionPayRollViewAll))
			r.Get("/payRolls", h.PayRoll.List)
			r.Get("/payRoll/{id}", h.PayRoll.Get)
			r.Delete("/payRoll/{id}", h.PayRoll.Delete)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionPayRollPay))
			r.Get("/payRolls/inconsistencies", h.PayRoll.Inconsistencies)
			r.Patch("/payRoll/{id}", h.PayRoll.UpdateStatus)
			r.Post("/payRoll/{id}/confirm", h.PayRoll.Confirm)
			r.Post("/create-payment-intent", h.PayRoll.CreatePaymentIntent)
			r.Get("/transactions", h.Transaction.ListAll)
			r.Post("/transaction", h.PayRoll.RecordTransaction)
		})
		r.With(middleware.RequirePermission(user.PermissionContactView)).Get("/contacts", h.Contact.List)
		r.With(middleware.RequirePermission(user.PermissionUserManage)).Patch("/user/{id}", h.User.Update)
		r.With(middleware.RequirePermission(user.PermissionAdminSummaryView)).Get("/adminDashboardSummary", h.Dashboard.AdminSummary)
	})

	return r
}
