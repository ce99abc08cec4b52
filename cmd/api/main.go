package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/config"
	appHTTP "github.com/employeeflow/employeeflow-backend-go/internal/handler/http"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/cache"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/database"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/identity"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/jwt"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/payment"
	"github.com/employeeflow/employeeflow-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/employeeflow/employeeflow-backend-go/internal/service/auth"
	contactService "github.com/employeeflow/employeeflow-backend-go/internal/service/contact"
	payrollService "github.com/employeeflow/employeeflow-backend-go/internal/service/payroll"
	reportService "github.com/employeeflow/employeeflow-backend-go/internal/service/report"
	transactionService "github.com/employeeflow/employeeflow-backend-go/internal/service/transaction"
	userService "github.com/employeeflow/employeeflow-backend-go/internal/service/user"
	worksheetService "github.com/employeeflow/employeeflow-backend-go/internal/service/worksheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		slog.Error("Error running migrations", "error", err)
		os.Exit(1)
	}

	summaryCache := cache.NewSummaryCache(cfg.Redis)
	defer summaryCache.Close()

	userRepo := postgresql.NewUserRepository(db)
	workSheetRepo := postgresql.NewWorkSheetRepository(db)
	payRollRepo := postgresql.NewPayRollRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	contactRepo := postgresql.NewContactRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	gateway := payment.NewGateway(cfg.Payment)

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()
	verifier, err := identity.NewFirebaseVerifier(appCtx, cfg.Identity)
	if err != nil {
		slog.Error("Invalid identity provider configuration", "error", err)
		os.Exit(1)
	}

	userSvc := userService.NewUserService(userRepo)
	authService := serviceAuth.NewAuthService(userRepo, userSvc, verifier, JWTService)
	workSheetSvc := worksheetService.NewWorkSheetService(workSheetRepo, userRepo)
	reportSvc := reportService.NewReportService(reportRepo, summaryCache)
	payRollSvc := payrollService.NewPayRollService(
		payRollRepo,
		transactionRepo,
		userRepo,
		postgresql.NewTransactor(db),
		gateway,
		reportSvc,
		cfg.Payment.Currency,
	)
	transactionSvc := transactionService.NewTransactionService(transactionRepo)
	contactSvc := contactService.NewContactService(contactRepo)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authService, userSvc),
		User:        appHTTP.NewUserHandler(userSvc),
		WorkSheet:   appHTTP.NewWorkSheetHandler(workSheetSvc),
		PayRoll:     appHTTP.NewPayRollHandler(payRollSvc),
		Transaction: appHTTP.NewTransactionHandler(transactionSvc),
		Contact:     appHTTP.NewContactHandler(contactSvc),
		Dashboard:   appHTTP.NewDashboardHandler(reportSvc),
		Webhook:     appHTTP.NewWebhookHandler(payRollSvc, payment.NewWebhookVerifier(cfg.Payment.XenditWebhookToken)),
		Health: appHTTP.NewHealthHandler(map[string]appHTTP.Pinger{
			"postgres": db,
			"redis":    summaryCache,
		}),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
