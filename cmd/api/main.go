package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/config"
	domainPayroll "github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/attendance-backend/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-backend/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-backend/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/attendance-backend/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-backend/internal/service/leave"
	payrollService "github.com/cmlabs-hris/attendance-backend/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

var version = "v1.0.0"

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.App.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	loc := cfg.Location()

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		log.Fatal("Failed to initialize JWT service: ", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}
	hub := sse.NewHub()

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, summaryRepo, employeeRepo, attendanceService.Settings{
		LateAfter: cfg.Attendance.LateAfter,
		Location:  loc,
	})
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, leaveBalanceRepo)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, leaveBalanceRepo, employeeRepo, hub, emailService)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, attendanceRepo, leaveRequestRepo, payrollService.Settings{
		Settings: domainPayroll.Settings{
			WorkingDays: cfg.Payroll.WorkingDays,
			LatePenalty: cfg.Payroll.LatePenalty,
		},
		CycleDay: cfg.Payroll.CycleDay,
		Currency: cfg.Payroll.Currency,
		Location: loc,
	})
	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo, leaveBalanceRepo, dashboardService.Settings{
		Location: loc,
		CycleDay: cfg.Payroll.CycleDay,
	})

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(ctx)
		cron.NewAttendanceJobs(attendanceSvc, loc, cfg.Attendance.AbsentMarkHour).RegisterJobs(scheduler, cfg.Cron.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		logger,
		cfg.App.AllowedOrigins,
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEventsHandler(JWTService, employeeSvc, hub),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
