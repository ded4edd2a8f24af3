package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worktime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/worktime-backend-go/internal/service/attendance"
	payrollService "github.com/cmlabs-hris/worktime-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/worktime-backend-go/internal/service/report"
	scheduleService "github.com/cmlabs-hris/worktime-backend-go/internal/service/schedule"
	worktimeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Setup(os.Stdout, cfg.App.LogLevel, cfg.App.Env, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       cfg.Database.MinConns,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	shiftPlanRepo := postgresql.NewShiftPlanRepository(db)
	rateSettingRepo := postgresql.NewRateSettingRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := worktimeService.NewCalculator(worktimeService.WithGracePeriod(cfg.Worktime.GracePeriod))

	rateSettingSvc := payrollService.NewRateSettingService(rateSettingRepo, calculator)
	shiftPlanSvc := scheduleService.NewShiftPlanService(shiftPlanRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, shiftPlanRepo, rateSettingSvc, calculator, postgresql.NewTxManager(db), cfg.App.Location)
	reportSvc := reportService.NewReportService(shiftPlanRepo, calculator)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			RequestLogger:  logger.RequestLogger(log, cfg.App.LogLevel),
		},
		JWTService,
		appHTTP.Handlers{
			Worktime:    appHTTP.NewWorktimeHandler(calculator),
			Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
			ShiftPlan:   appHTTP.NewShiftPlanHandler(shiftPlanSvc),
			RateSetting: appHTTP.NewRateSettingHandler(rateSettingSvc),
			Report:      appHTTP.NewReportHandler(reportSvc),
		},
	)

	scheduler := cron.NewScheduler()
	if err := cron.NewAttendanceJobs(attendanceRepo, cfg.Cron.StalePunchAfter, cfg.App.Location).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("register jobs: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
