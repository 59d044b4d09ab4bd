package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/gridwatch/gridboard/internal/config"
	"github.com/gridwatch/gridboard/internal/db"
	"github.com/gridwatch/gridboard/internal/handler"
	"github.com/gridwatch/gridboard/internal/job"
	"github.com/gridwatch/gridboard/internal/middleware"
	"github.com/gridwatch/gridboard/internal/pkg/response"
	"github.com/gridwatch/gridboard/internal/repo"
	"github.com/gridwatch/gridboard/internal/schedule"
	"github.com/gridwatch/gridboard/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gridboard",
		Short: "gridboard dashboard-hosting backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run gridboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath), zap.String("env", cfg.Env))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Bool("production", cfg.IsProduction()),
	)

	userRepo := repo.NewUserRepo(conn)
	dashboardRepo := repo.NewDashboardRepo(conn)
	resetRepo := repo.NewResetRepo(conn)

	mailer := service.NewEmailSender(cfg.Mail)
	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	resetTTL := time.Minute * time.Duration(cfg.ResetTTLMinutes)
	authService := service.NewAuthService(userRepo, resetRepo, mailer, []byte(cfg.JWTSecret), jwtTTL, resetTTL)
	dashboardService := service.NewDashboardService(dashboardRepo)

	resp := response.NewFormatter(cfg.IsProduction())
	deps := handler.RouterDeps{
		Auth:           handler.NewAuthHandler(authService, resp),
		Dashboards:     handler.NewDashboardHandler(dashboardService, resp),
		Access:         handler.NewAccessHandler(dashboardService, resp),
		Resp:           resp,
		JWTSecret:      []byte(cfg.JWTSecret),
		AuthRateWindow: time.Duration(cfg.RateLimitMS) * time.Millisecond,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewResetCleanupJob(resetRepo), "*/10 * * * *"); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
