package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/stevedao0/contract-service/internal/app"
	"github.com/stevedao0/contract-service/internal/config"
	"github.com/stevedao0/contract-service/internal/controllers"
	"github.com/stevedao0/contract-service/internal/middleware"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/routes"
	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

const (
	auditPurgeJobTimeout = 5 * time.Minute
	shutdownTimeout      = 15 * time.Second
	startupTimeout       = 2 * time.Minute
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Open the configured database, apply the schema, optionally seed demo
data, schedule the audit-log retention purge and serve the JSON API until
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			config.LogSummary(cfg)
			return runServe(cfg)
		},
	}
}

// Services bundles the service layer built on one App.
type Services struct {
	Contracts *services.ContractService
	Annexes   *services.AnnexService
	Works     *services.WorkService
	Audit     *services.AuditService
	Stats     *services.StatsService
}

// NewServices builds repositories and services over the app's store.
func NewServices(application *app.App) *Services {
	// Repositories
	contractRepo := repositories.NewContractRepository(application.Store)
	annexRepo := repositories.NewAnnexRepository(application.Store)
	workRepo := repositories.NewWorkRepository(application.Store)
	auditRepo := repositories.NewAuditLogRepository(application.Store)

	audit := services.NewAuditService(auditRepo)
	return &Services{
		Contracts: services.NewContractService(contractRepo, audit),
		Annexes:   services.NewAnnexService(annexRepo, contractRepo, audit),
		Works:     services.NewWorkService(workRepo, contractRepo, annexRepo, audit),
		Audit:     audit,
		Stats:     services.NewStatsService(contractRepo, annexRepo, workRepo),
	}
}

// NewHandler wires controllers and middleware into the served handler.
func NewHandler(application *app.App, svcs *Services) http.Handler {
	cfg := application.Config

	var auth mux.MiddlewareFunc = middleware.DevActorMiddleware
	if cfg.RSAPublicKey != nil {
		auth = middleware.AuthMiddleware(cfg.RSAPublicKey, cfg.TokenIssuer)
	}

	router := routes.NewRouter(routes.Controllers{
		Health:    controllers.NewHealthController(application),
		Contracts: controllers.NewContractsController(svcs.Contracts),
		Annexes:   controllers.NewAnnexesController(svcs.Annexes),
		Works:     controllers.NewWorksController(svcs.Works),
		Audit:     controllers.NewAuditController(svcs.Audit),
		Stats:     controllers.NewStatsController(svcs.Stats),
	}, auth)

	var allowedOrigins []string
	if cfg.AppUrl != "" {
		allowedOrigins = append(allowedOrigins, cfg.AppUrl)
	}
	if !cfg.CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.DevActorHeader},
		AllowCredentials: true,
	})
	return co.Handler(router)
}

// scheduleAuditPurge registers the retention job on c.
func scheduleAuditPurge(c *cron.Cron, audit *services.AuditService, schedule string, retention time.Duration) error {
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditPurgeJobTimeout)
		defer cancel()
		utils.Logger.Info("Starting audit log purge cron job...")
		if _, err := audit.PurgeExpired(ctx, retention); err != nil {
			utils.Logger.WithError(err).Error("Failed to purge expired audit logs")
		}
	})
	return err
}

func runServe(cfg *config.Config) error {
	application, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize %s: %w", cfg.AppName, err)
	}
	defer application.Close()

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := application.Migrate(startCtx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	svcs := NewServices(application)

	if cfg.SeedDbWithTestData {
		if err := app.SeedTestData(startCtx, svcs.Contracts, svcs.Annexes, svcs.Works); err != nil {
			return fmt.Errorf("seed test data: %w", err)
		}
	}

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC)) // Use UTC for cron scheduling
	if err := scheduleAuditPurge(c, svcs.Audit, cfg.AuditCleanupCron, cfg.AuditRetention); err != nil {
		return fmt.Errorf("schedule audit purge %q: %w", cfg.AuditCleanupCron, err)
	}
	c.Start()
	defer c.Stop()
	utils.Logger.Infof("Scheduled audit purge cron (%s, retention %v)", cfg.AuditCleanupCron, cfg.AuditRetention)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           NewHandler(application, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	utils.Logger.Info("Shutting down contract-service...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
