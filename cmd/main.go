package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"incident_reporting/internal/bootstrap"
	"incident_reporting/internal/handlers"
	"incident_reporting/internal/logger"
	"incident_reporting/internal/repository"
	"incident_reporting/internal/repository/db"
	"incident_reporting/internal/server"
	"incident_reporting/internal/service"

	"github.com/spf13/viper"
)

const (
	defaultPort   = "8080"
	defaultDBPath = "app.db"

	storageModeSQLite = "sqlite"
	storageModeMemory = "memory"

	// Exit code the supervisor watches for. On seeing it, restart the
	// process with STORAGE_MODE=memory; the in-memory backend starts
	// empty and is re-seeded by the same seed step.
	fallbackExitCode = 3

	seedTimeout = 30 * time.Second
)

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// select storage backend
	repos, closeDB := openRepository(log)
	defer func() {
		if closeDB == nil {
			return
		}
		if cerr := closeDB(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// idempotent seed: default admin + reporter and two example reports
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	err := bootstrap.Seed(ctx, repos)
	cancel()
	if err != nil {
		if bootstrap.IsConnectivityError(err) {
			signalFallback(log, err)
		}
		log.Fatalw("seeding failed", "err", err)
	}

	// wire dependencies
	services := service.NewService(repos)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", defaultPort)
	viper.SetDefault("db.path", defaultDBPath)
	viper.SetDefault("storage.mode", storageModeSQLite)
	viper.SetDefault("log.level", logger.InfoLevel)

	// lets the supervisor restart into fallback mode without editing config
	_ = viper.BindEnv("storage.mode", "STORAGE_MODE")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// run on defaults and environment only
			return nil
		}
		return err
	}
	return nil
}

// openRepository resolves storage.mode once and builds the matching
// backend. An unreachable database at this point triggers the fallback
// exit rather than a plain startup failure.
func openRepository(log *logger.Logger) (*repository.Repository, func() error) {
	mode := viper.GetString("storage.mode")
	switch mode {
	case storageModeMemory:
		log.Infow("using in-memory storage", "mode", mode)
		return repository.NewMemory(), nil
	case storageModeSQLite:
		sqlDB, err := db.InitDB(viper.GetString("db.path"))
		if err != nil {
			if bootstrap.IsConnectivityError(err) {
				signalFallback(log, err)
			}
			log.Fatalw("failed to init sqlite", "err", err)
		}
		return repository.NewSQLite(sqlDB), sqlDB.Close
	default:
		log.Fatalw("unknown storage.mode", "mode", mode)
		return nil, nil // unreachable, Fatalw exits
	}
}

// signalFallback terminates the process with the fallback exit code so a
// supervisor restarts it in in-memory mode. There is no hot swap: the
// in-memory backend has no data continuity with the durable one.
func signalFallback(log *logger.Logger, err error) {
	log.Errorw("database unreachable, exiting for in-memory fallback restart",
		"err", err,
		"exit_code", fallbackExitCode,
		"hint", "restart with STORAGE_MODE=memory",
	)
	os.Exit(fallbackExitCode)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
