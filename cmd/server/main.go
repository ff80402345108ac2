package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/catalog"
	"github.com/rpattn/barmenu/internal/config"
	"github.com/rpattn/barmenu/internal/db"
	"github.com/rpattn/barmenu/internal/repository"
	"github.com/rpattn/barmenu/internal/repository/memory"
	"github.com/rpattn/barmenu/internal/repository/postgres"
	"github.com/rpattn/barmenu/internal/seed"
	"github.com/rpattn/barmenu/internal/server"
	"github.com/rpattn/barmenu/migrations"
	"github.com/rpattn/barmenu/pkg/logger"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	router, err := server.NewRouter(catalog.NewService(repos, catalog.WithLogger(log)), server.Options{
		Logger:      log,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("config", cfg.File),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// openStore returns the configured repositories and a func releasing them.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.Repositories, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.NewStore()
		if err := seed.Memory(store, seed.DemoMenu()); err != nil {
			return repository.Repositories{}, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		log.Info("using in-memory catalog with demo menu")
		return store.Repositories(), func() {}, nil
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return repository.Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.Migrate {
		if err := db.RunMigrations(cfg.Database, migrations.FS, log); err != nil {
			conn.Close()
			return repository.Repositories{}, nil, err
		}
	}
	if cfg.Database.Seed {
		if err := seed.Postgres(ctx, conn, seed.DemoMenu(), log); err != nil {
			conn.Close()
			return repository.Repositories{}, nil, err
		}
	}
	return postgres.NewRepositories(conn.Pool), conn.Close, nil
}
