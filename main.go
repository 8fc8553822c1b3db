package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/survey-tally/auth"
	"github.com/danielhkuo/survey-tally/cliparse"
	"github.com/danielhkuo/survey-tally/db"
	"github.com/danielhkuo/survey-tally/hub"
	"github.com/danielhkuo/survey-tally/middleware"
	"github.com/danielhkuo/survey-tally/router"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/survey"
)

func main() {
	var err error

	// .env is optional; real env vars win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt, err = auth.GenerateID(16)
		if err != nil {
			slog.Error("failed to generate IP hash salt", "error", err)
			os.Exit(1)
		}
	}

	// Validate the survey catalog before accepting anything
	catalog, err := survey.Default()
	if err != nil {
		slog.Error("survey catalog invalid", "error", err)
		os.Exit(1)
	}

	// Open storage
	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("storage setup failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := st.Init(context.Background()); err != nil {
		// Not fatal: the store keeps serving from memory
		slog.Error("storage init failed", "error", err)
	}
	slog.Info("Storage ready", "type", cfg.DatabaseType, "mode", st.Mode().String())

	liveHub := hub.New()

	// Create router
	mux := router.NewRouter(st, catalog, liveHub, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for Ctrl-C signal or a server failure
		<-ctx.Done()
		liveHub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// openStore builds the store for the configured storage type. The returned
// func releases any database connection.
func openStore(cfg cliparse.Config) (*store.Store, func(), error) {
	noop := func() {}

	switch cfg.DatabaseType {
	case cliparse.StorageMemory:
		return store.NewMemory(), noop, nil

	case cliparse.StorageSQLite, cliparse.StoragePostgres:
		driver := db.DriverSQLite
		if cfg.DatabaseType == cliparse.StoragePostgres {
			driver = db.DriverPostgres
		}

		conn, err := db.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, noop, err
		}
		slog.Info("Database schema ready", "driver", driver)

		return store.New(store.NewSQLBackend(conn)), func() { conn.Close() }, nil

	case cliparse.StorageFile:
		return store.New(store.NewFileBackend(cfg.DataFile)), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage type %q", cfg.DatabaseType)
}
