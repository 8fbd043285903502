package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/polycosmos/hades-world/internal/config"
	"github.com/polycosmos/hades-world/internal/hades"
	"github.com/polycosmos/hades-world/internal/multiworld"
	"github.com/polycosmos/hades-world/internal/store"
	"github.com/polycosmos/hades-world/internal/webhost"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		showVersion bool
		addr        string
		storePath   string
		noStore     bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&addr, "addr", "", "listen address (defaults to settings http_addr)")
	flag.StringVar(&storePath, "store", "", "sqlite history path (defaults to settings store_path)")
	flag.BoolVar(&noStore, "no-store", false, "serve without generation history")
	flag.Parse()

	if showVersion {
		fmt.Printf("Hades World %s (%s) %s\n", version, commit, date)
		return
	}
	webhost.Version = version

	settings, err := config.Load()
	if err != nil {
		config.Exitf("load settings: %v", err)
	}
	if addr == "" {
		addr = settings.HTTPAddr
	}
	if storePath == "" {
		storePath = settings.StorePath
	}

	logger := log.New(os.Stderr, "[WEB] ", log.LstdFlags)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, addr, storePath, noStore, logger); err != nil {
		config.Exitf("hades-web: %v", err)
	}
}

func run(ctx context.Context, addr, storePath string, noStore bool, logger *log.Logger) error {
	reg := multiworld.NewRegistry()
	if err := hades.Register(reg); err != nil {
		return fmt.Errorf("register %s: %w", hades.Game, err)
	}

	var db store.DB
	if !noStore {
		if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
		sqlite, err := store.NewSQLiteDB(storePath)
		if err != nil {
			return err
		}
		defer sqlite.Close()
		if err := sqlite.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate store: %w", err)
		}
		db = sqlite
		logger.Printf("recording generations in %s", storePath)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           webhost.NewServer(reg, db, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Printf("stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
