package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/skinsight/internal/domain/products"
	"github.com/yanqian/skinsight/internal/infra/config"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	catalog *products.Catalog
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, catalog *products.Catalog) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, catalog: catalog}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.cfg.HTTP.Address,
			"ai_configured", a.cfg.LLM.Configured(),
			"catalog_products", a.catalog.Len(),
			"catalog_fingerprint", a.catalog.Fingerprint(),
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
