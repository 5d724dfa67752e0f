// Package cmd assembles the HTTP application from configuration.
package cmd

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"backoffice/api"
	"backoffice/config"
	"backoffice/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *sql.DB
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests for
// at most server.shutdown_timeout.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer closeDB(a.db)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() *gin.Engine {
	return a.router.GetEngine()
}
