package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"nasfs/pkg/fstree"
	"nasfs/pkg/log"
	"nasfs/pkg/render"
	"nasfs/pkg/userdb"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	shutdownTimeout = 10
	syncTimeout     = 30
)

type NASServer struct {
	tree       *fstree.Tree
	users      *userdb.Store
	renderer   *render.Renderer
	echo       *echo.Echo
	version    string
	theme      string
	sessionTTL time.Duration
	startedAt  time.Time
}

func NewNASServer(tree *fstree.Tree, users *userdb.Store, webDir, theme, version string, sessionTTL time.Duration) *NASServer {
	return &NASServer{
		tree:       tree,
		users:      users,
		renderer:   render.NewRenderer(webDir),
		echo:       echo.New(),
		version:    version,
		theme:      theme,
		sessionTTL: sessionTTL,
		startedAt:  time.Now(),
	}
}

func (nas *NASServer) Start(addr string) error {
	nas.setupRoutes()

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("addr", addr).
			Str("storage_root", nas.tree.Root()).
			Str("version", nas.version).
			Msg("Starting NAS server")

		if err := nas.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return nas.Shutdown()
}

func (nas *NASServer) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	// Gracefully shutdown Echo with a timeout of 10 seconds
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := nas.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")

	// Execute sync command to flush filesystem buffers with a fresh context
	log.Info().Msg("Executing sync command...")
	syncCtx, syncCancel := context.WithTimeout(context.Background(), syncTimeout*time.Second)
	defer syncCancel()

	cmd := exec.CommandContext(syncCtx, "sync")
	if err := cmd.Run(); err != nil {
		log.Warn().Err(err).Msg("Sync command failed")
	} else {
		log.Info().Msg("Filesystem buffers flushed successfully")
	}

	log.Info().Msg("Shutdown complete")
	return nil
}

func (nas *NASServer) setupRoutes() {
	// Echo configuration
	nas.echo.HideBanner = true
	nas.echo.HidePort = true

	// A request for /fs/docs/ names the same directory as /fs/docs.
	nas.echo.Pre(middleware.RemoveTrailingSlash())

	// Setup middleware with custom logger
	nas.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	nas.echo.Use(middleware.Recover())

	// Setup routes
	nas.echo.GET("/", nas.serveIndex)
	nas.echo.POST("/auth/login", nas.login)
	nas.echo.POST("/auth/logout", nas.logout)
	nas.echo.GET("/status", nas.getStatus, nas.requireSession)
	nas.echo.GET("/fs", nas.browse, nas.requireSession)
	nas.echo.GET("/fs/*", nas.browse, nas.requireSession)
	nas.echo.DELETE("/fs", nas.deleteNode, nas.requireSession)
	nas.echo.DELETE("/fs/*", nas.deleteNode, nas.requireSession)
}
