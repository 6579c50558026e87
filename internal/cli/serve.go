package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/handlers"
)

// ServerDependencies holds all dependencies needed for the fixture storefront
type ServerDependencies struct {
	ServerConfig     config.ServerConfig
	HomeHandler      http.Handler
	CatalogHandler   http.Handler
	ProductHandler   http.Handler
	BasketHandler    http.Handler
	BasketAPIHandler http.Handler
}

// DefaultShutdownTimeout bounds how long RunServe waits for open requests
const DefaultShutdownTimeout = 30 * time.Second

// RunServe starts the fixture storefront and blocks until ctx is done
func RunServe(ctx context.Context, deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(ctx, server, DefaultShutdownTimeout)
}

// NewMux routes the storefront paths to their handlers
func NewMux(deps ServerDependencies) *http.ServeMux {
	staticDir := deps.ServerConfig.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}

	mux := http.NewServeMux()
	mux.Handle("/", deps.HomeHandler)
	mux.Handle(handlers.SearchPath, deps.CatalogHandler)
	mux.Handle("/catalog/{id}/detail.aspx", deps.ProductHandler)
	mux.Handle("/lk/basket", deps.BasketHandler)
	mux.Handle("/api/basket", deps.BasketAPIHandler)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return mux
}

// StartServer listens on the configured port and serves the storefront in the background
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	mux := NewMux(deps)

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown blocks until ctx is done, then shuts the server down
func WaitForShutdown(ctx context.Context, server *http.Server, timeout time.Duration) error {
	<-ctx.Done()
	log.Printf("Shutting down storefront: %v", context.Cause(ctx))
	return shutdownServer(server, timeout)
}

// shutdownServer gives outstanding requests shutdownTimeout to complete, then closes the server
func shutdownServer(server *http.Server, shutdownTimeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not propagate listener close errors, so this
		// only fails when the server cannot be closed at all
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
