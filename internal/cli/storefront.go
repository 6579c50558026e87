package cli

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/handlers"
	"github.com/themizzi/shopflow/internal/services"
)

// BuildServerDependencies wires the storefront services and handlers over catalogRepo
func BuildServerDependencies(cfg config.ServerConfig, catalogRepo services.CatalogRepository) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: cfg}

	// Create service layer
	catalogService := services.NewCatalogService(catalogRepo)
	basketService := services.NewBasketService(catalogService)

	homeHandler, err := handlers.NewHomeHandler(cfg.Template("home.html"), basketService)
	if err != nil {
		return deps, fmt.Errorf("failed to create home handler: %w", err)
	}
	deps.HomeHandler = homeHandler

	catalogHandler, err := handlers.NewCatalogHandler(cfg.Template("search.html"), catalogService, basketService)
	if err != nil {
		return deps, fmt.Errorf("failed to create catalog handler: %w", err)
	}
	deps.CatalogHandler = catalogHandler

	productHandler, err := handlers.NewProductHandler(cfg.Template("product.html"), catalogService, basketService)
	if err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	deps.ProductHandler = productHandler

	basketHandler, err := handlers.NewBasketPageHandler(cfg.Template("basket.html"), basketService)
	if err != nil {
		return deps, fmt.Errorf("failed to create basket handler: %w", err)
	}
	deps.BasketHandler = basketHandler

	deps.BasketAPIHandler = handlers.NewBasketAPIHandler(basketService)

	return deps, nil
}

// DefaultFixtureShutdownTimeout bounds how long a fixture waits for open requests on Close
const DefaultFixtureShutdownTimeout = 5 * time.Second

// Fixture is a storefront running in-process for a scenario run
type Fixture struct {
	BaseURL string

	listener net.Listener
	server   *http.Server
}

// StartFixture serves the storefront on an ephemeral local port
func StartFixture(cfg config.ServerConfig, catalogRepo services.CatalogRepository) (*Fixture, error) {
	cfg.Port = "0"
	deps, err := BuildServerDependencies(cfg, catalogRepo)
	if err != nil {
		return nil, err
	}

	listener, server, err := StartServer(deps)
	if err != nil {
		return nil, err
	}

	port := listener.Addr().(*net.TCPAddr).Port
	return &Fixture{
		BaseURL:  fmt.Sprintf("http://127.0.0.1:%d", port),
		listener: listener,
		server:   server,
	}, nil
}

// Close shuts the fixture storefront down
func (f *Fixture) Close() error {
	err := shutdownServer(f.server, DefaultFixtureShutdownTimeout)
	f.listener.Close()
	return err
}
