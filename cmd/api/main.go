package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/config"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/handler"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/repository"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/router"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/service"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting protein bar ordering MCP server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := store.NewClient(ctx, cfg.Store.Region, cfg.Store.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize store client: %w", err)
	}
	recordStore := store.NewDynamoStore(client, logger)

	productRepo := repository.NewProductRepository(recordStore, cfg.Store.ProductsTable, logger)
	orderRepo := repository.NewOrderRepository(recordStore, cfg.Store.OrdersTable, logger)

	catalogService := service.NewCatalogService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cfg.Orders.Currency, logger)

	mcpHandler := handler.NewMCPHandler(catalogService, orderService, logger)
	mux := router.New(mcpHandler, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("products_table", cfg.Store.ProductsTable).
			Str("orders_table", cfg.Store.OrdersTable).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
