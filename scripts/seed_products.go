// Seeds the products table with the starting catalogue. Run directly:
//
//	go run scripts/seed_products.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/config"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var products = []model.Product{
	{
		ID:          "PZ001",
		Name:        "Prozis Bar - Choco Blast",
		Price:       2.0,
		Currency:    "EUR",
		InStock:     true,
		Description: "Delicious chocolate protein bar with 20g of protein.",
	},
	{
		ID:          "PZ002",
		Name:        "Prozis Bar - Peanut Butter Power",
		Price:       2.0,
		Currency:    "EUR",
		InStock:     true,
		Description: "Creamy peanut butter flavor with 19g of protein.",
	},
	{
		ID:          "PZ003",
		Name:        "Prozis Bar - Vanilla Dream",
		Price:       2.0,
		Currency:    "EUR",
		InStock:     true,
		Description: "Smooth vanilla flavor with 18g of protein and low sugar.",
	},
	{
		ID:          "PZ004",
		Name:        "Prozis Bar - Berry Blast",
		Price:       2.5,
		Currency:    "EUR",
		InStock:     true,
		Description: "Mixed berry flavors with 17g of protein and real fruit pieces.",
	},
	{
		ID:          "PZ005",
		Name:        "Prozis Bar - Cookies & Cream",
		Price:       2.5,
		Currency:    "EUR",
		InStock:     true,
		Description: "Cookie chunks in a cream base with 21g of protein.",
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()

	client, err := store.NewClient(ctx, cfg.Store.Region, cfg.Store.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize store client: %w", err)
	}
	recordStore := store.NewDynamoStore(client, zerolog.Nop())

	fmt.Printf("Seeding data to %s...\n", cfg.Store.ProductsTable)

	for _, product := range products {
		if err := recordStore.Put(ctx, cfg.Store.ProductsTable, product); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add product %s: %v\n", product.Name, err)
			continue
		}
		fmt.Printf("Added product: %s\n", product.Name)
	}

	fmt.Println("Seeding complete!")

	return nil
}
