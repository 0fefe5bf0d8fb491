package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/add-wax/main.go <name> <price-per-oz-cents>")
		fmt.Println("Example: go run cmd/add-wax/main.go \"Soy\" 18")
		os.Exit(1)
	}

	name := os.Args[1]
	pricePerOz, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil || pricePerOz < 0 {
		fmt.Fprintf(os.Stderr, "Invalid price per oz: %v\n", os.Args[2])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	wax := &domain.Wax{Name: name, PricePerOzCents: pricePerOz, IsActive: true}
	if err := repos.Wax.Create(context.Background(), wax); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create wax: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Wax created successfully!\n\n")
	fmt.Printf("Name: %s\n", wax.Name)
	fmt.Printf("Price per oz: %d cents\n", wax.PricePerOzCents)
	fmt.Println("\nRun cmd/sync-vessel for each vessel (or wait for the drift sync) to create the new variants.")
}
