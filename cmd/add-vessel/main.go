package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository/postgres"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/shopify"
)

func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: go run cmd/add-vessel/main.go <name> <size-oz> <base-cost-dollars> <margin-pct> [supplier]")
		fmt.Println("Example: go run cmd/add-vessel/main.go \"mason jar\" 16 7.99 20 CandleScience")
		os.Exit(1)
	}

	name := os.Args[1]
	sizeOz, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid size: %v\n", err)
		os.Exit(1)
	}
	baseCost, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid base cost: %v\n", err)
		os.Exit(1)
	}
	marginPct, err := strconv.ParseFloat(os.Args[4], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid margin: %v\n", err)
		os.Exit(1)
	}
	var supplier *string
	if len(os.Args) > 5 {
		supplier = &os.Args[5]
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
	catalog := shopify.NewCatalogStore(cfg.Shopify, logger)
	svcs := service.NewServices(repos, catalog, cfg.Pricing, logger)

	vessel, syncResult, err := svcs.Vessels.Register(context.Background(), &service.RegisterVesselRequest{
		Name:            name,
		SizeOz:          sizeOz,
		BaseCostDollars: baseCost,
		MarginPct:       marginPct,
		Supplier:        supplier,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register vessel: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Vessel registered successfully!\n\n")
	fmt.Printf("Key: %s\n", vessel.Key())
	fmt.Printf("Product ID: %s\n", syncResult.ProductID)
	fmt.Printf("Variants created: %d\n", syncResult.VariantsCreated)
	for _, w := range syncResult.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
}
