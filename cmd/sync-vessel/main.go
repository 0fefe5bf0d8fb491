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

// Reconciles one vessel's variant matrix against the live catalog, or
// every active vessel with --all.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/sync-vessel/main.go <name> <size-oz>")
		fmt.Println("       go run cmd/sync-vessel/main.go --all")
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
	catalog := shopify.NewCatalogStore(cfg.Shopify, logger)
	ctx := context.Background()

	if os.Args[1] == "--all" {
		service.RunDriftSyncOnce(ctx, cfg, repos, catalog, logger)
		fmt.Println("✅ Sync complete for all active vessels.")
		return
	}

	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/sync-vessel/main.go <name> <size-oz>")
		os.Exit(1)
	}
	sizeOz, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid size: %v\n", err)
		os.Exit(1)
	}

	name := service.NormalizeVesselName(os.Args[1])
	vessel, err := repos.Vessel.GetByKey(ctx, name, sizeOz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to find vessel: %v\n", err)
		os.Exit(1)
	}

	svcs := service.NewServices(repos, catalog, cfg.Pricing, logger)
	result, err := svcs.Variants.SyncVessel(ctx, vessel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sync failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Sync complete for %s\n\n", result.VesselKey)
	fmt.Printf("Product ID: %s\n", result.ProductID)
	fmt.Printf("Variants created: %d\n", result.VariantsCreated)
	fmt.Printf("Prices updated: %d\n", result.PricesUpdated)
	for _, w := range result.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
}
