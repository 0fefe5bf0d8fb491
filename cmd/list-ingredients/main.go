package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/pricing"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository/postgres"
)

func main() {
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
	ctx := context.Background()

	vessels, err := repos.Vessel.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list vessels: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Vessels (%d):\n", len(vessels))
	for _, v := range vessels {
		status := "active"
		if !v.IsActive {
			status = "disabled"
		}
		product := "-"
		if v.ShopifyProductID != nil {
			product = *v.ShopifyProductID
		}
		fmt.Printf("  %-24s base $%s  margin %.1f%%  [%s]  product %s\n",
			v.Key(), pricing.FormatCents(v.BaseCostCents), v.MarginPct, status, product)
	}

	waxes, err := repos.Wax.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list waxes: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWaxes (%d):\n", len(waxes))
	for _, w := range waxes {
		status := "active"
		if !w.IsActive {
			status = "disabled"
		}
		fmt.Printf("  %-24s %d cents/oz  [%s]\n", w.Name, w.PricePerOzCents, status)
	}

	wicks, err := repos.Wick.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list wicks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWicks (%d):\n", len(wicks))
	for _, w := range wicks {
		status := "active"
		if !w.IsActive {
			status = "disabled"
		}
		fmt.Printf("  %-24s %d cents  [%s]\n", w.Name, w.CostCents, status)
	}
}
