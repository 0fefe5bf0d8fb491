package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository/postgres"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
)

// Prints the full priced combination matrix as CSV on stdout.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	vessels, err := repos.Vessel.ListActive(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list vessels: %v\n", err)
		os.Exit(1)
	}
	waxes, err := repos.Wax.ListActive(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list waxes: %v\n", err)
		os.Exit(1)
	}
	wicks, err := repos.Wick.ListActive(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list wicks: %v\n", err)
		os.Exit(1)
	}

	combos, err := service.GenerateCombinations(vessels, waxes, wicks, cfg.Pricing.SKUTokenLength)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate combinations: %v\n", err)
		os.Exit(1)
	}

	w := csv.NewWriter(os.Stdout)
	_ = w.Write([]string{"container", "wax", "wick", "sku", "price"})
	for _, combo := range combos {
		_ = w.Write([]string{combo.Container, combo.Wax, combo.Wick, combo.SKU, combo.Price})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
		os.Exit(1)
	}
}
