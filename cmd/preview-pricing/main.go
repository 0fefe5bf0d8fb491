package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository/postgres"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/shopify"
)

// changeSetFile mirrors the API's change-set payload: sparse maps of
// ingredient identity key -> proposed cost in cents.
type changeSetFile struct {
	Waxes   map[string]int64 `json:"waxes,omitempty"`
	Wicks   map[string]int64 `json:"wicks,omitempty"`
	Vessels map[string]int64 `json:"vessels,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/preview-pricing/main.go <change-set.json> [--apply <confirmation-price>]")
		fmt.Println("Example change-set.json: {\"waxes\": {\"Soy\": 20}}")
		os.Exit(1)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read change set: %v\n", err)
		os.Exit(1)
	}
	var file changeSetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid change set JSON: %v\n", err)
		os.Exit(1)
	}

	var confirmation string
	if len(os.Args) >= 4 && os.Args[2] == "--apply" {
		confirmation = os.Args[3]
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
	ctx := context.Background()

	preview, err := svcs.Pricing.Preview(ctx, &domain.PricingChangeSet{
		WaxPriceCents:       file.Waxes,
		WickCostCents:       file.Wicks,
		VesselBaseCostCents: file.Vessels,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Preview failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-24s %-16s %-10s %10s %10s  %s\n", "CONTAINER", "WAX", "WICK", "CURRENT", "NEW", "CHANGE")
	for _, c := range preview.Changes {
		marker := ""
		if c.Change.IsLarge() {
			marker = "  ⚠️ LARGE"
		}
		fmt.Printf("%-24s %-16s %-10s %10s %10s  %s%s\n",
			c.Container, c.Wax, c.Wick, c.CurrentPrice, c.NewPrice, c.Change, marker)
	}
	fmt.Printf("\n%d variants, %d with changes, +$%s / -$%s\n",
		preview.Summary.TotalVariants,
		preview.Summary.VariantsWithChanges,
		preview.Summary.TotalPriceIncreaseDollars,
		preview.Summary.TotalPriceDecreaseDollars,
	)

	if confirmation == "" {
		fmt.Println("\nDry run only. Re-run with --apply <one-of-the-new-prices> to write these prices.")
		return
	}

	result, err := svcs.Pricing.Apply(ctx, confirmation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Apply failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n✅ Applied: %d variants updated\n", result.VariantsUpdated)
	for _, w := range result.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
}
