package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/config"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
)

const syncInterval = 30 * time.Minute

var driftSyncMu sync.Mutex

// RunDriftSyncOnce reconciles every active vessel's variant matrix
// against the catalog once. Reconciliation is diff-based and prices are
// recomputed unconditionally, so stored-price drift heals on each run.
// Errors are logged per vessel; one vessel's failure does not stop the
// others.
func RunDriftSyncOnce(ctx context.Context, cfg *config.Config, repos *repository.Repositories, catalog CatalogSync, logger *zap.Logger) {
	vessels, err := repos.Vessel.ListActive(ctx)
	if err != nil {
		logger.Error("Drift sync: failed to list vessels", zap.Error(err))
		return
	}
	if len(vessels) == 0 {
		logger.Debug("Drift sync: no active vessels")
		return
	}

	variants := NewVariantService(repos, catalog, cfg.Pricing, logger)
	for _, vessel := range vessels {
		result, err := variants.SyncVessel(ctx, vessel)
		if err != nil {
			logger.Warn("Drift sync: vessel sync failed", zap.String("vessel", vessel.Key()), zap.Error(err))
			continue
		}
		if result.VariantsCreated > 0 || len(result.Warnings) > 0 {
			logger.Info("Drift sync: vessel reconciled",
				zap.String("vessel", vessel.Key()),
				zap.Int("created", result.VariantsCreated),
				zap.Int("warnings", len(result.Warnings)),
			)
		}
	}
}

// RunDriftSyncLoop runs sync once, then every syncInterval. Call from a
// goroutine.
func RunDriftSyncLoop(ctx context.Context, cfg *config.Config, repos *repository.Repositories, catalog CatalogSync, logger *zap.Logger) {
	driftSyncMu.Lock()
	RunDriftSyncOnce(ctx, cfg, repos, catalog, logger)
	driftSyncMu.Unlock()

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			driftSyncMu.Lock()
			RunDriftSyncOnce(ctx, cfg, repos, catalog, logger)
			driftSyncMu.Unlock()
		}
	}
}
