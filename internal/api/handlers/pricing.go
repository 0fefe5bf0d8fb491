package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
)

func previewResponse(p *domain.PricingPreview) gin.H {
	changes := make([]gin.H, len(p.Changes))
	for i, ch := range p.Changes {
		changes[i] = gin.H{
			"variant_id":    ch.VariantID,
			"product_title": ch.ProductTitle,
			"container":     ch.Container,
			"wax":           ch.Wax,
			"wick":          ch.Wick,
			"current_price": ch.CurrentPrice,
			"new_price":     ch.NewPrice,
			"change":        ch.Change,
			"is_large":      ch.Change.IsLarge(),
		}
	}
	return gin.H{
		"changes": changes,
		"summary": gin.H{
			"total_variants":        p.Summary.TotalVariants,
			"variants_with_changes": p.Summary.VariantsWithChanges,
			"total_increase":        p.Summary.TotalPriceIncreaseDollars,
			"total_decrease":        p.Summary.TotalPriceDecreaseDollars,
		},
		"created_at": p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandlePricingPreview handles POST /v1/pricing/preview
// Read-only: recomputes every live variant under the proposed cost
// overrides and returns the diff. Nothing is written until apply.
func HandlePricingPreview(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PricingChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		changeSet := &domain.PricingChangeSet{
			WaxPriceCents:       req.Waxes,
			WickCostCents:       req.Wicks,
			VesselBaseCostCents: req.Vessels,
		}
		preview, err := svcs.Pricing.Preview(c.Request.Context(), changeSet)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, previewResponse(preview))
	}
}

// HandlePricingApply handles POST /v1/pricing/apply
// The confirmation string must equal one of the new prices from the
// pending preview; a mismatch applies nothing.
func HandlePricingApply(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ApplyPricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		result, err := svcs.Pricing.Apply(c.Request.Context(), req.Confirmation)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"variants_updated": result.VariantsUpdated,
			"warnings":         result.Warnings,
		})
	}
}

// HandlePricingCancel handles POST /v1/pricing/cancel
func HandlePricingCancel(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svcs.Pricing.Cancel()
		c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	}
}
