package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
)

func vesselResponse(v *domain.Vessel) gin.H {
	resp := gin.H{
		"id":              v.ID.String(),
		"name":            v.Name,
		"size_oz":         v.SizeOz,
		"key":             v.Key(),
		"base_cost_cents": v.BaseCostCents,
		"margin_pct":      v.MarginPct,
		"is_active":       v.IsActive,
		"created_at":      v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"updated_at":      v.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.Supplier != nil {
		resp["supplier"] = *v.Supplier
	}
	if v.ShopifyProductID != nil {
		resp["shopify_product_id"] = *v.ShopifyProductID
	}
	return resp
}

func syncResultResponse(r *domain.SyncResult) gin.H {
	return gin.H{
		"vessel_key":       r.VesselKey,
		"product_id":       r.ProductID,
		"variants_created": r.VariantsCreated,
		"prices_updated":   r.PricesUpdated,
		"warnings":         r.Warnings,
	}
}

// HandleListVessels handles GET /v1/vessels
func HandleListVessels(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vessels, err := repos.Vessel.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		responses := make([]gin.H, len(vessels))
		for i, v := range vessels {
			responses[i] = vesselResponse(v)
		}
		c.JSON(http.StatusOK, gin.H{"vessels": responses})
	}
}

// HandleCheckVessel handles GET /v1/vessels/check?name=...&size_oz=...
// Backs the admin UI's debounced live duplicate check.
func HandleCheckVessel(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("name")
		sizeStr := c.Query("size_oz")
		if name == "" || sizeStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and size_oz are required"})
			return
		}
		sizeOz, err := strconv.Atoi(sizeStr)
		if err != nil || sizeOz <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size_oz must be a positive integer"})
			return
		}

		available, key, err := svcs.Vessels.CheckAvailable(c.Request.Context(), name, sizeOz)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": available, "key": key})
	}
}

// HandleRegisterVessel handles POST /v1/vessels
func HandleRegisterVessel(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterVesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		vessel, syncResult, err := svcs.Vessels.Register(c.Request.Context(), &req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"vessel": vesselResponse(vessel),
			"sync":   syncResultResponse(syncResult),
		})
	}
}

// HandleSyncVessel handles POST /v1/vessels/:id/sync
func HandleSyncVessel(svcs *service.Services, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vessel ID"})
			return
		}
		vessel, err := repos.Vessel.GetByID(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		syncResult, err := svcs.Variants.SyncVessel(c.Request.Context(), vessel)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, syncResultResponse(syncResult))
	}
}

// HandleDeactivateVessel handles DELETE /v1/vessels/:id
// Vessels are soft-disabled, never hard-deleted.
func HandleDeactivateVessel(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vessel ID"})
			return
		}
		if err := svcs.Vessels.Deactivate(c.Request.Context(), id); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "is_active": false})
	}
}
