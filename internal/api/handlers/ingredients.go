package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/domain"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/repository"
	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
)

// HandleListWaxes handles GET /v1/waxes
func HandleListWaxes(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		waxes, err := repos.Wax.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		responses := make([]gin.H, len(waxes))
		for i, w := range waxes {
			responses[i] = gin.H{
				"id":                 w.ID.String(),
				"name":               w.Name,
				"price_per_oz_cents": w.PricePerOzCents,
				"is_active":          w.IsActive,
			}
		}
		c.JSON(http.StatusOK, gin.H{"waxes": responses})
	}
}

// HandleCreateWax handles POST /v1/waxes
func HandleCreateWax(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateWaxRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		wax := &domain.Wax{Name: req.Name, PricePerOzCents: req.PricePerOzCents, IsActive: true}
		if err := repos.Wax.Create(c.Request.Context(), wax); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		logger.Info("Created wax", zap.String("name", wax.Name))
		c.JSON(http.StatusCreated, gin.H{"id": wax.ID.String(), "name": wax.Name})
	}
}

// HandleUpdateWaxCost handles PUT /v1/waxes/:name/cost
// Direct cost correction outside the preview/apply flow; live catalog
// prices converge on the next sync.
func HandleUpdateWaxCost(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateCostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		name := c.Param("name")
		if err := repos.Wax.UpdatePrice(c.Request.Context(), name, req.Cents); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "price_per_oz_cents": req.Cents})
	}
}

// HandleDeactivateWax handles DELETE /v1/waxes/:name
func HandleDeactivateWax(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if err := repos.Wax.SetActive(c.Request.Context(), name, false); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "is_active": false})
	}
}

// HandleEnableWax handles POST /v1/waxes/:name/enable
func HandleEnableWax(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if err := repos.Wax.SetActive(c.Request.Context(), name, true); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "is_active": true})
	}
}

// HandleListWicks handles GET /v1/wicks
func HandleListWicks(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		wicks, err := repos.Wick.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		responses := make([]gin.H, len(wicks))
		for i, w := range wicks {
			responses[i] = gin.H{
				"id":         w.ID.String(),
				"name":       w.Name,
				"cost_cents": w.CostCents,
				"is_active":  w.IsActive,
			}
		}
		c.JSON(http.StatusOK, gin.H{"wicks": responses})
	}
}

// HandleCreateWick handles POST /v1/wicks
func HandleCreateWick(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateWickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		wick := &domain.Wick{Name: req.Name, CostCents: req.CostCents, IsActive: true}
		if err := repos.Wick.Create(c.Request.Context(), wick); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		logger.Info("Created wick", zap.String("name", wick.Name))
		c.JSON(http.StatusCreated, gin.H{"id": wick.ID.String(), "name": wick.Name})
	}
}

// HandleUpdateWickCost handles PUT /v1/wicks/:name/cost
func HandleUpdateWickCost(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateCostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}
		name := c.Param("name")
		if err := repos.Wick.UpdateCost(c.Request.Context(), name, req.Cents); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "cost_cents": req.Cents})
	}
}

// HandleDeactivateWick handles DELETE /v1/wicks/:name
func HandleDeactivateWick(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if err := repos.Wick.SetActive(c.Request.Context(), name, false); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "is_active": false})
	}
}

// HandleEnableWick handles POST /v1/wicks/:name/enable
func HandleEnableWick(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if err := repos.Wick.SetActive(c.Request.Context(), name, true); err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "is_active": true})
	}
}
