package handlers

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/internal/service"
)

// HandleGetVariantMatrix handles GET /v1/variants
// Returns the full priced combination matrix for every enabled
// ingredient, in generation order.
func HandleGetVariantMatrix(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		combos, err := svcs.Variants.GenerateMatrix(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		responses := make([]gin.H, len(combos))
		for i, combo := range combos {
			responses[i] = gin.H{
				"container": combo.Container,
				"wax":       combo.Wax,
				"wick":      combo.Wick,
				"price":     combo.Price,
				"sku":       combo.SKU,
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"variants": responses,
			"count":    len(combos),
		})
	}
}

// HandleExportVariantMatrix handles GET /v1/variants/export
// Streams the matrix as CSV for spreadsheet review.
func HandleExportVariantMatrix(svcs *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		combos, err := svcs.Variants.GenerateMatrix(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="variant-matrix.csv"`)
		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"container", "wax", "wick", "sku", "price"})
		for _, combo := range combos {
			_ = w.Write([]string{combo.Container, combo.Wax, combo.Wick, combo.SKU, combo.Price})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			logger.Error("Failed to stream variant CSV", zap.Error(err))
		}
	}
}
