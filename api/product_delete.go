package api

import (
	"errors"
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductDelete removes a product directly, no cascade concerns.
func (a *API) ProductDelete(c *gin.Context) error {
	id := c.Param("id")

	if err := validators.IDValidator(id); err != nil {
		return httpx.BadRequest("Invalid product ID")
	}

	var product model.Product
	if err := a.DB.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("Product not found")
		}

		zap.L().Error("Failed to fetch product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if err := a.DB.Delete(&product).Error; err != nil {
		zap.L().Error("Failed to delete product", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "Product deleted successfully", nil)
	return nil
}
