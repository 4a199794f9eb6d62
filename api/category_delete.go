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

// CategoryDelete removes a category directly. Child categories and
// products keep their now-dangling references, there is no cascade.
func (a *API) CategoryDelete(c *gin.Context) error {
	id := c.Param("id")

	if err := validators.IDValidator(id); err != nil {
		return httpx.NotFound("Invalid category ID")
	}

	var cat model.Category
	if err := a.DB.Where("id = ?", id).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("Category not found")
		}

		zap.L().Error("Failed to fetch category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if err := a.DB.Delete(&cat).Error; err != nil {
		zap.L().Error("Failed to delete category", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "Category deleted successfully", nil)
	return nil
}
