package api

import (
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryFetchAll lists every category. An empty store is a success
// with an empty list, not an error.
func (a *API) CategoryFetchAll(c *gin.Context) error {
	var cats []model.Category
	if err := a.DB.Find(&cats).Error; err != nil {
		zap.L().Error("Failed to fetch categories", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	views := make([]categoryResponse, 0, len(cats))
	for i := range cats {
		views = append(views, categoryView(&cats[i]))
	}

	httpx.OK(c, http.StatusOK, "Categories fetched successfully", gin.H{
		"category": views,
	})
	return nil
}
