package api

import (
	"errors"
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserCurrent returns the caller's own sanitized profile.
func (a *API) UserCurrent(c *gin.Context) error {
	userID := c.MustGet("userID").(string)

	var user model.User
	if err := a.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("User not found")
		}

		zap.L().Error("Failed to fetch user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "User retrieved successfully", gin.H{
		"user": sanitizeUser(&user),
	})
	return nil
}

// UserFetchAll lists every account. Admin only, wired behind
// RequireAdmin in the router.
func (a *API) UserFetchAll(c *gin.Context) error {
	var users []model.User
	if err := a.DB.Find(&users).Error; err != nil {
		zap.L().Error("Failed to fetch users", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "Users retrieved successfully", gin.H{
		"users": sanitizeUsers(users),
	})
	return nil
}
