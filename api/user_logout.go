package api

import (
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLogout clears the persisted refresh token so neither cookie can
// mint new sessions.
func (a *API) UserLogout(c *gin.Context) error {
	userID := c.MustGet("userID").(string)

	err := a.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", "").
		Error
	if err != nil {
		zap.L().Error("Failed to clear refresh token", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	a.clearAuthCookies(c)

	httpx.OK(c, http.StatusOK, "Logout successful", nil)
	return nil
}
