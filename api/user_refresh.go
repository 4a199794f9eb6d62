package api

import (
	"errors"
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/middleware"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

// UserRefreshToken rotates the token pair. Only the most recently
// persisted refresh token is honored, so a stolen or stale token stops
// working the moment a newer one is issued.
func (a *API) UserRefreshToken(c *gin.Context) error {
	incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
	if incoming == "" {
		var data refreshBody
		if err := c.ShouldBind(&data); err == nil {
			incoming = data.RefreshToken
		}
	}

	if incoming == "" {
		return httpx.Unauthorized("Unauthorized request")
	}

	claims, err := a.Tokens.ParseRefreshToken(incoming)
	if err != nil {
		return httpx.Unauthorized("Invalid refresh token")
	}

	var user model.User
	if err := a.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.Unauthorized("Invalid refresh token")
		}

		zap.L().Error("Failed to look up user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if user.RefreshToken == "" || incoming != user.RefreshToken {
		return httpx.Unauthorized("Refresh token is expired or used")
	}

	access, refresh, err := a.issueTokenPair(&user)
	if err != nil {
		zap.L().Error("Failed to issue token pair", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	a.setAuthCookies(c, access, refresh)

	httpx.OK(c, http.StatusOK, "Access token refreshed", gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
	})
	return nil
}
