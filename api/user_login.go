package api

import (
	"errors"
	"net/http"
	"strings"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLogin verifies credentials and issues a fresh token pair,
// evicting any previous session for the account.
func (a *API) UserLogin(c *gin.Context) error {
	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		return httpx.BadRequest("Invalid request body")
	}

	if data.Username == "" || data.Password == "" {
		return httpx.BadRequest("Username and password are required")
	}

	username := strings.ToLower(strings.TrimSpace(data.Username))

	var user model.User
	if err := a.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("User not found")
		}

		zap.L().Error("Failed to look up user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if !user.IsVerified {
		return httpx.BadRequest("Verification needed before signing in")
	}

	ok, err := a.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if !ok {
		return httpx.BadRequest("Invalid password")
	}

	access, refresh, err := a.issueTokenPair(&user)
	if err != nil {
		zap.L().Error("Failed to issue token pair", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	a.setAuthCookies(c, access, refresh)

	httpx.OK(c, http.StatusOK, "Login successful", gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"user": gin.H{
			"id":       user.ID,
			"fullname": user.FullName,
			"username": user.Username,
			"email":    user.Email,
		},
	})
	return nil
}
