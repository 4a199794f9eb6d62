package api

import (
	"errors"
	"net/http"
	"time"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type verifyBody struct {
	VerifyCode string `json:"verifyCode"`
}

// UserVerify redeems an emailed code. Expired codes fail even on an
// exact match.
func (a *API) UserVerify(c *gin.Context) error {
	var data verifyBody
	if err := c.ShouldBind(&data); err != nil {
		return httpx.BadRequest("Invalid request body")
	}

	if data.VerifyCode == "" {
		return httpx.BadRequest("Verification code is required")
	}

	var user model.User
	err := a.DB.Where("verify_code = ? AND is_verified = ?", data.VerifyCode, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("Invalid verification code or user not found")
		}

		zap.L().Error("Failed to look up verification code", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if user.VerifyCodeExpiry == nil || user.VerifyCodeExpiry.Before(time.Now()) {
		return httpx.BadRequest("Invalid or expired verification code")
	}

	err = a.DB.
		Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"is_verified":        true,
			"verify_code":        "",
			"verify_code_expiry": nil,
		}).
		Error
	if err != nil {
		zap.L().Error("Failed to mark user verified", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "User verified successfully", nil)
	return nil
}
