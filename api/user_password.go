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

type changePasswordBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (a *API) UserChangePassword(c *gin.Context) error {
	userID := c.MustGet("userID").(string)

	var data changePasswordBody
	if err := c.ShouldBind(&data); err != nil {
		return httpx.BadRequest("Invalid request body")
	}

	if data.OldPassword == "" || data.NewPassword == "" {
		return httpx.BadRequest("Old password and new password are required")
	}

	var user model.User
	if err := a.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("User not found")
		}

		zap.L().Error("Failed to fetch user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	ok, err := a.Argon.VerifyPasswd(data.OldPassword, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if !ok {
		return httpx.BadRequest("Invalid old password")
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		return httpx.BadRequest(err.Error())
	}

	hash, err := a.Argon.GenerateFromPassword(data.NewPassword)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	err = a.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).
		Error
	if err != nil {
		zap.L().Error("Failed to update password", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "Password updated successfully", nil)
	return nil
}
