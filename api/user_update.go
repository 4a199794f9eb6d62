package api

import (
	"errors"
	"net/http"
	"strings"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateAccountBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

func (a *API) UserUpdateAccount(c *gin.Context) error {
	userID := c.MustGet("userID").(string)

	var data updateAccountBody
	if err := c.ShouldBind(&data); err != nil {
		return httpx.BadRequest("Invalid request body")
	}

	username := strings.ToLower(strings.TrimSpace(data.Username))
	email := strings.ToLower(strings.TrimSpace(data.Email))
	fullname := strings.TrimSpace(data.FullName)

	if username == "" || email == "" || fullname == "" {
		return httpx.BadRequest("All fields are required")
	}

	if err := validators.EmailValidator(email); err != nil {
		return httpx.BadRequest(err.Error())
	}

	// Reject identities already claimed by a different account
	var taken int64
	err := a.DB.
		Model(model.User{}).
		Where("(email = ? OR username = ?) AND id <> ?", email, username, userID).
		Count(&taken).
		Error
	if err != nil {
		zap.L().Error("Failed to check identity uniqueness", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	if taken > 0 {
		return httpx.Conflict("Email or username already exists")
	}

	res := a.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"username":  username,
			"email":     email,
			"full_name": fullname,
		})
	if res.Error != nil {
		zap.L().Error("Failed to update account", zap.Error(res.Error))
		return httpx.Internal("Internal server error")
	}

	var user model.User
	if err := a.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound("User not found")
		}

		zap.L().Error("Failed to fetch updated user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, "User information updated successfully", gin.H{
		"user": sanitizeUser(&user),
	})
	return nil
}
