package api

import (
	"net/http"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserChangeAvatar replaces the caller's avatar with a freshly
// uploaded image.
func (a *API) UserChangeAvatar(c *gin.Context) error {
	return a.changeProfileImage(c, "avatar", "avatars", "Avatar", "Avatar updated successfully")
}

func (a *API) UserChangeCoverImage(c *gin.Context) error {
	return a.changeProfileImage(c, "coverimage", "covers", "Cover image", "Cover image updated successfully")
}

func (a *API) changeProfileImage(c *gin.Context, field, keyPrefix, label, message string) error {
	userID := c.MustGet("userID").(string)

	fh, err := c.FormFile(field)
	if err != nil {
		return httpx.BadRequest(label + " file is required")
	}

	url, err := a.uploadImage(c.Request.Context(), fh, keyPrefix, label)
	if err != nil {
		return err
	}

	column := "avatar"
	if field == "coverimage" {
		column = "cover_image"
	}

	err = a.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Update(column, url).
		Error
	if err != nil {
		zap.L().Error("Failed to update profile image", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	var user model.User
	if err := a.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		zap.L().Error("Failed to fetch updated user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	httpx.OK(c, http.StatusOK, message, gin.H{
		"user": sanitizeUser(&user),
	})
	return nil
}
