package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/security"
	"storekit/commerce-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRegister creates an unverified account, or resends a fresh
// verification code when the same identity already registered but
// never verified. A verified duplicate is rejected outright.
func (a *API) UserRegister(c *gin.Context) error {
	username := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	fullname := strings.TrimSpace(c.PostForm("fullname"))
	password := c.PostForm("password")

	if username == "" || email == "" || fullname == "" || password == "" {
		return httpx.BadRequest("All fields are required")
	}

	if err := validators.EmailValidator(email); err != nil {
		return httpx.BadRequest(err.Error())
	}

	if err := validators.PasswordValidator(password); err != nil {
		return httpx.BadRequest(err.Error())
	}

	var existing model.User
	err := a.DB.Where("email = ? OR username = ?", email, username).First(&existing).Error

	switch {
	case err == nil:
		if existing.IsVerified {
			return httpx.Conflict("Email or username already exists")
		}

		// Unverified re-registration resends a new code and
		// invalidates the previous one. No second account.
		code, err := security.MakeVerifyCode()
		if err != nil {
			zap.L().Error("Failed to generate verification code", zap.Error(err))
			return httpx.Internal("Internal server error")
		}

		expiry := time.Now().Add(security.VerifyCodeTTL)

		err = a.DB.
			Model(model.User{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"verify_code":        code,
				"verify_code_expiry": expiry,
			}).
			Error
		if err != nil {
			zap.L().Error("Failed to store verification code", zap.Error(err))
			return httpx.Internal("Internal server error")
		}

		if err := a.Mail.SendVerificationCode(existing.Email, code); err != nil {
			zap.L().Error("Failed to send verification email", zap.Error(err))
			return httpx.Internal("Failed to send verification email")
		}

		httpx.OK(c, http.StatusOK, "Verification code sent to your email", nil)
		return nil

	case !errors.Is(err, gorm.ErrRecordNotFound):
		zap.L().Error("Failed to check if user is registered", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	avatarFh, err := c.FormFile("avatar")
	if err != nil {
		return httpx.BadRequest("Avatar is required")
	}

	avatarURL, err := a.uploadImage(c.Request.Context(), avatarFh, "avatars", "Avatar")
	if err != nil {
		return err
	}

	var coverURL string
	if coverFh, err := c.FormFile("coverimage"); err == nil {
		coverURL, err = a.uploadImage(c.Request.Context(), coverFh, "covers", "Cover image")
		if err != nil {
			return err
		}
	}

	hash, err := a.Argon.GenerateFromPassword(password)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	userID, err := newID()
	if err != nil {
		zap.L().Error("Failed to generate user ID", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	code, err := security.MakeVerifyCode()
	if err != nil {
		zap.L().Error("Failed to generate verification code", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	expiry := time.Now().Add(security.VerifyCodeTTL)

	user := model.User{
		ID:               userID,
		Username:         username,
		Email:            email,
		FullName:         fullname,
		PasswordHash:     hash,
		Avatar:           avatarURL,
		CoverImage:       coverURL,
		IsVerified:       false,
		VerifyCode:       code,
		VerifyCodeExpiry: &expiry,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		zap.L().Error("Failed to create user", zap.Error(err))
		return httpx.Internal("Internal server error")
	}

	// An email failure here leaves the unverified account in place.
	// Registering again resends a fresh code.
	if err := a.Mail.SendVerificationCode(user.Email, code); err != nil {
		zap.L().Error("Failed to send verification email", zap.Error(err))
		return httpx.Internal("Failed to send verification email")
	}

	httpx.OK(c, http.StatusOK, "User registered successfully. Verification code sent to your email.", gin.H{
		"user": sanitizeUser(&user),
	})
	return nil
}
