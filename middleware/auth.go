package middleware

import (
	"errors"
	"strings"

	"storekit/commerce-api/httpx"
	"storekit/commerce-api/model"
	"storekit/commerce-api/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccessTokenCookie is the one canonical cookie name for access
// tokens, used at both set and read sites.
const AccessTokenCookie = "accessToken"

// RefreshTokenCookie is the canonical refresh token cookie name.
const RefreshTokenCookie = "refreshToken"

// NewAuthMiddleware verifies the access token from the accessToken
// cookie or an Authorization bearer header, checks the account still
// exists and resolves the caller's identity for downstream handlers as
// userID / isAdmin.
func NewAuthMiddleware(d *gorm.DB, tokens *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractAccessToken(c)
		if tokenStr == "" {
			httpx.AbortError(c, httpx.Unauthorized("Unauthorized request"))
			return
		}

		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			zap.L().Debug("Rejected access token",
				zap.Error(err),
				zap.String("requestID", c.GetString("requestID")),
			)

			httpx.AbortError(c, httpx.Unauthorized("Invalid or expired access token"))
			return
		}

		// The account may have been deleted after the token was minted
		var user model.User
		err = d.Where("id = ?", claims.UserID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.AbortError(c, httpx.Unauthorized("Invalid or expired access token"))
				return
			}

			zap.L().Error("Failed to check if user exists", zap.Error(err))
			httpx.AbortError(c, httpx.Internal("Internal server error"))
			return
		}

		c.Set("userID", user.ID)
		c.Set("isAdmin", user.IsAdmin)
		c.Next()
	}
}

// RequireAdmin gates a route on the admin flag resolved by the auth
// middleware, which must run first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, ok := c.Get("isAdmin")
		if !ok || !isAdmin.(bool) {
			httpx.AbortError(c, httpx.Forbidden("Admin access required"))
			return
		}

		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(after)
	}

	return ""
}
