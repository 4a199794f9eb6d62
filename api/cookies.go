package api

import (
	"net/http"

	"storekit/commerce-api/middleware"
	"storekit/commerce-api/model"

	"github.com/gin-gonic/gin"
)

// issueTokenPair mints a fresh access/refresh pair and persists the
// refresh token, evicting whatever session held it before.
func (a *API) issueTokenPair(u *model.User) (access, refresh string, err error) {
	access, err = a.Tokens.MakeAccessToken(u)
	if err != nil {
		return "", "", err
	}

	refresh, err = a.Tokens.MakeRefreshToken(u.ID)
	if err != nil {
		return "", "", err
	}

	err = a.DB.
		Model(model.User{}).
		Where("id = ?", u.ID).
		Update("refresh_token", refresh).
		Error
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (a *API) setAuthCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, access, int(a.Cfg.AccessExpiry.Seconds()), "/", "", a.Cfg.Production(), true)
	c.SetCookie(middleware.RefreshTokenCookie, refresh, int(a.Cfg.RefreshExpiry.Seconds()), "/", "", a.Cfg.Production(), true)
}

func (a *API) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", a.Cfg.Production(), true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", a.Cfg.Production(), true)
}
