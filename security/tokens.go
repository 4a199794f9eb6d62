package security

import (
	"errors"
	"fmt"
	"time"

	"storekit/commerce-api/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims carry everything a request needs to know about the
// caller without a database round trip.
type AccessClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the user id. The persisted copy on the user
// row decides whether the token is still the active one.
type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the access/refresh pair. The two
// token kinds use distinct secrets and expiries.
type TokenIssuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	}
}

func (t *TokenIssuer) MakeAccessToken(u *model.User) (string, error) {
	now := time.Now()

	claims := &AccessClaims{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.AccessExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.AccessSecret)
}

func (t *TokenIssuer) MakeRefreshToken(userID string) (string, error) {
	now := time.Now()

	claims := &RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.RefreshExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
}

func (t *TokenIssuer) ParseAccessToken(s string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := t.parse(s, claims, t.AccessSecret); err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (t *TokenIssuer) ParseRefreshToken(s string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.parse(s, claims, t.RefreshSecret); err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (t *TokenIssuer) parse(s string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(s, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}

		return secret, nil
	})
	if err != nil {
		return err
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}
