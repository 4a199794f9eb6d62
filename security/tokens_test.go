package security

import (
	"strconv"
	"testing"
	"time"

	"storekit/commerce-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 720*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()
	u := &model.User{
		ID:       "aBcDeFgHiJkLmNoP",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Username: "alice",
		IsAdmin:  true,
	}

	token, err := issuer.MakeAccessToken(u)
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.Username, claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.MakeRefreshToken("aBcDeFgHiJkLmNoP")
	require.NoError(t, err)

	claims, err := issuer.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "aBcDeFgHiJkLmNoP", claims.UserID)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	issuer := testIssuer()

	access, err := issuer.MakeAccessToken(&model.User{ID: "aBcDeFgHiJkLmNoP"})
	require.NoError(t, err)

	_, err = issuer.ParseRefreshToken(access)
	assert.Error(t, err)

	refresh, err := issuer.MakeRefreshToken("aBcDeFgHiJkLmNoP")
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := issuer.MakeAccessToken(&model.User{ID: "aBcDeFgHiJkLmNoP"})
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	issuer := testIssuer()

	_, err := issuer.ParseAccessToken("not.a.jwt")
	assert.Error(t, err)

	_, err = issuer.ParseRefreshToken("")
	assert.Error(t, err)
}

func TestMakeVerifyCode(t *testing.T) {
	for range 50 {
		code, err := MakeVerifyCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
