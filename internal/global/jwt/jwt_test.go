package jwt

import (
	"testing"

	"hackathon-vote-system/config"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Set(config.Default())

	token := CreateToken(Payload{UserID: 7, NickName: "ada", RoleID: RoleAdmin})
	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "ada", claims.NickName)
	require.Equal(t, RoleAdmin, claims.RoleID)
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	cfg := config.Default()
	config.Set(cfg)
	token := CreateToken(Payload{UserID: 1})

	other := config.Default()
	other.JWT.AccessSecret = "rotated"
	config.Set(other)
	t.Cleanup(func() { config.Set(config.Default()) })

	_, ok := ParseToken(token)
	require.False(t, ok)
}

func TestTokenRejectsExpired(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.AccessExpire = -60
	config.Set(cfg)
	t.Cleanup(func() { config.Set(config.Default()) })

	_, ok := ParseToken(CreateToken(Payload{UserID: 1}))
	require.False(t, ok)
}

func TestParseGarbage(t *testing.T) {
	_, ok := ParseToken("not-a-token")
	require.False(t, ok)
}
