package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sarisaristore/sarisari-backend/pkg/config"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "sarisari-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	actorID := uuid.New()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		ActorID: actorID,
		Role:    enums.ActorRoleCustomer,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, actorID, claims.ActorID)
	require.Equal(t, enums.ActorRoleCustomer, claims.Role)
	require.NotEmpty(t, claims.ID)
}

func TestMintRejectsInvalidInput(t *testing.T) {
	cfg := testJWTConfig()

	_, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: enums.ActorRoleAdmin})
	require.Error(t, err, "nil actor id")

	_, err = MintAccessToken(cfg, time.Now(), AccessTokenPayload{ActorID: uuid.New(), Role: enums.ActorRole("root")})
	require.Error(t, err, "unknown role")

	cfg.Secret = ""
	_, err = MintAccessToken(cfg, time.Now(), AccessTokenPayload{ActorID: uuid.New(), Role: enums.ActorRoleAdmin})
	require.Error(t, err, "missing secret")
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		ActorID: uuid.New(),
		Role:    enums.ActorRoleAdmin,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	minting := testJWTConfig()
	signed, err := MintAccessToken(minting, time.Now(), AccessTokenPayload{
		ActorID: uuid.New(),
		Role:    enums.ActorRoleCustomer,
	})
	require.NoError(t, err)

	parsing := testJWTConfig()
	parsing.Issuer = "someone-else"
	_, err = ParseAccessToken(parsing, signed)
	require.Error(t, err)
}
