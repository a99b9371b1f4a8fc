package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "unit_secret",
		JWTRefreshSecret:          "unit_refresh_secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 24,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()

	access, refresh, err := GenerateTokens(models.RoleDoctor, 42, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
	assert.Equal(t, "42", claims.Subject)

	refreshClaims, err := ValidateToken(refresh, cfg.JWTRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.AccountID)
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	cfg := testConfig()

	// Same account, same instant: tokens must still differ, or revoking one
	// refresh token by value would revoke (or resurrect) its twin.
	_, first, err := GenerateTokens(models.RolePatient, 7, cfg)
	require.NoError(t, err)
	_, second, err := GenerateTokens(models.RolePatient, 7, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := ValidateToken(first, cfg.JWTRefreshSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()

	access, _, err := GenerateTokens(models.RolePatient, 7, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(access, "some_other_secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsRefreshOnAccessSecret(t *testing.T) {
	cfg := testConfig()

	_, refresh, err := GenerateTokens(models.RolePatient, 7, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(refresh, cfg.JWTSecret)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "unit_secret")
	assert.Error(t, err)
}
