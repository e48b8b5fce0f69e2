package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakerscr/storefront-backend/pkg/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Issuer:     "sneakerscr-storefront",
		TTLMinutes: 60,
	}
}

func TestMintAndParse(t *testing.T) {
	cfg := testSessionConfig()

	token, sessionID, err := Mint(cfg, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessionID)

	parsed, err := Parse(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, parsed)
}

func TestMintRequiresSecret(t *testing.T) {
	cfg := testSessionConfig()
	cfg.Secret = ""

	_, _, err := Mint(cfg, time.Now())
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testSessionConfig()

	token, _, err := Mint(cfg, time.Now())
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = Parse(other, token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()

	token, _, err := Mint(cfg, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = Parse(cfg, token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testSessionConfig()

	token, _, err := Mint(cfg, time.Now())
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = Parse(other, token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(testSessionConfig(), "not-a-token")
	assert.Error(t, err)
}
