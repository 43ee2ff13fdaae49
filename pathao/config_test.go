package pathao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DefaultsApplied(t *testing.T) {
	cfg, err := Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "user@example.com",
		Password:     "pass",
	}.Resolve()

	require.NoError(t, err)
	assert.Equal(t, EnvSandbox, cfg.Environment)
	assert.Equal(t, SandboxBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
}

func TestResolve_EnvironmentVariables(t *testing.T) {
	t.Setenv("PATHAO_CLIENT_ID", "env-id")
	t.Setenv("PATHAO_CLIENT_SECRET", "env-secret")
	t.Setenv("PATHAO_USERNAME", "env-user@example.com")
	t.Setenv("PATHAO_PASSWORD", "env-pass")
	t.Setenv("PATHAO_ENVIRONMENT", "production")
	t.Setenv("PATHAO_TIMEOUT", "12.5")
	t.Setenv("PATHAO_MAX_RETRIES", "7")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, ProductionBaseURL, cfg.BaseURL)
	assert.Equal(t, 12.5, cfg.TimeoutSeconds)
	assert.Equal(t, 7, cfg.MaxRetries)
}

func TestResolve_ExplicitBeatsEnvironment(t *testing.T) {
	t.Setenv("PATHAO_CLIENT_ID", "env-id")
	t.Setenv("PATHAO_CLIENT_SECRET", "env-secret")
	t.Setenv("PATHAO_USERNAME", "env-user@example.com")
	t.Setenv("PATHAO_PASSWORD", "env-pass")
	t.Setenv("PATHAO_TIMEOUT", "99")

	cfg, err := Config{
		ClientID:       "explicit-id",
		TimeoutSeconds: 5,
	}.Resolve()

	require.NoError(t, err)
	assert.Equal(t, "explicit-id", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, 5.0, cfg.TimeoutSeconds)
}

func TestResolve_ExplicitBaseURLOverride(t *testing.T) {
	cfg, err := Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "user@example.com",
		Password:     "pass",
		Environment:  EnvProduction,
		BaseURL:      "http://localhost:8080",
	}.Resolve()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestResolve_MissingCredentialsReportedTogether(t *testing.T) {
	_, err := Config{ClientID: "id"}.Resolve()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "client secret")
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "password")
	assert.NotContains(t, err.Error(), "client id")
}

func TestResolve_InvalidEnvironment(t *testing.T) {
	_, err := Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "user@example.com",
		Password:     "pass",
		Environment:  "staging",
	}.Resolve()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnvironment)
}

func TestSandboxConfig_ResolvesWithoutEnvironment(t *testing.T) {
	cfg, err := SandboxConfig().Resolve()

	require.NoError(t, err)
	assert.Equal(t, EnvSandbox, cfg.Environment)
	assert.Equal(t, SandboxBaseURL, cfg.BaseURL)
	assert.NotEmpty(t, cfg.ClientID)
	assert.NotEmpty(t, cfg.Password)
}

func TestTimeout_Conversion(t *testing.T) {
	cfg := Config{TimeoutSeconds: 2.5}
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
}
