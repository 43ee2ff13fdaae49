package pathao

import (
	"fmt"
	"strings"
	"time"
)

// Environment selects which Pathao deployment the client talks to.
type Environment string

const (
	// EnvSandbox is the publicly documented test environment.
	EnvSandbox Environment = "sandbox"
	// EnvProduction is the live courier environment.
	EnvProduction Environment = "production"
)

// Endpoint and default constants. BaseURL may always be overridden
// explicitly or via PATHAO_BASE_URL.
const (
	SandboxBaseURL    = "https://courier-api-sandbox.pathao.com"
	ProductionBaseURL = "https://api-hermes.pathao.com"

	// DefaultTimeoutSeconds is the request timeout applied when none is
	// configured.
	DefaultTimeoutSeconds = 30.0

	// DefaultMaxRetries is the retry attempt ceiling applied when none
	// is configured.
	DefaultMaxRetries = 3
)

// Config is the resolved set of credentials and operational parameters
// for reaching the Pathao Courier API.
//
// Values are resolved in priority order: explicitly set fields win over
// environment variables (PATHAO_ prefix), which win over built-in
// defaults. A Config is read-only input to [NewClient]; it may be shared
// across clients.
//
// Struct tags follow caarlos0/env; the PATHAO_ prefix is applied during
// parsing.
type Config struct {
	// ClientID is the API client identifier issued by Pathao.
	// Env: PATHAO_CLIENT_ID. Required.
	ClientID string `env:"CLIENT_ID"`

	// ClientSecret is the API client secret issued by Pathao.
	// Env: PATHAO_CLIENT_SECRET. Required.
	ClientSecret string `env:"CLIENT_SECRET"`

	// Username is the merchant account username.
	// Env: PATHAO_USERNAME. Required.
	Username string `env:"USERNAME"`

	// Password is the merchant account password.
	// Env: PATHAO_PASSWORD. Required.
	Password string `env:"PASSWORD"`

	// Environment selects sandbox or production.
	// Env: PATHAO_ENVIRONMENT. Defaults to sandbox.
	Environment Environment `env:"ENVIRONMENT"`

	// BaseURL overrides the per-environment endpoint when non-empty.
	// Env: PATHAO_BASE_URL.
	BaseURL string `env:"BASE_URL"`

	// TimeoutSeconds is the request timeout in seconds.
	// Env: PATHAO_TIMEOUT. Defaults to 30.0.
	TimeoutSeconds float64 `env:"TIMEOUT"`

	// MaxRetries is the retry attempt ceiling for transient failures.
	// Env: PATHAO_MAX_RETRIES. Defaults to 3.
	MaxRetries int `env:"MAX_RETRIES"`

	// WebhookSecret verifies inbound webhook requests. Optional; only
	// needed by the webhook package.
	// Env: PATHAO_WEBHOOK_SECRET.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// CachePath, when non-empty, makes the reference-data cache persist
	// to a SQLite file at this path so it survives restarts. Empty
	// keeps the cache in memory.
	// Env: PATHAO_CACHE_PATH.
	CachePath string `env:"CACHE_PATH"`
}

// SandboxConfig returns a Config populated with the publicly documented
// sandbox credentials. The credentials are fixed, non-sensitive test
// values; never use them in production.
func SandboxConfig() Config {
	return Config{
		ClientID:     "7N1aMJQbWm",
		ClientSecret: "wRcaibZkUdSNz2EI9ZyuXLlNrnAv0TdPUPXMnD39",
		Username:     "test@pathao.com",
		Password:     "lovePathao",
		Environment:  EnvSandbox,
	}
}

// FromEnv resolves a Config purely from PATHAO_* environment variables
// plus built-in defaults.
func FromEnv() (Config, error) {
	return Config{}.Resolve()
}

// Resolve fills the receiver's unset fields from the environment and
// built-in defaults, validates the result, and returns it. Explicitly
// set fields always take precedence over conflicting environment
// values.
func (c Config) Resolve() (Config, error) {
	return newConfigBuilder().
		withExplicit(c).
		withEnv().
		withDefaults().
		build()
}

// Timeout converts the configured timeout to a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// validate checks the invariants of a fully resolved Config: all
// credential fields present and a recognized environment selector.
// Missing credentials are reported together, not one at a time.
func (c Config) validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if c.Environment != EnvSandbox && c.Environment != EnvProduction {
		return fmt.Errorf("%w: got %q", ErrInvalidEnvironment, c.Environment)
	}

	return nil
}
