package pathao

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// envPrefix is applied to every env tag lookup on [Config].
const envPrefix = "PATHAO_"

// configBuilder assembles a Config from layered sources. Sources are
// merged in the order they were added; because mergo never overwrites a
// field that is already non-zero, earlier sources win. The standard
// chain is explicit > environment > defaults.
type configBuilder struct {
	configs []Config
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]Config, 0, 3)}
}

func (b *configBuilder) build() (Config, error) {
	if b.err != nil {
		return Config{}, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	var cfg Config
	for _, layer := range b.configs {
		if err := mergo.Merge(&cfg, layer); err != nil {
			return Config{}, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURLFor(cfg.Environment)
	}

	return cfg, cfg.validate()
}

func (b *configBuilder) withExplicit(cfg Config) *configBuilder {
	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	var envCfg Config
	if err := env.ParseWithOptions(&envCfg, env.Options{Prefix: envPrefix}); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env configs: %w", err))
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, Config{
		Environment:    EnvSandbox,
		TimeoutSeconds: DefaultTimeoutSeconds,
		MaxRetries:     DefaultMaxRetries,
	})
	return b
}

func baseURLFor(environment Environment) string {
	if environment == EnvProduction {
		return ProductionBaseURL
	}
	return SandboxBaseURL
}
