package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (NOTEWIRE_ prefix,
// underscores for nesting, e.g. NOTEWIRE_BOARD_TOKEN) and an optional
// notewire.yaml in the working directory. Environment variables take
// precedence. The result is validated before it is returned: a missing
// secret fails here, before any pass starts.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("notewire")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; the environment can carry everything.
	}

	v.SetEnvPrefix("NOTEWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every known key with viper so AutomaticEnv can
// resolve it, and supplies the non-secret defaults. Secrets default to
// empty and are rejected by validation when still unset.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("source.dir", "")

	v.SetDefault("board.url", "")
	v.SetDefault("board.token", "")
	v.SetDefault("board.project_id", 0)
	v.SetDefault("board.view_id", 0)
	v.SetDefault("board.inbox_bucket_id", 0)
	v.SetDefault("board.confirmed_bucket_id", 0)
	v.SetDefault("board.done_bucket_id", 0)

	v.SetDefault("model.backend", "gemini")
	v.SetDefault("model.name", "gemini-2.0-flash")
	v.SetDefault("model.gemini_api_key", "")
	v.SetDefault("model.ollama_host", "http://localhost:11434")
	v.SetDefault("model.chunk_size", 4000)
	v.SetDefault("model.max_retries", 3)
	v.SetDefault("model.retry_delay_seconds", 2)

	v.SetDefault("execution.url", "https://api.jigsawstack.com")
	v.SetDefault("execution.api_key", "")
	v.SetDefault("execution.timeout_seconds", 30)

	v.SetDefault("ledger.database_url", "")

	v.SetDefault("workers", 2)
}
