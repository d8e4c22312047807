// Package config loads and validates the application configuration from
// environment variables and an optional config file. Configuration is an
// immutable value constructed once at process start and passed into every
// component constructor; there is no ambient global state.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Source    SourceConfig    `mapstructure:"source" validate:"required"`
	Board     BoardConfig     `mapstructure:"board" validate:"required"`
	Model     ModelConfig     `mapstructure:"model" validate:"required"`
	Execution ExecutionConfig `mapstructure:"execution" validate:"required"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Workers   int             `mapstructure:"workers" validate:"required,gte=1,lte=32"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// SourceConfig locates the note corpus.
type SourceConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// BoardConfig holds the remote board endpoint, its credential and the
// environment-specific project, view and bucket identifiers. Bucket IDs
// are resolved once here and never hard-coded anywhere else.
type BoardConfig struct {
	URL               string `mapstructure:"url" validate:"required,url"`
	Token             string `mapstructure:"token" validate:"required"`
	ProjectID         int64  `mapstructure:"project_id" validate:"required,gt=0"`
	ViewID            int64  `mapstructure:"view_id" validate:"required,gt=0"`
	InboxBucketID     int64  `mapstructure:"inbox_bucket_id" validate:"required,gt=0"`
	ConfirmedBucketID int64  `mapstructure:"confirmed_bucket_id" validate:"required,gt=0"`
	DoneBucketID      int64  `mapstructure:"done_bucket_id" validate:"required,gt=0"`
}

// ModelConfig selects and configures the extraction model backend.
type ModelConfig struct {
	// Backend selects the model provider.
	Backend string `mapstructure:"backend" validate:"required,oneof=gemini ollama"`

	// Name is the model identifier understood by the selected backend.
	Name string `mapstructure:"name" validate:"required"`

	// GeminiAPIKey authenticates against the Gemini API. Required when
	// Backend is gemini; it has no default.
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`

	// OllamaHost is the base URL of a local Ollama server.
	OllamaHost string `mapstructure:"ollama_host" validate:"required_if=Backend ollama,omitempty,url"`

	// ChunkSize bounds the note text sent to the model in one request,
	// in runes. Longer units are split at markdown boundaries.
	ChunkSize int `mapstructure:"chunk_size" validate:"required,gte=500,lte=100000"`

	// MaxRetries bounds retry attempts against the model backend.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// RetryDelaySeconds is the base delay for exponential backoff.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// ExecutionConfig configures the external execution service.
type ExecutionConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	APIKey         string `mapstructure:"api_key" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gte=1,lte=600"`
}

// LedgerConfig optionally enables the processed-unit ledger used to
// deduplicate ingest runs. Without a database URL the ledger is disabled
// and ingestion is at-least-once.
type LedgerConfig struct {
	DatabaseURL string `mapstructure:"database_url" validate:"omitempty,url"`
}
