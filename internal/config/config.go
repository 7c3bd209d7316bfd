// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (RESUME_* overrides, PORT for Cloud Run)
//  2. Config file (./config.yaml)
//  3. Default values
//
// A .env file in the working directory is loaded before anything else so the
// server picks up GEMINI_API_KEY regardless of how it was started.
//
// Security: the Gemini API key is read from the environment by Genkit itself
// and is never stored in Config, logged, or echoed back.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model is empty or malformed.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidTopK indicates the retrieval top-k value is out of range.
	ErrInvalidTopK = errors.New("invalid top-k")

	// ErrInvalidDataDir indicates the data directory is not set.
	ErrInvalidDataDir = errors.New("invalid data directory")

	// ErrInvalidRateLimit indicates the ask rate limit is out of range.
	ErrInvalidRateLimit = errors.New("invalid rate limit")
)

const (
	// DefaultModelName is the Gemini model used to answer questions.
	// gemini-1.5-flash is deprecated upstream; 2.5 is the supported line.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultEmbedderModel is the Gemini embedder used for passage vectors.
	DefaultEmbedderModel = "text-embedding-004"

	// DefaultTopK is the number of passages retrieved per question.
	DefaultTopK = 4

	// MaxTopK caps retrieval size; more context than this only adds noise
	// for a single-resume corpus.
	MaxTopK = 10
)

// Config stores application configuration.
type Config struct {
	// Data files
	DataDir    string `mapstructure:"data_dir" json:"data_dir"`       // directory holding the JSON documents
	IndexDir   string `mapstructure:"index_dir" json:"index_dir"`     // directory for the persisted vector index
	AbbrevFile string `mapstructure:"abbrev_file" json:"abbrev_file"` // abbreviated resume (page display)
	FullFile   string `mapstructure:"full_file" json:"full_file"`     // full resume (retrieval corpus)
	FAQFile    string `mapstructure:"faq_file" json:"faq_file"`       // optional FAQ Q&A pairs

	// AI configuration
	ModelName     string  `mapstructure:"model_name" json:"model_name"`
	EmbedderModel string  `mapstructure:"embedder_model" json:"embedder_model"`
	Temperature   float32 `mapstructure:"temperature" json:"temperature"`
	TopK          int     `mapstructure:"top_k" json:"top_k"`

	// Server configuration
	Addr       string  `mapstructure:"addr" json:"addr"`
	RateLimit  float64 `mapstructure:"rate_limit" json:"rate_limit"` // ask requests per second per IP
	RateBurst  int     `mapstructure:"rate_burst" json:"rate_burst"`
	TrustProxy bool    `mapstructure:"trust_proxy" json:"trust_proxy"` // trust X-Real-IP/X-Forwarded-For behind a proxy
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	// Best effort: a missing .env is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Cloud Run sets PORT; it wins over the configured address so the
	// container binds where the platform expects.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("index_dir", "data/index")
	v.SetDefault("abbrev_file", "resume-abbrev.json")
	v.SetDefault("full_file", "resume-full.json")
	v.SetDefault("faq_file", "rag-faq.json")

	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("temperature", 0.2)
	v.SetDefault("top_k", DefaultTopK)

	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("rate_limit", 1.0)
	v.SetDefault("rate_burst", 5)
	v.SetDefault("trust_proxy", false)
}

// bindEnvVariables binds environment variable overrides explicitly.
// Hardcoded keys cannot fail to bind; a bind error here is a bug.
func bindEnvVariables(v *viper.Viper) {
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("data_dir", "RESUME_DATA_DIR")
	mustBind("index_dir", "RESUME_INDEX_DIR")
	mustBind("model_name", "RESUME_MODEL_NAME")
	mustBind("embedder_model", "RESUME_EMBEDDER_MODEL")
	mustBind("temperature", "RESUME_TEMPERATURE")
	mustBind("top_k", "RESUME_TOP_K")
	mustBind("addr", "RESUME_ADDR")
	mustBind("rate_limit", "RESUME_RATE_LIMIT")
	mustBind("rate_burst", "RESUME_RATE_BURST")
	mustBind("trust_proxy", "RESUME_TRUST_PROXY")

	// NOTE: GEMINI_API_KEY (or GOOGLE_API_KEY) is read directly by Genkit,
	// not via Viper. HasAPIKey reports its presence.
}

// HasAPIKey reports whether a Gemini API key is available in the environment.
// The server starts and serves the resume page without one; only the ask
// endpoint degrades to 503 until a key is configured.
func HasAPIKey() bool {
	return os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != ""
}
