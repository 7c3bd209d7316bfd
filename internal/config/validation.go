package config

import (
	"fmt"
	"strings"
)

// Validate checks all configuration values and fails fast with a sentinel
// error that callers can test with errors.Is.
func (c *Config) Validate() error {
	if err := c.validateDataDir(); err != nil {
		return err
	}
	if err := c.validateModels(); err != nil {
		return err
	}
	if err := c.validateRetrieval(); err != nil {
		return err
	}
	return c.validateServer()
}

func (c *Config) validateDataDir() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidDataDir)
	}
	if strings.TrimSpace(c.AbbrevFile) == "" || strings.TrimSpace(c.FullFile) == "" {
		return fmt.Errorf("%w: abbrev_file and full_file must not be empty", ErrInvalidDataDir)
	}
	return nil
}

func (c *Config) validateModels() error {
	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model_name must not be empty", ErrInvalidModelName)
	}
	if strings.ContainsAny(c.ModelName, " \t\n") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidModelName, c.ModelName)
	}
	if strings.TrimSpace(c.EmbedderModel) == "" {
		return fmt.Errorf("%w: embedder_model must not be empty", ErrInvalidEmbedderModel)
	}
	if strings.ContainsAny(c.EmbedderModel, " \t\n") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidEmbedderModel, c.EmbedderModel)
	}
	return nil
}

func (c *Config) validateRetrieval() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: must be in [0, 2], got %v", ErrInvalidTemperature, c.Temperature)
	}
	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("%w: must be in [1, %d], got %d", ErrInvalidTopK, MaxTopK, c.TopK)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate_limit must be positive, got %v", ErrInvalidRateLimit, c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("%w: rate_burst must be at least 1, got %d", ErrInvalidRateLimit, c.RateBurst)
	}
	return nil
}

// FullModelName returns the provider-qualified model name for Genkit,
// e.g. "googleai/gemini-2.5-flash". A name already containing "/" is
// returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	return "googleai/" + c.ModelName
}
