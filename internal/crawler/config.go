package crawler

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoints of the documentation site.
const (
	DefaultDocsBase = "https://start.exactonline.nl/docs/"
	DefaultIndexURL = "https://start.exactonline.nl/docs/HlpRestAPIResources.aspx"
)

// Config holds all crawler configuration.
type Config struct {
	// URL of the resource index page.
	IndexURL string `json:"index_url" yaml:"index_url"`

	// Host prefix for resolving relative detail-page links.
	DocsBase string `json:"docs_base" yaml:"docs_base"`

	// Directory generated model files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Detail pages fetched concurrently per batch.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Politeness pause between detail batches. This is rate-limiting
	// policy toward the upstream server, not a tuning knob.
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// Per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Emit each file as soon as its resource is parsed instead of after
	// the whole crawl.
	Stream bool `json:"stream" yaml:"stream"`

	// Keep the index-only minimal model when a detail fetch fails. The
	// default (false) pins the long-observed drop behavior.
	KeepMinimalOnError bool `json:"keep_minimal_on_error" yaml:"keep_minimal_on_error"`

	// Optional bbolt page cache path; empty disables caching.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// Verbose logging.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode.
	Debug bool `json:"debug" yaml:"debug"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		IndexURL:           DefaultIndexURL,
		DocsBase:           DefaultDocsBase,
		Concurrency:        8,
		BatchDelay:         500 * time.Millisecond,
		Timeout:            30 * time.Second,
		Stream:             false,
		KeepMinimalOnError: false,
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON), starting
// from the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	if c.IndexURL == "" {
		return fmt.Errorf("index URL is required")
	}

	if !strings.HasPrefix(c.IndexURL, "http://") && !strings.HasPrefix(c.IndexURL, "https://") {
		return fmt.Errorf("index URL must be an http(s) URL")
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	if c.BatchDelay < 0 {
		return fmt.Errorf("batch delay must not be negative")
	}

	return nil
}
