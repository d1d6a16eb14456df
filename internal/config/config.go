package config

// Config represents the full application configuration.
type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	HTTP          HTTPConfig          `yaml:"http"`
	Review        ReviewConfig        `yaml:"review"`
	Store         StoreConfig         `yaml:"store"`
	Dashboard     DashboardConfig     `yaml:"dashboard"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ProviderConfig configures the inference provider.
type ProviderConfig struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
}

// HTTPConfig holds HTTP client settings.
type HTTPConfig struct {
	Timeout string `yaml:"timeout"`
}

// ReviewConfig configures gating behavior.
type ReviewConfig struct {
	// Threshold is the minimum overall score a file must reach to pass.
	Threshold float64 `yaml:"threshold"`

	// Verbose expands failing reviews with per-category detail.
	Verbose bool `yaml:"verbose"`
}

// StoreConfig configures the review history store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DashboardConfig configures the local web dashboard.
type DashboardConfig struct {
	Addr string `yaml:"addr"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`         // debug, info, error
	Format        string `yaml:"format"`        // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"` // Redact API keys in logs
}

// HasAPIKey reports whether a non-empty credential is configured.
func (c Config) HasAPIKey() bool {
	return c.Provider.APIKey != ""
}
