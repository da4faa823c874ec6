package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Custom Search API credentials.
type GoogleConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	EngineID string `yaml:"engine_id" mapstructure:"engine_id"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds the optional fallback-resolver settings. An empty
// key disables the resolver entirely.
type AnthropicConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	Model        string `yaml:"model" mapstructure:"model"`
	MaxBatchSize int    `yaml:"max_batch_size" mapstructure:"max_batch_size"`
}

// SearchConfig configures the harvest query and pagination.
type SearchConfig struct {
	Query    string `yaml:"query" mapstructure:"query"`
	PageSize int    `yaml:"page_size" mapstructure:"page_size"`
}

// ScrapeConfig configures target-page fetching.
type ScrapeConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	CacheTTLHours  int     `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// OutputConfig configures where run artifacts are written.
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	RecordsFile  string `yaml:"records_file" mapstructure:"records_file"`
	WorkbookFile string `yaml:"workbook_file" mapstructure:"workbook_file"`
	StateFile    string `yaml:"state_file" mapstructure:"state_file"`
	CacheFile    string `yaml:"cache_file" mapstructure:"cache_file"`
}

// RecordsPath returns the full path of the records file.
func (o OutputConfig) RecordsPath() string { return filepath.Join(o.Dir, o.RecordsFile) }

// WorkbookPath returns the full path of the XLSX snapshot.
func (o OutputConfig) WorkbookPath() string { return filepath.Join(o.Dir, o.WorkbookFile) }

// StatePath returns the full path of the run-state checkpoint.
func (o OutputConfig) StatePath() string { return filepath.Join(o.Dir, o.StateFile) }

// CachePath returns the full path of the page-cache database.
func (o OutputConfig) CachePath() string { return filepath.Join(o.Dir, o.CacheFile) }

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DIRECTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credentials default empty so AutomaticEnv can fill them.
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.engine_id", "")
	v.SetDefault("google.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_batch_size", 3)
	v.SetDefault("search.query", `site:.lk "restaurant" ("contact us" OR "contact" OR "email" OR "phone" OR "address")`)
	v.SetDefault("search.page_size", 10)
	v.SetDefault("scrape.timeout_secs", 10)
	v.SetDefault("scrape.requests_per_sec", 1)
	v.SetDefault("scrape.cache_ttl_hours", 24)
	v.SetDefault("output.dir", "exported_data")
	v.SetDefault("output.records_file", "restaurant_details.json")
	v.SetDefault("output.workbook_file", "restaurant_emails.xlsx")
	v.SetDefault("output.state_file", "scraping_state.json")
	v.SetDefault("output.cache_file", "page_cache.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the fields a command scope depends on are present.
// Missing search credentials abort before any network call.
func (c *Config) Validate(scope string) error {
	var missing []string

	switch scope {
	case "harvest":
		if c.Google.APIKey == "" {
			missing = append(missing, "google.api_key is required")
		}
		if c.Google.EngineID == "" {
			missing = append(missing, "google.engine_id is required")
		}
		if len(c.Search.Query) < 3 {
			missing = append(missing, "search.query must be at least 3 characters")
		}
		if c.Search.PageSize < 1 || c.Search.PageSize > 10 {
			missing = append(missing, "search.page_size must be in [1,10]")
		}
	case "enrich", "clean", "export", "status":
		// These passes work off local files; the Anthropic key stays
		// optional even for enrich.
	default:
		return eris.Errorf("config: unknown scope %q", scope)
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
