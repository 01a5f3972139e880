package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Measure   MeasureConfig   `yaml:"measure"`
	Browser   BrowserConfig   `yaml:"browser"`
	Emulation EmulationConfig `yaml:"emulation"`
	Workers   WorkerConfig    `yaml:"workers"`
	IO        IOConfig        `yaml:"io"`
	Logging   LogConfig       `yaml:"logging"`
}

// MeasureConfig holds the per-URL measurement configuration
type MeasureConfig struct {
	Timeout        time.Duration `yaml:"timeout" envconfig:"MEASURE_TIMEOUT" default:"60s"`
	SettleWindow   time.Duration `yaml:"settle_window" envconfig:"MEASURE_SETTLE_WINDOW" default:"500ms"`
	CacheEnabled   bool          `yaml:"cache_enabled" envconfig:"MEASURE_CACHE_ENABLED" default:"true"`
	ScrollToBottom bool          `yaml:"scroll_to_bottom" envconfig:"MEASURE_SCROLL" default:"false"`
	KeepResources  bool          `yaml:"keep_resources" envconfig:"MEASURE_KEEP_RESOURCES" default:"false"`

	// DataReloadRatio, when set, is carried into every report instead of
	// being derived from the reload measurement.
	DataReloadRatio *float64 `yaml:"data_reload_ratio,omitempty" envconfig:"MEASURE_DATA_RELOAD_RATIO"`
}

// BrowserConfig holds the headless browser configuration
type BrowserConfig struct {
	Headless  bool   `yaml:"headless" envconfig:"BROWSER_HEADLESS" default:"true"`
	UserAgent string `yaml:"user_agent" envconfig:"BROWSER_USER_AGENT"`
}

// EmulationConfig selects optional device and network-condition presets
type EmulationConfig struct {
	Device  string `yaml:"device" envconfig:"EMULATION_DEVICE"`
	Network string `yaml:"network" envconfig:"EMULATION_NETWORK"`
}

// WorkerConfig holds the worker pool configuration
type WorkerConfig struct {
	Count     int           `yaml:"count" envconfig:"WORKERS" default:"3"`
	RateLimit time.Duration `yaml:"rate_limit" envconfig:"RATE_LIMIT" default:"1s"`
}

// IOConfig holds the input/output configuration
type IOConfig struct {
	InputFile    string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputFile   string `yaml:"output_file" envconfig:"OUTPUT_FILE" default:"report.json"`
	OutputFormat string `yaml:"output_format" envconfig:"OUTPUT_FORMAT" default:"json"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `yaml:"development" envconfig:"LOG_DEV" default:"false"`
}

// Load loads the configuration from a YAML file
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}

	config := CreateDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", filename, err)
	}

	if config.Browser.UserAgent == "" {
		config.Browser.UserAgent = DefaultUserAgent
	}

	return config, nil
}

// FromEnv loads the configuration from PAGEGAUGE_* environment variables,
// falling back to defaults for anything unset.
func FromEnv() (*AppConfig, error) {
	var config AppConfig
	if err := envconfig.Process("pagegauge", &config); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	if config.Browser.UserAgent == "" {
		config.Browser.UserAgent = DefaultUserAgent
	}
	return &config, nil
}

// CreateDefault creates a default configuration
func CreateDefault() *AppConfig {
	return &AppConfig{
		Measure: MeasureConfig{
			Timeout:        60 * time.Second,
			SettleWindow:   500 * time.Millisecond,
			CacheEnabled:   true,
			ScrollToBottom: false,
		},
		Browser: BrowserConfig{
			Headless:  true,
			UserAgent: DefaultUserAgent,
		},
		Workers: WorkerConfig{
			Count:     3,
			RateLimit: 1 * time.Second,
		},
		IO: IOConfig{
			OutputFile:   "report.json",
			OutputFormat: "json",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks preset names and basic bounds before a run starts.
func (c *AppConfig) Validate() error {
	if c.Workers.Count < 1 {
		return fmt.Errorf("config: workers count must be at least 1, got %d", c.Workers.Count)
	}
	if c.Workers.RateLimit <= 0 {
		return fmt.Errorf("config: workers rate limit must be positive, got %v", c.Workers.RateLimit)
	}
	if c.Emulation.Device != "" {
		if _, ok := DevicePresets[c.Emulation.Device]; !ok {
			return fmt.Errorf("config: unknown device preset %q", c.Emulation.Device)
		}
	}
	if c.Emulation.Network != "" {
		if _, ok := NetworkPresets[c.Emulation.Network]; !ok {
			return fmt.Errorf("config: unknown network preset %q", c.Emulation.Network)
		}
	}
	return nil
}
