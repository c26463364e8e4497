package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	SessionsDir   string `mapstructure:"sessions_dir" yaml:"sessions_dir"`
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	DefaultSource string `mapstructure:"default_source" yaml:"default_source"`

	// Auto-refresh
	RefreshInterval string `mapstructure:"refresh_interval" yaml:"refresh_interval"`
	WatchDebounceMs int    `mapstructure:"watch_debounce_ms" yaml:"watch_debounce_ms"`

	// Export
	ExportDir    string `mapstructure:"export_dir" yaml:"export_dir"`
	ExportPrefix string `mapstructure:"export_prefix" yaml:"export_prefix"`
	ExportFormat string `mapstructure:"export_format" yaml:"export_format"`

	// Delimiter overrides detection: "," ";" or "tab". Empty means detect.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
}

var defaults = map[string]any{
	"data_dir":          "data",
	"default_source":    filepath.Join("data", "dados.csv"),
	"refresh_interval":  "5m",
	"watch_debounce_ms": 500,
	"export_dir":        "exports",
	"export_prefix":     "equipes_filtradas",
	"export_format":     "csv",
	"delimiter":         "",
	"log_level":         "info",
}

// Keys lists the settable configuration keys in sorted order.
func Keys() []string {
	keys := []string{"sessions_dir"}
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns ~/.fieldteam.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fieldteam"), nil
}

// Default returns the built-in configuration, used when no config can be loaded.
func Default() *Global {
	c := &Global{
		DataDir:         "data",
		DefaultSource:   filepath.Join("data", "dados.csv"),
		RefreshInterval: "5m",
		WatchDebounceMs: 500,
		ExportDir:       "exports",
		ExportPrefix:    "equipes_filtradas",
		ExportFormat:    "csv",
		LogLevel:        "info",
	}
	if dir, err := Dir(); err == nil {
		c.SessionsDir = filepath.Join(dir, "sessions")
	}
	return c
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fieldteam/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FIELDTEAM")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetDefault("sessions_dir", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve sessions_dir default: ~/.fieldteam/sessions
	if c.SessionsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.SessionsDir = filepath.Join(dir, "sessions")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values that would otherwise fail later.
func (c *Global) Validate() error {
	if _, err := c.Interval(); err != nil {
		return err
	}
	switch strings.ToLower(c.ExportFormat) {
	case "", "csv", "xlsx":
	default:
		return fmt.Errorf("invalid export_format %q (use csv|xlsx)", c.ExportFormat)
	}
	switch strings.ToLower(strings.TrimSpace(c.Delimiter)) {
	case "", ",", "comma", ";", "semicolon", "tab", `\t`, "\t":
	default:
		return fmt.Errorf("invalid delimiter %q (use , ; or tab)", c.Delimiter)
	}
	if c.WatchDebounceMs < 0 {
		return fmt.Errorf("watch_debounce_ms must be >= 0")
	}
	return nil
}

// Interval parses refresh_interval; empty means 5 minutes.
func (c *Global) Interval() (time.Duration, error) {
	if strings.TrimSpace(c.RefreshInterval) == "" {
		return 5 * time.Minute, nil
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh_interval %q: %w", c.RefreshInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("refresh_interval must be positive")
	}
	return d, nil
}

// Debounce returns the watch debounce window.
func (c *Global) Debounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// Set assigns one key from its string form and validates the result.
func (c *Global) Set(key, value string) error {
	switch key {
	case "sessions_dir":
		c.SessionsDir = value
	case "data_dir":
		c.DataDir = value
	case "default_source":
		c.DefaultSource = value
	case "refresh_interval":
		c.RefreshInterval = value
	case "watch_debounce_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("watch_debounce_ms must be an integer: %w", err)
		}
		c.WatchDebounceMs = n
	case "export_dir":
		c.ExportDir = value
	case "export_prefix":
		c.ExportPrefix = value
	case "export_format":
		c.ExportFormat = strings.ToLower(value)
	case "delimiter":
		c.Delimiter = value
	case "log_level":
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return c.Validate()
}
