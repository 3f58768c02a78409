// Package config loads sheet-probe settings from defaults, an optional
// config file, SHEETPROBE_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Format selects the report renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatTOON     Format = "toon"
	FormatJSON     Format = "json"
)

const envPrefix = "SHEETPROBE"

// Keys shared by flags, env vars and config files.
const (
	KeyRowLimit   = "row-limit"
	KeyEntryLimit = "entry-limit"
	KeyFormat     = "format"
	KeyCharset    = "charset"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyConfig     = "config"
)

// Config holds the runtime settings of one invocation.
type Config struct {
	RowLimit   int
	EntryLimit int
	Format     Format
	Charset    string
	LogLevel   string
	LogFormat  string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		RowLimit:   10,
		EntryLimit: 20,
		Format:     FormatMarkdown,
		Charset:    "utf-8",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.IntP(KeyRowLimit, "n", d.RowLimit, "Rows to preview per sheet")
	fs.Int(KeyEntryLimit, d.EntryLimit, "Archive entries to list")
	fs.StringP(KeyFormat, "f", string(d.Format), "Report format: markdown|toon|json")
	fs.String(KeyCharset, d.Charset, "Charset for legacy .xls strings")
	fs.String(KeyLogLevel, d.LogLevel, "Log level: debug|info|warn|error")
	fs.String(KeyLogFormat, d.LogFormat, "Log format: text|json")
	fs.StringP(KeyConfig, "c", "", "Optional config file (yaml, json or toml)")
}

// New returns a viper instance with defaults, env binding and fs bound.
func New(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyRowLimit, d.RowLimit)
	v.SetDefault(KeyEntryLimit, d.EntryLimit)
	v.SetDefault(KeyFormat, string(d.Format))
	v.SetDefault(KeyCharset, d.Charset)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	return v, nil
}

// Load reads the optional config file named by KeyConfig and returns the
// validated settings.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		RowLimit:   v.GetInt(KeyRowLimit),
		EntryLimit: v.GetInt(KeyEntryLimit),
		Format:     Format(strings.ToLower(v.GetString(KeyFormat))),
		Charset:    v.GetString(KeyCharset),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	var errs []error
	if c.RowLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyRowLimit, c.RowLimit))
	}
	if c.EntryLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyEntryLimit, c.EntryLimit))
	}
	switch c.Format {
	case FormatMarkdown, FormatTOON, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%s must be markdown, toon or json, got %q", KeyFormat, c.Format))
	}
	if strings.TrimSpace(c.Charset) == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyCharset))
	}
	return errors.Join(errs...)
}
