package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/statement-transactions/internal/parser"
)

// EnvPrefix prefixes every environment override, e.g. STMT_OUTPUT.
const EnvPrefix = "STMT"

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	Output          string   `yaml:"output" mapstructure:"output"`
	Extension       string   `yaml:"extension" mapstructure:"extension"`
	LegalMarker     string   `yaml:"legal_marker" mapstructure:"legal_marker"`
	ExcludePatterns []string `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`
	LogLevel        string   `yaml:"log_level" mapstructure:"log_level"`
	Addr            string   `yaml:"addr" mapstructure:"addr"`
	Header          bool     `yaml:"header" mapstructure:"header"`
}

// Default returns the built-in settings.
func Default() *Config {
	opts := parser.DefaultOptions()
	return &Config{
		Output:          "transactions.csv",
		Extension:       ".pdf",
		LegalMarker:     opts.LegalMarker,
		ExcludePatterns: opts.ExcludePatterns,
		LogLevel:        "info",
		Addr:            ":8080",
	}
}

// ParserOptions maps the config onto parser options.
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		LegalMarker:     c.LegalMarker,
		ExcludePatterns: c.ExcludePatterns,
	}
}

// Build layers defaults, a .env file in the working directory, an optional
// YAML file, STMT_* environment variables and finally flags that were set
// explicitly.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	def := Default()
	v.SetDefault("output", def.Output)
	v.SetDefault("extension", def.Extension)
	v.SetDefault("legal_marker", def.LegalMarker)
	v.SetDefault("exclude_patterns", def.ExcludePatterns)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("addr", def.Addr)
	v.SetDefault("header", def.Header)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				v.Set(key, sv.GetSlice())
				return
			}
			v.Set(key, f.Value.String())
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Extension != "" && !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
