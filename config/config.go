// Package config loads the note generator settings from YAML with environment overrides.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"gopkg.in/yaml.v2"
)

var newError = commons.NewTaggedError("Config")

type (
	// KRX is the price data source.
	KRX struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	}

	// KIND is the listing source used for display names.
	KIND struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Disabled       bool   `yaml:"disabled"`
	}

	// Selection overrides the predicates of the note sections.
	Selection struct {
		UpperLimit string `yaml:"upper_limit"`
		HighVolume string `yaml:"high_volume"`
	}

	// GCS mirrors written notes when Bucket is set.
	GCS struct {
		Bucket          string `yaml:"bucket"`
		Prefix          string `yaml:"prefix"`
		CredentialsFile string `yaml:"credentials_file"`
	}

	// Telegram pushes a summary of every written note when Token is set.
	Telegram struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
		ChatID  int64  `yaml:"chat_id"`
	}

	// Log configures Stackdriver logging. Empty Project logs to stdout.
	Log struct {
		Project string `yaml:"project"`
		Name    string `yaml:"name"`
	}

	// Config is the whole configuration.
	Config struct {
		OutputDir    string    `yaml:"output_dir"`
		CutoffHour   int       `yaml:"cutoff_hour"`
		SkipHolidays bool      `yaml:"skip_holidays"`
		Holidays     []string  `yaml:"holidays"`
		KRX          KRX       `yaml:"krx"`
		KIND         KIND      `yaml:"kind"`
		Selection    Selection `yaml:"selection"`
		GCS          GCS       `yaml:"gcs"`
		Telegram     Telegram  `yaml:"telegram"`
		Log          Log       `yaml:"log"`
	}
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		CutoffHour:   9,
		SkipHolidays: true,
		KRX:          KRX{TimeoutSeconds: 30},
		KIND:         KIND{TimeoutSeconds: 30},
	}
}

// Load reads path over the defaults, then applies the environment.
// Empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	cfg.OutputDir = getEnv("OUTPUT_PATH", cfg.OutputDir)
	cfg.GCS.Bucket = getEnv("NOTE_BUCKET", cfg.GCS.Bucket)
	cfg.Log.Project = getEnv("GCP_PROJECT", cfg.Log.Project)
	cfg.Log.Name = getEnv("LOG_NAME", cfg.Log.Name)
	cfg.Telegram.Token = getEnv("TELEGRAM_TOKEN", cfg.Telegram.Token)
	if v := getEnv("TELEGRAM_CHAT_ID", ""); v != "" {
		chatID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return newError(fmt.Sprintf("TELEGRAM_CHAT_ID %q is not a number", v))
		}
		cfg.Telegram.ChatID = chatID
	}
	if v := getEnv("CUTOFF_HOUR", ""); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil {
			return newError(fmt.Sprintf("CUTOFF_HOUR %q is not a number", v))
		}
		cfg.CutoffHour = hour
	}
	return nil
}

// Validate fails when the output directory is missing or the numbers are off.
func (cfg *Config) Validate() error {
	if cfg.OutputDir == "" {
		return newError("output directory is not configured, set OUTPUT_PATH or output_dir")
	}
	info, err := os.Stat(cfg.OutputDir)
	if err != nil {
		return newError(fmt.Sprintf("output directory %s: %s", cfg.OutputDir, err.Error()))
	}
	if !info.IsDir() {
		return newError(fmt.Sprintf("output directory %s is not a directory", cfg.OutputDir))
	}
	if cfg.CutoffHour < 0 || cfg.CutoffHour > 23 {
		return newError(fmt.Sprintf("cutoff hour %d is out of 0-23", cfg.CutoffHour))
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID == 0 {
		return newError("telegram token is set without a chat id")
	}
	if cfg.KRX.TimeoutSeconds <= 0 || cfg.KIND.TimeoutSeconds <= 0 {
		return newError("timeouts must be positive")
	}
	return nil
}

// KRXTimeout is the KRX request timeout.
func (cfg *Config) KRXTimeout() time.Duration {
	return time.Duration(cfg.KRX.TimeoutSeconds) * time.Second
}

// KINDTimeout is the KIND request timeout.
func (cfg *Config) KINDTimeout() time.Duration {
	return time.Duration(cfg.KIND.TimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
