package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyBankAPIURL     = "bank_api_url"
	KeyMusicAPIURL    = "music_api_url"
	KeyRequestTimeout = "request_timeout"
	KeyLogLevel       = "log_level"
	KeyWorkers        = "workers"
)

type Config struct {
	BankAPIURL     string
	MusicAPIURL    string
	RequestTimeout time.Duration
	LogLevel       string
	Workers        int
}

// ProcessEnvironmentVariables reads the console configuration from the environment
// (BANK_API_URL, MUSIC_API_URL, REQUEST_TIMEOUT, LOG_LEVEL, WORKERS) and an optional
// service-console.yaml in the working directory or ./config.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load(viper.New())
}

// Load fills v with defaults and env bindings before decoding it. Callers may bind CLI
// flags to v beforehand; flags win over env, env wins over the config file.
func Load(v *viper.Viper) (*Config, error) {
	// In all cases the default behavior should be for the local backends
	v.SetDefault(KeyBankAPIURL, "http://localhost:8001")
	v.SetDefault(KeyMusicAPIURL, "http://localhost:8000")
	v.SetDefault(KeyRequestTimeout, "10s")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyWorkers, 4)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("service-console")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	env := Config{
		BankAPIURL:     strings.TrimRight(v.GetString(KeyBankAPIURL), "/"),
		MusicAPIURL:    strings.TrimRight(v.GetString(KeyMusicAPIURL), "/"),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		LogLevel:       v.GetString(KeyLogLevel),
		Workers:        v.GetInt(KeyWorkers),
	}

	if err := env.validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

func (c *Config) validate() error {
	for name, raw := range map[string]string{KeyBankAPIURL: c.BankAPIURL, KeyMusicAPIURL: c.MusicAPIURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: %s must be an absolute URL, got %q", name, raw)
		}
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: %s must be positive", KeyRequestTimeout)
	}

	if c.Workers < 1 {
		c.Workers = 1
	}

	return nil
}
