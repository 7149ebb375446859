// config - источник загрузки конфигурации сайта.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	CMS       CMSConfig       `yaml:"cms"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
	Home      HomeConfig      `yaml:"home"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Site      SiteConfig      `yaml:"site"`
}

// HTTPConfig — публичный сервер сайта.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host"   env:"METRICS_HOST"   env-default:"0.0.0.0"`
	Port string `yaml:"port"   env:"METRICS_PORT"   env-default:"9090"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// CMSConfig — источник контента.
// Timeout == 0 — клиент сам таймаут не ставит (ограничивает только таймаут запроса сервера).
type CMSConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"CMS_API_URL"    env-default:"http://localhost:3000/api"`
	Timeout   time.Duration `yaml:"timeout"    env:"CMS_TIMEOUT"    env-default:"0s"`
	UserAgent string        `yaml:"user_agent" env:"CMS_USER_AGENT" env-default:"covspace-site"`
}

// TimeoutConfig — таймауты сервера.
type TimeoutConfig struct {
	Request  time.Duration `yaml:"request"  env:"REQUEST_TIMEOUT"  env-default:"15s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// HomeConfig — главная страница.
type HomeConfig struct {
	BlogTeaserLimit int           `yaml:"blog_teaser_limit" env:"HOME_BLOG_TEASER_LIMIT" env-default:"8"`
	RenderWait      time.Duration `yaml:"render_wait"       env:"HOME_RENDER_WAIT"       env-default:"3s"`
}

// RateLimitConfig — token bucket на клиентский IP. RPS <= 0 — лимит выключен.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"20"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

// SiteConfig — статические параметры разметки.
type SiteConfig struct {
	QuoteURL string `yaml:"quote_url" env:"SITE_QUOTE_URL" env-default:"/#quote"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	done := func() (*Config, error) {
		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	read := func(p string) (*Config, error) {
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return done()
	}

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		return read(p)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return read("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return done()
}

func (c *Config) validate() error {
	switch {
	case c.CMS.BaseURL == "":
		return fmt.Errorf("invalid config: cms.base_url is empty")
	case c.CMS.Timeout < 0:
		return fmt.Errorf("invalid config: cms.timeout must be >= 0")
	case c.Home.BlogTeaserLimit < 0:
		return fmt.Errorf("invalid config: home.blog_teaser_limit must be >= 0")
	case c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0:
		return fmt.Errorf("invalid config: rate_limit.burst must be > 0 when rps is set")
	}

	return nil
}
