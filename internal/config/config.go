// Package config содержит логику чтения конфигурации шлюза.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress = "localhost:3000"
	defaultAPIBaseURL = "http://localhost:8080"

	// EnvDevelopment включает development-логгер и предупреждения о мок-данных.
	EnvDevelopment = "development"

	mapSDKBase = "//dapi.kakao.com/v2/maps/sdk.js"
)

// ErrMapKeyMissing возвращается, если не задан ключ приложения карты.
var ErrMapKeyMissing = errors.New("MAP_APP_KEY is not set")

// Config содержит параметры конфигурации шлюза.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	APIBaseURL      string        `env:"API_BASE_URL"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	MapAppKey       string        `env:"MAP_APP_KEY"`
	AppEnv          string        `env:"APP_ENV"`
	DeviceSecret    string        `env:"DEVICE_SECRET"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	RequestRetryMax int           `env:"REQUEST_RETRY_MAX" envDefault:"0"`
}

// Parse считывает конфигурацию из .env, флагов командной строки и переменных
// окружения. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIBaseURL := cfg.APIBaseURL
	envDatabaseURI := cfg.DatabaseURI
	envMapAppKey := cfg.MapAppKey
	envAppEnv := cfg.AppEnv

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.APIBaseURL, "b", defaultAPIBaseURL, "backend API base URL")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.MapAppKey, "k", "", "map SDK application key")
	flag.StringVar(&cfg.AppEnv, "e", "", "application environment")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIBaseURL != "" {
		cfg.APIBaseURL = envAPIBaseURL
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envMapAppKey != "" {
		cfg.MapAppKey = envMapAppKey
	}
	if envAppEnv != "" {
		cfg.AppEnv = envAppEnv
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RequestRetryMax < 0 {
		cfg.RequestRetryMax = 0
	}

	return cfg, nil
}

// IsDevelopment сообщает, запущен ли шлюз в режиме разработки.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), EnvDevelopment)
}

// MapSDKURL возвращает адрес загрузки SDK карты.
func (c *Config) MapSDKURL() (string, error) {
	key := strings.TrimSpace(c.MapAppKey)
	if key == "" {
		return "", ErrMapKeyMissing
	}

	q := url.Values{}
	q.Set("appkey", key)
	q.Set("autoload", "false")
	q.Set("libraries", "services")
	return mapSDKBase + "?" + q.Encode(), nil
}
