// Package config reads console settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultRequestTimeout = 30 * time.Second

var ErrMissingBaseURL = errors.New("base URL is not configured")

// Service env keys, one per upstream service.
const (
	AccountsAPI    = "ACCOUNTS_API_URL"
	IngredientsAPI = "INGREDIENTS_API_URL"
	MerchandiseAPI = "MERCHANDISE_API_URL"
	MaterialsAPI   = "MATERIALS_API_URL"
	ProductsAPI    = "PRODUCTS_API_URL"
	TypesAPI       = "TYPE_API_URL"
	RecipesAPI     = "RECIPES_API_URL"
)

var services = []string{AccountsAPI, IngredientsAPI, MerchandiseAPI, MaterialsAPI, ProductsAPI, TypesAPI, RecipesAPI}

type Config struct {
	Services map[string]string

	ImageBaseURL      string
	DefaultImage      string
	AppHost           string
	TokenFile         string
	RequestTimeout    time.Duration
	LowStockThreshold float64
	LogLevel          string
	CORSOrigins       []string
}

// LoadEnv reads .env files without overriding variables already set in the process.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_HOST", "127.0.0.1:8080")
	v.SetDefault("TOKEN_FILE", defaultTokenFile())
	v.SetDefault("REQUEST_TIMEOUT", DefaultRequestTimeout.String())
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_PROFILE_IMAGE", "")
	v.SetDefault("IMAGE_API_URL", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	for _, key := range services {
		v.SetDefault(key, "")
	}

	timeout, err := time.ParseDuration(v.GetString("REQUEST_TIMEOUT"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", v.GetString("REQUEST_TIMEOUT"))
	}

	threshold := v.GetFloat64("LOW_STOCK_THRESHOLD")
	if threshold < 0 {
		return nil, fmt.Errorf("invalid LOW_STOCK_THRESHOLD %v", threshold)
	}

	cfg := &Config{
		Services:          make(map[string]string, len(services)),
		ImageBaseURL:      strings.TrimSuffix(v.GetString("IMAGE_API_URL"), "/"),
		DefaultImage:      v.GetString("DEFAULT_PROFILE_IMAGE"),
		AppHost:           v.GetString("APP_HOST"),
		TokenFile:         v.GetString("TOKEN_FILE"),
		RequestTimeout:    timeout,
		LowStockThreshold: threshold,
		LogLevel:          v.GetString("LOG_LEVEL"),
		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
	}
	for _, key := range services {
		cfg.Services[key] = strings.TrimSpace(v.GetString(key))
	}

	return cfg, nil
}

// BaseURL returns the URL of one upstream service. Services are only required once used.
func (c *Config) BaseURL(key string) (string, error) {
	url := c.Services[key]
	if url == "" {
		return "", fmt.Errorf("%s: %w", key, ErrMissingBaseURL)
	}
	return url, nil
}

// ServiceName turns a service key into a short label, e.g. RECIPES_API_URL into "recipes".
func ServiceName(key string) string {
	return strings.ToLower(strings.TrimSuffix(key, "_API_URL"))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".ims-session.json"
	}
	return filepath.Join(dir, "ims", "session.json")
}
