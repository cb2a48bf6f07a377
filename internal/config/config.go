package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "LOTTALOGS_"
	serviceName = "lottalogs"
)

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Elasticsearch ElasticsearchConfig  `koanf:"elasticsearch" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	Compress           bool     `koanf:"compress"`
}

type ElasticsearchConfig struct {
	URL        string `koanf:"url" validate:"required,url"`
	Username   string `koanf:"username"`
	Password   string `koanf:"password"`
	MaxRetries int    `koanf:"max_retries" validate:"min=0,max=10"`
}

// DatabaseConfig is optional. When URL is empty the search history is off.
type DatabaseConfig struct {
	URL string `koanf:"url" validate:"omitempty,url"`
}

func (d DatabaseConfig) Enabled() bool { return d.URL != "" }

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "local",
		"server.port":                 "5150",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.compress":             true,
		"elasticsearch.url":           "http://localhost:9200",
		"elasticsearch.max_retries":   3,
		"observability.logging.level": "info",
	}
}

// envKey maps LOTTALOGS_SERVER__PORT to server.port.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

// listKeys are the config keys whose env values are comma separated lists.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envValue splits list keys on commas; every other value is kept verbatim so
// passwords and DSNs may contain commas.
func envValue(key, value string) (string, any) {
	k := envKey(key)
	if !listKeys[k] {
		return k, value
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return k, parts
}

// LoadConfig loads the configuration from defaults, an optional .env file and
// LOTTALOGS_ environment variables, then validates it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load()
}

func load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Observability is a pointer so a missing section can be told apart.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = serviceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return mainConfig, nil
}
