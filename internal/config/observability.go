package config

import "fmt"

type ObservabilityConfig struct {
	ServiceName string         `koanf:"service_name" validate:"required"`
	Environment string         `koanf:"environment" validate:"required"`
	Logging     LoggingConfig  `koanf:"logging" validate:"required"`
	NewRelic    NewRelicConfig `koanf:"new_relic"`
}

type LoggingConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	// Format is "json" or "console"; empty picks console for local and
	// development environments and json elsewhere.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

type NewRelicConfig struct {
	LicenseKey              string `koanf:"license_key" validate:"omitempty,len=40"`
	AppLogForwardingEnabled bool   `koanf:"app_log_forwarding_enabled"`
}

func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: serviceName,
		Environment: "local",
		Logging:     LoggingConfig{Level: "info"},
	}
}

func (o *ObservabilityConfig) NewRelicEnabled() bool {
	return o.NewRelic.LicenseKey != ""
}

// LogFormat resolves the effective log output format.
func (o *ObservabilityConfig) LogFormat() string {
	if o.Logging.Format != "" {
		return o.Logging.Format
	}
	switch o.Environment {
	case "local", "development", "test":
		return "console"
	default:
		return "json"
	}
}

func (o *ObservabilityConfig) String() string {
	return fmt.Sprintf("%s/%s level=%s newrelic=%t", o.ServiceName, o.Environment, o.Logging.Level, o.NewRelicEnabled())
}
