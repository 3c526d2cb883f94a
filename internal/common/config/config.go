// internal/common/config/config.go
package config

import "strings"

// Legacy sentinel values. Older copies of the tooling shipped these as
// compiled-in defaults, and they still show up in copied .env files.
const (
	PlaceholderARN   = "YOUR_AGENT_ARN_HERE"
	PlaceholderToken = "YOUR_JWT_TOKEN_HERE"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Invoke  InvokeConfig  `mapstructure:"invoke"`
	Details DetailsConfig `mapstructure:"details"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string `mapstructure:"-"`
}

// AgentConfig identifies the deployed runtime both commands talk to.
type AgentConfig struct {
	RuntimeARN string `mapstructure:"runtime_arn"`
	Region     string `mapstructure:"region"`
}

// InvokeConfig holds settings for the invoke command.
type InvokeConfig struct {
	Token            string `mapstructure:"token"`
	Prompt           string `mapstructure:"prompt"`
	Topic            string `mapstructure:"topic"`
	ActiveOnly       bool   `mapstructure:"active_only"`
	Timeout          int    `mapstructure:"timeout"` // milliseconds
	EndpointTemplate string `mapstructure:"endpoint_template"`
}

// DetailsConfig holds settings for the details command.
type DetailsConfig struct {
	Output string `mapstructure:"output"` // json | yaml
}

type AWSConfig struct {
	// ControlPlaneEndpoint overrides the regional control-plane host,
	// e.g. for VPC endpoints.
	ControlPlaneEndpoint string `mapstructure:"control_plane_endpoint"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// IsUnset reports whether a configured value is missing. Blank values and
// the legacy sentinel both count as unset.
func IsUnset(value, sentinel string) bool {
	v := strings.TrimSpace(value)
	return v == "" || (sentinel != "" && v == sentinel)
}
