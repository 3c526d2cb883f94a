// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"agentcore-tools/internal/common/errors"
)

// EnvPrefix namespaces every environment override, e.g.
// AGENTCORE_AGENT_RUNTIME_ARN for agent.runtime_arn.
const EnvPrefix = "AGENTCORE"

const (
	DefaultRegion           = "eu-central-1"
	DefaultInvokeTimeout    = 300000 // milliseconds
	DefaultEndpointTemplate = "https://bedrock-agentcore.%s.amazonaws.com/runtimes/%s/invocations?qualifier=DEFAULT"
)

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, agentcore.yaml is
	// searched in ./configs and the working directory.
	ConfigFile string
	// SkipDotEnv disables .env discovery.
	SkipDotEnv bool
}

// NewViper returns a viper instance with env overrides and every key
// registered, so that AutomaticEnv sees keys absent from config files.
func NewViper() *viper.Viper {
	v := viper.New()
	// No SetConfigType: the type comes from the extension, so an
	// extensionless file such as the built binary is never read as config.
	v.SetConfigName("agentcore")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"agent.runtime_arn", "agent.region",
		"invoke.token", "invoke.prompt", "invoke.topic", "invoke.endpoint_template",
		"details.output",
		"aws.control_plane_endpoint",
		"logging.level", "logging.format",
		"metrics.pushgateway_url", "metrics.job",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("invoke.active_only", false)
	v.SetDefault("invoke.timeout", 0)

	return v
}

func Load(v *viper.Viper, opts Options) (*Config, error) {
	var envFile string
	if !opts.SkipDotEnv {
		envFile = loadEnvFile()
	}

	// 1. base config
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}

		// 2. environment-specific overlay
		env := os.Getenv("APP_ENVIRONMENT")
		if env == "" {
			env = "development"
		}
		v.SetConfigName(fmt.Sprintf("agentcore.%s", env))
		_ = v.MergeInConfig() // ignore error if not found
	}

	// 3. ${VAR} placeholders inside config files
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.App.EnvFile = envFile

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// loadEnvFile loads the first .env found in the working directory, its
// parents, or the module root. It returns the loaded path or "".
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig falls back to the unprefixed variable names used by
// the deployment scripts and the AWS CLI.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Agent.RuntimeARN == "" {
		if val := os.Getenv("AGENT_RUNTIME_ARN"); val != "" {
			cfg.Agent.RuntimeARN = val
		}
	}
	if cfg.Agent.Region == "" {
		for _, name := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
			if val := os.Getenv(name); val != "" {
				cfg.Agent.Region = val
				break
			}
		}
	}
	if cfg.Invoke.Token == "" {
		if val := os.Getenv("JWT_TOKEN"); val != "" {
			cfg.Invoke.Token = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "agentcore"
	}
	if cfg.Agent.Region == "" {
		cfg.Agent.Region = DefaultRegion
	}
	if cfg.Invoke.Timeout == 0 {
		cfg.Invoke.Timeout = DefaultInvokeTimeout
	}
	if cfg.Invoke.EndpointTemplate == "" {
		cfg.Invoke.EndpointTemplate = DefaultEndpointTemplate
	}
	if cfg.Details.Output == "" {
		cfg.Details.Output = "json"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = "agentcore_tools"
	}
}

// ValidateForDetails checks what the details command needs before any
// network call is made.
func (c *Config) ValidateForDetails() error {
	if err := c.validateAgent(); err != nil {
		return err
	}
	switch c.Details.Output {
	case "json", "yaml":
	default:
		return errors.NewConfigInvalidError(
			fmt.Sprintf("unsupported output format %q", c.Details.Output),
			"Use --output json or --output yaml.",
		)
	}
	return nil
}

// ValidateForInvoke checks what the invoke command needs before any
// network call is made.
func (c *Config) ValidateForInvoke() error {
	if err := c.validateAgent(); err != nil {
		return err
	}
	if IsUnset(c.Invoke.Token, PlaceholderToken) {
		return errors.NewConfigInvalidError(
			"Please provide a JWT token (--token or AGENTCORE_INVOKE_TOKEN)",
			strings.Join([]string{
				"How to get a JWT token:",
				"1. Log in through your Amplify frontend",
				"2. Extract the idToken from the authentication response",
				"3. Or use AWS CLI: aws cognito-idp admin-initiate-auth ...",
			}, "\n"),
		)
	}
	if strings.TrimSpace(c.Invoke.Prompt) == "" {
		return errors.NewConfigInvalidError(
			"Please provide a prompt (--prompt or AGENTCORE_INVOKE_PROMPT)",
			"The prompt is sent as-is in the request body.",
		)
	}
	if c.Invoke.Timeout < 0 {
		return errors.NewConfigInvalidError("invoke.timeout must be positive", "")
	}
	return nil
}

func (c *Config) validateAgent() error {
	if IsUnset(c.Agent.RuntimeARN, PlaceholderARN) {
		return errors.NewConfigInvalidError(
			"Please provide the agent runtime ARN (--arn or AGENTCORE_AGENT_RUNTIME_ARN)",
			strings.Join([]string{
				"Run this to get your agent ARN:",
				"  aws bedrock-agentcore-control list-agent-runtimes --region " + c.Agent.Region,
			}, "\n"),
		)
	}
	if strings.TrimSpace(c.Agent.Region) == "" {
		return errors.NewConfigInvalidError("agent.region is required", "")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
