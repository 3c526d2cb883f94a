package agentinvoke

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultEndpointTemplate = "https://bedrock-agentcore.%s.amazonaws.com/runtimes/%s/invocations?qualifier=DEFAULT"
	DefaultTimeout          = 300 * time.Second

	// tokenPreviewLength is how much of the bearer token is echoed.
	tokenPreviewLength = 50
)

type Config struct {
	Region string
	// EndpointTemplate takes the region and the escaped runtime ARN, in
	// that order.
	EndpointTemplate string
	Timeout          time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Region:           "eu-central-1",
		EndpointTemplate: DefaultEndpointTemplate,
		Timeout:          DefaultTimeout,
	}
}

func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if strings.Count(c.EndpointTemplate, "%s") != 2 {
		return fmt.Errorf("endpoint template must contain two %%s verbs, got %q", c.EndpointTemplate)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
