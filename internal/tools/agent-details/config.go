package agentdetails

import "fmt"

type Config struct {
	Region       string
	OutputFormat string // json | yaml
}

func DefaultConfig() *Config {
	return &Config{
		Region:       "eu-central-1",
		OutputFormat: "json",
	}
}

func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	switch c.OutputFormat {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("output format must be json or yaml, got %q", c.OutputFormat)
	}
}
