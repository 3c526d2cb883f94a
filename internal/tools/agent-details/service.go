package agentdetails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"agentcore-tools/internal/common/console"
	"agentcore-tools/internal/common/errors"
	"agentcore-tools/internal/common/logger"
)

const ToolName = "agent-details"

type Service struct {
	config  *Config
	fetcher MetadataFetcher
	logger  logger.Logger
	out     *console.Printer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		fetcher: deps.Fetcher,
		logger: deps.Logger.With(map[string]interface{}{
			"tool": ToolName,
		}),
		out: console.New(deps.Out),
	}
}

// RuntimeID returns the runtime identifier of a fully qualified runtime
// ARN: everything after the final '/'.
func RuntimeID(arn string) (string, error) {
	idx := strings.LastIndex(arn, "/")
	if idx < 0 {
		return "", errors.NewConfigInvalidError(
			fmt.Sprintf("agent runtime ARN %q has no '/' separated runtime id", arn),
			"Expected format: arn:aws:bedrock-agentcore:<region>:<account>:runtime/<runtime-id>",
		)
	}
	id := arn[idx+1:]
	if id == "" {
		return "", errors.NewConfigInvalidError(
			fmt.Sprintf("agent runtime ARN %q ends with '/'", arn),
			"Expected format: arn:aws:bedrock-agentcore:<region>:<account>:runtime/<runtime-id>",
		)
	}
	return id, nil
}

// Execute looks up the runtime, prints the report and returns the raw
// control-plane document.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	runtimeID, err := RuntimeID(input.RuntimeARN)
	if err != nil {
		return nil, err
	}

	s.out.Banner("Getting Agent Details")
	s.out.Blank()
	s.out.Line("Agent ARN: %s", input.RuntimeARN)
	s.out.Line("Agent Runtime ID: %s", runtimeID)
	s.out.Line("Region: %s", s.config.Region)
	s.out.Blank()

	s.logger.Debug("Looking up agent runtime", map[string]interface{}{
		"runtimeId": runtimeID,
		"region":    s.config.Region,
	})

	raw, err := s.fetcher.GetAgentRuntime(ctx, runtimeID)
	if err != nil {
		s.out.Blank()
		s.out.Failure("Error getting agent details: %v", err)
		if httpErr, ok := errors.AsHTTPError(err); ok && httpErr.Body != "" {
			s.out.Line("Response: %s", httpErr.Body)
		}
		s.logger.Error("Agent runtime lookup failed", map[string]interface{}{
			"runtimeId": runtimeID,
			"error":     err.Error(),
		})
		return nil, errors.NewControlPlaneLookupFailedError(runtimeID, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, errors.NewControlPlaneLookupFailedError(runtimeID, err)
	}
	summary := Summarize(doc)

	s.out.Success("Agent Details Retrieved")
	s.out.Rule()

	s.out.Blank()
	s.out.Line("Full Response:")
	rendered, err := s.formatDocument(raw)
	if err != nil {
		return nil, err
	}
	s.out.Line("%s", rendered)

	s.printSummary(summary)

	s.logger.Info("Agent details retrieved", map[string]interface{}{
		"runtimeId": runtimeID,
		"status":    summary.Status,
	})

	return &Output{
		RuntimeID: runtimeID,
		Raw:       raw,
		Document:  doc,
		Summary:   summary,
	}, nil
}

// Summarize extracts the highlighted fields. Missing name, ARN and status
// read as "N/A"; the endpoint is looked up under endpointUrl, then invokeUrl.
func Summarize(doc map[string]interface{}) Summary {
	summary := Summary{
		Name:   stringOr(doc, KeyName, notAvailable),
		ARN:    stringOr(doc, KeyARN, notAvailable),
		Status: stringOr(doc, KeyStatus, notAvailable),
	}

	for _, key := range []string{KeyEndpointURL, KeyInvokeURL} {
		if v, ok := doc[key]; ok {
			summary.EndpointKey = key
			summary.Endpoint = toString(v)
			break
		}
	}

	if v, ok := doc[KeyNetworkConfig]; ok {
		summary.HasNetworkConfig = true
		summary.NetworkMode = notAvailable
		if nc, ok := v.(map[string]interface{}); ok {
			summary.NetworkMode = stringOr(nc, KeyNetworkMode, notAvailable)
		}
	}

	if v, ok := doc[KeyAuthorizer]; ok {
		summary.AuthConfigured = true
		if auth, ok := v.(map[string]interface{}); ok {
			if jwt, ok := auth[KeyCustomJWT]; ok {
				summary.CustomJWT = true
				summary.DiscoveryURL = notAvailable
				if jwtMap, ok := jwt.(map[string]interface{}); ok {
					summary.DiscoveryURL = stringOr(jwtMap, KeyDiscoveryURL, notAvailable)
				}
			}
		}
	}

	return summary
}

func (s *Service) printSummary(summary Summary) {
	s.out.Blank()
	s.out.Banner("Key Information:")
	s.out.Line("Name: %s", summary.Name)
	s.out.Line("ARN: %s", summary.ARN)
	s.out.Line("Status: %s", summary.Status)

	s.out.Blank()
	switch summary.EndpointKey {
	case KeyEndpointURL:
		s.out.Success("Invoke Endpoint: %s", summary.Endpoint)
	case KeyInvokeURL:
		s.out.Success("Invoke URL: %s", summary.Endpoint)
	default:
		s.out.Warning("No explicit endpoint URL in response")
		s.out.Line("    You may need to construct it manually or check AWS documentation")
	}

	if summary.HasNetworkConfig {
		s.out.Blank()
		s.out.Line("Network Mode: %s", summary.NetworkMode)
	}

	if summary.AuthConfigured {
		s.out.Blank()
		s.out.Line("Authentication: Configured")
		if summary.CustomJWT {
			s.out.Line("  Type: Custom JWT")
			s.out.Line("  Discovery URL: %s", summary.DiscoveryURL)
		}
	}
}

// decodeDocument keeps numbers as json.Number so they print as sent.
func decodeDocument(raw json.RawMessage) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return doc, nil
}

// formatDocument renders raw in the configured format, keeping the key
// order and number literals of the response.
func (s *Service) formatDocument(raw json.RawMessage) (string, error) {
	if s.config.OutputFormat == "yaml" {
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		clearStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimRight(buf.String(), " \t\r\n"), nil
}

// clearStyle drops the flow and quoting styles JSON input parses with,
// so the document is emitted as block YAML.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

func stringOr(m map[string]interface{}, key, fallback string) string {
	v, ok := m[key]
	if !ok {
		return fallback
	}
	return toString(v)
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		return fmt.Sprint(t)
	}
}
