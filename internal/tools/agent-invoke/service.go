package agentinvoke

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"agentcore-tools/internal/common/console"
	"agentcore-tools/internal/common/errors"
	"agentcore-tools/internal/common/logger"
)

const ToolName = "agent-invoke"

var troubleshooting = []string{
	"1. Verify your JWT token is valid (not expired)",
	"2. Ensure the token is from the correct Cognito User Pool",
	"3. Check that the agent ARN is correct",
	"4. Verify the token's client_id matches the allowed clients in agent config",
}

type Service struct {
	config *Config
	client Doer
	logger logger.Logger
	out    *console.Printer
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		config: config,
		client: deps.Client,
		logger: deps.Logger.With(map[string]interface{}{
			"tool": ToolName,
		}),
		out: console.New(deps.Out),
		now: now,
	}
}

// Execute sends one invocation and prints the decoded answer. It never
// retries; every failure is printed and returned.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.RuntimeARN) == "" {
		return nil, errors.NewConfigInvalidError("agent runtime ARN is required", "")
	}
	if strings.TrimSpace(input.Token) == "" {
		return nil, errors.NewConfigInvalidError("bearer token is required", "")
	}

	sessionID := NewSessionID(s.now())
	endpoint := EndpointURL(s.config.EndpointTemplate, s.config.Region, input.RuntimeARN)

	s.printHeader(input, sessionID, endpoint)

	payload := BuildRequest(input)
	if err := ValidateRequest(payload); err != nil {
		s.out.Blank()
		s.out.Failure("Error: %v", err)
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewRequestValidationFailedError(err.Error())
	}

	s.out.Blank()
	s.out.ThinRule()
	s.out.Line("Sending HTTPS POST request...")
	s.out.ThinRule()
	s.out.Blank()

	log := s.logger.With(map[string]interface{}{
		"sessionId": sessionID,
	})
	log.Debug("Sending invocation", map[string]interface{}{
		"endpoint":   endpoint,
		"hasFilters": payload.Input != nil,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		s.out.Failure("Request Error: %v", err)
		return nil, errors.NewInvocationRequestFailedError(err)
	}
	req.Header.Set("Authorization", "Bearer "+input.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SessionHeader, sessionID)

	start := s.now()
	resp, cancel, err := s.client.DoWithContext(ctx, req)
	if err != nil {
		s.out.Blank()
		s.out.Failure("Request Error: %v", err)
		log.Error("Invocation request failed", map[string]interface{}{
			"error": err.Error(),
		})
		if isTimeout(err) {
			return nil, errors.NewInvocationTimeoutError(s.config.Timeout, err)
		}
		return nil, errors.NewInvocationRequestFailedError(err)
	}
	defer cancel()
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.out.Blank()
		s.out.Failure("Request Error: %v", err)
		if isTimeout(err) {
			return nil, errors.NewInvocationTimeoutError(s.config.Timeout, err)
		}
		return nil, errors.NewInvocationRequestFailedError(err)
	}

	log.Info("Invocation answered", map[string]interface{}{
		"statusCode": resp.StatusCode,
		"durationMs": s.now().Sub(start).Milliseconds(),
		"bytes":      len(respBody),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &errors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
		s.printHTTPError(httpErr)
		return nil, errors.NewInvocationHTTPError(httpErr)
	}

	parsed, err := ParseResponse(respBody)
	if err != nil {
		s.out.Blank()
		s.out.Failure("Error: %v", err)
		return nil, err
	}

	s.out.Success("Agent Response Received")
	s.out.Line("Status Code: %d", resp.StatusCode)
	s.out.Rule()

	render(s.out, parsed)

	s.out.Blank()
	s.out.Rule()
	s.out.Success("Test completed successfully!")
	s.out.Rule()

	return &Output{
		SessionID:  sessionID,
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Response:   parsed,
		Body:       respBody,
	}, nil
}

func (s *Service) printHeader(input *Input, sessionID, endpoint string) {
	s.out.Banner("Testing AgentCore Agent Invocation with JWT Auth (HTTPS)")
	s.out.Blank()
	s.out.Line("Agent ARN: %s", input.RuntimeARN)
	s.out.Line("Region: %s", s.config.Region)
	s.out.Line("Prompt: %s", input.Prompt)
	if input.Topic != "" {
		s.out.Line("Topic Filter: %s", input.Topic)
	}
	if input.ActiveOnly {
		s.out.Line("Active Only: true")
	}
	s.out.Blank()
	s.out.Line("JWT Token: %s", TokenPreview(input.Token))
	s.out.Line("Session ID: %s (length: %d)", sessionID, len(sessionID))
	s.out.Blank()
	s.out.Line("Endpoint: %s", endpoint)
}

func (s *Service) printHTTPError(httpErr *errors.HTTPError) {
	s.out.Blank()
	s.out.Failure("HTTP Error: %s", httpErr.Status)
	s.out.Line("Status Code: %d", httpErr.StatusCode)
	s.out.Line("Response: %s", httpErr.Body)
	s.out.Blank()
	s.out.Line("Troubleshooting:")
	for _, hint := range troubleshooting {
		s.out.Line("%s", hint)
	}
}

// TokenPreview shows the first 50 characters of token followed by "...",
// or the whole token when it is shorter.
func TokenPreview(token string) string {
	runes := []rune(token)
	if len(runes) <= tokenPreviewLength {
		return token
	}
	return string(runes[:tokenPreviewLength]) + "..."
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
