package agentinvoke

import (
	"context"
	"io"
	"net/http"
	"time"

	"agentcore-tools/internal/common/logger"
)

// SessionHeader carries the per-invocation session identifier.
const SessionHeader = "X-Amzn-Bedrock-AgentCore-Runtime-Session-Id"

type Input struct {
	RuntimeARN string `json:"runtimeArn"`
	Token      string `json:"-"`
	Prompt     string `json:"prompt"`
	Topic      string `json:"topic,omitempty"`
	ActiveOnly bool   `json:"activeOnly,omitempty"`
}

// Request is the invocation body.
type Request struct {
	Prompt string         `json:"prompt"`
	Input  *RequestFilter `json:"input,omitempty"`
}

type RequestFilter struct {
	Topic      string `json:"topic,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
}

type Output struct {
	SessionID  string   `json:"sessionId"`
	Endpoint   string   `json:"endpoint"`
	StatusCode int      `json:"statusCode"`
	Response   Response `json:"-"`
	Body       []byte   `json:"-"`
}

// Doer sends one request under ctx. The cancel func releases the request
// deadline and must be called after the body is consumed.
type Doer interface {
	DoWithContext(ctx context.Context, req *http.Request) (*http.Response, context.CancelFunc, error)
}

type ServiceDependencies struct {
	Client Doer
	Logger logger.Logger
	Out    io.Writer
	Now    func() time.Time
}
