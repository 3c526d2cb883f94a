// internal/common/aws/controlplane.go
package aws

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"

	"agentcore-tools/internal/common/errors"
)

const (
	// SigningName is the SigV4 service name of the AgentCore control plane.
	SigningName = "bedrock-agentcore"

	controlPlaneHostFormat = "https://bedrock-agentcore-control.%s.amazonaws.com"
)

// sha256 of an empty payload
var emptyPayloadHash = func() string {
	sum := sha256.Sum256(nil)
	return hex.EncodeToString(sum[:])
}()

// ControlPlaneClient issues SigV4-signed REST calls against the AgentCore
// control plane and returns documents exactly as the service sent them.
type ControlPlaneClient struct {
	httpClient  *http.Client
	signer      *v4.Signer
	credentials awssdk.CredentialsProvider
	region      string
	endpoint    string
	now         func() time.Time
}

// NewControlPlaneClient resolves credentials through the default AWS chain
// (env, shared config, SSO, IMDS). endpoint may be empty.
func NewControlPlaneClient(ctx context.Context, region, endpoint string) (*ControlPlaneClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewControlPlaneClientFromConfig(cfg, endpoint), nil
}

func NewControlPlaneClientFromConfig(cfg awssdk.Config, endpoint string) *ControlPlaneClient {
	if endpoint == "" {
		endpoint = fmt.Sprintf(controlPlaneHostFormat, cfg.Region)
	}
	return &ControlPlaneClient{
		httpClient:  &http.Client{},
		signer:      v4.NewSigner(),
		credentials: cfg.Credentials,
		region:      cfg.Region,
		endpoint:    strings.TrimRight(endpoint, "/"),
		now:         time.Now,
	}
}

// Endpoint returns the base URL requests are sent to.
func (c *ControlPlaneClient) Endpoint() string {
	return c.endpoint
}

// GetAgentRuntime performs GetAgentRuntime for runtimeID and returns the
// response document byte for byte. The body must be a JSON object.
func (c *ControlPlaneClient) GetAgentRuntime(ctx context.Context, runtimeID string) (json.RawMessage, error) {
	if runtimeID == "" {
		return nil, fmt.Errorf("runtime id is empty")
	}

	reqURL := c.endpoint + "/runtimes/" + url.PathEscape(runtimeID) + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if err := c.sign(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return json.RawMessage(body), nil
}

func (c *ControlPlaneClient) sign(ctx context.Context, req *http.Request) error {
	if c.credentials == nil {
		return fmt.Errorf("no AWS credentials provider configured")
	}
	creds, err := c.credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("retrieve aws credentials: %w", err)
	}
	if err := c.signer.SignHTTP(ctx, creds, req, emptyPayloadHash, SigningName, c.region, c.now()); err != nil {
		return fmt.Errorf("sign request: %w", err)
	}
	return nil
}
