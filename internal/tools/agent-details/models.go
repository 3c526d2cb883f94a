package agentdetails

import (
	"context"
	"encoding/json"
	"io"

	"agentcore-tools/internal/common/logger"
)

// Control-plane document keys.
const (
	KeyName          = "agentRuntimeName"
	KeyARN           = "agentRuntimeArn"
	KeyStatus        = "status"
	KeyEndpointURL   = "endpointUrl"
	KeyInvokeURL     = "invokeUrl"
	KeyNetworkConfig = "networkConfiguration"
	KeyNetworkMode   = "networkMode"
	KeyAuthorizer    = "authorizerConfiguration"
	KeyCustomJWT     = "customJWTAuthorizer"
	KeyDiscoveryURL  = "discoveryUrl"
)

const notAvailable = "N/A"

// MetadataFetcher looks up the control-plane document of one runtime and
// returns it as received.
type MetadataFetcher interface {
	GetAgentRuntime(ctx context.Context, runtimeID string) (json.RawMessage, error)
}

type Input struct {
	RuntimeARN string `json:"runtimeArn"`
}

type Output struct {
	RuntimeID string                 `json:"runtimeId"`
	Raw       json.RawMessage        `json:"raw"`
	Document  map[string]interface{} `json:"document"`
	Summary   Summary                `json:"summary"`
}

// Summary is the subset of the document the report highlights.
type Summary struct {
	Name   string `json:"name"`
	ARN    string `json:"arn"`
	Status string `json:"status"`

	// EndpointKey is the document key the endpoint was found under, or ""
	// when the document carries no endpoint.
	EndpointKey string `json:"endpointKey,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`

	HasNetworkConfig bool   `json:"hasNetworkConfig"`
	NetworkMode      string `json:"networkMode,omitempty"`

	AuthConfigured bool   `json:"authConfigured"`
	CustomJWT      bool   `json:"customJwt"`
	DiscoveryURL   string `json:"discoveryUrl,omitempty"`
}

type ServiceDependencies struct {
	Fetcher MetadataFetcher
	Logger  logger.Logger
	Out     io.Writer
}
