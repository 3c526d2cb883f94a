package agentinvoke

import (
	"strings"

	"agentcore-tools/internal/common/errors"
	"agentcore-tools/internal/common/validation"
)

var requestSchema = validation.MustCompile(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["prompt"],
  "additionalProperties": false,
  "properties": {
    "prompt": {"type": "string", "minLength": 1},
    "input": {
      "type": "object",
      "additionalProperties": false,
      "minProperties": 1,
      "properties": {
        "topic": {"type": "string", "minLength": 1},
        "active_only": {"type": "boolean", "enum": [true]}
      }
    }
  }
}`)

// BuildRequest always carries the prompt. The input object is attached
// only when a topic is set or active_only is requested.
func BuildRequest(input *Input) Request {
	req := Request{Prompt: input.Prompt}
	if input.Topic != "" || input.ActiveOnly {
		req.Input = &RequestFilter{
			Topic:      input.Topic,
			ActiveOnly: input.ActiveOnly,
		}
	}
	return req
}

// ValidateRequest checks req against the invocation body schema.
func ValidateRequest(req Request) error {
	result, err := requestSchema.Validate(req)
	if err != nil {
		return errors.NewRequestValidationFailedError(err.Error())
	}
	if !result.Valid {
		return errors.NewRequestValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}
