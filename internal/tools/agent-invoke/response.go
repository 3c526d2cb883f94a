package agentinvoke

import (
	"bytes"
	"encoding/json"

	"agentcore-tools/internal/common/errors"
)

// Response is one of StructuredMessage, PlainMessage, SimpleResponse,
// EmptyOutput or OpaqueDocument.
type Response interface {
	isResponse()
}

// StructuredMessage is an object under output.message. Nil fields were
// absent from the message.
type StructuredMessage struct {
	Answer  *string
	Sources []Source
	Raw     *string
}

type Source struct {
	Articolul *string
	FileID    *string
}

// PlainMessage is a non-object output.message. Strings are kept as is,
// other JSON values as their JSON text.
type PlainMessage struct {
	Text string
}

// SimpleResponse is a top-level "response" field with no "output".
type SimpleResponse struct {
	Text string
}

// EmptyOutput is an "output" field that carries no message.
type EmptyOutput struct{}

// OpaqueDocument is any other document, kept byte for byte.
type OpaqueDocument struct {
	Document json.RawMessage
}

func (StructuredMessage) isResponse() {}
func (PlainMessage) isResponse()      {}
func (SimpleResponse) isResponse()    {}
func (EmptyOutput) isResponse()       {}
func (OpaqueDocument) isResponse()    {}

// ParseResponse classifies body by probing output.message, then
// response, and falling back to the whole document.
func ParseResponse(body []byte) (Response, error) {
	trimmed := bytes.TrimSpace(body)
	var decoded interface{}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, errors.NewResponseDecodeFailedError(err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil || top == nil {
		return OpaqueDocument{Document: json.RawMessage(trimmed)}, nil
	}

	if rawOutput, ok := top["output"]; ok {
		var output map[string]json.RawMessage
		if err := json.Unmarshal(rawOutput, &output); err != nil {
			return EmptyOutput{}, nil
		}
		rawMessage, ok := output["message"]
		if !ok {
			return EmptyOutput{}, nil
		}
		return parseMessage(rawMessage)
	}

	if rawResp, ok := top["response"]; ok {
		return SimpleResponse{Text: jsonText(rawResp)}, nil
	}

	return OpaqueDocument{Document: json.RawMessage(trimmed)}, nil
}

func parseMessage(raw json.RawMessage) (Response, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return PlainMessage{Text: jsonText(raw)}, nil
	}

	msg := StructuredMessage{}
	if v, ok := fields["answer"]; ok {
		s := jsonText(v)
		msg.Answer = &s
	}
	if v, ok := fields["raw"]; ok {
		s := jsonText(v)
		msg.Raw = &s
	}
	if v, ok := fields["sources"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil {
			for _, item := range items {
				msg.Sources = append(msg.Sources, parseSource(item))
			}
		}
	}
	return msg, nil
}

func parseSource(raw json.RawMessage) Source {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Source{}
	}
	var src Source
	if v, ok := fields["articolul"]; ok {
		s := jsonText(v)
		src.Articolul = &s
	}
	if v, ok := fields["file_id"]; ok {
		s := jsonText(v)
		src.FileID = &s
	}
	return src
}

// jsonText returns a JSON string's value, or the compact JSON text of
// any other value.
func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
