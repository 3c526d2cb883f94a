package agentinvoke

import (
	"fmt"
	"strings"
	"time"
)

// MinSessionIDLength is the shortest session id the runtime accepts.
const MinSessionIDLength = 33

// NewSessionID builds test_session_<unix>_<micro>_extra from now, padded
// with "_x" until it reaches MinSessionIDLength.
func NewSessionID(now time.Time) string {
	id := fmt.Sprintf("test_session_%d_%d_extra", now.Unix(), now.Nanosecond()/int(time.Microsecond))
	for len(id) < MinSessionIDLength {
		id += "_x"
	}
	return id
}

// EscapeARN percent-encodes every byte outside [A-Za-z0-9_.~-], including
// '/' and ':'.
func EscapeARN(arn string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(arn) * 3)
	for i := 0; i < len(arn); i++ {
		c := arn[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}

// EndpointURL fills template with region and the escaped ARN. An empty
// template selects DefaultEndpointTemplate.
func EndpointURL(template, region, arn string) string {
	if template == "" {
		template = DefaultEndpointTemplate
	}
	return fmt.Sprintf(template, region, EscapeARN(arn))
}
