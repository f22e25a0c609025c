package bridgeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// Payload is a decoded response body. JSON objects decode to map[string]any,
// arrays to []any and numbers to float64. Non-JSON bodies are kept as string.
type Payload = any

// decodePayload turns a body into a Payload without reshaping it. A body that
// declares itself as JSON but does not parse is a decode failure; any other
// unparsable body is handed back verbatim.
func decodePayload(body []byte, contentType string) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var out any
	err := json.Unmarshal(trimmed, &out)
	if err == nil {
		return out, nil
	}
	if isJSONContentType(contentType) {
		return nil, fmt.Errorf("decode json body: %w", err)
	}
	return string(body), nil
}

func isJSONContentType(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
