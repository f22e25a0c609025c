package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header(key string) string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// The path is resolved against the base URL the concrete client was built with;
// absolute URLs are used as-is.
type Client interface {
	Get(ctx context.Context, path string, query map[string]string, headers map[string]string) (Response, error)
}
