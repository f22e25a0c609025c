package httpclient

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "nuki-bridge-client/1.0"

// Options configures the transport-level behaviour of a RestyClient.
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	Headers            map[string]string
	UserAgent          string
	InsecureSkipVerify bool
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient from the given options.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(opts)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(Options{Timeout: timeout})
}

// newRestyBaseClient creates a new resty.Client. Retries stay disabled: every
// call maps to exactly one outbound request.
func newRestyBaseClient(opts Options) *resty.Client {
	c := resty.New()
	c.SetRetryCount(0)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		c.SetBaseURL(base)
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	c.SetHeader("User-Agent", ua)
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	if opts.InsecureSkipVerify {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in for self-signed bridges
	}
	return c
}

// Get performs an HTTP GET request with the specified context, path, query parameters and headers.
// Query parameters with empty values are still sent.
func (r *RestyClient) Get(ctx context.Context, path string, query map[string]string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte             { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int          { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header(key string) string { return r.resp.Header().Get(key) }
