package bridgeapi

import (
	"context"

	"github.com/samvad-hq/nuki-bridge-client/pkg/httpclient"
)

// AuthClient checks a token against the bridge by listing its locks. The base
// URL and transport settings belong to the injected HTTP client.
type AuthClient struct {
	client httpclient.Client
	log    Logger
}

// NewAuthClient wraps an HTTP client. A nil logger discards output.
func NewAuthClient(client httpclient.Client, log Logger) *AuthClient {
	return &AuthClient{client: client, log: ensureLogger(log)}
}

// Login issues GET /list?token=<token> and returns the decoded body as-is.
// The token is sent verbatim, empty included.
func (a *AuthClient) Login(ctx context.Context, token string) (Payload, error) {
	resp, err := get(ctx, a.client, a.log, PathList, map[string]string{QueryToken: token})
	if err != nil {
		return nil, err
	}
	payload, err := decodePayload(resp.Body(), resp.Header("Content-Type"))
	if err != nil {
		return nil, requestFailed(PathList, err)
	}
	return payload, nil
}

// LoginAsync starts Login in its own goroutine and returns immediately.
func (a *AuthClient) LoginAsync(ctx context.Context, token string) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.payload, f.err = a.Login(ctx, token)
	}()
	return f
}

// Future holds the single result of an asynchronous Login.
type Future struct {
	done    chan struct{}
	payload Payload
	err     error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available or ctx ends. A resolved future
// always returns its result, even with a done ctx. Giving up on the wait
// leaves the request running; later calls still observe its result.
func (f *Future) Wait(ctx context.Context) (Payload, error) {
	select {
	case <-f.done:
		return f.payload, f.err
	default:
	}
	select {
	case <-f.done:
		return f.payload, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
