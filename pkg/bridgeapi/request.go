package bridgeapi

import (
	"context"
	"time"

	"github.com/samvad-hq/nuki-bridge-client/pkg/httpclient"
)

const (
	PathList           = "/list"
	PathLockState      = "/lockState"
	PathLockAction     = "/lockAction"
	PathCallbackAdd    = "/callback/add"
	PathCallbackList   = "/callback/list"
	PathCallbackRemove = "/callback/remove"

	// QueryToken is the query parameter carrying the bridge token.
	QueryToken = "token"
)

// get issues a single GET and returns the response when its status is 2xx.
// Everything else comes back as a *RequestError.
func get(ctx context.Context, client httpclient.Client, log Logger, path string, query map[string]string) (httpclient.Response, error) {
	start := time.Now()
	resp, err := client.Get(ctx, path, query, map[string]string{"Accept": "application/json"})
	if err != nil {
		log.WarnObj("bridge request failed", "bridge_request_error", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return nil, requestFailed(path, err)
	}

	status := resp.StatusCode()
	log.DebugObj("bridge request completed", "bridge_request", map[string]any{
		"path":       path,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	if status < 200 || status > 299 {
		return nil, requestFailed(path, &StatusError{StatusCode: status, Body: resp.Body()})
	}
	return resp, nil
}
