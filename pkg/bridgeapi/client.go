package bridgeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/samvad-hq/nuki-bridge-client/pkg/httpclient"
)

// BridgeClient exposes the typed bridge endpoints for a fixed token.
type BridgeClient struct {
	client httpclient.Client
	token  string
	log    Logger
}

// NewBridgeClient builds a client that authenticates every call with token.
func NewBridgeClient(client httpclient.Client, token string, log Logger) *BridgeClient {
	return &BridgeClient{client: client, token: token, log: ensureLogger(log)}
}

// ListLocks returns the paired locks and their last known states.
func (c *BridgeClient) ListLocks(ctx context.Context) ([]Lock, error) {
	var locks []Lock
	if err := c.getJSON(ctx, PathList, nil, &locks); err != nil {
		return nil, err
	}
	return locks, nil
}

// LockState queries the current state of a lock.
func (c *BridgeClient) LockState(ctx context.Context, nukiID int64) (LockStateResponse, error) {
	var out LockStateResponse
	err := c.getJSON(ctx, PathLockState, map[string]string{
		"nukiId": strconv.FormatInt(nukiID, 10),
	}, &out)
	return out, err
}

// LockAction asks the bridge to perform action on a lock. With noWait the
// bridge answers before the action completes.
func (c *BridgeClient) LockAction(ctx context.Context, nukiID int64, action LockAction, noWait bool) (SimpleResponse, error) {
	wait := "0"
	if noWait {
		wait = "1"
	}
	var out SimpleResponse
	err := c.getJSON(ctx, PathLockAction, map[string]string{
		"nukiId": strconv.FormatInt(nukiID, 10),
		"action": strconv.Itoa(int(action)),
		"noWait": wait,
	}, &out)
	return out, err
}

// AddCallback registers a URL the bridge posts lock events to.
func (c *BridgeClient) AddCallback(ctx context.Context, url string) (SimpleResponse, error) {
	var out SimpleResponse
	err := c.getJSON(ctx, PathCallbackAdd, map[string]string{"url": url}, &out)
	return out, err
}

// ListCallbacks returns the registered callback URLs.
func (c *BridgeClient) ListCallbacks(ctx context.Context) (Callbacks, error) {
	var out Callbacks
	err := c.getJSON(ctx, PathCallbackList, nil, &out)
	return out, err
}

// RemoveCallback unregisters the callback with the given id.
func (c *BridgeClient) RemoveCallback(ctx context.Context, id int) (SimpleResponse, error) {
	var out SimpleResponse
	err := c.getJSON(ctx, PathCallbackRemove, map[string]string{"id": strconv.Itoa(id)}, &out)
	return out, err
}

func (c *BridgeClient) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	query := make(map[string]string, len(params)+1)
	for k, v := range params {
		query[k] = v
	}
	query[QueryToken] = c.token

	resp, err := get(ctx, c.client, c.log, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return requestFailed(path, fmt.Errorf("decode json body: %w", err))
	}
	return nil
}
