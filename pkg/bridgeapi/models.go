package bridgeapi

// Lock is a single entry of the /list response.
type Lock struct {
	NukiID         int64         `json:"nukiId"`
	Name           string        `json:"name"`
	LastKnownState LastLockState `json:"lastKnownState"`
}

// LastLockState is the state the bridge last observed for a lock.
type LastLockState struct {
	State           int    `json:"state"`
	StateName       string `json:"stateName"`
	BatteryCritical bool   `json:"batteryCritical"`
	Timestamp       string `json:"timestamp"`
}

// LockState returns the typed state value.
func (s LastLockState) LockState() LockState { return LockState(s.State) }

// LockStateResponse is returned by /lockState.
type LockStateResponse struct {
	State           int    `json:"state"`
	StateName       string `json:"stateName"`
	BatteryCritical bool   `json:"batteryCritical"`
	Success         bool   `json:"success"`
}

// SimpleResponse is returned by mutating endpoints.
type SimpleResponse struct {
	Success bool `json:"success"`
}

// Callback is a registered callback URL.
type Callback struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Callbacks is returned by /callback/list.
type Callbacks struct {
	Callbacks []Callback `json:"callbacks"`
}
