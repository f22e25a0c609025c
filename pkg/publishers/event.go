package publishers

import (
	"time"

	"github.com/samvad-hq/nuki-bridge-client/pkg/bridgeapi"
)

// Event represents a lock state change published downstream.
type Event struct {
	BridgeID          string    `json:"bridge_id"`
	BridgeName        string    `json:"bridge_name"`
	NukiID            int64     `json:"nuki_id"`
	LockName          string    `json:"lock_name"`
	State             int       `json:"state"`
	StateName         string    `json:"state_name"`
	PreviousStateName string    `json:"previous_state_name,omitempty"`
	BatteryCritical   bool      `json:"battery_critical"`
	ReportedAt        string    `json:"reported_at,omitempty"`
	ObservedAt        time.Time `json:"observed_at"`
}

// NewEvent constructs an Event for a lock seen on the given bridge.
// previous is empty the first time a lock is observed.
func NewEvent(bridgeID, bridgeName string, lock bridgeapi.Lock, previous string) Event {
	state := lock.LastKnownState
	name := state.StateName
	if name == "" {
		name = state.LockState().String()
	}
	return Event{
		BridgeID:          bridgeID,
		BridgeName:        bridgeName,
		NukiID:            lock.NukiID,
		LockName:          lock.Name,
		State:             state.State,
		StateName:         name,
		PreviousStateName: previous,
		BatteryCritical:   state.BatteryCritical,
		ReportedAt:        state.Timestamp,
		ObservedAt:        time.Now().UTC(),
	}
}
