package bridgeapi

import (
	"fmt"
	"strconv"
	"strings"
)

// LockState mirrors the keyturner lock state reported by the bridge.
type LockState uint8

const (
	LockStateUncalibrated  LockState = 0x00
	LockStateLocked        LockState = 0x01
	LockStateUnlocking     LockState = 0x02
	LockStateUnlocked      LockState = 0x03
	LockStateLocking       LockState = 0x04
	LockStateUnlatched     LockState = 0x05
	LockStateLocknGoActive LockState = 0x06
	LockStateUnlatching    LockState = 0x07
	LockStateCalibration   LockState = 0xFC
	LockStateBootRun       LockState = 0xFD
	LockStateMotorBlocked  LockState = 0xFE
	LockStateUndefined     LockState = 0xFF
)

var lockStateNames = map[LockState]string{
	LockStateUncalibrated:  "Uncalibrated",
	LockStateLocked:        "Locked",
	LockStateUnlocking:     "Unlocking",
	LockStateUnlocked:      "Unlocked",
	LockStateLocking:       "Locking",
	LockStateUnlatched:     "Unlatched",
	LockStateLocknGoActive: "LocknGoActive",
	LockStateUnlatching:    "Unlatching",
	LockStateCalibration:   "Calibration",
	LockStateBootRun:       "BootRun",
	LockStateMotorBlocked:  "MotorBlocked",
	LockStateUndefined:     "Undefined",
}

func (s LockState) String() string {
	if name, ok := lockStateNames[s]; ok {
		return name
	}
	return "LockState(" + strconv.Itoa(int(s)) + ")"
}

// LockAction is an action the bridge can perform on a smart lock.
type LockAction uint8

const (
	LockActionUnlock         LockAction = 0x01
	LockActionLock           LockAction = 0x02
	LockActionUnlatch        LockAction = 0x03
	LockActionLocknGo        LockAction = 0x04
	LockActionLocknGoUnlatch LockAction = 0x05
	LockActionFullLock       LockAction = 0x06
	LockActionFobAction1     LockAction = 0x81
	LockActionFobAction2     LockAction = 0x82
	LockActionFobAction3     LockAction = 0x83
)

var lockActionNames = map[LockAction]string{
	LockActionUnlock:         "Unlock",
	LockActionLock:           "Lock",
	LockActionUnlatch:        "Unlatch",
	LockActionLocknGo:        "LocknGo",
	LockActionLocknGoUnlatch: "LocknGoUnlatch",
	LockActionFullLock:       "FullLock",
	LockActionFobAction1:     "FobAction1",
	LockActionFobAction2:     "FobAction2",
	LockActionFobAction3:     "FobAction3",
}

func (a LockAction) String() string {
	if name, ok := lockActionNames[a]; ok {
		return name
	}
	return "LockAction(" + strconv.Itoa(int(a)) + ")"
}

// ParseLockAction accepts an action name (case-insensitive) or its numeric
// value in decimal or 0x-prefixed hex.
func ParseLockAction(s string) (LockAction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("lock action is empty")
	}
	for action, name := range lockActionNames {
		if strings.EqualFold(name, s) {
			return action, nil
		}
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown lock action %q", s)
	}
	action := LockAction(n)
	if _, ok := lockActionNames[action]; !ok {
		return 0, fmt.Errorf("unknown lock action %q", s)
	}
	return action, nil
}
