package beacon

import (
	"encoding/json"
	"fmt"
)

// Status is the live-tracking activity state reported by a beacon share.
// StatusUploadedLie never appears on the wire; it is synthesized by
// Normalize when a share claims "uploaded" without an activity id.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusAutoPaused
	StatusManualPaused
	StatusUploaded
	StatusDiscarded
	StatusNotStarted
	StatusUploadedLie
)

// Wire codes used by the beacon feed.
const (
	wireActive       = 1
	wireAutoPaused   = 2
	wireManualPaused = 3
	wireUnknown      = 4
	wireUploaded     = 5
	wireDiscarded    = 6
	wireNotStarted   = 7
)

// UnmarshalJSON decodes the integer wire code. Any unrecognized code maps to
// StatusUnknown so decoding is total.
func (s *Status) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("status must be an integer: %w", err)
	}

	switch code {
	case wireActive:
		*s = StatusActive
	case wireAutoPaused:
		*s = StatusAutoPaused
	case wireManualPaused:
		*s = StatusManualPaused
	case wireUploaded:
		*s = StatusUploaded
	case wireDiscarded:
		*s = StatusDiscarded
	case wireNotStarted:
		*s = StatusNotStarted
	default:
		*s = StatusUnknown
	}
	return nil
}

// MarshalJSON encodes the wire code. StatusUploadedLie is local-only and
// cannot be re-encoded.
func (s Status) MarshalJSON() ([]byte, error) {
	var code int
	switch s {
	case StatusActive:
		code = wireActive
	case StatusAutoPaused:
		code = wireAutoPaused
	case StatusManualPaused:
		code = wireManualPaused
	case StatusUploaded:
		code = wireUploaded
	case StatusDiscarded:
		code = wireDiscarded
	case StatusNotStarted:
		code = wireNotStarted
	case StatusUnknown:
		code = wireUnknown
	default:
		return nil, fmt.Errorf("status %s has no wire encoding", s)
	}
	return json.Marshal(code)
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusAutoPaused:
		return "auto_paused"
	case StatusManualPaused:
		return "manual_paused"
	case StatusUploaded:
		return "uploaded"
	case StatusDiscarded:
		return "discarded"
	case StatusNotStarted:
		return "not_started"
	case StatusUploadedLie:
		return "uploaded_lie"
	default:
		return "unknown"
	}
}
