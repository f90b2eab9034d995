package trail

import (
	"encoding/json"
	"log"
	"strings"
)

// Status is the condition a trail system reports: rideable, rideable with
// caution, closed, or closed for a freeze-thaw cycle. Unknown is a catchall
// for feed values we do not recognize.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusCaution
	StatusClosed
	StatusFreeze
)

// UnmarshalJSON decodes the feed's status string case-insensitively. Nulls
// and unrecognized values map to StatusUnknown so decoding is total.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Invalid trail status value %s, treating as unknown", data)
		*s = StatusUnknown
		return nil
	}

	switch strings.ToLower(raw) {
	case "open":
		*s = StatusOpen
	case "caution":
		*s = StatusCaution
	case "closed":
		*s = StatusClosed
	case "freeze":
		*s = StatusFreeze
	default:
		log.Printf("Unknown trail status: %s", raw)
		*s = StatusUnknown
	}
	return nil
}

// MarshalJSON encodes the status back to its feed string.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusCaution:
		return "caution"
	case StatusClosed:
		return "closed"
	case StatusFreeze:
		return "freeze"
	default:
		return "unknown"
	}
}
