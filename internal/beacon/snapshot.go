package beacon

import (
	"encoding/json"
	"fmt"
	"time"
)

// EpochTime decodes a JSON integer of epoch seconds into a UTC time.
type EpochTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *EpochTime) UnmarshalJSON(data []byte) error {
	var epoch int64
	if err := json.Unmarshal(data, &epoch); err != nil {
		return fmt.Errorf("epoch timestamp must be an integer: %w", err)
	}
	t.Time = time.Unix(epoch, 0).UTC()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t EpochTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Unix())
}

// Stats are the aggregate ride numbers reported alongside a snapshot. They
// are carried for the data endpoints but play no part in status evaluation.
type Stats struct {
	Distance    float64 `json:"distance"`
	MovingTime  int64   `json:"moving_time"`
	ElapsedTime int64   `json:"elapsed_time"`
}

// Snapshot is one live-tracking reading from the beacon feed. It is
// immutable and never persisted verbatim.
type Snapshot struct {
	Status       Status    `json:"status"`
	ActivityID   *int64    `json:"activity_id"`
	UpdateTime   EpochTime `json:"update_time"`
	AthleteID    int64     `json:"athlete_id"`
	ActivityType int64     `json:"activity_type"`
	UTCOffset    int64     `json:"utc_offset"`
	BatteryLevel int64     `json:"battery_level"`
	SourceApp    string    `json:"source_app"`
	Stats        Stats     `json:"stats"`
}
