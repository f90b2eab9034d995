package trail

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Status
	}{
		{"open", `"open"`, StatusOpen},
		{"caution", `"caution"`, StatusCaution},
		{"closed", `"closed"`, StatusClosed},
		{"freeze", `"freeze"`, StatusFreeze},
		{"mixed case", `"Caution"`, StatusCaution},
		{"upper case", `"CLOSED"`, StatusClosed},
		{"unrecognized string", `"muddy"`, StatusUnknown},
		{"null", `null`, StatusUnknown},
		{"number", `3`, StatusUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s Status
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &s))
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestStatusMarshalJSON(t *testing.T) {
	data, err := json.Marshal(StatusCaution)
	require.NoError(t, err)
	assert.Equal(t, `"caution"`, string(data))

	data, err = json.Marshal(StatusUnknown)
	require.NoError(t, err)
	assert.Equal(t, `"unknown"`, string(data))
}
