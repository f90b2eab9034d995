package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetersToFeet(t *testing.T) {
	assert.Equal(t, 3.3, MetersToFeet(1))
	assert.Equal(t, 1000.0, MetersToFeet(304.8))
	assert.Equal(t, 0.0, MetersToFeet(0))
}

func TestMetersToMiles(t *testing.T) {
	assert.Equal(t, 1.0, MetersToMiles(1609.34))
	assert.Equal(t, 0.6, MetersToMiles(1000))
}

func TestMpsToMph(t *testing.T) {
	assert.Equal(t, 2.2, MpsToMph(1))
	assert.Equal(t, 10.0, MpsToMph(4.4704))
}
