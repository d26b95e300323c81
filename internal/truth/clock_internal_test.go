package truth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitSystemClockNow(t *testing.T) {
	clock := systemClock{}

	now := clock.Now()

	assert.Equal(t, time.UTC, now.Location(), "should return UTC time")
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second, "should return current time")
}
