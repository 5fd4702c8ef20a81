package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlatformHeightCarriesForward(t *testing.T) {
	events := []PlatformEvent{
		{Frame: 5, Height: 20},
		{Frame: 11, Height: 15},
	}

	assert.Equal(t, 20.0, resolvePlatformHeight(events, 10, 0))
	assert.Equal(t, 15.0, resolvePlatformHeight(events, 11, 0))
	assert.Equal(t, 15.0, resolvePlatformHeight(events, 500, 0))
}

func TestResolvePlatformHeightFallsBackBeforeFirstEvent(t *testing.T) {
	events := []PlatformEvent{
		{Frame: 5, Height: 20},
		{Frame: 11, Height: 15},
	}

	assert.Equal(t, 99.0, resolvePlatformHeight(events, 4, 99))
	assert.Equal(t, 99.0, resolvePlatformHeight(nil, 4, 99))
}

func TestResolvePlatformHeightLastEventWinsOnEqualFrames(t *testing.T) {
	events := []PlatformEvent{
		{Frame: 7, Height: 10},
		{Frame: 7, Height: 12},
	}

	assert.Equal(t, 12.0, resolvePlatformHeight(events, 7, 0))
	assert.Equal(t, 12.0, resolvePlatformHeight(events, 8, 0))
}
