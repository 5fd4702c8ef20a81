package replay

// Fountain of Dreams is the only stage whose side platforms move; its
// resting heights seed frames with no recorded change this far back.
const (
	fodLeftPlatformFallback  = 21.0
	fodRightPlatformFallback = 28.0
)

// Platform sides as stored in the platform event source.
const (
	platformSideLeft  = "left"
	platformSideRight = "right"
)

// PlatformEvent is one sparse height-change event for a platform side.
type PlatformEvent struct {
	Frame  int
	Height float64
}

// resolvePlatformHeight recovers the effective height at targetFrame from
// events sorted ascending by frame: the last event at or before the target
// wins, later entries overwriting earlier ones on equal frames. With no
// qualifying event the fallback is returned, so callers must seed events
// with the most recent change strictly before their window.
func resolvePlatformHeight(events []PlatformEvent, targetFrame int, fallback float64) float64 {
	height := fallback
	for _, ev := range events {
		if ev.Frame > targetFrame {
			break
		}
		height = ev.Height
	}
	return height
}
