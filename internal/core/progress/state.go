package progress

// State represents whether a transition is in flight.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

const (
	// MinProgress is the fully gathered curtain.
	MinProgress = 0
	// MaxProgress is the fully extended curtain.
	MaxProgress = 100
)

// Clamp limits value to the progress domain.
func Clamp(value int) int {
	if value < MinProgress {
		return MinProgress
	}
	if value > MaxProgress {
		return MaxProgress
	}
	return value
}
