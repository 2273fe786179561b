package progress

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Easing maps linear time in [0,1] to an eased fraction.
type Easing = fyne.AnimationCurve

// Decelerate moves quickly at first and slows down near the end: 1-(1-t)^2.
var Decelerate Easing = fyne.AnimationEaseOut

// Animator drives the current progress toward a target over a fixed duration.
// It owns no timer: the host calls Advance with the time elapsed since Start.
type Animator struct {
	mu         sync.Mutex
	duration   time.Duration
	easing     Easing
	state      State
	start      int
	target     int
	current    int
	generation uint64
	onProgress func(int)
	onEnd      func()
}

// NewAnimator creates an idle animator resting at initial.
func NewAnimator(duration time.Duration, initial int) *Animator {
	initial = Clamp(initial)
	return &Animator{
		duration: duration,
		easing:   Decelerate,
		state:    StateIdle,
		start:    initial,
		target:   initial,
		current:  initial,
	}
}

// SetDuration changes the duration used by subsequent transitions.
func (animator *Animator) SetDuration(duration time.Duration) {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	animator.duration = duration
}

// Duration returns the transition duration.
func (animator *Animator) Duration() time.Duration {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	return animator.duration
}

// SetEasing replaces the easing curve. A nil curve restores Decelerate.
func (animator *Animator) SetEasing(easing Easing) {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	if easing == nil {
		easing = Decelerate
	}
	animator.easing = easing
}

// SetOnProgressChange registers the per-tick observer. Nil clears it.
func (animator *Animator) SetOnProgressChange(handler func(int)) {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	animator.onProgress = handler
}

// SetOnAnimEnd registers the natural completion observer. Nil clears it.
func (animator *Animator) SetOnAnimEnd(handler func()) {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	animator.onEnd = handler
}

// Start cancels any running transition and begins a new one from the current
// progress to target. It returns the generation of the new transition.
func (animator *Animator) Start(target int) uint64 {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	animator.generation++
	animator.start = animator.current
	animator.target = Clamp(target)
	animator.state = StateRunning
	return animator.generation
}

// Advance moves the running transition to the point elapsed after Start and
// returns the current progress. The final step lands exactly on the target and
// fires the completion observer once. Idle animators ignore the call.
func (animator *Animator) Advance(elapsed time.Duration) int {
	current, _ := animator.advance(0, false, elapsed)
	return current
}

// AdvanceGeneration is Advance guarded by the generation returned from Start.
// Ticks belonging to a replaced or cancelled transition are dropped.
func (animator *Animator) AdvanceGeneration(generation uint64, elapsed time.Duration) (int, bool) {
	return animator.advance(generation, true, elapsed)
}

func (animator *Animator) advance(generation uint64, checkGeneration bool, elapsed time.Duration) (int, bool) {
	animator.mu.Lock()
	if animator.state != StateRunning || (checkGeneration && generation != animator.generation) {
		current := animator.current
		animator.mu.Unlock()
		return current, false
	}

	finished := animator.duration <= 0 || elapsed >= animator.duration
	if finished {
		animator.current = animator.target
		animator.state = StateIdle
	} else {
		if elapsed < 0 {
			elapsed = 0
		}
		fraction := float32(float64(elapsed) / float64(animator.duration))
		eased := animator.easing(fraction)
		animator.current = animator.start + int(eased*float32(animator.target-animator.start))
	}

	current := animator.current
	onProgress := animator.onProgress
	var onEnd func()
	if finished {
		onEnd = animator.onEnd
	}
	animator.mu.Unlock()

	if onProgress != nil {
		onProgress(current)
	}
	if onEnd != nil {
		onEnd()
	}
	return current, true
}

// SetImmediately jumps to value without a transition and without notifying observers.
func (animator *Animator) SetImmediately(value int) {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	value = Clamp(value)
	animator.generation++
	animator.state = StateIdle
	animator.start = value
	animator.target = value
	animator.current = value
}

// Cancel stops the running transition where it is. No completion fires.
func (animator *Animator) Cancel() {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	animator.cancelLocked()
}

// Detach drops both observers and then cancels, so no late callback can escape.
func (animator *Animator) Detach() {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	animator.onProgress = nil
	animator.onEnd = nil
	animator.cancelLocked()
}

// Current returns the live progress value.
func (animator *Animator) Current() int {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	return animator.current
}

// Target returns the most recently requested progress.
func (animator *Animator) Target() int {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	return animator.target
}

// State reports whether a transition is running.
func (animator *Animator) State() State {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	return animator.state
}

// Generation returns the identifier of the latest transition.
func (animator *Animator) Generation() uint64 {
	animator.mu.Lock()
	defer animator.mu.Unlock()
	return animator.generation
}

func (animator *Animator) cancelLocked() {
	if animator.state != StateRunning {
		return
	}
	animator.generation++
	animator.state = StateIdle
}
