package animation

import (
	"sync"
	"time"

	"curtainview/internal/core/progress"

	"fyne.io/fyne/v2"
)

// Engine schedules progress transitions on the fyne animation runner.
// The animator decides values; the engine only feeds it elapsed time.
type Engine struct {
	mu       sync.Mutex
	animator *progress.Animator
	refresh  func()
	active   *fyne.Animation

	startAnimation func(*fyne.Animation)
	stopAnimation  func(*fyne.Animation)
}

// New creates an engine driving animator. refresh is called after every
// applied tick and may be nil.
func New(animator *progress.Animator, refresh func()) *Engine {
	return &Engine{
		animator:       animator,
		refresh:        refresh,
		startAnimation: (*fyne.Animation).Start,
		stopAnimation:  (*fyne.Animation).Stop,
	}
}

// Animator returns the driven animator.
func (engine *Engine) Animator() *progress.Animator {
	return engine.animator
}

// Animate stops the running transition and starts a new one toward target.
func (engine *Engine) Animate(target int) {
	engine.mu.Lock()
	engine.stopActiveLocked()

	generation := engine.animator.Start(target)
	duration := engine.animator.Duration()
	if duration <= 0 {
		engine.mu.Unlock()
		engine.tick(generation, 0)
		return
	}

	anim := &fyne.Animation{
		Duration: duration,
		Curve:    fyne.AnimationLinear,
		Tick: func(done float32) {
			engine.tick(generation, time.Duration(float64(done)*float64(duration)))
		},
	}
	engine.active = anim
	engine.mu.Unlock()

	engine.startAnimation(anim)
}

// Jump stops the running transition and sets progress without animating.
func (engine *Engine) Jump(value int) {
	engine.mu.Lock()
	engine.stopActiveLocked()
	engine.animator.SetImmediately(value)
	engine.mu.Unlock()

	if engine.refresh != nil {
		engine.refresh()
	}
}

// Stop detaches observers and force-cancels the running transition.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.animator.Detach()
	engine.stopActiveLocked()
}

// Cancel stops the running transition where it is and keeps the observers.
func (engine *Engine) Cancel() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.animator.Cancel()
	engine.stopActiveLocked()
}

// Running reports whether a fyne animation is currently owned by the engine.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.active != nil
}

func (engine *Engine) tick(generation uint64, elapsed time.Duration) {
	if _, ok := engine.animator.AdvanceGeneration(generation, elapsed); !ok {
		return
	}
	if engine.animator.State() == progress.StateIdle {
		engine.mu.Lock()
		if engine.animator.Generation() == generation {
			engine.active = nil
		}
		engine.mu.Unlock()
	}
	if engine.refresh != nil {
		engine.refresh()
	}
}

func (engine *Engine) stopActiveLocked() {
	if engine.active == nil {
		return
	}
	engine.stopAnimation(engine.active)
	engine.active = nil
}
