package curtain

import (
	"image"
	"image/color"
	"sync"
	"time"

	"curtainview/internal/core/geometry"
	"curtainview/internal/core/model"
	"curtainview/internal/core/progress"
	"curtainview/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"honnef.co/go/curve"
)

const minSide = float32(32)

// CurtainView is a widget drawing a set of folded sheets whose width follows
// a progress value in [0,100].
type CurtainView struct {
	widget.BaseWidget

	mu          sync.RWMutex
	curtainType model.CurtainType
	style       model.Style
	engine      *animation.Engine
}

// NewCurtainView creates a curtain from a construction-time configuration.
func NewCurtainView(config model.CurtainConfig) *CurtainView {
	view := &CurtainView{
		curtainType: config.Type,
		style:       config.Style,
	}
	animator := progress.NewAnimator(config.AnimDuration, config.InitialProgress)
	view.engine = animation.New(animator, view.Refresh)
	view.ExtendBaseWidget(view)
	return view
}

// NewCurtainViewWithAttributes creates a curtain from the attribute-style
// integer type index and a duration in milliseconds.
func NewCurtainViewWithAttributes(typeIndex, animDurationMillis int) (*CurtainView, error) {
	curtainType, err := model.CurtainTypeFromIndex(typeIndex)
	if err != nil {
		return nil, err
	}
	config := model.DefaultConfig()
	config.Type = curtainType
	if animDurationMillis >= 0 {
		config.AnimDuration = time.Duration(animDurationMillis) * time.Millisecond
	}
	return NewCurtainView(config), nil
}

// CreateRenderer links the widget to its raster renderer.
func (view *CurtainView) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(view.Render)
	return &curtainRenderer{
		view:    view,
		raster:  raster,
		objects: []fyne.CanvasObject{raster},
	}
}

// SetType selects the anchored side. The change is drawn immediately.
func (view *CurtainView) SetType(curtainType model.CurtainType) *CurtainView {
	view.mu.Lock()
	view.curtainType = curtainType
	view.mu.Unlock()
	view.Refresh()
	return view
}

// Type returns the anchored side.
func (view *CurtainView) Type() model.CurtainType {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.curtainType
}

// SetAnimDuration sets the duration of subsequent SetProgress transitions.
func (view *CurtainView) SetAnimDuration(duration time.Duration) *CurtainView {
	view.engine.Animator().SetDuration(duration)
	return view
}

// SetSheetColor sets the sheet fill color and opacity.
func (view *CurtainView) SetSheetColor(c color.Color, alpha uint8) *CurtainView {
	view.mu.Lock()
	view.style.SheetColor = c
	view.style.SheetAlpha = alpha
	view.mu.Unlock()
	view.Refresh()
	return view
}

// SetBorderColor sets the sheet outline color and opacity.
func (view *CurtainView) SetBorderColor(c color.Color, alpha uint8) *CurtainView {
	view.mu.Lock()
	view.style.BorderColor = c
	view.style.BorderAlpha = alpha
	view.mu.Unlock()
	view.Refresh()
	return view
}

// SetStyle replaces the whole style.
func (view *CurtainView) SetStyle(style model.Style) *CurtainView {
	view.mu.Lock()
	view.style = style
	view.mu.Unlock()
	view.Refresh()
	return view
}

// Style returns the current style.
func (view *CurtainView) Style() model.Style {
	view.mu.RLock()
	defer view.mu.RUnlock()
	return view.style
}

// SetOnProgressChange registers a callback receiving every animated value.
func (view *CurtainView) SetOnProgressChange(handler func(value int)) *CurtainView {
	view.engine.Animator().SetOnProgressChange(handler)
	return view
}

// SetOnAnimEnd registers a callback fired when a transition completes naturally.
func (view *CurtainView) SetOnAnimEnd(handler func()) *CurtainView {
	view.engine.Animator().SetOnAnimEnd(handler)
	return view
}

// SetProgress animates from the current progress to value.
func (view *CurtainView) SetProgress(value int) {
	view.engine.Animate(value)
}

// SetProgressImmediately jumps to value without animating or notifying.
func (view *CurtainView) SetProgressImmediately(value int) {
	view.engine.Jump(value)
}

// Progress returns the live progress value.
func (view *CurtainView) Progress() int {
	return view.engine.Animator().Current()
}

// Animating reports whether a transition is in flight.
func (view *CurtainView) Animating() bool {
	return view.engine.Animator().State() == progress.StateRunning
}

// CancelTransition stops an in-flight transition at its current value.
// Observers stay registered.
func (view *CurtainView) CancelTransition() {
	view.engine.Cancel()
}

// Detach removes the callbacks and cancels any running transition.
func (view *CurtainView) Detach() {
	view.engine.Stop()
}

// Frame computes the sheet geometry for a width x height area at the current progress.
func (view *CurtainView) Frame(width, height float64) geometry.Frame {
	view.mu.RLock()
	curtainType := view.curtainType
	params := geometry.ParamsFromStyle(view.style)
	view.mu.RUnlock()
	return geometry.Layout(curtainType, view.Progress(), width, height, params)
}

// Render draws the curtain into an image of the given pixel size.
func (view *CurtainView) Render(pixelWidth, pixelHeight int) image.Image {
	width, height := float64(pixelWidth), float64(pixelHeight)
	transform := curve.Identity
	if size := view.Size(); size.Width > 0 && size.Height > 0 {
		width, height = float64(size.Width), float64(size.Height)
		transform = curve.Scale(float64(pixelWidth)/width, float64(pixelHeight)/height)
	}
	frame := view.Frame(width, height)
	return rasterize(frame, pixelWidth, pixelHeight, view.Style(), transform)
}

type curtainRenderer struct {
	view    *CurtainView
	raster  *canvas.Raster
	objects []fyne.CanvasObject
}

func (renderer *curtainRenderer) Layout(size fyne.Size) {
	renderer.raster.Resize(size)
}

func (renderer *curtainRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minSide, minSide)
}

func (renderer *curtainRenderer) Refresh() {
	renderer.raster.Refresh()
}

func (renderer *curtainRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

// Destroy runs whenever fyne drops a cached renderer, which does not end the
// widget's life, so observers are kept.
func (renderer *curtainRenderer) Destroy() {
	renderer.view.CancelTransition()
}
