package demo

import (
	"fmt"
	"image/color"

	"curtainview/internal/core/progress"
	"curtainview/internal/ui/curtain"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	windowWidth  = float32(480)
	windowHeight = float32(420)
)

// Window shows a curtain with a control slider and a slider mirroring the
// animated progress.
type Window struct {
	window        fyne.Window
	view          *curtain.CurtainView
	control       *widget.Slider
	mirror        *widget.Slider
	progressLabel *canvas.Text
	onProgress    func(int)
	onAnimEnd     func()
}

// New creates the demo window around view and takes over its callbacks.
func New(app fyne.App, view *curtain.CurtainView) *Window {
	window := app.NewWindow("CurtainView")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	progressLabel := canvas.NewText("0%", color.NRGBA{R: 0x8A, G: 0x74, B: 0x4F, A: 0xFF})
	progressLabel.Alignment = fyne.TextAlignTrailing
	progressLabel.TextStyle = fyne.TextStyle{Bold: true}
	progressLabel.TextSize = 16

	control := widget.NewSlider(progress.MinProgress, progress.MaxProgress)
	control.Step = 1

	mirror := widget.NewSlider(progress.MinProgress, progress.MaxProgress)
	mirror.Step = 1
	mirror.Disable()

	sliders := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Curtain"), progressLabel, control),
		container.NewBorder(nil, nil, widget.NewLabel("Remaining"), nil, mirror),
	)
	window.SetContent(container.New(&demoLayout{}, view, sliders))
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	demo := &Window{
		window:        window,
		view:          view,
		control:       control,
		mirror:        mirror,
		progressLabel: progressLabel,
	}

	control.OnChangeEnded = demo.handleRelease
	view.SetOnProgressChange(demo.handleProgress).SetOnAnimEnd(demo.handleAnimEnd)
	demo.showProgress(view.Progress())
	control.SetValue(float64(view.Progress()))

	return demo
}

// HideOnClose keeps the window alive when closed, for hosts with a tray.
func (demo *Window) HideOnClose() {
	demo.window.SetCloseIntercept(func() {
		demo.window.Hide()
	})
}

// Show displays the window.
func (demo *Window) Show() {
	demo.window.Show()
	demo.window.RequestFocus()
}

// View returns the hosted curtain.
func (demo *Window) View() *curtain.CurtainView {
	return demo.view
}

// SetProgress moves the control slider and animates the curtain to value.
func (demo *Window) SetProgress(value int) {
	value = progress.Clamp(value)
	demo.control.SetValue(float64(value))
	demo.view.SetProgress(value)
}

// Reset jumps the curtain to value without animating.
func (demo *Window) Reset(value int) {
	value = progress.Clamp(value)
	demo.control.SetValue(float64(value))
	demo.view.SetProgressImmediately(value)
	demo.showProgress(value)
}

// SetOnProgress registers an extra observer of animated values.
func (demo *Window) SetOnProgress(handler func(int)) {
	demo.onProgress = handler
}

// SetOnAnimEnd registers an extra observer of completed transitions.
func (demo *Window) SetOnAnimEnd(handler func()) {
	demo.onAnimEnd = handler
}

func (demo *Window) handleRelease(value float64) {
	demo.view.SetProgress(int(value))
}

func (demo *Window) handleProgress(value int) {
	demo.showProgress(value)
	if demo.onProgress != nil {
		demo.onProgress(value)
	}
}

func (demo *Window) handleAnimEnd() {
	if demo.onAnimEnd != nil {
		demo.onAnimEnd()
	}
}

func (demo *Window) showProgress(value int) {
	demo.mirror.SetValue(float64(progress.MaxProgress - value))
	demo.progressLabel.Text = fmt.Sprintf("%d%%", value)
	demo.progressLabel.Refresh()
}

// demoLayout gives the curtain all space above the sliders.
type demoLayout struct{}

func (layout *demoLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	view := objects[0]
	sliders := objects[1]

	pad := size.Height * 0.03
	slidersSize := sliders.MinSize()
	viewHeight := size.Height - slidersSize.Height - pad*3
	if viewHeight < 0 {
		viewHeight = 0
	}
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	view.Move(fyne.NewPos(pad, pad))
	view.Resize(fyne.NewSize(availableWidth, viewHeight))

	sliders.Move(fyne.NewPos(pad, pad*2+viewHeight))
	sliders.Resize(fyne.NewSize(availableWidth, slidersSize.Height))
}

func (layout *demoLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	viewSize := objects[0].MinSize()
	slidersSize := objects[1].MinSize()
	width := viewSize.Width
	if slidersSize.Width > width {
		width = slidersSize.Width
	}
	return fyne.NewSize(width+20, viewSize.Height+slidersSize.Height+20)
}
