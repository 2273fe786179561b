package curtain

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"curtainview/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func newTestView(t *testing.T, curtainType model.CurtainType) *CurtainView {
	t.Helper()
	test.NewTempApp(t)
	config := model.DefaultConfig()
	config.Type = curtainType
	view := NewCurtainView(config)
	view.Resize(fyne.NewSize(400, 300))
	return view
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestSettersChain(t *testing.T) {
	view := newTestView(t, model.CurtainLeft)
	sheet := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	border := color.NRGBA{R: 40, G: 50, B: 60, A: 255}

	got := view.SetType(model.CurtainBoth).
		SetAnimDuration(250 * time.Millisecond).
		SetSheetColor(sheet, 100).
		SetBorderColor(border, 200).
		SetOnProgressChange(func(int) {}).
		SetOnAnimEnd(func() {})

	if got != view {
		t.Fatal("setters do not return the receiver")
	}
	if view.Type() != model.CurtainBoth {
		t.Errorf("type = %v, want both", view.Type())
	}
	style := view.Style()
	if style.SheetColor != color.Color(sheet) || style.SheetAlpha != 100 {
		t.Errorf("sheet style = %v/%d", style.SheetColor, style.SheetAlpha)
	}
	if style.BorderColor != color.Color(border) || style.BorderAlpha != 200 {
		t.Errorf("border style = %v/%d", style.BorderColor, style.BorderAlpha)
	}
}

func TestSetProgressImmediately(t *testing.T) {
	view := newTestView(t, model.CurtainLeft)
	calls := 0
	view.SetOnProgressChange(func(int) { calls++ }).SetOnAnimEnd(func() { calls++ })

	view.SetProgressImmediately(64)

	if got := view.Progress(); got != 64 {
		t.Errorf("progress = %d, want 64", got)
	}
	if calls != 0 {
		t.Errorf("callbacks fired %d times", calls)
	}
	if view.Animating() {
		t.Error("view reports a running transition")
	}
}

func TestSetProgressZeroDuration(t *testing.T) {
	view := newTestView(t, model.CurtainLeft)
	var values []int
	ends := 0
	view.SetAnimDuration(0).
		SetOnProgressChange(func(value int) { values = append(values, value) }).
		SetOnAnimEnd(func() { ends++ })

	view.SetProgress(70)

	if got := view.Progress(); got != 70 {
		t.Errorf("progress = %d, want 70", got)
	}
	if len(values) != 1 || values[0] != 70 {
		t.Errorf("values = %v, want [70]", values)
	}
	if ends != 1 {
		t.Errorf("end fired %d times, want 1", ends)
	}
}

func TestDetachSilencesCallbacks(t *testing.T) {
	view := newTestView(t, model.CurtainLeft)
	calls := 0
	view.SetAnimDuration(0).SetOnProgressChange(func(int) { calls++ }).SetOnAnimEnd(func() { calls++ })

	view.Detach()
	view.SetProgress(30)

	if calls != 0 {
		t.Errorf("callbacks fired %d times after detach", calls)
	}
	if got := view.Progress(); got != 30 {
		t.Errorf("progress = %d, want 30", got)
	}
}

func TestRecreatedRendererKeepsCallbacks(t *testing.T) {
	view := newTestView(t, model.CurtainLeft)
	var values []int
	ends := 0
	view.SetAnimDuration(0).
		SetOnProgressChange(func(value int) { values = append(values, value) }).
		SetOnAnimEnd(func() { ends++ })

	view.CreateRenderer().Destroy()
	view.CreateRenderer()
	view.SetProgress(80)

	if len(values) != 1 || values[0] != 80 {
		t.Errorf("values = %v, want [80]", values)
	}
	if ends != 1 {
		t.Errorf("end fired %d times, want 1", ends)
	}
}

func TestRenderAnchoring(t *testing.T) {
	tests := []struct {
		curtainType model.CurtainType
		filled      []image.Point
		empty       []image.Point
	}{
		{
			curtainType: model.CurtainLeft,
			filled:      []image.Point{{X: 33, Y: 150}},
			empty:       []image.Point{{X: 200, Y: 150}, {X: 366, Y: 150}},
		},
		{
			curtainType: model.CurtainRight,
			filled:      []image.Point{{X: 366, Y: 150}},
			empty:       []image.Point{{X: 33, Y: 150}, {X: 200, Y: 150}},
		},
		{
			curtainType: model.CurtainBoth,
			filled:      []image.Point{{X: 17, Y: 150}, {X: 383, Y: 150}},
			empty:       []image.Point{{X: 200, Y: 150}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.curtainType.String(), func(t *testing.T) {
			view := newTestView(t, tt.curtainType)
			img := view.Render(400, 300)

			if got := img.Bounds().Size(); got != image.Pt(400, 300) {
				t.Fatalf("image size = %v", got)
			}
			for _, pt := range tt.filled {
				if alphaAt(img, pt.X, pt.Y) == 0 {
					t.Errorf("pixel %v is empty, want sheet", pt)
				}
			}
			for _, pt := range tt.empty {
				if a := alphaAt(img, pt.X, pt.Y); a != 0 {
					t.Errorf("pixel %v has alpha %d, want empty", pt, a)
				}
			}
		})
	}
}

func TestRenderFullyOpenCoversWidth(t *testing.T) {
	view := newTestView(t, model.CurtainLeft)
	view.SetProgressImmediately(100)
	img := view.Render(400, 300)

	for _, x := range []int{5, 200, 390} {
		if alphaAt(img, x, 150) == 0 {
			t.Errorf("pixel (%d,150) is empty at full progress", x)
		}
	}
}

func TestRenderDegenerateSize(t *testing.T) {
	test.NewTempApp(t)
	view := NewCurtainView(model.DefaultConfig())

	img := view.Render(0, 0)
	if !img.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", img.Bounds())
	}
	frame := view.Frame(0, 0)
	if len(frame.Sheets) != model.DefaultStyle().SheetCount {
		t.Errorf("got %d sheets, want %d", len(frame.Sheets), model.DefaultStyle().SheetCount)
	}
}

func TestNewCurtainViewWithAttributes(t *testing.T) {
	test.NewTempApp(t)

	view, err := NewCurtainViewWithAttributes(1, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Type() != model.CurtainRight {
		t.Errorf("type = %v, want right", view.Type())
	}

	if _, err := NewCurtainViewWithAttributes(7, 300); !errors.Is(err, model.ErrUnknownCurtainType) {
		t.Errorf("err = %v, want ErrUnknownCurtainType", err)
	}
}
