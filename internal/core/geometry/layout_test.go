package geometry

import (
	"math"
	"testing"

	"curtainview/internal/core/model"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"honnef.co/go/curve"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestEffectiveScale(t *testing.T) {
	for _, rate := range []float64{0, 0.15, 0.2, 0.5, 1} {
		if got := EffectiveScale(0, rate); math.Abs(got-rate*100) > 1e-9 {
			t.Errorf("rate %g: scale at 0 = %g, want %g", rate, got, rate*100)
		}
		if got := EffectiveScale(100, rate); math.Abs(got-100) > 1e-9 {
			t.Errorf("rate %g: scale at 100 = %g, want 100", rate, got)
		}
		prev := EffectiveScale(0, rate)
		for p := 1; p <= 100; p++ {
			cur := EffectiveScale(p, rate)
			if cur < prev {
				t.Fatalf("rate %g: scale decreased at %d: %g < %g", rate, p, cur, prev)
			}
			prev = cur
		}
	}
}

func TestLayoutConcreteScenario(t *testing.T) {
	frame := Layout(model.CurtainLeft, 0, 400, 300, Params{SheetCount: 4, MinFoldWidthRate: 0.15, MaxArcHeight: 5})

	if !cmp.Equal(frame.Scale, 15.0, approx) {
		t.Errorf("scale = %g, want 15", frame.Scale)
	}
	if !cmp.Equal(frame.StripWidth, 60.0, approx) {
		t.Errorf("strip width = %g, want 60", frame.StripWidth)
	}
	if !cmp.Equal(frame.SheetWidth, 15.0, approx) {
		t.Errorf("sheet width = %g, want 15", frame.SheetWidth)
	}
	if len(frame.Sheets) != 4 {
		t.Fatalf("got %d sheets, want 4", len(frame.Sheets))
	}

	type span struct{ Left, Right float64 }
	got := []span{{frame.Sheets[0].Left, frame.Sheets[0].Right}, {frame.Sheets[3].Left, frame.Sheets[3].Right}}
	want := []span{{0, 15}, {45, 60}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("sheet spans mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutSheetEdges(t *testing.T) {
	params := Params{SheetCount: 6, MinFoldWidthRate: 0.2, MaxArcHeight: 5}
	for _, progress := range []int{0, 13, 50, 99, 100} {
		frame := Layout(model.CurtainLeft, progress, 640, 480, params)
		for i, sheet := range frame.Sheets {
			wantLeft := float64(i) * frame.SheetWidth
			wantRight := float64(i+1) * frame.SheetWidth
			if !cmp.Equal(sheet.Left, wantLeft, approx) || !cmp.Equal(sheet.Right, wantRight, approx) {
				t.Errorf("progress %d sheet %d: edges [%g,%g], want [%g,%g]", progress, i, sheet.Left, sheet.Right, wantLeft, wantRight)
			}
			box := sheet.Path.BoundingBox()
			if !cmp.Equal(box.MinX(), wantLeft, approx) || !cmp.Equal(box.MaxX(), wantRight, approx) {
				t.Errorf("progress %d sheet %d: path spans [%g,%g], want [%g,%g]", progress, i, box.MinX(), box.MaxX(), wantLeft, wantRight)
			}
			if !cmp.Equal(box.MinY(), 0.0, approx) || !cmp.Equal(box.MaxY(), frame.Height, approx) {
				t.Errorf("progress %d sheet %d: path height [%g,%g], want [0,%g]", progress, i, box.MinY(), box.MaxY(), frame.Height)
			}
		}
	}
}

func TestLayoutSheetPathShape(t *testing.T) {
	frame := Layout(model.CurtainLeft, 100, 120, 102, Params{SheetCount: 2, MinFoldWidthRate: 0.2, MaxArcHeight: 5})
	want := curve.BezPath{
		curve.MoveTo(curve.Pt(60, 100)),
		curve.LineTo(curve.Pt(60, 0)),
		curve.LineTo(curve.Pt(120, 0)),
		curve.LineTo(curve.Pt(120, 95)),
		curve.QuadTo(curve.Pt(90, 96), curve.Pt(60, 100)),
		curve.ClosePath(),
	}
	if diff := cmp.Diff(want, frame.Sheets[1].Path, approx); diff != "" {
		t.Errorf("sheet path mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutBothSplitsStrip(t *testing.T) {
	params := Params{SheetCount: 4, MinFoldWidthRate: 0.15, MaxArcHeight: 5}
	for _, progress := range []int{0, 40, 100} {
		single := Layout(model.CurtainLeft, progress, 400, 300, params)
		both := Layout(model.CurtainBoth, progress, 400, 300, params)

		if len(both.Sheets) != 2*params.SheetCount {
			t.Fatalf("got %d sheets, want %d", len(both.Sheets), 2*params.SheetCount)
		}
		var leftTotal, rightTotal float64
		for _, sheet := range both.Sheets {
			width := sheet.Right - sheet.Left
			if sheet.Group == GroupLeft {
				leftTotal += width
			} else {
				rightTotal += width
			}
		}
		if !cmp.Equal(leftTotal, rightTotal, approx) {
			t.Errorf("progress %d: groups differ, left %g right %g", progress, leftTotal, rightTotal)
		}
		if !cmp.Equal(leftTotal+rightTotal, single.StripWidth, approx) {
			t.Errorf("progress %d: combined width %g, want %g", progress, leftTotal+rightTotal, single.StripWidth)
		}
	}
}

func TestLayoutBothRightGroupAnchoredToEdge(t *testing.T) {
	frame := Layout(model.CurtainBoth, 0, 400, 300, Params{SheetCount: 4, MinFoldWidthRate: 0.15, MaxArcHeight: 5})
	for _, sheet := range frame.Sheets {
		if sheet.Group != GroupRight {
			continue
		}
		wantRight := 400 - float64(sheet.Index)*frame.SheetWidth
		wantLeft := 400 - float64(sheet.Index+1)*frame.SheetWidth
		if !cmp.Equal(sheet.Left, wantLeft, approx) || !cmp.Equal(sheet.Right, wantRight, approx) {
			t.Errorf("sheet %d: edges [%g,%g], want [%g,%g]", sheet.Index, sheet.Left, sheet.Right, wantLeft, wantRight)
		}
		box := sheet.Path.BoundingBox()
		if !cmp.Equal(box.MinX(), wantLeft, approx) || !cmp.Equal(box.MaxX(), wantRight, approx) {
			t.Errorf("sheet %d: path spans [%g,%g], want [%g,%g]", sheet.Index, box.MinX(), box.MaxX(), wantLeft, wantRight)
		}
	}
}

func TestLayoutRightMirrorsLeft(t *testing.T) {
	params := Params{SheetCount: 3, MinFoldWidthRate: 0.2, MaxArcHeight: 5}
	left := Layout(model.CurtainLeft, 35, 300, 200, params)
	right := Layout(model.CurtainRight, 35, 300, 200, params)

	for i := range left.Sheets {
		mirrored := left.Sheets[i].Path.Transform(Mirror(300))
		if diff := cmp.Diff(mirrored, right.Sheets[i].Path, approx); diff != "" {
			t.Errorf("sheet %d not mirrored (-want +got):\n%s", i, diff)
		}
		if !cmp.Equal(right.Sheets[i].Right, 300-left.Sheets[i].Left, approx) {
			t.Errorf("sheet %d: right edge %g, want %g", i, right.Sheets[i].Right, 300-left.Sheets[i].Left)
		}
	}
}

func TestArcHeightClamped(t *testing.T) {
	frame := Layout(model.CurtainLeft, 50, 200, 30, Params{SheetCount: 2, MinFoldWidthRate: 0.2, MaxArcHeight: 50})
	if limit := 0.1 * frame.Height; frame.ArcHeight > limit+1e-9 {
		t.Errorf("arc height %g exceeds %g", frame.ArcHeight, limit)
	}
	if !cmp.Equal(frame.ArcHeight, 2.8, approx) {
		t.Errorf("arc height = %g, want 2.8", frame.ArcHeight)
	}

	frame = Layout(model.CurtainLeft, 50, 200, 1000, Params{SheetCount: 2, MinFoldWidthRate: 0.2, MaxArcHeight: 5})
	if !cmp.Equal(frame.ArcHeight, 5.0, approx) {
		t.Errorf("arc height = %g, want 5", frame.ArcHeight)
	}
}

func TestLayoutDegenerateSizes(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		params        Params
		wantSheets    int
	}{
		{name: "unlaid out", width: 0, height: 0, params: Params{SheetCount: 6, MinFoldWidthRate: 0.2, MaxArcHeight: 5}, wantSheets: 6},
		{name: "shorter than inset", width: 100, height: 1, params: Params{SheetCount: 2, MinFoldWidthRate: 0.2, MaxArcHeight: 5}, wantSheets: 2},
		{name: "no sheets", width: 100, height: 100, params: Params{SheetCount: 0, MinFoldWidthRate: 0.2, MaxArcHeight: 5}, wantSheets: 0},
		{name: "negative width", width: -10, height: 100, params: Params{SheetCount: 2, MinFoldWidthRate: 0.2, MaxArcHeight: 5}, wantSheets: 2},
		{name: "huge sheet count", width: 100, height: 100, params: Params{SheetCount: 2000000000, MinFoldWidthRate: 0.2, MaxArcHeight: 5}, wantSheets: model.MaxSheetCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, curtainType := range []model.CurtainType{model.CurtainLeft, model.CurtainRight, model.CurtainBoth} {
				frame := Layout(curtainType, 50, tt.width, tt.height, tt.params)
				want := tt.wantSheets
				if curtainType == model.CurtainBoth {
					want *= 2
				}
				if len(frame.Sheets) != want {
					t.Fatalf("%v: got %d sheets, want %d", curtainType, len(frame.Sheets), want)
				}
				for _, sheet := range frame.Sheets {
					if sheet.Path.IsNaN() || sheet.Path.IsInf() {
						t.Fatalf("%v: sheet %d has non-finite geometry", curtainType, sheet.Index)
					}
				}
				if frame.Height < 0 {
					t.Errorf("%v: negative height %g", curtainType, frame.Height)
				}
			}
		})
	}
}
