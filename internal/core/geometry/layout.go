package geometry

import (
	"math"

	"curtainview/internal/core/model"

	"honnef.co/go/curve"
)

const (
	// BorderInset is taken off the container height to leave room for the stroke.
	BorderInset = 2.0
	// MinCurveDepth keeps the scallop control point off the bottom edge.
	MinCurveDepth = 4.0
)

const (
	arcHeightRatio  = 0.1
	curveDepthRatio = 0.01
)

// Params are the style values that shape the geometry.
type Params struct {
	SheetCount       int
	MinFoldWidthRate float64
	MaxArcHeight     float64
}

// ParamsFromStyle extracts the geometric part of a style.
func ParamsFromStyle(style model.Style) Params {
	return Params{
		SheetCount:       style.SheetCount,
		MinFoldWidthRate: style.MinFoldWidthRate,
		MaxArcHeight:     style.MaxArcHeight,
	}
}

// Group tells which anchored group a sheet belongs to.
type Group int

const (
	GroupLeft Group = iota
	GroupRight
)

// Sheet is one fabric strip. Left and Right are its vertical edges in
// container coordinates, Path is the closed outline to fill and stroke.
type Sheet struct {
	Index int
	Group Group
	Left  float64
	Right float64
	Path  curve.BezPath
}

// Frame is the full geometry of one redraw.
type Frame struct {
	Width      float64
	Height     float64
	Scale      float64
	StripWidth float64
	SheetWidth float64
	ArcHeight  float64
	Sheets     []Sheet
}

// EffectiveScale maps progress onto [minFoldWidthRate*100, 100] so the curtain
// never collapses to nothing.
func EffectiveScale(progress int, minFoldWidthRate float64) float64 {
	return minFoldWidthRate*100 + float64(progress)*(1-minFoldWidthRate)
}

// ArcHeight returns the scallop height for a drawable height, capped at a
// tenth of that height.
func ArcHeight(maxArcHeight, height float64) float64 {
	return math.Min(maxArcHeight, height*arcHeightRatio)
}

// Layout computes the sheet outlines for a curtain of the given type and
// progress inside a width x height container. Degenerate sizes produce
// degenerate (zero-extent) sheets rather than failing.
func Layout(curtainType model.CurtainType, progress int, width, height float64, params Params) Frame {
	width = math.Max(width, 0)
	drawHeight := math.Max(height-BorderInset, 0)

	scale := EffectiveScale(progress, params.MinFoldWidthRate)
	strip := scale * width / 100
	frame := Frame{
		Width:      width,
		Height:     drawHeight,
		Scale:      scale,
		StripWidth: strip,
		ArcHeight:  ArcHeight(params.MaxArcHeight, drawHeight),
	}
	sheetCount := model.ClampSheetCount(params.SheetCount)
	if sheetCount == 0 {
		return frame
	}

	switch curtainType {
	case model.CurtainBoth:
		frame.SheetWidth = strip / float64(2*sheetCount)
		frame.Sheets = make([]Sheet, 0, 2*sheetCount)
		for i := 0; i < sheetCount; i++ {
			frame.Sheets = append(frame.Sheets, frame.rightAnchored(i), frame.leftAnchored(i))
		}
	case model.CurtainRight:
		frame.SheetWidth = strip / float64(sheetCount)
		frame.Sheets = make([]Sheet, 0, sheetCount)
		for i := 0; i < sheetCount; i++ {
			frame.Sheets = append(frame.Sheets, frame.rightAnchored(i))
		}
	default:
		frame.SheetWidth = strip / float64(sheetCount)
		frame.Sheets = make([]Sheet, 0, sheetCount)
		for i := 0; i < sheetCount; i++ {
			frame.Sheets = append(frame.Sheets, frame.leftAnchored(i))
		}
	}
	return frame
}

// Mirror returns the transform reflecting x about the vertical center line of
// a container of the given width.
func Mirror(width float64) curve.Affine {
	return curve.FlipX.ThenTranslate(curve.Vec(width, 0))
}

func (frame Frame) leftAnchored(index int) Sheet {
	left := float64(index) * frame.SheetWidth
	right := float64(index+1) * frame.SheetWidth
	return Sheet{
		Index: index,
		Group: GroupLeft,
		Left:  left,
		Right: right,
		Path:  frame.sheetPath(left, right),
	}
}

// rightAnchored is leftAnchored with its coordinates mirrored, so edges land
// on width - i*sheetWidth and width - (i+1)*sheetWidth.
func (frame Frame) rightAnchored(index int) Sheet {
	sheet := frame.leftAnchored(index)
	sheet.Group = GroupRight
	sheet.Path = sheet.Path.Transform(Mirror(frame.Width))
	sheet.Left, sheet.Right = frame.Width-sheet.Right, frame.Width-sheet.Left
	return sheet
}

// sheetPath outlines one strip: up the left edge, across the top, down the
// right edge to the arc start, then one quadratic back to the bottom-left.
func (frame Frame) sheetPath(left, right float64) curve.BezPath {
	bottom := frame.Height
	arcY := bottom - frame.ArcHeight
	control := curve.Pt((left+right)/2, bottom-math.Max(bottom*curveDepthRatio, MinCurveDepth))

	var path curve.BezPath
	path.MoveTo(curve.Pt(left, bottom))
	path.LineTo(curve.Pt(left, 0))
	path.LineTo(curve.Pt(right, 0))
	path.LineTo(curve.Pt(right, arcY))
	path.QuadTo(control, curve.Pt(left, bottom))
	path.ClosePath()
	return path
}
