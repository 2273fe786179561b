package curtain

import (
	"image"

	"curtainview/internal/core/geometry"
	"curtainview/internal/core/model"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"
)

const miterLimit = 4

// rasterize fills and then strokes every sheet of frame into a fresh image of
// the given pixel size. transform maps frame units to pixels.
func rasterize(frame geometry.Frame, pixelWidth, pixelHeight int, style model.Style, transform curve.Affine) *image.RGBA {
	if pixelWidth < 0 {
		pixelWidth = 0
	}
	if pixelHeight < 0 {
		pixelHeight = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, pixelWidth, pixelHeight))
	if pixelWidth == 0 || pixelHeight == 0 || len(frame.Sheets) == 0 {
		return img
	}

	scanner := rasterx.NewScannerGV(pixelWidth, pixelHeight, img, img.Bounds())
	filler := rasterx.NewFiller(pixelWidth, pixelHeight, scanner)
	stroker := rasterx.NewStroker(pixelWidth, pixelHeight, scanner)

	strokeWidth := style.BorderWidth * transform.N0
	if strokeWidth < 0 {
		strokeWidth = -strokeWidth
	}
	stroker.SetStroke(toFixed(strokeWidth), toFixed(miterLimit), rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.MiterClip)

	sheetColor := model.WithAlpha(style.SheetColor, style.SheetAlpha)
	borderColor := model.WithAlpha(style.BorderColor, style.BorderAlpha)

	for _, sheet := range frame.Sheets {
		path := sheet.Path.Transform(transform)

		if sheetColor.A > 0 {
			filler.Clear()
			addPath(filler, path)
			filler.SetColor(sheetColor)
			filler.Draw()
		}

		if borderColor.A > 0 && strokeWidth > 0 {
			stroker.Clear()
			addPath(stroker, path)
			stroker.SetColor(borderColor)
			stroker.Draw()
		}
	}
	return img
}

// addPath replays a Bézier path into a rasterx adder.
func addPath(adder rasterx.Adder, path curve.BezPath) {
	open := false
	for _, el := range path {
		switch el.Kind {
		case curve.MoveToKind:
			if open {
				adder.Stop(false)
			}
			adder.Start(toFixedPoint(el.P0))
			open = true
		case curve.LineToKind:
			adder.Line(toFixedPoint(el.P0))
		case curve.QuadToKind:
			adder.QuadBezier(toFixedPoint(el.P0), toFixedPoint(el.P1))
		case curve.CubicToKind:
			adder.CubeBezier(toFixedPoint(el.P0), toFixedPoint(el.P1), toFixedPoint(el.P2))
		case curve.ClosePathKind:
			if open {
				adder.Stop(true)
				open = false
			}
		}
	}
	if open {
		adder.Stop(false)
	}
}

func toFixedPoint(pt curve.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(pt.X, pt.Y)
}

func toFixed(value float64) fixed.Int26_6 {
	return fixed.Int26_6(value * 64)
}
