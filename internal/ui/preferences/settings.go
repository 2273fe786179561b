package preferences

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"curtainview/internal/core/model"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor indicates a color string that is not #rgb or #rrggbb.
var ErrInvalidColor = errors.New("invalid color")

// Settings defines editable user preferences.
type Settings struct {
	CurtainType     model.CurtainType
	AnimDuration    time.Duration
	InitialProgress int

	SheetColor  string
	SheetAlpha  uint8
	BorderColor string
	BorderAlpha uint8

	SheetCount       int
	MinFoldWidthRate float64
	MaxArcHeight     float64
	BorderWidth      float64
}

// DefaultSettings returns the settings matching model.DefaultConfig.
func DefaultSettings() Settings {
	config := model.DefaultConfig()
	return Settings{
		CurtainType:      config.Type,
		AnimDuration:     config.AnimDuration,
		InitialProgress:  config.InitialProgress,
		SheetColor:       FormatHexColor(config.Style.SheetColor),
		SheetAlpha:       config.Style.SheetAlpha,
		BorderColor:      FormatHexColor(config.Style.BorderColor),
		BorderAlpha:      config.Style.BorderAlpha,
		SheetCount:       config.Style.SheetCount,
		MinFoldWidthRate: config.Style.MinFoldWidthRate,
		MaxArcHeight:     config.Style.MaxArcHeight,
		BorderWidth:      config.Style.BorderWidth,
	}
}

// CurtainConfig converts settings to a widget configuration.
func (settings Settings) CurtainConfig() (model.CurtainConfig, error) {
	config := model.DefaultConfig()
	config.Type = settings.CurtainType
	config.AnimDuration = settings.AnimDuration
	config.InitialProgress = settings.InitialProgress

	sheetColor, err := ParseHexColor(settings.SheetColor)
	if err != nil {
		return config, fmt.Errorf("sheet color: %w", err)
	}
	borderColor, err := ParseHexColor(settings.BorderColor)
	if err != nil {
		return config, fmt.Errorf("border color: %w", err)
	}

	config.Style.SheetColor = sheetColor
	config.Style.SheetAlpha = settings.SheetAlpha
	config.Style.BorderColor = borderColor
	config.Style.BorderAlpha = settings.BorderAlpha
	if settings.SheetCount > 0 {
		config.Style.SheetCount = model.ClampSheetCount(settings.SheetCount)
	}
	if ValidFoldWidthRate(settings.MinFoldWidthRate) {
		config.Style.MinFoldWidthRate = settings.MinFoldWidthRate
	}
	if settings.MaxArcHeight >= 0 {
		config.Style.MaxArcHeight = settings.MaxArcHeight
	}
	if settings.BorderWidth >= 0 {
		config.Style.BorderWidth = settings.BorderWidth
	}
	return config, nil
}

// ValidFoldWidthRate reports whether rate is a usable folded width fraction.
func ValidFoldWidthRate(rate float64) bool {
	return rate >= 0 && rate <= 1
}

// ParseHexColor parses #rgb or #rrggbb into an opaque color.
func ParseHexColor(value string) (color.NRGBA, error) {
	parsed, err := colorful.Hex(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, value, err)
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// FormatHexColor renders the RGB channels of c as #rrggbb.
func FormatHexColor(c color.Color) string {
	nrgba := model.WithAlpha(c, 0xFF)
	return colorful.Color{
		R: float64(nrgba.R) / 255,
		G: float64(nrgba.G) / 255,
		B: float64(nrgba.B) / 255,
	}.Hex()
}
