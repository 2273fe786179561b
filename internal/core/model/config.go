package model

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"
)

// ErrUnknownCurtainType indicates a curtain type name or index that is not defined.
var ErrUnknownCurtainType = errors.New("unknown curtain type")

// CurtainType selects which side the curtain sheets are anchored to.
type CurtainType int

const (
	CurtainLeft CurtainType = iota
	CurtainRight
	CurtainBoth
)

// String returns the configuration name of the type.
func (curtainType CurtainType) String() string {
	switch curtainType {
	case CurtainLeft:
		return "left"
	case CurtainRight:
		return "right"
	case CurtainBoth:
		return "both"
	default:
		return fmt.Sprintf("CurtainType(%d)", int(curtainType))
	}
}

// ParseCurtainType converts a configuration name into a CurtainType.
func ParseCurtainType(name string) (CurtainType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return CurtainLeft, nil
	case "right":
		return CurtainRight, nil
	case "both":
		return CurtainBoth, nil
	default:
		return CurtainLeft, fmt.Errorf("parse curtain type %q: %w", name, ErrUnknownCurtainType)
	}
}

// CurtainTypeFromIndex maps the attribute-style integer form (0 left, 1 right, 2 both).
func CurtainTypeFromIndex(index int) (CurtainType, error) {
	if index < int(CurtainLeft) || index > int(CurtainBoth) {
		return CurtainLeft, fmt.Errorf("curtain type index %d: %w", index, ErrUnknownCurtainType)
	}
	return CurtainType(index), nil
}

// MaxSheetCount bounds the number of sheets per group.
const MaxSheetCount = 100

// ClampSheetCount limits count to [0, MaxSheetCount].
func ClampSheetCount(count int) int {
	if count < 0 {
		return 0
	}
	if count > MaxSheetCount {
		return MaxSheetCount
	}
	return count
}

// Style holds the visual parameters of the curtain.
type Style struct {
	SheetColor  color.Color
	SheetAlpha  uint8
	BorderColor color.Color
	BorderAlpha uint8

	SheetCount       int
	MinFoldWidthRate float64
	MaxArcHeight     float64
	BorderWidth      float64
}

// CurtainConfig is read once when a curtain widget is constructed.
type CurtainConfig struct {
	Type            CurtainType
	AnimDuration    time.Duration
	InitialProgress int
	Style           Style
}

// DefaultStyle returns the stock curtain look.
func DefaultStyle() Style {
	return Style{
		SheetColor:       color.NRGBA{R: 0xF2, G: 0xE3, B: 0xC6, A: 0xFF},
		SheetAlpha:       0xCC,
		BorderColor:      color.NRGBA{R: 0x8A, G: 0x74, B: 0x4F, A: 0xFF},
		BorderAlpha:      0xFF,
		SheetCount:       6,
		MinFoldWidthRate: 0.2,
		MaxArcHeight:     5,
		BorderWidth:      1,
	}
}

// DefaultConfig returns the construction defaults.
func DefaultConfig() CurtainConfig {
	return CurtainConfig{
		Type:            CurtainLeft,
		AnimDuration:    time.Second,
		InitialProgress: 0,
		Style:           DefaultStyle(),
	}
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.Color, alpha uint8) color.NRGBA {
	if c == nil {
		return color.NRGBA{A: alpha}
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = alpha
	return nrgba
}
