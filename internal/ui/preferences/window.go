package preferences

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"curtainview/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var typeOptions = []string{
	model.CurtainLeft.String(),
	model.CurtainRight.String(),
	model.CurtainBoth.String(),
}

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	onCancel    func()
	curtainType *widget.RadioGroup
	duration    *widget.Entry
	sheetCount  *widget.Entry
	sheetColor  *widget.Entry
	borderColor *widget.Entry
	arcHeight   *widget.Entry
	borderWidth *widget.Entry
	sheetAlpha  *widget.Slider
	foldRate    *widget.Slider
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Curtain Settings")

	curtainType := widget.NewRadioGroup(typeOptions, nil)
	curtainType.Horizontal = true
	duration := widget.NewEntry()
	sheetCount := widget.NewEntry()
	sheetColor := widget.NewEntry()
	borderColor := widget.NewEntry()
	arcHeight := widget.NewEntry()
	borderWidth := widget.NewEntry()

	sheetAlpha := widget.NewSlider(0, 255)
	sheetAlpha.Step = 1

	foldRate := widget.NewSlider(0, 0.9)
	foldRate.Step = 0.05

	form := container.NewVBox(
		widget.NewLabelWithStyle("Curtain", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Side"), curtainType),
		container.NewHBox(widget.NewLabel("Animation duration"), duration, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Sheets"), sheetCount),
		widget.NewLabel("Folded width"),
		foldRate,
		container.NewHBox(widget.NewLabel("Scallop height"), arcHeight),
		container.NewHBox(widget.NewLabel("Border width"), borderWidth),
		widget.NewLabelWithStyle("Colors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Sheet"), sheetColor),
		widget.NewLabel("Sheet opacity"),
		sheetAlpha,
		container.NewHBox(widget.NewLabel("Border"), borderColor),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 540))

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		curtainType: curtainType,
		duration:    duration,
		sheetCount:  sheetCount,
		sheetColor:  sheetColor,
		borderColor: borderColor,
		arcHeight:   arcHeight,
		borderWidth: borderWidth,
		sheetAlpha:  sheetAlpha,
		foldRate:    foldRate,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler run when editing is abandoned.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.curtainType.SetSelected(settings.CurtainType.String())
	prefs.duration.SetText(fmt.Sprintf("%d", settings.AnimDuration.Milliseconds()))
	prefs.sheetCount.SetText(fmt.Sprintf("%d", settings.SheetCount))
	prefs.sheetColor.SetText(settings.SheetColor)
	prefs.borderColor.SetText(settings.BorderColor)
	prefs.arcHeight.SetText(strconv.FormatFloat(settings.MaxArcHeight, 'g', -1, 64))
	prefs.borderWidth.SetText(strconv.FormatFloat(settings.BorderWidth, 'g', -1, 64))
	prefs.sheetAlpha.SetValue(float64(settings.SheetAlpha))
	prefs.foldRate.SetValue(settings.MinFoldWidthRate)
}

// Settings returns the values currently entered in the form, keeping the last
// saved value for any field that does not parse.
func (prefs *Window) Settings() Settings {
	settings := prefs.settings

	if curtainType, err := model.ParseCurtainType(prefs.curtainType.Selected); err == nil {
		settings.CurtainType = curtainType
	}
	if millis, ok := parseNonNegativeInt(prefs.duration.Text); ok {
		settings.AnimDuration = time.Duration(millis) * time.Millisecond
	}
	if count, ok := parseNonNegativeInt(prefs.sheetCount.Text); ok && count > 0 {
		settings.SheetCount = model.ClampSheetCount(count)
	}
	if _, err := ParseHexColor(prefs.sheetColor.Text); err == nil {
		settings.SheetColor = prefs.sheetColor.Text
	}
	if _, err := ParseHexColor(prefs.borderColor.Text); err == nil {
		settings.BorderColor = prefs.borderColor.Text
	}
	if height, ok := parseNonNegativeFloat(prefs.arcHeight.Text); ok {
		settings.MaxArcHeight = height
	}
	if width, ok := parseNonNegativeFloat(prefs.borderWidth.Text); ok {
		settings.BorderWidth = width
	}
	settings.SheetAlpha = uint8(prefs.sheetAlpha.Value)
	settings.MinFoldWidthRate = prefs.foldRate.Value
	return settings
}

func (prefs *Window) handleSave() {
	settings := prefs.Settings()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}
