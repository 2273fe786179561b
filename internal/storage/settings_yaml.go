package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"curtainview/internal/core/model"
	"curtainview/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	CurtainType      string   `yaml:"curtain_type"`
	AnimDurationMS   *int     `yaml:"anim_duration_ms,omitempty"`
	InitialProgress  *int     `yaml:"initial_progress,omitempty"`
	SheetColor       string   `yaml:"sheet_color"`
	SheetAlpha       *int     `yaml:"sheet_alpha,omitempty"`
	BorderColor      string   `yaml:"border_color"`
	BorderAlpha      *int     `yaml:"border_alpha,omitempty"`
	SheetCount       int      `yaml:"sheet_count"`
	MinFoldWidthRate *float64 `yaml:"min_fold_width_rate,omitempty"`
	MaxArcHeight     *float64 `yaml:"max_arc_height,omitempty"`
	BorderWidth      *float64 `yaml:"border_width,omitempty"`
}

// LoadSettings reads user preferences from YAML in the user config dir.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML in the user config dir.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads preferences from configPath. Fields that are missing
// or out of range keep their default values.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to configPath, creating its directory.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	durationMS := int(settings.AnimDuration / time.Millisecond)
	initialProgress := settings.InitialProgress
	sheetAlpha := int(settings.SheetAlpha)
	borderAlpha := int(settings.BorderAlpha)
	foldRate := settings.MinFoldWidthRate
	arcHeight := settings.MaxArcHeight
	borderWidth := settings.BorderWidth
	fileData := yamlSettings{
		CurtainType:      settings.CurtainType.String(),
		AnimDurationMS:   &durationMS,
		InitialProgress:  &initialProgress,
		SheetColor:       settings.SheetColor,
		SheetAlpha:       &sheetAlpha,
		BorderColor:      settings.BorderColor,
		BorderAlpha:      &borderAlpha,
		SheetCount:       settings.SheetCount,
		MinFoldWidthRate: &foldRate,
		MaxArcHeight:     &arcHeight,
		BorderWidth:      &borderWidth,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if curtainType, err := model.ParseCurtainType(fileData.CurtainType); err == nil {
		settings.CurtainType = curtainType
	}
	if fileData.AnimDurationMS != nil && *fileData.AnimDurationMS >= 0 {
		settings.AnimDuration = time.Duration(*fileData.AnimDurationMS) * time.Millisecond
	}
	if fileData.InitialProgress != nil && *fileData.InitialProgress >= 0 && *fileData.InitialProgress <= 100 {
		settings.InitialProgress = *fileData.InitialProgress
	}

	if _, err := preferences.ParseHexColor(fileData.SheetColor); err == nil {
		settings.SheetColor = fileData.SheetColor
	}
	if alpha, ok := validAlpha(fileData.SheetAlpha); ok {
		settings.SheetAlpha = alpha
	}
	if _, err := preferences.ParseHexColor(fileData.BorderColor); err == nil {
		settings.BorderColor = fileData.BorderColor
	}
	if alpha, ok := validAlpha(fileData.BorderAlpha); ok {
		settings.BorderAlpha = alpha
	}

	if fileData.SheetCount > 0 {
		settings.SheetCount = model.ClampSheetCount(fileData.SheetCount)
	}
	if fileData.MinFoldWidthRate != nil && preferences.ValidFoldWidthRate(*fileData.MinFoldWidthRate) {
		settings.MinFoldWidthRate = *fileData.MinFoldWidthRate
	}
	if value, ok := nonNegative(fileData.MaxArcHeight); ok {
		settings.MaxArcHeight = value
	}
	if value, ok := nonNegative(fileData.BorderWidth); ok {
		settings.BorderWidth = value
	}
}

func nonNegative(value *float64) (float64, bool) {
	if value == nil || *value < 0 || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return 0, false
	}
	return *value, true
}

func validAlpha(value *int) (uint8, bool) {
	if value == nil || *value < 0 || *value > 255 {
		return 0, false
	}
	return uint8(*value), true
}
