package main

import (
	"log"

	"curtainview/internal/core/model"
	"curtainview/internal/storage"
	"curtainview/internal/ui/curtain"
	"curtainview/internal/ui/demo"
	"curtainview/internal/ui/preferences"
	"curtainview/internal/ui/tray"
	"curtainview/resources"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "CurtainView"

func main() {
	fyneApp := app.NewWithID("com.curtainview.demo")
	fyneApp.SetIcon(resources.AppIcon())

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	config, err := settings.CurtainConfig()
	if err != nil {
		log.Printf("settings: %v", err)
		config = model.DefaultConfig()
	}

	view := curtain.NewCurtainView(config)
	demoWindow := demo.New(fyneApp, view)

	var trayManager *tray.Manager
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		updatedConfig, err := updated.CurtainConfig()
		if err != nil {
			log.Printf("settings: %v", err)
			return
		}
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v", err)
		}
		view.SetType(updatedConfig.Type).
			SetAnimDuration(updatedConfig.AnimDuration).
			SetStyle(updatedConfig.Style)
		if trayManager != nil {
			trayManager.SetType(updatedConfig.Type)
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnOpen: func() {
				demoWindow.SetProgress(100)
			},
			OnClose: func() {
				demoWindow.SetProgress(0)
			},
			OnHalf: func() {
				demoWindow.SetProgress(50)
			},
			OnType: func(curtainType model.CurtainType) {
				view.SetType(curtainType)
				settings.CurtainType = curtainType
				prefsWindow.UpdateSettings(settings)
				if err := storage.SaveSettings(appName, settings); err != nil {
					log.Printf("save settings: %v", err)
				}
			},
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: func() {
				view.Detach()
				fyneApp.Quit()
			},
		}, config.Type)
		trayManager.SetProgress(view.Progress())
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
		demoWindow.HideOnClose()
		demoWindow.SetOnAnimEnd(func() {
			trayManager.SetProgress(view.Progress())
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	demoWindow.Show()
	fyneApp.Run()
}
