package tray

import (
	"fmt"

	"curtainview/internal/core/model"

	"fyne.io/fyne/v2"
)

const menuTitle = "CurtainView"

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen        func()
	OnClose       func()
	OnHalf        func()
	OnType        func(model.CurtainType)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        Host
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	typeItems   map[model.CurtainType]*fyne.MenuItem
	curtainType model.CurtainType
	menu        *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks, curtainType model.CurtainType) *Manager {
	manager := &Manager{
		host:        host,
		callbacks:   callbacks,
		curtainType: curtainType,
		typeItems:   make(map[model.CurtainType]*fyne.MenuItem),
	}

	manager.statusItem = fyne.NewMenuItem("Progress: 0%", nil)
	manager.statusItem.Disabled = true

	open := fyne.NewMenuItem("Open", func() {
		if manager.callbacks.OnOpen != nil {
			manager.callbacks.OnOpen()
		}
	})
	half := fyne.NewMenuItem("Half open", func() {
		if manager.callbacks.OnHalf != nil {
			manager.callbacks.OnHalf()
		}
	})
	closeItem := fyne.NewMenuItem("Close", func() {
		if manager.callbacks.OnClose != nil {
			manager.callbacks.OnClose()
		}
	})

	typeMenu := fyne.NewMenuItem("Side", nil)
	var typeEntries []*fyne.MenuItem
	for _, option := range []model.CurtainType{model.CurtainLeft, model.CurtainRight, model.CurtainBoth} {
		option := option
		item := fyne.NewMenuItem(option.String(), func() {
			manager.SetType(option)
			if manager.callbacks.OnType != nil {
				manager.callbacks.OnType(option)
			}
		})
		item.Checked = option == curtainType
		manager.typeItems[option] = item
		typeEntries = append(typeEntries, item)
	}
	typeMenu.ChildMenu = fyne.NewMenu("", typeEntries...)

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		open,
		half,
		closeItem,
		typeMenu,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
	manager.refreshMenu()

	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetProgress updates the status label.
func (manager *Manager) SetProgress(value int) {
	manager.statusItem.Label = fmt.Sprintf("Progress: %d%%", value)
	manager.refreshMenu()
}

// SetType moves the check mark to curtainType.
func (manager *Manager) SetType(curtainType model.CurtainType) {
	manager.curtainType = curtainType
	for option, item := range manager.typeItems {
		item.Checked = option == curtainType
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(manager.menu)
}
