package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func (s *Sentinel) setupSystemTray() {
	s.updateSystemTrayMenu()
}

func (s *Sentinel) updateSystemTrayMenu() {
	desk, ok := s.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Status line at the top
	statusItem := fyne.NewMenuItem(s.monitoringStatus(), nil)
	statusItem.Disabled = true
	menuItems = append(menuItems, statusItem, fyne.NewMenuItemSeparator())

	// Recent notices section
	notices := s.recentNotices(5)
	if len(notices) > 0 {
		headerItem := fyne.NewMenuItem("Society Notices:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, notice := range notices {
			noticeText := fmt.Sprintf("  %s - %s",
				notice.PostedAt.Format("Jan 2"),
				truncateString(notice.Title, 35))

			noticeItem := fyne.NewMenuItem(noticeText, nil)
			noticeItem.Disabled = true
			menuItems = append(menuItems, noticeItem)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open SOS Panel", func() {
			s.showSOSWindow()
		}),
		fyne.NewMenuItem("Silence Siren", func() {
			s.alarm.StopAll()
			if s.sosWindow != nil {
				s.sosWindow.setAlarmActive(false)
			}
			s.updateSystemTrayMenu()
		}),
		fyne.NewMenuItem("Settings", func() {
			s.showConfigWindow()
		}),
		fyne.NewMenuItem("Check Now", func() {
			go s.syncNotices()
			s.startMonitoring()
		}),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
		s.quit()
	}))

	menu := fyne.NewMenu("SOS Sentinel", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.WarningIcon())
}

func (s *Sentinel) monitoringStatus() string {
	switch {
	case s.alarm.IsPlaying():
		return "SIREN SOUNDING"
	case s.poller != nil && s.poller.Running():
		return "Monitoring building " + s.config.BuildingID
	default:
		return "Monitoring off - configure the backend"
	}
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	return str[:maxLen-3] + "..."
}
