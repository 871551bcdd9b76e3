package main

import (
	"errors"
	"log"
	"os/exec"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var errInvalidServerURL = errors.New("server URL must be an http(s) address")

func (cw *ConfigWindow) buildGeneralTab() fyne.CanvasObject {
	cw.serverEntry = widget.NewEntry()
	cw.serverEntry.SetPlaceHolder("https://society.example.com")
	cw.serverEntry.SetText(cw.config.ServerURL)
	cw.serverEntry.OnChanged = func(string) { cw.markChanged() }

	cw.tokenEntry = widget.NewPasswordEntry()
	cw.tokenEntry.SetText(cw.config.APIToken)
	cw.tokenEntry.OnChanged = func(string) { cw.markChanged() }

	cw.buildingEntry = widget.NewEntry()
	cw.buildingEntry.SetPlaceHolder("B1")
	cw.buildingEntry.SetText(cw.config.BuildingID)
	cw.buildingEntry.OnChanged = func(string) { cw.markChanged() }

	cw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", func(checked bool) {
		cw.markChanged()
	})
	cw.autoStartCheck.SetChecked(cw.config.AutoStart)

	// Storage root URI display (read-only); custom alarm tones go here
	storageURIEntry := widget.NewEntry()
	storageURIEntry.SetText(cw.app.Storage().RootURI().String())
	storageURIEntry.Disable()

	openStorageButton := widget.NewButton("Open in File Manager", func() {
		path := cw.app.Storage().RootURI().Path()
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "windows":
			cmd = exec.Command("explorer", path)
		case "linux":
			cmd = exec.Command("xdg-open", path)
		default:
			log.Printf("Unsupported OS: %s", runtime.GOOS)
			return
		}

		if err := cmd.Start(); err != nil {
			log.Printf("Error opening file manager: %v", err)
		}
	})

	serverHelp := widget.NewLabel("Base URL of your society's backend")
	serverHelp.Importance = widget.MediumImportance

	buildingHelp := widget.NewLabel("Alerts raised anywhere in this building will sound here")
	buildingHelp.Importance = widget.MediumImportance

	storageHelp := widget.NewLabel("Drop medical.wav / fire.wav here to replace the built-in sirens")
	storageHelp.Wrapping = fyne.TextWrapWord
	storageHelp.Importance = widget.MediumImportance

	storageContainer := container.NewBorder(nil, container.NewPadded(openStorageButton), nil, nil, storageURIEntry)

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Server URL:"), serverHelp),
		cw.serverEntry,

		widget.NewLabel("API Token:"),
		cw.tokenEntry,

		container.NewVBox(widget.NewLabel("Building ID:"), buildingHelp),
		cw.buildingEntry,

		widget.NewLabel("Auto Start:"),
		cw.autoStartCheck,

		container.NewVBox(widget.NewLabel("Storage Location:"), storageHelp),
		storageContainer,
	)

	return container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		container.NewPadded(form),
	)
}
