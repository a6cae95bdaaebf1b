package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// onShowSettings opens the settings dialog over the current config values
func (ui *RootUI) onShowSettings() {
	cfg, err := ui.cfg.Load()
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	folderEntry := widget.NewEntry()
	folderEntry.SetText(cfg.Downloads.Folder)

	qobuzIDEntry := widget.NewEntry()
	qobuzIDEntry.SetText(cfg.Qobuz.EmailOrUserID)

	qobuzSecretEntry := widget.NewPasswordEntry()
	qobuzSecretEntry.SetText(cfg.Qobuz.PasswordOrToken)

	deezerARLEntry := widget.NewPasswordEntry()
	deezerARLEntry.SetText(cfg.Deezer.ARL)

	items := []*widget.FormItem{
		widget.NewFormItem("Download folder", folderEntry),
		widget.NewFormItem("Qobuz email / user id", qobuzIDEntry),
		widget.NewFormItem("Qobuz password / token", qobuzSecretEntry),
		widget.NewFormItem("Deezer ARL", deezerARLEntry),
	}

	form := dialog.NewForm("Settings", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		ui.saveSettings(folderEntry.Text, qobuzIDEntry.Text, qobuzSecretEntry.Text, deezerARLEntry.Text)
	}, ui.window)
	form.Resize(fyne.NewSize(480, form.MinSize().Height))
	form.Show()
}

// saveSettings writes the dialog values back to the config file
func (ui *RootUI) saveSettings(folder, qobuzID, qobuzSecret, deezerARL string) {
	if err := ui.cfg.SetOutputFolder(folder); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if err := ui.cfg.SetQobuzCredentials(qobuzID, qobuzSecret); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if err := ui.cfg.SetDeezerARL(deezerARL); err != nil {
		dialog.ShowError(err, ui.window)
	}
}
