package ui

import (
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/symmetry-wiki/symmetry-desktop/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	languageSelect *widget.Select
	backendLabel   *widget.Label
	languageCodes  []string
}

// NewSettingsDialog creates a new settings dialog. The backend URL is shown
// read-only; it comes from the resolved app config.
func NewSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization,
	backendURL string, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI(backendURL)
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization,
	backendURL string, onSaved func()) {
	NewSettingsDialog(window, settings, localization, backendURL, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI(backendURL string) {
	languageLabels := sd.settings.GetLanguageOptions()
	sd.languageCodes = slices.Sorted(maps.Keys(languageLabels))

	options := make([]string, 0, len(sd.languageCodes))
	for _, code := range sd.languageCodes {
		options = append(options, languageLabels[code])
	}
	sd.languageSelect = widget.NewSelect(options, nil)

	sd.backendLabel = widget.NewLabel(backendURL)
	sd.backendLabel.Selectable = true

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyInterfaceLanguage)+":"),
		sd.languageSelect,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyBackendURL)+":"),
		sd.backendLabel,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	current := sd.settings.GetLanguage()
	if label, ok := sd.settings.GetLanguageOptions()[current]; ok {
		sd.languageSelect.SetSelected(label)
	}
}

// selectedLanguageCode maps the selected label back to its language code
func (sd *SettingsDialog) selectedLanguageCode() string {
	index := sd.languageSelect.SelectedIndex()
	if index < 0 || index >= len(sd.languageCodes) {
		return ""
	}
	return sd.languageCodes[index]
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code := sd.selectedLanguageCode(); code != "" {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
