package ui

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/symmetry-wiki/symmetry-desktop/internal/config"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
	"github.com/symmetry-wiki/symmetry-desktop/internal/section"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	logger       *slog.Logger
	backendURL   string

	ctx    context.Context
	cancel context.CancelFunc

	home        *section.Home
	translation *section.Translation
	comparison  *section.Comparison

	translationView *TranslationView
	comparisonView  *ComparisonView

	translationTab *widget.Button
	comparisonTab  *widget.Button
}

// NewRootUI creates and initializes the main UI. Sections are built by the
// caller once the backend address is known.
func NewRootUI(window fyne.Window, app fyne.App, translation *section.Translation, comparison *section.Comparison,
	backendURL string, logger *slog.Logger) *RootUI {
	if logger == nil {
		logger = logging.Discard()
	}

	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logger.With(slog.String("component", "ui")),
		backendURL:   backendURL,
		ctx:          ctx,
		cancel:       cancel,
		home:         section.NewHome(model.ParsePhase(settings.GetLastPhase())),
		translation:  translation,
		comparison:   comparison,
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// In-flight requests are abandoned with the window
	window.SetOnClosed(cancel)

	ui.home.OnPhaseChange(ui.onPhaseChange)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	ui.translationView = NewTranslationView(ui.ctx, ui.window, ui.translation,
		func() error { return ui.home.SendToComparison(ui.translation, ui.comparison) },
		ui.settings, ui.localization, ui.logger)
	ui.comparisonView = NewComparisonView(ui.ctx, ui.window, ui.comparison, ui.localization, ui.logger)

	ui.translationTab = widget.NewButton("", func() { ui.home.SetPhase(model.PhaseTranslation) })
	ui.comparisonTab = widget.NewButton("", func() { ui.home.SetPhase(model.PhaseAIComparison) })

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}

	tabs := container.NewGridWithColumns(2, ui.translationTab, ui.comparisonTab)
	header := container.NewBorder(nil, nil, left, nil, tabs)

	body := container.NewStack(ui.translationView.Content(), ui.comparisonView.Content())
	content := container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()), // top
		nil,  // bottom
		nil,  // left
		nil,  // right
		body, // center - active phase
	)

	ui.window.SetContent(content)
	ui.refreshUITexts()
	ui.showPhase(ui.home.Phase())

	ui.logger.Debug("UI setup completed", slog.String("phase", string(ui.home.Phase())))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for _, code := range slices.Sorted(maps.Keys(availableLanguages)) {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.translationTab.SetText(ui.localization.GetText(KeyTranslation))
	ui.comparisonTab.SetText(ui.localization.GetText(KeyAIComparison))
	ui.translationView.refreshTexts()
	ui.comparisonView.refreshTexts()
}

// onPhaseChange persists the phase and swaps the visible view
func (ui *RootUI) onPhaseChange(phase model.Phase) {
	ui.settings.SetLastPhase(string(phase))
	ui.logger.Debug("phase changed", slog.String("phase", string(phase)))
	ui.showPhase(phase)
}

func (ui *RootUI) showPhase(phase model.Phase) {
	translation := phase == model.PhaseTranslation

	if translation {
		ui.translationView.Content().Show()
		ui.comparisonView.Content().Hide()
		ui.translationTab.Importance = widget.HighImportance
		ui.comparisonTab.Importance = widget.MediumImportance
	} else {
		ui.translationView.Content().Hide()
		ui.comparisonView.Content().Show()
		ui.translationTab.Importance = widget.MediumImportance
		ui.comparisonTab.Importance = widget.HighImportance
	}
	ui.translationTab.Refresh()
	ui.comparisonTab.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.backendURL, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}
