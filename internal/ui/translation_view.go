package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/symmetry-wiki/symmetry-desktop/internal/config"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
	"github.com/symmetry-wiki/symmetry-desktop/internal/section"
)

// TranslationView renders the Translation Section.
type TranslationView struct {
	ctx          context.Context
	window       fyne.Window
	section      *section.Translation
	onCompare    func() error
	settings     *config.Settings
	localization *Localization
	logger       *slog.Logger

	urlEntry         *widget.Entry
	submitBtn        *widget.Button
	clearBtn         *widget.Button
	compareBtn       *widget.Button
	languageLabel    *widget.Label
	languageSelect   *widget.Select
	statusLabel      *widget.Label
	spinner          *widget.ProgressBarInfinite
	statusRow        *fyne.Container
	sourceHeader     *widget.Label
	translatedHeader *widget.Label
	records          *fyne.Container
	translated       *widget.Label
	content          fyne.CanvasObject

	// touched only on the UI goroutine
	snapshot     section.TranslationSnapshot
	lastRevision uint64
}

// NewTranslationView creates the view and subscribes it to the section.
// onCompare is invoked by the Compare button.
func NewTranslationView(ctx context.Context, window fyne.Window, tr *section.Translation, onCompare func() error,
	settings *config.Settings, localization *Localization, logger *slog.Logger) *TranslationView {
	v := &TranslationView{
		ctx:          ctx,
		window:       window,
		section:      tr,
		onCompare:    onCompare,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}
	v.setupUI()

	tr.SetUpdateCallback(func(snap section.TranslationSnapshot) {
		fyne.Do(func() { v.apply(snap) })
	})
	tr.SetAlertCallback(func(err error) {
		fyne.Do(func() { dialog.ShowError(err, v.window) })
	})

	v.apply(tr.Snapshot())
	return v
}

// Content returns the root canvas object of the view.
func (v *TranslationView) Content() fyne.CanvasObject {
	return v.content
}

func (v *TranslationView) setupUI() {
	v.urlEntry = widget.NewEntry()
	v.urlEntry.SetText(v.settings.GetLastArticleURL())
	v.urlEntry.Validator = validateArticleURL
	v.urlEntry.OnSubmitted = func(string) { v.onSubmit() }

	v.submitBtn = widget.NewButton("", v.onSubmit)
	v.submitBtn.Importance = widget.HighImportance
	v.clearBtn = widget.NewButton("", v.onClear)
	v.compareBtn = widget.NewButton("", v.onCompareClick)

	v.languageLabel = widget.NewLabel("")
	v.languageSelect = widget.NewSelect(nil, v.onLanguageSelected)

	v.spinner = widget.NewProgressBarInfinite()
	v.statusLabel = widget.NewLabel("")
	v.statusRow = container.NewBorder(nil, nil, v.statusLabel, nil, v.spinner)
	v.statusRow.Hide()

	v.sourceHeader = widget.NewLabel("")
	v.sourceHeader.TextStyle = fyne.TextStyle{Bold: true}
	v.translatedHeader = widget.NewLabel("")
	v.translatedHeader.TextStyle = fyne.TextStyle{Bold: true}

	v.records = container.NewVBox()
	v.translated = widget.NewLabel("")
	v.translated.Wrapping = fyne.TextWrapWord

	urlRow := container.NewBorder(nil, nil, nil, container.NewHBox(v.submitBtn, v.clearBtn), v.urlEntry)
	languageRow := container.NewBorder(nil, nil, v.languageLabel, v.compareBtn, v.languageSelect)
	top := container.NewVBox(urlRow, v.statusRow, languageRow)

	split := currentLayout().ArticlePanes(
		container.NewBorder(v.sourceHeader, nil, nil, nil, container.NewVScroll(v.records)),
		container.NewBorder(v.translatedHeader, nil, nil, nil, container.NewVScroll(v.translated)),
	)

	v.content = container.NewBorder(top, nil, nil, nil, split)
	v.refreshTexts()
}

// refreshTexts updates all texts with the current language
func (v *TranslationView) refreshTexts() {
	v.urlEntry.SetPlaceHolder(v.localization.GetText(KeyEnterURL))
	v.submitBtn.SetText(v.localization.GetText(KeySubmit))
	v.clearBtn.SetText(v.localization.GetText(KeyClear))
	v.compareBtn.SetText(v.localization.GetText(KeyCompare))
	v.languageLabel.SetText(v.localization.GetText(KeyTargetLanguage))
	v.languageSelect.PlaceHolder = v.localization.GetText(KeySelectLanguage)
	v.languageSelect.Refresh()
	v.sourceHeader.SetText(v.localization.GetText(KeySourceArticle))
	v.translatedHeader.SetText(v.localization.GetText(KeyTranslatedArticle))
	v.applyStatus(v.snapshot.State)
}

// validateArticleURL validates the entered URL
func validateArticleURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

func (v *TranslationView) onSubmit() {
	articleURL := strings.TrimSpace(v.urlEntry.Text)
	if articleURL == "" {
		dialog.ShowInformation(v.localization.GetText(KeyInvalidURL), v.localization.GetText(KeyPleaseEnterURL), v.window)
		return
	}
	if err := validateArticleURL(articleURL); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyInvalidURL), err), v.window)
		return
	}

	v.settings.SetLastArticleURL(articleURL)
	v.logger.Info("submitting article", slog.String("url", articleURL))

	go func() {
		_ = v.section.Submit(v.ctx, articleURL)
	}()
}

func (v *TranslationView) onClear() {
	v.urlEntry.SetText("")
	v.settings.SetLastArticleURL("")
	v.section.Clear()
}

func (v *TranslationView) onLanguageSelected(label string) {
	option, ok := model.FindByLabel(v.snapshot.Languages, label)
	if !ok {
		return
	}

	go func() {
		_ = v.section.SelectLanguage(v.ctx, option.Value)
	}()
}

func (v *TranslationView) onCompareClick() {
	if err := v.onCompare(); err != nil {
		dialog.ShowError(err, v.window)
	}
}

// apply renders snap unless a newer snapshot was already shown.
func (v *TranslationView) apply(snap section.TranslationSnapshot) {
	if snap.Revision < v.lastRevision {
		return
	}
	v.lastRevision = snap.Revision
	v.snapshot = snap

	v.applyLanguages(snap)
	v.applyStatus(snap.State)

	objects := make([]fyne.CanvasObject, 0, len(snap.Records))
	for _, record := range snap.Records {
		objects = append(objects, newRecordRow(record))
	}
	v.records.Objects = objects
	v.records.Refresh()

	v.translated.SetText(snap.Form.TranslatedArticleContent)

	if snap.CanCompare() {
		v.compareBtn.Enable()
	} else {
		v.compareBtn.Disable()
	}
}

func (v *TranslationView) applyLanguages(snap section.TranslationSnapshot) {
	// programmatic selection must not dispatch a translation
	v.languageSelect.OnChanged = nil
	defer func() { v.languageSelect.OnChanged = v.onLanguageSelected }()

	v.languageSelect.SetOptions(model.Labels(snap.Languages))
	if option, ok := model.FindByValue(snap.Languages, snap.Form.TargetArticleLanguage); ok {
		v.languageSelect.SetSelected(option.Label)
	} else {
		v.languageSelect.ClearSelected()
	}

	if snap.CanSelectLanguage() {
		v.languageSelect.Enable()
	} else {
		v.languageSelect.Disable()
	}
}

func (v *TranslationView) applyStatus(state model.SectionState) {
	switch state {
	case model.SectionStateLoadingFetch:
		v.statusLabel.SetText(v.localization.GetText(KeyFetching))
	case model.SectionStateLoadingTranslate:
		v.statusLabel.SetText(v.localization.GetText(KeyTranslating))
	default:
		v.statusRow.Hide()
		return
	}
	v.statusRow.Show()
}

// newRecordRow renders one record with the background tint of its suggestion type.
func newRecordRow(record model.ArticleText) fyne.CanvasObject {
	label := widget.NewLabel(record.Reference)
	label.Wrapping = fyne.TextWrapWord

	tint := SuggestionTint(record.SuggestionType)
	if tint == nil {
		return label
	}

	background := canvas.NewRectangle(tint)
	background.CornerRadius = RecordCornerRadius
	return container.NewStack(background, label)
}
