package section

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/symmetry-wiki/symmetry-desktop/internal/article"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/metrics"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

const (
	translationSection = "translation"
	operationFetch     = "fetch"
	operationTranslate = "translate"
)

// TranslationSnapshot is an immutable view of the Translation Section.
// Revision grows with every published change.
type TranslationSnapshot struct {
	Revision  uint64
	State     model.SectionState
	Form      model.TranslationFormState
	Title     string
	Records   []model.ArticleText
	Languages []model.LanguageOption
}

// CanSelectLanguage reports whether the language selector is actionable.
func (s TranslationSnapshot) CanSelectLanguage() bool {
	return len(s.Languages) > 0 && s.State.HasSource()
}

// CanCompare reports whether a translation is available for comparison.
func (s TranslationSnapshot) CanCompare() bool {
	return s.State == model.SectionStateTranslated && s.Form.TranslatedArticleContent != ""
}

// committedTranslation is the last translation that completed successfully.
type committedTranslation struct {
	language string
	text     string
}

// Translation drives the Translation Section state machine.
type Translation struct {
	fetcher article.Fetcher
	logger  *slog.Logger

	mu        sync.Mutex
	state     model.SectionState
	form      model.TranslationFormState
	title     string
	records   []model.ArticleText
	languages []model.LanguageOption
	committed *committedTranslation
	revision  uint64

	fetchGen        uint64
	translateGen    uint64
	cancelFetch     context.CancelFunc
	cancelTranslate context.CancelFunc

	onUpdate func(TranslationSnapshot)
	onAlert  func(error)
}

// NewTranslation creates a Translation Section in the Idle state.
func NewTranslation(fetcher article.Fetcher, logger *slog.Logger) *Translation {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Translation{
		fetcher: fetcher,
		logger:  logger.With(slog.String("section", translationSection)),
		state:   model.SectionStateIdle,
	}
}

// SetUpdateCallback sets the callback function for state updates
func (t *Translation) SetUpdateCallback(callback func(TranslationSnapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUpdate = callback
}

// SetAlertCallback sets the callback for errors that must be shown to the user
func (t *Translation) SetAlertCallback(callback func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onAlert = callback
}

// Snapshot returns the current state.
func (t *Translation) Snapshot() TranslationSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Submit fetches the source article at articleURL. It blocks until the request
// finishes. A pending Submit and any pending translation are cancelled first.
// On failure the error is raised through the alert callback and the section
// returns to Idle.
func (t *Translation) Submit(ctx context.Context, articleURL string) error {
	t.mu.Lock()
	t.cancelPendingLocked()
	t.fetchGen++
	t.translateGen++
	gen := t.fetchGen

	reqCtx, cancel := context.WithCancel(ctx)
	t.cancelFetch = cancel
	t.form.SourceArticleURL = articleURL
	t.state = model.SectionStateLoadingFetch
	snap := t.publishLocked()
	t.mu.Unlock()
	defer cancel()

	t.notifyUpdate(snap)

	src, err := t.fetcher.FetchSourceArticle(reqCtx, articleURL)

	t.mu.Lock()
	if gen != t.fetchGen {
		t.mu.Unlock()
		t.logger.Debug("discarding superseded fetch", slog.String("url", articleURL))
		metrics.RecordSectionOperation(translationSection, operationFetch, metrics.OutcomeSuperseded)
		return ErrSuperseded
	}
	t.cancelFetch = nil

	if err != nil {
		t.resetLocked()
		t.form.SourceArticleURL = articleURL
		snap = t.publishLocked()
		t.mu.Unlock()

		t.logger.Error("failed to fetch source article",
			slog.String("url", articleURL),
			slog.Any("error", err))
		metrics.RecordSectionOperation(translationSection, operationFetch, metrics.OutcomeFailure)
		t.notifyUpdate(snap)
		t.notifyAlert(err)
		return err
	}

	t.form.SourceArticleContent = src.Text
	t.form.TargetArticleLanguage = ""
	t.form.TranslatedArticleContent = ""
	t.title = src.Title
	t.languages = slices.Clone(src.AvailableLanguages)
	t.records = append(t.records, model.NewArticleText(src.Text, model.SuggestionChange))
	t.committed = nil
	t.state = model.SectionStateLoaded
	snap = t.publishLocked()
	t.mu.Unlock()

	metrics.RecordSectionOperation(translationSection, operationFetch, metrics.OutcomeSuccess)
	t.notifyUpdate(snap)
	return nil
}

// SelectLanguage requests the source article in the language whose option value
// is value. Only offered languages are accepted. A failed translation is logged
// and the section returns to its previous settled state with the source content
// untouched; the error is returned but never raised as an alert.
func (t *Translation) SelectLanguage(ctx context.Context, value string) error {
	t.mu.Lock()
	if t.state == model.SectionStateLoadingFetch {
		t.mu.Unlock()
		return ErrFetchInProgress
	}
	option, ok := model.FindByValue(t.languages, value)
	if !ok {
		t.mu.Unlock()
		return ErrLanguageNotOffered
	}

	title := t.title
	if title == "" {
		title, _ = article.TitleFromURL(t.form.SourceArticleURL)
	}

	if t.cancelTranslate != nil {
		t.cancelTranslate()
	}
	t.translateGen++
	gen := t.translateGen

	reqCtx, cancel := context.WithCancel(ctx)
	t.cancelTranslate = cancel
	t.form.TargetArticleLanguage = option.Value
	t.state = model.SectionStateLoadingTranslate
	snap := t.publishLocked()
	t.mu.Unlock()
	defer cancel()

	t.notifyUpdate(snap)

	var (
		translated *model.TranslatedArticle
		err        error
	)
	if title == "" {
		err = ErrNoTitle
	} else {
		translated, err = t.fetcher.FetchTranslatedArticle(reqCtx, title, option.Value)
	}

	t.mu.Lock()
	if gen != t.translateGen {
		t.mu.Unlock()
		t.logger.Debug("discarding superseded translation", slog.String("language", option.Value))
		metrics.RecordSectionOperation(translationSection, operationTranslate, metrics.OutcomeSuperseded)
		return ErrSuperseded
	}
	t.cancelTranslate = nil

	if err != nil {
		t.rollbackTranslationLocked()
		snap = t.publishLocked()
		t.mu.Unlock()

		t.logger.Warn("failed to fetch translated article",
			slog.String("title", title),
			slog.String("language", option.Value),
			slog.Any("error", err))
		metrics.RecordSectionOperation(translationSection, operationTranslate, metrics.OutcomeFailure)
		t.notifyUpdate(snap)
		return err
	}

	t.form.TranslatedArticleContent = translated.Text
	t.committed = &committedTranslation{language: option.Value, text: translated.Text}
	t.state = model.SectionStateTranslated
	snap = t.publishLocked()
	t.mu.Unlock()

	metrics.RecordSectionOperation(translationSection, operationTranslate, metrics.OutcomeSuccess)
	t.notifyUpdate(snap)
	return nil
}

// Clear empties the section and returns it to Idle. Results of requests still
// in flight are discarded when they arrive.
func (t *Translation) Clear() {
	t.mu.Lock()
	t.cancelPendingLocked()
	t.fetchGen++
	t.translateGen++
	t.resetLocked()
	snap := t.publishLocked()
	t.mu.Unlock()

	t.logger.Debug("section cleared")
	t.notifyUpdate(snap)
}

func (t *Translation) cancelPendingLocked() {
	if t.cancelFetch != nil {
		t.cancelFetch()
		t.cancelFetch = nil
	}
	if t.cancelTranslate != nil {
		t.cancelTranslate()
		t.cancelTranslate = nil
	}
}

func (t *Translation) resetLocked() {
	t.state = model.SectionStateIdle
	t.form = model.TranslationFormState{}
	t.title = ""
	t.records = nil
	t.languages = nil
	t.committed = nil
}

func (t *Translation) rollbackTranslationLocked() {
	if t.committed == nil {
		t.form.TargetArticleLanguage = ""
		t.form.TranslatedArticleContent = ""
		t.state = model.SectionStateLoaded
		return
	}
	t.form.TargetArticleLanguage = t.committed.language
	t.form.TranslatedArticleContent = t.committed.text
	t.state = model.SectionStateTranslated
}

func (t *Translation) publishLocked() TranslationSnapshot {
	t.revision++
	return t.snapshotLocked()
}

func (t *Translation) snapshotLocked() TranslationSnapshot {
	return TranslationSnapshot{
		Revision:  t.revision,
		State:     t.state,
		Form:      t.form,
		Title:     t.title,
		Records:   slices.Clone(t.records),
		Languages: slices.Clone(t.languages),
	}
}

// notifyUpdate notifies about state changes
func (t *Translation) notifyUpdate(snap TranslationSnapshot) {
	t.mu.Lock()
	callback := t.onUpdate
	t.mu.Unlock()
	if callback != nil {
		callback(snap)
	}
}

func (t *Translation) notifyAlert(err error) {
	t.mu.Lock()
	callback := t.onAlert
	t.mu.Unlock()
	if callback != nil && !errors.Is(err, context.Canceled) {
		callback(err)
	}
}
