package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
	"github.com/symmetry-wiki/symmetry-desktop/internal/section"
)

// ComparisonView renders the Comparison Section.
type ComparisonView struct {
	ctx          context.Context
	window       fyne.Window
	section      *section.Comparison
	localization *Localization
	logger       *slog.Logger

	leftEntry    *widget.Entry
	rightEntry   *widget.Entry
	compareBtn   *widget.Button
	clearBtn     *widget.Button
	statusLabel  *widget.Label
	spinner      *widget.ProgressBarInfinite
	statusRow    *fyne.Container
	summaryLabel *widget.Label
	results      *fyne.Container
	content      fyne.CanvasObject

	// touched only on the UI goroutine
	snapshot     section.ComparisonSnapshot
	lastRevision uint64
}

// NewComparisonView creates the view and subscribes it to the section.
func NewComparisonView(ctx context.Context, window fyne.Window, cmp *section.Comparison,
	localization *Localization, logger *slog.Logger) *ComparisonView {
	v := &ComparisonView{
		ctx:          ctx,
		window:       window,
		section:      cmp,
		localization: localization,
		logger:       logger,
	}
	v.setupUI()

	cmp.SetUpdateCallback(func(snap section.ComparisonSnapshot) {
		fyne.Do(func() { v.apply(snap) })
	})
	cmp.SetAlertCallback(func(err error) {
		fyne.Do(func() { dialog.ShowError(err, v.window) })
	})

	v.apply(cmp.Snapshot())
	return v
}

// Content returns the root canvas object of the view.
func (v *ComparisonView) Content() fyne.CanvasObject {
	return v.content
}

func (v *ComparisonView) setupUI() {
	v.leftEntry = widget.NewMultiLineEntry()
	v.leftEntry.Wrapping = fyne.TextWrapWord
	v.leftEntry.SetMinRowsVisible(CompareEntryMinRows)
	v.rightEntry = widget.NewMultiLineEntry()
	v.rightEntry.Wrapping = fyne.TextWrapWord
	v.rightEntry.SetMinRowsVisible(CompareEntryMinRows)

	v.compareBtn = widget.NewButton("", v.onCompare)
	v.compareBtn.Importance = widget.HighImportance
	v.clearBtn = widget.NewButton("", v.onClear)

	v.spinner = widget.NewProgressBarInfinite()
	v.statusLabel = widget.NewLabel("")
	v.statusRow = container.NewBorder(nil, nil, v.statusLabel, nil, v.spinner)
	v.statusRow.Hide()

	v.summaryLabel = widget.NewLabel("")
	v.results = container.NewVBox()

	inputs := currentLayout().Pair(v.leftEntry, v.rightEntry)
	actions := container.NewBorder(nil, nil, nil, container.NewHBox(v.compareBtn, v.clearBtn), v.summaryLabel)
	top := container.NewVBox(inputs, actions, v.statusRow)

	v.content = container.NewBorder(top, nil, nil, nil, container.NewVScroll(v.results))
	v.refreshTexts()
}

// refreshTexts updates all texts with the current language
func (v *ComparisonView) refreshTexts() {
	v.leftEntry.SetPlaceHolder(v.localization.GetText(KeyLeftText))
	v.rightEntry.SetPlaceHolder(v.localization.GetText(KeyRightText))
	v.compareBtn.SetText(v.localization.GetText(KeyCompare))
	v.clearBtn.SetText(v.localization.GetText(KeyClear))
	v.statusLabel.SetText(v.localization.GetText(KeyComparing))
	v.summaryLabel.SetText(v.summary(v.snapshot))
}

func (v *ComparisonView) onCompare() {
	left := strings.TrimSpace(v.leftEntry.Text)
	right := strings.TrimSpace(v.rightEntry.Text)
	if left == "" || right == "" {
		dialog.ShowError(errors.New(v.localization.GetText(KeyBothTextsRequired)), v.window)
		return
	}

	v.section.SetTexts(v.leftEntry.Text, v.rightEntry.Text)
	v.logger.Info("comparing articles")

	go func() {
		_ = v.section.Compare(v.ctx)
	}()
}

func (v *ComparisonView) onClear() {
	v.section.Clear()
}

// apply renders snap unless a newer snapshot was already shown.
func (v *ComparisonView) apply(snap section.ComparisonSnapshot) {
	if snap.Revision < v.lastRevision {
		return
	}
	v.lastRevision = snap.Revision
	v.snapshot = snap

	if v.leftEntry.Text != snap.TextA {
		v.leftEntry.SetText(snap.TextA)
	}
	if v.rightEntry.Text != snap.TextB {
		v.rightEntry.SetText(snap.TextB)
	}

	if snap.State.IsLoading() {
		v.compareBtn.Disable()
		v.statusRow.Show()
	} else {
		v.compareBtn.Enable()
		v.statusRow.Hide()
	}

	var objects []fyne.CanvasObject
	if snap.Result != nil {
		for _, c := range snap.Result.Comparisons {
			objects = append(objects, newComparisonRow(c), widget.NewSeparator())
		}
	}
	v.results.Objects = objects
	v.results.Refresh()
	v.summaryLabel.SetText(v.summary(snap))
}

func (v *ComparisonView) summary(snap section.ComparisonSnapshot) string {
	if snap.Result == nil {
		return ""
	}
	if len(snap.Result.Comparisons) == 0 {
		return v.localization.GetText(KeyNoComparisons)
	}

	missing, extra := 0, 0
	for _, c := range snap.Result.Comparisons {
		m, e := c.HighlightCounts()
		missing += m
		extra += e
	}
	return fmt.Sprintf(v.localization.GetText(KeyComparisonSummary), missing, extra)
}

// newComparisonRow renders one aligned passage pair side by side.
func newComparisonRow(c model.Comparison) fyne.CanvasObject {
	return currentLayout().Pair(
		segmentsText(c.LeftSegments(), ColorNameMissing),
		segmentsText(c.RightSegments(), ColorNameExtra),
	)
}

func segmentsText(segments []model.Segment, highlight fyne.ThemeColorName) *widget.RichText {
	parts := make([]widget.RichTextSegment, 0, len(segments))
	for _, s := range segments {
		style := widget.RichTextStyleInline
		if s.Highlighted {
			style.ColorName = highlight
			style.TextStyle = fyne.TextStyle{Bold: true}
		}
		parts = append(parts, &widget.TextSegment{Text: s.Token + " ", Style: style})
	}

	text := widget.NewRichText(parts...)
	text.Wrapping = fyne.TextWrapWord
	return text
}
