package ui

import (
	"image/color"

	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

// Record background tints
var (
	TintChange   = color.NRGBA{R: 46, G: 160, B: 67, A: 56}
	TintAddition = color.NRGBA{R: 183, G: 28, B: 28, A: 56}
)

// SuggestionTint returns the background tint of a record, or nil when the
// record is not emphasized.
func SuggestionTint(kind model.SuggestionType) color.Color {
	switch kind {
	case model.SuggestionChange:
		return TintChange
	case model.SuggestionAddition:
		return TintAddition
	case model.SuggestionNone:
		return nil
	default:
		return nil
	}
}
