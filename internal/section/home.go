package section

import (
	"sync"

	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

// Home tracks the active phase.
type Home struct {
	mu       sync.Mutex
	phase    model.Phase
	onChange func(model.Phase)
}

// NewHome creates a Home showing the given phase.
func NewHome(initial model.Phase) *Home {
	return &Home{phase: model.ParsePhase(string(initial))}
}

// Phase returns the active phase.
func (h *Home) Phase() model.Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.phase
}

// OnPhaseChange sets the callback invoked after the phase changes.
func (h *Home) OnPhaseChange(callback func(model.Phase)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = callback
}

// SetPhase switches to phase. Setting the active phase again is a no-op.
func (h *Home) SetPhase(phase model.Phase) {
	phase = model.ParsePhase(string(phase))

	h.mu.Lock()
	if h.phase == phase {
		h.mu.Unlock()
		return
	}
	h.phase = phase
	callback := h.onChange
	h.mu.Unlock()

	if callback != nil {
		callback(phase)
	}
}

// SendToComparison hands the source and translated text of tr to cmp and
// switches to the AI Comparison phase.
func (h *Home) SendToComparison(tr *Translation, cmp *Comparison) error {
	snap := tr.Snapshot()
	if !snap.CanCompare() {
		return ErrNothingToCompare
	}

	cmp.SetTexts(snap.Form.SourceArticleContent, snap.Form.TranslatedArticleContent)
	h.SetPhase(model.PhaseAIComparison)
	return nil
}
