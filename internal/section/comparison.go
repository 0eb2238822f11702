package section

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/symmetry-wiki/symmetry-desktop/internal/comparison"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/metrics"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

const (
	comparisonSection = "comparison"
	operationCompare  = "compare"
)

// ComparisonSnapshot is an immutable view of the Comparison Section.
type ComparisonSnapshot struct {
	Revision uint64
	State    model.ComparisonState
	TextA    string
	TextB    string
	Result   *model.ComparisonResult
}

// CanCompare reports whether both texts are present and no comparison is running.
func (s ComparisonSnapshot) CanCompare() bool {
	return s.TextA != "" && s.TextB != "" && !s.State.IsLoading()
}

// Comparison drives the Comparison Section.
type Comparison struct {
	comparer comparison.Comparer
	logger   *slog.Logger

	mu       sync.Mutex
	state    model.ComparisonState
	textA    string
	textB    string
	result   *model.ComparisonResult
	revision uint64
	gen      uint64
	cancel   context.CancelFunc

	onUpdate func(ComparisonSnapshot)
	onAlert  func(error)
}

// NewComparison creates a Comparison Section in the Idle state.
func NewComparison(comparer comparison.Comparer, logger *slog.Logger) *Comparison {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Comparison{
		comparer: comparer,
		logger:   logger.With(slog.String("section", comparisonSection)),
		state:    model.ComparisonStateIdle,
	}
}

// SetUpdateCallback sets the callback function for state updates
func (c *Comparison) SetUpdateCallback(callback func(ComparisonSnapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = callback
}

// SetAlertCallback sets the callback for errors that must be shown to the user
func (c *Comparison) SetAlertCallback(callback func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAlert = callback
}

// Snapshot returns the current state.
func (c *Comparison) Snapshot() ComparisonSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetTexts replaces both texts. Any pending comparison and the previous result
// are discarded.
func (c *Comparison) SetTexts(textA, textB string) {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.gen++
	c.textA = textA
	c.textB = textB
	c.result = nil
	c.state = model.ComparisonStateIdle
	snap := c.publishLocked()
	c.mu.Unlock()

	c.notifyUpdate(snap)
}

// Compare compares the current texts. It blocks until the request finishes and
// cancels a comparison that is still pending. Failures are raised through the
// alert callback and leave the section Idle without a result.
func (c *Comparison) Compare(ctx context.Context) error {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.gen++
	gen := c.gen
	textA, textB := c.textA, c.textB

	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.result = nil
	c.state = model.ComparisonStateComparing
	snap := c.publishLocked()
	c.mu.Unlock()
	defer cancel()

	c.notifyUpdate(snap)

	result, err := c.comparer.Compare(reqCtx, textA, textB)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded comparison")
		metrics.RecordSectionOperation(comparisonSection, operationCompare, metrics.OutcomeSuperseded)
		return ErrSuperseded
	}
	c.cancel = nil

	if err != nil {
		c.state = model.ComparisonStateIdle
		snap = c.publishLocked()
		c.mu.Unlock()

		c.logger.Error("failed to compare articles", slog.Any("error", err))
		metrics.RecordSectionOperation(comparisonSection, operationCompare, metrics.OutcomeFailure)
		c.notifyUpdate(snap)
		c.notifyAlert(err)
		return err
	}

	c.result = result
	c.state = model.ComparisonStateCompared
	snap = c.publishLocked()
	c.mu.Unlock()

	metrics.RecordSectionOperation(comparisonSection, operationCompare, metrics.OutcomeSuccess)
	c.notifyUpdate(snap)
	return nil
}

// Clear empties both texts and the result and returns the section to Idle.
func (c *Comparison) Clear() {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.gen++
	c.textA = ""
	c.textB = ""
	c.result = nil
	c.state = model.ComparisonStateIdle
	snap := c.publishLocked()
	c.mu.Unlock()

	c.notifyUpdate(snap)
}

func (c *Comparison) cancelPendingLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Comparison) publishLocked() ComparisonSnapshot {
	c.revision++
	return c.snapshotLocked()
}

func (c *Comparison) snapshotLocked() ComparisonSnapshot {
	return ComparisonSnapshot{
		Revision: c.revision,
		State:    c.state,
		TextA:    c.textA,
		TextB:    c.textB,
		Result:   c.result,
	}
}

func (c *Comparison) notifyUpdate(snap ComparisonSnapshot) {
	c.mu.Lock()
	callback := c.onUpdate
	c.mu.Unlock()
	if callback != nil {
		callback(snap)
	}
}

func (c *Comparison) notifyAlert(err error) {
	c.mu.Lock()
	callback := c.onAlert
	c.mu.Unlock()
	if callback != nil && !errors.Is(err, context.Canceled) {
		callback(err)
	}
}
