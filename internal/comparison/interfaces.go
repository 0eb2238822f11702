package comparison

import (
	"context"

	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

// Comparer defines the interface for the comparison service.
type Comparer interface {
	Compare(ctx context.Context, textA, textB string) (*model.ComparisonResult, error)
}
