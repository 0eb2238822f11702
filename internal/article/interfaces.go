package article

import (
	"context"

	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

// Fetcher defines the interface for the article service.
type Fetcher interface {
	FetchSourceArticle(ctx context.Context, url string) (*model.SourceArticle, error)
	FetchTranslatedArticle(ctx context.Context, title, language string) (*model.TranslatedArticle, error)
}
