package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/symmetry-wiki/symmetry-desktop/internal/api"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

// ComparePath is the comparison endpoint.
const ComparePath = "/symmetry/v1/articles/compare"

// Fixed request parameters
const (
	ArticleLanguage     = "en"
	ComparisonThreshold = 0.5
	ModelName           = "default"
)

// ErrEmptyText is returned before dispatch when either text is empty.
var ErrEmptyText = errors.New("comparison text is empty")

// compareRequest is the POST body of the comparison endpoint.
type compareRequest struct {
	ArticleTextBlob1         string  `json:"article_text_blob_1"`
	ArticleTextBlob2         string  `json:"article_text_blob_2"`
	ArticleTextBlob1Language string  `json:"article_text_blob_1_language"`
	ArticleTextBlob2Language string  `json:"article_text_blob_2_language"`
	ComparisonThreshold      float64 `json:"comparison_threshold"`
	ModelName                string  `json:"model_name"`
}

// Service handles comparison requests
type Service struct {
	client api.Requester
	logger *slog.Logger
}

// NewService creates a new comparison service
func NewService(client api.Requester, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{client: client, logger: logger}
}

// Compare asks the backend for the semantic differences between textA and textB.
func (s *Service) Compare(ctx context.Context, textA, textB string) (*model.ComparisonResult, error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return nil, ErrEmptyText
	}

	s.logger.Debug("comparing articles",
		slog.Int("text_a_length", len(textA)),
		slog.Int("text_b_length", len(textB)))

	req := newCompareRequest(textA, textB)

	var result model.ComparisonResult
	if err := s.client.Post(ctx, ComparePath, req, &result); err != nil {
		return nil, fmt.Errorf("compare articles: %w", err)
	}

	s.logger.Info("comparison completed", slog.Int("comparisons", len(result.Comparisons)))
	return &result, nil
}

func newCompareRequest(textA, textB string) compareRequest {
	return compareRequest{
		ArticleTextBlob1:         textA,
		ArticleTextBlob2:         textB,
		ArticleTextBlob1Language: ArticleLanguage,
		ArticleTextBlob2Language: ArticleLanguage,
		ComparisonThreshold:      ComparisonThreshold,
		ModelName:                ModelName,
	}
}
