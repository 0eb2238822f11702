package article

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/symmetry-wiki/symmetry-desktop/internal/api"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

// Backend endpoints
const (
	SourceArticlePath     = "/get_article"
	TranslatedArticlePath = "/wiki_translate/source_article"
)

// Query parameters
const (
	ParamURL      = "url"
	ParamTitle    = "title"
	ParamLanguage = "language"
)

var (
	// ErrEmptyURL is returned before dispatch when no source URL is given.
	ErrEmptyURL = errors.New("source article URL is empty")

	// ErrEmptyTitle is returned before dispatch when no article title is given.
	ErrEmptyTitle = errors.New("article title is empty")

	// ErrEmptyLanguage is returned before dispatch when no target language is given.
	ErrEmptyLanguage = errors.New("target language is empty")

	// ErrEmptyArticle is returned when the backend answers with no article text.
	ErrEmptyArticle = errors.New("backend returned an empty article")

	// ErrNoLanguages is returned when the backend offers no translation languages.
	ErrNoLanguages = errors.New("backend returned no article languages")
)

// sourceArticleResponse is the GET /get_article body.
type sourceArticleResponse struct {
	SourceArticle    string           `json:"sourceArticle"`
	ArticleLanguages articleLanguages `json:"articleLanguages"`
}

// articleLanguages is the code->name map of offered languages. Backends that
// answer with a plain list of codes are accepted too; each code is its own name.
type articleLanguages map[string]string

// UnmarshalJSON decodes either {"fr":"French"} or ["fr"].
func (l *articleLanguages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var codes []string
		if err := json.Unmarshal(data, &codes); err != nil {
			return fmt.Errorf("article languages: %w", err)
		}
		m := make(map[string]string, len(codes))
		for _, code := range codes {
			if code = strings.TrimSpace(code); code != "" {
				m[code] = code
			}
		}
		*l = m
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("article languages: %w", err)
	}
	*l = m
	return nil
}

// translatedArticleResponse is the GET /wiki_translate/source_article body.
type translatedArticleResponse struct {
	Text string `json:"text"`
}

// Service handles article requests
type Service struct {
	client api.Requester
	logger *slog.Logger
}

// NewService creates a new article service
func NewService(client api.Requester, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{client: client, logger: logger}
}

// FetchSourceArticle fetches the article at articleURL together with the
// languages it is available in. The URL itself is validated by the backend; only
// an empty URL is rejected here. A successful result always has text and at
// least one language.
func (s *Service) FetchSourceArticle(ctx context.Context, articleURL string) (*model.SourceArticle, error) {
	articleURL = strings.TrimSpace(articleURL)
	if articleURL == "" {
		return nil, ErrEmptyURL
	}

	var resp sourceArticleResponse
	if err := s.client.Get(ctx, SourceArticlePath, url.Values{ParamURL: {articleURL}}, &resp); err != nil {
		return nil, fmt.Errorf("fetch source article: %w", err)
	}

	if strings.TrimSpace(resp.SourceArticle) == "" {
		return nil, ErrEmptyArticle
	}
	if len(resp.ArticleLanguages) == 0 {
		return nil, ErrNoLanguages
	}

	title, _ := TitleFromURL(articleURL)
	result := &model.SourceArticle{
		URL:                articleURL,
		Title:              title,
		Text:               resp.SourceArticle,
		AvailableLanguages: languageOptions(resp.ArticleLanguages),
	}

	s.logger.Info("source article fetched",
		slog.String("url", articleURL),
		slog.Int("length", len(result.Text)),
		slog.Int("languages", len(result.AvailableLanguages)))
	return result, nil
}

// FetchTranslatedArticle fetches the article titled title in the target language.
func (s *Service) FetchTranslatedArticle(ctx context.Context, title, language string) (*model.TranslatedArticle, error) {
	title = strings.TrimSpace(title)
	language = strings.TrimSpace(language)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if language == "" {
		return nil, ErrEmptyLanguage
	}

	var resp translatedArticleResponse
	query := url.Values{ParamTitle: {title}, ParamLanguage: {language}}
	if err := s.client.Get(ctx, TranslatedArticlePath, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch translated article: %w", err)
	}

	s.logger.Info("translated article fetched",
		slog.String("title", title),
		slog.String("language", language),
		slog.Int("length", len(resp.Text)))

	return &model.TranslatedArticle{
		Title:    title,
		Language: language,
		Text:     resp.Text,
	}, nil
}

// FetchPair fetches two source articles concurrently. The first failure cancels
// the other request.
func FetchPair(ctx context.Context, f Fetcher, urlA, urlB string) (*model.SourceArticle, *model.SourceArticle, error) {
	var a, b *model.SourceArticle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = f.FetchSourceArticle(gctx, urlA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = f.FetchSourceArticle(gctx, urlB)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// languageOptions converts the code->name map to options sorted by code.
// Entries with an empty name use the code as label. Labels are unique: a name
// shared by several codes is suffixed with the code.
func languageOptions(languages map[string]string) []model.LanguageOption {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	labels := make(map[string]string, len(codes))
	shared := make(map[string]int, len(codes))
	for _, code := range codes {
		label := strings.TrimSpace(languages[code])
		if label == "" {
			label = code
		}
		labels[code] = label
		shared[label]++
	}

	options := make([]model.LanguageOption, 0, len(codes))
	taken := make(map[string]bool, len(codes))
	for _, code := range codes {
		label := labels[code]
		if shared[label] > 1 && label != code {
			label = fmt.Sprintf("%s (%s)", label, code)
		}
		// a suffixed label can still collide with another code's plain name
		for taken[label] {
			label += " (" + code + ")"
		}
		taken[label] = true
		options = append(options, model.LanguageOption{Value: code, Label: label})
	}
	return options
}
