package section

import (
	"context"
	"sync"

	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

type fakeFetcher struct {
	mu             sync.Mutex
	source         func(ctx context.Context, url string) (*model.SourceArticle, error)
	translated     func(ctx context.Context, title, language string) (*model.TranslatedArticle, error)
	sourceCalls    int
	translateCalls int
	lastTitle      string
}

func (f *fakeFetcher) FetchSourceArticle(ctx context.Context, url string) (*model.SourceArticle, error) {
	f.mu.Lock()
	f.sourceCalls++
	fn := f.source
	f.mu.Unlock()
	return fn(ctx, url)
}

func (f *fakeFetcher) FetchTranslatedArticle(ctx context.Context, title, language string) (*model.TranslatedArticle, error) {
	f.mu.Lock()
	f.translateCalls++
	f.lastTitle = title
	fn := f.translated
	f.mu.Unlock()
	return fn(ctx, title, language)
}

func (f *fakeFetcher) calls() (source, translate int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sourceCalls, f.translateCalls
}

func sourceOK(text string, languages ...model.LanguageOption) func(context.Context, string) (*model.SourceArticle, error) {
	return func(_ context.Context, url string) (*model.SourceArticle, error) {
		return &model.SourceArticle{URL: url, Title: "Go", Text: text, AvailableLanguages: languages}, nil
	}
}

func translatedOK(text string) func(context.Context, string, string) (*model.TranslatedArticle, error) {
	return func(_ context.Context, title, language string) (*model.TranslatedArticle, error) {
		return &model.TranslatedArticle{Title: title, Language: language, Text: text}, nil
	}
}

// blockingCall is a request stub that signals when it starts and waits for
// either a release value or cancellation.
type blockingCall[T any] struct {
	started chan context.Context
	release chan T
}

func newBlockingCall[T any]() *blockingCall[T] {
	return &blockingCall[T]{
		started: make(chan context.Context, 1),
		release: make(chan T, 1),
	}
}

func (b *blockingCall[T]) wait(ctx context.Context) (T, error) {
	b.started <- ctx
	select {
	case v := <-b.release:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

var (
	english = model.LanguageOption{Value: "en", Label: "English"}
	french  = model.LanguageOption{Value: "fr", Label: "French"}
)
