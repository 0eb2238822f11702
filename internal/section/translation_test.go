package section

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symmetry-wiki/symmetry-desktop/internal/api"
	"github.com/symmetry-wiki/symmetry-desktop/internal/article"
	"github.com/symmetry-wiki/symmetry-desktop/internal/metrics"
	"github.com/symmetry-wiki/symmetry-desktop/internal/model"
)

const testArticleURL = "https://en.wikipedia.org/wiki/Y"

func newMockBackend(t *testing.T) *Translation {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(article.SourceArticlePath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testArticleURL, r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(`{"sourceArticle":"X","articleLanguages":{"en":"English","fr":"French"}}`))
	})
	mux.HandleFunc(article.TranslatedArticlePath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Y", r.URL.Query().Get("title"))
		assert.Equal(t, "fr", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"text":"Z"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return NewTranslation(article.NewService(client, nil), nil)
}

func TestTranslation_SubmitRoundTrip(t *testing.T) {
	tr := newMockBackend(t)

	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateLoaded, snap.State)
	assert.Equal(t, "X", snap.Form.SourceArticleContent)
	assert.Equal(t, testArticleURL, snap.Form.SourceArticleURL)
	assert.Equal(t, []string{"English", "French"}, model.Labels(snap.Languages))
	assert.True(t, snap.CanSelectLanguage())

	require.Len(t, snap.Records, 1)
	assert.Equal(t, "X", snap.Records[0].Reference)
	assert.Equal(t, model.SuggestionChange, snap.Records[0].SuggestionType)
}

func TestTranslation_SelectLanguageRoundTrip(t *testing.T) {
	tr := newMockBackend(t)
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	require.NoError(t, tr.SelectLanguage(context.Background(), "fr"))

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateTranslated, snap.State)
	assert.Equal(t, "Z", snap.Form.TranslatedArticleContent)
	assert.Equal(t, "X", snap.Form.SourceArticleContent)
	assert.Equal(t, "fr", snap.Form.TargetArticleLanguage)
	assert.True(t, snap.CanCompare())
}

func TestTranslation_SubmitFailure(t *testing.T) {
	boom := errors.New("backend unreachable")
	fetcher := &fakeFetcher{
		source: func(context.Context, string) (*model.SourceArticle, error) { return nil, boom },
	}
	tr := NewTranslation(fetcher, nil)

	var alerts []error
	tr.SetAlertCallback(func(err error) { alerts = append(alerts, err) })

	err := tr.Submit(context.Background(), testArticleURL)
	assert.ErrorIs(t, err, boom)

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateIdle, snap.State)
	assert.Empty(t, snap.Form.SourceArticleContent)
	assert.Empty(t, snap.Languages)
	assert.Empty(t, snap.Records)
	assert.False(t, snap.CanSelectLanguage())
	require.Len(t, alerts, 1)
	assert.ErrorIs(t, alerts[0], boom)
}

func TestTranslation_SubmitFailureAfterLoadReturnsIdle(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &fakeFetcher{source: sourceOK("first", english)}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), "a"))

	fetcher.source = func(context.Context, string) (*model.SourceArticle, error) { return nil, boom }
	require.ErrorIs(t, tr.Submit(context.Background(), "b"), boom)

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateIdle, snap.State)
	assert.Empty(t, snap.Form.SourceArticleContent)
	assert.Equal(t, "b", snap.Form.SourceArticleURL)
}

func TestTranslation_SecondSubmitResetsTranslation(t *testing.T) {
	fetcher := &fakeFetcher{
		source:     sourceOK("first", english, french),
		translated: translatedOK("premier"),
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), "a"))
	require.NoError(t, tr.SelectLanguage(context.Background(), "fr"))

	fetcher.source = sourceOK("second", english)
	require.NoError(t, tr.Submit(context.Background(), "b"))

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateLoaded, snap.State)
	assert.Equal(t, "second", snap.Form.SourceArticleContent)
	assert.Empty(t, snap.Form.TargetArticleLanguage)
	assert.Empty(t, snap.Form.TranslatedArticleContent)
	assert.Equal(t, []model.LanguageOption{english}, snap.Languages)
	require.Len(t, snap.Records, 2)
	assert.Equal(t, "second", snap.Records[1].Reference)
}

func TestTranslation_TranslateFailureKeepsSource(t *testing.T) {
	boom := errors.New("translation service down")
	fetcher := &fakeFetcher{
		source: sourceOK("X", english, french),
		translated: func(context.Context, string, string) (*model.TranslatedArticle, error) {
			return nil, boom
		},
	}
	tr := NewTranslation(fetcher, nil)

	alerted := false
	tr.SetAlertCallback(func(error) { alerted = true })
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	var err error
	assert.NotPanics(t, func() {
		err = tr.SelectLanguage(context.Background(), "fr")
	})
	assert.ErrorIs(t, err, boom)

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateLoaded, snap.State)
	assert.Equal(t, "X", snap.Form.SourceArticleContent)
	assert.Empty(t, snap.Form.TranslatedArticleContent)
	assert.Empty(t, snap.Form.TargetArticleLanguage)
	assert.Len(t, snap.Records, 1)
	assert.False(t, alerted)
}

func TestTranslation_TranslateFailureRestoresPreviousTranslation(t *testing.T) {
	fetcher := &fakeFetcher{
		source:     sourceOK("X", english, french),
		translated: translatedOK("Z"),
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))
	require.NoError(t, tr.SelectLanguage(context.Background(), "fr"))

	fetcher.translated = func(context.Context, string, string) (*model.TranslatedArticle, error) {
		return nil, errors.New("boom")
	}
	require.Error(t, tr.SelectLanguage(context.Background(), "en"))

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateTranslated, snap.State)
	assert.Equal(t, "fr", snap.Form.TargetArticleLanguage)
	assert.Equal(t, "Z", snap.Form.TranslatedArticleContent)
	assert.Equal(t, "X", snap.Form.SourceArticleContent)
}

func TestTranslation_SelectLanguageNotOffered(t *testing.T) {
	fetcher := &fakeFetcher{
		source:     sourceOK("X", english),
		translated: translatedOK("Z"),
	}
	tr := NewTranslation(fetcher, nil)

	assert.ErrorIs(t, tr.SelectLanguage(context.Background(), "en"), ErrLanguageNotOffered)

	require.NoError(t, tr.Submit(context.Background(), testArticleURL))
	assert.ErrorIs(t, tr.SelectLanguage(context.Background(), "de"), ErrLanguageNotOffered)
	assert.ErrorIs(t, tr.SelectLanguage(context.Background(), "English"), ErrLanguageNotOffered)

	_, translateCalls := fetcher.calls()
	assert.Zero(t, translateCalls)
	assert.Equal(t, model.SectionStateLoaded, tr.Snapshot().State)
}

func TestTranslation_TitleFallsBackToURL(t *testing.T) {
	fetcher := &fakeFetcher{
		source: func(_ context.Context, url string) (*model.SourceArticle, error) {
			return &model.SourceArticle{URL: url, Text: "X", AvailableLanguages: []model.LanguageOption{french}}, nil
		},
		translated: translatedOK("Z"),
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing"))
	require.NoError(t, tr.SelectLanguage(context.Background(), "fr"))

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	assert.Equal(t, "Alan Turing", fetcher.lastTitle)
}

func TestTranslation_NoTitleIsTranslationFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		source: func(_ context.Context, url string) (*model.SourceArticle, error) {
			return &model.SourceArticle{URL: url, Text: "X", AvailableLanguages: []model.LanguageOption{french}}, nil
		},
		translated: translatedOK("Z"),
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), "not-a-wiki-url"))

	assert.ErrorIs(t, tr.SelectLanguage(context.Background(), "fr"), ErrNoTitle)
	assert.Equal(t, model.SectionStateLoaded, tr.Snapshot().State)

	_, translateCalls := fetcher.calls()
	assert.Zero(t, translateCalls)
}

func TestTranslation_ClearFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, tr *Translation)
	}{
		{
			name:  "idle",
			setup: func(*testing.T, *Translation) {},
		},
		{
			name: "loaded",
			setup: func(t *testing.T, tr *Translation) {
				require.NoError(t, tr.Submit(context.Background(), testArticleURL))
			},
		},
		{
			name: "translated",
			setup: func(t *testing.T, tr *Translation) {
				require.NoError(t, tr.Submit(context.Background(), testArticleURL))
				require.NoError(t, tr.SelectLanguage(context.Background(), "fr"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslation(&fakeFetcher{
				source:     sourceOK("X", english, french),
				translated: translatedOK("Z"),
			}, nil)
			tt.setup(t, tr)

			tr.Clear()

			assertCleared(t, tr.Snapshot())
		})
	}
}

func TestTranslation_ClearDuringFetchDiscardsResult(t *testing.T) {
	call := newBlockingCall[*model.SourceArticle]()
	fetcher := &fakeFetcher{
		source: func(ctx context.Context, _ string) (*model.SourceArticle, error) {
			return call.wait(ctx)
		},
	}
	tr := NewTranslation(fetcher, nil)

	alerted := false
	tr.SetAlertCallback(func(error) { alerted = true })

	before := testutil.ToFloat64(metrics.SectionOperationsTotal.WithLabelValues(translationSection, operationFetch, metrics.OutcomeSuperseded))

	done := make(chan error, 1)
	go func() { done <- tr.Submit(context.Background(), testArticleURL) }()

	reqCtx := <-call.started
	assert.Equal(t, model.SectionStateLoadingFetch, tr.Snapshot().State)

	tr.Clear()
	assert.ErrorIs(t, reqCtx.Err(), context.Canceled)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assertCleared(t, tr.Snapshot())
	assert.False(t, alerted)

	after := testutil.ToFloat64(metrics.SectionOperationsTotal.WithLabelValues(translationSection, operationFetch, metrics.OutcomeSuperseded))
	assert.Equal(t, before+1, after)
}

func TestTranslation_ClearDuringTranslateDiscardsResult(t *testing.T) {
	call := newBlockingCall[*model.TranslatedArticle]()
	fetcher := &fakeFetcher{
		source: sourceOK("X", french),
		translated: func(ctx context.Context, _, _ string) (*model.TranslatedArticle, error) {
			// ignores cancellation so the late result reaches the controller
			call.started <- ctx
			return <-call.release, nil
		},
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	done := make(chan error, 1)
	go func() { done <- tr.SelectLanguage(context.Background(), "fr") }()

	<-call.started
	assert.Equal(t, model.SectionStateLoadingTranslate, tr.Snapshot().State)

	tr.Clear()
	call.release <- &model.TranslatedArticle{Text: "late"}

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assertCleared(t, tr.Snapshot())
}

func TestTranslation_NewSubmitSupersedesPending(t *testing.T) {
	first := newBlockingCall[*model.SourceArticle]()
	fetcher := &fakeFetcher{}
	fetcher.source = func(ctx context.Context, url string) (*model.SourceArticle, error) {
		if url == "first" {
			return first.wait(ctx)
		}
		return &model.SourceArticle{URL: url, Title: "Second", Text: "second", AvailableLanguages: []model.LanguageOption{english}}, nil
	}
	tr := NewTranslation(fetcher, nil)

	done := make(chan error, 1)
	go func() { done <- tr.Submit(context.Background(), "first") }()
	firstCtx := <-first.started

	require.NoError(t, tr.Submit(context.Background(), "second"))
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateLoaded, snap.State)
	assert.Equal(t, "second", snap.Form.SourceArticleContent)
	assert.Equal(t, "second", snap.Form.SourceArticleURL)
	assert.Len(t, snap.Records, 1)
}

func TestTranslation_NewSelectionSupersedesPending(t *testing.T) {
	first := newBlockingCall[*model.TranslatedArticle]()
	fetcher := &fakeFetcher{source: sourceOK("X", english, french)}
	fetcher.translated = func(ctx context.Context, title, language string) (*model.TranslatedArticle, error) {
		if language == "fr" {
			return first.wait(ctx)
		}
		return &model.TranslatedArticle{Title: title, Language: language, Text: "english"}, nil
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	done := make(chan error, 1)
	go func() { done <- tr.SelectLanguage(context.Background(), "fr") }()
	frCtx := <-first.started

	require.NoError(t, tr.SelectLanguage(context.Background(), "en"))
	assert.ErrorIs(t, frCtx.Err(), context.Canceled)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	snap := tr.Snapshot()
	assert.Equal(t, model.SectionStateTranslated, snap.State)
	assert.Equal(t, "en", snap.Form.TargetArticleLanguage)
	assert.Equal(t, "english", snap.Form.TranslatedArticleContent)
}

func TestTranslation_SelectLanguageWhileFetching(t *testing.T) {
	call := newBlockingCall[*model.SourceArticle]()
	fetcher := &fakeFetcher{
		source:     sourceOK("X", english),
		translated: translatedOK("Z"),
	}
	tr := NewTranslation(fetcher, nil)
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	fetcher.mu.Lock()
	fetcher.source = func(ctx context.Context, _ string) (*model.SourceArticle, error) { return call.wait(ctx) }
	fetcher.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- tr.Submit(context.Background(), testArticleURL) }()
	<-call.started

	assert.False(t, tr.Snapshot().CanSelectLanguage())
	assert.ErrorIs(t, tr.SelectLanguage(context.Background(), "en"), ErrFetchInProgress)

	call.release <- &model.SourceArticle{Text: "X2", AvailableLanguages: []model.LanguageOption{english}}
	require.NoError(t, <-done)
	assert.Equal(t, "X2", tr.Snapshot().Form.SourceArticleContent)
}

func TestTranslation_UpdateCallbackRevisions(t *testing.T) {
	tr := NewTranslation(&fakeFetcher{
		source:     sourceOK("X", french),
		translated: translatedOK("Z"),
	}, nil)

	var states []model.SectionState
	var last uint64
	tr.SetUpdateCallback(func(s TranslationSnapshot) {
		assert.Greater(t, s.Revision, last)
		last = s.Revision
		states = append(states, s.State)
	})

	require.NoError(t, tr.Submit(context.Background(), testArticleURL))
	require.NoError(t, tr.SelectLanguage(context.Background(), "fr"))
	tr.Clear()

	assert.Equal(t, []model.SectionState{
		model.SectionStateLoadingFetch,
		model.SectionStateLoaded,
		model.SectionStateLoadingTranslate,
		model.SectionStateTranslated,
		model.SectionStateIdle,
	}, states)
}

func TestTranslation_SnapshotIsImmutable(t *testing.T) {
	tr := NewTranslation(&fakeFetcher{source: sourceOK("X", english)}, nil)
	require.NoError(t, tr.Submit(context.Background(), testArticleURL))

	snap := tr.Snapshot()
	snap.Records[0].Editing = "changed"
	snap.Languages[0].Label = "changed"

	fresh := tr.Snapshot()
	assert.Equal(t, "X", fresh.Records[0].Editing)
	assert.Equal(t, "English", fresh.Languages[0].Label)
}

func assertCleared(t *testing.T, snap TranslationSnapshot) {
	t.Helper()
	assert.Equal(t, model.SectionStateIdle, snap.State)
	assert.Equal(t, model.TranslationFormState{}, snap.Form)
	assert.Empty(t, snap.Records)
	assert.Empty(t, snap.Languages)
	assert.Empty(t, snap.Title)
}

func TestTranslationSnapshot_CanSelectLanguage(t *testing.T) {
	offered := []model.LanguageOption{english, french}

	tests := []struct {
		name      string
		state     model.SectionState
		languages []model.LanguageOption
		want      bool
	}{
		{"idle", model.SectionStateIdle, nil, false},
		{"refetching keeps old options", model.SectionStateLoadingFetch, offered, false},
		{"loaded", model.SectionStateLoaded, offered, true},
		{"translating", model.SectionStateLoadingTranslate, offered, true},
		{"translated", model.SectionStateTranslated, offered, true},
		{"loaded without options", model.SectionStateLoaded, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := TranslationSnapshot{State: tt.state, Languages: tt.languages}
			assert.Equal(t, tt.want, snap.CanSelectLanguage())
		})
	}
}
