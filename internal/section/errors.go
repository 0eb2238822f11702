package section

import "errors"

var (
	// ErrLanguageNotOffered is returned when the selected language is not one of
	// the options offered for the current source article.
	ErrLanguageNotOffered = errors.New("language is not offered for this article")

	// ErrFetchInProgress is returned when a language is selected while the
	// source article is still loading.
	ErrFetchInProgress = errors.New("source article is still loading")

	// ErrNoTitle is returned when no article title can be derived for translation.
	ErrNoTitle = errors.New("cannot derive article title from source URL")

	// ErrNothingToCompare is returned when there is no translation to compare.
	ErrNothingToCompare = errors.New("no translated article to compare")

	// ErrSuperseded is returned by an operation whose result was discarded
	// because a newer operation of the same kind or a Clear started meanwhile.
	ErrSuperseded = errors.New("operation superseded")
)
