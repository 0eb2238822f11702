package model

// SuggestionType classifies a displayed text segment and drives its emphasis.
// The set is closed: every switch over it handles all three values.
type SuggestionType int

const (
	SuggestionNone SuggestionType = iota
	SuggestionChange
	SuggestionAddition
)

// AllSuggestionTypes lists every suggestion kind.
var AllSuggestionTypes = []SuggestionType{SuggestionNone, SuggestionChange, SuggestionAddition}

// String returns the name of the suggestion kind ("" for none).
func (s SuggestionType) String() string {
	switch s {
	case SuggestionChange:
		return "change"
	case SuggestionAddition:
		return "addition"
	case SuggestionNone:
		return ""
	default:
		return ""
	}
}

// ArticleText is one displayable text block.
type ArticleText struct {
	Editing               string         // mutable working copy
	Reference             string         // original text, never modified
	SuggestedContribution string         // proposed text, if any
	SuggestionType        SuggestionType // display emphasis
}

// NewArticleText creates a record whose working copy starts as the reference.
func NewArticleText(reference string, kind SuggestionType) ArticleText {
	return ArticleText{
		Editing:        reference,
		Reference:      reference,
		SuggestionType: kind,
	}
}

// TranslationFormState is the form data of one Translation Section.
type TranslationFormState struct {
	SourceArticleURL         string
	TargetArticleLanguage    string
	SourceArticleContent     string
	TranslatedArticleContent string
}
