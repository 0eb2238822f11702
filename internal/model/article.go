package model

// LanguageOption is one selectable target language. Value is the backend
// language code and is unique within an offered set; Label is shown to the user.
type LanguageOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SourceArticle is the result of fetching an article by URL.
type SourceArticle struct {
	URL                string           `json:"url"`
	Title              string           `json:"title,omitempty"`
	Text               string           `json:"source_article_text"`
	AvailableLanguages []LanguageOption `json:"available_languages"`
}

// TranslatedArticle is the result of fetching an article in a target language.
type TranslatedArticle struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Text     string `json:"translated_text"`
}

// Labels returns the option labels in order.
func Labels(options []LanguageOption) []string {
	labels := make([]string, 0, len(options))
	for _, o := range options {
		labels = append(labels, o.Label)
	}
	return labels
}

// FindByValue returns the option with the given value.
func FindByValue(options []LanguageOption, value string) (LanguageOption, bool) {
	for _, o := range options {
		if o.Value == value {
			return o, true
		}
	}
	return LanguageOption{}, false
}

// FindByLabel returns the option with the given label.
func FindByLabel(options []LanguageOption, label string) (LanguageOption, bool) {
	for _, o := range options {
		if o.Label == label {
			return o, true
		}
	}
	return LanguageOption{}, false
}
