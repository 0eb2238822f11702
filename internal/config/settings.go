package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage       = "app_language"
	KeyLastArticleURL = "last_article_url"
	KeyLastPhase      = "last_phase"
)

// Default values
const (
	DefaultLanguage  = "system"
	DefaultLastPhase = "translation"
)

// Settings manages UI preferences. Article data is never stored here.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLastArticleURL returns the last submitted source article URL
func (s *Settings) GetLastArticleURL() string {
	return s.app.Preferences().String(KeyLastArticleURL)
}

// SetLastArticleURL remembers the last submitted source article URL
func (s *Settings) SetLastArticleURL(url string) {
	s.app.Preferences().SetString(KeyLastArticleURL, url)
}

// GetLastPhase returns the phase that was active when the app was closed
func (s *Settings) GetLastPhase() string {
	return s.app.Preferences().StringWithFallback(KeyLastPhase, DefaultLastPhase)
}

// SetLastPhase stores the active phase
func (s *Settings) SetLastPhase(phase string) {
	if phase == "" {
		phase = DefaultLastPhase
	}
	s.app.Preferences().SetString(KeyLastPhase, phase)
}
