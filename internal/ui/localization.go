package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyTranslation       = "translation"
	KeyAIComparison      = "ai_comparison"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyInterfaceLanguage = "interface_language"
	KeyBackendURL        = "backend_url"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyEnterURL          = "enter_url"
	KeySubmit            = "submit"
	KeyClear             = "clear"
	KeyCompare           = "compare"
	KeyTargetLanguage    = "target_language"
	KeySelectLanguage    = "select_language"
	KeySourceArticle     = "source_article"
	KeyTranslatedArticle = "translated_article"
	KeyFetching          = "fetching"
	KeyTranslating       = "translating"
	KeyComparing         = "comparing"
	KeyLeftText          = "left_text"
	KeyRightText         = "right_text"
	KeyComparisonSummary = "comparison_summary"
	KeyNoComparisons     = "no_comparisons"
	KeyBothTextsRequired = "both_texts_required"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyConfigError       = "config_error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Symmetry",
		KeyTranslation:       "Translation",
		KeyAIComparison:      "AI Comparison",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyInterfaceLanguage: "Interface Language",
		KeyBackendURL:        "Backend URL",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyEnterURL:          "Enter Wikipedia article URL (https://en.wikipedia.org/wiki/...)",
		KeySubmit:            "Submit",
		KeyClear:             "Clear",
		KeyCompare:           "Compare",
		KeyTargetLanguage:    "Target language",
		KeySelectLanguage:    "Select language",
		KeySourceArticle:     "Source article",
		KeyTranslatedArticle: "Translated article",
		KeyFetching:          "Fetching article...",
		KeyTranslating:       "Fetching translation...",
		KeyComparing:         "Comparing articles...",
		KeyLeftText:          "First article text",
		KeyRightText:         "Second article text",
		KeyComparisonSummary: "%d missing, %d extra",
		KeyNoComparisons:     "No comparable passages found",
		KeyBothTextsRequired: "Both texts are required",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyConfigError:       "Cannot reach the backend configuration",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Symmetry",
		KeyTranslation:       "Перевод",
		KeyAIComparison:      "ИИ-сравнение",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyInterfaceLanguage: "Язык интерфейса",
		KeyBackendURL:        "Адрес сервера",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyEnterURL:          "Введите URL статьи Википедии (https://ru.wikipedia.org/wiki/...)",
		KeySubmit:            "Загрузить",
		KeyClear:             "Очистить",
		KeyCompare:           "Сравнить",
		KeyTargetLanguage:    "Язык перевода",
		KeySelectLanguage:    "Выберите язык",
		KeySourceArticle:     "Исходная статья",
		KeyTranslatedArticle: "Переведённая статья",
		KeyFetching:          "Загрузка статьи...",
		KeyTranslating:       "Загрузка перевода...",
		KeyComparing:         "Сравнение статей...",
		KeyLeftText:          "Текст первой статьи",
		KeyRightText:         "Текст второй статьи",
		KeyComparisonSummary: "%d отсутствует, %d лишних",
		KeyNoComparisons:     "Сопоставимые фрагменты не найдены",
		KeyBothTextsRequired: "Нужны оба текста",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyConfigError:       "Не удалось получить конфигурацию сервера",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Symmetry",
		KeyTranslation:       "Tradução",
		KeyAIComparison:      "Comparação por IA",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyInterfaceLanguage: "Idioma da Interface",
		KeyBackendURL:        "URL do Servidor",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyEnterURL:          "Digite a URL do artigo da Wikipédia (https://pt.wikipedia.org/wiki/...)",
		KeySubmit:            "Enviar",
		KeyClear:             "Limpar",
		KeyCompare:           "Comparar",
		KeyTargetLanguage:    "Idioma de destino",
		KeySelectLanguage:    "Selecione o idioma",
		KeySourceArticle:     "Artigo de origem",
		KeyTranslatedArticle: "Artigo traduzido",
		KeyFetching:          "Buscando artigo...",
		KeyTranslating:       "Buscando tradução...",
		KeyComparing:         "Comparando artigos...",
		KeyLeftText:          "Texto do primeiro artigo",
		KeyRightText:         "Texto do segundo artigo",
		KeyComparisonSummary: "%d ausentes, %d extras",
		KeyNoComparisons:     "Nenhum trecho comparável encontrado",
		KeyBothTextsRequired: "Ambos os textos são obrigatórios",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyConfigError:       "Não foi possível obter a configuração do servidor",
	}
}
