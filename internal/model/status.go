package model

// SectionState is the state of the Translation Section.
type SectionState string

const (
	// SectionStateIdle means nothing is fetched
	SectionStateIdle SectionState = "Idle"

	// SectionStateLoadingFetch means the source article request is in flight
	SectionStateLoadingFetch SectionState = "LoadingFetch"

	// SectionStateLoaded means the source article and its languages are available
	SectionStateLoaded SectionState = "Loaded"

	// SectionStateLoadingTranslate means the translated article request is in flight
	SectionStateLoadingTranslate SectionState = "LoadingTranslate"

	// SectionStateTranslated means a translation is shown
	SectionStateTranslated SectionState = "Translated"
)

// String returns the string representation of SectionState
func (s SectionState) String() string {
	return string(s)
}

// IsLoading returns true while a request is in flight
func (s SectionState) IsLoading() bool {
	return s == SectionStateLoadingFetch || s == SectionStateLoadingTranslate
}

// HasSource returns true when a source article is available
func (s SectionState) HasSource() bool {
	return s == SectionStateLoaded || s == SectionStateLoadingTranslate || s == SectionStateTranslated
}

// ComparisonState is the state of the Comparison Section.
type ComparisonState string

const (
	ComparisonStateIdle      ComparisonState = "Idle"
	ComparisonStateComparing ComparisonState = "Comparing"
	ComparisonStateCompared  ComparisonState = "Compared"
)

// String returns the string representation of ComparisonState
func (s ComparisonState) String() string {
	return string(s)
}

// IsLoading returns true while the comparison request is in flight
func (s ComparisonState) IsLoading() bool {
	return s == ComparisonStateComparing
}

// Phase is the top-level UI mode.
type Phase string

const (
	PhaseTranslation  Phase = "translation"
	PhaseAIComparison Phase = "ai_comparison"
)

// ParsePhase maps a stored phase name back to a Phase, defaulting to translation.
func ParsePhase(name string) Phase {
	if Phase(name) == PhaseAIComparison {
		return PhaseAIComparison
	}
	return PhaseTranslation
}
