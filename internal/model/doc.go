package model

// Package model defines the domain data held in UI memory: articles and their
// language options, display records with their suggestion kind, the translation
// form, comparison results, and the state enums of the two sections.
