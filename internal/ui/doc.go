package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the Translation and AI Comparison phases, forwards user actions to
// the section controllers and shows their snapshots. All UI strings are
// localized via Localization.
