package article

// Package article fetches source articles and their translated versions from the
// backend and maps the responses to model types.
