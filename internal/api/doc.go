package api

// Package api contains the single HTTP client bound to the resolved backend base
// URL. Every backend call goes through it; it adds request IDs, logs, records
// metrics and turns non-2xx responses into *APIError values.
