// Package section holds the UI-independent controllers behind the two desktop
// phases. Controllers own their state behind a mutex, run one request of each
// kind at a time and publish immutable snapshots to a single observer.
package section
