// Package episode names and creates per-episode directories.
//
// Episode directories live inside a season directory and are named from the
// recording date, its en-US short weekday, and the episode title. The package
// also owns the two-digit season and episode identifiers used in templates.
package episode
