// Package workspace guards a series working directory against concurrent
// runs with a flock-based lock file.
package workspace
