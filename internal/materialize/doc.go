// Package materialize populates a new episode directory: it copies the
// skeleton tree from the template directory and renders description.md with
// the run's placeholder values.
package materialize
