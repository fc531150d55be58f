// Package pipeline scaffolds one vlog episode from a raw command line.
//
// Run chains the stages in a fixed order: load vlog-manager.json, parse the
// arguments, resolve the season, create the episode directory, copy the
// skeleton and description, then regenerate the editing project. After
// the last stage the run is appended to the history ledger. Stages never
// overlap and nothing is rolled back when one fails.
package pipeline
