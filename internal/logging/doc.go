// Package logging builds the slog loggers used by vlogman.
//
// Output goes to stderr by default so command output on stdout stays clean.
// Two formats exist: a compact console line with optional level colours, and
// JSON for piping into other tools. Run-scoped fields such as the run id are
// carried on the context and attached with WithContext.
package logging
