// Package cliargs parses the scaffold command line.
//
// Flags are located by exact token match: the short spelling is searched
// first, then the long one, and the token right after the first hit is the
// value. Repeated flags are ignored after the first occurrence and a flag in
// the last position counts as absent. Dates resolve to midday UTC so the
// calendar day survives local time zone conversion.
package cliargs
