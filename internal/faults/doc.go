// Package faults defines the flat error taxonomy shared by every vlogman stage.
//
// Each failure is tagged with one sentinel marker (configuration, usage,
// missing/invalid argument, file system, template copy, decompression) via
// Wrap. The CLI inspects the marker to decide whether the help screen follows
// the message; every marker maps to exit status 1.
package faults
