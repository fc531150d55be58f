// Package config loads the two configuration sources vlogman reads.
//
// Series configuration lives in vlog-manager.json in the working directory and
// describes naming conventions, template locations, and author handles. It is
// required: a missing file, invalid JSON, or an absent key is a configuration
// error. Settings live in an optional per-user TOML file and tune logging, the
// history ledger, and skeleton copy behaviour; defaults apply when it is absent.
//
// Always obtain settings through this package so downstream code receives
// expanded paths and canonical log formats.
package config
