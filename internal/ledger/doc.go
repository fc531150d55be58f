// Package ledger keeps a local SQLite history of scaffolded episodes.
//
// Every successful run appends one row; `vlogman history` reads them back
// newest first. Schema changes ship as embedded SQL migrations applied on
// Open.
package ledger
