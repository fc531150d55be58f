// Package projectfile regenerates the video editing project for a new
// episode.
//
// The series keeps one compressed project as a template. Generate unpacks
// its single payload into a scratch directory, fills the bracketed
// placeholders, and writes a recompressed copy named after the episode date.
// The codec follows the template's final extension: gzip for ".gz" and
// zstandard for ".zst".
package projectfile
