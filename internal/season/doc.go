// Package season locates and creates season directories.
//
// A season directory is named with the configured prefix followed by digits.
// When no season is requested, the last matching entry in directory-listing
// order is taken as the latest. Listing order is lexical, so a "Season 10"
// directory is never picked over "Season 2"; callers rely on this exact rule.
package season
