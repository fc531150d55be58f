// Package placeholder substitutes [tokenName] markers in template text.
//
// Matching is literal and case-sensitive. Unknown bracketed text passes
// through as-is, which keeps markdown links and XML CDATA sections intact.
package placeholder
