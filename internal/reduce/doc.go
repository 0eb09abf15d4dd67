// Package reduce turns raw page markup into clean, bounded text chunks.
//
// The pipeline is three pure steps: ExtractBody isolates the body region,
// Clean strips non-content tags and collapses the result into trimmed,
// non-blank lines, and SplitBounded partitions the cleaned text into
// byte-bounded chunks for downstream consumers. Every step tolerates
// malformed input by returning an empty result instead of an error.
//
// Built on specialized libraries:
//   - goquery: jQuery-like CSS selectors
//   - chardet + x/net/html/charset: automatic charset detection
//   - bluemonday: sanitization for raw previews
package reduce
