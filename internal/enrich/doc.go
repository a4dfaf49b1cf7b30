// Package enrich implements the site enrichment detectors and the HTML
// fetcher that feeds them.
//
// Enrichment turns one fetched HTML document into structured signals:
//   - platform detection: signature substrings scored per CMS/framework
//   - industry detection: keyword occurrence counts over extracted text
//   - tag extraction: frequent meaningful words with rank-based confidence
//   - color extraction: first two distinct hex colors from meta tags and
//     inline styles
//
// All detectors are pure functions of their input text or HTML: the same
// document always produces the same signals, and every detector is total
// over arbitrary input including the empty string. Parse problems degrade
// to empty results instead of propagating, because partial enrichment is
// strictly better than none.
//
// The signature and keyword tables are loaded once and treated as
// read-only constants; a config file can extend them at startup but
// nothing mutates them afterwards.
package enrich
