// Package importer loads catalog sites from CSV files.
//
// The CSV format is header-driven: the legacy columns (website_url,
// platform, industry, tags) are plain text, and the enriched columns
// (platforms, industries, colors, tag_confidence, enrichment_signals)
// carry JSON. Missing legacy display values are derived from the JSON
// columns so exports from an enriched catalog round-trip cleanly.
//
// Imports are bounded (file size and row count caps) and row-isolated:
// one malformed or duplicate row is recorded and skipped, and the rest
// of the file still imports.
package importer
