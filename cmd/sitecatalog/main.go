// Package main provides the entry point for the sitecatalog CLI.
//
// sitecatalog is a personal website catalog with weighted text search and
// an HTML-scraping enrichment pipeline. It detects the platform, industry,
// tags, and brand colors of cataloged sites from their landing pages.
//
// Usage:
//
//	sitecatalog search <query>
//	sitecatalog enrich <website-url>
//	sitecatalog enrich --list <file>
//	sitecatalog import <csv-file>
//
// See --help for all available options.
package main

// main is the entry point for sitecatalog.
func main() {
	Execute()
}
