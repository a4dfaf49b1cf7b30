// Package model defines the core data structures for the site catalog:
// site records, detection results, enrichment reports, tag feedback, and
// the usage-derived heat score.
//
// Design decision: We separate models into their own package to avoid
// circular dependencies. Multiple packages (search, enrich, database,
// report) need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output
// and for the JSON columns of the record store.
package model
