// Package database provides SQLite-based storage for the site catalog.
//
// This package implements the CatalogDB, which stores:
//   - Cataloged site records with detection results and usage metadata
//   - User-suggested tag feedback awaiting review
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for a catalog in the tens of thousands of rows
// 4. WAL mode provides good concurrent read performance
//
// Structured detection results (platform lists, tag confidence maps, raw
// signal snapshots) are stored as JSON text columns next to the flat
// columns search filters on. SQLite never inspects the JSON; it is
// decoded only when a row is loaded.
package database
