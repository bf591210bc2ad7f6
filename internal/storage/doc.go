// Package storage persists transformation runs to SQL databases.
//
// SQLSink supports SQLite (modernc.org/sqlite, pure Go) and PostgreSQL
// (github.com/lib/pq). Each run writes one amount_summaries row and one
// funding_rounds row per record, keyed by run id, inside one transaction.
// Missing amounts, z-scores, dates and years are stored as NULL.
package storage
