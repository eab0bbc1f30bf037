// Package dremio defines the contract between dremcat and a Dremio engine:
// the DB query interface, connection-option resolution, the fixed namespace
// catalog queries, and the engine-type mapping table.
package dremio

import "context"

// DB is the central contract for all engine access. All layers above this
// package talk only to this interface — they never import the flight
// package directly.
//
// Dremio queries arrive as self-contained SQL commands on the Flight
// transport; there is no bind-parameter channel, so Query takes no args.
// Callers escape literals with QuoteLiteral before interpolating.
type DB interface {
	// Ping verifies the engine is reachable and the session authenticates.
	Ping(ctx context.Context) error

	// Close releases the underlying transport connection.
	Close() error

	// Query executes a read-only SQL statement and returns its rows.
	Query(ctx context.Context, sql string) (Rows, error)
}

// Rows is an abstraction over an engine result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Connector opens a DB from resolved connection options. The discovery
// session holds one so it can rebuild the engine on every database switch
// without knowing about the transport.
type Connector func(ctx context.Context, opts Options) (DB, error)
