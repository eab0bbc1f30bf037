package catalog

import (
	"context"
	"fmt"

	"github.com/koustreak/dremcat/internal/dremio"
)

// fakeRows serves canned single-or-multi column results.
type fakeRows struct {
	cols []string
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan expects %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		case *bool:
			*d = v.(bool)
		case *float64:
			*d = v.(float64)
		case *any:
			*d = v
		default:
			return fmt.Errorf("unsupported scan destination %T", dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Columns() ([]string, error) { return r.cols, nil }
func (r *fakeRows) Close()                     {}
func (r *fakeRows) Err() error                 { return nil }

// fakeDB routes queries to a handler and records every SQL statement.
type fakeDB struct {
	handler func(sql string) ([][]any, error)
	queries []string
	closed  bool
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }

func (db *fakeDB) Close() error {
	db.closed = true
	return nil
}

func (db *fakeDB) Query(ctx context.Context, sql string) (dremio.Rows, error) {
	db.queries = append(db.queries, sql)
	data, err := db.handler(sql)
	if err != nil {
		return nil, err
	}
	return &fakeRows{data: data}, nil
}

// fakeEngine builds connectors over fakeDB instances and tracks their
// lifecycle so tests can assert on rebuilds and teardowns.
type fakeEngine struct {
	handler       func(sql string) ([][]any, error)
	dbs           []*fakeDB
	connects      int
	failOnConnect int // 1-based connect attempt that fails; 0 = never
}

func (e *fakeEngine) connect(ctx context.Context, opts dremio.Options) (dremio.DB, error) {
	e.connects++
	if e.failOnConnect != 0 && e.connects == e.failOnConnect {
		return nil, fmt.Errorf("engine unreachable")
	}
	db := &fakeDB{handler: e.handler}
	e.dbs = append(e.dbs, db)
	return db, nil
}

// allQueries flattens the SQL issued across every connection, in order.
func (e *fakeEngine) allQueries() []string {
	var out []string
	for _, db := range e.dbs {
		out = append(out, db.queries...)
	}
	return out
}

// stringRows adapts a list of names to single-column query results.
func stringRows(names ...string) [][]any {
	rows := make([][]any, len(names))
	for i, n := range names {
		rows[i] = []any{n}
	}
	return rows
}

// fakeReporter records status events for assertions.
type fakeReporter struct {
	scanned  []string
	filtered map[string]string
	warnings []string
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{filtered: map[string]string{}}
}

func (r *fakeReporter) Scanned(entity string) { r.scanned = append(r.scanned, entity) }

func (r *fakeReporter) Filtered(entity, reason string) { r.filtered[entity] = reason }

func (r *fakeReporter) Warning(entity string, err error) {
	r.warnings = append(r.warnings, entity)
}

// baseOptions returns a valid option map for session construction.
func baseOptions() dremio.Options {
	return dremio.Options{
		"username": "u",
		"password": "p",
		"hostPort": "h:32010",
	}
}
