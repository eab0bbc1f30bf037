// Package introspect is the generic INFORMATION_SCHEMA introspection layer.
//
// It answers metadata questions for a fully qualified engine schema name.
// Namespace translation (database prefix handling) is NOT this package's
// job — callers in the catalog package qualify every schema name before it
// crosses this boundary.
package introspect

import (
	"context"
	"fmt"

	"github.com/koustreak/dremcat/internal/dremio"
	"github.com/koustreak/dremcat/internal/errs"
)

// RelationType distinguishes tables from views in discovery results.
type RelationType string

const (
	RelationTable RelationType = "TABLE"
	RelationView  RelationType = "VIEW"
)

// Relation is one discovered table or view.
type Relation struct {
	Name string
	Type RelationType
}

// ColumnInfo describes a single column of a relation.
type ColumnInfo struct {
	Name      string
	DataType  string // canonical name after type mapping
	Nullable  bool
	Ordinal   int
	MaxLength *int // character types only
}

// Constraint describes a declared constraint on a relation.
type Constraint struct {
	Name    string
	Type    string
	Columns []string
}

// Inspector runs metadata queries against one engine session. It holds the
// type-mapping table it was constructed with; the table is never global.
type Inspector struct {
	db    dremio.DB
	types dremio.TypeMap
}

// New creates an Inspector over db using the given type-mapping table.
func New(db dremio.DB, types dremio.TypeMap) *Inspector {
	if types == nil {
		types = dremio.DefaultTypeMap()
	}
	return &Inspector{db: db, types: types}
}

// SchemaNames returns every schema name the engine reports, verbatim.
func (in *Inspector) SchemaNames(ctx context.Context) ([]string, error) {
	const q = `
SELECT SCHEMA_NAME
FROM INFORMATION_SCHEMA.SCHEMATA
ORDER BY SCHEMA_NAME`
	return in.fetchStrings(ctx, q, "list schemas")
}

// TableNamesAndTypes returns the tables of a fully qualified schema.
func (in *Inspector) TableNamesAndTypes(ctx context.Context, schema string) ([]Relation, error) {
	return in.relations(ctx, schema, RelationTable)
}

// ViewNamesAndTypes returns the views of a fully qualified schema.
func (in *Inspector) ViewNamesAndTypes(ctx context.Context, schema string) ([]Relation, error) {
	return in.relations(ctx, schema, RelationView)
}

func (in *Inspector) relations(ctx context.Context, schema string, typ RelationType) ([]Relation, error) {
	q := `
SELECT TABLE_NAME
FROM INFORMATION_SCHEMA."TABLES"
WHERE TABLE_SCHEMA = ` + dremio.QuoteLiteral(schema) + `
  AND TABLE_TYPE = ` + dremio.QuoteLiteral(string(typ)) + `
ORDER BY TABLE_NAME`

	names, err := in.fetchStrings(ctx, q, fmt.Sprintf("list %ss in %s", typ, schema))
	if err != nil {
		return nil, err
	}
	rels := make([]Relation, len(names))
	for i, n := range names {
		rels[i] = Relation{Name: n, Type: typ}
	}
	return rels, nil
}

// Columns returns the column metadata of one relation, with engine type
// names already mapped to their canonical forms.
func (in *Inspector) Columns(ctx context.Context, schema, table string) ([]ColumnInfo, error) {
	q := `
SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, ORDINAL_POSITION, CHARACTER_MAXIMUM_LENGTH
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = ` + dremio.QuoteLiteral(schema) + `
  AND TABLE_NAME = ` + dremio.QuoteLiteral(table) + `
ORDER BY ORDINAL_POSITION`

	rows, err := in.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var (
			col      ColumnInfo
			dataType string
			nullable string
			ordinal  int64
			maxLen   int64
		)
		if err := rows.Scan(&col.Name, &dataType, &nullable, &ordinal, &maxLen); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan column metadata", err)
		}
		col.DataType = in.types.Resolve(dataType)
		col.Nullable = nullable == "YES"
		col.Ordinal = int(ordinal)
		if maxLen > 0 {
			l := int(maxLen)
			col.MaxLength = &l
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "relation %s.%s not found or has no columns", schema, table)
	}
	return cols, nil
}

// Constraints returns the declared constraints of one relation. Dremio's
// INFORMATION_SCHEMA exposes no constraint catalog, so the result is
// always empty; absence means "none declared", not failure.
func (in *Inspector) Constraints(ctx context.Context, schema, table string) ([]Constraint, error) {
	return nil, nil
}

// SchemaDefinition returns the SQL definition of a view. Tables have no
// retrievable definition on this engine; asking for one yields an
// Unsupported error the caller treats as "not available".
func (in *Inspector) SchemaDefinition(ctx context.Context, schema, table string) (string, error) {
	q := `
SELECT VIEW_DEFINITION
FROM INFORMATION_SCHEMA.VIEWS
WHERE TABLE_SCHEMA = ` + dremio.QuoteLiteral(schema) + `
  AND TABLE_NAME = ` + dremio.QuoteLiteral(table)

	defs, err := in.fetchStrings(ctx, q, fmt.Sprintf("view definition of %s.%s", schema, table))
	if err != nil {
		return "", err
	}
	if len(defs) == 0 {
		return "", errs.Newf(errs.ErrKindUnsupported,
			"%s.%s is not a view; table definitions are not available on this engine", schema, table)
	}
	return defs[0], nil
}

// HasTableComments reports whether the engine can serve table or column
// comments. Dremio's Flight dialect cannot.
func (in *Inspector) HasTableComments() bool { return false }

// TableComment returns the comment of a relation. Unsupported on this
// engine: the result is empty, never an error.
func (in *Inspector) TableComment(ctx context.Context, schema, table string) (string, error) {
	return "", nil
}

// fetchStrings runs a query returning a single text column.
func (in *Inspector) fetchStrings(ctx context.Context, q, what string) ([]string, error) {
	rows, err := in.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan "+what, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
