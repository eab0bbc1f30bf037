package introspect

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dremcat/internal/dremio"
	"github.com/koustreak/dremcat/internal/errs"
)

type fakeRows struct {
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
	for i, v := range row {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		default:
			return fmt.Errorf("unsupported scan destination %T", dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Columns() ([]string, error) { return nil, nil }
func (r *fakeRows) Close()                     {}
func (r *fakeRows) Err() error                 { return nil }

type fakeDB struct {
	handler func(sql string) ([][]any, error)
	queries []string
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close() error                   { return nil }

func (db *fakeDB) Query(ctx context.Context, sql string) (dremio.Rows, error) {
	db.queries = append(db.queries, sql)
	data, err := db.handler(sql)
	if err != nil {
		return nil, err
	}
	return &fakeRows{data: data}, nil
}

func (db *fakeDB) last() string { return db.queries[len(db.queries)-1] }

func TestSchemaNames(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) {
		return [][]any{{"sales"}, {"sales.public"}}, nil
	}}
	in := New(db, nil)

	names, err := in.SchemaNames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"sales", "sales.public"}, names)
	assert.Contains(t, db.last(), "INFORMATION_SCHEMA.SCHEMATA")
}

func TestTableNamesAndTypes(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) {
		return [][]any{{"orders"}}, nil
	}}
	in := New(db, nil)

	tables, err := in.TableNamesAndTypes(context.Background(), "sales.public")
	require.NoError(t, err)

	assert.Equal(t, []Relation{{Name: "orders", Type: RelationTable}}, tables)
	assert.Contains(t, db.last(), "TABLE_SCHEMA = 'sales.public'")
	assert.Contains(t, db.last(), "TABLE_TYPE = 'TABLE'")
}

func TestViewNamesAndTypes(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) {
		return [][]any{{"summary"}}, nil
	}}
	in := New(db, nil)

	views, err := in.ViewNamesAndTypes(context.Background(), "sales.reporting")
	require.NoError(t, err)

	assert.Equal(t, []Relation{{Name: "summary", Type: RelationView}}, views)
	assert.Contains(t, db.last(), "TABLE_TYPE = 'VIEW'")
}

func TestRelations_EscapesSchemaLiteral(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) { return nil, nil }}
	in := New(db, nil)

	_, err := in.TableNamesAndTypes(context.Background(), "it's")
	require.NoError(t, err)
	assert.Contains(t, db.last(), "'it''s'")
}

func TestColumns(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) {
		if !strings.Contains(sql, "INFORMATION_SCHEMA.COLUMNS") {
			return nil, nil
		}
		return [][]any{
			{"id", "BIGINT", "NO", int64(1), int64(0)},
			{"price", "double", "YES", int64(2), int64(0)},
			{"name", "CHARACTER VARYING", "YES", int64(3), int64(64)},
		}, nil
	}}
	in := New(db, dremio.DefaultTypeMap())

	cols, err := in.Columns(context.Background(), "sales.public", "orders")
	require.NoError(t, err)
	require.Len(t, cols, 3)

	assert.Equal(t, ColumnInfo{Name: "id", DataType: "BIGINT", Nullable: false, Ordinal: 1}, cols[0])
	assert.Equal(t, "DOUBLE", cols[1].DataType)
	assert.True(t, cols[1].Nullable)
	assert.Equal(t, "VARCHAR", cols[2].DataType)
	require.NotNil(t, cols[2].MaxLength)
	assert.Equal(t, 64, *cols[2].MaxLength)
	assert.Nil(t, cols[0].MaxLength)
}

func TestColumns_UnknownRelation(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) { return nil, nil }}
	in := New(db, nil)

	_, err := in.Columns(context.Background(), "sales.public", "nope")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestConstraints_Empty(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) { return nil, nil }}
	in := New(db, nil)

	constraints, err := in.Constraints(context.Background(), "sales.public", "orders")
	require.NoError(t, err)
	assert.Empty(t, constraints)
	assert.Empty(t, db.queries, "no constraint catalog exists to query")
}

func TestSchemaDefinition(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) {
		if strings.Contains(sql, "'summary'") {
			return [][]any{{"SELECT 1"}}, nil
		}
		return nil, nil
	}}
	in := New(db, nil)

	def, err := in.SchemaDefinition(context.Background(), "sales.reporting", "summary")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", def)

	_, err = in.SchemaDefinition(context.Background(), "sales.public", "orders")
	require.Error(t, err)
	assert.True(t, errs.IsUnsupported(err))
}

func TestTableComment_Unsupported(t *testing.T) {
	db := &fakeDB{handler: func(sql string) ([][]any, error) { return nil, nil }}
	in := New(db, nil)

	assert.False(t, in.HasTableComments())

	comment, err := in.TableComment(context.Background(), "sales.public", "orders")
	require.NoError(t, err)
	assert.Equal(t, "", comment)
	assert.Empty(t, db.queries)
}
