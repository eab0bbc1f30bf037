package flight

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"

	"github.com/koustreak/dremcat/internal/errs"
)

// rows adapts the Flight record-batch stream to the row-at-a-time
// dremio.Rows contract the introspection layer consumes. Catalog result
// sets are small, so per-row access cost is irrelevant here.
type rows struct {
	rdr    *flight.Reader
	batch  arrow.RecordBatch
	row    int // next row to yield within batch
	closed bool
}

func newRows(rdr *flight.Reader) *rows {
	return &rows{rdr: rdr, row: -1}
}

func (r *rows) Next() bool {
	if r.closed {
		return false
	}
	r.row++
	for r.batch == nil || int64(r.row) >= r.batch.NumRows() {
		if !r.rdr.Next() {
			r.batch = nil
			return false
		}
		r.batch = r.rdr.RecordBatch()
		r.row = 0
	}
	return true
}

func (r *rows) Scan(dest ...any) error {
	if r.batch == nil || int64(r.row) >= r.batch.NumRows() {
		return errs.New(errs.ErrKindInvalidInput, "Scan called without a current row")
	}
	if len(dest) != int(r.batch.NumCols()) {
		return errs.Newf(errs.ErrKindInvalidInput,
			"Scan expects %d destinations, got %d", r.batch.NumCols(), len(dest))
	}
	for i, d := range dest {
		if err := scanValue(r.batch.Column(i), r.row, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *rows) Columns() ([]string, error) {
	schema := r.rdr.Schema()
	if schema == nil {
		return nil, errs.New(errs.ErrKindQueryFailed, "result stream carried no schema")
	}
	cols := make([]string, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		cols[i] = schema.Field(i).Name
	}
	return cols, nil
}

func (r *rows) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.batch = nil
	r.rdr.Release()
}

func (r *rows) Err() error {
	if err := r.rdr.Err(); err != nil {
		return mapError(err, "error iterating result stream")
	}
	return nil
}

// scanValue copies one arrow column value into a Go destination pointer.
// Nulls become the destination's zero value (nil for *any).
func scanValue(col arrow.Array, row int, dest any) error {
	if col.IsNull(row) {
		switch d := dest.(type) {
		case *string:
			*d = ""
		case *bool:
			*d = false
		case *int64:
			*d = 0
		case *float64:
			*d = 0
		case *any:
			*d = nil
		default:
			return errs.Newf(errs.ErrKindInvalidInput, "unsupported scan destination %T", dest)
		}
		return nil
	}

	switch d := dest.(type) {
	case *string:
		*d = stringValue(col, row)
	case *bool:
		c, ok := col.(*array.Boolean)
		if !ok {
			return errs.Newf(errs.ErrKindInvalidInput,
				"cannot scan %s column into *bool", col.DataType())
		}
		*d = c.Value(row)
	case *int64:
		switch c := col.(type) {
		case *array.Int32:
			*d = int64(c.Value(row))
		case *array.Int64:
			*d = c.Value(row)
		default:
			return errs.Newf(errs.ErrKindInvalidInput,
				"cannot scan %s column into *int64", col.DataType())
		}
	case *float64:
		switch c := col.(type) {
		case *array.Float32:
			*d = float64(c.Value(row))
		case *array.Float64:
			*d = c.Value(row)
		default:
			return errs.Newf(errs.ErrKindInvalidInput,
				"cannot scan %s column into *float64", col.DataType())
		}
	case *any:
		*d = anyValue(col, row)
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "unsupported scan destination %T", dest)
	}
	return nil
}

func stringValue(col arrow.Array, row int) string {
	switch c := col.(type) {
	case *array.String:
		return c.Value(row)
	case *array.LargeString:
		return c.Value(row)
	default:
		// ValueStr is implemented by every concrete arrow array type.
		return col.ValueStr(row)
	}
}

func anyValue(col arrow.Array, row int) any {
	switch c := col.(type) {
	case *array.String:
		return c.Value(row)
	case *array.LargeString:
		return c.Value(row)
	case *array.Boolean:
		return c.Value(row)
	case *array.Int32:
		return int64(c.Value(row))
	case *array.Int64:
		return c.Value(row)
	case *array.Float32:
		return float64(c.Value(row))
	case *array.Float64:
		return c.Value(row)
	default:
		return col.ValueStr(row)
	}
}
