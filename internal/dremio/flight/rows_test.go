package flight

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dremcat/internal/errs"
)

func TestScanValue_String(t *testing.T) {
	b := array.NewStringBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.Append("sales")
	b.AppendNull()
	col := b.NewStringArray()
	defer col.Release()

	var s string
	require.NoError(t, scanValue(col, 0, &s))
	assert.Equal(t, "sales", s)

	require.NoError(t, scanValue(col, 1, &s))
	assert.Equal(t, "", s, "null scans as zero value")
}

func TestScanValue_Int64(t *testing.T) {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(42)
	b.AppendNull()
	col := b.NewInt64Array()
	defer col.Release()

	var n int64
	require.NoError(t, scanValue(col, 0, &n))
	assert.Equal(t, int64(42), n)

	require.NoError(t, scanValue(col, 1, &n))
	assert.Equal(t, int64(0), n)
}

func TestScanValue_Int32IntoInt64(t *testing.T) {
	b := array.NewInt32Builder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(7)
	col := b.NewInt32Array()
	defer col.Release()

	var n int64
	require.NoError(t, scanValue(col, 0, &n))
	assert.Equal(t, int64(7), n)
}

func TestScanValue_Float64(t *testing.T) {
	b := array.NewFloat64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(3.5)
	col := b.NewFloat64Array()
	defer col.Release()

	var f float64
	require.NoError(t, scanValue(col, 0, &f))
	assert.Equal(t, 3.5, f)
}

func TestScanValue_Bool(t *testing.T) {
	b := array.NewBooleanBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(true)
	col := b.NewBooleanArray()
	defer col.Release()

	var v bool
	require.NoError(t, scanValue(col, 0, &v))
	assert.True(t, v)
}

func TestScanValue_Any(t *testing.T) {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(9)
	b.AppendNull()
	col := b.NewInt64Array()
	defer col.Release()

	var v any
	require.NoError(t, scanValue(col, 0, &v))
	assert.Equal(t, int64(9), v)

	require.NoError(t, scanValue(col, 1, &v))
	assert.Nil(t, v)
}

func TestScanValue_NonStringIntoString(t *testing.T) {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.Append(123)
	col := b.NewInt64Array()
	defer col.Release()

	var s string
	require.NoError(t, scanValue(col, 0, &s))
	assert.Equal(t, "123", s)
}

func TestScanValue_TypeMismatch(t *testing.T) {
	b := array.NewStringBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.Append("not a number")
	col := b.NewStringArray()
	defer col.Release()

	var n int64
	err := scanValue(col, 0, &n)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))

	var f float64
	err = scanValue(col, 0, &f)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))

	var v bool
	err = scanValue(col, 0, &v)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestScanValue_UnsupportedDestination(t *testing.T) {
	b := array.NewStringBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.Append("x")
	col := b.NewStringArray()
	defer col.Release()

	var n int
	err := scanValue(col, 0, &n)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}
