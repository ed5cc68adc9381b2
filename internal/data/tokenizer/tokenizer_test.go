package tokenizer

import (
	"testing"

	"github.com/penwyp/go-garmin-csv/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepAll(row model.RawRow, _ int, columns []string) *model.NormalizedRow {
	return &model.NormalizedRow{Row: row, Columns: columns, Type: model.MetricSteps}
}

func TestParseHeaderAndRows(t *testing.T) {
	table, err := Parse(",Actual\nNov 15,8000\nNov 16,9000", keepAll)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Actual"}, table.Columns)
	rows := Materialize(table)
	require.Len(t, rows, 2)
	assert.Equal(t, model.RawRow{"": "Nov 15", "Actual": "8000"}, rows[0].Row)
	assert.Equal(t, "9000", rows[1].Row["Actual"])
}

func TestParseShortRecordFillsEmpty(t *testing.T) {
	table, err := Parse("a,b,c\n1,2", keepAll)
	require.NoError(t, err)

	rows := Materialize(table)
	require.Len(t, rows, 1)
	assert.Equal(t, model.RawRow{"a": "1", "b": "2", "c": ""}, rows[0].Row)
}

func TestParseDuplicateHeaderKeepsLast(t *testing.T) {
	table, err := Parse("a,a\n1,2", keepAll)
	require.NoError(t, err)

	rows := Materialize(table)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Row["a"])
}

func TestParseDropsNilResults(t *testing.T) {
	var seen []int
	table, err := Parse("a\n1\n2\n3", func(row model.RawRow, index int, columns []string) *model.NormalizedRow {
		seen = append(seen, index)
		if row["a"] == "2" {
			return nil
		}
		return keepAll(row, index, columns)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 2, table.Len())
}

func TestParseCallbackGetsOwnColumnsCopy(t *testing.T) {
	table, err := Parse(",x\n1,2\n3,4", func(row model.RawRow, index int, columns []string) *model.NormalizedRow {
		columns[0] = "mutated"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "x"}, table.Columns)
}

func TestParseEmptyText(t *testing.T) {
	table, err := Parse("", keepAll)
	require.NoError(t, err)
	assert.Empty(t, Materialize(table))
	assert.Empty(t, table.Columns)
}

func TestParseLazyQuotes(t *testing.T) {
	table, err := Parse("a,b\n\"7:30 hrs\",x\"y", keepAll)
	require.NoError(t, err)

	rows := Materialize(table)
	require.Len(t, rows, 1)
	assert.Equal(t, "7:30 hrs", rows[0].Row["a"])
	assert.Equal(t, "x\"y", rows[0].Row["b"])
}

func TestMaterializeNil(t *testing.T) {
	assert.Nil(t, Materialize(nil))
}
