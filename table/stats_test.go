package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateScores(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("name", []Value{Text("A"), Text("B")}))
	require.NoError(t, tbl.AddColumn("j1", []Value{Number(8), Number(10)}))
	require.NoError(t, tbl.AddColumn("j2", []Value{Number(10), Number(10)}))

	require.NoError(t, AggregateScores(tbl, []string{"j1", "j2"}))

	assert.Equal(t, []string{"avg", "std", "name", "j1", "j2"}, tbl.Names())
	assert.InDelta(t, 9.0, tbl.Row(0)["avg"].Float(), 1e-9)
	assert.InDelta(t, 1.0, tbl.Row(0)["std"].Float(), 1e-9)
	assert.InDelta(t, 10.0, tbl.Row(1)["avg"].Float(), 1e-9)
	assert.InDelta(t, 0.0, tbl.Row(1)["std"].Float(), 1e-9)
}

func TestAggregateScoresRejectsText(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("j1", []Value{Text("absent")}))
	require.NoError(t, tbl.AddColumn("template", []Value{Text("1")}))

	err := AggregateScores(tbl, []string{"j1"})
	assert.ErrorContains(t, err, "not numeric")
}

func TestAggregateScoresUnknownColumn(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("j1", []Value{Number(5)}))
	assert.Error(t, AggregateScores(tbl, []string{"j9"}))
}
