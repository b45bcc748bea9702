package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/deckgen/rank"
	"github.com/aerissecure/deckgen/table"
)

func testTemplateSet() *TemplateSet {
	ts := &TemplateSet{byKey: make(map[string]Template)}
	ts.add(oneRunTemplate("Rank {r}: {name} ({score})", "FFFFFF"))
	t2 := oneRunTemplate("Winner: {name}", "FFFFFF")
	t2.Key = "2"
	ts.add(t2)
	return ts
}

func scoredTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New()
	require.NoError(t, tbl.AddColumn("score", []table.Value{table.Number(85), table.Number(92), table.Number(78)}))
	require.NoError(t, tbl.AddColumn("std", []table.Value{table.Number(1), table.Number(2), table.Number(3)}))
	require.NoError(t, tbl.AddColumn("name", []table.Value{table.Text("A"), table.Text("B"), table.Text("C")}))
	require.NoError(t, tbl.AddColumn("template", []table.Value{table.Text("1"), table.Text("2"), table.Text("1")}))
	_, err := rank.Annotate(tbl, rank.Options{})
	require.NoError(t, err)
	return tbl
}

func TestAssemblePreservesRowOrder(t *testing.T) {
	tbl := scoredTable(t)

	d, err := Assemble(tbl, testTemplateSet(), testRules(), AssembleOptions{})
	require.NoError(t, err)
	require.Len(t, d.Slides, 3)

	// Row order, not rank order: A (rank 2) stays first.
	assert.Equal(t, "Rank 2: A (85)", d.Slides[0].Boxes[0].Paragraphs[0].Runs[0].Text)
	assert.Equal(t, "Winner: B", d.Slides[1].Boxes[0].Paragraphs[0].Runs[0].Text)
	assert.Equal(t, "Rank 3: C (78)", d.Slides[2].Boxes[0].Paragraphs[0].Runs[0].Text)
}

func TestAssembleParallelMatchesSerial(t *testing.T) {
	tbl := scoredTable(t)
	ts := testTemplateSet()

	serial, err := Assemble(tbl, ts, testRules(), AssembleOptions{})
	require.NoError(t, err)
	parallel, err := Assemble(tbl, ts, testRules(), AssembleOptions{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestAssembleUnknownTemplate(t *testing.T) {
	tbl := table.New()
	require.NoError(t, tbl.AddColumn("score", []table.Value{table.Number(85)}))
	require.NoError(t, tbl.AddColumn("std", []table.Value{table.Number(1)}))
	require.NoError(t, tbl.AddColumn("template", []table.Value{table.Text("9")}))
	_, err := rank.Annotate(tbl, rank.Options{})
	require.NoError(t, err)

	_, err = Assemble(tbl, testTemplateSet(), testRules(), AssembleOptions{})
	var ute *UnknownTemplateError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "9", ute.Key)
	assert.Equal(t, 0, ute.Row)
}

func TestAssembleMissingTemplateValue(t *testing.T) {
	tbl := table.New()
	require.NoError(t, tbl.AddColumn("score", []table.Value{table.Number(85)}))
	require.NoError(t, tbl.AddColumn("std", []table.Value{table.Number(1)}))
	require.NoError(t, tbl.AddColumn("template", []table.Value{table.Text("")}))
	_, err := rank.Annotate(tbl, rank.Options{})
	require.NoError(t, err)

	_, err = Assemble(tbl, testTemplateSet(), testRules(), AssembleOptions{})
	var ute *UnknownTemplateError
	require.ErrorAs(t, err, &ute)
	assert.Empty(t, ute.Key)
}
