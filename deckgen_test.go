package deckgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/deckgen/config"
	"github.com/aerissecure/deckgen/deck"
)

func buildData(t *testing.T, rows [][]any) (*bytes.Reader, int64) {
	t.Helper()
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			switch x := v.(type) {
			case string:
				row.AddCell().SetString(x)
			case float64:
				row.AddCell().SetNumber(x)
			case int:
				row.AddCell().SetNumber(float64(x))
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Save(&buf))
	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

func buildTemplate(t *testing.T) (*bytes.Reader, int64) {
	t.Helper()
	ppt := presentation.New()
	slide := ppt.AddSlide()
	tb := slide.AddTextBox()
	tb.Properties().SetPosition(1*measurement.Inch, 1*measurement.Inch)
	tb.Properties().SetSize(6*measurement.Inch, 1*measurement.Inch)
	run := tb.AddParagraph().AddRun()
	run.SetText("#{r} {name}: {avg}1 pts")
	run.Properties().SetSolidFill(color.RGB(0xFF, 0xFF, 0xFF))

	var buf bytes.Buffer
	require.NoError(t, ppt.Save(&buf))
	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

func testSettings() config.Settings {
	s := config.Default()
	s.Thresholds = []config.ThresholdSpec{
		{Threshold: 90, Color: "FFD700"},
		{Threshold: 80, Color: "C0C0C0"},
	}
	return s
}

func slideText(s deck.Slide) string {
	return s.Boxes[0].Paragraphs[0].Runs[0].Text
}

func TestGenerate(t *testing.T) {
	data, dataSize := buildData(t, [][]any{
		{"avg", "std", "name", "template"},
		{90, 2, "A", "1"},
		{90, 5, "B", "1"},
		{85, 1, "C", "1"},
	})
	tmpl, tmplSize := buildTemplate(t)

	d, err := Generate(data, dataSize, tmpl, tmplSize, testSettings())
	require.NoError(t, err)
	require.Len(t, d.Slides, 3)

	// Row order preserved; ranks come from the sort, A beats B on std.
	assert.Equal(t, "#1 A: 90.0 pts", slideText(d.Slides[0]))
	assert.Equal(t, "#2 B: 90.0 pts", slideText(d.Slides[1]))
	assert.Equal(t, "#3 C: 85.0 pts", slideText(d.Slides[2]))

	// avg is score-like under the default prefix: 90 -> gold, 85 -> silver.
	assert.Equal(t, "FFD700", d.Slides[0].Boxes[0].Paragraphs[0].Runs[0].Style.Color)
	assert.Equal(t, "C0C0C0", d.Slides[2].Boxes[0].Paragraphs[0].Runs[0].Style.Color)
}

func TestGenerateWithJudgeColumns(t *testing.T) {
	data, dataSize := buildData(t, [][]any{
		{"name", "j1", "j2", "template"},
		{"A", 9, 9, "1"},
		{"B", 10, 6, "1"},
	})
	tmpl, tmplSize := buildTemplate(t)

	s := testSettings()
	s.JudgeColumns = []string{"j1", "j2"}

	d, err := Generate(data, dataSize, tmpl, tmplSize, s)
	require.NoError(t, err)
	require.Len(t, d.Slides, 2)

	// Averages tie at 9 and 8; A's higher mean wins outright.
	assert.Equal(t, "#1 A: 9.0 pts", slideText(d.Slides[0]))
	assert.Equal(t, "#2 B: 8.0 pts", slideText(d.Slides[1]))
}

func TestGenerateRoundedKeysTie(t *testing.T) {
	data, dataSize := buildData(t, [][]any{
		{"avg", "std", "name", "template"},
		{90.001, 2, "A", "1"},
		{90.004, 2, "B", "1"},
	})
	tmpl, tmplSize := buildTemplate(t)

	s := testSettings()
	two := 2
	s.RoundDecimals = &two

	d, err := Generate(data, dataSize, tmpl, tmplSize, s)
	require.NoError(t, err)

	// Both round to 90.00 and share rank 1.
	assert.Equal(t, "#1 A: 90.0 pts", slideText(d.Slides[0]))
	assert.Equal(t, "#1 B: 90.0 pts", slideText(d.Slides[1]))
}

func TestGenerateBadSortColumn(t *testing.T) {
	data, dataSize := buildData(t, [][]any{
		{"avg", "std", "name", "template"},
		{"ninety", 2, "A", "1"},
	})
	tmpl, tmplSize := buildTemplate(t)

	_, err := Generate(data, dataSize, tmpl, tmplSize, testSettings())
	assert.ErrorContains(t, err, "sorting columns cannot contain text")
}
