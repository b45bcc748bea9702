// Package deckgen turns tabular judging data into a populated
// PowerPoint deck: competition-style ranks are computed from the first
// two columns, each row is mapped onto its slide template with
// placeholder substitution, and score values get threshold-driven
// conditional coloring.
package deckgen

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/aerissecure/deckgen/config"
	"github.com/aerissecure/deckgen/deck"
	"github.com/aerissecure/deckgen/rank"
	"github.com/aerissecure/deckgen/table"
)

// Generate runs the whole pipeline over in-memory inputs: parse the
// data workbook, derive and rank the sorting keys, load the slide
// templates, and assemble the deck in row order.
func Generate(data io.ReaderAt, dataSize int64, tmpl io.ReaderAt, tmplSize int64, s config.Settings) (deck.Deck, error) {
	rules, err := s.Rules()
	if err != nil {
		return deck.Deck{}, err
	}

	t, err := table.ParseTable(data, dataSize)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("reading data workbook: %w", err)
	}
	if len(s.JudgeColumns) > 0 {
		if err := table.AggregateScores(t, s.JudgeColumns); err != nil {
			return deck.Deck{}, fmt.Errorf("aggregating judge scores: %w", err)
		}
	}
	if s.RoundDecimals != nil {
		if err := roundKeys(t, *s.RoundDecimals); err != nil {
			return deck.Deck{}, err
		}
	}
	if _, err := rank.Annotate(t, rank.Options{EmptyAsZero: s.EmptyAsZero}); err != nil {
		return deck.Deck{}, err
	}

	ts, err := deck.ParseTemplates(tmpl, tmplSize)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("reading template deck: %w", err)
	}

	return deck.Assemble(t, ts, rules, deck.AssembleOptions{Workers: s.Workers})
}

// GenerateFile is the file-path convenience wrapper around Generate.
func GenerateFile(dataPath, tmplPath, outPath string, s config.Settings) error {
	data, dataSize, err := openAt(dataPath)
	if err != nil {
		return err
	}
	defer data.Close()
	tmpl, tmplSize, err := openAt(tmplPath)
	if err != nil {
		return err
	}
	defer tmpl.Close()

	d, err := Generate(data, dataSize, tmpl, tmplSize, s)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return deck.WritePPTX(d, out)
}

func openAt(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// roundKeys pre-rounds the two sorting key columns so that
// nearly-equal scores tie. Rank computation itself compares exactly.
func roundKeys(t *table.Table, decimals int) error {
	if t.Cols() < 2 {
		return nil // the ranking engine reports the real error
	}
	pow := math.Pow(10, float64(decimals))
	for _, col := range []table.Column{t.ColumnAt(0), t.ColumnAt(1)} {
		for row, v := range col.Cells {
			if !v.IsNumber() {
				continue
			}
			rounded := math.Round(v.Float()*pow) / pow
			if err := t.SetCell(col.Name, row, table.Number(rounded)); err != nil {
				return err
			}
		}
	}
	return nil
}
