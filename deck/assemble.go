package deck

import (
	"golang.org/x/sync/errgroup"

	"github.com/aerissecure/deckgen/format"
	"github.com/aerissecure/deckgen/table"
)

// AssembleOptions configures deck assembly.
type AssembleOptions struct {
	// Workers > 1 renders rows concurrently. Safe because ranks are
	// fully annotated before assembly starts and every render works on
	// its own template clone.
	Workers int
}

// Assemble renders one slide per table row. Output order is input row
// order; ranks never reorder the deck. Any error is terminal for the
// whole batch.
func Assemble(t *table.Table, ts *TemplateSet, rules format.Rules, opts AssembleOptions) (Deck, error) {
	n := t.Rows()
	slides := make([]Slide, n)

	renderRow := func(i int) error {
		ctx := RowContext(t, i)
		key, ok := ctx[table.TemplateColumn]
		if !ok || key.IsEmpty() {
			return &UnknownTemplateError{Row: i}
		}
		tmpl, err := ts.Lookup(key.String(), i)
		if err != nil {
			return err
		}
		slide, err := Render(tmpl, ctx, rules)
		if err != nil {
			return err
		}
		slides[i] = slide
		return nil
	}

	if opts.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := renderRow(i); err != nil {
				return Deck{}, err
			}
		}
		return Deck{Slides: slides}, nil
	}

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return renderRow(i) })
	}
	if err := g.Wait(); err != nil {
		return Deck{}, err
	}
	return Deck{Slides: slides}, nil
}
