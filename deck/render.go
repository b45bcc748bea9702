package deck

import (
	"regexp"
	"strconv"

	"github.com/aerissecure/deckgen/format"
	"github.com/aerissecure/deckgen/table"
)

// Context carries the values a template is rendered against: one row's
// cells plus the synthetic rank under "r".
type Context map[string]table.Value

// RowContext builds the substitution context for one table row.
func RowContext(t *table.Table, row int) Context {
	return Context(t.Row(row))
}

// A placeholder is {identifier}, optionally followed by a single digit
// giving the number of decimals the substituted number is formatted
// with ("{avg}2" renders 90.125 as "90.13"). The digit is consumed
// together with the placeholder.
var placeholderPat = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}([0-9]?)`)

// Render instantiates tmpl against ctx. Placeholders whose identifier
// is missing from ctx are left byte-identical, coefficient digit
// included; templates may carry placeholders a given dataset never
// fills. After substitution, each run that received a score-like value
// and is drawn in the base color is recolored per rules. tmpl itself is
// never mutated.
//
// Known limitation: a placeholder split across differently styled runs
// is not substituted, since runs are the substitution unit.
func Render(tmpl Template, ctx Context, rules format.Rules) (Slide, error) {
	inst := tmpl.Clone()
	for bi := range inst.Boxes {
		box := &inst.Boxes[bi]
		for pi := range box.Paragraphs {
			runs := box.Paragraphs[pi].Runs
			for ri := range runs {
				if err := renderRun(&runs[ri], ctx, rules); err != nil {
					return Slide{}, err
				}
			}
		}
	}
	return Slide{Boxes: inst.Boxes}, nil
}

func renderRun(run *Run, ctx Context, rules format.Rules) error {
	var ruleErr error
	recolor := format.Unstyled

	run.Text = placeholderPat.ReplaceAllStringFunc(run.Text, func(m string) string {
		sub := placeholderPat.FindStringSubmatch(m)
		name, coef := sub[1], sub[2]

		v, ok := ctx[name]
		if !ok {
			return m
		}

		c, err := rules.Decide(name, v, format.Color(run.Style.Color))
		if err != nil {
			ruleErr = err
		} else if c != format.Unstyled {
			recolor = c
		}

		if coef != "" && v.IsNumber() {
			d, _ := strconv.Atoi(coef)
			return v.Fixed(d)
		}
		if coef != "" {
			// The coefficient only formats numbers; after a text value
			// the digit stays literal.
			return v.String() + coef
		}
		return v.String()
	})

	if ruleErr != nil {
		return ruleErr
	}
	if recolor != format.Unstyled {
		run.Style.Color = string(recolor)
	}
	return nil
}
