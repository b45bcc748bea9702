package deck

import "fmt"

// Intermediate representation for slide templates and rendered slides.
//
// The IR captures just what the substitution engine and the PPTX writer
// need: text box geometry, paragraph alignment, and run-level text with
// character styling. Geometry stays in EMUs exactly as stored in the
// file; colors are 6-character RGB hex strings without the leading "#".

// RunStyle captures the character formatting of a text run.
type RunStyle struct {
	FontFamily string
	SizePt     float64
	Color      string // "RRGGBB"; empty inherits the theme default
	Bold       bool
	Italic     bool
}

// Run is one styled fragment of text. Placeholder substitution happens
// within a single run; a placeholder split across differently styled
// runs is left as-is.
type Run struct {
	Text  string
	Style RunStyle
}

// Paragraph is one line-group of runs.
type Paragraph struct {
	Align string // OOXML token: "l", "ctr", "r", "just"; empty inherits
	Runs  []Run
}

// TextBox is a positioned shape holding paragraphs.
type TextBox struct {
	OffX, OffY int64 // EMU
	ExtW, ExtH int64 // EMU
	Paragraphs []Paragraph
}

func (b TextBox) String() string {
	return fmt.Sprintf("OffX: %d, OffY: %d, ExtW: %d, ExtH: %d, Paragraphs: %d",
		b.OffX, b.OffY, b.ExtW, b.ExtH, len(b.Paragraphs))
}

// Template is a reusable slide blueprint. Rendering never mutates it;
// many rows share one template.
type Template struct {
	Key   string
	Boxes []TextBox
}

func (t Template) String() string {
	return fmt.Sprintf("Key: %s, Boxes: %d", t.Key, len(t.Boxes))
}

// Clone deep-copies the template so a render can substitute in place.
func (t Template) Clone() Template {
	out := Template{Key: t.Key, Boxes: make([]TextBox, len(t.Boxes))}
	for i, box := range t.Boxes {
		nb := box
		nb.Paragraphs = make([]Paragraph, len(box.Paragraphs))
		for j, para := range box.Paragraphs {
			np := para
			np.Runs = make([]Run, len(para.Runs))
			copy(np.Runs, para.Runs)
			nb.Paragraphs[j] = np
		}
		out.Boxes[i] = nb
	}
	return out
}

// Slide is one rendered template instance.
type Slide struct {
	Boxes []TextBox
}

// Deck is the rendered output, one slide per input row in row order.
type Deck struct {
	Slides []Slide
}
