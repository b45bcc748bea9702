package deck

import (
	"io"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/drawing"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"

	"github.com/aerissecure/deckgen/format"
)

// WritePPTX serializes the deck as a PPTX file.
func WritePPTX(d Deck, w io.Writer) error {
	ppt := presentation.New()
	for _, slide := range d.Slides {
		s := ppt.AddSlide()
		for _, box := range slide.Boxes {
			tb := s.AddTextBox()
			props := tb.Properties()
			props.SetGeometry(dml.ST_ShapeTypeRect)
			props.SetPosition(measurement.Distance(box.OffX)*measurement.EMU,
				measurement.Distance(box.OffY)*measurement.EMU)
			if box.ExtW > 0 || box.ExtH > 0 {
				props.SetSize(measurement.Distance(box.ExtW)*measurement.EMU,
					measurement.Distance(box.ExtH)*measurement.EMU)
			}
			for _, para := range box.Paragraphs {
				p := tb.AddParagraph()
				if a := alignType(para.Align); a != dml.ST_TextAlignTypeUnset {
					p.Properties().X().AlgnAttr = a
				}
				for _, run := range para.Runs {
					r := p.AddRun()
					r.SetText(run.Text)
					writeRunStyle(r, run.Style)
				}
			}
		}
	}
	return ppt.Save(w)
}

func writeRunStyle(r drawing.Run, st RunStyle) {
	props := r.Properties()
	if st.FontFamily != "" {
		props.SetFont(st.FontFamily)
	}
	if st.SizePt > 0 {
		props.SetSize(measurement.Distance(st.SizePt) * measurement.Point)
	}
	if st.Bold {
		props.SetBold(true)
	}
	if st.Italic {
		r.X().R.RPr.IAttr = unioffice.Bool(true)
	}
	if st.Color != "" {
		r, g, b := format.Color(st.Color).RGB()
		props.SetSolidFill(color.RGB(r, g, b))
	}
}

func alignType(token string) dml.ST_TextAlignType {
	switch token {
	case "l":
		return dml.ST_TextAlignTypeL
	case "ctr":
		return dml.ST_TextAlignTypeCtr
	case "r":
		return dml.ST_TextAlignTypeR
	case "just":
		return dml.ST_TextAlignTypeJust
	default:
		return dml.ST_TextAlignTypeUnset
	}
}
