package deck

import (
	"fmt"
	"io"
	"strconv"

	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/pml"
)

// UnknownTemplateError indicates a row references a template that is
// not in the loaded set.
type UnknownTemplateError struct {
	Key string
	Row int
}

func (e *UnknownTemplateError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("row %d has no template value", e.Row)
	}
	return fmt.Sprintf("row %d references template %q which does not exist", e.Row, e.Key)
}

// TemplateSet holds the loaded slide templates, keyed by their 1-based
// slide position rendered as a string ("1", "2", ...). That is how the
// data sheet's template column addresses them.
type TemplateSet struct {
	byKey map[string]Template
	keys  []string
}

// Keys returns the template keys in slide order.
func (ts *TemplateSet) Keys() []string { return ts.keys }

// Lookup resolves a row's template reference.
func (ts *TemplateSet) Lookup(key string, row int) (Template, error) {
	t, ok := ts.byKey[key]
	if !ok {
		return Template{}, &UnknownTemplateError{Key: key, Row: row}
	}
	return t, nil
}

func (ts *TemplateSet) add(t Template) {
	ts.byKey[t.Key] = t
	ts.keys = append(ts.keys, t.Key)
}

// ParseTemplates reads a PPTX from r/size and builds the template set,
// one template per slide.
func ParseTemplates(r io.ReaderAt, size int64) (*TemplateSet, error) {
	ppt, err := presentation.Read(r, size)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{byKey: make(map[string]Template)}
	for i, slide := range ppt.Slides() {
		tmpl := Template{Key: strconv.Itoa(i + 1)}
		sld := slide.X()
		if sld.CSld == nil || sld.CSld.SpTree == nil {
			ts.add(tmpl)
			continue
		}
		for _, choice := range sld.CSld.SpTree.Choice {
			for _, sp := range choice.Sp {
				if box, ok := parseShape(sp); ok {
					tmpl.Boxes = append(tmpl.Boxes, box)
				}
			}
		}
		ts.add(tmpl)
	}
	return ts, nil
}

// parseShape extracts a text box from a shape, skipping shapes without
// a text body.
func parseShape(sp *pml.CT_Shape) (TextBox, bool) {
	if sp == nil || sp.TxBody == nil {
		return TextBox{}, false
	}
	var box TextBox
	if sp.SpPr != nil && sp.SpPr.Xfrm != nil {
		if off := sp.SpPr.Xfrm.Off; off != nil {
			if off.XAttr.ST_CoordinateUnqualified != nil {
				box.OffX = *off.XAttr.ST_CoordinateUnqualified
			}
			if off.YAttr.ST_CoordinateUnqualified != nil {
				box.OffY = *off.YAttr.ST_CoordinateUnqualified
			}
		}
		if ext := sp.SpPr.Xfrm.Ext; ext != nil {
			box.ExtW = ext.CxAttr
			box.ExtH = ext.CyAttr
		}
	}
	for _, p := range sp.TxBody.P {
		para := Paragraph{}
		if p.PPr != nil && p.PPr.AlgnAttr != dml.ST_TextAlignTypeUnset {
			para.Align = p.PPr.AlgnAttr.String()
		}
		for _, tr := range p.EG_TextRun {
			// Line breaks and fields carry no substitutable text.
			if tr.R == nil {
				continue
			}
			para.Runs = append(para.Runs, Run{Text: tr.R.T, Style: runStyle(tr.R.RPr)})
		}
		box.Paragraphs = append(box.Paragraphs, para)
	}
	return box, true
}

func runStyle(rpr *dml.CT_TextCharacterProperties) RunStyle {
	var st RunStyle
	if rpr == nil {
		return st
	}
	if rpr.SzAttr != nil {
		st.SizePt = float64(*rpr.SzAttr) / 100 // stored in hundredths of a point
	}
	if rpr.BAttr != nil {
		st.Bold = *rpr.BAttr
	}
	if rpr.IAttr != nil {
		st.Italic = *rpr.IAttr
	}
	if rpr.Latin != nil {
		st.FontFamily = rpr.Latin.TypefaceAttr
	}
	if rpr.SolidFill != nil && rpr.SolidFill.SrgbClr != nil {
		st.Color = rpr.SolidFill.SrgbClr.ValAttr
	}
	return st
}
