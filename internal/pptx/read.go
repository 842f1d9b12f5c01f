// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/versedeck/pkg/types"
)

// ReadFile reads the deck at path.
func ReadFile(p string) (*types.SlideDocument, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", p, err)
	}
	return Read(data)
}

// Read decodes a .pptx package into a SlideDocument. Shapes are recognized
// by the names Build gives them; anything else is ignored.
func Read(data []byte) (*types.SlideDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	pkg := &packageReader{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}

	pres, err := pkg.xml("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	doc := &types.SlideDocument{}
	if sz := findOne(pres, "sldSz"); sz != nil {
		doc.WidthEMU = attrInt(sz, "cx")
		doc.HeightEMU = attrInt(sz, "cy")
	}
	if core, err := pkg.xml("docProps/core.xml"); err == nil {
		if t := findOne(core, "title"); t != nil {
			doc.Title = t.InnerText()
		}
	}

	presRels, err := pkg.rels("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	doc.Slides = []types.Slide{}
	for _, id := range findAll(pres, "sldId") {
		target, ok := presRels[relID(id)]
		if !ok {
			return nil, fmt.Errorf("slide relationship %q not found", relID(id))
		}
		slide, err := pkg.slide(path.Join("ppt", target))
		if err != nil {
			return nil, err
		}
		doc.Slides = append(doc.Slides, slide)
	}
	return doc, nil
}

type packageReader struct {
	files map[string]*zip.File
}

func (p *packageReader) raw(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading part %s: %w", name, err)
	}
	return data, nil
}

func (p *packageReader) xml(name string) (*xmlquery.Node, error) {
	data, err := p.raw(name)
	if err != nil {
		return nil, err
	}
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing part %s: %w", name, err)
	}
	return root, nil
}

// rels returns the relationship targets of part, keyed by id. Targets are
// relative to the part's directory.
func (p *packageReader) rels(part string) (map[string]string, error) {
	dir, file := path.Split(part)
	root, err := p.xml(path.Join(dir, "_rels", file+".rels"))
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for _, r := range findAll(root, "Relationship") {
		out[r.SelectAttr("Id")] = r.SelectAttr("Target")
	}
	return out, nil
}

func (p *packageReader) slide(name string) (types.Slide, error) {
	root, err := p.xml(name)
	if err != nil {
		return types.Slide{}, err
	}
	rels, err := p.rels(name)
	if err != nil {
		return types.Slide{}, err
	}

	var s types.Slide
	if pic := findNamed(root, "pic", nameBackground); pic != nil {
		s.Background.Kind = types.BackgroundKind(cNvPr(pic).SelectAttr("descr"))
		if blip := findOne(pic, "blip"); blip != nil {
			if target, ok := rels[attrNS(blip, "embed", nsR)]; ok {
				media, err := p.raw(path.Join(path.Dir(name), target))
				if err != nil {
					return types.Slide{}, err
				}
				mt := mimetype.Detect(media)
				s.Background.Media = types.MediaAsset{Data: media, ContentType: mt.String(), Extension: mt.Extension()}
			}
		}
	}

	for _, sp := range findAll(root, "sp") {
		switch shape := cNvPr(sp).SelectAttr("name"); {
		case shape == nameOverlay:
			s.Overlay = readFill(sp)
		case findOne(sp, "txBody") != nil:
			box := readTextBox(sp)
			if strings.EqualFold(shape, "Title") {
				s.Title = &box
			} else {
				s.Body = box
			}
		}
	}

	if cxn := findNamed(root, "cxnSp", nameSeparator); cxn != nil {
		l := &types.Line{Frame: readFrame(cxn)}
		if ln := findOne(cxn, "ln"); ln != nil {
			l.WidthPt = float64(attrInt(ln, "w")) / float64(types.EMUPerPoint)
			l.Color = readColor(ln)
		}
		s.Separator = l
	}
	return s, nil
}

func readFill(sp *xmlquery.Node) *types.Fill {
	f := &types.Fill{Frame: readFrame(sp)}
	if fill := findOne(sp, "solidFill"); fill != nil {
		f.Color = readColor(fill)
		if a := findOne(fill, "alpha"); a != nil {
			f.Alpha = float64(attrInt(a, "val")) / 100000
		}
	}
	return f
}

func readTextBox(sp *xmlquery.Node) types.TextBox {
	box := types.TextBox{
		Name:      cNvPr(sp).SelectAttr("name"),
		Frame:     readFrame(sp),
		AutoFit:   types.AutoFitNone,
		FontScale: 1,
	}
	if body := findOne(sp, "bodyPr"); body != nil {
		box.WordWrap = body.SelectAttr("wrap") != "none"
		if fit := findOne(body, "normAutofit"); fit != nil {
			box.AutoFit = types.AutoFitShrink
			if v := fit.SelectAttr("fontScale"); v != "" {
				n, _ := strconv.Atoi(v)
				box.FontScale = float64(n) / 100000
			}
		}
	}

	styled := false
	for i, p := range findAll(sp, "p") {
		if i == 0 {
			if ppr := findOne(p, "pPr"); ppr != nil {
				box.Align = alignFromAttr(ppr.SelectAttr("algn"))
			}
		}
		para := types.Paragraph{}
		if spc := findOne(p, "spcPts"); spc != nil {
			para.SpaceBeforePt = float64(attrInt(spc, "val")) / 100
		}
		var text strings.Builder
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch c.Data {
			case "r":
				if !styled {
					if rpr := findOne(c, "rPr"); rpr != nil {
						box.Style = readRunStyle(rpr)
						styled = true
					}
				}
				if t := findOne(c, "t"); t != nil {
					text.WriteString(t.InnerText())
				}
			case "br":
				text.WriteString("\n")
			}
		}
		para.Text = text.String()
		box.Paragraphs = append(box.Paragraphs, para)
	}
	return box
}

func readRunStyle(rpr *xmlquery.Node) types.RunStyle {
	st := types.RunStyle{
		SizePt:    float64(attrInt(rpr, "sz")) / 100,
		Bold:      rpr.SelectAttr("b") == "1",
		Italic:    rpr.SelectAttr("i") == "1",
		Underline: rpr.SelectAttr("u") != "" && rpr.SelectAttr("u") != "none",
		Color:     readColor(rpr),
	}
	if latin := findOne(rpr, "latin"); latin != nil {
		st.FontFamily = latin.SelectAttr("typeface")
	}
	return st
}

func readFrame(n *xmlquery.Node) types.Rect {
	var r types.Rect
	if off := findOne(n, "off"); off != nil {
		r.X, r.Y = attrInt(off, "x"), attrInt(off, "y")
	}
	if ext := findOne(n, "ext"); ext != nil {
		r.W, r.H = attrInt(ext, "cx"), attrInt(ext, "cy")
	}
	return r
}

func readColor(n *xmlquery.Node) types.RGB {
	c := findOne(n, "srgbClr")
	if c == nil {
		return types.RGB{}
	}
	v, err := strconv.ParseUint(c.SelectAttr("val"), 16, 32)
	if err != nil {
		return types.RGB{}
	}
	return types.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func alignFromAttr(v string) types.TextAlign {
	for a, attr := range alignAttr {
		if attr == v {
			return a
		}
	}
	return types.AlignLeft
}

// cNvPr returns the non-visual properties of a shape.
func cNvPr(shape *xmlquery.Node) *xmlquery.Node {
	if n := findOne(shape, "cNvPr"); n != nil {
		return n
	}
	return &xmlquery.Node{}
}

// findOne returns the first descendant with the given local name.
func findOne(top *xmlquery.Node, local string) *xmlquery.Node {
	return xmlquery.FindOne(top, fmt.Sprintf(".//*[local-name()='%s']", local))
}

// findAll returns every descendant with the given local name.
func findAll(top *xmlquery.Node, local string) []*xmlquery.Node {
	return xmlquery.Find(top, fmt.Sprintf(".//*[local-name()='%s']", local))
}

// findNamed returns the first shape of the given kind whose cNvPr is named name.
func findNamed(top *xmlquery.Node, kind, name string) *xmlquery.Node {
	for _, n := range findAll(top, kind) {
		if cNvPr(n).SelectAttr("name") == name {
			return n
		}
	}
	return nil
}

// attrNS returns the value of the attribute local in namespace ns,
// whatever prefix the part binds to ns.
func attrNS(n *xmlquery.Node, local, ns string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local && a.NamespaceURI == ns {
			return a.Value
		}
	}
	return ""
}

func relID(n *xmlquery.Node) string {
	return attrNS(n, "id", nsR)
}

func attrInt(n *xmlquery.Node, name string) int64 {
	v, _ := strconv.ParseInt(n.SelectAttr(name), 10, 64)
	return v
}
