// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/versedeck/pkg/types"
)

// Shape names the reader uses to recognize each part of a slide.
const (
	nameBackground = "Background"
	nameOverlay    = "Overlay"
	nameSeparator  = "Separator"

	// slideRelMedia is the relationship id of a slide's background picture.
	slideRelMedia = "rId2"
)

var alignAttr = map[types.TextAlign]string{
	types.AlignLeft:    "l",
	types.AlignCenter:  "ctr",
	types.AlignRight:   "r",
	types.AlignJustify: "just",
}

// slideWriter accumulates one slide's shape tree.
type slideWriter struct {
	b      strings.Builder
	nextID int
}

func newSlideWriter() *slideWriter {
	w := &slideWriter{nextID: 2}
	w.b.WriteString(xmlHeader)
	fmt.Fprintf(&w.b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	w.b.WriteString(`<p:cSld><p:spTree>`)
	w.b.WriteString(emptyTree)
	return w
}

func (w *slideWriter) id() int {
	id := w.nextID
	w.nextID++
	return id
}

func (w *slideWriter) close() string {
	w.b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return w.b.String()
}

func xfrm(r types.Rect) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.W, r.H)
}

func srgb(c types.RGB) string {
	return fmt.Sprintf(`<a:srgbClr val="%s"/>`, c.Hex())
}

// picture writes a full-frame picture referencing the slide's media
// relationship.
func (w *slideWriter) picture(bg types.Background, frame types.Rect) {
	fmt.Fprintf(&w.b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s" descr="%s"/>`, w.id(), nameBackground, escape(string(bg.Kind)))
	w.b.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(&w.b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, slideRelMedia)
	w.b.WriteString(`<p:spPr>` + xfrm(frame) + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func (w *slideWriter) fill(f types.Fill) {
	alpha := int(math.Round(f.Alpha * 100000))
	fmt.Fprintf(&w.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, w.id(), nameOverlay)
	w.b.WriteString(`<p:spPr>` + xfrm(f.Frame) + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	fmt.Fprintf(&w.b, `<a:solidFill><a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr></a:solidFill>`, f.Color.Hex(), alpha)
	w.b.WriteString(`<a:ln><a:noFill/></a:ln></p:spPr></p:sp>`)
}

func (w *slideWriter) line(l types.Line) {
	fmt.Fprintf(&w.b, `<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="%d" name="%s"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>`, w.id(), nameSeparator)
	w.b.WriteString(`<p:spPr>` + xfrm(l.Frame) + `<a:prstGeom prst="line"><a:avLst/></a:prstGeom>`)
	fmt.Fprintf(&w.b, `<a:ln w="%d"><a:solidFill>%s</a:solidFill></a:ln></p:spPr></p:cxnSp>`, types.Points(l.WidthPt), srgb(l.Color))
}

func (w *slideWriter) textBox(t types.TextBox) {
	fmt.Fprintf(&w.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, w.id(), escape(t.Name))
	w.b.WriteString(`<p:spPr>` + xfrm(t.Frame) + `<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)

	wrap := "none"
	if t.WordWrap {
		wrap = "square"
	}
	fmt.Fprintf(&w.b, `<p:txBody><a:bodyPr wrap="%s" rtlCol="0">`, wrap)
	switch {
	case t.AutoFit != types.AutoFitShrink:
		w.b.WriteString(`<a:noAutofit/>`)
	case t.FontScale > 0 && t.FontScale < 1:
		fmt.Fprintf(&w.b, `<a:normAutofit fontScale="%d"/>`, int(math.Round(t.FontScale*100000)))
	default:
		w.b.WriteString(`<a:normAutofit/>`)
	}
	w.b.WriteString(`</a:bodyPr><a:lstStyle/>`)

	rPr := runProps(t.Style)
	algn := alignAttr[t.Align]
	if algn == "" {
		algn = "l"
	}
	for _, p := range t.Paragraphs {
		fmt.Fprintf(&w.b, `<a:p><a:pPr algn="%s">`, algn)
		if p.SpaceBeforePt > 0 {
			fmt.Fprintf(&w.b, `<a:spcBef><a:spcPts val="%d"/></a:spcBef>`, int(math.Round(p.SpaceBeforePt*100)))
		}
		w.b.WriteString(`</a:pPr>`)
		for i, line := range strings.Split(p.Text, "\n") {
			if i > 0 {
				w.b.WriteString(`<a:br>` + rPr + `</a:br>`)
			}
			if line == "" {
				continue
			}
			w.b.WriteString(`<a:r>` + rPr + `<a:t>` + escape(line) + `</a:t></a:r>`)
		}
		w.b.WriteString(`</a:p>`)
	}
	w.b.WriteString(`</p:txBody></p:sp>`)
}

// runProps renders the character properties shared by every run of a box.
func runProps(s types.RunStyle) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<a:rPr lang="en-US" sz="%d" b="%s" i="%s"`, int(math.Round(s.SizePt*100)), flag(s.Bold), flag(s.Italic))
	if s.Underline {
		b.WriteString(` u="sng"`)
	}
	b.WriteString(` dirty="0">`)
	b.WriteString(`<a:solidFill>` + srgb(s.Color) + `</a:solidFill>`)
	if s.FontFamily != "" {
		fmt.Fprintf(&b, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, escape(s.FontFamily), escape(s.FontFamily))
	}
	b.WriteString(`</a:rPr>`)
	return b.String()
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// slideXML renders one slide. The background picture, when present, always
// uses slideRelMedia.
func slideXML(s types.Slide, canvas types.Rect, hasMedia bool) string {
	w := newSlideWriter()
	if hasMedia {
		w.picture(s.Background, canvas)
	}
	if s.Overlay != nil {
		w.fill(*s.Overlay)
	}
	w.textBox(s.Body)
	if s.Separator != nil {
		w.line(*s.Separator)
	}
	if s.Title != nil {
		w.textBox(*s.Title)
	}
	return w.close()
}

func slideRelsXML(mediaTarget string) string {
	rels := []rel{{ID: "rId1", Type: relLayout, Target: "../slideLayouts/slideLayout1.xml"}}
	if mediaTarget != "" {
		rels = append(rels, rel{ID: slideRelMedia, Type: relImage, Target: "../media/" + mediaTarget})
	}
	return relsXML(rels)
}

// escape escapes s for use in XML text and attribute values.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
