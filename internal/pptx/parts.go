// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Namespaces and relationship types used by the package.
const (
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDoc  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps  = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relSlide      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relMaster     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relLayout     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTheme      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relPresProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTableStyle = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relImage      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctMaster       = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctLayout       = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	// firstSlideID and masterID are the lowest ids the format allows.
	firstSlideID = 256
	masterID     = 2147483648
	layoutID     = 2147483649
)

// rel is one relationship entry.
type rel struct {
	ID     string
	Type   string
	Target string
}

func relsXML(rels []rel) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, nsRel)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.ID, r.Type, escape(r.Target))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// contentTypesXML lists one Default per media extension and one Override
// per XML part.
func contentTypesXML(slides int, media map[string]string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	fmt.Fprintf(&b, `<Default Extension="rels" ContentType="%s"/>`, ctRels)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	exts := make([]string, 0, len(media))
	for ext := range media {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`, escape(ext), escape(media[ext]))
	}

	override := func(part, ct string) {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override("ppt/presentation.xml", ctPresentation)
	override("ppt/slideMasters/slideMaster1.xml", ctMaster)
	override("ppt/slideLayouts/slideLayout1.xml", ctLayout)
	override("ppt/theme/theme1.xml", ctTheme)
	override("ppt/presProps.xml", ctPresProps)
	override("ppt/tableStyles.xml", ctTableStyles)
	override("docProps/core.xml", ctCoreProps)
	override("docProps/app.xml", ctExtProps)
	for i := 1; i <= slides; i++ {
		override(fmt.Sprintf("ppt/slides/slide%d.xml", i), ctSlide)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func rootRelsXML() string {
	return relsXML([]rel{
		{ID: "rId1", Type: relOfficeDoc, Target: "ppt/presentation.xml"},
		{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
		{ID: "rId3", Type: relExtProps, Target: "docProps/app.xml"},
	})
}

// Fixed relationship ids of presentation.xml; slides follow from
// firstSlideRel.
const (
	presRelMaster      = "rId1"
	presRelTheme       = "rId2"
	presRelPresProps   = "rId3"
	presRelTableStyles = "rId4"
	firstSlideRel      = 5
)

func presentationRelsXML(slides int) string {
	rels := []rel{
		{ID: presRelMaster, Type: relMaster, Target: "slideMasters/slideMaster1.xml"},
		{ID: presRelTheme, Type: relTheme, Target: "theme/theme1.xml"},
		{ID: presRelPresProps, Type: relPresProps, Target: "presProps.xml"},
		{ID: presRelTableStyles, Type: relTableStyle, Target: "tableStyles.xml"},
	}
	for i := 0; i < slides; i++ {
		rels = append(rels, rel{
			ID:     fmt.Sprintf("rId%d", firstSlideRel+i),
			Type:   relSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return relsXML(rels)
}

func presentationXML(slides int, cx, cy int64) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	fmt.Fprintf(&b, `<p:sldMasterIdLst><p:sldMasterId id="%d" r:id="%s"/></p:sldMasterIdLst>`, int64(masterID), presRelMaster)
	if slides > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := 0; i < slides; i++ {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, firstSlideID+i, firstSlideRel+i)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, cx, cy)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func corePropsXML(meta Metadata) string {
	created := meta.Created.UTC().Format(time.RFC3339)
	return xmlHeader + fmt.Sprintf(`<cp:coreProperties `+
		`xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" `+
		`xmlns:dc="http://purl.org/dc/elements/1.1/" `+
		`xmlns:dcterms="http://purl.org/dc/terms/" `+
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" `+
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
		`<dc:title>%s</dc:title>`+
		`<dc:creator>%s</dc:creator>`+
		`<cp:lastModifiedBy>%s</cp:lastModifiedBy>`+
		`<dc:identifier>%s</dc:identifier>`+
		`<cp:revision>1</cp:revision>`+
		`<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`+
		`<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`+
		`</cp:coreProperties>`,
		escape(meta.Title),
		escape(meta.Creator),
		escape(meta.Creator),
		escape("urn:uuid:"+meta.Identifier.String()),
		created,
		created,
	)
}

func appPropsXML(slides int) string {
	return xmlHeader + fmt.Sprintf(`<Properties `+
		`xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" `+
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`+
		`<Application>versedeck</Application>`+
		`<PresentationFormat>Custom</PresentationFormat>`+
		`<Slides>%d</Slides>`+
		`<Notes>0</Notes>`+
		`<HiddenSlides>0</HiddenSlides>`+
		`</Properties>`, slides)
}

func presPropsXML() string {
	return xmlHeader + fmt.Sprintf(`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`, nsA, nsR, nsP)
}

func tableStylesXML() string {
	return xmlHeader + `<a:tblStyleLst xmlns:a="` + nsA + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`
}

// emptyTree is the group header every shape tree starts with.
const emptyTree = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

func slideMasterXML() string {
	return xmlHeader + fmt.Sprintf(`<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP) +
		`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` +
		`<p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" ` +
		`accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		fmt.Sprintf(`<p:sldLayoutIdLst><p:sldLayoutId id="%d" r:id="rId1"/></p:sldLayoutIdLst>`, int64(layoutID)) +
		`<p:txStyles>` +
		`<p:titleStyle><a:lvl1pPr algn="ctr"><a:defRPr sz="4400"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
		`<a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>` +
		`<p:bodyStyle><a:lvl1pPr><a:defRPr sz="2800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
		`<a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:bodyStyle>` +
		`<p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
		`<a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:otherStyle>` +
		`</p:txStyles></p:sldMaster>`
}

func slideMasterRelsXML() string {
	return relsXML([]rel{
		{ID: "rId1", Type: relLayout, Target: "../slideLayouts/slideLayout1.xml"},
		{ID: "rId2", Type: relTheme, Target: "../theme/theme1.xml"},
	})
}

func slideLayoutXML() string {
	return xmlHeader + fmt.Sprintf(`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">`, nsA, nsR, nsP) +
		`<p:cSld name="Blank"><p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

func slideLayoutRelsXML() string {
	return relsXML([]rel{
		{ID: "rId1", Type: relMaster, Target: "../slideMasters/slideMaster1.xml"},
	})
}

func themeXML() string {
	return xmlHeader + `<a:theme xmlns:a="` + nsA + `" name="Versedeck">` +
		`<a:themeElements>` +
		`<a:clrScheme name="Versedeck">` +
		`<a:dk1><a:srgbClr val="000000"/></a:dk1>` +
		`<a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="1F1F1F"/></a:dk2>` +
		`<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="4F81BD"/></a:accent1>` +
		`<a:accent2><a:srgbClr val="C0504D"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>` +
		`<a:accent4><a:srgbClr val="8064A2"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>` +
		`<a:accent6><a:srgbClr val="F79646"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0000FF"/></a:hlink>` +
		`<a:folHlink><a:srgbClr val="800080"/></a:folHlink>` +
		`</a:clrScheme>` +
		`<a:fontScheme name="Versedeck">` +
		`<a:majorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
		`<a:minorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
		`</a:fontScheme>` +
		`<a:fmtScheme name="Versedeck">` +
		`<a:fillStyleLst>` +
		`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
		`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
		`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
		`</a:fillStyleLst>` +
		`<a:lnStyleLst>` +
		`<a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
		`<a:ln w="25400"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
		`<a:ln w="38100"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
		`</a:lnStyleLst>` +
		`<a:effectStyleLst>` +
		`<a:effectStyle><a:effectLst/></a:effectStyle>` +
		`<a:effectStyle><a:effectLst/></a:effectStyle>` +
		`<a:effectStyle><a:effectLst/></a:effectStyle>` +
		`</a:effectStyleLst>` +
		`<a:bgFillStyleLst>` +
		`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
		`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
		`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
		`</a:bgFillStyleLst>` +
		`</a:fmtScheme>` +
		`</a:themeElements>` +
		`<a:objectDefaults/><a:extraClrSchemeLst/>` +
		`</a:theme>`
}
