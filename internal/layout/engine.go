// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout turns a RenderRequest into a SlideDocument: one slide per
// verse with a background, a body text box and an optional title.
//
// The engine is configured once with the default style and canvas and is
// safe to reuse across renders. A render is synchronous and holds no state
// between calls.
package layout

import (
	"fmt"
	"log/slog"

	"github.com/pdiddy/versedeck/internal/logging"
	"github.com/pdiddy/versedeck/internal/style"
	"github.com/pdiddy/versedeck/pkg/types"
)

// Geometry shared by both layout policies.
var (
	bodyTopAutoFit   = types.Points(100)
	bodyMarginX      = types.Inches(1)
	bodyTopWrapped   = types.Inches(1)
	bottomMargin     = types.Inches(0.5)
	titleHeight      = types.Points(50)
	titleBottomInset = types.Inches(1)
	separatorGap     = types.Inches(0.1)
)

const (
	overlayAlpha     = 0.5
	separatorWidthPt = 1.0
)

// Engine renders requests against a fixed default style and canvas.
type Engine struct {
	defaults types.StyleConfig
	canvas   types.CanvasConfig
	synth    Synthesizer
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSynthesizer replaces the gg background synthesizer.
func WithSynthesizer(s Synthesizer) Option {
	return func(e *Engine) { e.synth = s }
}

// WithTempDir sets the parent directory of the synthesizer's scratch files.
// It has no effect when WithSynthesizer supplies a custom synthesizer.
func WithTempDir(dir string) Option {
	return func(e *Engine) {
		if _, ok := e.synth.(GGSynthesizer); ok {
			e.synth = GGSynthesizer{TempDir: dir}
		}
	}
}

// WithLogger sets the logger for recovered style and asset problems.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine. defaults is copied and never modified.
func NewEngine(defaults types.StyleConfig, canvas types.CanvasConfig, opts ...Option) *Engine {
	e := &Engine{
		defaults: defaults,
		canvas:   canvas,
		synth:    GGSynthesizer{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render lays out one slide per verse in request order. An empty verse list
// yields a document with zero slides. The only error is a failure to
// synthesize the fallback background.
func (e *Engine) Render(req types.RenderRequest) (*types.SlideDocument, error) {
	st := style.Normalize(req.Config, e.defaults)
	book := req.BookName
	chapter := req.ChapterNumber.String()

	doc := &types.SlideDocument{
		Title:     DocumentTitle(book, chapter),
		WidthEMU:  e.canvas.WidthEMU(),
		HeightEMU: e.canvas.HeightEMU(),
		Slides:    make([]types.Slide, 0, len(req.Verses)),
	}
	if len(req.Verses) == 0 {
		return doc, nil
	}

	bg, err := e.background(st)
	if err != nil {
		return nil, err
	}

	hasTitle := book != "" || chapter != ""
	for _, v := range req.Verses {
		slide := types.Slide{Background: bg}
		if bg.Kind == types.BackgroundImage && st.Overlay {
			slide.Overlay = &types.Fill{
				Frame: e.fullFrame(),
				Color: types.RGB{},
				Alpha: overlayAlpha,
			}
		}

		label := v.Label.String()
		slide.Body = e.body(st, ComposeBody(label, v.Content))

		if hasTitle {
			title := e.title(st, ComposeTitle(st.TitleMode, book, chapter, label))
			slide.Title = &title
			if st.TitlePlacement == types.TitleBottom && st.TitleSeparator {
				slide.Separator = e.separator(st, title.Frame)
			}
		}
		doc.Slides = append(doc.Slides, slide)
	}

	e.logger.Debug("rendered document",
		"title", doc.Title,
		"slides", len(doc.Slides),
		"layout", string(st.LayoutPolicy),
		"background", string(bg.Kind))
	return doc, nil
}

// background resolves the single background shared by every slide of a
// render, so the fallback is synthesized at most once.
func (e *Engine) background(st types.StyleConfig) (types.Background, error) {
	media, err := loadImage(st.BackgroundImagePath)
	if err == nil {
		return types.Background{
			Kind:   types.BackgroundImage,
			Source: st.BackgroundImagePath,
			Media:  media,
		}, nil
	}
	e.logger.Debug("using synthesized background", "reason", err)

	media, err = e.synth.Synthesize(st.BackgroundColor, e.canvas.WidthPx, e.canvas.HeightPx)
	if err != nil {
		return types.Background{}, fmt.Errorf("synthesizing background: %w", err)
	}
	return types.Background{
		Kind:  types.BackgroundSynthesized,
		Color: st.BackgroundColor,
		Media: media,
	}, nil
}

func (e *Engine) body(st types.StyleConfig, text string) types.TextBox {
	box := types.TextBox{
		Name:     "Body",
		WordWrap: true,
		Align:    st.TextAlign,
		Style: types.RunStyle{
			FontFamily: st.FontFamily,
			SizePt:     st.FontSizePt,
			Color:      st.Color,
			Bold:       st.FontStyle.Bold(),
			Italic:     st.FontStyle.Italic(),
			Underline:  st.FontStyle.Underline(),
		},
		FontScale: 1,
	}

	bottom := e.bodyBottom(st)
	switch st.LayoutPolicy {
	case types.LayoutWrapped:
		box.Frame = types.Rect{
			X: bodyMarginX,
			Y: bodyTopWrapped,
			W: e.canvas.WidthEMU() - 2*bodyMarginX,
			H: clampHeight(bottom - bodyTopWrapped),
		}
		box.AutoFit = types.AutoFitNone
		for i, block := range Pack(Wrap(text, st.WrapWidth), st.WrapWidth) {
			p := types.Paragraph{Text: block}
			if i > 0 {
				p.SpaceBeforePt = st.ParagraphSpacingPt
			}
			box.Paragraphs = append(box.Paragraphs, p)
		}
	default:
		box.Frame = types.Rect{
			X: 0,
			Y: bodyTopAutoFit,
			W: e.canvas.WidthEMU(),
			H: clampHeight(bottom - bodyTopAutoFit),
		}
		box.AutoFit = types.AutoFitShrink
		box.Paragraphs = []types.Paragraph{{Text: text}}
		box.FontScale = FitScale(text, st.FontSizePt, box.Frame)
	}
	return box
}

// bodyBottom is the lowest edge the body may reach, leaving room for a
// bottom title and its separator.
func (e *Engine) bodyBottom(st types.StyleConfig) int64 {
	h := e.canvas.HeightEMU()
	if st.TitlePlacement == types.TitleBottom {
		return h - titleBottomInset - 2*separatorGap
	}
	return h - bottomMargin
}

func (e *Engine) title(st types.StyleConfig, text string) types.TextBox {
	y := int64(0)
	if st.TitlePlacement == types.TitleBottom {
		y = e.canvas.HeightEMU() - titleBottomInset
	}
	frame := types.Rect{X: 0, Y: y, W: e.canvas.WidthEMU(), H: titleHeight}
	return types.TextBox{
		Name:     "Title",
		Frame:    frame,
		WordWrap: true,
		AutoFit:  types.AutoFitShrink,
		Align:    types.AlignCenter,
		Style: types.RunStyle{
			FontFamily: st.TitleStyleFont(),
			SizePt:     st.TitleFontSizePt,
			Color:      st.TitleStyleColor(),
			Bold:       st.FontStyle.Bold(),
			Italic:     st.FontStyle.Italic(),
			Underline:  st.FontStyle.Underline(),
		},
		Paragraphs: []types.Paragraph{{Text: text}},
		FontScale:  FitScale(text, st.TitleFontSizePt, frame),
	}
}

func (e *Engine) separator(st types.StyleConfig, titleFrame types.Rect) *types.Line {
	return &types.Line{
		Frame: types.Rect{
			X: bodyMarginX,
			Y: titleFrame.Y - separatorGap,
			W: e.canvas.WidthEMU() - 2*bodyMarginX,
			H: 0,
		},
		Color:   st.TitleStyleColor(),
		WidthPt: separatorWidthPt,
	}
}

func (e *Engine) fullFrame() types.Rect {
	return types.Rect{W: e.canvas.WidthEMU(), H: e.canvas.HeightEMU()}
}

func clampHeight(h int64) int64 {
	if h < titleHeight {
		return titleHeight
	}
	return h
}
