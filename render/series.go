package render

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/pokedata/engine"
)

// ============================================================================
// CUSTOM SERIES — Categorical bars, reference lines and heatmap cells
// ============================================================================
// go-chart ships continuous line series only, so the categorical kinds
// implement chart.Series directly and draw inside the canvas box.
// ============================================================================

const barFill = 0.8 // share of a category slot covered by its bars

// barSeries draws one bar per category. With groups > 1 the bars of each
// series sit side by side inside the slot, offset by index.
type barSeries struct {
	name       string
	values     []float64
	colors     []drawing.Color // per bar, overrides style when set
	index      int
	groups     int
	showValues bool
	style      chart.Style
}

var (
	_ chart.Series         = (*barSeries)(nil)
	_ chart.ValuesProvider = (*barSeries)(nil)
)

func (b *barSeries) GetName() string           { return b.name }
func (b *barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (b *barSeries) GetStyle() chart.Style     { return b.style }
func (b *barSeries) Len() int                  { return len(b.values) }

func (b *barSeries) GetValues(i int) (float64, float64) {
	return float64(i), b.values[i]
}

func (b *barSeries) Validate() error { return nil }

func (b *barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	groups := b.groups
	if groups < 1 {
		groups = 1
	}
	width := barFill / float64(groups)
	zero := canvasBox.Bottom - yrange.Translate(math.Max(0, yrange.GetMin()))

	for i, v := range b.values {
		if math.IsNaN(v) {
			continue
		}
		left := float64(i) - barFill/2 + width*float64(b.index)
		box := chart.Box{
			Left:   canvasBox.Left + xrange.Translate(left),
			Right:  canvasBox.Left + xrange.Translate(left+width),
			Top:    canvasBox.Bottom - yrange.Translate(v),
			Bottom: zero,
		}
		if box.Top > box.Bottom {
			box.Top, box.Bottom = box.Bottom, box.Top
		}

		style := b.style
		if i < len(b.colors) {
			style.FillColor = b.colors[i]
			style.StrokeColor = b.colors[i]
		}
		chart.Draw.Box(r, box, style.InheritFrom(defaults))

		if b.showValues {
			label := chart.Box{Left: box.Left - 20, Right: box.Right + 20, Top: box.Top - 14, Bottom: box.Top - 2}
			chart.Draw.TextWithin(r, engine.FormatNumber(v, 1), label, chart.Style{
				FontSize:            8,
				FontColor:           drawing.ColorFromHex("333333"),
				TextHorizontalAlign: chart.TextHorizontalAlignCenter,
				TextVerticalAlign:   chart.TextVerticalAlignBottom,
			}.InheritFrom(defaults))
		}
	}
}

// refSeries is a horizontal line across the whole canvas.
type refSeries struct {
	name  string
	value float64
	style chart.Style
}

func referenceLine(ref engine.ReferenceLine) *refSeries {
	style := chart.Style{
		StrokeColor: parseColor(ref.Color),
		StrokeWidth: 2,
	}
	if ref.Dashed {
		style.StrokeDashArray = []float64{6, 4}
	}
	return &refSeries{name: ref.Label, value: ref.Value.Float(), style: style}
}

var _ chart.Series = (*refSeries)(nil)

func (s *refSeries) GetName() string           { return s.name }
func (s *refSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *refSeries) GetStyle() chart.Style     { return s.style }
func (s *refSeries) Validate() error           { return nil }

func (s *refSeries) Render(r chart.Renderer, canvasBox chart.Box, _, yrange chart.Range, defaults chart.Style) {
	if math.IsNaN(s.value) {
		return
	}
	y := canvasBox.Bottom - yrange.Translate(s.value)
	style := s.style.InheritFrom(defaults)
	style.WriteToRenderer(r)
	r.MoveTo(canvasBox.Left, y)
	r.LineTo(canvasBox.Right, y)
	r.Stroke()

	label := chart.Box{Left: canvasBox.Right - 160, Right: canvasBox.Right - 4, Top: y + 2, Bottom: y + 16}
	chart.Draw.TextWithin(r, s.name, label, chart.Style{
		FontSize:            9,
		FontColor:           s.style.StrokeColor,
		TextHorizontalAlign: chart.TextHorizontalAlignRight,
		TextVerticalAlign:   chart.TextVerticalAlignTop,
	}.InheritFrom(defaults))
}

// heatmapSeries fills one cell per matrix entry, row 0 at the top.
type heatmapSeries struct {
	data       *engine.HeatmapData
	showValues bool
}

var _ chart.Series = (*heatmapSeries)(nil)

func (h *heatmapSeries) GetName() string           { return "correlation" }
func (h *heatmapSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (h *heatmapSeries) GetStyle() chart.Style     { return chart.Style{} }
func (h *heatmapSeries) Validate() error           { return nil }

func (h *heatmapSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	n := len(h.data.Labels)
	for i, row := range h.data.Values {
		y := float64(n - 1 - i)
		for j, v := range row {
			x := float64(j)
			cell := chart.Box{
				Left:   canvasBox.Left + xrange.Translate(x-0.5),
				Right:  canvasBox.Left + xrange.Translate(x+0.5),
				Top:    canvasBox.Bottom - yrange.Translate(y+0.5),
				Bottom: canvasBox.Bottom - yrange.Translate(y-0.5),
			}
			fill := divergingColor(v.Float(), h.data.Min, h.data.Max)
			chart.Draw.Box(r, cell, chart.Style{
				FillColor:   fill,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			}.InheritFrom(defaults))

			if !h.showValues {
				continue
			}
			text := "NaN"
			if v.Valid() {
				text = engine.FormatNumber(engine.RoundTo2(v.Float()), 2)
			}
			fontColor := drawing.ColorFromHex("222222")
			if v.Valid() && math.Abs(v.Float()) > 0.6 {
				fontColor = drawing.ColorWhite
			}
			chart.Draw.TextWithin(r, text, cell, chart.Style{
				FontSize:            9,
				FontColor:           fontColor,
				TextHorizontalAlign: chart.TextHorizontalAlignCenter,
				TextVerticalAlign:   chart.TextVerticalAlignMiddle,
			}.InheritFrom(defaults))
		}
	}
}
