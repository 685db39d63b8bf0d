// Package render turns dashboard panels into images and reports.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/engine"
)

// ============================================================================
// CHART RENDERER — ChartConfig to PNG/SVG via go-chart
// ============================================================================
// Categorical axes place category i at x = i over the range [-0.5, n-0.5].
// Ranges are always explicit so single-valued data never collapses the
// axis.
// ============================================================================

var (
	ErrNotAChart         = errors.New("panel is not a chart")
	ErrEmptyChart        = errors.New("chart has no data")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Format is an image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case PNG:
		return chart.PNG, nil
	case SVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// Size is the output canvas in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when a Size field is zero.
var DefaultSize = Size{Width: 800, Height: 480}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}
	return s
}

// Panel renders a chart panel. Table panels return ErrNotAChart.
func Panel(w io.Writer, p *dashboard.Panel, format Format, size Size) error {
	if p == nil || p.Chart == nil {
		return ErrNotAChart
	}
	return Chart(w, p.Chart, format, size)
}

// Chart renders cfg in the given format.
func Chart(w io.Writer, cfg *engine.ChartConfig, format Format, size Size) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	if cfg.Empty() {
		return ErrEmptyChart
	}

	var ch chart.Chart
	switch cfg.ChartType {
	case engine.ChartBar, engine.ChartGroupedBar:
		ch = barChart(cfg)
	case engine.ChartLine:
		ch = lineChart(cfg)
	case engine.ChartScatter:
		ch = scatterChart(cfg)
	case engine.ChartHeatmap:
		ch = heatmapChart(cfg)
	default:
		return fmt.Errorf("unknown chart type %q", cfg.ChartType)
	}

	size = size.orDefault()
	ch.Title = cfg.Title
	ch.Width = size.Width
	ch.Height = size.Height
	ch.Background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
	if cfg.ShowLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", cfg.ChartType, err)
	}
	return nil
}

// ============================================================================
// CHART KINDS
// ============================================================================

func barChart(cfg *engine.ChartConfig) chart.Chart {
	labels := categoryLabels(cfg.Series)
	values := []float64{0}
	for _, s := range cfg.Series {
		for _, p := range s.Data {
			values = append(values, p.Value.Float())
		}
	}
	for _, ref := range cfg.ReferenceLines {
		values = append(values, ref.Value.Float())
	}

	series := make([]chart.Series, 0, len(cfg.Series)+len(cfg.ReferenceLines))
	for i, s := range cfg.Series {
		bs := &barSeries{
			name:       s.Name,
			values:     pointValues(s.Data),
			index:      i,
			groups:     len(cfg.Series),
			showValues: cfg.ShowValues,
			style:      fillStyle(seriesColor(cfg, i)),
		}
		if len(cfg.Series) == 1 && len(cfg.Colors) == len(s.Data) {
			bs.colors = make([]drawing.Color, len(cfg.Colors))
			for j, c := range cfg.Colors {
				bs.colors[j] = parseColor(c)
			}
		}
		series = append(series, bs)
	}
	for _, ref := range cfg.ReferenceLines {
		series = append(series, referenceLine(ref))
	}

	lo, hi := valueRange(values, 0.1)
	return chart.Chart{
		XAxis:  categoryAxis(cfg.XAxis, labels),
		YAxis:  valueAxis(cfg.YAxis, lo, hi),
		Series: series,
	}
}

func lineChart(cfg *engine.ChartConfig) chart.Chart {
	s := cfg.Series[0]
	labels := categoryLabels(cfg.Series)
	var xs, ys []float64
	for i, p := range s.Data {
		if !p.Value.Valid() {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, p.Value.Float())
	}

	color := parseColor(seriesColor(cfg, 0))
	style := chart.Style{StrokeColor: color, StrokeWidth: 2}
	if cfg.ShowMarkers {
		style.DotColor = color
		style.DotWidth = 5
	}

	lo, hi := valueRange(ys, 0.1)
	return chart.Chart{
		XAxis: categoryAxis(cfg.XAxis, labels),
		YAxis: valueAxis(cfg.YAxis, lo, hi),
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		}},
	}
}

func scatterChart(cfg *engine.ChartConfig) chart.Chart {
	s := cfg.Series[0]
	var xs, ys []float64
	for _, p := range s.Data {
		if !p.X.Valid() || !p.Value.Valid() {
			continue
		}
		xs = append(xs, p.X.Float())
		ys = append(ys, p.Value.Float())
	}

	xlo, xhi := valueRange(xs, 0.05)
	ylo, yhi := valueRange(ys, 0.05)
	return chart.Chart{
		XAxis: chart.XAxis{
			Name:  cfg.XAxis,
			Range: &chart.ContinuousRange{Min: xlo, Max: xhi},
		},
		YAxis: valueAxis(cfg.YAxis, ylo, yhi),
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    parseColor(seriesColor(cfg, 0)),
				DotWidth:    3,
			},
		}},
	}
}

func heatmapChart(cfg *engine.ChartConfig) chart.Chart {
	hm := cfg.Heatmap
	n := len(hm.Labels)

	// Row 0 is drawn at the top.
	yTicks := make([]chart.Tick, n)
	for v := range yTicks {
		yTicks[v] = chart.Tick{Value: float64(v), Label: hm.Labels[n-1-v]}
	}

	return chart.Chart{
		XAxis: categoryAxis("", hm.Labels),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: slotTicks(yTicks),
		},
		Series: []chart.Series{&heatmapSeries{data: hm, showValues: cfg.ShowValues}},
	}
}

// ============================================================================
// AXES & RANGES
// ============================================================================

func categoryAxis(name string, labels []string) chart.XAxis {
	ticks := make([]chart.Tick, len(labels))
	for i, label := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	axis := chart.XAxis{
		Name:  name,
		Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(labels)) - 0.5},
		Ticks: slotTicks(ticks),
	}
	if len(labels) > 8 {
		axis.TickStyle = chart.Style{TextRotationDegrees: 45}
	}
	return axis
}

// slotTicks brackets category ticks 0..n-1 with blank ticks at the slot
// edges. go-chart takes the axis range from the ticks, so a single category
// would otherwise collapse the axis.
func slotTicks(ticks []chart.Tick) []chart.Tick {
	out := make([]chart.Tick, 0, len(ticks)+2)
	out = append(out, chart.Tick{Value: -0.5})
	out = append(out, ticks...)
	return append(out, chart.Tick{Value: float64(len(ticks)) - 0.5})
}

func valueAxis(name string, lo, hi float64) chart.YAxis {
	return chart.YAxis{
		Name:           name,
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		GridMajorStyle: chart.Style{StrokeColor: drawing.ColorFromHex("e0e0e0"), StrokeWidth: 1},
	}
}

// valueRange returns bounds covering every finite value, widened by pad
// (a fraction of the span) and never zero-width.
func valueRange(values []float64, pad float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	span := hi - lo
	if lo != 0 {
		lo -= span * pad
	}
	return lo, hi + span*pad
}

func categoryLabels(series []engine.ChartSeries) []string {
	if len(series) == 0 {
		return nil
	}
	labels := make([]string, len(series[0].Data))
	for i, p := range series[0].Data {
		labels[i] = p.Label
	}
	return labels
}

func pointValues(points []engine.ChartPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value.Float()
	}
	return values
}

// ============================================================================
// COLORS
// ============================================================================

func seriesColor(cfg *engine.ChartConfig, i int) string {
	if i < len(cfg.Series) && cfg.Series[i].Color != "" {
		return cfg.Series[i].Color
	}
	if i < len(cfg.Colors) {
		return cfg.Colors[i]
	}
	return "#4F46E5"
}

func parseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func fillStyle(hex string) chart.Style {
	c := parseColor(hex)
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

// rdBuStops is the reversed red-blue diverging scale: low values blue,
// high values red.
var rdBuStops = []drawing.Color{
	drawing.ColorFromHex("2166ac"),
	drawing.ColorFromHex("92c5de"),
	drawing.ColorFromHex("f7f7f7"),
	drawing.ColorFromHex("f4a582"),
	drawing.ColorFromHex("b2182b"),
}

var missingCell = drawing.ColorFromHex("d9d9d9")

// divergingColor maps v in [min, max] onto rdBuStops.
func divergingColor(v, min, max float64) drawing.Color {
	if math.IsNaN(v) || max <= min {
		return missingCell
	}
	t := (v - min) / (max - min)
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(rdBuStops)-1)
	i := int(math.Floor(pos))
	if i >= len(rdBuStops)-1 {
		return rdBuStops[len(rdBuStops)-1]
	}
	return lerpColor(rdBuStops[i], rdBuStops[i+1], pos-float64(i))
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
