package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Groups and Views
// ============================================================================
// Builders never return nil for valid input: an empty view yields a config
// with empty series so renderers can show an empty chart.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BarOption adjusts a bar chart after it is built.
type BarOption func(*ChartConfig)

// WithBarColors colors each bar individually, cycling the default palette.
func WithBarColors() BarOption {
	return func(c *ChartConfig) {
		if len(c.Series) == 0 {
			return
		}
		c.Colors = assignColors(len(c.Series[0].Data))
		c.ShowLegend = false
	}
}

// WithValueLabels prints each bar's value above it.
func WithValueLabels() BarOption {
	return func(c *ChartConfig) { c.ShowValues = true }
}

// BuildBarChart produces a single-series bar chart, one bar per group.
func BuildBarChart(title, xAxis, yAxis string, groups []Group, opts ...BarOption) *ChartConfig {
	config := &ChartConfig{
		ChartType:  ChartBar,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     buildSingleSeries(groups, yAxis),
		ShowLegend: false,
		ShowGrid:   true,
	}
	config.Colors = assignColors(len(config.Series))
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// BuildGroupedBarChart produces a bar chart with one bar per series inside
// each category. Every series must carry one point per category, in order.
func BuildGroupedBarChart(title, xAxis, yAxis string, series []ChartSeries, refs ...ReferenceLine) *ChartConfig {
	colors := make([]string, len(series))
	for i := range series {
		if series[i].Color == "" {
			series[i].Color = defaultColors[i%len(defaultColors)]
		}
		colors[i] = series[i].Color
	}
	return &ChartConfig{
		ChartType:      ChartGroupedBar,
		Title:          title,
		XAxis:          xAxis,
		YAxis:          yAxis,
		Series:         series,
		Colors:         colors,
		ReferenceLines: refs,
		ShowLegend:     true,
		ShowGrid:       true,
	}
}

// BuildLineChart produces a markers+lines chart, one point per group.
func BuildLineChart(title, xAxis, yAxis string, groups []Group, color string) *ChartConfig {
	series := buildSingleSeries(groups, yAxis)
	series[0].Color = color
	return &ChartConfig{
		ChartType:   ChartLine,
		Title:       title,
		XAxis:       xAxis,
		YAxis:       yAxis,
		Series:      series,
		Colors:      []string{color},
		ShowGrid:    true,
		ShowMarkers: true,
	}
}

// BuildScatterChart plots one point per row of view: x from xMeasure,
// y from yMeasure. Label carries labelDimension when set.
func BuildScatterChart(title, xAxis, yAxis string, view RecordView, xMeasure, yMeasure, labelDimension, color string) *ChartConfig {
	points := make([]ChartPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		p := ChartPoint{
			X:     Number(view.Measure(i, xMeasure)),
			Value: Number(view.Measure(i, yMeasure)),
		}
		if labelDimension != "" {
			p.Label = view.Dimension(i, labelDimension)
		}
		points = append(points, p)
	}
	return &ChartConfig{
		ChartType:   ChartScatter,
		Title:       title,
		XAxis:       xAxis,
		YAxis:       yAxis,
		Series:      []ChartSeries{{Name: yAxis, Data: points, Color: color}},
		Colors:      []string{color},
		ShowGrid:    true,
		ShowMarkers: true,
	}
}

// BuildHeatmap produces a heatmap over a square matrix. Values are shown in
// each cell; min/max bound the color scale.
func BuildHeatmap(title string, labels []string, matrix [][]float64, min, max float64, scale string) *ChartConfig {
	values := make([][]Number, len(matrix))
	for i, row := range matrix {
		values[i] = make([]Number, len(row))
		for j, v := range row {
			values[i][j] = Number(v)
		}
	}
	return &ChartConfig{
		ChartType: ChartHeatmap,
		Title:     title,
		Series:    []ChartSeries{},
		Heatmap: &HeatmapData{
			Labels: labels,
			Values: values,
			Min:    min,
			Max:    max,
			Scale:  scale,
		},
		ShowValues: true,
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: Number(g.Value),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
