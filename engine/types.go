package engine

import (
	"math"
	"strconv"
)

// ============================================================================
// ENGINE TYPES — Views in, render-ready tables and charts out
// ============================================================================
// Dependency: engine has ZERO external dependencies. Consumers adapt their
// rows through RecordView and hand the resulting configs to any renderer.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Record{Dimensions["gen"]="1", Measures["speed"]=90}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// NUMBER — float64 that survives JSON
// ============================================================================

// Number is a float64 whose JSON form is null when the value is NaN or
// infinite. Means over empty views are NaN and must still encode.
type Number float64

// NaN returns a Number holding NaN.
func NaN() Number { return Number(math.NaN()) }

// Float returns the underlying float64.
func (n Number) Float() float64 { return float64(n) }

// Valid reports whether n is a finite value.
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to NaN.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NaN()
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartConfig or TableData.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// Chart kinds understood by the builders and renderers.
const (
	ChartBar        = "bar"
	ChartGroupedBar = "grouped_bar"
	ChartLine       = "line"
	ChartScatter    = "scatter"
	ChartHeatmap    = "heatmap"
)

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType      string          `json:"chartType" yaml:"chartType"`
	Title          string          `json:"title" yaml:"title"`
	XAxis          string          `json:"xAxis,omitempty" yaml:"xAxis,omitempty"`
	YAxis          string          `json:"yAxis,omitempty" yaml:"yAxis,omitempty"`
	Series         []ChartSeries   `json:"series" yaml:"series"`
	Colors         []string        `json:"colors,omitempty" yaml:"colors,omitempty"`
	ReferenceLines []ReferenceLine `json:"referenceLines,omitempty" yaml:"referenceLines,omitempty"`
	Heatmap        *HeatmapData    `json:"heatmap,omitempty" yaml:"heatmap,omitempty"`
	ShowLegend     bool            `json:"showLegend" yaml:"showLegend"`
	ShowGrid       bool            `json:"showGrid" yaml:"showGrid"`
	ShowMarkers    bool            `json:"showMarkers,omitempty" yaml:"showMarkers,omitempty"`
	ShowValues     bool            `json:"showValues,omitempty" yaml:"showValues,omitempty"`
}

// Empty reports whether the chart has nothing to draw.
func (c *ChartConfig) Empty() bool {
	if c == nil {
		return true
	}
	if c.ChartType == ChartHeatmap {
		return c.Heatmap == nil || len(c.Heatmap.Labels) == 0
	}
	for _, s := range c.Series {
		if len(s.Data) > 0 {
			return false
		}
	}
	return true
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name" yaml:"name"`
	Data  []ChartPoint `json:"data" yaml:"data"`
	Color string       `json:"color,omitempty" yaml:"color,omitempty"`
}

// ChartPoint represents a single data point. Categorical charts use Label;
// scatter charts use X.
type ChartPoint struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	X     Number `json:"x,omitempty" yaml:"x,omitempty"`
	Value Number `json:"value" yaml:"value"`
}

// ReferenceLine is a horizontal line drawn across the plot at Value.
type ReferenceLine struct {
	Label  string `json:"label" yaml:"label"`
	Value  Number `json:"value" yaml:"value"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Dashed bool   `json:"dashed" yaml:"dashed"`
}

// HeatmapData is a square matrix keyed by Labels on both axes.
type HeatmapData struct {
	Labels []string   `json:"labels" yaml:"labels"`
	Values [][]Number `json:"values" yaml:"values"`
	Min    float64    `json:"min" yaml:"min"`
	Max    float64    `json:"max" yaml:"max"`
	Scale  string     `json:"scale" yaml:"scale"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title" yaml:"title"`
	Columns []Column   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type" yaml:"type"`   // "text", "number"
	Align string `json:"align" yaml:"align"` // "left", "center", "right"
}

// Headers returns the column labels in order.
func (t *TableData) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	return headers
}
