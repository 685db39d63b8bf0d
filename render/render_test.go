package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/dataset"
	"github.com/spektr-org/pokedata/engine"
)

// ============================================================================
// FIXTURES
// ============================================================================

var sampleCreatures = []dataset.Creature{
	{Name: "Articuno", Type1: "Ice", Type2: "Flying", HP: 90, Attack: 85, Defense: 100, SpAttack: 95, SpDefense: 125, Speed: 85, BaseStats: 580, IsLegendary: true, Generation: "1", Immunities: 1},
	{Name: "Pikachu", Type1: "Electric", HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90, BaseStats: 320, Generation: "1"},
	{Name: "Mew", Type1: "Psychic", HP: 100, Attack: 100, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: 100, BaseStats: 600, IsMythical: true, Generation: "1"},
	{Name: "Nihilego", Type1: "Rock", Type2: "Poison", HP: 109, Attack: 53, Defense: 47, SpAttack: 127, SpDefense: 131, Speed: 103, BaseStats: 570, IsUltraBeast: true, Generation: "7", Immunities: 2},
}

func sampleDashboard(sel dashboard.Selection) *dashboard.Dashboard {
	return dashboard.Build(dataset.View(sampleCreatures), sel)
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// ============================================================================
// CHARTS
// ============================================================================

func TestRenderEveryChartPanel(t *testing.T) {
	d := sampleDashboard(dashboard.All())

	for _, p := range d.Panels() {
		if p.Kind != dashboard.KindChart {
			continue
		}
		p := p
		t.Run(p.ID, func(t *testing.T) {
			var png bytes.Buffer
			require.NoError(t, Panel(&png, &p, PNG, Size{Width: 640, Height: 400}))
			assert.True(t, bytes.HasPrefix(png.Bytes(), pngMagic), "png magic")

			var svg bytes.Buffer
			require.NoError(t, Panel(&svg, &p, SVG, Size{}))
			assert.Contains(t, svg.String(), "<svg")
		})
	}
}

func TestRenderSingleGeneration(t *testing.T) {
	d := sampleDashboard(dashboard.Generation("7"))

	for _, id := range []string{dashboard.PanelCategoryComparison, dashboard.PanelCategoryDistribution, dashboard.PanelTypeDistribution} {
		p, ok := d.Panel(id)
		require.True(t, ok, id)
		var buf bytes.Buffer
		assert.NoError(t, Panel(&buf, p, SVG, DefaultSize), id)
	}
}

func TestRenderSingleCategory(t *testing.T) {
	// One generation, one category, one line point.
	d := dashboard.Build(dataset.View(sampleCreatures[1:2]), dashboard.All())

	for _, id := range []string{dashboard.PanelBaseStatsByGeneration, dashboard.PanelCategoryDistribution, dashboard.PanelTypeDistribution} {
		p, ok := d.Panel(id)
		require.True(t, ok, id)
		require.Len(t, p.Chart.Series[0].Data, 1, id)
		for _, f := range []Format{PNG, SVG} {
			var buf bytes.Buffer
			assert.NoError(t, Panel(&buf, p, f, DefaultSize), "%s %s", id, f)
		}
	}

	hm := engine.BuildHeatmap("one", []string{"HP"}, [][]float64{{1}}, -1, 1, "RdBu_r")
	assert.NoError(t, Chart(&bytes.Buffer{}, hm, SVG, DefaultSize))
}

func TestSlotTicksBracketCategories(t *testing.T) {
	axis := categoryAxis("Generation", []string{"1"})
	require.Len(t, axis.Ticks, 3)
	assert.Equal(t, -0.5, axis.Ticks[0].Value)
	assert.Equal(t, "1", axis.Ticks[1].Label)
	assert.Equal(t, 0.5, axis.Ticks[2].Value)
	assert.Empty(t, axis.Ticks[2].Label)

	heat := heatmapChart(engine.BuildHeatmap("h", []string{"a", "b"}, [][]float64{{1, 0}, {0, 1}}, -1, 1, "RdBu_r"))
	require.Len(t, heat.YAxis.Ticks, 4)
	assert.Equal(t, "b", heat.YAxis.Ticks[1].Label)
	assert.Equal(t, "a", heat.YAxis.Ticks[2].Label, "row 0 on top")
	assert.Equal(t, 1.5, heat.YAxis.Ticks[3].Value)
}

func TestRenderErrors(t *testing.T) {
	d := sampleDashboard(dashboard.All())

	table, _ := d.Panel(dashboard.PanelFastest)
	assert.ErrorIs(t, Panel(&bytes.Buffer{}, table, PNG, DefaultSize), ErrNotAChart)

	empty := engine.BuildBarChart("Empty", "x", "y", nil)
	assert.ErrorIs(t, Chart(&bytes.Buffer{}, empty, PNG, DefaultSize), ErrEmptyChart)

	chart, _ := d.Panel(dashboard.PanelTypeDistribution)
	assert.ErrorIs(t, Panel(&bytes.Buffer{}, chart, Format("gif"), DefaultSize), ErrUnsupportedFormat)

	unknown := &engine.ChartConfig{ChartType: "pie", Series: []engine.ChartSeries{{Data: []engine.ChartPoint{{Label: "a", Value: 1}}}}}
	assert.Error(t, Chart(&bytes.Buffer{}, unknown, PNG, DefaultSize))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())
	assert.Equal(t, "image/png", PNG.ContentType())

	_, err = ParseFormat("jpeg")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestValueRange(t *testing.T) {
	lo, hi := valueRange([]float64{0, 10}, 0.1)
	assert.Equal(t, 0.0, lo, "zero baseline stays")
	assert.Equal(t, 11.0, hi)

	lo, hi = valueRange([]float64{5, 5}, 0.1)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 6.0, hi)

	lo, hi = valueRange(nil, 0.1)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestDivergingColor(t *testing.T) {
	assert.Equal(t, rdBuStops[0], divergingColor(-1, -1, 1))
	assert.Equal(t, rdBuStops[2], divergingColor(0, -1, 1))
	assert.Equal(t, rdBuStops[4], divergingColor(1, -1, 1))
	assert.Equal(t, rdBuStops[4], divergingColor(3, -1, 1), "clamped")
	assert.Equal(t, missingCell, divergingColor(engine.NaN().Float(), -1, 1))
}

// ============================================================================
// REPORTS
// ============================================================================

func TestParseReportFormat(t *testing.T) {
	cases := map[string]ReportFormat{"": ReportText, "text": ReportText, "JSON": ReportJSON, "yml": ReportYAML, "csv": ReportCSV}
	for in, want := range cases {
		got, err := ParseReportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseReportFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteJSONEncodesMissingAsNull(t *testing.T) {
	// One row leaves every correlation undefined.
	d := dashboard.Build(dataset.View(sampleCreatures[:1]), dashboard.All())

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, d, ReportJSON))

	var decoded struct {
		Selection string `json:"selection"`
		Columns   []struct {
			Panels []struct {
				ID string `json:"id"`
			} `json:"panels"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "all", decoded.Selection)
	require.Len(t, decoded.Columns, 3)
	assert.Equal(t, dashboard.PanelTopBaseStats, decoded.Columns[0].Panels[0].ID)
	assert.Contains(t, buf.String(), "null")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleDashboard(dashboard.All()), ReportYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "PokéData", decoded["title"])
	assert.Equal(t, "all", decoded["selection"])
	assert.Len(t, decoded["columns"], 3)
}

func TestWriteCSVBlocks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleDashboard(dashboard.All()), ReportCSV))

	r := csv.NewReader(strings.NewReader(buf.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err, "blocks are valid CSV")
	assert.NotEmpty(t, records)

	out := buf.String()
	assert.Contains(t, out, "Highest Base Stats\nName,Base Stats\nMew,600\n")
	assert.Contains(t, out, "Speed vs Base Stats\nLabel,Speed,Base Stats\n")
	assert.Contains(t, out, "Category Comparison\nAttribute,Legendary,Normal,Mythical,Ultra Beast,Overall\n")
	assert.Equal(t, 12, strings.Count(out, "\n\n"), "one separator per panel")
}

func TestChartRows(t *testing.T) {
	hm := engine.BuildHeatmap("h", []string{"a", "b"}, [][]float64{{1, 0.5}, {0.5, 1}}, -1, 1, "RdBu_r")
	headers, rows := chartRows(hm)
	assert.Equal(t, []string{"", "a", "b"}, headers)
	assert.Equal(t, [][]string{{"a", "1", "0.50"}, {"b", "0.50", "1"}}, rows)

	bar := engine.BuildBarChart("b", "Type", "Count", []engine.Group{{Label: "Fire", Value: 3}})
	headers, rows = chartRows(bar)
	assert.Equal(t, []string{"Type", "Count"}, headers)
	assert.Equal(t, [][]string{{"Fire", "3"}}, rows)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleDashboard(dashboard.Generation("1")), ReportText))

	out := buf.String()
	assert.Contains(t, out, "PokéData")
	assert.Contains(t, out, "Showing 3 of 4 creatures (generation 1).")
	assert.Contains(t, out, "Top Creatures")
	assert.Contains(t, out, "Comparisons & Trends")
	assert.Contains(t, out, "Articuno")
}
