package dashboard

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/pokedata/dataset"
	"github.com/spektr-org/pokedata/engine"
)

// ============================================================================
// FIXTURES
// ============================================================================

// threeCreatures spans two generations: a legendary and a normal creature
// in generation 1, an ultra beast in generation 7.
var threeCreatures = []dataset.Creature{
	{
		Name: "Articuno", Type1: "Ice", Type2: "Flying",
		HP: 90, Attack: 85, Defense: 100, SpAttack: 95, SpDefense: 125, Speed: 85,
		BaseStats: 580, IsLegendary: true, Generation: "1", Immunities: 1,
	},
	{
		Name: "Pikachu", Type1: "Electric",
		HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90,
		BaseStats: 320, Generation: "1", Immunities: 0,
	},
	{
		Name: "Nihilego", Type1: "Rock", Type2: "Poison",
		HP: 109, Attack: 53, Defense: 47, SpAttack: 127, SpDefense: 131, Speed: 103,
		BaseStats: 570, IsUltraBeast: true, Generation: "7", Immunities: 2,
	},
}

func fixture() engine.RecordView { return dataset.View(threeCreatures) }

func column(t *testing.T, table *engine.TableData, col int) []string {
	t.Helper()
	require.NotNil(t, table)
	out := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		out[i] = row[col]
	}
	return out
}

func labels(s engine.ChartSeries) []string {
	out := make([]string, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.Label
	}
	return out
}

func values(s engine.ChartSeries) []float64 {
	out := make([]float64, len(s.Data))
	for i, p := range s.Data {
		out[i] = p.Value.Float()
	}
	return out
}

// ============================================================================
// SELECTION
// ============================================================================

func TestParseSelection(t *testing.T) {
	view := fixture()

	for _, raw := range []string{"", "all", " ALL "} {
		sel, err := ParseSelection(view, raw)
		require.NoError(t, err, raw)
		assert.True(t, sel.All, raw)
		assert.Equal(t, AllGenerations, sel.String())
	}

	sel, err := ParseSelection(view, "7")
	require.NoError(t, err)
	assert.Equal(t, Generation("7"), sel)
	assert.Equal(t, "generation 7", sel.Label())

	_, err = ParseSelection(view, "3")
	assert.True(t, errors.Is(err, ErrUnknownGeneration))
}

func TestOptionsAreSortedNumerically(t *testing.T) {
	creatures := []dataset.Creature{{Generation: "10"}, {Generation: "2"}, {Generation: "1"}, {Generation: "2"}}
	view := dataset.View(creatures)

	assert.Equal(t, []string{"1", "2", "10"}, Generations(view))
	assert.Equal(t, []string{"all", "1", "2", "10"}, Options(view))
}

func TestFilter(t *testing.T) {
	view := fixture()
	assert.Same(t, view, Filter(view, All()))
	assert.Equal(t, 2, Filter(view, Generation("1")).Len())
	assert.Equal(t, 0, Filter(view, Generation("9")).Len())
}

func TestSummary(t *testing.T) {
	view := fixture()
	assert.Equal(t, "Showing 3 of 3 creatures (all generations).", Summary(view, view, All()))
	assert.Equal(t, "Showing 2 of 3 creatures (generation 1).",
		Summary(view, Filter(view, Generation("1")), Generation("1")))

	one := dataset.View(threeCreatures[:1])
	assert.Equal(t, "Showing 1 of 1 creature (all generations).", Summary(one, one, All()))
}

// ============================================================================
// METRICS
// ============================================================================

func TestRankingTables(t *testing.T) {
	view := fixture()

	top := TopBaseStats(view, 2)
	assert.Equal(t, []string{"Name", "Base Stats"}, top.Headers())
	assert.Equal(t, [][]string{{"Articuno", "580"}, {"Nihilego", "570"}}, top.Rows)

	assert.Equal(t, []string{"Nihilego", "Articuno", "Pikachu"}, column(t, MostImmune(view, 15), 0))
	assert.Equal(t, []string{"103", "90", "85"}, column(t, Fastest(view, 5), 1))

	normals := StrongestNormals(view, 5)
	assert.Equal(t, [][]string{{"Pikachu", "55"}}, normals.Rows)
}

func TestAttributeMeans(t *testing.T) {
	table := AttributeMeans(Filter(fixture(), Generation("1")))
	assert.Equal(t, []string{"Attribute", "Mean"}, table.Headers())
	assert.Equal(t, []string{"HP", "Attack", "Defense", "Sp. Attack", "Sp. Defense", "Speed"}, column(t, table, 0))
	assert.Equal(t, []string{"62.50", "70", "70", "72.50", "87.50", "87.50"}, column(t, table, 1))
}

func TestCountByGeneration(t *testing.T) {
	table := CountByGeneration(fixture())
	assert.Equal(t, [][]string{{"1", "2"}, {"7", "1"}}, table.Rows)
}

func TestGenerationPanelsSkipMissingGeneration(t *testing.T) {
	creatures := append([]dataset.Creature{{Name: "Missingno", BaseStats: 100}}, threeCreatures...)
	view := dataset.View(creatures)

	assert.Equal(t, [][]string{{"1", "2"}, {"7", "1"}}, CountByGeneration(view).Rows)
	assert.Equal(t, []string{"1", "7"}, labels(BaseStatsByGeneration(view).Series[0]))
	assert.Equal(t, []string{"all", "1", "7"}, Options(view))
}

func TestCategoryDistribution(t *testing.T) {
	chart := CategoryDistribution(fixture())
	require.Len(t, chart.Series, 1)
	assert.Equal(t, []string{"Legendary", "Other", "Ultra Beast"}, labels(chart.Series[0]))
	assert.Equal(t, []float64{1, 1, 1}, values(chart.Series[0]))
	assert.Len(t, chart.Colors, 3)
}

func TestTypeDistributionCountsBothColumns(t *testing.T) {
	creatures := append([]dataset.Creature{{Name: "Zubat", Type1: "Poison", Type2: "Flying", Generation: "1"}}, threeCreatures...)
	chart := TypeDistribution(dataset.View(creatures))

	s := chart.Series[0]
	assert.Equal(t, []string{"Flying", "Poison", "Electric", "Ice", "Rock"}, labels(s))
	assert.Equal(t, []float64{2, 2, 1, 1, 1}, values(s))

	var total float64
	for _, v := range values(s) {
		total += v
	}
	assert.Equal(t, 7.0, total, "one count per non-empty type cell")
	assert.True(t, chart.ShowValues)
}

func TestCategoryComparison(t *testing.T) {
	chart := CategoryComparison(Filter(fixture(), Generation("1")))
	require.Equal(t, engine.ChartGroupedBar, chart.ChartType)
	require.Len(t, chart.Series, 5)

	names := make([]string, len(chart.Series))
	for i, s := range chart.Series {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Legendary", "Normal", "Mythical", "Ultra Beast", "Overall"}, names)

	assert.Equal(t, []float64{90, 85, 100, 95, 125, 85}, values(chart.Series[0]))
	assert.Equal(t, []float64{35, 55, 40, 50, 50, 90}, values(chart.Series[1]))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, values(chart.Series[2]), "empty group reads 0")
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, values(chart.Series[3]))
	assert.Equal(t, []float64{62.5, 70, 70, 72.5, 87.5, 87.5}, values(chart.Series[4]))

	require.Len(t, chart.ReferenceLines, 1)
	ref := chart.ReferenceLines[0]
	assert.Equal(t, "Overall Mean", ref.Label)
	assert.Equal(t, 75.0, ref.Value.Float())
	assert.True(t, ref.Dashed)
}

func TestAttributeCorrelation(t *testing.T) {
	chart := AttributeCorrelation(fixture())
	require.NotNil(t, chart.Heatmap)
	assert.Len(t, chart.Heatmap.Labels, 6)
	require.Len(t, chart.Heatmap.Values, 6)
	for i := range chart.Heatmap.Values {
		assert.InDelta(t, 1.0, chart.Heatmap.Values[i][i].Float(), 1e-9)
	}
	assert.Equal(t, -1.0, chart.Heatmap.Min)
	assert.Equal(t, 1.0, chart.Heatmap.Max)
}

func TestFullTablePanels(t *testing.T) {
	view := fixture()

	line := BaseStatsByGeneration(view)
	assert.Equal(t, []string{"1", "7"}, labels(line.Series[0]))
	assert.Equal(t, []float64{450, 570}, values(line.Series[0]))

	scatter := SpeedVsBaseStats(view)
	require.Len(t, scatter.Series[0].Data, 3)
	p := scatter.Series[0].Data[2]
	assert.Equal(t, "Nihilego", p.Label)
	assert.Equal(t, 103.0, p.X.Float())
	assert.Equal(t, 570.0, p.Value.Float())
}

func TestMetricsOnEmptyView(t *testing.T) {
	empty := Filter(fixture(), Generation("9"))

	assert.Empty(t, TopBaseStats(empty, 10).Rows)
	assert.Empty(t, CountByGeneration(empty).Rows)
	assert.True(t, CategoryDistribution(empty).Empty())
	assert.Equal(t, "NaN", AttributeMeans(empty).Rows[0][1])

	cmp := CategoryComparison(empty)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, values(cmp.Series[4]))
	assert.True(t, math.IsNaN(cmp.ReferenceLines[0].Value.Float()))
}

// ============================================================================
// BUILD
// ============================================================================

func TestBuildLayout(t *testing.T) {
	d := Build(fixture(), All())

	assert.Equal(t, "PokéData", d.Title)
	assert.Equal(t, []string{"all", "1", "7"}, d.Options)
	require.Len(t, d.Columns, 3)

	assert.Equal(t, []string{"Top Creatures", "Visual Analysis", "Comparisons & Trends"},
		[]string{d.Columns[0].Title, d.Columns[1].Title, d.Columns[2].Title})
	assert.Equal(t, []float64{1.2, 2, 2},
		[]float64{d.Columns[0].Width, d.Columns[1].Width, d.Columns[2].Width})

	var ids []string
	for _, col := range d.Columns {
		assert.Len(t, col.Panels, 4)
		for _, p := range col.Panels {
			ids = append(ids, p.ID)
			switch p.Kind {
			case KindChart:
				assert.NotNil(t, p.Chart, p.ID)
				assert.Nil(t, p.Table, p.ID)
			case KindTable:
				assert.NotNil(t, p.Table, p.ID)
				assert.Nil(t, p.Chart, p.ID)
			default:
				t.Errorf("panel %s: unexpected kind %q", p.ID, p.Kind)
			}
		}
	}
	assert.Equal(t, PanelIDs(), ids)
	assert.Len(t, ids, 12)
}

func TestBuildFiltersSelectedPanelsOnly(t *testing.T) {
	d := Build(fixture(), Generation("1"))
	assert.Equal(t, "Showing 2 of 3 creatures (generation 1).", d.Summary)

	top, ok := d.Panel(PanelTopBaseStats)
	require.True(t, ok)
	assert.Equal(t, []string{"Articuno", "Pikachu"}, column(t, top.Table, 0))

	counts, ok := d.Panel(PanelCountByGeneration)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"1", "2"}, {"7", "1"}}, counts.Table.Rows)

	scatter, ok := d.Panel(PanelSpeedVsBaseStats)
	require.True(t, ok)
	assert.Len(t, scatter.Chart.Series[0].Data, 3)

	_, ok = d.Panel("nope")
	assert.False(t, ok)
	assert.Len(t, d.Panels(), 12)
}

func TestBuildWithLimits(t *testing.T) {
	d := Build(fixture(), All(), WithLimits(Limits{TopBaseStats: 1}))
	top, _ := d.Panel(PanelTopBaseStats)
	assert.Len(t, top.Table.Rows, 1)

	fastest, _ := d.Panel(PanelFastest)
	assert.Len(t, fastest.Table.Rows, 3, "zero limit keeps the default")
}

func TestBuildPanel(t *testing.T) {
	p, err := BuildPanel(fixture(), Generation("7"), PanelFastest)
	require.NoError(t, err)
	assert.Equal(t, KindTable, p.Kind)
	assert.Equal(t, [][]string{{"Nihilego", "103"}}, p.Table.Rows)

	_, err = BuildPanel(fixture(), All(), "pie")
	assert.True(t, errors.Is(err, ErrUnknownPanel))

	assert.True(t, IsChart(PanelTypeDistribution))
	assert.False(t, IsChart(PanelFastest))
	assert.False(t, IsChart("pie"))
}
