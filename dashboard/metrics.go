package dashboard

import (
	"github.com/spektr-org/pokedata/dataset"
	"github.com/spektr-org/pokedata/engine"
	"github.com/spektr-org/pokedata/schema"
)

// ============================================================================
// METRICS — One pure function per panel
// ============================================================================
// Each function reads only its input view. None depends on another's output.
// An empty view yields empty tables/series and NaN means, never an error.
// ============================================================================

// Palette shared by the category charts.
const (
	colorLegendary  = "#4A9CEE"
	colorNormal     = "#5A5A5A"
	colorMythical   = "#E6E69C"
	colorUltraBeast = "#29739C"
	colorOverall    = "#A3A3A3"
	colorReference  = "#FF6B6B"
	colorTrendLine  = "#5A5A5A"
	colorScatter    = "#29739C"
)

var creatureSchema = schema.Creatures()

func display(key string) string { return creatureSchema.DisplayName(key) }

// ============================================================================
// RANKING TABLES
// ============================================================================

// TopBaseStats lists the n creatures with the highest base stats.
func TopBaseStats(view engine.RecordView, n int) *engine.TableData {
	return rankTable("Highest Base Stats", view, schema.BaseStats, display(schema.BaseStats), n)
}

// MostImmune lists the n creatures with the most immunities.
func MostImmune(view engine.RecordView, n int) *engine.TableData {
	return rankTable("Most Immunities", view, schema.Immunities, display(schema.Immunities), n)
}

// Fastest lists the n fastest creatures.
func Fastest(view engine.RecordView, n int) *engine.TableData {
	return rankTable("Fastest", view, schema.Speed, display(schema.Speed), n)
}

// StrongestNormals lists the n highest-attack creatures that are neither
// legendary, mythical nor ultra beasts.
func StrongestNormals(view engine.RecordView, n int) *engine.TableData {
	normals := dataset.InCategory(view, dataset.Other)
	return rankTable("Strongest Normal Attackers", normals, schema.Attack, display(schema.Attack), n)
}

func rankTable(title string, view engine.RecordView, measure, header string, n int) *engine.TableData {
	top := engine.TopN(view, measure, n)
	return engine.BuildListTable(title, top, schema.Name, display(schema.Name), measure, header)
}

// ============================================================================
// SUMMARY TABLES
// ============================================================================

// AttributeMeans lists the mean of each battle attribute, rounded to 2
// decimals.
func AttributeMeans(view engine.RecordView) *engine.TableData {
	means := attributeMeans(view)
	groups := make([]engine.Group, len(schema.BattleAttributes))
	for i, attr := range schema.BattleAttributes {
		groups[i] = engine.Group{
			Key:   attr,
			Label: display(attr),
			Value: engine.RoundTo2(means[i]),
			Count: view.Len(),
		}
	}
	return engine.BuildGroupTable("Attribute Means", groups, "Attribute", "Mean")
}

func attributeMeans(view engine.RecordView) []float64 {
	means := make([]float64, len(schema.BattleAttributes))
	for i, attr := range schema.BattleAttributes {
		means[i] = engine.AvgMeasure(view, attr)
	}
	return means
}

// CountByGeneration counts rows per generation, generation ascending.
func CountByGeneration(view engine.RecordView) *engine.TableData {
	groups := engine.GroupAndAggregate(view, schema.Generation, "", engine.AggCount, engine.SortNaturalAsc, 0)
	return engine.BuildGroupTable("Creatures per Generation", groups, display(schema.Generation), "Count")
}

// ============================================================================
// CHARTS
// ============================================================================

// AttributeCorrelation is the Pearson correlation heatmap of the six
// battle attributes.
func AttributeCorrelation(view engine.RecordView) *engine.ChartConfig {
	labels := make([]string, len(schema.BattleAttributes))
	for i, attr := range schema.BattleAttributes {
		labels[i] = display(attr)
	}
	matrix := engine.Correlation(view, schema.BattleAttributes)
	return engine.BuildHeatmap("Battle Attribute Correlation", labels, matrix, -1, 1, "RdBu_r")
}

// CategoryDistribution counts creatures per category, most common first.
func CategoryDistribution(view engine.RecordView) *engine.ChartConfig {
	groups := engine.ValueCounts(view, dataset.CategoryKey)
	return engine.BuildBarChart("Creatures by Category", "Category", "Count", groups, engine.WithBarColors())
}

// TypeDistribution counts type occurrences across both type columns. A
// creature with two types counts once for each; an empty type adds nothing.
func TypeDistribution(view engine.RecordView) *engine.ChartConfig {
	groups := engine.ValueCounts(view, schema.Type1, schema.Type2)
	return engine.BuildBarChart("Type Distribution (Type 1 + Type 2)", "Type", "Count", groups,
		engine.WithBarColors(), engine.WithValueLabels())
}

// comparisonGroup is one bar series of CategoryComparison.
type comparisonGroup struct {
	name  string
	color string
	rows  func(engine.RecordView) engine.RecordView
}

var comparisonGroups = []comparisonGroup{
	{"Legendary", colorLegendary, flagged(schema.IsLegendary, true)},
	{"Normal", colorNormal, flagged(schema.IsLegendary, false)},
	{"Mythical", colorMythical, flagged(schema.IsMythical, true)},
	{"Ultra Beast", colorUltraBeast, flagged(schema.IsUltraBeast, true)},
	{"Overall", colorOverall, func(v engine.RecordView) engine.RecordView { return v }},
}

func flagged(measure string, set bool) func(engine.RecordView) engine.RecordView {
	return func(view engine.RecordView) engine.RecordView {
		return engine.Where(view, func(v engine.RecordView, i int) bool {
			return (v.Measure(i, measure) == 1) == set
		})
	}
}

// CategoryComparison compares per-attribute means across rarity groups.
// "Normal" is every non-legendary creature. A group with no rows reads 0.
// The reference line sits at the mean of the six overall attribute means.
func CategoryComparison(view engine.RecordView) *engine.ChartConfig {
	series := make([]engine.ChartSeries, 0, len(comparisonGroups))
	for _, g := range comparisonGroups {
		means := attributeMeans(g.rows(view))
		points := make([]engine.ChartPoint, len(schema.BattleAttributes))
		for i, attr := range schema.BattleAttributes {
			v := means[i]
			if !engine.Number(v).Valid() {
				v = 0
			}
			points[i] = engine.ChartPoint{Label: display(attr), Value: engine.Number(v)}
		}
		series = append(series, engine.ChartSeries{Name: g.name, Data: points, Color: g.color})
	}

	ref := engine.ReferenceLine{
		Label:  "Overall Mean",
		Value:  engine.Number(engine.MeanOf(attributeMeans(view))),
		Color:  colorReference,
		Dashed: true,
	}
	return engine.BuildGroupedBarChart("Mean Attributes by Category", "Attribute", "Mean Value", series, ref)
}

// BaseStatsByGeneration is the mean base stats per generation, rounded to
// whole numbers, as a markers+lines chart.
func BaseStatsByGeneration(view engine.RecordView) *engine.ChartConfig {
	groups := engine.GroupAndAggregate(view, schema.Generation, schema.BaseStats, engine.AggAvg, engine.SortNaturalAsc, 0)
	for i := range groups {
		groups[i].Value = engine.RoundTo(groups[i].Value, 0)
	}
	return engine.BuildLineChart("Mean Base Stats by Generation", display(schema.Generation), "Mean Base Stats", groups, colorTrendLine)
}

// SpeedVsBaseStats scatters speed against base stats, one point per row.
func SpeedVsBaseStats(view engine.RecordView) *engine.ChartConfig {
	return engine.BuildScatterChart("Speed vs Base Stats", display(schema.Speed), display(schema.BaseStats),
		view, schema.Speed, schema.BaseStats, schema.Name, colorScatter)
}
