// Package dashboard computes the creature-stats panels for one generation
// selection and arranges them in three columns.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/spektr-org/pokedata/engine"
)

// ErrUnknownPanel is returned when a panel id is not registered.
var ErrUnknownPanel = errors.New("unknown panel")

// Panel kinds.
const (
	KindTable = "table"
	KindChart = "chart"
)

// Stable panel ids used in URLs and CLI arguments.
const (
	PanelTopBaseStats          = "top_base_stats"
	PanelAttributeMeans        = "attribute_means"
	PanelMostImmune            = "most_immune"
	PanelCountByGeneration     = "count_by_generation"
	PanelAttributeCorrelation  = "attribute_correlation"
	PanelCategoryDistribution  = "category_distribution"
	PanelTypeDistribution      = "type_distribution"
	PanelFastest               = "fastest"
	PanelCategoryComparison    = "category_comparison"
	PanelBaseStatsByGeneration = "base_stats_by_generation"
	PanelSpeedVsBaseStats      = "speed_vs_base_stats"
	PanelStrongestNormals      = "strongest_normals"
)

const (
	dashboardTitle       = "PokéData"
	dashboardDescription = "An interactive dashboard for fans who want to dig into the data. " +
		"Follow categories, attributes and trivia through clear, informative charts."
)

// ============================================================================
// TYPES
// ============================================================================

// Dashboard is the fully computed page for one selection.
type Dashboard struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Selection   Selection `json:"selection" yaml:"selection"`
	Options     []string  `json:"options" yaml:"options"`
	Summary     string    `json:"summary" yaml:"summary"`
	Columns     []Column  `json:"columns" yaml:"columns"`
}

// Column is one vertical stack of panels. Width is relative to the others.
type Column struct {
	Title  string  `json:"title" yaml:"title"`
	Width  float64 `json:"width" yaml:"width"`
	Panels []Panel `json:"panels" yaml:"panels"`
}

// Panel is one table or chart. Exactly one of Table and Chart is set.
type Panel struct {
	ID      string              `json:"id" yaml:"id"`
	Kind    string              `json:"kind" yaml:"kind"`
	Heading string              `json:"heading" yaml:"heading"`
	Table   *engine.TableData   `json:"table,omitempty" yaml:"table,omitempty"`
	Chart   *engine.ChartConfig `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// Panel returns the panel with the given id.
func (d *Dashboard) Panel(id string) (*Panel, bool) {
	for c := range d.Columns {
		for p := range d.Columns[c].Panels {
			if d.Columns[c].Panels[p].ID == id {
				return &d.Columns[c].Panels[p], true
			}
		}
	}
	return nil, false
}

// Panels returns every panel in column order.
func (d *Dashboard) Panels() []Panel {
	var out []Panel
	for _, c := range d.Columns {
		out = append(out, c.Panels...)
	}
	return out
}

// ============================================================================
// PANEL REGISTRY
// ============================================================================

// scope selects the table a panel reads.
type scope int

const (
	scopeFiltered scope = iota
	scopeFull           // ignores the selection
)

type panelDef struct {
	id      string
	heading string
	scope   scope
	table   func(engine.RecordView, *config) *engine.TableData
	chart   func(engine.RecordView) *engine.ChartConfig
}

type columnDef struct {
	title  string
	width  float64
	panels []panelDef
}

var layout = []columnDef{
	{
		title: "Top Creatures",
		width: 1.2,
		panels: []panelDef{
			{id: PanelTopBaseStats, heading: "Highest Base Stats", table: func(v engine.RecordView, c *config) *engine.TableData {
				return TopBaseStats(v, c.TopBaseStats)
			}},
			{id: PanelAttributeMeans, heading: "Attribute Means", table: func(v engine.RecordView, _ *config) *engine.TableData {
				return AttributeMeans(v)
			}},
			{id: PanelMostImmune, heading: "Most Immune", table: func(v engine.RecordView, c *config) *engine.TableData {
				return MostImmune(v, c.TopImmune)
			}},
			{id: PanelCountByGeneration, heading: "Count per Generation", scope: scopeFull, table: func(v engine.RecordView, _ *config) *engine.TableData {
				return CountByGeneration(v)
			}},
		},
	},
	{
		title: "Visual Analysis",
		width: 2,
		panels: []panelDef{
			{id: PanelAttributeCorrelation, heading: "Attribute Correlation", chart: AttributeCorrelation},
			{id: PanelCategoryDistribution, heading: "Category Distribution", chart: CategoryDistribution},
			{id: PanelTypeDistribution, heading: "Type Distribution", chart: TypeDistribution},
			{id: PanelFastest, heading: "Top 5 Fastest", table: func(v engine.RecordView, c *config) *engine.TableData {
				return Fastest(v, c.TopFastest)
			}},
		},
	},
	{
		title: "Comparisons & Trends",
		width: 2,
		panels: []panelDef{
			{id: PanelCategoryComparison, heading: "Category Comparison", chart: CategoryComparison},
			{id: PanelBaseStatsByGeneration, heading: "Base Stats by Generation", scope: scopeFull, chart: BaseStatsByGeneration},
			{id: PanelSpeedVsBaseStats, heading: "Speed vs Base Stats", scope: scopeFull, chart: SpeedVsBaseStats},
			{id: PanelStrongestNormals, heading: "Normals with the Most Attack", table: func(v engine.RecordView, c *config) *engine.TableData {
				return StrongestNormals(v, c.TopNormalAttack)
			}},
		},
	},
}

// PanelIDs returns every registered panel id in layout order.
func PanelIDs() []string {
	var ids []string
	for _, col := range layout {
		for _, p := range col.panels {
			ids = append(ids, p.id)
		}
	}
	return ids
}

// IsChart reports whether id names a chart panel.
func IsChart(id string) bool {
	def, ok := lookup(id)
	return ok && def.chart != nil
}

func lookup(id string) (panelDef, bool) {
	for _, col := range layout {
		for _, p := range col.panels {
			if p.id == id {
				return p, true
			}
		}
	}
	return panelDef{}, false
}

func (p panelDef) build(full, filtered engine.RecordView, cfg *config) Panel {
	view := filtered
	if p.scope == scopeFull {
		view = full
	}
	out := Panel{ID: p.id, Heading: p.heading}
	if p.chart != nil {
		out.Kind = KindChart
		out.Chart = p.chart(view)
	} else {
		out.Kind = KindTable
		out.Table = p.table(view, cfg)
	}
	return out
}

// ============================================================================
// BUILD
// ============================================================================

// Build computes every panel for sel. full is the whole table; panels that
// ignore the selection read it directly.
func Build(full engine.RecordView, sel Selection, opts ...Option) *Dashboard {
	cfg := applyOptions(opts)
	filtered := Filter(full, sel)

	d := &Dashboard{
		Title:       dashboardTitle,
		Description: dashboardDescription,
		Selection:   sel,
		Options:     Options(full),
		Summary:     Summary(full, filtered, sel),
		Columns:     make([]Column, 0, len(layout)),
	}
	for _, col := range layout {
		c := Column{Title: col.title, Width: col.width, Panels: make([]Panel, 0, len(col.panels))}
		for _, p := range col.panels {
			c.Panels = append(c.Panels, p.build(full, filtered, cfg))
		}
		d.Columns = append(d.Columns, c)
	}
	return d
}

// BuildPanel computes a single panel without building the rest.
func BuildPanel(full engine.RecordView, sel Selection, id string, opts ...Option) (*Panel, error) {
	def, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	p := def.build(full, Filter(full, sel), applyOptions(opts))
	return &p, nil
}
