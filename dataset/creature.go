// Package dataset holds the creature row type, its CSV loader and the
// adapter that exposes rows to the engine as a RecordView.
package dataset

import (
	"github.com/spektr-org/pokedata/engine"
	"github.com/spektr-org/pokedata/schema"
)

// ============================================================================
// CREATURE — One row of the dataset
// ============================================================================

// Creature is one creature record. Missing numeric cells hold NaN.
type Creature struct {
	Name         string  `json:"name"`
	Type1        string  `json:"type1,omitempty"`
	Type2        string  `json:"type2,omitempty"`
	HP           float64 `json:"hp"`
	Attack       float64 `json:"attack"`
	Defense      float64 `json:"defense"`
	SpAttack     float64 `json:"spAttack"`
	SpDefense    float64 `json:"spDefense"`
	Speed        float64 `json:"speed"`
	BaseStats    float64 `json:"baseStats"`
	IsLegendary  bool    `json:"isLegendary"`
	IsMythical   bool    `json:"isMythical"`
	IsUltraBeast bool    `json:"isUltraBeast"`
	Generation   string  `json:"generation"`
	Immunities   float64 `json:"immunities"`
}

// Category returns the creature's mutually exclusive category.
func (c Creature) Category() Category {
	return Classify(c.IsLegendary, c.IsMythical, c.IsUltraBeast)
}

// ============================================================================
// VIEW ADAPTER
// ============================================================================

// CategoryKey is the derived dimension that carries Creature.Category.
const CategoryKey = "category"

var adapter = engine.NewDomainAdapter[Creature]().
	Dimension(schema.Name, func(c Creature) string { return c.Name }).
	Dimension(schema.Type1, func(c Creature) string { return c.Type1 }).
	Dimension(schema.Type2, func(c Creature) string { return c.Type2 }).
	Dimension(schema.Generation, func(c Creature) string { return c.Generation }).
	Dimension(CategoryKey, func(c Creature) string { return c.Category().String() }).
	Measure(schema.HP, func(c Creature) float64 { return c.HP }).
	Measure(schema.Attack, func(c Creature) float64 { return c.Attack }).
	Measure(schema.Defense, func(c Creature) float64 { return c.Defense }).
	Measure(schema.SpAttack, func(c Creature) float64 { return c.SpAttack }).
	Measure(schema.SpDefense, func(c Creature) float64 { return c.SpDefense }).
	Measure(schema.Speed, func(c Creature) float64 { return c.Speed }).
	Measure(schema.BaseStats, func(c Creature) float64 { return c.BaseStats }).
	Measure(schema.IsLegendary, func(c Creature) float64 { return boolMeasure(c.IsLegendary) }).
	Measure(schema.IsMythical, func(c Creature) float64 { return boolMeasure(c.IsMythical) }).
	Measure(schema.IsUltraBeast, func(c Creature) float64 { return boolMeasure(c.IsUltraBeast) }).
	Measure(schema.Immunities, func(c Creature) float64 { return c.Immunities })

// View exposes creatures as a zero-copy RecordView. The slice must not be
// mutated while the view is in use.
func View(creatures []Creature) engine.RecordView {
	return adapter.Bind(creatures)
}

func boolMeasure(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
