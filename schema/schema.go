package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Describes the shape of the creature dataset
// ============================================================================
// The loader resolves CSV headers against this schema before reading rows.
// Builders use the display names for table headers and chart axes.
// ============================================================================

// Column kinds.
const (
	KindText   = "text"
	KindNumber = "number"
	KindBool   = "bool"
)

// Dimension keys.
const (
	Name       = "name"
	Type1      = "type_1"
	Type2      = "type_2"
	Generation = "gen"
)

// Measure keys.
const (
	HP           = "hp"
	Attack       = "attack"
	Defense      = "defense"
	SpAttack     = "sp_attack"
	SpDefense    = "sp_defense"
	Speed        = "speed"
	BaseStats    = "base_stats"
	IsLegendary  = "is_legendary"
	IsMythical   = "is_mythical"
	IsUltraBeast = "is_ultra_beast"
	Immunities   = "number_immune"
)

// ErrMissingColumn is returned when a required CSV header is absent.
var ErrMissingColumn = errors.New("missing required column")

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string `json:"key"`
	Header      string `json:"header"`
	DisplayName string `json:"displayName"`
	Nullable    bool   `json:"nullable,omitempty"`
	Filterable  bool   `json:"filterable,omitempty"`
}

// MeasureMeta describes a numeric field. Bool measures read as 0/1.
type MeasureMeta struct {
	Key         string `json:"key"`
	Header      string `json:"header"`
	DisplayName string `json:"displayName"`
	Kind        string `json:"kind"` // "number", "bool"
}

// BattleAttributes are the six per-creature battle stats, in display order.
var BattleAttributes = []string{HP, Attack, Defense, SpAttack, SpDefense, Speed}

// Creatures returns the built-in schema for the creature statistics CSV.
func Creatures() Config {
	return Config{
		Name:        "creatures",
		Description: "Creature battle statistics, one row per creature",
		Dimensions: []DimensionMeta{
			{Key: Name, Header: "Name", DisplayName: "Name"},
			{Key: Type1, Header: "Type 1", DisplayName: "Type 1", Nullable: true},
			{Key: Type2, Header: "Type 2", DisplayName: "Type 2", Nullable: true},
			{Key: Generation, Header: "gen", DisplayName: "Generation", Filterable: true},
		},
		Measures: []MeasureMeta{
			{Key: HP, Header: "HP", DisplayName: "HP", Kind: KindNumber},
			{Key: Attack, Header: "Attack", DisplayName: "Attack", Kind: KindNumber},
			{Key: Defense, Header: "Defense", DisplayName: "Defense", Kind: KindNumber},
			{Key: SpAttack, Header: "Sp. Attack", DisplayName: "Sp. Attack", Kind: KindNumber},
			{Key: SpDefense, Header: "Sp. Defense", DisplayName: "Sp. Defense", Kind: KindNumber},
			{Key: Speed, Header: "Speed", DisplayName: "Speed", Kind: KindNumber},
			{Key: BaseStats, Header: "Base_Stats", DisplayName: "Base Stats", Kind: KindNumber},
			{Key: IsLegendary, Header: "Is_Legendary", DisplayName: "Legendary", Kind: KindBool},
			{Key: IsMythical, Header: "Is_Mythical", DisplayName: "Mythical", Kind: KindBool},
			{Key: IsUltraBeast, Header: "Is_Ultra_Beast", DisplayName: "Ultra Beast", Kind: KindBool},
			{Key: Immunities, Header: "number_immune", DisplayName: "Immunities", Kind: KindNumber},
		},
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// DisplayName returns the display name for a dimension or measure key,
// or the key itself when unknown.
func (c Config) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return key
}

// ============================================================================
// HEADER RESOLUTION
// ============================================================================

// Index maps schema keys to CSV column positions.
type Index map[string]int

// Resolve matches CSV headers against the schema. Headers are compared after
// trimming whitespace and a leading UTF-8 BOM. Extra headers are ignored.
// Every schema column is required.
func (c Config) Resolve(headers []string) (Index, error) {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	idx := make(Index, len(c.Dimensions)+len(c.Measures))
	var missing []string
	lookup := func(key, header string) {
		pos, ok := positions[header]
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", header))
			return
		}
		idx[key] = pos
	}

	for _, d := range c.Dimensions {
		lookup(d.Key, d.Header)
	}
	for _, m := range c.Measures {
		lookup(m.Key, m.Header)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}
