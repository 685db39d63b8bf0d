package dataset

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/pokedata/schema"
)

// ============================================================================
// FIXTURES
// ============================================================================

var creaturesCSV = []byte(`Name,Type 1,Type 2,HP,Attack,Defense,Sp. Attack,Sp. Defense,Speed,Base_Stats,Is_Legendary,Is_Mythical,Is_Ultra_Beast,gen,number_immune
Bulbasaur,Grass,Poison,45,49,49,65,65,45,318,0,0,0,1,0
Mewtwo,Psychic,,106,110,90,154,90,130,680,1,0,0,1,0
Mew,Psychic,,100,100,100,100,100,100,600,False,True,False,1,0
Nihilego,Rock,Poison,109,53,47,127,131,103,570,0.0,0.0,1.0,7,2
Missingno,,,,,,,,,,,,,7,
`)

// ============================================================================
// PARSING
// ============================================================================

func TestParseCreatures(t *testing.T) {
	creatures, err := Parse(bytes.NewReader(creaturesCSV))
	require.NoError(t, err)
	require.Len(t, creatures, 5)

	b := creatures[0]
	assert.Equal(t, "Bulbasaur", b.Name)
	assert.Equal(t, "Poison", b.Type2)
	assert.Equal(t, 318.0, b.BaseStats)
	assert.Equal(t, "1", b.Generation)
	assert.Equal(t, Other, b.Category())

	assert.Equal(t, "", creatures[1].Type2)
	assert.Equal(t, Legendary, creatures[1].Category())
	assert.Equal(t, Mythical, creatures[2].Category())
	assert.Equal(t, UltraBeast, creatures[3].Category())
	assert.Equal(t, 2.0, creatures[3].Immunities)

	m := creatures[4]
	assert.True(t, math.IsNaN(m.HP), "empty numeric cell is NaN")
	assert.True(t, math.IsNaN(m.Immunities))
	assert.False(t, m.IsLegendary, "empty flag is false")
	assert.Equal(t, "7", m.Generation)
}

func TestParseRejectsBadCell(t *testing.T) {
	bad := bytes.Replace(creaturesCSV, []byte("Mewtwo,Psychic,,106"), []byte("Mewtwo,Psychic,,lots"), 1)

	_, err := Parse(bytes.NewReader(bad))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "HP", pe.Column)
	assert.Equal(t, "lots", pe.Value)
}

func TestParseRejectsBadFlag(t *testing.T) {
	bad := bytes.Replace(creaturesCSV, []byte("680,1,0,0"), []byte("680,maybe,0,0"), 1)

	_, err := Parse(bytes.NewReader(bad))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Is_Legendary", pe.Column)
}

func TestParseMissingColumn(t *testing.T) {
	csv := []byte("Name,Type 1,HP\nBulbasaur,Grass,45\n")
	_, err := Parse(bytes.NewReader(csv))
	assert.True(t, errors.Is(err, schema.ErrMissingColumn))
}

func TestParseRaggedRowAndEmptyInput(t *testing.T) {
	ragged := append(append([]byte{}, creaturesCSV...), []byte("Extra,Fire\n")...)
	_, err := Parse(bytes.NewReader(ragged))
	assert.Error(t, err)

	_, err = Parse(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, creaturesCSV, 0o644))

	creatures, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, creatures, 5)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

// ============================================================================
// CATEGORY
// ============================================================================

func TestClassifyPrecedenceIsExhaustive(t *testing.T) {
	for _, l := range []bool{false, true} {
		for _, m := range []bool{false, true} {
			for _, u := range []bool{false, true} {
				got := Classify(l, m, u)
				want := Other
				switch {
				case l:
					want = Legendary
				case m:
					want = Mythical
				case u:
					want = UltraBeast
				}
				assert.Equal(t, want, got, "legendary=%v mythical=%v ultra=%v", l, m, u)
			}
		}
	}
}

func TestCategoryLabels(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	assert.Equal(t, "Ultra Beast", UltraBeast.String())

	_, err := ParseCategory("Shiny")
	assert.Error(t, err)
}

// ============================================================================
// VIEW
// ============================================================================

func TestViewExposesDimensionsAndMeasures(t *testing.T) {
	creatures, err := Parse(bytes.NewReader(creaturesCSV))
	require.NoError(t, err)
	view := View(creatures)

	require.Equal(t, 5, view.Len())
	assert.Equal(t, "Mewtwo", view.Dimension(1, schema.Name))
	assert.Equal(t, "Legendary", view.Dimension(1, CategoryKey))
	assert.Equal(t, 1.0, view.Measure(1, schema.IsLegendary))
	assert.Equal(t, 0.0, view.Measure(0, schema.IsLegendary))
	assert.Equal(t, 130.0, view.Measure(1, schema.Speed))

	others := InCategory(view, Other)
	require.Equal(t, 2, others.Len())
	assert.Equal(t, "Bulbasaur", others.Dimension(0, schema.Name))
}
