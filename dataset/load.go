package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spektr-org/pokedata/schema"
)

// ============================================================================
// CSV LOADER — Parses the creature CSV into []Creature
// ============================================================================
// Any malformed row fails the whole load. Empty numeric cells read as NaN,
// empty flags as false.
// ============================================================================

// DefaultPath is the CSV location used when nothing else is configured.
const DefaultPath = "pokemon_data.csv"

// ParseError reports a cell that could not be converted.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the CSV file at path.
func Load(path string) ([]Creature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	creatures, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return creatures, nil
}

// Parse reads creature rows from r. The first record must be the header.
func Parse(r io.Reader) ([]Creature, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to read CSV headers: empty input")
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	sch := schema.Creatures()
	idx, err := sch.Resolve(headers)
	if err != nil {
		return nil, err
	}
	// Headers may carry extra columns; every row must match the header width.
	reader.FieldsPerRecord = len(headers)

	var creatures []Creature
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		c, err := decodeRow(reader, sch, idx, row)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, c)
	}

	return creatures, nil
}

// ============================================================================
// ROW DECODING
// ============================================================================

type rowDecoder struct {
	reader *csv.Reader
	sch    schema.Config
	idx    schema.Index
	row    []string
	err    error
}

func decodeRow(reader *csv.Reader, sch schema.Config, idx schema.Index, row []string) (Creature, error) {
	d := &rowDecoder{reader: reader, sch: sch, idx: idx, row: row}

	c := Creature{
		Name:         d.text(schema.Name),
		Type1:        d.text(schema.Type1),
		Type2:        d.text(schema.Type2),
		HP:           d.number(schema.HP),
		Attack:       d.number(schema.Attack),
		Defense:      d.number(schema.Defense),
		SpAttack:     d.number(schema.SpAttack),
		SpDefense:    d.number(schema.SpDefense),
		Speed:        d.number(schema.Speed),
		BaseStats:    d.number(schema.BaseStats),
		IsLegendary:  d.flag(schema.IsLegendary),
		IsMythical:   d.flag(schema.IsMythical),
		IsUltraBeast: d.flag(schema.IsUltraBeast),
		Generation:   d.text(schema.Generation),
		Immunities:   d.number(schema.Immunities),
	}
	if d.err != nil {
		return Creature{}, d.err
	}
	return c, nil
}

func (d *rowDecoder) cell(key string) string {
	return strings.TrimSpace(d.row[d.idx[key]])
}

func (d *rowDecoder) text(key string) string {
	return d.cell(key)
}

func (d *rowDecoder) number(key string) float64 {
	raw := d.cell(key)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.fail(key, raw, err)
		return math.NaN()
	}
	return f
}

func (d *rowDecoder) flag(key string) bool {
	raw := d.cell(key)
	if raw == "" {
		return false
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	// Exported sheets often write flags as 1.0 / 0.0
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.fail(key, raw, errors.New("not a boolean"))
		return false
	}
	return f == 1
}

func (d *rowDecoder) fail(key, raw string, err error) {
	if d.err != nil {
		return
	}
	line, _ := d.reader.FieldPos(d.idx[key])
	d.err = &ParseError{
		Line:   line,
		Column: d.header(key),
		Value:  raw,
		Err:    err,
	}
}

func (d *rowDecoder) header(key string) string {
	for _, m := range d.sch.Measures {
		if m.Key == key {
			return m.Header
		}
	}
	for _, dim := range d.sch.Dimensions {
		if dim.Key == key {
			return dim.Header
		}
	}
	return key
}
