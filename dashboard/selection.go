package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spektr-org/pokedata/engine"
	"github.com/spektr-org/pokedata/schema"
)

// AllGenerations is the sentinel selection that disables the filter.
const AllGenerations = "all"

// ErrUnknownGeneration is returned for a selection absent from the data.
var ErrUnknownGeneration = errors.New("unknown generation")

// Selection is the generation filter: either all rows or one generation.
type Selection struct {
	Generation string // empty when All
	All        bool
}

// All returns the pass-through selection.
func All() Selection { return Selection{All: true} }

// Generation returns the selection for one concrete generation value.
// It is not checked against data; use ParseSelection for untrusted input.
func Generation(gen string) Selection { return Selection{Generation: gen} }

// String returns the value used in URLs and dropdown options.
func (s Selection) String() string {
	if s.All {
		return AllGenerations
	}
	return s.Generation
}

// MarshalText encodes the selection as its URL value.
func (s Selection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Label returns a human-readable description.
func (s Selection) Label() string {
	if s.All {
		return "all generations"
	}
	return "generation " + s.Generation
}

// ParseSelection validates raw against the generations present in view.
// Empty input and "all" (any case) select everything.
func ParseSelection(view engine.RecordView, raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, AllGenerations) {
		return All(), nil
	}
	for _, gen := range Generations(view) {
		if gen == raw {
			return Generation(gen), nil
		}
	}
	return Selection{}, fmt.Errorf("%w: %q", ErrUnknownGeneration, raw)
}

// Generations returns the distinct generation values of view, sorted
// numerically when all are numbers and lexically otherwise.
func Generations(view engine.RecordView) []string {
	gens := engine.UniqueValues(view, schema.Generation)
	engine.SortNatural(gens)
	return gens
}

// Options returns the dropdown choices: the sentinel followed by every
// generation.
func Options(view engine.RecordView) []string {
	return append([]string{AllGenerations}, Generations(view)...)
}

// Filter narrows view to the selected generation. The All selection returns
// view unchanged.
func Filter(view engine.RecordView, sel Selection) engine.RecordView {
	if sel.All {
		return view
	}
	return engine.ApplyFilters(view, engine.Equals(schema.Generation, sel.Generation))
}
