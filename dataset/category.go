package dataset

import (
	"fmt"
	"strings"

	"github.com/spektr-org/pokedata/engine"
)

// Category is the single label a creature carries after collapsing its
// three rarity flags. Precedence: Legendary > Mythical > UltraBeast > Other.
type Category int

const (
	Other Category = iota
	Legendary
	Mythical
	UltraBeast
)

// Categories lists every category in precedence order.
var Categories = []Category{Legendary, Mythical, UltraBeast, Other}

// Classify collapses the rarity flags into one Category.
func Classify(legendary, mythical, ultraBeast bool) Category {
	switch {
	case legendary:
		return Legendary
	case mythical:
		return Mythical
	case ultraBeast:
		return UltraBeast
	default:
		return Other
	}
}

// String returns the display label.
func (c Category) String() string {
	switch c {
	case Legendary:
		return "Legendary"
	case Mythical:
		return "Mythical"
	case UltraBeast:
		return "Ultra Beast"
	case Other:
		return "Other"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory returns the category whose label matches s, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, cat := range Categories {
		if strings.EqualFold(cat.String(), strings.TrimSpace(s)) {
			return cat, nil
		}
	}
	return Other, fmt.Errorf("unknown category %q", s)
}

// InCategory returns the rows of view whose category is c.
func InCategory(view engine.RecordView, c Category) engine.RecordView {
	return engine.ApplyFilters(view, engine.Equals(CategoryKey, c.String()))
}
