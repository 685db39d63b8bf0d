package dashboard

import (
	"fmt"

	"github.com/spektr-org/pokedata/engine"
)

// Summary describes how much of the table the selection covers, e.g.
// "Showing 151 of 1,025 creatures (generation 1)."
func Summary(full, filtered engine.RecordView, sel Selection) string {
	noun := "creatures"
	if full.Len() == 1 {
		noun = "creature"
	}
	return fmt.Sprintf("Showing %s of %s %s (%s).",
		engine.FormatInt(filtered.Len()), engine.FormatInt(full.Len()), noun, sel.Label())
}
