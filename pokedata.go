// Package pokedata is an interactive creature-statistics dashboard.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/pokedata/dashboard"
//	    "github.com/spektr-org/pokedata/dataset"
//	)
//
//	creatures, err := dataset.Load("pokemon_data.csv")
//	view := dataset.View(creatures)
//	sel, err := dashboard.ParseSelection(view, "1")
//	board := dashboard.Build(view, sel)
//
// The dataset is loaded once and never mutated. Each selection builds fresh
// views over it and returns render-ready tables and chart configs. The
// server package serves them over HTTP. The render package turns them into
// PNG/SVG images, terminal tables, JSON, YAML or CSV.
package pokedata
