package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/engine"
)

const pageName = "index"

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type pageData struct {
	Title       string
	Description string
	Summary     string
	GridColumns template.CSS
	Options     []pageOption
	Columns     []pageColumn
}

type pageOption struct {
	Value    string
	Selected bool
}

type pageColumn struct {
	Title  string
	Panels []pagePanel
}

type pagePanel struct {
	Heading  string
	Table    *engine.TableData
	ChartURL string
}

func newPageData(d *dashboard.Dashboard) pageData {
	data := pageData{
		Title:       d.Title,
		Description: d.Description,
		Summary:     d.Summary,
	}

	current := d.Selection.String()
	for _, opt := range d.Options {
		data.Options = append(data.Options, pageOption{Value: opt, Selected: opt == current})
	}

	widths := make([]string, 0, len(d.Columns))
	for _, col := range d.Columns {
		widths = append(widths, fmt.Sprintf("%gfr", col.Width))
		pc := pageColumn{Title: col.Title}
		for _, p := range col.Panels {
			pp := pagePanel{Heading: p.Heading, Table: p.Table}
			if p.Chart != nil {
				pp.ChartURL = chartURL(p.ID, d.Selection)
			}
			pc.Panels = append(pc.Panels, pp)
		}
		data.Columns = append(data.Columns, pc)
	}
	data.GridColumns = template.CSS(strings.Join(widths, " "))
	return data
}

func chartURL(id string, sel dashboard.Selection) string {
	u := "/charts/" + url.PathEscape(id) + ".svg"
	if !sel.All {
		u += "?gen=" + url.QueryEscape(sel.String())
	}
	return u
}
