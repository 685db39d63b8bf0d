package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/engine"
)

// ============================================================================
// REPORTS — Whole-dashboard output for the CLI
// ============================================================================

// ReportFormat is an encoding of a full dashboard.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
	ReportYAML ReportFormat = "yaml"
	ReportCSV  ReportFormat = "csv"
)

// ParseReportFormat accepts text, json, yaml (or yml) and csv.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return ReportText, nil
	case "json":
		return ReportJSON, nil
	case "yaml", "yml":
		return ReportYAML, nil
	case "csv":
		return ReportCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Report writes d in the given format.
func Report(w io.Writer, d *dashboard.Dashboard, format ReportFormat) error {
	switch format {
	case ReportText:
		return WriteText(w, d)
	case ReportJSON:
		return WriteJSON(w, d)
	case ReportYAML:
		return WriteYAML(w, d)
	case ReportCSV:
		return WriteCSV(w, d)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// WriteJSON writes v as indented JSON. NaN numbers encode as null.
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// WriteYAML writes v as YAML. NaN numbers encode as .nan.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return enc.Close()
}

// ============================================================================
// CSV OUTPUT — One titled block per panel
// ============================================================================

// WriteCSV writes every panel as a block: a heading row, the column header
// row, the data rows, then an empty separator row.
func WriteCSV(w io.Writer, d *dashboard.Dashboard) error {
	cw := csv.NewWriter(w)
	for _, p := range d.Panels() {
		headers, rows := panelRows(&p)
		if err := cw.Write([]string{p.Heading}); err != nil {
			return err
		}
		if err := cw.Write(headers); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		if err := cw.Write(nil); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// panelRows flattens a panel into a header row and data rows.
func panelRows(p *dashboard.Panel) ([]string, [][]string) {
	if p.Table != nil {
		return p.Table.Headers(), p.Table.Rows
	}
	return chartRows(p.Chart)
}

func chartRows(cfg *engine.ChartConfig) ([]string, [][]string) {
	if cfg == nil {
		return nil, nil
	}

	switch cfg.ChartType {
	case engine.ChartHeatmap:
		hm := cfg.Heatmap
		if hm == nil {
			return nil, nil
		}
		headers := append([]string{""}, hm.Labels...)
		rows := make([][]string, len(hm.Values))
		for i, values := range hm.Values {
			row := []string{hm.Labels[i]}
			for _, v := range values {
				row = append(row, fmtNum(v))
			}
			rows[i] = row
		}
		return headers, rows

	case engine.ChartScatter:
		headers := []string{"Label", labelOr(cfg.XAxis, "X"), labelOr(cfg.YAxis, "Value")}
		var rows [][]string
		for _, s := range cfg.Series {
			for _, p := range s.Data {
				rows = append(rows, []string{p.Label, fmtNum(p.X), fmtNum(p.Value)})
			}
		}
		return headers, rows
	}

	if len(cfg.Series) == 0 {
		return nil, nil
	}
	xLabel := labelOr(cfg.XAxis, "Label")

	// Single series → two columns
	if len(cfg.Series) == 1 {
		headers := []string{xLabel, labelOr(cfg.YAxis, "Value")}
		rows := make([][]string, 0, len(cfg.Series[0].Data))
		for _, d := range cfg.Series[0].Data {
			rows = append(rows, []string{d.Label, fmtNum(d.Value)})
		}
		return headers, rows
	}

	// Multi-series → label + one column per series
	headers := []string{xLabel}
	for _, s := range cfg.Series {
		headers = append(headers, s.Name)
	}
	rows := make([][]string, 0, len(cfg.Series[0].Data))
	for i, d := range cfg.Series[0].Data {
		row := []string{d.Label}
		for _, s := range cfg.Series {
			if i < len(s.Data) {
				row = append(row, fmtNum(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// fmtNum prints whole numbers without decimals and others with two.
func fmtNum(v engine.Number) string {
	return engine.FormatNumber(v.Float(), 2)
}
