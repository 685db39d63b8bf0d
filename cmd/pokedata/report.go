package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/render"
)

func newReportCmd(a *app) *cobra.Command {
	var gen, format, out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard for one generation selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := render.ParseReportFormat(format)
			if err != nil {
				return err
			}
			view, err := a.load()
			if err != nil {
				return err
			}
			sel, err := dashboard.ParseSelection(view, gen)
			if err != nil {
				return err
			}

			d := dashboard.Build(view, sel, a.limits())
			return writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return render.Report(w, d, rf)
			})
		},
	}

	cmd.Flags().StringVar(&gen, "gen", dashboard.AllGenerations, "Generation to show, or \"all\"")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.ReportText), "Output format: text, json, yaml, csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	return cmd
}

// writeOutput runs write against path, or against stdout when path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
