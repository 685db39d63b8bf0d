package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/render"
)

func newChartCmd(a *app) *cobra.Command {
	var gen, format, out string

	cmd := &cobra.Command{
		Use:   "chart ID",
		Short: "Render one chart panel to PNG or SVG",
		Long:  fmt.Sprintf("Render one chart panel. Panel ids: %v", chartIDs()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				return errors.New("--out is required")
			}
			view, err := a.load()
			if err != nil {
				return err
			}
			sel, err := dashboard.ParseSelection(view, gen)
			if err != nil {
				return err
			}
			p, err := dashboard.BuildPanel(view, sel, args[0], a.limits())
			if err != nil {
				return err
			}
			if p.Chart == nil {
				return fmt.Errorf("%s: %w", p.ID, render.ErrNotAChart)
			}

			size := render.Size{Width: a.cfg.Charts.Width, Height: a.cfg.Charts.Height}
			err = writeOutput(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return render.Panel(w, p, f, size)
			})
			if err != nil {
				return err
			}
			a.logger.Info().Str("panel", p.ID).Str("format", string(f)).Str("out", out).Msg("chart written")
			return nil
		},
	}

	cmd.Flags().StringVar(&gen, "gen", dashboard.AllGenerations, "Generation to show, or \"all\"")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.PNG), "Image format: png or svg")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func chartIDs() []string {
	var ids []string
	for _, id := range dashboard.PanelIDs() {
		if dashboard.IsChart(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
