package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/pokedata/render"
)

var cliCSV = []byte(`Name,Type 1,Type 2,HP,Attack,Defense,Sp. Attack,Sp. Defense,Speed,Base_Stats,Is_Legendary,Is_Mythical,Is_Ultra_Beast,gen,number_immune
Articuno,Ice,Flying,90,85,100,95,125,85,580,1,0,0,1,1
Pikachu,Electric,,35,55,40,50,50,90,320,0,0,0,1,0
Nihilego,Rock,Poison,109,53,47,127,131,103,570,0,0,1,7,2
`)

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemon_data.csv")
	require.NoError(t, os.WriteFile(path, cliCSV, 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--log-level", "disabled"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pokedata dev\n", out)
}

func TestGenerations(t *testing.T) {
	out, err := run(t, "generations", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t, "all\n1\n7\n", out)
}

func TestReport(t *testing.T) {
	data := writeDataset(t)

	out, err := run(t, "report", "--data", data, "--gen", "1", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Highest Base Stats\nName,Base Stats\nArticuno,580\nPikachu,320\n")

	path := filepath.Join(t.TempDir(), "report.json")
	out, err = run(t, "report", "--data", data, "-f", "json", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"summary": "Showing 3 of 3 creatures (all generations)."`)
}

func TestReportErrors(t *testing.T) {
	data := writeDataset(t)

	_, err := run(t, "report", "--data", data, "--gen", "3")
	assert.ErrorContains(t, err, "unknown generation")

	_, err = run(t, "report", "--data", data, "--format", "xml")
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)

	_, err = run(t, "report", "--data", filepath.Join(t.TempDir(), "none.csv"))
	assert.ErrorContains(t, err, "open dataset")
}

func TestChart(t *testing.T) {
	data := writeDataset(t)
	path := filepath.Join(t.TempDir(), "types.svg")

	_, err := run(t, "chart", "type_distribution", "--data", data, "--format", "svg", "--out", path)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(written), "<svg"))

	_, err = run(t, "chart", "fastest", "--data", data, "--out", path)
	assert.ErrorIs(t, err, render.ErrNotAChart)

	_, err = run(t, "chart", "type_distribution", "--data", data)
	assert.ErrorContains(t, err, "--out is required")
}

func TestChartIDs(t *testing.T) {
	ids := chartIDs()
	assert.Len(t, ids, 6)
	assert.Contains(t, ids, "category_comparison")
	assert.NotContains(t, ids, "fastest")
}
