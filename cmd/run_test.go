package cmd

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/hypersolver/model_problems"
	"github.com/notargets/hypersolver/solver"
	"github.com/notargets/hypersolver/types"
)

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "problem.yaml")
	output := filepath.Join(dir, "trajectory.csv")
	require.NoError(t, os.WriteFile(input, []byte(exampleFile), 0644))

	rootCmd.SetArgs([]string{"run", "-I", input, "--output", output})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Header, initial state and 100 samples
	assert.Equal(t, 102, len(rows))
	assert.Equal(t, 101, len(rows[0]))
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "2", rows[101][0])
}

func TestProcessInput(t *testing.T) {
	_, err := processInput("")
	assert.Error(t, err)
	_, err = processInput(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	file := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(file, []byte(exampleFile), 0644))
	ip, err := processInput(file)
	require.NoError(t, err)
	assert.Equal(t, "Decaying Pulse", ip.Title)
	assert.Equal(t, 100, ip.Grid.Points)
}

func TestSettings(t *testing.T) {
	assert.Equal(t, 1., LimitCFL(1.5))
	assert.Equal(t, 0.5, LimitCFL(0.5))

	cfg := solver.DefaultConfig()
	require.NoError(t, Settings{Scheme: "lw", Stability: 0.5}.Apply(&cfg))
	assert.Equal(t, types.LaxWendroff, cfg.Scheme)
	assert.Equal(t, 0.5, cfg.StabilityFactor)
	err := Settings{Scheme: "euler"}.Apply(&cfg)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	err = Settings{Stability: -1}.Apply(&cfg)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestRun1D(t *testing.T) {
	output := filepath.Join(t.TempDir(), "growth.csv")
	m1d := &Model1D{ModelRun: model_problems.M_Growth, Points: 10, FinalTime: 1, Output: output, Plot: true}
	require.NoError(t, Run1D(m1d))
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}
