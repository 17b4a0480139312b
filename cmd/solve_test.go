package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveCommandPrintsAFeasiblePlacement(t *testing.T) {
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := runSolve(solveCmd, nil)

	require.NoError(t, w.Close())
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, runErr)
	output := string(out)
	assert.Contains(t, output, "box 0:")
	assert.Contains(t, output, "box 1:")
}
