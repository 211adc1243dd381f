package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_FileIndexPipeline(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Hello, hello! Worlds world."), 0o600))

	queries := filepath.Join(dir, "queries.txt")
	require.NoError(t, os.WriteFile(queries, []byte("worlds\n"), 0o600))

	out := t.TempDir()
	indexPath := filepath.Join(out, "index.json")
	countsPath := filepath.Join(out, "counts.json")
	resultsPath := filepath.Join(out, "results.json")

	flags := &cmdFlags{
		LogLevel:    "error",
		TextFormat:  true,
		Path:        dir,
		Limit:       50,
		IndexPath:   indexPath,
		CountsPath:  countsPath,
		QueryPath:   queries,
		ResultsPath: resultsPath,
		Exact:       true,
	}

	require.NoError(t, RunCommand(context.Background(), flags))

	idx, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(idx), `"hello"`)
	assert.Contains(t, string(idx), `"world"`)

	counts, err := os.ReadFile(countsPath)
	require.NoError(t, err)
	assert.Contains(t, string(counts), ": 4")

	results, err := os.ReadFile(resultsPath)
	require.NoError(t, err)
	assert.Contains(t, string(results), `"world"`)
	assert.Contains(t, string(results), `"score": "0.50000000"`)
}

func TestRunCommand_NoModeFlags(t *testing.T) {
	flags := &cmdFlags{LogLevel: "error", TextFormat: true, Limit: 50}

	assert.NoError(t, RunCommand(context.Background(), flags))
}

func TestRunCommand_BadLogLevel(t *testing.T) {
	flags := &cmdFlags{LogLevel: "chatty"}

	assert.Error(t, RunCommand(context.Background(), flags))
}

func TestSanitizeFlags(t *testing.T) {
	flags := &cmdFlags{Limit: -1, Threads: 0, threadsSet: true}

	sanitizeFlags(flags)

	assert.Equal(t, 50, flags.Limit)
	assert.Equal(t, 5, flags.Threads)
}

func TestInitCommand_Defaults(t *testing.T) {
	cmd := InitCommand(BuildInfo{Version: "test", AppName: "scour"})

	limit, err := cmd.Flags().GetInt("limit")
	require.NoError(t, err)
	assert.Equal(t, 50, limit)

	assert.Equal(t, "index.json", cmd.Flags().Lookup("index").NoOptDefVal)
	assert.Equal(t, "counts.json", cmd.Flags().Lookup("counts").NoOptDefVal)
	assert.Equal(t, "results.json", cmd.Flags().Lookup("results").NoOptDefVal)
	assert.Equal(t, "8080", cmd.Flags().Lookup("port").NoOptDefVal)
}
