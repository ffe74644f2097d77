package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symcla/symcla/internal/model"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"classify", "runs"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "symcla", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestClassifyCommand_Flags(t *testing.T) {
	flag := classifyCmd.Flags().Lookup("out")
	require.NotNil(t, flag, "classify command should have --out flag")
	assert.Equal(t, "o", flag.Shorthand)

	for _, flagName := range []string{"xlsx", "keep-work"} {
		f := classifyCmd.Flags().Lookup(flagName)
		require.NotNil(t, f, "classify command should have --%s flag", flagName)
		assert.Equal(t, "false", f.DefValue)
	}
}

func TestRunsCommand_HasSubcommands(t *testing.T) {
	cmds := runsCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"list", "show"} {
		assert.True(t, names[name], "runs should have subcommand %q", name)
	}
}

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			InputDir:  "/data/genomes/batch1",
			Status:    model.RunStatusComplete,
			Result:    &model.RunResult{Genomes: 12},
			CreatedAt: now,
			UpdatedAt: now.Add(2 * time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			InputDir:  "/data/genomes/a/very/long/path/that/keeps/going",
			Status:    model.RunStatusSearching,
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "INPUT")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "abc12345")
	assert.Contains(t, output, "/data/genomes/batch1")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "searching")
	assert.Contains(t, output, "2026-03-10 09:15")
	// Long input paths are truncated from the left.
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, "/data/genomes/a/very/long/path")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789-0000-0000-000000000000"))
	assert.Equal(t, "short", truncateID("short"))
}
