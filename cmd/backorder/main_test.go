package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"backorder/app"
	"backorder/domain/core"
	"backorder/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	kit := testkit.New(t)
	input := kit.WriteExport("export.xlsx", testkit.Sample()...)
	output := kit.Path("report.xlsx")

	out, err := execute(t, "generate", input, "--output", output, "--sort", "order-number", "--quiet")
	require.NoError(t, err)

	assert.FileExists(t, output)
	assert.Contains(t, out, "Report saved: "+output)
	assert.Contains(t, out, "MILITARY: 2  COMMERCIAL: 2")
}

func TestGenerateCommandBadSortKey(t *testing.T) {
	kit := testkit.New(t)
	input := kit.WriteExport("export.xlsx", testkit.Sample()...)

	_, err := execute(t, "generate", input, "--sort", "price", "--quiet")
	assert.Error(t, err)
}

func TestLivingCommandWithoutHistory(t *testing.T) {
	kit := testkit.New(t)
	input := kit.WriteNamed("raw.xlsx", testkit.Sample()...)
	output := kit.Path("living.xlsx")

	out, err := execute(t, "living", input, "--output", output, "--history", kit.Path("history"), "--quiet")
	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.Contains(t, out, "no prior report found")
}

func TestLocateHistoryCommand(t *testing.T) {
	kit := testkit.New(t)
	kit.WriteFile("history/BACKORDER REPORT 030725.xlsx", []byte("x"))
	kit.WriteFile("history/BACKORDER REPORT 030725 (2).xlsx", []byte("x"))

	out, err := execute(t, "locate-history", "--history", filepath.Join(kit.Dir, "history"), "--date", "030825")
	require.NoError(t, err)
	assert.Contains(t, out, "Prior report: BACKORDER REPORT 030725.xlsx")

	out, err = execute(t, "locate-history", "--history", filepath.Join(kit.Dir, "history"), "--date", "031625")
	require.NoError(t, err)
	assert.Contains(t, out, "No prior report")
}

func TestReportFailure(t *testing.T) {
	var buf bytes.Buffer
	reportFailure(&buf, &app.StageError{
		Stage:   app.StageLoad,
		File:    "in.xlsx",
		Rows:    0,
		Columns: 3,
		LogPath: "logs/backorder_error_log.txt",
		Err:     errors.New("input schema violation"),
	})

	text := buf.String()
	assert.Contains(t, text, "Report failed during Load")
	assert.Contains(t, text, "Cause: input schema violation")
	assert.Contains(t, text, "File: in.xlsx (rows=0, columns=3)")
	assert.Contains(t, text, "Details written to: logs/backorder_error_log.txt")
}

func TestReportFailureStructuralHint(t *testing.T) {
	var buf bytes.Buffer
	reportFailure(&buf, &app.StageError{
		Stage: app.StageLoad,
		Err:   core.NewSchemaError([]string{"ORDER NO"}, []string{"ITEM NO"}),
	})
	assert.Contains(t, buf.String(), "No report was written")

	buf.Reset()
	reportFailure(&buf, &app.StageError{Stage: app.StageRender, Err: errors.New("disk full")})
	assert.NotContains(t, buf.String(), "No report was written")
}
