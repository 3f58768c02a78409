package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Brevet"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "FR123"))
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_Markdown(t *testing.T) {
	out, _, err := execute(t, writeFixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "# Spreadsheet Probe Report")
	assert.Contains(t, out, "| 2 | FR123 |")
}

func TestRoot_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "-n", "1", writeFixture(t))
	require.NoError(t, err)

	var rep struct {
		Kind   string `json:"kind"`
		Sheets []struct {
			Name      string     `json:"name"`
			Truncated bool       `json:"truncated"`
			Rows      [][]string `json:"rows"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "zip", rep.Kind)
	require.Len(t, rep.Sheets, 1)
	assert.Equal(t, [][]string{{"Brevet"}}, rep.Sheets[0].Rows)
	assert.True(t, rep.Sheets[0].Truncated)
}

func TestRoot_MissingFile(t *testing.T) {
	out, errOut, err := execute(t, filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "file not found")
}

func TestRoot_UnknownFormatIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	out, _, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "- Guessed type: unknown")
}

func TestRoot_InvalidConfig(t *testing.T) {
	_, errOut, err := execute(t, "--format", "xml", writeFixture(t))
	require.Error(t, err)
	assert.Contains(t, errOut, "invalid configuration")
}

func TestRoot_RequiresPath(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)
}
