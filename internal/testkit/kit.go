// Package testkit builds on-disk fixtures for pipeline tests: ERP exports,
// named raw-data files and prior reports.
package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Line is one order line in fixture form. Values are written as given.
type Line struct {
	Order       string
	PO          string
	OrderDate   string
	Item        string
	Mfg         string
	ShipASAP    string
	Price       string
	Cost        string
	Customer    string
	Salesperson string
	DueDate     string
	Stock       string
}

// Sheet is a named grid of cells; the first row is the header.
type Sheet struct {
	Name string
	Rows [][]string
}

// TestKit writes fixtures into a per-test temporary directory.
type TestKit struct {
	t   testing.TB
	Dir string
}

// New creates a kit rooted at t.TempDir().
func New(t testing.TB) *TestKit {
	t.Helper()
	return &TestKit{t: t, Dir: t.TempDir()}
}

// Path returns name joined onto the kit directory.
func (k *TestKit) Path(name string) string {
	return filepath.Join(k.Dir, name)
}

// WriteWorkbook writes sheets, in order, to an xlsx file and returns its path.
func (k *TestKit) WriteWorkbook(name string, sheets ...Sheet) string {
	k.t.Helper()
	path := k.Path(name)
	require.NoError(k.t, os.MkdirAll(filepath.Dir(path), 0o755))

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if sh.Name != "Sheet1" {
				require.NoError(k.t, f.SetSheetName("Sheet1", sh.Name))
			}
		} else {
			_, err := f.NewSheet(sh.Name)
			require.NoError(k.t, err)
		}
		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(k.t, err)
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			require.NoError(k.t, f.SetSheetRow(sh.Name, cell, &values))
		}
	}
	require.NoError(k.t, f.SaveAs(path))
	return path
}

// WriteCSV writes rows to a comma-separated file and returns its path.
func (k *TestKit) WriteCSV(name string, rows [][]string) string {
	k.t.Helper()
	path := k.Path(name)
	file, err := os.Create(path)
	require.NoError(k.t, err)
	defer file.Close()

	w := csv.NewWriter(file)
	require.NoError(k.t, w.WriteAll(rows))
	return path
}

// WriteFile writes raw bytes and returns the path.
func (k *TestKit) WriteFile(name string, data []byte) string {
	k.t.Helper()
	path := k.Path(name)
	require.NoError(k.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(k.t, os.WriteFile(path, data, 0o644))
	return path
}
