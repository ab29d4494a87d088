package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"backorder/domain/core"
	"backorder/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadTableMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	reader := NewDataReader(DefaultExcelConfig())

	_, err := reader.ReadTable(context.Background(), filepath.Join(dir, "nope.xlsx"))
	assert.True(t, errors.Is(err, core.ErrInputNotFound))

	empty := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = reader.ReadTable(context.Background(), empty)
	assert.True(t, errors.Is(err, core.ErrEmptyInput))

	legacy := filepath.Join(dir, "old.xls")
	require.NoError(t, os.WriteFile(legacy, []byte("x"), 0o644))
	_, err = reader.ReadTable(context.Background(), legacy)
	assert.True(t, errors.Is(err, core.ErrUnsupportedFile))
}

func TestReadTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{" order_no ", "item_no", "unit_price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1001, " A1 ", 12.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{1002}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	raw, err := NewDataReader(DefaultExcelConfig()).ReadTable(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"order_no", "item_no", "unit_price"}, raw.Headers)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, []string{"1001", "A1", "12.5"}, raw.Rows[0])
	assert.Equal(t, []string{"1002", "", ""}, raw.Rows[1], "short rows are padded")
}

func TestReadTableDelimited(t *testing.T) {
	dir := t.TempDir()
	reader := NewDataReader(DefaultExcelConfig())

	csvPath := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("order_no,item_no\n1001,A1\n"), 0o644))
	raw, err := reader.ReadTable(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_no", "item_no"}, raw.Headers)
	assert.Equal(t, [][]string{{"1001", "A1"}}, raw.Rows)

	txtPath := filepath.Join(dir, "export.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("order_no|item_no\n1001|A1\n1002|B2\n"), 0o644))
	raw, err = reader.ReadTable(context.Background(), txtPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_no", "item_no"}, raw.Headers)
	assert.Len(t, raw.Rows, 2)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, '\t', sniffDelimiter("a\tb\n1,2"))
	assert.Equal(t, '|', sniffDelimiter("a|b"))
	assert.Equal(t, ',', sniffDelimiter("a,b"))
}

func TestReadReportAllSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	buckets := []order.Bucket{
		order.NewBucket(order.Military, sampleRecords()[:1], nil),
		order.NewBucket(order.Commercial, sampleRecords()[1:], nil),
	}
	require.NoError(t, NewReportWriter(DefaultExcelConfig()).WriteReport(context.Background(), path, order.StandardLayout, buckets))

	wb, err := NewDataReader(DefaultExcelConfig()).ReadReport(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)

	mil, ok := wb.Sheet("MILITARY")
	require.True(t, ok)
	assert.Equal(t, order.StandardLayout.Headers(), mil.Headers)
	assert.Equal(t, "1001", mil.Rows[0][0])
	assert.Equal(t, "A1", mil.Rows[0][3])
}

func TestDirLister(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BACKORDER REPORT 030725.xlsx"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	names, err := NewDirLister().ListReports(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"BACKORDER REPORT 030725.xlsx"}, names)

	names, err = NewDirLister().ListReports(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
