package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"backorder/adapters/coercer"
	"backorder/adapters/excel"
	"backorder/domain/core"
	"backorder/domain/order"
	"backorder/domain/table"
	"backorder/internal/diagnostics"
	"backorder/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader() *Loader {
	return NewLoader(excel.NewDataReader(excel.DefaultExcelConfig()), coercer.NewDefault())
}

func silent() *diagnostics.Context {
	return diagnostics.NewSilent(core.NewRunID())
}

func TestLoadExportWorkbook(t *testing.T) {
	kit := testkit.New(t)
	path := kit.WriteExport("export.xlsx", testkit.Sample()...)

	tbl, err := newLoader().Load(context.Background(), path, VariantExport, silent())
	require.NoError(t, err)

	assert.Equal(t, 5, tbl.RowCount)
	assert.Equal(t, 20, tbl.SourceColumns)
	require.Len(t, tbl.Records, 5)

	first := tbl.Records[0]
	assert.Equal(t, "1002", first.OrderNumber)
	assert.Equal(t, "PO-7", first.CustomerPO)
	assert.Equal(t, "A1", first.ItemNumber)
	assert.Equal(t, "DLA Troop Support", first.CustomerName)
	assert.Equal(t, "MANUEL ORTEGA", first.Salesperson)
	require.NotNil(t, first.OrderDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *first.OrderDate)
	assert.True(t, first.UnitPrice.Decimal.Equal(decimalOf(t, "12.50")))
	assert.Equal(t, "4", first.Stock)
	assert.True(t, first.StockQty.Decimal.Equal(decimalOf(t, "4")))

	assert.Nil(t, tbl.Records[3].DueDate)
	assert.True(t, tbl.Columns.Has(order.ColSalesperson))
	assert.False(t, tbl.Columns.Has(order.ColComments))
}

func TestPositionalDropHappensBeforeNames(t *testing.T) {
	// headers at dropped positions collide with real names and must be ignored
	headers := testkit.ExportHeaders()
	headers[0] = "order_no"
	headers[3] = "item_no"
	rows := [][]string{testkit.ExportRow(testkit.Line{Order: "42", Item: "Z9"})}
	rows[0][0] = "WRONG"
	rows[0][3] = "WRONG"

	tbl, err := newLoader().FromRaw(&table.Raw{Headers: headers, Rows: rows}, VariantExport, silent())
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "42", tbl.Records[0].OrderNumber)
	assert.Equal(t, "Z9", tbl.Records[0].ItemNumber)
}

func TestLoadNamedVariant(t *testing.T) {
	kit := testkit.New(t)
	path := kit.WriteNamed("raw.xlsx", testkit.Sample()[1])

	tbl, err := newLoader().Load(context.Background(), path, VariantNamed, silent())
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "Lisa Miller", tbl.Records[0].Salesperson)
	assert.True(t, tbl.Columns.Has(order.ColSalesperson))
}

func TestLoadCSV(t *testing.T) {
	kit := testkit.New(t)
	path := kit.WriteCSV("export.csv", testkit.ExportRows(testkit.Sample()...))

	tbl, err := newLoader().Load(context.Background(), path, VariantExport, silent())
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.RowCount)
}

func TestStructuralFailures(t *testing.T) {
	kit := testkit.New(t)
	loader := newLoader()
	ctx := context.Background()

	_, err := loader.Load(ctx, kit.Path("missing.xlsx"), VariantExport, silent())
	assert.True(t, errors.Is(err, core.ErrInputNotFound))

	_, err = loader.Load(ctx, kit.WriteFile("empty.csv", nil), VariantExport, silent())
	assert.True(t, errors.Is(err, core.ErrEmptyInput))

	narrow := kit.WriteCSV("narrow.csv", [][]string{{"a", "b", "c"}, {"1", "2", "3"}})
	_, err = loader.Load(ctx, narrow, VariantExport, silent())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSchemaViolation))
	assert.Contains(t, err.Error(), "at least 20 columns")
}

func TestMissingRequiredColumn(t *testing.T) {
	raw := &table.Raw{Headers: []string{"order_no", "cust_name"}, Rows: [][]string{{"1", "x"}}}

	tbl, err := newLoader().FromRaw(raw, VariantNamed, silent())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSchemaViolation))
	assert.Contains(t, err.Error(), "item_no")
	assert.Contains(t, err.Error(), "cust_name")

	require.NotNil(t, tbl)
	assert.Equal(t, 1, tbl.RowCount)
	assert.Equal(t, 2, tbl.SourceColumns)
	assert.Empty(t, tbl.Records)
}

func TestMissingOptionalColumnWarns(t *testing.T) {
	raw := &table.Raw{Headers: []string{"order_no", "item_no"}, Rows: [][]string{{"1", "A"}}}
	diag := silent()

	tbl, err := newLoader().FromRaw(raw, VariantNamed, diag)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "", tbl.Records[0].CustomerName)
	assert.False(t, tbl.Columns.Has(order.ColCustomerName))

	// ten non-annotation optional columns are missing; annotations stay quiet
	assert.Len(t, diag.Warnings(), 10)
}

func TestParseWarningsAreAggregated(t *testing.T) {
	raw := &table.Raw{
		Headers: []string{"order_no", "item_no", "order_dt", "unit_price"},
		Rows: [][]string{
			{"1", "A", "not a date", "abc"},
			{"2", "B", "13/45/2025", "5.00"},
			{"3", "C", "", ""},
			{"4", "D", "45723", "$1,200.50"},
		},
	}
	diag := silent()

	tbl, err := newLoader().FromRaw(raw, VariantNamed, diag)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 4)

	assert.Nil(t, tbl.Records[0].OrderDate)
	assert.Nil(t, tbl.Records[1].OrderDate)
	assert.Nil(t, tbl.Records[2].OrderDate)
	require.NotNil(t, tbl.Records[3].OrderDate)
	assert.Equal(t, time.March, tbl.Records[3].OrderDate.Month())
	assert.False(t, tbl.Records[0].UnitPrice.Valid)
	assert.True(t, tbl.Records[3].UnitPrice.Decimal.Equal(decimalOf(t, "1200.50")))

	var dateWarning *diagnostics.Event
	for _, w := range diag.Warnings() {
		if w.Fields["column"] == "ORDER DATE" {
			w := w
			dateWarning = &w
		}
	}
	require.NotNil(t, dateWarning)
	assert.Equal(t, 2, dateWarning.Fields["count"])
	assert.Equal(t, []string{"not a date", "13/45/2025"}, dateWarning.Fields["samples"])
}

func TestStockKeepsText(t *testing.T) {
	raw := &table.Raw{
		Headers: []string{"order_no", "item_no", "unit_price", "from_stk"},
		Rows: [][]string{
			{"1", "A", "5", "Y"},
			{"2", "B", "5", "1,000"},
		},
	}
	diag := silent()

	tbl, err := newLoader().FromRaw(raw, VariantNamed, diag)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)

	assert.Equal(t, "Y", tbl.Records[0].Stock)
	assert.False(t, tbl.Records[0].StockQty.Valid)
	assert.False(t, tbl.Records[0].TotalSale().Valid)

	assert.Equal(t, "1,000", tbl.Records[1].Stock)
	assert.True(t, tbl.Records[1].StockQty.Decimal.Equal(decimalOf(t, "1000")))

	for _, w := range diag.Warnings() {
		assert.NotEqual(t, "STOCK", w.Fields["column"])
	}
}

func TestZeroRowsAfterDrop(t *testing.T) {
	kit := testkit.New(t)
	path := kit.WriteExport("export.xlsx")

	tbl, err := newLoader().Load(context.Background(), path, VariantExport, silent())
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount)
	assert.Empty(t, tbl.Records)
}

func TestBlankRowsSkipped(t *testing.T) {
	raw := &table.Raw{
		Headers: []string{"order_no", "item_no"},
		Rows:    [][]string{{"1", "A"}, {"", " "}, {"2", "B"}},
	}
	tbl, err := newLoader().FromRaw(raw, VariantNamed, silent())
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount)
}

func TestUniqueByKey(t *testing.T) {
	records := []order.Record{
		{OrderNumber: "1", ItemNumber: "A", Comments: "first"},
		{OrderNumber: " 1 ", ItemNumber: "A", Comments: "second"},
		{OrderNumber: "1", ItemNumber: "B"},
	}
	out, removed := UniqueByKey(records)
	assert.Equal(t, 1, removed)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Comments)
}
