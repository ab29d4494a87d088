package sorter

import (
	"testing"
	"time"

	"backorder/domain/core"
	"backorder/domain/order"
	"backorder/internal/diagnostics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(records ...order.Record) order.Bucket {
	return order.NewBucket(order.Commercial, records, order.NewColumnSet(
		order.ColOrderNumber, order.ColItemNumber, order.ColSalesperson, order.ColDueDate,
	))
}

func items(b order.Bucket) []string {
	out := make([]string, len(b.Records))
	for i, r := range b.Records {
		out[i] = r.ItemNumber
	}
	return out
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSortByOrderNumberIsNumeric(t *testing.T) {
	b := bucket(
		order.Record{OrderNumber: "1000", ItemNumber: "a"},
		order.Record{OrderNumber: "99", ItemNumber: "b"},
		order.Record{OrderNumber: "200", ItemNumber: "c"},
	)
	out := Sort(b, order.SortByOrderNumber, nil)
	assert.Equal(t, []string{"b", "c", "a"}, items(out))
}

func TestSortByOrderNumberIsStable(t *testing.T) {
	b := bucket(
		order.Record{OrderNumber: "500", ItemNumber: "first"},
		order.Record{OrderNumber: "100", ItemNumber: "x"},
		order.Record{OrderNumber: "500", ItemNumber: "second"},
		order.Record{OrderNumber: "500.0", ItemNumber: "third"},
	)
	out := Sort(b, order.SortByOrderNumber, nil)
	assert.Equal(t, []string{"x", "first", "second", "third"}, items(out))
}

func TestNonNumericOrderNumbersSortLast(t *testing.T) {
	diag := diagnostics.NewSilent(core.NewRunID())
	b := bucket(
		order.Record{OrderNumber: "RMA-2", ItemNumber: "r2"},
		order.Record{OrderNumber: "20", ItemNumber: "n20"},
		order.Record{OrderNumber: "", ItemNumber: "blank"},
		order.Record{OrderNumber: "RMA-1", ItemNumber: "r1"},
		order.Record{OrderNumber: "3", ItemNumber: "n3"},
	)

	out := Sort(b, order.SortByOrderNumber, diag)

	assert.Equal(t, []string{"n3", "n20", "r2", "blank", "r1"}, items(out))
	require.Len(t, diag.Warnings(), 1)
	assert.Equal(t, 3, diag.Warnings()[0].Fields["count"])
}

func TestSortByDueDateNullsLast(t *testing.T) {
	b := bucket(
		order.Record{ItemNumber: "none1"},
		order.Record{ItemNumber: "april", DueDate: date(2025, 4, 1)},
		order.Record{ItemNumber: "none2"},
		order.Record{ItemNumber: "march", DueDate: date(2025, 3, 1)},
	)
	out := Sort(b, order.SortByDueDate, nil)
	assert.Equal(t, []string{"march", "april", "none1", "none2"}, items(out))
}

func TestSortBySalespersonBlanksLast(t *testing.T) {
	b := bucket(
		order.Record{ItemNumber: "1", Salesperson: "Sara Burrell"},
		order.Record{ItemNumber: "2"},
		order.Record{ItemNumber: "3", Salesperson: "Lisa Miller"},
		order.Record{ItemNumber: "4", Salesperson: "Lisa Miller"},
	)
	out := Sort(b, order.SortBySalesperson, nil)
	assert.Equal(t, []string{"3", "4", "1", "2"}, items(out))
}

func TestMissingKeyColumnLeavesBucketUnsorted(t *testing.T) {
	diag := diagnostics.NewSilent(core.NewRunID())
	b := bucket(
		order.Record{ItemNumber: "z", Dock: "2"},
		order.Record{ItemNumber: "a", Dock: "1"},
	)

	out := Sort(b, order.SortByDock, diag)

	assert.Equal(t, []string{"z", "a"}, items(out))
	require.Len(t, diag.Warnings(), 1)
	assert.Equal(t, "PCX DOCK", diag.Warnings()[0].Fields["column"])
}

func TestSortDoesNotMutateInput(t *testing.T) {
	b := bucket(
		order.Record{OrderNumber: "2", ItemNumber: "b"},
		order.Record{OrderNumber: "1", ItemNumber: "a"},
	)
	_ = Sort(b, order.SortByOrderNumber, nil)
	assert.Equal(t, []string{"b", "a"}, items(b))
}
