package classify

import (
	"fmt"
	"testing"

	"backorder/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultClassifier() *Classifier {
	return New(Rule{Salesperson: "MANUEL ORTEGA", Keywords: []string{"dla", "dfas", "navsup"}})
}

func TestIsMilitary(t *testing.T) {
	c := defaultClassifier()
	tests := []struct {
		salesperson string
		customer    string
		want        bool
	}{
		{"manuel ortega", "Payments via DFAS Columbus", true},
		{"Manuel Ortega", "dla land and maritime", true},
		{"MANUEL ORTEGA", "NAVSUP WSS", true},
		{"manuel ortega", "Acme Corp", false},
		{"Lisa Miller", "DLA Troop Support", false},
		{"MANUEL ORTEGA", "", false},
		{" MANUEL ORTEGA ", "navsup", true},
		{"MANUEL ORTEGAS", "DLA", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.salesperson, tt.customer), func(t *testing.T) {
			r := order.Record{Salesperson: tt.salesperson, CustomerName: tt.customer}
			assert.Equal(t, tt.want, c.IsMilitary(r))
		})
	}
}

func TestSplitPartitionsInput(t *testing.T) {
	records := []order.Record{
		{OrderNumber: "1", ItemNumber: "A", Salesperson: "MANUEL ORTEGA", CustomerName: "DLA"},
		{OrderNumber: "2", ItemNumber: "A", Salesperson: "Lisa Miller", CustomerName: "DLA"},
		{OrderNumber: "3", ItemNumber: "A", Salesperson: "manuel ortega", CustomerName: "Acme"},
		{OrderNumber: "4", ItemNumber: "A", Salesperson: "manuel ortega", CustomerName: "navsup"},
		{OrderNumber: "5", ItemNumber: "A"},
	}
	cols := order.NewColumnSet(order.ColOrderNumber, order.ColItemNumber)

	mil, com := defaultClassifier().Split(records, cols, nil)

	assert.Equal(t, order.Military, mil.Name)
	assert.Equal(t, order.Commercial, com.Name)
	require.Equal(t, len(records), mil.Len()+com.Len())

	seen := map[string]int{}
	for _, r := range append(append([]order.Record{}, mil.Records...), com.Records...) {
		seen[r.OrderNumber]++
	}
	for _, r := range records {
		assert.Equal(t, 1, seen[r.OrderNumber], "order %s", r.OrderNumber)
	}

	assert.Equal(t, []string{"1", "4"}, orderNumbers(mil.Records))
	assert.Equal(t, []string{"2", "3", "5"}, orderNumbers(com.Records))
	assert.True(t, com.Columns.Has(order.ColItemNumber))
}

func TestCustomKeywords(t *testing.T) {
	c := New(Rule{Salesperson: "jane doe", Keywords: []string{" ARMY ", ""}})
	assert.True(t, c.IsMilitary(order.Record{Salesperson: "JANE DOE", CustomerName: "US Army Depot"}))
	assert.False(t, c.IsMilitary(order.Record{Salesperson: "JANE DOE", CustomerName: "DLA"}))
}

func orderNumbers(records []order.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.OrderNumber
	}
	return out
}
