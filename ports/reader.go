package ports

import (
	"context"

	"backorder/domain/order"
	"backorder/domain/table"
)

// TableReader loads the first sheet of a tabular export
type TableReader interface {
	ReadTable(ctx context.Context, path string) (*table.Raw, error)
}

// ReportReader loads every sheet of a previously generated report
type ReportReader interface {
	ReadReport(ctx context.Context, path string) (*table.Workbook, error)
}

// ReportWriter renders buckets into a report file. Implementations must not
// leave a readable partial file at path on failure.
type ReportWriter interface {
	WriteReport(ctx context.Context, path string, layout order.Layout, buckets []order.Bucket) error
}

// HistoryLister lists file names (not paths) in a report history directory.
// A missing directory yields an empty list.
type HistoryLister interface {
	ListReports(dir string) ([]string, error)
}

// InputChecker verifies an input file can be read before a run starts
type InputChecker interface {
	CheckInput(path string) error
}
