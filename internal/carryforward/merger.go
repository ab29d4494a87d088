// Package carryforward copies hand-entered annotations from the most recent
// prior report onto a fresh load.
package carryforward

import (
	"context"
	"path/filepath"
	"time"

	"backorder/domain/order"
	"backorder/internal/diagnostics"
	"backorder/ports"
)

// Stage is the diagnostics stage name of the merger.
const Stage = "CarryForward"

// Options configures a Merger.
type Options struct {
	HistoryDir string
	Lookback   int
	Fields     []order.Column
}

// Outcome describes what a merge found.
type Outcome struct {
	PriorPath string
	Found     bool
	Matched   int
}

// Merger locates, reads and overlays a prior report.
type Merger struct {
	reader ports.ReportReader
	lister ports.HistoryLister
	opts   Options
}

// NewMerger creates a merger. Fields defaults to the user columns.
func NewMerger(reader ports.ReportReader, lister ports.HistoryLister, opts Options) *Merger {
	if len(opts.Fields) == 0 {
		opts.Fields = order.UserColumns
	}
	if opts.Lookback < 1 {
		opts.Lookback = 7
	}
	return &Merger{reader: reader, lister: lister, opts: opts}
}

// Apply returns records with prior annotations overlaid. A missing
// history, an unreadable prior report or a key miss is logged and leaves
// records as loaded; only context cancellation is returned as an error.
func (m *Merger) Apply(ctx context.Context, records []order.Record, today time.Time, diag *diagnostics.Context) ([]order.Record, Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, Outcome{}, err
	}

	name, found, err := FindPrior(m.lister, m.opts.HistoryDir, today, m.opts.Lookback)
	if err != nil {
		diag.Warn(Stage, "history directory unreadable", diagnostics.Fields{"dir": m.opts.HistoryDir, "error": err.Error()})
		return records, Outcome{}, nil
	}
	if !found {
		diag.Warn(Stage, "no prior report found", diagnostics.Fields{"dir": m.opts.HistoryDir, "lookback_days": m.opts.Lookback})
		return records, Outcome{}, nil
	}

	path := filepath.Join(m.opts.HistoryDir, name)
	wb, err := m.reader.ReadReport(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Outcome{}, ctxErr
		}
		diag.Warn(Stage, "prior report unreadable", diagnostics.Fields{"file": path, "error": err.Error()})
		return records, Outcome{PriorPath: path}, nil
	}

	lookup := BuildLookup(wb, m.opts.Fields, diag)
	merged, matched := Overlay(records, lookup, m.opts.Fields)

	diag.Info(Stage, "annotations carried forward", diagnostics.Fields{
		"file":    path,
		"entries": len(lookup),
		"matched": matched,
	})
	return merged, Outcome{PriorPath: path, Found: true, Matched: matched}, nil
}

// WithHistoryDir returns a merger reading from dir instead.
func (m *Merger) WithHistoryDir(dir string) *Merger {
	opts := m.opts
	opts.HistoryDir = dir
	return &Merger{reader: m.reader, lister: m.lister, opts: opts}
}

// HistoryDir returns the directory searched for prior reports.
func (m *Merger) HistoryDir() string {
	return m.opts.HistoryDir
}
