package app

import (
	"context"
	"fmt"
	"log"

	"backorder/internal/diagnostics"
	"backorder/internal/errors"
)

// Pipeline stage names as shown to the user
const (
	StageValidate     = "Validate"
	StageLoad         = "Load"
	StageCarryForward = "CarryForward"
	StageClassify     = "Classify"
	StageSort         = "Sort"
	StageDedup        = "Dedup"
	StageRender       = "Render"
)

// ProgressFunc receives a percentage and status after each stage.
type ProgressFunc func(percent int, status string)

// StageError is an aborting failure with the context needed to diagnose it
// without re-running.
type StageError struct {
	Stage   string
	File    string
	Rows    int
	Columns int
	LogPath string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed for %s (rows=%d, columns=%d): %v", e.Stage, e.File, e.Rows, e.Columns, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Code returns the application error code of the cause.
func (e *StageError) Code() string {
	return errors.GetCode(e.Err)
}

// StageRunner executes pipeline stages in order, tracking the row and
// column counts reached so far.
type StageRunner struct {
	diag     *diagnostics.Context
	progress ProgressFunc
	file     string
	rows     int
	columns  int
}

// NewStageRunner creates a stage runner for one run over file.
func NewStageRunner(diag *diagnostics.Context, progress ProgressFunc, file string) *StageRunner {
	if progress == nil {
		progress = func(int, string) {}
	}
	return &StageRunner{diag: diag, progress: progress, file: file}
}

// Observe records the current row and column counts.
func (r *StageRunner) Observe(rows, columns int) {
	r.rows, r.columns = rows, columns
}

// Run executes fn as stage. Cancellation is checked before the stage
// starts; a failure is recorded and returned as a *StageError.
func (r *StageRunner) Run(ctx context.Context, stage string, percent int, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return r.fail(stage, err)
	}
	if err := fn(); err != nil {
		return r.fail(stage, err)
	}
	r.progress(percent, stage+" complete")
	return nil
}

func (r *StageRunner) fail(stage string, err error) error {
	se := &StageError{Stage: stage, File: r.file, Rows: r.rows, Columns: r.columns, Err: err}
	log.Printf("[StageRunner] %v", se)
	r.diag.Error(stage, err, diagnostics.Fields{"file": r.file, "rows": r.rows, "columns": r.columns})
	return se
}
