package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backorder/domain/core"
	"backorder/domain/order"
	"backorder/internal"
	"backorder/internal/carryforward"
	"backorder/internal/classify"
	"backorder/internal/dedup"
	"backorder/internal/diagnostics"
	"backorder/internal/errors"
	"backorder/internal/ingest"
	"backorder/internal/sorter"
	"backorder/internal/summary"
	"backorder/ports"
)

// DefaultOutputName is the report file name for a run on day t.
func DefaultOutputName(t time.Time) string {
	return "BACKORDER REPORT " + core.DateStamp(t) + ".xlsx"
}

// Options holds service-wide settings
type Options struct {
	OutputDir         string
	LogDir            string
	SortKey           order.SortKey
	DropDuplicateKeys bool
	Quiet             bool
	Logger            *internal.Logger // nil: INFO to the standard logger
}

// Deps are the collaborators of a ReportService
type Deps struct {
	Checker    ports.InputChecker
	Loader     *ingest.Loader
	Classifier *classify.Classifier
	Dedup      *dedup.Deduplicator
	Merger     *carryforward.Merger
	Writer     ports.ReportWriter
}

// Request describes one run.
type Request struct {
	InputPath  string
	OutputPath string // empty: OutputDir/DefaultOutputName
	SortKey    order.SortKey
	Progress   ProgressFunc
}

// GenerateRequest runs the standard report from an ERP export.
type GenerateRequest struct {
	Request
}

// LivingRequest runs the living report from a named raw-data file,
// carrying annotations forward from history.
type LivingRequest struct {
	Request
	HistoryDir string // empty: the configured history directory
}

// Result is the outcome of a successful run.
type Result struct {
	RunID      core.RunID
	OutputPath string
	Military   int
	Commercial int
	Summary    summary.Report
	Warnings   []diagnostics.Event
	Prior      carryforward.Outcome
}

// ReportService runs the backorder pipeline
type ReportService struct {
	deps Deps
	opts Options
	now  func() time.Time
}

// NewReportService creates a report service
func NewReportService(deps Deps, opts Options) *ReportService {
	if opts.SortKey == "" {
		opts.SortKey = order.DefaultSortKey
	}
	return &ReportService{deps: deps, opts: opts, now: time.Now}
}

// Quiet returns a copy of the service that records diagnostics without
// echoing them to the log.
func (s *ReportService) Quiet() *ReportService {
	cp := *s
	cp.opts.Quiet = true
	return &cp
}

type mode struct {
	variant ingest.Variant
	layout  order.Layout
	merger  *carryforward.Merger
}

// Generate loads an export, classifies, sorts and deduplicates it, and
// renders the standard report.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	return s.run(ctx, req.Request, mode{variant: ingest.VariantExport, layout: order.StandardLayout})
}

// Living loads a raw-data file, carries annotations forward from the most
// recent prior report, and renders the living report.
func (s *ReportService) Living(ctx context.Context, req LivingRequest) (*Result, error) {
	merger := s.deps.Merger
	if req.HistoryDir != "" {
		merger = merger.WithHistoryDir(req.HistoryDir)
	}
	return s.run(ctx, req.Request, mode{variant: ingest.VariantNamed, layout: order.LivingLayout, merger: merger})
}

func (s *ReportService) newDiagnostics() *diagnostics.Context {
	switch {
	case s.opts.Quiet:
		return diagnostics.NewSilent(core.NewRunID())
	case s.opts.Logger != nil:
		return diagnostics.NewWithLogger(core.NewRunID(), s.opts.Logger)
	default:
		return diagnostics.New(core.NewRunID())
	}
}

func (s *ReportService) run(ctx context.Context, req Request, m mode) (*Result, error) {
	diag := s.newDiagnostics()
	today := s.now()
	runner := NewStageRunner(diag, req.Progress, req.InputPath)

	output := req.OutputPath
	if output == "" {
		output = filepath.Join(s.opts.OutputDir, DefaultOutputName(today))
	}
	key := req.SortKey
	if key == "" {
		key = s.opts.SortKey
	}
	diag.Info("Run", "run started", diagnostics.Fields{"input": req.InputPath, "output": output, "layout": m.layout.Name})

	var (
		tbl      *ingest.Table
		records  []order.Record
		cols     order.ColumnSet
		prior    carryforward.Outcome
		mil, com order.Bucket
	)

	if err := runner.Run(ctx, StageValidate, 5, func() error {
		return s.validate(req.InputPath, output)
	}); err != nil {
		return nil, s.failed(diag, err)
	}

	if err := runner.Run(ctx, StageLoad, 25, func() error {
		var err error
		tbl, err = s.deps.Loader.Load(ctx, req.InputPath, m.variant, diag)
		if tbl != nil {
			runner.Observe(tbl.RowCount, tbl.SourceColumns)
		}
		if err != nil {
			return inputError(req.InputPath, err)
		}
		records, cols = tbl.Records, tbl.Columns
		return nil
	}); err != nil {
		return nil, s.failed(diag, err)
	}

	if m.merger != nil {
		if err := runner.Run(ctx, StageCarryForward, 40, func() error {
			if s.opts.DropDuplicateKeys {
				var removed int
				records, removed = ingest.UniqueByKey(records)
				if removed > 0 {
					diag.Warn(carryforward.Stage, "duplicate order/item keys dropped, first kept", diagnostics.Fields{"removed": removed})
				}
			}
			// annotation columns always exist in a living report
			cols = cols.With(order.UserColumns...)

			merged, outcome, err := m.merger.Apply(ctx, records, today, diag)
			if err != nil {
				return err
			}
			records, prior = merged, outcome
			runner.Observe(len(records), tbl.SourceColumns)
			return nil
		}); err != nil {
			return nil, s.failed(diag, err)
		}
	}

	if err := runner.Run(ctx, StageClassify, 55, func() error {
		mil, com = s.deps.Classifier.Split(records, cols, diag)
		return nil
	}); err != nil {
		return nil, s.failed(diag, err)
	}

	if err := runner.Run(ctx, StageSort, 70, func() error {
		mil = sorter.Sort(mil, key, diag)
		com = sorter.Sort(com, key, diag)
		return nil
	}); err != nil {
		return nil, s.failed(diag, err)
	}

	if err := runner.Run(ctx, StageDedup, 80, func() error {
		com = s.deps.Dedup.Apply(com, diag)
		runner.Observe(mil.Len()+com.Len(), tbl.SourceColumns)
		return nil
	}); err != nil {
		return nil, s.failed(diag, err)
	}

	if err := runner.Run(ctx, StageRender, 100, func() error {
		if err := s.deps.Writer.WriteReport(ctx, output, m.layout, []order.Bucket{mil, com}); err != nil {
			return errors.RenderFailure(output, fmt.Errorf("%w: %w", core.ErrRenderFailed, err))
		}
		return nil
	}); err != nil {
		return nil, s.failed(diag, err)
	}

	report, err := summary.Summarize([]order.Bucket{mil, com}, today)
	if err != nil {
		diag.Warn("Summary", "summary unavailable", diagnostics.Fields{"error": err.Error()})
	}
	diag.Info("Run", "report written", diagnostics.Fields{"output": output, "military": mil.Len(), "commercial": com.Len()})

	return &Result{
		RunID:      diag.RunID,
		OutputPath: output,
		Military:   mil.Len(),
		Commercial: com.Len(),
		Summary:    report,
		Warnings:   diag.Warnings(),
		Prior:      prior,
	}, nil
}

// failed writes the error log and attaches its path to the stage error.
func (s *ReportService) failed(diag *diagnostics.Context, err error) error {
	var se *StageError
	if !stderrors.As(err, &se) {
		se = &StageError{Stage: "Run", Err: err}
	}
	logPath, logErr := diag.WriteErrorLog(s.opts.LogDir, se)
	if logErr != nil {
		diag.Warn("Run", "error log not written", diagnostics.Fields{"error": logErr.Error()})
	} else {
		se.LogPath = logPath
	}
	return se
}

func (s *ReportService) validate(input, output string) error {
	if strings.TrimSpace(input) == "" {
		return errors.InvalidInput("no input file given")
	}
	if err := s.deps.Checker.CheckInput(input); err != nil {
		return inputError(input, err)
	}
	if !strings.EqualFold(filepath.Ext(output), ".xlsx") {
		return errors.InvalidInput("output file must end in .xlsx: " + output)
	}
	if sameFile(input, output) {
		return errors.InvalidInput("output file would overwrite the input: " + output)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return errors.RenderFailure(output, err)
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// inputError maps structural loader failures to application error codes.
func inputError(path string, err error) error {
	switch {
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, core.ErrInputNotFound):
		return errors.InputNotFound(path, err)
	case stderrors.Is(err, core.ErrEmptyInput):
		return errors.EmptyInput(path, err)
	case stderrors.Is(err, core.ErrSchemaViolation):
		return errors.SchemaViolation(path, err)
	case stderrors.Is(err, core.ErrUnsupportedFile):
		return errors.WithCode(errors.CodeInvalidInput, err)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return errors.Wrapf(err, "failed to read %s", path)
	}
}
