package container

import (
	"fmt"

	"backorder/adapters/coercer"
	"backorder/adapters/excel"
	"backorder/app"
	"backorder/domain/order"
	"backorder/internal"
	"backorder/internal/carryforward"
	"backorder/internal/classify"
	"backorder/internal/config"
	"backorder/internal/dedup"
	"backorder/internal/ingest"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Adapters
	Reader *excel.DataReader
	Writer *excel.ReportWriter
	Lister *excel.DirLister

	// Pipeline stages
	Loader     *ingest.Loader
	Classifier *classify.Classifier
	Dedup      *dedup.Deduplicator
	Merger     *carryforward.Merger

	ReportService *app.ReportService
}

// New wires the pipeline from cfg
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	excelConfig := excel.DefaultExcelConfig()
	c := &Container{
		Config: cfg,
		Reader: excel.NewDataReader(excelConfig),
		Writer: excel.NewReportWriter(excelConfig),
		Lister: excel.NewDirLister(),
	}

	c.Loader = ingest.NewLoader(c.Reader, coercer.NewDefault())
	c.Classifier = classify.New(classify.Rule{
		Salesperson: cfg.Military.Salesperson,
		Keywords:    cfg.Military.Keywords,
	})
	c.Dedup = dedup.New(dedup.Pair{Primary: cfg.Dedup.Primary, Secondary: cfg.Dedup.Secondary})
	c.Merger = carryforward.NewMerger(c.Reader, c.Lister, carryforward.Options{
		HistoryDir: cfg.HistoryDir,
		Lookback:   cfg.LookbackDays,
		Fields:     order.UserColumns,
	})

	c.ReportService = app.NewReportService(app.Deps{
		Checker:    c.Reader,
		Loader:     c.Loader,
		Classifier: c.Classifier,
		Dedup:      c.Dedup,
		Merger:     c.Merger,
		Writer:     c.Writer,
	}, app.Options{
		OutputDir:         cfg.OutputDir,
		LogDir:            cfg.LogDir,
		SortKey:           cfg.ParsedSortKey(),
		DropDuplicateKeys: cfg.Living.DropDuplicateKeys,
		Logger:            internal.NewLogger(cfg.Level()),
	})

	return c, nil
}
