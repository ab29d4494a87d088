package excel

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backorder/domain/core"
	"backorder/domain/table"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel, CSV and delimited text files
type DataReader struct {
	config ExcelConfig
}

// NewDataReader creates a new data reader
func NewDataReader(config ExcelConfig) *DataReader {
	return &DataReader{config: config}
}

type fileType string

const (
	fileTypeXLSX fileType = "xlsx"
	fileTypeCSV  fileType = "csv"
	fileTypeText fileType = "txt"
)

func detectFileType(path string) (fileType, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return fileTypeXLSX, nil
	case ".csv":
		return fileTypeCSV, nil
	case ".txt", ".tsv":
		return fileTypeText, nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks must be re-saved as .xlsx", core.ErrUnsupportedFile)
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFile, ext)
	}
}

// CheckFile verifies that path exists and is not empty, returning its size.
func CheckFile(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", core.ErrInputNotFound, path)
		}
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", core.ErrInputNotFound, path)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%w: %s (0 bytes)", core.ErrEmptyInput, path)
	}
	return info.Size(), nil
}

// CheckInput verifies that path exists, is not empty and has a supported
// extension.
func (r *DataReader) CheckInput(path string) error {
	if _, err := CheckFile(path); err != nil {
		return err
	}
	_, err := detectFileType(path)
	return err
}

// ReadTable reads the configured sheet (or the first sheet) of a workbook,
// or the whole of a CSV/text file, into a raw table.
func (r *DataReader) ReadTable(ctx context.Context, path string) (*table.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := CheckFile(path); err != nil {
		return nil, err
	}
	ft, err := detectFileType(path)
	if err != nil {
		return nil, err
	}

	log.Printf("[DataReader] Starting to read %s file: %s", ft, path)
	switch ft {
	case fileTypeXLSX:
		return r.readExcelTable(path)
	default:
		return r.readDelimited(path, ft)
	}
}

func (r *DataReader) readExcelTable(path string) (*table.Raw, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", core.ErrEmptyInput, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return processRows(path, sheet, rows), nil
}

// readDelimited reads CSV, or text with a tab, pipe or comma delimiter
// detected from the first line.
func (r *DataReader) readDelimited(path string, ft fileType) (*table.Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", ft, err)
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	delimiter := ','
	if ft == fileTypeText {
		first, err := buffered.Peek(4096)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		delimiter = sniffDelimiter(string(first))
	}

	reader := csv.NewReader(buffered)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", ft, err)
	}
	log.Printf("[DataReader] %s file read (%d rows)", strings.ToUpper(string(ft)), len(rows))

	return processRows(path, "", rows), nil
}

func sniffDelimiter(sample string) rune {
	line := sample
	if i := strings.IndexAny(sample, "\r\n"); i >= 0 {
		line = sample[:i]
	}
	switch {
	case strings.Contains(line, "\t"):
		return '\t'
	case strings.Contains(line, "|"):
		return '|'
	default:
		return ','
	}
}

// processRows splits off the header row and pads every data row to the
// header width.
func processRows(source, sheet string, rows [][]string) *table.Raw {
	raw := &table.Raw{Source: source, Sheet: sheet}
	if len(rows) == 0 {
		return raw
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	raw.Headers = headers

	raw.Rows = make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		width := len(headers)
		if len(row) > width {
			width = len(row)
		}
		cells := make([]string, width)
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		raw.Rows = append(raw.Rows, cells)
	}

	log.Printf("[DataReader] %s processed (%d columns, %d rows)", filepath.Base(source), len(headers), len(raw.Rows))
	return raw
}

// ReadReport reads every sheet of a generated report. Row 1 of each sheet is
// its header.
func (r *DataReader) ReadReport(ctx context.Context, path string) (*table.Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := CheckFile(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %w", path, err)
	}
	defer f.Close()

	wb := &table.Workbook{Source: path}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, path, err)
		}
		wb.Sheets = append(wb.Sheets, processRows(path, sheet, rows))
	}
	return wb, nil
}
