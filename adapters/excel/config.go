package excel

// ExcelConfig holds spreadsheet read/write settings
type ExcelConfig struct {
	Sheet          string `json:"sheet"`           // input sheet; empty reads the first sheet
	CurrencyFormat string `json:"currency_format"` // number format for money columns
	DateFormat     string `json:"date_format"`     // number format for date columns
	FreezeHeader   bool   `json:"freeze_header"`
}

// DefaultExcelConfig returns the formats used by the backorder reports
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		CurrencyFormat: `"$"#,##0.00_);[Red]\("$"#,##0.00\)`,
		DateFormat:     "mm-dd-yy",
		FreezeHeader:   true,
	}
}
