package coercer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Coercer turns raw cell text into typed values. Unparseable input is never
// an error: callers receive ok=false and decide how to report it.
type Coercer struct {
	config Config
}

// Config defines the accepted input formats
type Config struct {
	DateLayouts       []string `json:"date_layouts"`
	AcceptExcelSerial bool     `json:"accept_excel_serial"` // numeric cells in date columns are Excel serial days
	CurrencySymbols   []string `json:"currency_symbols"`
}

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

// DefaultConfig returns the formats seen in order exports
func DefaultConfig() Config {
	return Config{
		DateLayouts: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006 15:04:05",
			"01/02/2006",
			"1/2/2006",
			"01/02/06",
			"1/2/06",
			"01-02-06",
			"01-02-2006",
			"2006/01/02",
			"02-Jan-2006",
			"Jan 2, 2006",
		},
		AcceptExcelSerial: true,
		CurrencySymbols:   []string{"$", "USD"},
	}
}

// New creates a coercer with the given config
func New(config Config) *Coercer {
	return &Coercer{config: config}
}

// NewDefault creates a coercer with DefaultConfig.
func NewDefault() *Coercer {
	return New(DefaultConfig())
}

// IsBlank reports whether raw holds no value.
func IsBlank(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "nat")
}

// Date parses raw as a calendar date. Blank input returns (nil, true).
func (c *Coercer) Date(raw string) (*time.Time, bool) {
	if IsBlank(raw) {
		return nil, true
	}
	s := strings.TrimSpace(raw)

	for _, layout := range c.config.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}

	if c.config.AcceptExcelSerial {
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial <= maxExcelSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return &t, true
			}
		}
	}

	return nil, false
}

// Decimal parses raw as a money or quantity value. Blank input returns a
// null decimal with ok=true.
//
// Handles currency symbols, thousands separators and parenthesized negatives.
func (c *Coercer) Decimal(raw string) (decimal.NullDecimal, bool) {
	if IsBlank(raw) {
		return decimal.NullDecimal{}, true
	}
	clean := strings.TrimSpace(raw)

	// (123) -> -123
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, symbol := range c.config.CurrencySymbols {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if negative {
		clean = "-" + clean
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

// Number parses raw as a plain numeric identifier such as an order number.
// Unlike Decimal it accepts no currency or grouping characters.
func Number(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Text normalizes a string cell: trims whitespace and maps pandas-style
// null markers to "".
func Text(raw string) string {
	if IsBlank(raw) {
		return ""
	}
	return strings.TrimSpace(raw)
}
