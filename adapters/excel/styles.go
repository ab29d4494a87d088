package excel

import (
	"fmt"

	"backorder/domain/order"

	"github.com/xuri/excelize/v2"
)

// styleSet caches style IDs; data styles vary by cell kind and row fill.
type styleSet struct {
	f      *excelize.File
	config ExcelConfig

	header       int
	total        int
	legendHeader int
	legendText   int

	dataStyles   map[string]int
	swatchStyles map[string]int
}

var thickBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 5},
	{Type: "right", Color: "000000", Style: 5},
	{Type: "top", Color: "000000", Style: 5},
	{Type: "bottom", Color: "000000", Style: 5},
}

func newStyleSet(f *excelize.File, config ExcelConfig) *styleSet {
	s := &styleSet{
		f:            f,
		config:       config,
		dataStyles:   make(map[string]int),
		swatchStyles: make(map[string]int),
	}
	// Fixed styles cannot fail with these literal definitions; a zero ID
	// falls back to the default style.
	s.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Underline: "single"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.total, _ = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &config.CurrencyFormat,
	})
	s.legendHeader, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.legendText, _ = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thickBorder,
	})
	return s
}

// data returns the style for a data cell of the given kind and optional row fill.
func (s *styleSet) data(kind order.CellKind, fill string) (int, error) {
	key := fmt.Sprintf("%d/%s", kind, fill)
	if id, ok := s.dataStyles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "right"}}
	switch kind {
	case order.KindMoney, order.KindFormula:
		style.CustomNumFmt = &s.config.CurrencyFormat
	case order.KindDate:
		style.CustomNumFmt = &s.config.DateFormat
	}
	if fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create cell style: %w", err)
	}
	s.dataStyles[key] = id
	return id, nil
}

func (s *styleSet) legendSwatch(hex string) (int, error) {
	if id, ok := s.swatchStyles[hex]; ok {
		return id, nil
	}
	id, err := s.f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thickBorder,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create legend style: %w", err)
	}
	s.swatchStyles[hex] = id
	return id, nil
}
