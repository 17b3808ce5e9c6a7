// Package report renders an analysis summary as an Excel workbook.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"insight-alpha/models"
)

const (
	sheetName   = "Summary"
	columnWidth = 30
	headerFill  = "D3D3D3"
)

// Generator produces downloadable workbook reports for completed analyses.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Build renders the summary workbook for an analysis and returns the
// serialized xlsx bytes.
func (g *Generator) Build(analysis *models.Analysis) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("cell style: %w", err)
	}

	rows := [][2]string{
		{"Metric", "Value"},
		{"Ticker", analysis.Ticker},
		{"Current Price", "$" + analysis.Price.String()},
		{"DCF Fair Value", fairValueCell(analysis.DCF)},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetName, cell, &[]any{row[0], row[1]}); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(sheetName, "A1", "B1", headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}
	lastRow := fmt.Sprintf("B%d", len(rows))
	if err := f.SetCellStyle(sheetName, "A2", lastRow, cellStyle); err != nil {
		return nil, fmt.Errorf("apply cell style: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "B", columnWidth); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func fairValueCell(v models.Valuation) string {
	if !v.Available {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", v.FairValue.InexactFloat64())
}
