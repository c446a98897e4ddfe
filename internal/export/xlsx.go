//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pgEdge/pgedge-merchlens/internal/reports"
)

// Sheet names of an exported workbook.
const (
	DataSheet = "报表"
	MetaSheet = "导出信息"
)

// WriteXLSX saves the table to a workbook at path with a styled header row
// and a second sheet holding the metadata.
func WriteXLSX(path string, t *reports.Table, m Meta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRows(f, DataSheet, append([][]string{t.Columns}, t.Rows...)); err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(DataSheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Columns))
		if err := f.SetColWidth(DataSheet, "A", lastCol, 15); err != nil {
			return fmt.Errorf("failed to size columns: %w", err)
		}
		if err := f.SetPanes(DataSheet, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if _, err := f.NewSheet(MetaSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	meta := append([][]string{{"报表", t.Title}}, m.rows()...)
	if err := writeRows(f, MetaSheet, meta); err != nil {
		return err
	}
	if err := f.SetColWidth(MetaSheet, "A", "B", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
