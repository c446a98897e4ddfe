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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pgEdge/pgedge-merchlens/internal/reports"
)

// BOM marks the file as UTF-8 for spreadsheet tools.
const BOM = "\ufeff"

// WriteCSV writes a UTF-8 BOM, the metadata rows, the column header and the
// table rows. Every field is quoted and rows end in CRLF.
func WriteCSV(w io.Writer, t *reports.Table, m Meta) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(BOM); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, r := range m.rows() {
		writeRecord(bw, r)
	}
	writeRecord(bw, t.Columns)
	for _, r := range t.Rows {
		writeRecord(bw, r)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// writeRecord relies on bufio.Writer keeping the first error for Flush.
func writeRecord(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}
