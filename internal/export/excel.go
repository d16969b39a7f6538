package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheetWriter escreve linhas sequenciais em abas de uma planilha.
type sheetWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

func newSheetWriter() *sheetWriter {
	return &sheetWriter{file: excelize.NewFile()}
}

func (w *sheetWriter) AddSheet(name string) error {
	// limite do Excel
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

func (w *sheetWriter) WriteHeader(columns []string) error {
	if err := w.WriteRow(toAny(columns)); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	row := w.currentRow - 1
	startCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	endCell, err := excelize.CoordinatesToCellName(len(columns), row)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.currentSheet, startCell, endCell, style); err != nil {
		return fmt.Errorf("apply header style on %s: %w", w.currentSheet, err)
	}
	return nil
}

func (w *sheetWriter) WriteRow(row []any) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	cell, err := excelize.CoordinatesToCellName(1, w.currentRow)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.currentSheet, cell, &row); err != nil {
		return err
	}

	w.currentRow++
	return nil
}

func (w *sheetWriter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *sheetWriter) Close() error {
	return w.file.Close()
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
