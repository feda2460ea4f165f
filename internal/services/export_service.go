package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/internal/repositories"
)

// Export artifact names expected by the frontend download buttons.
const (
	CSVExportFilename  = "detrack_data.csv"
	XLSXExportFilename = "detrack_data.xlsx"
)

type ExportServiceInterface interface {
	ExportCSV(ctx context.Context, sessionID string) ([]byte, error)
	ExportXLSX(ctx context.Context, sessionID string) ([]byte, error)
}

type ExportService struct {
	sessionRepo repositories.SessionRepositoryInterface
	logger      *zap.Logger
}

func NewExportService(sessionRepo repositories.SessionRepositoryInterface, logger *zap.Logger) ExportServiceInterface {
	return &ExportService{sessionRepo: sessionRepo, logger: logger}
}

// ExportCSV renders the cleaned job table as UTF-8 CSV: header row, one row
// per job, no index column.
func (s *ExportService) ExportCSV(ctx context.Context, sessionID string) ([]byte, error) {
	jobs, columns, err := s.cleanedTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(columns))
	for _, job := range jobs {
		for i, col := range columns {
			value, _ := col.Value(job)
			row[i] = value
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportXLSX renders the same cleaned table as a single-sheet workbook.
func (s *ExportService) ExportXLSX(ctx context.Context, sessionID string) ([]byte, error) {
	jobs, columns, err := s.cleanedTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Jobs"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.Name)
	}
	for r, job := range jobs {
		for i, col := range columns {
			value, _ := col.Value(job)
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) cleanedTable(ctx context.Context, sessionID string) ([]entities.JobRecord, []ExportColumn, error) {
	snapshot, err := s.sessionRepo.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	columns := CleanColumns(snapshot.Jobs, ExportColumns())
	s.logger.Debug("export table prepared",
		zap.Int("rows", len(snapshot.Jobs)),
		zap.Int("columns", len(columns)),
	)
	return snapshot.Jobs, columns, nil
}
