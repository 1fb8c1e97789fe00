package ticket

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the user's tickets as a styled Excel workbook.
func (s *Service) ExportXLSX(userID int64, w io.Writer) error {
	tickets, err := s.tickets.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		return ErrNoTickets
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Tickets"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range ticketExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, t := range tickets {
		for col, value := range ticketExportRow(t) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "E", 40); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
