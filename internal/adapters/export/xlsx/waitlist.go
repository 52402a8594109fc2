// Package xlsx writes spreadsheet exports for the admin endpoints.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/brainbattle/internal/domain"
)

const waitlistSheet = "Waitlist"

var waitlistHeader = []any{"Email", "Mission", "Signed up (UTC)"}

// WriteWaitlist renders signups as a single-sheet workbook, one row each.
func WriteWaitlist(w io.Writer, signups []domain.WaitlistSignup) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", waitlistSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(waitlistSheet, "A1", &waitlistHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(waitlistSheet, 1, 1, bold)
	}
	for i, s := range signups {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.Email, s.Mission, s.CreatedAt.UTC().Format(time.RFC3339)}
		if err := f.SetSheetRow(waitlistSheet, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(waitlistSheet, "A", "A", 36)
	_ = f.SetColWidth(waitlistSheet, "B", "C", 22)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
