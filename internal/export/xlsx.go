// Package export renders the cafe list as a downloadable spreadsheet.
package export

import (
	"fmt"
	"io"

	"cafes/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single sheet in an export.
const SheetName = "Cafes"

// Header is the first row of an export.
var Header = []interface{}{
	"ID", "Name", "Map URL", "Image URL", "Location",
	"Sockets", "Toilet", "Wifi", "Can Take Calls", "Seats", "Coffee Price",
}

// WriteXLSX writes cafes to w as an .xlsx workbook, one row per cafe.
func WriteXLSX(w io.Writer, cafes []models.Cafe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, c := range cafes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			c.ID, c.Name, c.MapURL, c.ImgURL, c.Location,
			yesNo(c.HasSockets), yesNo(c.HasToilet), yesNo(c.HasWifi), yesNo(c.CanTakeCalls), c.Seats, c.CoffeePrice,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write cafe %d: %w", c.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
