package api

import (
	"bytes"
	"fmt"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []interface{}{"ID", "Вещь", "Арендатор", "Начало", "Окончание", "Статус"}

// Цвета строк по статусу бронирования
var statusColors = map[models.BookingStatus]string{
	models.StatusWaiting:  "#FFF2CC",
	models.StatusApproved: "#E2EFDA",
	models.StatusRejected: "#F8CBAD",
}

// bookingExporter renders owner bookings as a single-sheet workbook.
type bookingExporter struct {
	sheet      string
	timeLayout string
}

func newBookingExporter() *bookingExporter {
	return &bookingExporter{
		sheet:      models.ExportSheetName,
		timeLayout: "02.01.2006 15:04",
	}
}

func (e *bookingExporter) Render(bookings []*models.Booking) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(e.sheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	_ = f.SetCellStyle(e.sheet, "A1", "F1", headerStyle)

	styles := make(map[models.BookingStatus]int, len(statusColors))
	for status, color := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("status style: %w", err)
		}
		styles[status] = id
	}

	for i, b := range bookings {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}

		values := []interface{}{
			b.ID,
			itemName(b),
			bookerName(b),
			b.Start.Format(e.timeLayout),
			b.End.Format(e.timeLayout),
			string(b.Status),
		}
		if err := f.SetSheetRow(e.sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}

		if style, ok := styles[b.Status]; ok {
			last, _ := excelize.CoordinatesToCellName(len(values), row)
			_ = f.SetCellStyle(e.sheet, cell, last, style)
		}
	}

	_ = f.SetColWidth(e.sheet, "A", "A", 8)
	_ = f.SetColWidth(e.sheet, "B", "C", 25)
	_ = f.SetColWidth(e.sheet, "D", "F", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func itemName(b *models.Booking) string {
	if b.Item == nil {
		return fmt.Sprintf("#%d", b.ItemID)
	}
	return b.Item.Name
}

func bookerName(b *models.Booking) string {
	if b.Booker == nil {
		return fmt.Sprintf("#%d", b.BookerID)
	}
	return b.Booker.Name
}
