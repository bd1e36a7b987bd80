// Package report xuất báo cáo công suất phòng ra file Excel.
package report

import (
	"context"
	"fmt"
	"strings"

	"hotel/constants"
	"hotel/errors"
	"hotel/models"
	"hotel/services/availability"
	"hotel/store"

	"github.com/xuri/excelize/v2"
)

const (
	RoomsSheet        = "Rooms"
	ReservationsSheet = "Reservations"
)

var roomHeader = []string{"Room Number", "Room Type", "Price Per Night", "Capacity", "Guests", "Available"}

var reservationHeader = []string{"Reservation", "Room Number", "Check-in", "Check-out", "Nights", "Status", "Guests", "Guest Names"}

type OccupancyReporter struct {
	store store.Store
}

func NewOccupancyReporter(s store.Store) *OccupancyReporter {
	return &OccupancyReporter{store: s}
}

// Generate đọc toàn bộ phòng, khách và reservation trong một transaction để số liệu nhất quán.
func (r *OccupancyReporter) Generate(ctx context.Context) ([]byte, error) {
	var (
		rooms        []models.Room
		guests       []models.Guest
		reservations []models.Reservation
	)
	err := r.store.Transaction(ctx, func(repo store.Repository) error {
		var err error
		if rooms, err = repo.FindRooms(store.RoomFilter{}); err != nil {
			return errors.DB("lỗi khi truy vấn phòng", err)
		}
		if guests, err = repo.FindGuests(store.GuestFilter{}); err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		if reservations, err = repo.FindReservations(store.ReservationFilter{}); err != nil {
			return errors.DB("lỗi khi truy vấn reservation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return BuildWorkbook(rooms, guests, reservations)
}

// BuildWorkbook tạo workbook gồm hai sheet Rooms và Reservations.
func BuildWorkbook(rooms []models.Room, guests []models.Guest, reservations []models.Reservation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RoomsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ReservationsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	guestsByRoom := make(map[uint]int)
	names := make(map[uint]string, len(guests))
	for _, g := range guests {
		names[g.ID] = strings.TrimSpace(g.FirstName + " " + g.LastName)
		if g.RoomID != nil {
			guestsByRoom[*g.RoomID]++
		}
	}
	roomNumbers := make(map[uint]int, len(rooms))

	roomRows := make([][]interface{}, 0, len(rooms))
	for _, room := range rooms {
		roomNumbers[room.ID] = room.RoomNumber
		roomRows = append(roomRows, []interface{}{
			room.RoomNumber,
			room.RoomType,
			room.PricePerNight,
			room.MaxNumberOfGuests,
			guestsByRoom[room.ID],
			yesNo(room.IsAvailable),
		})
	}

	reservationRows := make([][]interface{}, 0, len(reservations))
	for _, res := range reservations {
		partyNames := make([]string, 0, res.GuestCount())
		for _, id := range res.GuestIDList() {
			if name, ok := names[id]; ok {
				partyNames = append(partyNames, name)
			}
		}
		reservationRows = append(reservationRows, []interface{}{
			res.ID,
			roomNumbers[res.RoomID],
			res.CheckinDate.Format(constants.DateLayout),
			res.CheckoutDate.Format(constants.DateLayout),
			availability.Nights(res.CheckinDate, res.CheckoutDate),
			res.Status,
			res.GuestCount(),
			strings.Join(partyNames, ", "),
		})
	}

	if err := writeSheet(f, RoomsSheet, roomHeader, roomRows, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSheet(f, ReservationsSheet, reservationHeader, reservationRows, headerStyle); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}, headerStyle int) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
