// Package availability quyết định xung đột ngày và sức chứa của phòng.
// Không đọc hay ghi store; mọi hàm đều thuần.
package availability

import (
	"time"

	"hotel/constants"
	"hotel/models"
)

// Interval is a half-open stay [Checkin, Checkout).
type Interval struct {
	Checkin  time.Time
	Checkout time.Time
}

// Of returns the interval of a reservation.
func Of(r models.Reservation) Interval {
	return Interval{Checkin: r.CheckinDate, Checkout: r.CheckoutDate}
}

// ValidInterval reports whether checkin is strictly before checkout.
func ValidInterval(checkin, checkout time.Time) bool {
	return checkin.Before(checkout)
}

// HasDateOverlap: hai khoảng [a) và [b) giao nhau khi a.Checkin < b.Checkout và b.Checkin < a.Checkout.
// Ngày trả phòng trùng ngày nhận phòng không tính là giao nhau.
func HasDateOverlap(a, b Interval) bool {
	return a.Checkin.Before(b.Checkout) && b.Checkin.Before(a.Checkout)
}

// Blocks reports whether a reservation occupies its room for date checks.
// Cancelled reservations are history only.
func Blocks(r models.Reservation) bool {
	return r.Status != constants.ReservationStatusCancelled
}

// IsRoomAvailableForDates returns false if any blocking reservation of the room
// overlaps [checkin, checkout). The room's cached flag is not consulted.
func IsRoomAvailableForDates(reservations []models.Reservation, checkin, checkout time.Time) bool {
	return firstConflict(reservations, 0, Interval{Checkin: checkin, Checkout: checkout}) == nil
}

// IsRoomAvailableForDatesExcluding is IsRoomAvailableForDates ignoring the reservation excludeID.
func IsRoomAvailableForDatesExcluding(reservations []models.Reservation, excludeID uint, checkin, checkout time.Time) bool {
	return firstConflict(reservations, excludeID, Interval{Checkin: checkin, Checkout: checkout}) == nil
}

// Conflicts returns the blocking reservations overlapping the requested interval.
func Conflicts(reservations []models.Reservation, checkin, checkout time.Time) []models.Reservation {
	want := Interval{Checkin: checkin, Checkout: checkout}
	var out []models.Reservation
	for _, r := range reservations {
		if Blocks(r) && HasDateOverlap(Of(r), want) {
			out = append(out, r)
		}
	}
	return out
}

func firstConflict(reservations []models.Reservation, excludeID uint, want Interval) *models.Reservation {
	for i := range reservations {
		r := reservations[i]
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if Blocks(r) && HasDateOverlap(Of(r), want) {
			return &reservations[i]
		}
	}
	return nil
}

// CapacityFits reports whether requested guests fit in the room.
func CapacityFits(room models.Room, requested int) bool {
	return requested <= room.MaxNumberOfGuests
}

// Nights counts the nights in [checkin, checkout).
func Nights(checkin, checkout time.Time) int {
	if !ValidInterval(checkin, checkout) {
		return 0
	}
	return int(truncate(checkout).Sub(truncate(checkin)).Hours() / 24)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
