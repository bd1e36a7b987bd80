package builders

import (
	"time"

	"hotel/constants"
	"hotel/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới, trạng thái mặc định là Pending
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{Status: constants.ReservationStatusPending},
	}
}

// ForRoom gán phòng
func (b *ReservationBuilder) ForRoom(roomID uint) *ReservationBuilder {
	b.reservation.RoomID = roomID
	return b
}

// Between đặt khoảng [checkin, checkout)
func (b *ReservationBuilder) Between(checkin, checkout time.Time) *ReservationBuilder {
	b.reservation.CheckinDate = checkin
	b.reservation.CheckoutDate = checkout
	return b
}

// WithStatus: chuỗi rỗng giữ nguyên trạng thái mặc định
func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	if status != "" {
		b.reservation.Status = status
	}
	return b
}

// WithGuests thêm khách, bỏ qua id trùng
func (b *ReservationBuilder) WithGuests(guests []models.Guest) *ReservationBuilder {
	for _, g := range guests {
		b.reservation.AddGuest(g.ID)
	}
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
