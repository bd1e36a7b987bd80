package constants

// Reservation status
const (
	ReservationStatusPending   = "Pending"
	ReservationStatusActive    = "Active"
	ReservationStatusCompleted = "Completed"
	ReservationStatusCancelled = "Cancelled"
)

// Ngày tháng
const (
	DateLayout = "2006-01-02"
)

// Redis cache keys cho danh sách phòng
const (
	CacheKeyRoomsAll         = "rooms:all"
	CacheKeyRoomsAvailable   = "rooms:available"
	CacheKeyRoomsUnavailable = "rooms:unavailable"
)
