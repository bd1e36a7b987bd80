package store

import (
	"context"
	"errors"

	"hotel/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore lưu dữ liệu trong postgres thông qua gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate tạo/cập nhật các bảng rooms, guests, reservations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Room{}, &models.Guest{}, &models.Reservation{})
}

func (s *GormStore) Repo(ctx context.Context) Repository {
	return &gormRepo{db: s.db.WithContext(ctx)}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepo{db: tx})
	})
}

type gormRepo struct {
	db *gorm.DB
}

func first[T any](q *gorm.DB, id uint) (*T, error) {
	var out T
	if err := q.First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *gormRepo) GetRoom(id uint) (*models.Room, error) {
	return first[models.Room](r.db, id)
}

// LockRoom dùng SELECT ... FOR UPDATE để tuần tự hóa các thao tác trên cùng một phòng.
func (r *gormRepo) LockRoom(id uint) (*models.Room, error) {
	return first[models.Room](r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *gormRepo) FindRooms(filter RoomFilter) ([]models.Room, error) {
	q := r.db.Model(&models.Room{})
	if filter.RoomNumber != nil {
		q = q.Where("room_number = ?", *filter.RoomNumber)
	}
	if filter.IsAvailable != nil {
		q = q.Where("is_available = ?", *filter.IsAvailable)
	}
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	if filter.MaxNumberOfGuests != nil {
		q = q.Where("max_number_of_guests = ?", *filter.MaxNumberOfGuests)
	}

	var rooms []models.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *gormRepo) SaveRoom(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *gormRepo) DeleteRoom(id uint) error {
	return r.db.Delete(&models.Room{}, id).Error
}

func (r *gormRepo) GetGuest(id uint) (*models.Guest, error) {
	return first[models.Guest](r.db, id)
}

func (r *gormRepo) GetGuestsByIDs(ids []uint) ([]models.Guest, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var guests []models.Guest
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *gormRepo) FindGuests(filter GuestFilter) ([]models.Guest, error) {
	q := r.db.Model(&models.Guest{})
	if filter.LastName != "" {
		q = q.Where("LOWER(last_name) = LOWER(?)", filter.LastName)
	}
	if filter.PassportNumber != "" {
		q = q.Where("passport_number = ?", filter.PassportNumber)
	}

	var guests []models.Guest
	if err := q.Order("id").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *gormRepo) GuestsInRoom(roomID uint) ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.db.Where("room_id = ?", roomID).Order("id").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *gormRepo) SaveGuest(guest *models.Guest) error {
	return r.db.Save(guest).Error
}

func (r *gormRepo) DeleteGuest(id uint) error {
	return r.db.Delete(&models.Guest{}, id).Error
}

func (r *gormRepo) GetReservation(id uint) (*models.Reservation, error) {
	return first[models.Reservation](r.db, id)
}

func (r *gormRepo) ReservationsForRoom(roomID uint) ([]models.Reservation, error) {
	roomFilter := roomID
	return r.FindReservations(ReservationFilter{RoomID: &roomFilter})
}

func (r *gormRepo) FindReservations(filter ReservationFilter) ([]models.Reservation, error) {
	q := r.db.Model(&models.Reservation{})
	if filter.CheckinDate != nil {
		q = q.Where("checkin_date = ?", *filter.CheckinDate)
	}
	if filter.RoomID != nil {
		q = q.Where("room_id = ?", *filter.RoomID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.CheckoutUntil != nil {
		q = q.Where("checkout_date <= ?", *filter.CheckoutUntil)
	}

	var reservations []models.Reservation
	if err := q.Order("checkin_date").Order("id").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *gormRepo) SaveReservation(reservation *models.Reservation) error {
	return r.db.Save(reservation).Error
}

func (r *gormRepo) DeleteReservation(id uint) error {
	return r.db.Delete(&models.Reservation{}, id).Error
}

var (
	_ Store      = (*GormStore)(nil)
	_ Repository = (*gormRepo)(nil)
)
