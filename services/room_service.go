package services

import (
	"context"
	"fmt"
	"time"

	"hotel/constants"
	"hotel/errors"
	"hotel/models"
	"hotel/services/availability"
	"hotel/services/logger"
	"hotel/store"
	"hotel/validator"
)

// RoomService là Room Directory: CRUD và tra cứu phòng.
type RoomService struct {
	store  store.Store
	cache  *RoomCache
	logger logger.Logger
}

type RoomServiceOptions struct {
	Store  store.Store
	Cache  *RoomCache
	Logger logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	return &RoomService{
		store:  opts.Store,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

// RoomUpdate chứa các trường được phép cập nhật; nil nghĩa là giữ nguyên.
type RoomUpdate struct {
	RoomNumber        *int
	RoomType          *string
	PricePerNight     *float64
	MaxNumberOfGuests *int
	IsAvailable       *bool
}

func (s *RoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.store.Repo(ctx).GetRoom(id)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn phòng", err)
	}
	if room == nil {
		return nil, errors.NotFound("room", id)
	}
	return room, nil
}

func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.cachedRooms(ctx, constants.CacheKeyRoomsAll, store.RoomFilter{})
}

func (s *RoomService) AvailableRooms(ctx context.Context) ([]models.Room, error) {
	available := true
	return s.cachedRooms(ctx, constants.CacheKeyRoomsAvailable, store.RoomFilter{IsAvailable: &available})
}

func (s *RoomService) UnavailableRooms(ctx context.Context) ([]models.Room, error) {
	available := false
	return s.cachedRooms(ctx, constants.CacheKeyRoomsUnavailable, store.RoomFilter{IsAvailable: &available})
}

func (s *RoomService) cachedRooms(ctx context.Context, key string, filter store.RoomFilter) ([]models.Room, error) {
	var rooms []models.Room
	if s.cache.Get(ctx, key, &rooms) {
		return rooms, nil
	}

	rooms, err := s.FindRooms(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, rooms)
	return rooms, nil
}

func (s *RoomService) FindRooms(ctx context.Context, filter store.RoomFilter) ([]models.Room, error) {
	rooms, err := s.store.Repo(ctx).FindRooms(filter)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn danh sách phòng", err)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	return rooms, nil
}

func (s *RoomService) FindByRoomNumber(ctx context.Context, number int) (*models.Room, error) {
	rooms, err := s.FindRooms(ctx, store.RoomFilter{RoomNumber: &number})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, fmt.Sprintf("room number %d not found", number), nil)
	}
	return &rooms[0], nil
}

func (s *RoomService) FindByRoomType(ctx context.Context, roomType string) ([]models.Room, error) {
	return s.FindRooms(ctx, store.RoomFilter{RoomType: roomType})
}

func (s *RoomService) FindByMaxNumberOfGuests(ctx context.Context, maxGuests int) ([]models.Room, error) {
	return s.FindRooms(ctx, store.RoomFilter{MaxNumberOfGuests: &maxGuests})
}

// CreateRoom thêm phòng mới; phòng mới luôn ở trạng thái trống.
func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	room.ID = 0
	room.IsAvailable = true
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		if err := ensureRoomNumberFree(repo, room.RoomNumber, 0); err != nil {
			return err
		}
		if err := repo.SaveRoom(room); err != nil {
			return errors.DB("lỗi khi lưu phòng", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Đã tạo phòng %d (id %d)", room.RoomNumber, room.ID)
	return room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, id uint, update RoomUpdate) (*models.Room, error) {
	var updated *models.Room
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		room, err := repo.LockRoom(id)
		if err != nil {
			return errors.DB("lỗi khi truy vấn phòng", err)
		}
		if room == nil {
			return errors.NotFound("room", id)
		}

		if update.RoomNumber != nil && *update.RoomNumber != room.RoomNumber {
			if err := ensureRoomNumberFree(repo, *update.RoomNumber, id); err != nil {
				return err
			}
			room.RoomNumber = *update.RoomNumber
		}
		if update.RoomType != nil {
			room.RoomType = *update.RoomType
		}
		if update.PricePerNight != nil {
			room.PricePerNight = *update.PricePerNight
		}
		if update.IsAvailable != nil {
			room.IsAvailable = *update.IsAvailable
		}
		if update.MaxNumberOfGuests != nil {
			guests, err := repo.GuestsInRoom(id)
			if err != nil {
				return errors.DB("lỗi khi truy vấn khách trong phòng", err)
			}
			if *update.MaxNumberOfGuests < len(guests) {
				return errors.NewAppError(errors.ErrCodeCapacityExceeded,
					fmt.Sprintf("room %d currently holds %d guests", room.RoomNumber, len(guests)), nil)
			}
			room.MaxNumberOfGuests = *update.MaxNumberOfGuests
		}

		if err := validator.ValidateRoom(room); err != nil {
			return err
		}
		if err := repo.SaveRoom(room); err != nil {
			return errors.DB("lỗi khi lưu phòng", err)
		}
		updated = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return updated, nil
}

// DeleteRoom từ chối xóa khi phòng còn khách hoặc còn reservation đang mở.
func (s *RoomService) DeleteRoom(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		room, err := repo.LockRoom(id)
		if err != nil {
			return errors.DB("lỗi khi truy vấn phòng", err)
		}
		if room == nil {
			return errors.NotFound("room", id)
		}

		guests, err := repo.GuestsInRoom(id)
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách trong phòng", err)
		}
		if len(guests) > 0 {
			return errors.NewAppError(errors.ErrCodeInvalidState, "room still has guests assigned", nil)
		}

		reservations, err := repo.ReservationsForRoom(id)
		if err != nil {
			return errors.DB("lỗi khi truy vấn reservation", err)
		}
		for _, r := range reservations {
			if r.IsOpen() {
				return errors.NewAppError(errors.ErrCodeInvalidState,
					fmt.Sprintf("room has open reservation %d", r.ID), nil)
			}
		}

		if err := repo.DeleteRoom(id); err != nil {
			return errors.DB("lỗi khi xóa phòng", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// IsRoomAvailable kiểm tra phòng theo khoảng ngày, không dựa vào cờ IsAvailable.
func (s *RoomService) IsRoomAvailable(ctx context.Context, roomID uint, checkin, checkout time.Time) (bool, error) {
	if err := validator.ValidateInterval(checkin, checkout); err != nil {
		return false, err
	}
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return false, err
	}

	reservations, err := s.store.Repo(ctx).ReservationsForRoom(roomID)
	if err != nil {
		return false, errors.DB("lỗi khi truy vấn reservation", err)
	}
	return availability.IsRoomAvailableForDates(reservations, checkin, checkout), nil
}

// GuestsInRoom trả về khách đang được gán vào phòng.
func (s *RoomService) GuestsInRoom(ctx context.Context, roomID uint) ([]models.Guest, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	guests, err := s.store.Repo(ctx).GuestsInRoom(roomID)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn khách trong phòng", err)
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	return guests, nil
}

func ensureRoomNumberFree(repo store.Repository, number int, selfID uint) error {
	existing, err := repo.FindRooms(store.RoomFilter{RoomNumber: &number})
	if err != nil {
		return errors.DB("lỗi khi kiểm tra số phòng", err)
	}
	for _, r := range existing {
		if r.ID != selfID {
			return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("room number %d already exists", number), nil)
		}
	}
	return nil
}
