package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotel/builders"
	"hotel/constants"
	"hotel/errors"
	"hotel/models"
	"hotel/services/availability"
	"hotel/services/logger"
	"hotel/store"
	"hotel/validator"
)

// ReservationService điều phối vòng đời reservation. Mọi thao tác thay đổi
// dữ liệu chạy trong một transaction và khóa dòng phòng trước khi kiểm tra.
type ReservationService struct {
	store  store.Store
	cache  *RoomCache
	logger logger.Logger
}

type ReservationServiceOptions struct {
	Store  store.Store
	Cache  *RoomCache
	Logger logger.Logger
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	return &ReservationService{
		store:  opts.Store,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

type CreateReservationInput struct {
	RoomID       uint
	CheckinDate  time.Time
	CheckoutDate time.Time
	Status       string
	GuestIDs     []uint
}

// RemovalResult: Deleted = true khi danh sách khách rỗng và reservation đã bị xóa.
type RemovalResult struct {
	Reservation *models.Reservation
	Deleted     bool
}

type ReservationQuery struct {
	CheckinDate *time.Time
	RoomID      *uint
}

func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if err := validator.ValidateInterval(in.CheckinDate, in.CheckoutDate); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = constants.ReservationStatusPending
	}
	// reservation đã đóng không giữ khách, tạo mới ở trạng thái đó sẽ để khách trỏ vào lịch sử.
	if status == constants.ReservationStatusCompleted || status == constants.ReservationStatusCancelled {
		return nil, errors.NewAppError(errors.ErrCodeInvalidState,
			fmt.Sprintf("cannot create a reservation with status %s", status), nil)
	}

	var created *models.Reservation
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		room, err := repo.LockRoom(in.RoomID)
		if err != nil {
			return errors.DB("lỗi khi khóa phòng", err)
		}
		if room == nil {
			return errors.NotFound("room", in.RoomID)
		}

		guests, err := repo.GetGuestsByIDs(uniqueIDs(in.GuestIDs))
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		if len(guests) == 0 {
			return errors.NewAppError(errors.ErrCodeNotFound, "none of the requested guests exist", nil)
		}

		if !room.IsAvailable {
			return errors.NewAppError(errors.ErrCodeRoomUnavailable,
				fmt.Sprintf("room %d is not available", room.RoomNumber), nil)
		}
		if !availability.CapacityFits(*room, len(guests)) {
			return capacityExceeded(room, len(guests))
		}

		existing, err := repo.ReservationsForRoom(room.ID)
		if err != nil {
			return errors.DB("lỗi khi truy vấn reservation của phòng", err)
		}
		if !availability.IsRoomAvailableForDates(existing, in.CheckinDate, in.CheckoutDate) {
			return dateConflict(room)
		}

		reservation := builders.NewReservationBuilder().
			ForRoom(room.ID).
			Between(in.CheckinDate, in.CheckoutDate).
			WithStatus(status).
			WithGuests(guests).
			Build()
		if err := repo.SaveReservation(reservation); err != nil {
			return errors.DB("lỗi khi lưu reservation", err)
		}

		if err := s.bindGuests(repo, guests, room.ID, reservation.ID); err != nil {
			return err
		}

		room.IsAvailable = false
		if err := repo.SaveRoom(room); err != nil {
			return errors.DB("lỗi khi lưu phòng", err)
		}
		created = reservation.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Đã tạo reservation %d cho phòng %d với %d khách", created.ID, created.RoomID, created.GuestCount())
	return created, nil
}

func (s *ReservationService) AddGuests(ctx context.Context, reservationID uint, guestIDs []uint) (*models.Reservation, error) {
	var result *models.Reservation
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		reservation, room, err := loadLocked(repo, reservationID)
		if err != nil {
			return err
		}
		if err := models.GetReservationState(reservation.Status).AcceptGuests(); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, err.Error(), nil)
		}

		resolved, err := repo.GetGuestsByIDs(uniqueIDs(guestIDs))
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		newcomers := make([]models.Guest, 0, len(resolved))
		for _, g := range resolved {
			if !reservation.HasGuest(g.ID) {
				newcomers = append(newcomers, g)
			}
		}

		if total := reservation.GuestCount() + len(newcomers); !availability.CapacityFits(*room, total) {
			return capacityExceeded(room, total)
		}
		occupied, err := roomOccupancyWith(repo, room.ID, newcomers)
		if err != nil {
			return err
		}
		if !availability.CapacityFits(*room, occupied) {
			return capacityExceeded(room, occupied)
		}
		if len(newcomers) == 0 {
			result = reservation.Clone()
			return nil
		}

		for _, g := range newcomers {
			reservation.AddGuest(g.ID)
		}
		if err := repo.SaveReservation(reservation); err != nil {
			return errors.DB("lỗi khi lưu reservation", err)
		}
		if err := s.bindGuests(repo, newcomers, room.ID, reservation.ID); err != nil {
			return err
		}

		room.IsAvailable = false
		if err := repo.SaveRoom(room); err != nil {
			return errors.DB("lỗi khi lưu phòng", err)
		}
		result = reservation.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return result, nil
}

// RemoveGuests bỏ khách khỏi reservation; nếu không còn ai thì xóa reservation
// và trả phòng về trạng thái trống.
func (s *ReservationService) RemoveGuests(ctx context.Context, reservationID uint, guestIDs []uint) (*RemovalResult, error) {
	var result *RemovalResult
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		reservation, room, err := loadLocked(repo, reservationID)
		if err != nil {
			return err
		}

		guests, err := repo.GetGuestsByIDs(uniqueIDs(guestIDs))
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		for i := range guests {
			g := &guests[i]
			if !reservation.HasGuest(g.ID) {
				continue
			}
			reservation.RemoveGuest(g.ID)
			if g.HoldsReservation(reservation.ID) {
				g.Release()
				if err := repo.SaveGuest(g); err != nil {
					return errors.DB("lỗi khi lưu khách", err)
				}
			}
		}

		if reservation.GuestCount() == 0 {
			if err := repo.DeleteReservation(reservation.ID); err != nil {
				return errors.DB("lỗi khi xóa reservation", err)
			}
			if err := refreshVacancy(repo, room); err != nil {
				return err
			}
			result = &RemovalResult{Reservation: reservation.Clone(), Deleted: true}
			return nil
		}

		if err := repo.SaveReservation(reservation); err != nil {
			return errors.DB("lỗi khi lưu reservation", err)
		}
		if err := repo.SaveRoom(room); err != nil {
			return errors.DB("lỗi khi lưu phòng", err)
		}
		result = &RemovalResult{Reservation: reservation.Clone()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	if result.Deleted {
		s.logger.Info("Reservation %d không còn khách, đã xóa", reservationID)
	}
	return result, nil
}

// MoveGuest chuyển khách (cùng cả đoàn trong reservation) sang phòng mới.
func (s *ReservationService) MoveGuest(ctx context.Context, guestID, currentRoomID, newRoomID uint) (*models.Reservation, error) {
	var result *models.Reservation
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		guest, err := repo.GetGuest(guestID)
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		if guest == nil {
			return errors.NotFound("guest", guestID)
		}

		rooms, err := lockRooms(repo, currentRoomID, newRoomID)
		if err != nil {
			return err
		}
		oldRoom, newRoom := rooms[currentRoomID], rooms[newRoomID]

		if guest.ReservationID == nil {
			return errors.NewAppError(errors.ErrCodeNoReservation,
				fmt.Sprintf("guest %d has no current reservation", guest.ID), nil)
		}
		reservation, err := repo.GetReservation(*guest.ReservationID)
		if err != nil {
			return errors.DB("lỗi khi truy vấn reservation", err)
		}
		if reservation == nil {
			return errors.NewAppError(errors.ErrCodeNoReservation,
				fmt.Sprintf("guest %d has no current reservation", guest.ID), nil)
		}
		if reservation.RoomID != oldRoom.ID {
			return errors.NewAppError(errors.ErrCodeRoomMismatch,
				fmt.Sprintf("reservation %d is not in room %d", reservation.ID, oldRoom.RoomNumber), nil)
		}
		if oldRoom.ID == newRoom.ID {
			result = reservation.Clone()
			return nil
		}

		occupants, err := repo.GuestsInRoom(newRoom.ID)
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách trong phòng", err)
		}
		if len(occupants) >= newRoom.MaxNumberOfGuests || newRoom.MaxNumberOfGuests <= reservation.GuestCount() {
			return capacityExceeded(newRoom, len(occupants)+reservation.GuestCount())
		}
		// cả đoàn chuyển theo nên tổng số khách trong phòng mới cũng không được vượt sức chứa.
		if total := len(occupants) + reservation.GuestCount(); total > newRoom.MaxNumberOfGuests {
			return capacityExceeded(newRoom, total)
		}

		existing, err := repo.ReservationsForRoom(newRoom.ID)
		if err != nil {
			return errors.DB("lỗi khi truy vấn reservation của phòng", err)
		}
		if !availability.IsRoomAvailableForDatesExcluding(existing, reservation.ID, reservation.CheckinDate, reservation.CheckoutDate) {
			return dateConflict(newRoom)
		}

		reservation.RoomID = newRoom.ID
		if err := repo.SaveReservation(reservation); err != nil {
			return errors.DB("lỗi khi lưu reservation", err)
		}

		party, err := repo.GetGuestsByIDs(reservation.GuestIDList())
		if err != nil {
			return errors.DB("lỗi khi truy vấn khách", err)
		}
		for i := range party {
			g := &party[i]
			if !g.HoldsReservation(reservation.ID) {
				continue
			}
			g.Assign(newRoom.ID, reservation.ID)
			if err := repo.SaveGuest(g); err != nil {
				return errors.DB("lỗi khi lưu khách", err)
			}
		}

		if err := refreshVacancy(repo, oldRoom); err != nil {
			return err
		}
		newRoom.IsAvailable = false
		if err := repo.SaveRoom(newRoom); err != nil {
			return errors.DB("lỗi khi lưu phòng", err)
		}
		result = reservation.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Đã chuyển khách %d từ phòng %d sang phòng %d", guestID, currentRoomID, newRoomID)
	return result, nil
}

// DeleteReservation xóa reservation, gỡ tham chiếu của khách và giải phóng phòng.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		reservation, room, err := loadLocked(repo, id)
		if err != nil {
			return err
		}
		if err := releaseGuests(repo, reservation); err != nil {
			return err
		}
		if err := repo.DeleteReservation(reservation.ID); err != nil {
			return errors.DB("lỗi khi xóa reservation", err)
		}
		return refreshVacancy(repo, room)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *ReservationService) ConfirmReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var result *models.Reservation
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		reservation, err := getReservation(repo, id)
		if err != nil {
			return err
		}
		if err := models.GetReservationState(reservation.Status).Confirm(reservation); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, err.Error(), nil)
		}
		if err := repo.SaveReservation(reservation); err != nil {
			return errors.DB("lỗi khi lưu reservation", err)
		}
		result = reservation.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ReservationService) CancelReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.close(ctx, id, models.ReservationState.Cancel)
}

func (s *ReservationService) CompleteReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.close(ctx, id, models.ReservationState.Complete)
}

// close kết thúc reservation nhưng giữ lại làm lịch sử.
func (s *ReservationService) close(ctx context.Context, id uint, transition func(models.ReservationState, *models.Reservation) error) (*models.Reservation, error) {
	var result *models.Reservation
	err := s.store.Transaction(ctx, func(repo store.Repository) error {
		reservation, room, err := loadLocked(repo, id)
		if err != nil {
			return err
		}
		if err := transition(models.GetReservationState(reservation.Status), reservation); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidState, err.Error(), nil)
		}
		if err := repo.SaveReservation(reservation); err != nil {
			return errors.DB("lỗi khi lưu reservation", err)
		}
		if err := releaseGuests(repo, reservation); err != nil {
			return err
		}
		if err := refreshVacancy(repo, room); err != nil {
			return err
		}
		result = reservation.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("Reservation %d chuyển sang %s", result.ID, result.Status)
	return result, nil
}

// CompleteDueReservations hoàn thành mọi reservation còn mở có ngày trả phòng <= now.
func (s *ReservationService) CompleteDueReservations(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.Repo(ctx).FindReservations(store.ReservationFilter{CheckoutUntil: &now})
	if err != nil {
		return 0, errors.DB("lỗi khi truy vấn reservation đến hạn", err)
	}

	completed := 0
	var firstErr error
	for _, r := range due {
		if !r.IsOpen() {
			continue
		}
		if _, err := s.CompleteReservation(ctx, r.ID); err != nil {
			s.logger.Error("Không thể hoàn thành reservation %d: %v", r.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		completed++
	}
	return completed, firstErr
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return getReservation(s.store.Repo(ctx), id)
}

func (s *ReservationService) ListReservations(ctx context.Context, query ReservationQuery) ([]models.Reservation, error) {
	reservations, err := s.store.Repo(ctx).FindReservations(store.ReservationFilter{
		CheckinDate: query.CheckinDate,
		RoomID:      query.RoomID,
	})
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn danh sách reservation", err)
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

func (s *ReservationService) FindByCheckinDate(ctx context.Context, date time.Time) ([]models.Reservation, error) {
	return s.ListReservations(ctx, ReservationQuery{CheckinDate: &date})
}

func (s *ReservationService) ReservationsForRoom(ctx context.Context, roomID uint) ([]models.Reservation, error) {
	repo := s.store.Repo(ctx)
	room, err := repo.GetRoom(roomID)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn phòng", err)
	}
	if room == nil {
		return nil, errors.NotFound("room", roomID)
	}
	return s.ListReservations(ctx, ReservationQuery{RoomID: &roomID})
}

// bindGuests gán khách vào reservation mới, tách họ khỏi reservation cũ.
// Reservation cũ bị rỗng sẽ bị xóa và phòng của nó được giải phóng.
func (s *ReservationService) bindGuests(repo store.Repository, guests []models.Guest, roomID, reservationID uint) error {
	vacated := make(map[uint]bool)
	for i := range guests {
		g := &guests[i]
		if g.ReservationID != nil && *g.ReservationID != reservationID {
			priorRoom, err := s.detach(repo, g.ID, *g.ReservationID)
			if err != nil {
				return err
			}
			if priorRoom != 0 && priorRoom != roomID {
				vacated[priorRoom] = true
			}
		}
		g.Assign(roomID, reservationID)
		if err := repo.SaveGuest(g); err != nil {
			return errors.DB("lỗi khi lưu khách", err)
		}
	}

	ids := make([]uint, 0, len(vacated))
	for id := range vacated {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		room, err := repo.LockRoom(id)
		if err != nil {
			return errors.DB("lỗi khi khóa phòng", err)
		}
		if room == nil {
			continue
		}
		if err := refreshVacancy(repo, room); err != nil {
			return err
		}
	}
	return nil
}

// detach bỏ khách khỏi reservation cũ, trả về id phòng của reservation đó.
func (s *ReservationService) detach(repo store.Repository, guestID, reservationID uint) (uint, error) {
	prior, err := repo.GetReservation(reservationID)
	if err != nil {
		return 0, errors.DB("lỗi khi truy vấn reservation", err)
	}
	if prior == nil {
		return 0, nil
	}

	prior.RemoveGuest(guestID)
	if prior.GuestCount() == 0 {
		if err := repo.DeleteReservation(prior.ID); err != nil {
			return 0, errors.DB("lỗi khi xóa reservation", err)
		}
		s.logger.Debug("Reservation %d bị xóa vì khách %d chuyển sang reservation khác", prior.ID, guestID)
	} else if err := repo.SaveReservation(prior); err != nil {
		return 0, errors.DB("lỗi khi lưu reservation", err)
	}
	return prior.RoomID, nil
}

func getReservation(repo store.Repository, id uint) (*models.Reservation, error) {
	reservation, err := repo.GetReservation(id)
	if err != nil {
		return nil, errors.DB("lỗi khi truy vấn reservation", err)
	}
	if reservation == nil {
		return nil, errors.NotFound("reservation", id)
	}
	return reservation, nil
}

// loadLocked khóa phòng của reservation rồi đọc lại reservation dưới khóa đó.
func loadLocked(repo store.Repository, id uint) (*models.Reservation, *models.Room, error) {
	reservation, err := getReservation(repo, id)
	if err != nil {
		return nil, nil, err
	}
	room, err := repo.LockRoom(reservation.RoomID)
	if err != nil {
		return nil, nil, errors.DB("lỗi khi khóa phòng", err)
	}
	if room == nil {
		return nil, nil, errors.NotFound("room", reservation.RoomID)
	}
	reservation, err = getReservation(repo, id)
	if err != nil {
		return nil, nil, err
	}
	return reservation, room, nil
}

// lockRooms khóa theo thứ tự id tăng dần.
func lockRooms(repo store.Repository, ids ...uint) (map[uint]*models.Room, error) {
	ordered := uniqueIDs(ids)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	rooms := make(map[uint]*models.Room, len(ordered))
	for _, id := range ordered {
		room, err := repo.LockRoom(id)
		if err != nil {
			return nil, errors.DB("lỗi khi khóa phòng", err)
		}
		if room == nil {
			return nil, errors.NotFound("room", id)
		}
		rooms[id] = room
	}
	return rooms, nil
}

func releaseGuests(repo store.Repository, reservation *models.Reservation) error {
	guests, err := repo.GetGuestsByIDs(reservation.GuestIDList())
	if err != nil {
		return errors.DB("lỗi khi truy vấn khách", err)
	}
	for i := range guests {
		g := &guests[i]
		if !g.HoldsReservation(reservation.ID) {
			continue
		}
		g.Release()
		if err := repo.SaveGuest(g); err != nil {
			return errors.DB("lỗi khi lưu khách", err)
		}
	}
	return nil
}

// roomOccupancyWith đếm khách của phòng sau khi thêm newcomers, không đếm trùng
// người đã ở sẵn trong phòng.
func roomOccupancyWith(repo store.Repository, roomID uint, newcomers []models.Guest) (int, error) {
	occupants, err := repo.GuestsInRoom(roomID)
	if err != nil {
		return 0, errors.DB("lỗi khi truy vấn khách trong phòng", err)
	}
	incoming := make(map[uint]bool, len(newcomers))
	for _, g := range newcomers {
		incoming[g.ID] = true
	}
	total := len(newcomers)
	for _, g := range occupants {
		if !incoming[g.ID] {
			total++
		}
	}
	return total, nil
}

// refreshVacancy đánh dấu phòng trống khi không còn khách nào được gán.
func refreshVacancy(repo store.Repository, room *models.Room) error {
	guests, err := repo.GuestsInRoom(room.ID)
	if err != nil {
		return errors.DB("lỗi khi truy vấn khách trong phòng", err)
	}
	if len(guests) > 0 {
		return nil
	}
	room.IsAvailable = true
	if err := repo.SaveRoom(room); err != nil {
		return errors.DB("lỗi khi lưu phòng", err)
	}
	return nil
}

func capacityExceeded(room *models.Room, requested int) error {
	return errors.NewAppError(errors.ErrCodeCapacityExceeded,
		fmt.Sprintf("room %d holds at most %d guests, requested %d", room.RoomNumber, room.MaxNumberOfGuests, requested), nil)
}

func dateConflict(room *models.Room) error {
	return errors.NewAppError(errors.ErrCodeDateConflict,
		fmt.Sprintf("room %d is already booked for an overlapping interval", room.RoomNumber), nil)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
