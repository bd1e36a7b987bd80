package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel/models"
)

// MemoryStore giữ toàn bộ dữ liệu trong bộ nhớ. Mỗi transaction làm việc trên
// một bản sao và chỉ thay thế dữ liệu gốc khi fn trả về nil; các transaction
// chạy tuần tự dưới một mutex.
type MemoryStore struct {
	mu   sync.Mutex
	data *memData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemData()}
}

func (s *MemoryStore) Repo(ctx context.Context) Repository {
	return &autoRepo{s: s}
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.data.clone()
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = tx
	return nil
}

type memData struct {
	rooms        map[uint]models.Room
	guests       map[uint]models.Guest
	reservations map[uint]models.Reservation

	nextRoomID        uint
	nextGuestID       uint
	nextReservationID uint
}

func newMemData() *memData {
	return &memData{
		rooms:        make(map[uint]models.Room),
		guests:       make(map[uint]models.Guest),
		reservations: make(map[uint]models.Reservation),
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		rooms:             make(map[uint]models.Room, len(d.rooms)),
		guests:            make(map[uint]models.Guest, len(d.guests)),
		reservations:      make(map[uint]models.Reservation, len(d.reservations)),
		nextRoomID:        d.nextRoomID,
		nextGuestID:       d.nextGuestID,
		nextReservationID: d.nextReservationID,
	}
	for id, r := range d.rooms {
		c.rooms[id] = r
	}
	for id, g := range d.guests {
		c.guests[id] = copyGuest(g)
	}
	for id, r := range d.reservations {
		c.reservations[id] = *r.Clone()
	}
	return c
}

func copyGuest(g models.Guest) models.Guest {
	if g.RoomID != nil {
		v := *g.RoomID
		g.RoomID = &v
	}
	if g.ReservationID != nil {
		v := *g.ReservationID
		g.ReservationID = &v
	}
	return g
}

func (d *memData) GetRoom(id uint) (*models.Room, error) {
	r, ok := d.rooms[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (d *memData) LockRoom(id uint) (*models.Room, error) {
	return d.GetRoom(id)
}

func (d *memData) FindRooms(filter RoomFilter) ([]models.Room, error) {
	var out []models.Room
	for _, r := range d.rooms {
		if filter.RoomNumber != nil && r.RoomNumber != *filter.RoomNumber {
			continue
		}
		if filter.IsAvailable != nil && r.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.RoomType != "" && r.RoomType != filter.RoomType {
			continue
		}
		if filter.MaxNumberOfGuests != nil && r.MaxNumberOfGuests != *filter.MaxNumberOfGuests {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (d *memData) SaveRoom(room *models.Room) error {
	for id, other := range d.rooms {
		if id != room.ID && other.RoomNumber == room.RoomNumber {
			return fmt.Errorf("duplicate room number %d", room.RoomNumber)
		}
	}
	now := time.Now()
	if room.ID == 0 {
		d.nextRoomID++
		room.ID = d.nextRoomID
		room.CreatedAt = now
	}
	room.UpdatedAt = now
	d.rooms[room.ID] = *room
	return nil
}

func (d *memData) DeleteRoom(id uint) error {
	delete(d.rooms, id)
	return nil
}

func (d *memData) GetGuest(id uint) (*models.Guest, error) {
	g, ok := d.guests[id]
	if !ok {
		return nil, nil
	}
	g = copyGuest(g)
	return &g, nil
}

func (d *memData) GetGuestsByIDs(ids []uint) ([]models.Guest, error) {
	seen := make(map[uint]bool, len(ids))
	var out []models.Guest
	for _, id := range ids {
		g, ok := d.guests[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, copyGuest(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *memData) FindGuests(filter GuestFilter) ([]models.Guest, error) {
	return d.guestsWhere(func(g models.Guest) bool {
		if filter.LastName != "" && !strings.EqualFold(g.LastName, filter.LastName) {
			return false
		}
		if filter.PassportNumber != "" && g.PassportNumber != filter.PassportNumber {
			return false
		}
		return true
	}), nil
}

func (d *memData) GuestsInRoom(roomID uint) ([]models.Guest, error) {
	return d.guestsWhere(func(g models.Guest) bool {
		return g.RoomID != nil && *g.RoomID == roomID
	}), nil
}

func (d *memData) guestsWhere(keep func(models.Guest) bool) []models.Guest {
	var out []models.Guest
	for _, g := range d.guests {
		if keep(g) {
			out = append(out, copyGuest(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *memData) SaveGuest(guest *models.Guest) error {
	now := time.Now()
	if guest.ID == 0 {
		d.nextGuestID++
		guest.ID = d.nextGuestID
		guest.CreatedAt = now
	}
	guest.UpdatedAt = now
	d.guests[guest.ID] = copyGuest(*guest)
	return nil
}

func (d *memData) DeleteGuest(id uint) error {
	delete(d.guests, id)
	return nil
}

func (d *memData) GetReservation(id uint) (*models.Reservation, error) {
	r, ok := d.reservations[id]
	if !ok {
		return nil, nil
	}
	return r.Clone(), nil
}

func (d *memData) ReservationsForRoom(roomID uint) ([]models.Reservation, error) {
	return d.FindReservations(ReservationFilter{RoomID: &roomID})
}

func (d *memData) FindReservations(filter ReservationFilter) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range d.reservations {
		if filter.CheckinDate != nil && !r.CheckinDate.Equal(*filter.CheckinDate) {
			continue
		}
		if filter.RoomID != nil && r.RoomID != *filter.RoomID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsString(filter.Statuses, r.Status) {
			continue
		}
		if filter.CheckoutUntil != nil && r.CheckoutDate.After(*filter.CheckoutUntil) {
			continue
		}
		out = append(out, *r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckinDate.Equal(out[j].CheckinDate) {
			return out[i].CheckinDate.Before(out[j].CheckinDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (d *memData) SaveReservation(reservation *models.Reservation) error {
	now := time.Now()
	if reservation.ID == 0 {
		d.nextReservationID++
		reservation.ID = d.nextReservationID
		reservation.CreatedAt = now
	}
	reservation.UpdatedAt = now
	d.reservations[reservation.ID] = *reservation.Clone()
	return nil
}

func (d *memData) DeleteReservation(id uint) error {
	delete(d.reservations, id)
	return nil
}

// autoRepo serves Repo(ctx): every call runs alone under the store mutex and
// writes land immediately.
type autoRepo struct {
	s *MemoryStore
}

func (r *autoRepo) do(fn func(d *memData) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.data)
}

func (r *autoRepo) GetRoom(id uint) (room *models.Room, err error) {
	err = r.do(func(d *memData) error { room, err = d.GetRoom(id); return err })
	return room, err
}

func (r *autoRepo) LockRoom(id uint) (*models.Room, error) {
	return r.GetRoom(id)
}

func (r *autoRepo) FindRooms(filter RoomFilter) (rooms []models.Room, err error) {
	err = r.do(func(d *memData) error { rooms, err = d.FindRooms(filter); return err })
	return rooms, err
}

func (r *autoRepo) SaveRoom(room *models.Room) error {
	return r.do(func(d *memData) error { return d.SaveRoom(room) })
}

func (r *autoRepo) DeleteRoom(id uint) error {
	return r.do(func(d *memData) error { return d.DeleteRoom(id) })
}

func (r *autoRepo) GetGuest(id uint) (guest *models.Guest, err error) {
	err = r.do(func(d *memData) error { guest, err = d.GetGuest(id); return err })
	return guest, err
}

func (r *autoRepo) GetGuestsByIDs(ids []uint) (guests []models.Guest, err error) {
	err = r.do(func(d *memData) error { guests, err = d.GetGuestsByIDs(ids); return err })
	return guests, err
}

func (r *autoRepo) FindGuests(filter GuestFilter) (guests []models.Guest, err error) {
	err = r.do(func(d *memData) error { guests, err = d.FindGuests(filter); return err })
	return guests, err
}

func (r *autoRepo) GuestsInRoom(roomID uint) (guests []models.Guest, err error) {
	err = r.do(func(d *memData) error { guests, err = d.GuestsInRoom(roomID); return err })
	return guests, err
}

func (r *autoRepo) SaveGuest(guest *models.Guest) error {
	return r.do(func(d *memData) error { return d.SaveGuest(guest) })
}

func (r *autoRepo) DeleteGuest(id uint) error {
	return r.do(func(d *memData) error { return d.DeleteGuest(id) })
}

func (r *autoRepo) GetReservation(id uint) (res *models.Reservation, err error) {
	err = r.do(func(d *memData) error { res, err = d.GetReservation(id); return err })
	return res, err
}

func (r *autoRepo) ReservationsForRoom(roomID uint) (list []models.Reservation, err error) {
	err = r.do(func(d *memData) error { list, err = d.ReservationsForRoom(roomID); return err })
	return list, err
}

func (r *autoRepo) FindReservations(filter ReservationFilter) (list []models.Reservation, err error) {
	err = r.do(func(d *memData) error { list, err = d.FindReservations(filter); return err })
	return list, err
}

func (r *autoRepo) SaveReservation(reservation *models.Reservation) error {
	return r.do(func(d *memData) error { return d.SaveReservation(reservation) })
}

func (r *autoRepo) DeleteReservation(id uint) error {
	return r.do(func(d *memData) error { return d.DeleteReservation(id) })
}

var (
	_ Store      = (*MemoryStore)(nil)
	_ Repository = (*memData)(nil)
	_ Repository = (*autoRepo)(nil)
)
