package models

import (
	"errors"

	"hotel/constants"
)

// ReservationState định nghĩa interface cho các trạng thái reservation
type ReservationState interface {
	Confirm(reservation *Reservation) error
	Cancel(reservation *Reservation) error
	Complete(reservation *Reservation) error
	AcceptGuests() error
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(reservation *Reservation) error {
	reservation.Status = constants.ReservationStatusActive
	return nil
}

func (s *PendingState) Cancel(reservation *Reservation) error {
	reservation.Status = constants.ReservationStatusCancelled
	return nil
}

func (s *PendingState) Complete(reservation *Reservation) error {
	reservation.Status = constants.ReservationStatusCompleted
	return nil
}

func (s *PendingState) AcceptGuests() error {
	return nil
}

// ActiveState trạng thái đang ở
type ActiveState struct{}

func (s *ActiveState) Confirm(reservation *Reservation) error {
	return errors.New("reservation already active")
}

func (s *ActiveState) Cancel(reservation *Reservation) error {
	reservation.Status = constants.ReservationStatusCancelled
	return nil
}

func (s *ActiveState) Complete(reservation *Reservation) error {
	reservation.Status = constants.ReservationStatusCompleted
	return nil
}

func (s *ActiveState) AcceptGuests() error {
	return nil
}

// CompletedState trạng thái hoàn thành
type CompletedState struct{}

func (s *CompletedState) Confirm(reservation *Reservation) error {
	return errors.New("reservation already completed")
}

func (s *CompletedState) Cancel(reservation *Reservation) error {
	return errors.New("cannot cancel completed reservation")
}

func (s *CompletedState) Complete(reservation *Reservation) error {
	return errors.New("reservation already completed")
}

func (s *CompletedState) AcceptGuests() error {
	return errors.New("cannot add guests to a completed reservation")
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Confirm(reservation *Reservation) error {
	return errors.New("cannot confirm cancelled reservation")
}

func (s *CancelledState) Cancel(reservation *Reservation) error {
	return errors.New("reservation already cancelled")
}

func (s *CancelledState) Complete(reservation *Reservation) error {
	return errors.New("cannot complete cancelled reservation")
}

func (s *CancelledState) AcceptGuests() error {
	return errors.New("cannot add guests to a cancelled reservation")
}

// GetReservationState trả về state tương ứng với trạng thái reservation.
// Nhãn không xác định được xử lý như Pending.
func GetReservationState(status string) ReservationState {
	switch status {
	case constants.ReservationStatusPending:
		return &PendingState{}
	case constants.ReservationStatusActive:
		return &ActiveState{}
	case constants.ReservationStatusCompleted:
		return &CompletedState{}
	case constants.ReservationStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
