package validator

import (
	"fmt"
	"strings"
	"time"

	"hotel/constants"
	"hotel/errors"
	"hotel/models"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// ValidateRoom validate thông tin phòng
func ValidateRoom(room *models.Room) error {
	return validateStruct(room)
}

// ValidateGuest validate thông tin khách
func ValidateGuest(guest *models.Guest) error {
	return validateStruct(guest)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.NewAppError(errors.ErrCodeValidation, strings.Join(msgs, "; "), nil)
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// ParseDate parse ngày dạng yyyy-mm-dd
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.NewAppError(errors.ErrCodeRequiredField, field+" không được để trống", nil)
	}
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, field+" phải có định dạng yyyy-mm-dd", err)
	}
	return t, nil
}

// ValidateInterval: ngày nhận phòng phải trước ngày trả phòng.
func ValidateInterval(checkin, checkout time.Time) error {
	if !checkin.Before(checkout) {
		return errors.NewAppError(errors.ErrCodeInvalidInterval, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}
	return nil
}
