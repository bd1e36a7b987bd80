package response

import (
	"net/http"

	"hotel/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

type ResponseTotal struct {
	Code  int         `json:"code"`
	Mess  string      `json:"mess"`
	Data  interface{} `json:"data,omitempty"`
	Total int         `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Tạo thành công",
		Data: data,
	})
}

func SuccessWithTotal(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, ResponseTotal{
		Code:  1,
		Mess:  "Thành công",
		Total: total,
		Data:  data,
	})
}

// Error trả về response lỗi với status tùy ý
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError chuyển AppError sang HTTP status tương ứng; lỗi khác là 500.
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}

	status := StatusOf(appErr.Code)
	if status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	Error(c, status, appErr.Message)
}

// StatusOf ánh xạ mã lỗi sang HTTP status
func StatusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRoomUnavailable, errors.ErrCodeDateConflict:
		return http.StatusConflict
	case errors.ErrCodeCapacityExceeded, errors.ErrCodeInvalidState,
		errors.ErrCodeNoReservation, errors.ErrCodeRoomMismatch:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInterval:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Lỗi server",
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Không tìm thấy",
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}
