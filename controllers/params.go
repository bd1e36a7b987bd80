package controllers

import (
	"strconv"

	"hotel/errors"

	"github.com/gin-gonic/gin"
)

// Lấy id dạng uint từ path param
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewAppError(errors.ErrCodeInvalidFormat, name+" không hợp lệ", err)
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, name+" phải là số", err)
	}
	return &v, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, name+" phải là true hoặc false", err)
	}
	return &v, nil
}
