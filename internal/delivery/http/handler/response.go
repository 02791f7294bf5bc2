package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a bare acknowledgement
type StatusResponse struct {
	Status string `json:"status"`
}

var errInvalidBody = ErrorResponse{Error: "invalid request body"}

// respondError maps a domain error kind to its status code. Anything else is
// logged and hidden behind a 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(statusFor(err), ErrorResponse{Error: domainErr.Error()})
		return
	}

	middleware.RequestLogger(c, logger).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// idValue is an id sent either as a JSON number or as a numeric string.
type idValue int64

func (v *idValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*v = 0
			return nil
		}
		data = []byte(s)
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", data)
	}
	*v = idValue(id)
	return nil
}

// pathID reads a numeric path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}
