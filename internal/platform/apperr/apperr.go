// Package apperr defines the error taxonomy shared by all domain services:
// not-found, conflict (uniqueness violations), validation failures, and the
// billing engine's insufficient-stock rejection. Handlers map these to HTTP
// status codes with HTTP().
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError reports a uniqueness constraint violation.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("duplicate %s", e.Resource)
}

// ValidationError reports invalid caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InsufficientStockError aborts a billing run when a prescription line
// requires more of a medicine than is on hand.
type InsufficientStockError struct {
	Medicine  string
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for medicine: %s. Available: %d, Required: %d",
		e.Medicine, e.Available, e.Required)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInsufficientStock reports whether err is (or wraps) an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var stock *InsufficientStockError
	return errors.As(err, &stock)
}

// HTTP translates a service error into an echo HTTP error. Unclassified
// errors surface as 500 with a generic message so internal detail never
// leaks to callers.
func HTTP(err error) *echo.HTTPError {
	var (
		nf    *NotFoundError
		conf  *ConflictError
		val   *ValidationError
		stock *InsufficientStockError
	)
	switch {
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	case errors.As(err, &conf):
		return echo.NewHTTPError(http.StatusConflict, conf.Error())
	case errors.As(err, &val):
		return echo.NewHTTPError(http.StatusBadRequest, val.Error())
	case errors.As(err, &stock):
		return echo.NewHTTPError(http.StatusBadRequest, stock.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
