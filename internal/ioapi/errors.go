package ioapi

import (
	"errors"
	"fmt"

	"github.com/dbca-wa/wastd/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gofiber/fiber/v2"
)

// ServerStartError is returned when the server cannot listen.
func ServerStartError(addr string, err error) error {
	msg := "Cannot start API server on <em>%s</em>"
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("listen %s: %w", addr, err),
	}
}

var statuses = map[gn.ErrorCode]int{
	errcode.TransitionNotAllowedError:   fiber.StatusConflict,
	errcode.GateCheckFailedError:        fiber.StatusConflict,
	errcode.ConcurrentModificationError: fiber.StatusConflict,
	errcode.RecordNotFoundError:         fiber.StatusNotFound,
	errcode.UnknownKindError:            fiber.StatusNotFound,
	errcode.InputValidationError:        fiber.StatusBadRequest,
	errcode.RelationsError:              fiber.StatusBadRequest,
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// StatusOf maps an error to an HTTP status code.
func StatusOf(err error) int {
	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		return fErr.Code
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		if st, ok := statuses[gnErr.Code]; ok {
			return st
		}
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	msg := err.Error()
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		msg = gnErr.Err.Error()
	}
	return c.Status(status).JSON(ErrorResponse{Status: status, Error: msg})
}
