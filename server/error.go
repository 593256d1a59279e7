package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel/arena"
)

// ErrorResponse is the body of every failed request: a stable machine tag
// with the status class carrying the rest.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

var ErrorHandler = func(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	var rej arena.RejectError
	if errors.As(err, &rej) {
		return c.Status(rej.GetStatusCode()).JSON(ErrorResponse{Error: rej.Tag()})
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		switch e.Code {
		case fiber.StatusRequestEntityTooLarge:
			return c.Status(e.Code).JSON(ErrorResponse{Error: "payload_too_large"})
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			return c.Status(e.Code).JSON(ErrorResponse{Error: "not_found"})
		default:
			return c.Status(e.Code).JSON(ErrorResponse{Error: "bad_request"})
		}
	}

	// Internal faults degrade to bad_request; a single request failure must
	// never look fatal to the caller.
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "bad_request"})
}
