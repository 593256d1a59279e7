package handler

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/skyduel/skyduel/arena"
)

type SendRequest struct {
	Room    string          `json:"room"`
	Sid     string          `json:"sid"`
	Payload json.RawMessage `json:"payload"`
}

type SendResponse struct {
	OK  bool `json:"ok"`
	Ack any  `json:"ack,omitempty"`
}

// PostSend validates and routes one event from a session. The response
// carries an acknowledgement for state reports and pings.
func PostSend(a *arena.Arena) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SendRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
		res, err := a.Send(c.UserContext(), req.Room, req.Sid, req.Payload, time.Now())
		if err != nil {
			return err
		}
		return c.JSON(SendResponse{OK: true, Ack: res.Ack})
	}
}
