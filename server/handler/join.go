// Package handler contains the fiber handlers for the duel protocol. Each
// constructor takes its dependencies and returns a route handler; failures
// are surfaced as typed errors for the server's ErrorHandler to render.
package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/skyduel/skyduel/arena"
)

type JoinRequest struct {
	Room string `json:"room"`
	Nick string `json:"nick"`
}

type JoinResponse struct {
	OK      bool   `json:"ok"`
	Sid     string `json:"sid"`
	Room    string `json:"room"`
	Nick    string `json:"nick"`
	Players int    `json:"players"`
}

// PostJoin creates a new session in a room. Fails with room_full at capacity
// and nick_in_use while the nickname's rejoin grace window is open.
func PostJoin(a *arena.Arena) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req JoinRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
		res, err := a.Join(c.UserContext(), req.Room, req.Nick, time.Now())
		if err != nil {
			return err
		}
		return c.JSON(JoinResponse{
			OK:      true,
			Sid:     res.Sid,
			Room:    res.Room,
			Nick:    res.Nick,
			Players: res.Players,
		})
	}
}

// PostRejoin resumes an existing session by nickname without state loss.
func PostRejoin(a *arena.Arena) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req JoinRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
		res, err := a.Rejoin(req.Room, req.Nick, time.Now())
		if err != nil {
			return err
		}
		return c.JSON(JoinResponse{
			OK:      true,
			Sid:     res.Sid,
			Room:    res.Room,
			Nick:    res.Nick,
			Players: res.Players,
		})
	}
}
