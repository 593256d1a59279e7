package handler

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/skyduel/skyduel/arena"
)

type PollResponse struct {
	OK     bool              `json:"ok"`
	Events []json.RawMessage `json:"events"`
}

// GetPoll drains the caller's event queue, oldest first, up to the fixed
// batch size. It always returns immediately; clients re-poll on a short
// interval.
func GetPoll(a *arena.Arena) fiber.Handler {
	return func(c *fiber.Ctx) error {
		drained, err := a.Poll(c.Query("room"), c.Query("sid"), time.Now())
		if err != nil {
			return err
		}
		evs := make([]json.RawMessage, len(drained))
		for i, bz := range drained {
			evs[i] = json.RawMessage(bz)
		}
		return c.JSON(PollResponse{OK: true, Events: evs})
	}
}
