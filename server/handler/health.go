package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthResponse struct {
	Status   string `json:"status"`
	UptimeMs int64  `json:"uptimeMs"`
}

func GetHealth(start time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{
			Status:   "ok",
			UptimeMs: time.Since(start).Milliseconds(),
		})
	}
}
