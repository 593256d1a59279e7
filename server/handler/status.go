package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel/arena"
	"github.com/skyduel/skyduel/storage"
)

type StatusResponse struct {
	OK         bool                  `json:"ok"`
	Players    int                   `json:"players"`
	StaleMs    int64                 `json:"staleMs"`
	Correction arena.CorrectionStats `json:"correction"`
	KnownUsers int64                 `json:"knownUsers"`
}

// GetStatus reports room occupancy, session staleness and the correction
// window. The known-user count comes from the stats store and is zero when
// the store is unavailable.
func GetStatus(a *arena.Arena, store storage.StatsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := a.Status(c.Query("room"), time.Now())
		known, err := store.KnownUsers(c.UserContext())
		if err != nil {
			log.Warn().Err(err).Msg("stats store read failed")
		}
		return c.JSON(StatusResponse{
			OK:         true,
			Players:    report.Players,
			StaleMs:    report.StaleMs,
			Correction: report.Correction,
			KnownUsers: known,
		})
	}
}
