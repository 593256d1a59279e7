package arena

import "net/http"

// RejectError is a structured request failure with a stable wire tag and an
// HTTP status class. A rejected request never affects other sessions or
// rooms.
type RejectError interface {
	error
	Tag() string
	GetStatusCode() int
}

type rejectError struct {
	tag    string
	status int
}

func (e *rejectError) Error() string {
	return http.StatusText(e.status) + " - " + e.tag
}
func (e *rejectError) Tag() string        { return e.tag }
func (e *rejectError) GetStatusCode() int { return e.status }

var (
	ErrRoomFull           = &rejectError{"room_full", http.StatusConflict}
	ErrNickInUse          = &rejectError{"nick_in_use", http.StatusConflict}
	ErrSessionNotFound    = &rejectError{"session_not_found", http.StatusNotFound}
	ErrSessionExpired     = &rejectError{"session_expired", http.StatusNotFound}
	ErrInvalidPayload     = &rejectError{"invalid_payload", http.StatusUnprocessableEntity}
	ErrInvalidShotOrigin  = &rejectError{"invalid_shot_origin", http.StatusUnprocessableEntity}
	ErrInvalidHitTarget   = &rejectError{"invalid_hit_target", http.StatusUnprocessableEntity}
	ErrInvalidHitDistance = &rejectError{"invalid_hit_distance", http.StatusUnprocessableEntity}
	ErrInvalidChat        = &rejectError{"invalid_chat", http.StatusUnprocessableEntity}
	ErrShotRateLimited    = &rejectError{"shot_rate_limited", http.StatusTooManyRequests}
	ErrChatRateLimited    = &rejectError{"chat_rate_limited", http.StatusTooManyRequests}
)
