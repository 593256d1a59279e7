package storage

// userKey holds a hash of {joins, wins, losses, lastRoom} for one nickname.
func userKey(nick string) string {
	return "SKYDUEL:USER:" + nick
}

// roomKey holds a hash of {joins, matches, updatedAt} for one room.
func roomKey(room string) string {
	return "SKYDUEL:ROOM:" + room
}

// usersIndexKey is the set of every nickname that has ever joined.
func usersIndexKey() string {
	return "SKYDUEL:USERS"
}

const (
	fieldJoins     = "joins"
	fieldWins      = "wins"
	fieldLosses    = "losses"
	fieldLastRoom  = "lastRoom"
	fieldMatches   = "matches"
	fieldUpdatedAt = "updatedAt"
)
