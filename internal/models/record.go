package models

import (
	"time"
)

// EndReason records how a game was decided
type EndReason string

const (
	EndReasonMissions      EndReason = "missions"
	EndReasonRejections    EndReason = "rejections"
	EndReasonAssassination EndReason = "assassination"
)

// RecordedPlayer is a player as it appeared at the end of a game
type RecordedPlayer struct {
	ID   string
	Name string
	Role Role
}

// GameRecord is the archived result of a finished game
type GameRecord struct {
	// ID is the unique identifier for the record
	ID string

	// SessionID is the group or channel the game was played in
	SessionID string

	// Winner is the faction that won
	Winner Winner

	// Reason is how the game was decided
	Reason EndReason

	// Missions holds every mission outcome in play order
	Missions []MissionOutcome

	// AssassinTargetID is the player the assassin picked, if the game reached the finale
	AssassinTargetID string

	// Players is the final roster with roles revealed
	Players []RecordedPlayer

	// StartedAt is when roles were dealt
	StartedAt time.Time

	// EndedAt is when the winner was decided
	EndedAt time.Time
}

// PlayerStats is a player's record across finished games
type PlayerStats struct {
	// PlayerID is the chat platform user ID
	PlayerID string

	// PlayerName is the last display name seen for the player
	PlayerName string

	GamesPlayed int
	GoodGames   int
	EvilGames   int
	GoodWins    int
	EvilWins    int
}

// Wins returns the total number of games won
func (p *PlayerStats) Wins() int {
	return p.GoodWins + p.EvilWins
}

// Leaderboard ranks players of a session by wins
type Leaderboard struct {
	// SessionID is the group or channel the leaderboard belongs to
	SessionID string

	// Entries is sorted by wins, highest first
	Entries []*PlayerStats
}
