package player

import "github.com/KirkDiggler/avalon/internal/models"

type RecordResultInput struct {
	SessionID  string
	PlayerID   string
	PlayerName string
	Alignment  models.Alignment
	Won        bool
}

type GetPlayerInput struct {
	SessionID string
	PlayerID  string
}

type GetLeaderboardInput struct {
	SessionID string

	// Limit caps the number of entries, 0 means everyone
	Limit int
}
