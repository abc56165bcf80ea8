package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/avalon/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/avalon/internal/models"
)

// Repository defines the interface for player statistics persistence
type Repository interface {
	// RecordResult adds one finished game to a player's record in a session
	RecordResult(ctx context.Context, input *RecordResultInput) error

	// GetPlayer retrieves a player's record in a session
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.PlayerStats, error)

	// GetLeaderboard ranks the players of a session by wins
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*models.Leaderboard, error)
}
