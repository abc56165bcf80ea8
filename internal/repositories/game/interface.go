package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/avalon/internal/repositories/game Repository

import (
	"context"

	"github.com/KirkDiggler/avalon/internal/avalon"
)

// Repository is the registry of live games, at most one per session
type Repository interface {
	// CreateGame registers a new game, failing if the session already has one
	CreateGame(ctx context.Context, input *CreateGameInput) error

	// GetGame retrieves the live game of a session
	GetGame(ctx context.Context, input *GetGameInput) (*avalon.Game, error)

	// DeleteGame removes the game of a session
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// ListGames returns every live game
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)
}
