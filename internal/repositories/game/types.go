package game

import "github.com/KirkDiggler/avalon/internal/avalon"

type CreateGameInput struct {
	Game *avalon.Game
}

type GetGameInput struct {
	SessionID string
}

type DeleteGameInput struct {
	SessionID string

	// Game, when set, restricts the delete to this exact game
	Game *avalon.Game
}

type ListGamesInput struct {
}

type ListGamesOutput struct {
	Games []*avalon.Game
}
