package game

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/awesome-cap/hashmap"
)

var (
	// ErrGameNotFound is returned when a session has no game
	ErrGameNotFound = errors.New("game not found")

	// ErrGameAlreadyExists is returned when a session already has a game
	ErrGameAlreadyExists = errors.New("game already exists for this session")
)

// memoryRepository keeps live games in a concurrent map keyed by session.
// Games carry their own locks.
type memoryRepository struct {
	games *hashmap.HashMap

	// deleteMu serializes removals so a guarded delete cannot drop a game
	// registered after its identity check. Creation never takes it.
	deleteMu sync.Mutex
}

// NewMemory creates an in-process game registry
func NewMemory() *memoryRepository {
	return &memoryRepository{
		games: hashmap.New(),
	}
}

// CreateGame registers a new game under its session ID
func (r *memoryRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if !r.games.SetNX(input.Game.ID(), input.Game) {
		return ErrGameAlreadyExists
	}
	return nil
}

// GetGame retrieves the live game of a session
func (r *memoryRepository) GetGame(ctx context.Context, input *GetGameInput) (*avalon.Game, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	v, ok := r.games.Get(input.SessionID)
	if !ok {
		return nil, ErrGameNotFound
	}
	g, ok := v.(*avalon.Game)
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// DeleteGame removes the game of a session. When input.Game is set the
// session is only freed if it still holds that exact game.
func (r *memoryRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	r.deleteMu.Lock()
	defer r.deleteMu.Unlock()

	if input.Game != nil {
		v, _ := r.games.Get(input.SessionID)
		if current, _ := v.(*avalon.Game); current != input.Game {
			return ErrGameNotFound
		}
	}

	if !r.games.Del(input.SessionID) {
		return ErrGameNotFound
	}
	return nil
}

// ListGames returns every live game ordered by session ID
func (r *memoryRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	games := make([]*avalon.Game, 0)
	r.games.Foreach(func(e *hashmap.Entry) {
		if g, ok := e.Value().(*avalon.Game); ok {
			games = append(games, g)
		}
	})
	sort.Slice(games, func(i, j int) bool {
		return games[i].ID() < games[j].ID()
	})

	return &ListGamesOutput{
		Games: games,
	}, nil
}
