package avalon

import "errors"

// GameError is a custom error type for rule violations
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig         GameError = "config cannot be nil"
	ErrEmptyGameID       GameError = "game ID cannot be empty"
	ErrEmptyCreatorID    GameError = "creator ID cannot be empty"
	ErrNilRandom         GameError = "random source cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
	ErrWrongPhase        GameError = "action not allowed in the current phase"
	ErrGameOver          GameError = "game has already been decided"
	ErrNotCreator        GameError = "only the game creator can do that"
	ErrAlreadyCreator    GameError = "player is already the game creator"
	ErrNotLeader         GameError = "only the current leader can propose a team"
	ErrInvalidTeamSize   GameError = "team has the wrong number of players for this mission"
	ErrDuplicateMember   GameError = "team lists the same player twice"
	ErrRoundInProgress   GameError = "a vote is already in progress"
	ErrNoRoundInProgress GameError = "no vote is in progress"
	ErrStaleRound        GameError = "vote belongs to a round that is no longer open"
	ErrNotEligible       GameError = "player is not allowed to vote in this round"
	ErrAlreadyVoted      GameError = "player has already voted in this round"
	ErrGameFull          GameError = "game is at maximum capacity"
	ErrGameInProgress    GameError = "game is already running"
	ErrAlreadyOnline     GameError = "player is already in the game"
	ErrAlreadyOffline    GameError = "player has already left the game"
	ErrNotEnoughPlayers  GameError = "not enough players for the selected roles"
	ErrTooManyPlayers    GameError = "too many players"
	ErrInvalidRole       GameError = "role cannot be selected as a special role"
	ErrRolesInfeasible   GameError = "selected roles do not fit the good and evil seats"
	ErrNotAssassin       GameError = "only the assassin can choose a target"
	ErrInvalidTarget     GameError = "target must be a good player"
	ErrPlayerNotFound    GameError = "player not in game"
)

// ErrorKind classifies engine errors for the caller
type ErrorKind int

const (
	// KindUnknown is any error the engine did not produce
	KindUnknown ErrorKind = iota

	// KindPrecondition is a request that does not fit the current game state
	KindPrecondition

	// KindConfiguration is a role selection that cannot be dealt
	KindConfiguration

	// KindNotFound is a reference to a player outside the roster
	KindNotFound
)

// Kind returns the class of an engine error
func Kind(err error) ErrorKind {
	var ge GameError
	if !errors.As(err, &ge) {
		return KindUnknown
	}

	switch ge {
	case ErrPlayerNotFound:
		return KindNotFound
	case ErrInvalidRole, ErrRolesInfeasible:
		return KindConfiguration
	case ErrNilConfig, ErrEmptyGameID, ErrEmptyCreatorID, ErrNilRandom, ErrNilUUIDGenerator:
		return KindUnknown
	default:
		return KindPrecondition
	}
}
