package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound      GameError = "no game is running in this channel"
	ErrGameAlreadyExists GameError = "a game already exists for this channel"
	ErrEmptySessionID    GameError = "session ID cannot be empty"
	ErrEmptyPlayerID     GameError = "player ID cannot be empty"
	ErrEmptyRecordID     GameError = "record ID cannot be empty"
	ErrRecordNotFound    GameError = "no finished game with that ID in this channel"
	ErrNoPlayerRecord    GameError = "no finished games for that player in this channel"
	ErrNilInput          GameError = "input cannot be nil"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilGameRepo       GameError = "game repository cannot be nil"
	ErrNilPlayerRepo     GameError = "player repository cannot be nil"
	ErrNilHistoryRepo    GameError = "history repository cannot be nil"
	ErrNilNotifier       GameError = "notifier cannot be nil"
	ErrNilRandom         GameError = "random source cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
)
