package game

import (
	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/common/clock"
	"github.com/KirkDiggler/avalon/internal/common/uuid"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
	gameRepo "github.com/KirkDiggler/avalon/internal/repositories/game"
	historyRepo "github.com/KirkDiggler/avalon/internal/repositories/history"
	playerRepo "github.com/KirkDiggler/avalon/internal/repositories/player"
	"github.com/charmbracelet/log"
)

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	GameRepo    gameRepo.Repository
	PlayerRepo  playerRepo.Repository
	HistoryRepo historyRepo.Repository

	// Notifier delivers private and public game prompts
	Notifier Notifier

	// Service dependencies
	Random        random.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// NewRandom builds the private source each game deals with. Defaults to
	// a math/rand source seeded from Random.
	NewRandom func() random.Source

	// Logger defaults to log.Default()
	Logger *log.Logger
}

// CreateGameInput contains parameters for creating a new game
type CreateGameInput struct {
	// SessionID is the chat channel the game is played in
	SessionID string

	// CreatorID is the chat user ID of the player creating the game
	CreatorID string

	// CreatorName is the display name of the player creating the game
	CreatorName string
}

// CreateGameOutput contains the result of creating a new game
type CreateGameOutput struct {
	State *avalon.State
}

// JoinGameInput contains parameters for joining a game
type JoinGameInput struct {
	SessionID  string
	PlayerID   string
	PlayerName string
}

// JoinGameOutput contains the result of joining a game
type JoinGameOutput struct {
	// Rejoined is true when an offline player came back
	Rejoined bool

	// Started is true when this join filled the table
	Started bool

	State *avalon.State
}

// LeaveGameInput contains parameters for leaving a game
type LeaveGameInput struct {
	SessionID string
	PlayerID  string
}

// LeaveGameOutput contains the result of leaving a game
type LeaveGameOutput struct {
	// Removed is true when the player was dropped from the lobby
	Removed bool

	// NewCreatorID is set when host privileges moved to another player
	NewCreatorID string

	// GameDeleted is true when nobody was left online and the game was closed
	GameDeleted bool

	State *avalon.State
}

type PassCreatorInput struct {
	SessionID    string
	RequesterID  string
	NewCreatorID string
}

type PassCreatorOutput struct {
	State *avalon.State
}

type SetSpecialRolesInput struct {
	SessionID   string
	RequesterID string
	Roles       []models.Role
}

type SetSpecialRolesOutput struct {
	// Roles is the stored selection in dealing order, mandatory roles included
	Roles []models.Role
}

type StartGameInput struct {
	SessionID   string
	RequesterID string
}

type StartGameOutput struct {
	State *avalon.State
}

type ProposeTeamInput struct {
	SessionID string
	LeaderID  string
	PlayerIDs []string
}

type ProposeTeamOutput struct {
	Round *avalon.RoundInfo
	State *avalon.State
}

type CastApprovalVoteInput struct {
	SessionID string
	PlayerID  string

	// RoundID is the round the ballot was issued for, empty to skip the check
	RoundID string

	Approve bool
}

type CastApprovalVoteOutput struct {
	Result *avalon.ApprovalResult
	State  *avalon.State
}

type CastMissionVoteInput struct {
	SessionID string
	PlayerID  string

	// RoundID is the round the ballot was issued for, empty to skip the check
	RoundID string

	Success bool
}

type CastMissionVoteOutput struct {
	Result *avalon.MissionResult
	State  *avalon.State
}

type ChooseAssassinationTargetInput struct {
	SessionID  string
	AssassinID string
	TargetID   string
}

type ChooseAssassinationTargetOutput struct {
	Result *avalon.AssassinationResult
	State  *avalon.State
}

type DeleteGameInput struct {
	SessionID   string
	RequesterID string
}

type DeleteGameOutput struct {
}

type GetGameInput struct {
	SessionID string
}

type GetGameOutput struct {
	State *avalon.State
}

type GetKnowledgeInput struct {
	SessionID string
	PlayerID  string
}

type GetKnowledgeOutput struct {
	Knowledge *avalon.Knowledge
	State     *avalon.State
}

type GetLeaderboardInput struct {
	SessionID string

	// Limit caps the number of entries, 0 means everyone
	Limit int
}

type GetLeaderboardOutput struct {
	Leaderboard *models.Leaderboard
}

type GetHistoryInput struct {
	SessionID string

	// Limit caps the number of records, 0 means all of them
	Limit int
}

type GetHistoryOutput struct {
	Records []*models.GameRecord
}

type GetRecordInput struct {
	SessionID string
	RecordID  string
}

type GetRecordOutput struct {
	Record *models.GameRecord
}

type GetPlayerStatsInput struct {
	SessionID string
	PlayerID  string
}

type GetPlayerStatsOutput struct {
	Stats *models.PlayerStats
}
