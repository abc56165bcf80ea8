package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/avalon/internal/services/game Service

import "context"

// Service defines the interface for game operations
type Service interface {
	// CreateGame opens a lobby in a channel with the creator seated
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// JoinGame seats a player in the lobby or brings an offline player back
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// LeaveGame removes a player from the lobby or marks them offline
	LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error)

	// PassCreator hands host privileges to another player
	PassCreator(ctx context.Context, input *PassCreatorInput) (*PassCreatorOutput, error)

	// SetSpecialRoles picks the special roles dealt at start
	SetSpecialRoles(ctx context.Context, input *SetSpecialRolesInput) (*SetSpecialRolesOutput, error)

	// StartGame deals roles and asks the first leader for a team
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// ProposeTeam puts the leader's team to an approval vote
	ProposeTeam(ctx context.Context, input *ProposeTeamInput) (*ProposeTeamOutput, error)

	// CastApprovalVote records a vote on the proposed team
	CastApprovalVote(ctx context.Context, input *CastApprovalVoteInput) (*CastApprovalVoteOutput, error)

	// CastMissionVote records a team member's mission card
	CastMissionVote(ctx context.Context, input *CastMissionVoteInput) (*CastMissionVoteOutput, error)

	// ChooseAssassinationTarget settles the game with the assassin's guess
	ChooseAssassinationTarget(ctx context.Context, input *ChooseAssassinationTargetInput) (*ChooseAssassinationTargetOutput, error)

	// DeleteGame abandons the game of a channel
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// GetGame returns a snapshot of the game of a channel
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetKnowledge returns what a player learned when roles were dealt
	GetKnowledge(ctx context.Context, input *GetKnowledgeInput) (*GetKnowledgeOutput, error)

	// GetLeaderboard ranks the players of a channel by wins
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetHistory lists the finished games of a channel
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// GetRecord returns one finished game of a channel
	GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error)

	// GetPlayerStats returns a player's record in a channel
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error)
}
