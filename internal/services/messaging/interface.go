package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRoleDescription returns the card text of a role
	GetRoleDescription(ctx context.Context, input *GetRoleDescriptionInput) (*GetRoleDescriptionOutput, error)

	// GetJoinGameMessage returns a message for when a player joins a game
	GetJoinGameMessage(ctx context.Context, input *GetJoinGameMessageInput) (*GetJoinGameMessageOutput, error)

	// GetGameStatusMessage returns a flavor line for the current phase
	GetGameStatusMessage(ctx context.Context, input *GetGameStatusMessageInput) (*GetGameStatusMessageOutput, error)

	// GetMissionResultMessage announces how a mission went
	GetMissionResultMessage(ctx context.Context, input *GetMissionResultMessageInput) (*GetMissionResultMessageOutput, error)

	// GetGameOverMessage announces the winner
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
