package messaging

import (
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
)

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Random picks among message variants, seeded from the clock when nil
	Random random.Source
}

type GetRoleDescriptionInput struct {
	Role models.Role
}

type GetRoleDescriptionOutput struct {
	// Title is the role name as shown to players
	Title string

	Description string

	// Faction is "Good" or "Evil"
	Faction string
}

type GetJoinGameMessageInput struct {
	PlayerName string

	// Rejoined is true when an offline player came back to a running game
	Rejoined bool

	// Started is true when the join filled the table
	Started bool
}

type GetJoinGameMessageOutput struct {
	Message string
}

type GetGameStatusMessageInput struct {
	Phase models.GamePhase
}

type GetGameStatusMessageOutput struct {
	Message string
}

type GetMissionResultMessageInput struct {
	// Mission is zero-based
	Mission int

	Succeeded bool
	Fails     int

	// Special is true when the mission tolerated one fail
	Special bool
}

type GetMissionResultMessageOutput struct {
	Title   string
	Message string
}

type GetGameOverMessageInput struct {
	Winner models.Winner
	Reason models.EndReason

	// TargetName is who the assassin picked, when the game reached the finale
	TargetName string
}

type GetGameOverMessageOutput struct {
	Title   string
	Message string
}

type GetErrorMessageInput struct {
	Err error
}

type GetErrorMessageOutput struct {
	Title   string
	Message string
}
