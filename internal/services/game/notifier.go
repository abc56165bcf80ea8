package game

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/avalon/internal/services/game Notifier

import (
	"context"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/models"
)

// Notifier tells players about game transitions. Implementations should
// not block on delivery; the service only logs their errors.
type Notifier interface {
	// RoleAssigned privately tells one player their role and what they know
	RoleAssigned(ctx context.Context, input *RoleAssignedInput) error

	// TeamRequested asks the leader to pick a team
	TeamRequested(ctx context.Context, input *TeamRequestedInput) error

	// VoteRequested asks the voters of a round for their ballots
	VoteRequested(ctx context.Context, input *VoteRequestedInput) error

	// AssassinationRequested asks the assassin to name Merlin
	AssassinationRequested(ctx context.Context, input *AssassinationRequestedInput) error

	// GameEnded announces the winner and reveals every role
	GameEnded(ctx context.Context, input *GameEndedInput) error
}

type RoleAssignedInput struct {
	State     *avalon.State
	Knowledge *avalon.Knowledge
}

type TeamRequestedInput struct {
	State *avalon.State
}

type VoteRequestedInput struct {
	State *avalon.State
	Round *avalon.RoundInfo
}

type AssassinationRequestedInput struct {
	State      *avalon.State
	AssassinID string

	// Candidates are the good players the assassin may name
	Candidates []string
}

type GameEndedInput struct {
	State  *avalon.State
	Record *models.GameRecord
}
