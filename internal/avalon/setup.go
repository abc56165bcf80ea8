package avalon

import "github.com/KirkDiggler/avalon/internal/models"

// SetSpecialRoles picks the special roles dealt at start. Merlin and the
// Assassin are always included whatever the request.
func (g *Game) SetSpecialRoles(requesterID string, roles []models.Role) ([]models.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.phase.IsLobby() {
		return nil, ErrWrongPhase
	}
	if requesterID != g.creatorID {
		return nil, ErrNotCreator
	}

	normalized, err := normalizeRoles(roles)
	if err != nil {
		return nil, err
	}
	if err := checkFeasible(MaxPlayers, normalized); err != nil {
		return nil, err
	}

	g.specialRoles = normalized
	return append([]models.Role(nil), normalized...), nil
}

// SpecialRoles returns the roles selected for the game in dealing order
func (g *Game) SpecialRoles() []models.Role {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Role(nil), g.specialRoles...)
}

// Start deals roles and opens the first team building round
func (g *Game) Start(requesterID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.phase.IsLobby() {
		return ErrWrongPhase
	}
	if requesterID != g.creatorID {
		return ErrNotCreator
	}
	if err := checkFeasible(len(g.players), g.specialRoles); err != nil {
		return err
	}

	g.startLocked()
	return nil
}

// startLocked assumes the roster was validated with checkFeasible
func (g *Game) startLocked() {
	n := len(g.players)
	setup := setups[n]

	g.teamSizes = setup.TeamSizes
	g.random.Shuffle(n, func(i, j int) {
		g.players[i], g.players[j] = g.players[j], g.players[i]
	})
	g.assignRoles(setup)

	g.leaderIndex = g.random.Intn(n)
	g.turn = 0
	g.rejectionCount = 0
	g.startedAt = g.clock.Now()
	g.phase = models.GamePhaseBuildTeam
}

// assignRoles deals special roles to the first seats, then fills the good
// quota with servants and the rest with minions
func (g *Game) assignRoles(setup Setup) {
	good, _ := countAlignments(g.specialRoles)
	servants := setup.GoodSeats - good

	seat := 0
	for _, r := range g.specialRoles {
		g.players[seat].Role = r
		seat++
	}
	for i := 0; i < servants; i++ {
		g.players[seat].Role = models.RoleLoyalServant
		seat++
	}
	for ; seat < len(g.players); seat++ {
		g.players[seat].Role = models.RoleMinion
	}
}
