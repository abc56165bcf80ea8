package avalon

import "github.com/KirkDiggler/avalon/internal/models"

// Revelation says what the players in Knowledge.Visible are
type Revelation string

const (
	// RevelationNone means the role learns nothing at night
	RevelationNone Revelation = ""

	// RevelationEvil means the visible players are evil (Merlin's view)
	RevelationEvil Revelation = "evil"

	// RevelationTeammates means the visible players are fellow minions
	RevelationTeammates Revelation = "teammates"

	// RevelationMerlinOrMorgana means one visible player is Merlin, the other may be Morgana
	RevelationMerlinOrMorgana Revelation = "merlin_or_morgana"
)

// Knowledge is what a player learns when roles are dealt
type Knowledge struct {
	PlayerID string
	Role     models.Role

	// Visible is the players revealed to this player, in seating order
	Visible []string

	Reveals Revelation

	// Hidden is the roles in play that stay concealed from this player
	Hidden []models.Role
}

// Knowledge returns the night information for one player
func (g *Game) Knowledge(playerID string) (*Knowledge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.phase.IsRunning() {
		return nil, ErrWrongPhase
	}
	_, p := g.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	k := &Knowledge{PlayerID: p.ID, Role: p.Role}
	switch {
	case p.Role == models.RoleMerlin:
		k.Reveals = RevelationEvil
		k.Visible = g.idsWhere(func(o *models.Player) bool {
			return o.IsEvil() && o.Role != models.RoleMordred
		})
		k.Hidden = g.rolesInPlay(models.RoleMordred)
	case p.Role == models.RolePercival:
		k.Reveals = RevelationMerlinOrMorgana
		k.Visible = g.idsWhere(func(o *models.Player) bool {
			return o.Role == models.RoleMerlin || o.Role == models.RoleMorgana
		})
	case p.IsEvil() && p.Role != models.RoleOberon:
		k.Reveals = RevelationTeammates
		k.Visible = g.idsWhere(func(o *models.Player) bool {
			return o.ID != p.ID && o.IsEvil() && o.Role != models.RoleOberon
		})
		k.Hidden = g.rolesInPlay(models.RoleOberon)
	}
	return k, nil
}

func (g *Game) idsWhere(match func(*models.Player) bool) []string {
	var out []string
	for _, p := range g.players {
		if match(p) {
			out = append(out, p.ID)
		}
	}
	return out
}

func (g *Game) rolesInPlay(roles ...models.Role) []models.Role {
	var out []models.Role
	for _, r := range roles {
		for _, p := range g.players {
			if p.Role == r {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
