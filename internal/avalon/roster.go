package avalon

import "github.com/KirkDiggler/avalon/internal/models"

// JoinResult describes a roster change caused by a join
type JoinResult struct {
	// Rejoined is true when an offline player came back to a running game
	Rejoined bool

	// Started is true when the join filled the table and the game started
	Started bool
}

// Join seats a player in the lobby or brings an offline player back
func (g *Game) Join(playerID, playerName string) (*JoinResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkMutable(); err != nil {
		return nil, err
	}

	if _, p := g.findPlayer(playerID); p != nil {
		if p.Online {
			return nil, ErrAlreadyOnline
		}
		p.Online = true
		return &JoinResult{Rejoined: true}, nil
	}

	if !g.phase.IsLobby() {
		return nil, ErrGameInProgress
	}
	if len(g.players) >= MaxPlayers {
		return nil, ErrGameFull
	}

	g.players = append(g.players, &models.Player{
		ID:     playerID,
		Name:   playerName,
		Online: true,
	})

	result := &JoinResult{}
	if len(g.players) == MaxPlayers && checkFeasible(len(g.players), g.specialRoles) == nil {
		g.startLocked()
		result.Started = true
	}
	return result, nil
}

// LeaveResult describes a roster change caused by a leave
type LeaveResult struct {
	// Removed is true when the player was dropped from the lobby rather than marked offline
	Removed bool

	// NewCreatorID is set when the host left the lobby and another player took over
	NewCreatorID string

	// AnyOnline is false once nobody is left online
	AnyOnline bool
}

// Leave removes a player from the lobby, or marks them offline once the game runs
func (g *Game) Leave(playerID string) (*LeaveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkMutable(); err != nil {
		return nil, err
	}

	idx, p := g.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	result := &LeaveResult{}
	if g.phase.IsRunning() {
		if !p.Online {
			return nil, ErrAlreadyOffline
		}
		p.Online = false
	} else {
		g.players = append(g.players[:idx], g.players[idx+1:]...)
		result.Removed = true

		if playerID == g.creatorID && len(g.players) > 0 {
			g.creatorID = g.players[g.random.Intn(len(g.players))].ID
			result.NewCreatorID = g.creatorID
		}
	}

	for _, other := range g.players {
		if other.Online {
			result.AnyOnline = true
			break
		}
	}
	return result, nil
}

// PassCreator hands host privileges to another player
func (g *Game) PassCreator(requesterID, newCreatorID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkMutable(); err != nil {
		return err
	}
	if requesterID != g.creatorID {
		return ErrNotCreator
	}
	if _, p := g.findPlayer(newCreatorID); p == nil {
		return ErrPlayerNotFound
	}
	if newCreatorID == g.creatorID {
		return ErrAlreadyCreator
	}

	g.creatorID = newCreatorID
	return nil
}
