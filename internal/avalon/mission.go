package avalon

import "github.com/KirkDiggler/avalon/internal/models"

// MissionResult is what happened after a ballot on a mission
type MissionResult struct {
	// Complete is true when this ballot closed the mission
	Complete bool

	// Mission is the zero-based index of the resolved mission
	Mission int

	Succeeded bool

	// Special is true when the mission tolerated one fail vote
	Special bool

	// Tally counts success (Yes) and fail (No) votes; who voted what stays secret
	Tally Tally

	// Phase is the phase the game moved to
	Phase models.GamePhase

	// LeaderID is the leader for the next proposal
	LeaderID string

	Winner models.Winner
}

// CastMissionVote records a team member's mission vote. The mission resolves
// when the whole team has voted.
func (g *Game) CastMissionVote(playerID string, success bool, opts ...VoteOption) (*MissionResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkBallot(models.GamePhaseQuest, models.VoteKindMission, opts); err != nil {
		return nil, err
	}
	if err := g.round.cast(playerID, success); err != nil {
		return nil, err
	}
	if !g.round.complete() {
		return &MissionResult{}, nil
	}

	tally := g.round.tally()
	g.round = nil

	n := len(g.players)
	result := &MissionResult{
		Complete:  true,
		Mission:   g.turn,
		Succeeded: tally.No <= toleratedFails(n, g.turn),
		Special:   IsSpecialMission(n, g.turn),
		Tally:     tally,
	}

	if result.Succeeded {
		g.missions[g.turn] = models.MissionSucceeded
	} else {
		g.missions[g.turn] = models.MissionFailed
	}
	g.turn++
	g.team = nil
	g.phase = models.GamePhaseBuildTeam
	g.arbitrate()

	result.Phase = g.phase
	result.LeaderID = g.leaderLocked()
	result.Winner = g.winner
	return result, nil
}

// arbitrate decides the winner after every mission and every team decision
func (g *Game) arbitrate() {
	if g.rejectionCount >= MaxRejections {
		g.decide(models.WinnerEvil, models.EndReasonRejections)
		return
	}

	var successes, failures int
	for _, m := range g.missions {
		switch m {
		case models.MissionSucceeded:
			successes++
		case models.MissionFailed:
			failures++
		}
	}

	switch {
	case failures >= majority():
		g.decide(models.WinnerEvil, models.EndReasonMissions)
	case successes >= majority():
		// good only wins if the assassin misses
		g.phase = models.GamePhaseLastChance
	}
}

func (g *Game) decide(w models.Winner, reason models.EndReason) {
	g.winner = w
	g.endReason = reason
	g.round = nil
	g.proposal = nil
}

// AssassinationResult is the final verdict of the assassination finale
type AssassinationResult struct {
	TargetID   string
	TargetRole models.Role
	Winner     models.Winner
}

// AssassinationCandidates returns the good players the assassin can choose from
func (g *Game) AssassinationCandidates() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]string, 0, len(g.players))
	for _, p := range g.players {
		if p.IsGood() {
			out = append(out, p.ID)
		}
	}
	return out
}

// ChooseAssassinationTarget settles a game good won on missions. Naming
// Merlin hands the win to evil.
func (g *Game) ChooseAssassinationTarget(assassinID, targetID string) (*AssassinationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkMutable(); err != nil {
		return nil, err
	}
	if g.phase != models.GamePhaseLastChance {
		return nil, ErrWrongPhase
	}
	if _, assassin := g.findPlayer(assassinID); assassin == nil || assassin.Role != models.RoleAssassin {
		return nil, ErrNotAssassin
	}
	_, target := g.findPlayer(targetID)
	if target == nil {
		return nil, ErrPlayerNotFound
	}
	if !target.IsGood() {
		return nil, ErrInvalidTarget
	}

	g.assassinTarget = targetID
	if target.Role == models.RoleMerlin {
		g.decide(models.WinnerEvil, models.EndReasonAssassination)
	} else {
		g.decide(models.WinnerGood, models.EndReasonAssassination)
	}

	return &AssassinationResult{
		TargetID:   targetID,
		TargetRole: target.Role,
		Winner:     g.winner,
	}, nil
}
