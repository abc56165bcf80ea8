package avalon

import "github.com/KirkDiggler/avalon/internal/models"

// ProposeTeam opens an approval vote for the leader's team
func (g *Game) ProposeTeam(leaderID string, playerIDs []string) (*RoundInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkMutable(); err != nil {
		return nil, err
	}
	if g.phase != models.GamePhaseBuildTeam {
		return nil, ErrWrongPhase
	}
	if g.round != nil {
		return nil, ErrRoundInProgress
	}
	if leaderID != g.leaderLocked() {
		return nil, ErrNotLeader
	}
	if len(playerIDs) != g.teamSizes[g.turn] {
		return nil, ErrInvalidTeamSize
	}

	seen := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		if _, p := g.findPlayer(id); p == nil {
			return nil, ErrPlayerNotFound
		}
		if seen[id] {
			return nil, ErrDuplicateMember
		}
		seen[id] = true
	}

	g.proposal = cloneIDs(playerIDs)
	g.round = newRound(g.ids.NewUUID(), models.VoteKindApproval, g.playerIDs())
	return g.round.info(), nil
}

// ApprovalResult is what happened after a ballot on a proposed team
type ApprovalResult struct {
	// Complete is true when this ballot closed the round
	Complete bool

	// The fields below are only set when Complete is true

	Approved bool
	Tally    Tally

	// Ballots holds every player's vote; team votes are public
	Ballots map[string]bool

	// Team is the approved team
	Team []string

	RejectionCount int

	// LeaderID is the leader for the next proposal
	LeaderID string

	// MissionRound is the vote opened for the approved team
	MissionRound *RoundInfo

	Winner models.Winner
}

// CastApprovalVote records a player's vote on the proposed team. The round
// closes when every player has voted.
func (g *Game) CastApprovalVote(playerID string, approve bool, opts ...VoteOption) (*ApprovalResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkBallot(models.GamePhaseBuildTeam, models.VoteKindApproval, opts); err != nil {
		return nil, err
	}
	if err := g.round.cast(playerID, approve); err != nil {
		return nil, err
	}
	if !g.round.complete() {
		return &ApprovalResult{}, nil
	}

	tally := g.round.tally()
	ballots := make(map[string]bool, len(g.round.votes))
	for id, v := range g.round.votes {
		ballots[id] = v
	}
	g.round = nil

	result := &ApprovalResult{
		Complete: true,
		Approved: 2*tally.Yes > tally.Total(),
		Tally:    tally,
		Ballots:  ballots,
	}

	g.leaderIndex = (g.leaderIndex + 1) % len(g.players)
	if result.Approved {
		g.rejectionCount = 0
		g.team = g.proposal
		g.phase = models.GamePhaseQuest
		g.round = newRound(g.ids.NewUUID(), models.VoteKindMission, g.team)
		result.Team = cloneIDs(g.team)
		result.MissionRound = g.round.info()
	} else {
		g.rejectionCount++
	}
	g.proposal = nil
	g.arbitrate()

	result.RejectionCount = g.rejectionCount
	result.LeaderID = g.leaderLocked()
	result.Winner = g.winner
	return result, nil
}

// checkBallot validates the phase and open round before a ballot is cast
func (g *Game) checkBallot(phase models.GamePhase, kind models.VoteKind, opts []VoteOption) error {
	if err := g.checkMutable(); err != nil {
		return err
	}
	if g.phase != phase {
		return ErrWrongPhase
	}
	if g.round == nil || g.round.kind != kind {
		return ErrNoRoundInProgress
	}
	if o := applyVoteOptions(opts); o.roundID != "" && o.roundID != g.round.id {
		return ErrStaleRound
	}
	return nil
}
