package avalon

import (
	"github.com/KirkDiggler/avalon/internal/models"
)

func (s *GameTestSuite) nextSeat(g *Game, id string) string {
	players := g.Players()
	for i, p := range players {
		if p.ID == id {
			return players[(i+1)%len(players)].ID
		}
	}
	s.FailNow("player not seated", id)
	return ""
}

func (s *GameTestSuite) TestProposeTeam_Validation() {
	g := s.newStarted(5)
	st := g.State()
	players := g.Players()

	notLeader := s.nextSeat(g, st.LeaderID)
	_, err := g.ProposeTeam(notLeader, []string{players[0].ID, players[1].ID})
	s.ErrorIs(err, ErrNotLeader)

	_, err = g.ProposeTeam(st.LeaderID, []string{players[0].ID})
	s.ErrorIs(err, ErrInvalidTeamSize)

	_, err = g.ProposeTeam(st.LeaderID, []string{players[0].ID, players[1].ID, players[2].ID})
	s.ErrorIs(err, ErrInvalidTeamSize)

	_, err = g.ProposeTeam(st.LeaderID, []string{players[0].ID, players[0].ID})
	s.ErrorIs(err, ErrDuplicateMember)

	_, err = g.ProposeTeam(st.LeaderID, []string{players[0].ID, "ghost"})
	s.ErrorIs(err, ErrPlayerNotFound)

	// invalid proposals consume nothing
	after := g.State()
	s.Equal(st.LeaderID, after.LeaderID)
	s.Equal(0, after.RejectionCount)
	s.Nil(after.Round)

	round, err := g.ProposeTeam(st.LeaderID, []string{players[0].ID, players[1].ID})
	s.Require().NoError(err)
	s.NotEmpty(round.ID)
	s.Equal(models.VoteKindApproval, round.Kind)
	s.Len(round.Voters, 5)
	s.Equal(round.Voters, round.Pending)

	_, err = g.ProposeTeam(st.LeaderID, []string{players[0].ID, players[1].ID})
	s.ErrorIs(err, ErrRoundInProgress)
}

func (s *GameTestSuite) TestProposeTeam_WrongPhase() {
	g := s.newLobby(5)
	_, err := g.ProposeTeam(testCreatorID, []string{playerID(1), playerID(2)})
	s.ErrorIs(err, ErrWrongPhase)
}

func (s *GameTestSuite) TestApproval_MajorityApproves() {
	g := s.newStarted(5)
	leader := g.Leader()
	team := s.proposeFirst(g)

	result := s.voteApproval(g, true, true, true, false, false)
	s.True(result.Complete)
	s.True(result.Approved)
	s.Equal(Tally{Yes: 3, No: 2}, result.Tally)
	s.Len(result.Ballots, 5)
	s.Equal(0, result.RejectionCount)
	s.Equal(team, result.Team)
	s.Equal(s.nextSeat(g, leader), result.LeaderID)
	s.Require().NotNil(result.MissionRound)
	s.Equal(models.VoteKindMission, result.MissionRound.Kind)
	s.Equal(team, result.MissionRound.Voters)

	st := g.State()
	s.Equal(models.GamePhaseQuest, st.Phase)
	s.Equal(team, st.Team)
	s.Nil(st.Proposal)
}

func (s *GameTestSuite) TestApproval_MinorityRejects() {
	g := s.newStarted(5)
	leader := g.Leader()
	s.proposeFirst(g)

	result := s.voteApproval(g, true, true, false, false, false)
	s.True(result.Complete)
	s.False(result.Approved)
	s.Equal(1, result.RejectionCount)
	s.Nil(result.MissionRound)
	s.Equal(models.WinnerNone, result.Winner)

	st := g.State()
	s.Equal(models.GamePhaseBuildTeam, st.Phase)
	s.Equal(0, st.Turn)
	s.Equal(s.nextSeat(g, leader), st.LeaderID)
	s.Nil(st.Round)
	s.Empty(st.Team)
}

func (s *GameTestSuite) TestApproval_TieRejects() {
	g := s.newStarted(6)
	s.proposeFirst(g)

	result := s.voteApproval(g, true, true, true, false, false, false)
	s.False(result.Approved)
	s.Equal(1, result.RejectionCount)
}

func (s *GameTestSuite) TestApproval_ApprovalResetsRejections() {
	g := s.newStarted(5)
	for i := 0; i < 3; i++ {
		s.proposeFirst(g)
		s.voteApproval(g, false, false, false, false, false)
	}
	s.Equal(3, g.RejectionCount())

	s.proposeFirst(g)
	result := s.voteApproval(g, s.allYes(g)...)
	s.True(result.Approved)
	s.Equal(0, g.RejectionCount())
}

func (s *GameTestSuite) TestApproval_BallotValidation() {
	g := s.newStarted(5)
	players := g.Players()

	_, err := g.CastApprovalVote(players[0].ID, true)
	s.ErrorIs(err, ErrNoRoundInProgress)

	round, err := g.ProposeTeam(g.Leader(), []string{players[0].ID, players[1].ID})
	s.Require().NoError(err)

	first, err := g.CastApprovalVote(players[0].ID, true)
	s.Require().NoError(err)
	s.False(first.Complete)

	_, err = g.CastApprovalVote(players[0].ID, false)
	s.ErrorIs(err, ErrAlreadyVoted)

	_, err = g.CastApprovalVote("ghost", true)
	s.ErrorIs(err, ErrNotEligible)

	_, err = g.CastApprovalVote(players[1].ID, true, InRound("old-round"))
	s.ErrorIs(err, ErrStaleRound)

	_, err = g.CastMissionVote(players[1].ID, true)
	s.ErrorIs(err, ErrWrongPhase)

	_, err = g.CastApprovalVote(players[1].ID, true, InRound(round.ID))
	s.Require().NoError(err)

	st := g.State()
	s.Require().NotNil(st.Round)
	s.Equal([]string{players[2].ID, players[3].ID, players[4].ID}, st.Round.Pending)
}

func (s *GameTestSuite) TestLeaderRotatesOncePerDecision() {
	g := s.newStarted(7)
	players := g.Players()
	start := g.Leader()

	startIdx := -1
	for i, p := range players {
		if p.ID == start {
			startIdx = i
		}
	}
	s.Require().GreaterOrEqual(startIdx, 0)

	for step := 1; step <= 4; step++ {
		s.proposeFirst(g)

		// mid-round the leader never moves
		_, err := g.CastApprovalVote(players[0].ID, step%2 == 0)
		s.Require().NoError(err)
		s.Equal(players[(startIdx+step-1)%len(players)].ID, g.Leader())

		votes := make([]bool, len(players)-1)
		for i := range votes {
			votes[i] = step%2 == 0
		}
		for i, p := range players[1:] {
			_, err := g.CastApprovalVote(p.ID, votes[i])
			s.Require().NoError(err)
		}
		s.Equal(players[(startIdx+step)%len(players)].ID, g.Leader())

		if g.Phase() == models.GamePhaseQuest {
			for _, id := range g.Team() {
				_, err := g.CastMissionVote(id, true)
				s.Require().NoError(err)
			}
			// resolving a mission does not move the leader
			s.Equal(players[(startIdx+step)%len(players)].ID, g.Leader())
		}
	}
}

func (s *GameTestSuite) TestFiveRejectionsHandEvilTheGame() {
	g := s.newStarted(5)

	var result *ApprovalResult
	for i := 0; i < MaxRejections; i++ {
		s.Equal(models.WinnerNone, g.Winner())
		s.proposeFirst(g)
		result = s.voteApproval(g, false, false, false, false, false)
	}

	s.Equal(MaxRejections, result.RejectionCount)
	s.Equal(models.WinnerEvil, result.Winner)

	st := g.State()
	s.Equal(models.WinnerEvil, st.Winner)
	s.Equal(models.EndReasonRejections, st.EndReason)
	s.Equal(make([]models.MissionOutcome, MissionCount), st.Missions)
	s.Equal(0, st.Turn)

	_, err := g.ProposeTeam(st.LeaderID, st.Team)
	s.ErrorIs(err, ErrGameOver)
	_, err = g.Join("late", "Late")
	s.ErrorIs(err, ErrGameOver)
}
