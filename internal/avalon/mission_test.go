package avalon

import (
	"github.com/KirkDiggler/avalon/internal/models"
)

func (s *GameTestSuite) TestMission_SingleFailSinksOrdinaryMission() {
	g := s.newStarted(5)
	s.playMission(g, 0)

	// second mission for five players takes three
	result := s.playMission(g, 1)
	s.False(result.Succeeded)
	s.False(result.Special)
	s.Equal(1, result.Mission)
	s.Equal(Tally{Yes: 2, No: 1}, result.Tally)
	s.Equal(models.GamePhaseBuildTeam, result.Phase)

	st := g.State()
	s.Equal(2, st.Turn)
	s.Equal([]models.MissionOutcome{
		models.MissionSucceeded,
		models.MissionFailed,
		models.MissionPending,
		models.MissionPending,
		models.MissionPending,
	}, st.Missions)
	s.Empty(st.Team)
	s.Nil(st.Round)
}

func (s *GameTestSuite) TestMission_OnlyTeamVotesOnce() {
	g := s.newStarted(5)
	team := s.proposeFirst(g)
	s.voteApproval(g, s.allYes(g)...)

	outsider := g.Players()[len(g.Players())-1].ID
	_, err := g.CastMissionVote(outsider, false)
	s.ErrorIs(err, ErrNotEligible)

	first, err := g.CastMissionVote(team[0], true)
	s.Require().NoError(err)
	s.False(first.Complete)

	_, err = g.CastMissionVote(team[0], false)
	s.ErrorIs(err, ErrAlreadyVoted)

	_, err = g.CastApprovalVote(team[1], true)
	s.ErrorIs(err, ErrWrongPhase)

	last, err := g.CastMissionVote(team[1], true)
	s.Require().NoError(err)
	s.True(last.Complete)
	s.True(last.Succeeded)
	s.Equal(1, g.Turn())
}

// reachSpecialMission plays succeed, fail, succeed so the fourth mission is next
func (s *GameTestSuite) reachSpecialMission(n int) *Game {
	g := s.newStarted(n)
	s.True(s.playMission(g, 0).Succeeded)
	s.False(s.playMission(g, 1).Succeeded)
	s.True(s.playMission(g, 0).Succeeded)
	s.Require().Equal(3, g.Turn())
	return g
}

func (s *GameTestSuite) TestMission_SpecialRoundToleratesOneFail() {
	g := s.reachSpecialMission(7)

	result := s.playMission(g, 1)
	s.True(result.Special)
	s.True(result.Succeeded)
	s.Equal(models.MissionSucceeded, g.Missions()[3])
	s.Equal(models.GamePhaseLastChance, result.Phase)
	s.Equal(models.WinnerNone, result.Winner)
}

func (s *GameTestSuite) TestMission_SpecialRoundFailsOnTwo() {
	g := s.reachSpecialMission(8)

	result := s.playMission(g, 2)
	s.True(result.Special)
	s.False(result.Succeeded)
	s.Equal(models.GamePhaseBuildTeam, result.Phase)
	s.Equal(4, g.Turn())
}

func (s *GameTestSuite) TestMission_FourthMissionNotSpecialBelowSeven() {
	g := s.reachSpecialMission(6)

	result := s.playMission(g, 1)
	s.False(result.Special)
	s.False(result.Succeeded)
}

func (s *GameTestSuite) TestMission_ThreeFailuresEndTheGame() {
	g := s.newStarted(5)
	s.playMission(g, 1)
	s.playMission(g, 0)
	s.playMission(g, 1)
	s.Equal(models.WinnerNone, g.Winner())

	result := s.playMission(g, 2)
	s.False(result.Succeeded)
	s.Equal(models.WinnerEvil, result.Winner)

	st := g.State()
	s.Equal(models.EndReasonMissions, st.EndReason)
	s.NotEqual(models.GamePhaseLastChance, st.Phase)

	_, err := g.ChooseAssassinationTarget(s.holder(g, models.RoleAssassin).ID, s.holder(g, models.RoleMerlin).ID)
	s.ErrorIs(err, ErrGameOver)
}

func (s *GameTestSuite) goodMajority(n int) *Game {
	g := s.newStarted(n)
	for i := 0; i < 3; i++ {
		s.playMission(g, 0)
	}
	s.Require().Equal(models.GamePhaseLastChance, g.Phase())
	s.Require().Equal(models.WinnerNone, g.Winner())
	return g
}

func (s *GameTestSuite) TestAssassination_HittingMerlinFlipsTheGame() {
	g := s.goodMajority(5)
	assassin := s.holder(g, models.RoleAssassin)
	merlin := s.holder(g, models.RoleMerlin)

	result, err := g.ChooseAssassinationTarget(assassin.ID, merlin.ID)
	s.Require().NoError(err)
	s.Equal(models.WinnerEvil, result.Winner)
	s.Equal(models.RoleMerlin, result.TargetRole)

	st := g.State()
	s.Equal(models.WinnerEvil, st.Winner)
	s.Equal(models.EndReasonAssassination, st.EndReason)
	s.Equal(merlin.ID, st.AssassinTargetID)

	_, err = g.ChooseAssassinationTarget(assassin.ID, merlin.ID)
	s.ErrorIs(err, ErrGameOver)
}

func (s *GameTestSuite) TestAssassination_MissingMerlinConfirmsGood() {
	g := s.goodMajority(5)
	assassin := s.holder(g, models.RoleAssassin)
	servant := s.holder(g, models.RoleLoyalServant)

	result, err := g.ChooseAssassinationTarget(assassin.ID, servant.ID)
	s.Require().NoError(err)
	s.Equal(models.WinnerGood, result.Winner)
	s.Equal(models.WinnerGood, g.Winner())
}

func (s *GameTestSuite) TestAssassination_Validation() {
	g := s.newStarted(5)
	assassin := s.holder(g, models.RoleAssassin)
	merlin := s.holder(g, models.RoleMerlin)

	_, err := g.ChooseAssassinationTarget(assassin.ID, merlin.ID)
	s.ErrorIs(err, ErrWrongPhase)

	for i := 0; i < 3; i++ {
		s.playMission(g, 0)
	}

	_, err = g.ChooseAssassinationTarget(merlin.ID, merlin.ID)
	s.ErrorIs(err, ErrNotAssassin)

	_, err = g.ChooseAssassinationTarget(assassin.ID, assassin.ID)
	s.ErrorIs(err, ErrInvalidTarget)

	_, err = g.ChooseAssassinationTarget(assassin.ID, "ghost")
	s.ErrorIs(err, ErrPlayerNotFound)

	candidates := g.AssassinationCandidates()
	s.Len(candidates, 3)
	s.Contains(candidates, merlin.ID)
	s.NotContains(candidates, assassin.ID)
	s.Equal(models.WinnerNone, g.Winner())
}
