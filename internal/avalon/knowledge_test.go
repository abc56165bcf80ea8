package avalon

import (
	"github.com/KirkDiggler/avalon/internal/models"
)

func (s *GameTestSuite) TestKnowledge() {
	g := s.newStarted(10, models.RolePercival, models.RoleMorgana, models.RoleMordred, models.RoleOberon)

	merlin := s.holder(g, models.RoleMerlin)
	percival := s.holder(g, models.RolePercival)
	assassin := s.holder(g, models.RoleAssassin)
	morgana := s.holder(g, models.RoleMorgana)
	mordred := s.holder(g, models.RoleMordred)
	oberon := s.holder(g, models.RoleOberon)
	servant := s.holder(g, models.RoleLoyalServant)

	k, err := g.Knowledge(merlin.ID)
	s.Require().NoError(err)
	s.Equal(RevelationEvil, k.Reveals)
	s.ElementsMatch([]string{assassin.ID, morgana.ID, oberon.ID}, k.Visible)
	s.Equal([]models.Role{models.RoleMordred}, k.Hidden)

	k, err = g.Knowledge(percival.ID)
	s.Require().NoError(err)
	s.Equal(RevelationMerlinOrMorgana, k.Reveals)
	s.ElementsMatch([]string{merlin.ID, morgana.ID}, k.Visible)

	k, err = g.Knowledge(mordred.ID)
	s.Require().NoError(err)
	s.Equal(RevelationTeammates, k.Reveals)
	s.ElementsMatch([]string{assassin.ID, morgana.ID}, k.Visible)
	s.Equal([]models.Role{models.RoleOberon}, k.Hidden)

	k, err = g.Knowledge(oberon.ID)
	s.Require().NoError(err)
	s.Equal(RevelationNone, k.Reveals)
	s.Empty(k.Visible)

	k, err = g.Knowledge(servant.ID)
	s.Require().NoError(err)
	s.Equal(RevelationNone, k.Reveals)
	s.Empty(k.Visible)

	_, err = g.Knowledge("ghost")
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *GameTestSuite) TestKnowledge_LobbyHasNone() {
	g := s.newLobby(5)
	_, err := g.Knowledge(testCreatorID)
	s.ErrorIs(err, ErrWrongPhase)
}
