package avalon

import (
	"fmt"

	"github.com/KirkDiggler/avalon/internal/common/uuid"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
	"github.com/stretchr/testify/suite"
)

const testCreatorID = "p0"

type GameTestSuite struct {
	suite.Suite
	seed int64
}

func (s *GameTestSuite) SetupTest() {
	s.seed = 42
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i)
}

// newLobby creates a game with n players seated, p0 being the creator
func (s *GameTestSuite) newLobby(n int) *Game {
	g, err := New(&Config{
		ID:            "session-1",
		CreatorID:     testCreatorID,
		CreatorName:   "Creator",
		Random:        random.New(&random.Config{Seed: s.seed}),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	for i := 1; i < n; i++ {
		s.join(g, i)
	}
	return g
}

func (s *GameTestSuite) join(g *Game, i int) *JoinResult {
	result, err := g.Join(playerID(i), fmt.Sprintf("Player %d", i))
	s.Require().NoError(err)
	return result
}

// newStarted creates and starts a game with n players and the given extra roles
func (s *GameTestSuite) newStarted(n int, roles ...models.Role) *Game {
	g := s.newLobby(n - 1)
	if len(roles) > 0 {
		_, err := g.SetSpecialRoles(testCreatorID, roles)
		s.Require().NoError(err)
	}
	if s.join(g, n-1).Started {
		return g
	}
	s.Require().NoError(g.Start(testCreatorID))
	return g
}

// proposeFirst has the leader propose the first seats of the table
func (s *GameTestSuite) proposeFirst(g *Game) []string {
	st := g.State()
	size := st.TeamSizes[st.Turn]
	team := make([]string, 0, size)
	for _, p := range st.Players[:size] {
		team = append(team, p.ID)
	}
	_, err := g.ProposeTeam(st.LeaderID, team)
	s.Require().NoError(err)
	return team
}

// voteApproval has every player vote, returning the final result
func (s *GameTestSuite) voteApproval(g *Game, votes ...bool) *ApprovalResult {
	players := g.Players()
	s.Require().Len(votes, len(players))

	var result *ApprovalResult
	for i, p := range players {
		r, err := g.CastApprovalVote(p.ID, votes[i])
		s.Require().NoError(err)
		result = r
	}
	return result
}

func (s *GameTestSuite) allYes(g *Game) []bool {
	votes := make([]bool, len(g.Players()))
	for i := range votes {
		votes[i] = true
	}
	return votes
}

// playMission approves a team of the first seats and has it vote fails fail votes
func (s *GameTestSuite) playMission(g *Game, fails int) *MissionResult {
	team := s.proposeFirst(g)
	approval := s.voteApproval(g, s.allYes(g)...)
	s.Require().True(approval.Approved)

	var result *MissionResult
	for i, id := range team {
		r, err := g.CastMissionVote(id, i >= fails)
		s.Require().NoError(err)
		result = r
	}
	s.Require().True(result.Complete)
	return result
}

func (s *GameTestSuite) holder(g *Game, role models.Role) models.Player {
	p, ok := g.State().PlayerWithRole(role)
	s.Require().True(ok, "no player holds %s", role)
	return p
}
