package game_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/avalon/internal/avalon"
	clockMocks "github.com/KirkDiggler/avalon/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/avalon/internal/common/uuid/mocks"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
	gameRepo "github.com/KirkDiggler/avalon/internal/repositories/game"
	gameMocks "github.com/KirkDiggler/avalon/internal/repositories/game/mocks"
	historyRepo "github.com/KirkDiggler/avalon/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/avalon/internal/repositories/history/mocks"
	playerRepo "github.com/KirkDiggler/avalon/internal/repositories/player"
	playerMocks "github.com/KirkDiggler/avalon/internal/repositories/player/mocks"
	"github.com/KirkDiggler/avalon/internal/services/game"
	"github.com/KirkDiggler/avalon/internal/services/game/mocks"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockPlayerRepo  *playerMocks.MockRepository
	mockHistoryRepo *historyMocks.MockRepository
	mockNotifier    *mocks.MockNotifier
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	registry        gameRepo.Repository
	gameService     game.Service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testSessionID string
	testCreatorID string
	uuidCounter   int
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPlayerRepo = playerMocks.NewMockRepository(s.mockCtrl)
	s.mockHistoryRepo = historyMocks.NewMockRepository(s.mockCtrl)
	s.mockNotifier = mocks.NewMockNotifier(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.registry = gameRepo.NewMemory()

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.testCreatorID = "player-0"
	s.uuidCounter = 0

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.uuidCounter++
		return fmt.Sprintf("uuid-%d", s.uuidCounter)
	}).AnyTimes()

	svc, err := game.New(&game.Config{
		GameRepo:      s.registry,
		PlayerRepo:    s.mockPlayerRepo,
		HistoryRepo:   s.mockHistoryRepo,
		Notifier:      s.mockNotifier,
		Random:        random.New(&random.Config{Seed: 42}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        log.New(io.Discard),
	})
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) playerID(i int) string {
	return fmt.Sprintf("player-%d", i)
}

// createLobby opens a game and seats n players, the creator included
func (s *GameServiceTestSuite) createLobby(n int) {
	_, err := s.gameService.CreateGame(s.ctx, &game.CreateGameInput{
		SessionID:   s.testSessionID,
		CreatorID:   s.testCreatorID,
		CreatorName: "Player 0",
	})
	s.Require().NoError(err)

	for i := 1; i < n; i++ {
		_, err := s.gameService.JoinGame(s.ctx, &game.JoinGameInput{
			SessionID:  s.testSessionID,
			PlayerID:   s.playerID(i),
			PlayerName: fmt.Sprintf("Player %d", i),
		})
		s.Require().NoError(err)
	}
}

func (s *GameServiceTestSuite) startGame(n int) *avalon.State {
	s.createLobby(n)

	s.mockNotifier.EXPECT().RoleAssigned(gomock.Any(), gomock.Any()).Return(nil).Times(n)
	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.gameService.StartGame(s.ctx, &game.StartGameInput{
		SessionID:   s.testSessionID,
		RequesterID: s.testCreatorID,
	})
	s.Require().NoError(err)
	return out.State
}

// proposeTeam proposes the first seats of the table as the team
func (s *GameServiceTestSuite) proposeTeam(state *avalon.State) *avalon.RoundInfo {
	size := state.TeamSizes[state.Turn]
	team := make([]string, 0, size)
	for _, p := range state.Players[:size] {
		team = append(team, p.ID)
	}

	s.mockNotifier.EXPECT().VoteRequested(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.gameService.ProposeTeam(s.ctx, &game.ProposeTeamInput{
		SessionID: s.testSessionID,
		LeaderID:  state.LeaderID,
		PlayerIDs: team,
	})
	s.Require().NoError(err)
	return out.Round
}

func (s *GameServiceTestSuite) voteApproval(round *avalon.RoundInfo, approve bool) *game.CastApprovalVoteOutput {
	var out *game.CastApprovalVoteOutput
	for _, id := range round.Voters {
		var err error
		out, err = s.gameService.CastApprovalVote(s.ctx, &game.CastApprovalVoteInput{
			SessionID: s.testSessionID,
			PlayerID:  id,
			RoundID:   round.ID,
			Approve:   approve,
		})
		s.Require().NoError(err)
	}
	return out
}

// approveTeam proposes a team, approves it and returns the mission round
func (s *GameServiceTestSuite) approveTeam(state *avalon.State) *avalon.RoundInfo {
	round := s.proposeTeam(state)

	s.mockNotifier.EXPECT().VoteRequested(gomock.Any(), gomock.Any()).Return(nil)

	out := s.voteApproval(round, true)
	s.Require().True(out.Result.Approved)
	return out.Result.MissionRound
}

// voteMission plays the mission with the first fails voters sabotaging it
func (s *GameServiceTestSuite) voteMission(round *avalon.RoundInfo, fails int) *game.CastMissionVoteOutput {
	var out *game.CastMissionVoteOutput
	for i, id := range round.Voters {
		var err error
		out, err = s.gameService.CastMissionVote(s.ctx, &game.CastMissionVoteInput{
			SessionID: s.testSessionID,
			PlayerID:  id,
			RoundID:   round.ID,
			Success:   i >= fails,
		})
		s.Require().NoError(err)
	}
	return out
}

// winThreeMissions plays successful missions until the assassin is asked to act
func (s *GameServiceTestSuite) winThreeMissions(state *avalon.State) (*avalon.State, *game.AssassinationRequestedInput) {
	var requested *game.AssassinationRequestedInput
	for i := 0; i < 3; i++ {
		round := s.approveTeam(state)
		if i < 2 {
			s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)
		} else {
			s.mockNotifier.EXPECT().AssassinationRequested(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, input *game.AssassinationRequestedInput) error {
					requested = input
					return nil
				})
		}
		state = s.voteMission(round, 0).State
	}
	return state, requested
}

// expectGameOver sets up the archive and scoring calls of a finished game
func (s *GameServiceTestSuite) expectGameOver(players int) (*models.GameRecord, map[string]*playerRepo.RecordResultInput, **game.GameEndedInput) {
	record := &models.GameRecord{}
	results := make(map[string]*playerRepo.RecordResultInput)
	ended := new(*game.GameEndedInput)

	s.mockHistoryRepo.EXPECT().AddRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.AddRecordInput) error {
			*record = *input.Record
			return nil
		})
	s.mockPlayerRepo.EXPECT().RecordResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *playerRepo.RecordResultInput) error {
			results[input.PlayerID] = input
			return nil
		}).Times(players)
	s.mockNotifier.EXPECT().GameEnded(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.GameEndedInput) error {
			*ended = input
			return nil
		})

	return record, results, ended
}

func (s *GameServiceTestSuite) assertGameRemoved() {
	_, err := s.gameService.GetGame(s.ctx, &game.GetGameInput{SessionID: s.testSessionID})
	s.ErrorIs(err, game.ErrGameNotFound)
}

// New Tests

func (s *GameServiceTestSuite) TestNew_Validation() {
	valid := func() *game.Config {
		return &game.Config{
			GameRepo:      s.registry,
			PlayerRepo:    s.mockPlayerRepo,
			HistoryRepo:   s.mockHistoryRepo,
			Notifier:      s.mockNotifier,
			Random:        random.New(&random.Config{Seed: 1}),
			Clock:         s.mockClock,
			UUIDGenerator: s.mockUUID,
		}
	}

	testCases := []struct {
		name     string
		mutate   func(*game.Config)
		expected error
	}{
		{"nil game repo", func(c *game.Config) { c.GameRepo = nil }, game.ErrNilGameRepo},
		{"nil player repo", func(c *game.Config) { c.PlayerRepo = nil }, game.ErrNilPlayerRepo},
		{"nil history repo", func(c *game.Config) { c.HistoryRepo = nil }, game.ErrNilHistoryRepo},
		{"nil notifier", func(c *game.Config) { c.Notifier = nil }, game.ErrNilNotifier},
		{"nil random", func(c *game.Config) { c.Random = nil }, game.ErrNilRandom},
		{"nil clock", func(c *game.Config) { c.Clock = nil }, game.ErrNilClock},
		{"nil uuid", func(c *game.Config) { c.UUIDGenerator = nil }, game.ErrNilUUIDGenerator},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := valid()
			tc.mutate(cfg)
			_, err := game.New(cfg)
			s.ErrorIs(err, tc.expected)
		})
	}

	_, err := game.New(nil)
	s.ErrorIs(err, game.ErrNilConfig)

	svc, err := game.New(valid())
	s.Require().NoError(err)
	s.NotNil(svc)
}

// CreateGame Tests

func (s *GameServiceTestSuite) TestCreateGame_HappyPath() {
	out, err := s.gameService.CreateGame(s.ctx, &game.CreateGameInput{
		SessionID:   s.testSessionID,
		CreatorID:   s.testCreatorID,
		CreatorName: "Player 0",
	})
	s.Require().NoError(err)

	s.Equal(s.testSessionID, out.State.ID)
	s.Equal(s.testCreatorID, out.State.CreatorID)
	s.Equal(models.GamePhaseLobby, out.State.Phase)
	s.Require().Len(out.State.Players, 1)
	s.Equal("Player 0", out.State.Players[0].Name)
}

func (s *GameServiceTestSuite) TestCreateGame_AlreadyExists() {
	s.createLobby(1)

	_, err := s.gameService.CreateGame(s.ctx, &game.CreateGameInput{
		SessionID: s.testSessionID,
		CreatorID: "someone-else",
	})
	s.ErrorIs(err, game.ErrGameAlreadyExists)
}

func (s *GameServiceTestSuite) TestCreateGame_InvalidInput() {
	_, err := s.gameService.CreateGame(s.ctx, nil)
	s.ErrorIs(err, game.ErrNilInput)

	_, err = s.gameService.CreateGame(s.ctx, &game.CreateGameInput{CreatorID: s.testCreatorID})
	s.ErrorIs(err, game.ErrEmptySessionID)

	_, err = s.gameService.CreateGame(s.ctx, &game.CreateGameInput{SessionID: s.testSessionID})
	s.ErrorIs(err, game.ErrEmptyPlayerID)
}

// JoinGame Tests

func (s *GameServiceTestSuite) TestJoinGame_GameNotFound() {
	_, err := s.gameService.JoinGame(s.ctx, &game.JoinGameInput{
		SessionID: s.testSessionID,
		PlayerID:  s.playerID(1),
	})
	s.ErrorIs(err, game.ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestJoinGame_AlreadyOnline() {
	s.createLobby(2)

	_, err := s.gameService.JoinGame(s.ctx, &game.JoinGameInput{
		SessionID: s.testSessionID,
		PlayerID:  s.playerID(1),
	})
	s.ErrorIs(err, avalon.ErrAlreadyOnline)
	s.Equal(avalon.KindPrecondition, avalon.Kind(err))
}

func (s *GameServiceTestSuite) TestJoinGame_FillingTheTableStartsTheGame() {
	s.createLobby(avalon.MaxPlayers - 1)

	s.mockNotifier.EXPECT().RoleAssigned(gomock.Any(), gomock.Any()).Return(nil).Times(avalon.MaxPlayers)
	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.gameService.JoinGame(s.ctx, &game.JoinGameInput{
		SessionID: s.testSessionID,
		PlayerID:  s.playerID(avalon.MaxPlayers - 1),
	})
	s.Require().NoError(err)
	s.True(out.Started)
	s.Equal(models.GamePhaseBuildTeam, out.State.Phase)
}

func (s *GameServiceTestSuite) TestJoinGame_RejoinAfterLeaving() {
	state := s.startGame(5)
	id := state.Players[1].ID

	out, err := s.gameService.LeaveGame(s.ctx, &game.LeaveGameInput{
		SessionID: s.testSessionID,
		PlayerID:  id,
	})
	s.Require().NoError(err)
	s.False(out.Removed)
	s.False(out.GameDeleted)

	joined, err := s.gameService.JoinGame(s.ctx, &game.JoinGameInput{
		SessionID: s.testSessionID,
		PlayerID:  id,
	})
	s.Require().NoError(err)
	s.True(joined.Rejoined)
}

// LeaveGame Tests

func (s *GameServiceTestSuite) TestLeaveGame_HostHandsOver() {
	s.createLobby(2)

	out, err := s.gameService.LeaveGame(s.ctx, &game.LeaveGameInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testCreatorID,
	})
	s.Require().NoError(err)
	s.True(out.Removed)
	s.Equal(s.playerID(1), out.NewCreatorID)
	s.Equal(s.playerID(1), out.State.CreatorID)
	s.False(out.GameDeleted)
}

func (s *GameServiceTestSuite) TestLeaveGame_LastPlayerClosesTheGame() {
	s.createLobby(1)

	out, err := s.gameService.LeaveGame(s.ctx, &game.LeaveGameInput{
		SessionID: s.testSessionID,
		PlayerID:  s.testCreatorID,
	})
	s.Require().NoError(err)
	s.True(out.GameDeleted)
	s.assertGameRemoved()
}

func (s *GameServiceTestSuite) TestLeaveGame_UnknownPlayer() {
	s.createLobby(1)

	_, err := s.gameService.LeaveGame(s.ctx, &game.LeaveGameInput{
		SessionID: s.testSessionID,
		PlayerID:  "stranger",
	})
	s.ErrorIs(err, avalon.ErrPlayerNotFound)
	s.Equal(avalon.KindNotFound, avalon.Kind(err))
}

// Lobby configuration Tests

func (s *GameServiceTestSuite) TestPassCreator() {
	s.createLobby(3)

	out, err := s.gameService.PassCreator(s.ctx, &game.PassCreatorInput{
		SessionID:    s.testSessionID,
		RequesterID:  s.testCreatorID,
		NewCreatorID: s.playerID(2),
	})
	s.Require().NoError(err)
	s.Equal(s.playerID(2), out.State.CreatorID)

	_, err = s.gameService.PassCreator(s.ctx, &game.PassCreatorInput{
		SessionID:    s.testSessionID,
		RequesterID:  s.testCreatorID,
		NewCreatorID: s.playerID(1),
	})
	s.ErrorIs(err, avalon.ErrNotCreator)
}

func (s *GameServiceTestSuite) TestSetSpecialRoles() {
	s.createLobby(1)

	out, err := s.gameService.SetSpecialRoles(s.ctx, &game.SetSpecialRolesInput{
		SessionID:   s.testSessionID,
		RequesterID: s.testCreatorID,
		Roles:       []models.Role{models.RoleMorgana, models.RolePercival},
	})
	s.Require().NoError(err)
	s.Equal([]models.Role{
		models.RoleMerlin,
		models.RolePercival,
		models.RoleAssassin,
		models.RoleMorgana,
	}, out.Roles)

	_, err = s.gameService.SetSpecialRoles(s.ctx, &game.SetSpecialRolesInput{
		SessionID:   s.testSessionID,
		RequesterID: s.testCreatorID,
		Roles:       []models.Role{models.RoleLoyalServant},
	})
	s.ErrorIs(err, avalon.ErrInvalidRole)
}

// StartGame Tests

func (s *GameServiceTestSuite) TestStartGame_TellsEveryPlayerTheirRole() {
	s.createLobby(5)

	assigned := make(map[string]*game.RoleAssignedInput)
	s.mockNotifier.EXPECT().RoleAssigned(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.RoleAssignedInput) error {
			assigned[input.Knowledge.PlayerID] = input
			return nil
		}).Times(5)

	var teamRequest *game.TeamRequestedInput
	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.TeamRequestedInput) error {
			teamRequest = input
			return nil
		})

	out, err := s.gameService.StartGame(s.ctx, &game.StartGameInput{
		SessionID:   s.testSessionID,
		RequesterID: s.testCreatorID,
	})
	s.Require().NoError(err)

	s.Require().Len(assigned, 5)
	for _, p := range out.State.Players {
		input, ok := assigned[p.ID]
		s.Require().True(ok, "player %s was not told their role", p.ID)
		s.Equal(p.Role, input.Knowledge.Role)
	}

	merlin, ok := out.State.PlayerWithRole(models.RoleMerlin)
	s.Require().True(ok)
	s.Len(assigned[merlin.ID].Knowledge.Visible, 2)

	s.Require().NotNil(teamRequest)
	s.Equal(out.State.LeaderID, teamRequest.State.LeaderID)
}

func (s *GameServiceTestSuite) TestStartGame_NotEnoughPlayers() {
	s.createLobby(4)

	_, err := s.gameService.StartGame(s.ctx, &game.StartGameInput{
		SessionID:   s.testSessionID,
		RequesterID: s.testCreatorID,
	})
	s.ErrorIs(err, avalon.ErrNotEnoughPlayers)
}

func (s *GameServiceTestSuite) TestStartGame_NotCreator() {
	s.createLobby(5)

	_, err := s.gameService.StartGame(s.ctx, &game.StartGameInput{
		SessionID:   s.testSessionID,
		RequesterID: s.playerID(3),
	})
	s.ErrorIs(err, avalon.ErrNotCreator)
}

// Voting Tests

func (s *GameServiceTestSuite) TestProposeTeam_AsksEveryoneToVote() {
	state := s.startGame(5)

	var requested *game.VoteRequestedInput
	s.mockNotifier.EXPECT().VoteRequested(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.VoteRequestedInput) error {
			requested = input
			return nil
		})

	out, err := s.gameService.ProposeTeam(s.ctx, &game.ProposeTeamInput{
		SessionID: s.testSessionID,
		LeaderID:  state.LeaderID,
		PlayerIDs: []string{state.Players[0].ID, state.Players[1].ID},
	})
	s.Require().NoError(err)

	s.Require().NotNil(requested)
	s.Equal(out.Round.ID, requested.Round.ID)
	s.Equal(models.VoteKindApproval, requested.Round.Kind)
	s.Len(requested.Round.Voters, 5)
}

func (s *GameServiceTestSuite) TestProposeTeam_WrongSize() {
	state := s.startGame(5)

	_, err := s.gameService.ProposeTeam(s.ctx, &game.ProposeTeamInput{
		SessionID: s.testSessionID,
		LeaderID:  state.LeaderID,
		PlayerIDs: []string{state.Players[0].ID},
	})
	s.ErrorIs(err, avalon.ErrInvalidTeamSize)
}

func (s *GameServiceTestSuite) TestCastApprovalVote_ApprovedOpensMission() {
	state := s.startGame(5)
	round := s.proposeTeam(state)

	var requested *game.VoteRequestedInput
	s.mockNotifier.EXPECT().VoteRequested(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.VoteRequestedInput) error {
			requested = input
			return nil
		})

	out := s.voteApproval(round, true)
	s.True(out.Result.Complete)
	s.True(out.Result.Approved)
	s.Equal(models.GamePhaseQuest, out.State.Phase)

	s.Require().NotNil(requested)
	s.Equal(models.VoteKindMission, requested.Round.Kind)
	s.ElementsMatch(out.Result.Team, requested.Round.Voters)
}

func (s *GameServiceTestSuite) TestCastApprovalVote_RejectedAsksForNewTeam() {
	state := s.startGame(5)
	round := s.proposeTeam(state)

	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)

	out := s.voteApproval(round, false)
	s.True(out.Result.Complete)
	s.False(out.Result.Approved)
	s.Equal(1, out.State.RejectionCount)
	s.NotEqual(state.LeaderID, out.State.LeaderID)
}

func (s *GameServiceTestSuite) TestCastApprovalVote_PartialVoteNotifiesNobody() {
	state := s.startGame(5)
	round := s.proposeTeam(state)

	out, err := s.gameService.CastApprovalVote(s.ctx, &game.CastApprovalVoteInput{
		SessionID: s.testSessionID,
		PlayerID:  round.Voters[0],
		RoundID:   round.ID,
		Approve:   true,
	})
	s.Require().NoError(err)
	s.False(out.Result.Complete)
	s.Len(out.State.Round.Pending, 4)
}

func (s *GameServiceTestSuite) TestCastApprovalVote_StaleRound() {
	state := s.startGame(5)
	first := s.proposeTeam(state)

	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)
	state = s.voteApproval(first, false).State

	s.proposeTeam(state)

	_, err := s.gameService.CastApprovalVote(s.ctx, &game.CastApprovalVoteInput{
		SessionID: s.testSessionID,
		PlayerID:  first.Voters[0],
		RoundID:   first.ID,
		Approve:   true,
	})
	s.ErrorIs(err, avalon.ErrStaleRound)
}

func (s *GameServiceTestSuite) TestCastMissionVote_FailedMissionAsksForNextTeam() {
	state := s.startGame(5)
	round := s.approveTeam(state)

	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)

	out := s.voteMission(round, 1)
	s.True(out.Result.Complete)
	s.False(out.Result.Succeeded)
	s.Equal(models.GamePhaseBuildTeam, out.State.Phase)
	s.Equal(1, out.State.Turn)
	s.Equal(models.MissionFailed, out.State.Missions[0])
}

func (s *GameServiceTestSuite) TestCastMissionVote_OnlyTeamMembersVote() {
	state := s.startGame(5)
	round := s.approveTeam(state)

	var outsider string
	for _, p := range state.Players {
		onTeam := false
		for _, id := range round.Voters {
			if id == p.ID {
				onTeam = true
			}
		}
		if !onTeam {
			outsider = p.ID
			break
		}
	}

	_, err := s.gameService.CastMissionVote(s.ctx, &game.CastMissionVoteInput{
		SessionID: s.testSessionID,
		PlayerID:  outsider,
		RoundID:   round.ID,
		Success:   false,
	})
	s.ErrorIs(err, avalon.ErrNotEligible)
}

// Game over Tests

func (s *GameServiceTestSuite) TestFiveRejectionsHandEvilTheWin() {
	state := s.startGame(5)

	record, results, ended := s.expectGameOver(5)

	for i := 0; i < avalon.MaxRejections; i++ {
		round := s.proposeTeam(state)
		if i < avalon.MaxRejections-1 {
			s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil)
		}
		state = s.voteApproval(round, false).State
	}

	s.Equal(models.WinnerEvil, state.Winner)
	s.Equal(models.WinnerEvil, record.Winner)
	s.Equal(models.EndReasonRejections, record.Reason)
	s.Equal(s.testSessionID, record.SessionID)
	s.Equal(s.testTime, record.EndedAt)
	s.Empty(record.Missions)
	s.Len(record.Players, 5)

	s.Require().Len(results, 5)
	for _, p := range state.Players {
		s.Equal(p.IsEvil(), results[p.ID].Won, "player %s", p.ID)
		s.Equal(p.Role.Alignment(), results[p.ID].Alignment)
	}

	s.Require().NotNil(*ended)
	s.Equal(record.ID, (*ended).Record.ID)
	s.assertGameRemoved()
}

func (s *GameServiceTestSuite) TestAssassinFindsMerlin() {
	state := s.startGame(5)
	state, requested := s.winThreeMissions(state)

	s.Equal(models.GamePhaseLastChance, state.Phase)
	s.Equal(models.WinnerNone, state.Winner)

	assassin, _ := state.PlayerWithRole(models.RoleAssassin)
	merlin, _ := state.PlayerWithRole(models.RoleMerlin)

	s.Require().NotNil(requested)
	s.Equal(assassin.ID, requested.AssassinID)
	s.Len(requested.Candidates, 3)
	s.Contains(requested.Candidates, merlin.ID)

	record, results, _ := s.expectGameOver(5)

	out, err := s.gameService.ChooseAssassinationTarget(s.ctx, &game.ChooseAssassinationTargetInput{
		SessionID:  s.testSessionID,
		AssassinID: assassin.ID,
		TargetID:   merlin.ID,
	})
	s.Require().NoError(err)

	s.Equal(models.WinnerEvil, out.Result.Winner)
	s.Equal(models.RoleMerlin, out.Result.TargetRole)
	s.Equal(models.EndReasonAssassination, record.Reason)
	s.Equal(merlin.ID, record.AssassinTargetID)
	s.Equal([]models.MissionOutcome{
		models.MissionSucceeded,
		models.MissionSucceeded,
		models.MissionSucceeded,
	}, record.Missions)
	s.True(results[assassin.ID].Won)
	s.False(results[merlin.ID].Won)
	s.assertGameRemoved()
}

func (s *GameServiceTestSuite) TestAssassinMissesMerlin() {
	state := s.startGame(5)
	state, _ = s.winThreeMissions(state)

	assassin, _ := state.PlayerWithRole(models.RoleAssassin)
	servant, ok := state.PlayerWithRole(models.RoleLoyalServant)
	s.Require().True(ok)

	record, results, _ := s.expectGameOver(5)

	out, err := s.gameService.ChooseAssassinationTarget(s.ctx, &game.ChooseAssassinationTargetInput{
		SessionID:  s.testSessionID,
		AssassinID: assassin.ID,
		TargetID:   servant.ID,
	})
	s.Require().NoError(err)

	s.Equal(models.WinnerGood, out.Result.Winner)
	s.Equal(models.WinnerGood, record.Winner)
	s.True(results[servant.ID].Won)
	s.False(results[assassin.ID].Won)
}

func (s *GameServiceTestSuite) TestAssassination_WrongPlayer() {
	state := s.startGame(5)
	state, _ = s.winThreeMissions(state)

	merlin, _ := state.PlayerWithRole(models.RoleMerlin)

	_, err := s.gameService.ChooseAssassinationTarget(s.ctx, &game.ChooseAssassinationTargetInput{
		SessionID:  s.testSessionID,
		AssassinID: merlin.ID,
		TargetID:   merlin.ID,
	})
	s.ErrorIs(err, avalon.ErrNotAssassin)
}

func (s *GameServiceTestSuite) TestGameOver_StorageFailuresDoNotBlockTheResult() {
	state := s.startGame(5)
	state, _ = s.winThreeMissions(state)

	assassin, _ := state.PlayerWithRole(models.RoleAssassin)
	merlin, _ := state.PlayerWithRole(models.RoleMerlin)

	s.mockHistoryRepo.EXPECT().AddRecord(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	s.mockPlayerRepo.EXPECT().RecordResult(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(5)
	s.mockNotifier.EXPECT().GameEnded(gomock.Any(), gomock.Any()).Return(errors.New("discord down"))

	out, err := s.gameService.ChooseAssassinationTarget(s.ctx, &game.ChooseAssassinationTargetInput{
		SessionID:  s.testSessionID,
		AssassinID: assassin.ID,
		TargetID:   merlin.ID,
	})
	s.Require().NoError(err)
	s.Equal(models.WinnerEvil, out.Result.Winner)
	s.assertGameRemoved()
}

func (s *GameServiceTestSuite) TestNotifierFailuresDoNotFailActions() {
	state := s.startGame(5)

	s.mockNotifier.EXPECT().VoteRequested(gomock.Any(), gomock.Any()).Return(errors.New("discord down"))

	out, err := s.gameService.ProposeTeam(s.ctx, &game.ProposeTeamInput{
		SessionID: s.testSessionID,
		LeaderID:  state.LeaderID,
		PlayerIDs: []string{state.Players[0].ID, state.Players[1].ID},
	})
	s.Require().NoError(err)
	s.NotNil(out.Round)
}

// DeleteGame Tests

func (s *GameServiceTestSuite) TestDeleteGame() {
	s.createLobby(3)

	_, err := s.gameService.DeleteGame(s.ctx, &game.DeleteGameInput{
		SessionID:   s.testSessionID,
		RequesterID: s.playerID(1),
	})
	s.ErrorIs(err, avalon.ErrNotCreator)

	_, err = s.gameService.DeleteGame(s.ctx, &game.DeleteGameInput{
		SessionID:   s.testSessionID,
		RequesterID: s.testCreatorID,
	})
	s.Require().NoError(err)
	s.assertGameRemoved()

	// the channel is free for a new game
	_, err = s.gameService.CreateGame(s.ctx, &game.CreateGameInput{
		SessionID: s.testSessionID,
		CreatorID: s.playerID(1),
	})
	s.NoError(err)
}

// Query Tests

func (s *GameServiceTestSuite) TestGetKnowledge() {
	state := s.startGame(5)
	merlin, _ := state.PlayerWithRole(models.RoleMerlin)

	out, err := s.gameService.GetKnowledge(s.ctx, &game.GetKnowledgeInput{
		SessionID: s.testSessionID,
		PlayerID:  merlin.ID,
	})
	s.Require().NoError(err)
	s.Equal(models.RoleMerlin, out.Knowledge.Role)
	s.Equal(avalon.RevelationEvil, out.Knowledge.Reveals)

	for _, id := range out.Knowledge.Visible {
		p, ok := out.State.PlayerByID(id)
		s.Require().True(ok)
		s.True(p.IsEvil())
	}
}

func (s *GameServiceTestSuite) TestGetLeaderboard() {
	expected := &models.Leaderboard{
		SessionID: s.testSessionID,
		Entries: []*models.PlayerStats{
			{PlayerID: "player-1", GamesPlayed: 2, GoodWins: 1},
		},
	}

	s.mockPlayerRepo.EXPECT().
		GetLeaderboard(gomock.Any(), &playerRepo.GetLeaderboardInput{
			SessionID: s.testSessionID,
			Limit:     10,
		}).
		Return(expected, nil)

	out, err := s.gameService.GetLeaderboard(s.ctx, &game.GetLeaderboardInput{
		SessionID: s.testSessionID,
		Limit:     10,
	})
	s.Require().NoError(err)
	s.Equal(expected, out.Leaderboard)
}

func (s *GameServiceTestSuite) TestGetLeaderboard_RepositoryError() {
	expectedError := errors.New("redis down")

	s.mockPlayerRepo.EXPECT().
		GetLeaderboard(gomock.Any(), gomock.Any()).
		Return(nil, expectedError)

	_, err := s.gameService.GetLeaderboard(s.ctx, &game.GetLeaderboardInput{
		SessionID: s.testSessionID,
	})
	s.ErrorIs(err, expectedError)
}

func (s *GameServiceTestSuite) TestGetHistory() {
	records := []*models.GameRecord{
		{ID: "record-2", SessionID: s.testSessionID, Winner: models.WinnerEvil},
		{ID: "record-1", SessionID: s.testSessionID, Winner: models.WinnerGood},
	}

	s.mockHistoryRepo.EXPECT().
		GetRecordsForSession(gomock.Any(), &historyRepo.GetRecordsForSessionInput{
			SessionID: s.testSessionID,
			Limit:     5,
		}).
		Return(&historyRepo.GetRecordsForSessionOutput{Records: records}, nil)

	out, err := s.gameService.GetHistory(s.ctx, &game.GetHistoryInput{
		SessionID: s.testSessionID,
		Limit:     5,
	})
	s.Require().NoError(err)
	s.Equal(records, out.Records)

	_, err = s.gameService.GetHistory(s.ctx, &game.GetHistoryInput{})
	s.ErrorIs(err, game.ErrEmptySessionID)
}

// Registry failures, with a mocked registry

func (s *GameServiceTestSuite) newServiceWithMockRegistry() (game.Service, *gameMocks.MockRepository) {
	registry := gameMocks.NewMockRepository(s.mockCtrl)
	svc, err := game.New(&game.Config{
		GameRepo:      registry,
		PlayerRepo:    s.mockPlayerRepo,
		HistoryRepo:   s.mockHistoryRepo,
		Notifier:      s.mockNotifier,
		Random:        random.New(&random.Config{Seed: 1}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        log.New(io.Discard),
	})
	s.Require().NoError(err)
	return svc, registry
}

func (s *GameServiceTestSuite) TestGetGame_RegistryError() {
	svc, registry := s.newServiceWithMockRegistry()
	expectedError := errors.New("registry unavailable")

	registry.EXPECT().
		GetGame(gomock.Any(), &gameRepo.GetGameInput{SessionID: s.testSessionID}).
		Return(nil, expectedError)

	_, err := svc.GetGame(s.ctx, &game.GetGameInput{SessionID: s.testSessionID})
	s.Require().Error(err)
	s.ErrorIs(err, expectedError)
}

func (s *GameServiceTestSuite) TestCreateGame_RegistryConflict() {
	svc, registry := s.newServiceWithMockRegistry()

	registry.EXPECT().
		CreateGame(gomock.Any(), gomock.Any()).
		Return(gameRepo.ErrGameAlreadyExists)

	_, err := svc.CreateGame(s.ctx, &game.CreateGameInput{
		SessionID: s.testSessionID,
		CreatorID: s.testCreatorID,
	})
	s.ErrorIs(err, game.ErrGameAlreadyExists)
}

// Teardown Tests

func (s *GameServiceTestSuite) TestFinish_KeepsLobbyOpenedDuringArchive() {
	state := s.startGame(5)
	state, _ = s.winThreeMissions(state)

	assassin, _ := state.PlayerWithRole(models.RoleAssassin)
	merlin, _ := state.PlayerWithRole(models.RoleMerlin)

	// the host abandons the finished table and opens a new one while the
	// result is still being archived
	s.mockHistoryRepo.EXPECT().AddRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *historyRepo.AddRecordInput) error {
			_, _ = s.gameService.DeleteGame(ctx, &game.DeleteGameInput{
				SessionID:   s.testSessionID,
				RequesterID: s.testCreatorID,
			})
			_, err := s.gameService.CreateGame(ctx, &game.CreateGameInput{
				SessionID:   s.testSessionID,
				CreatorID:   "new-host",
				CreatorName: "New Host",
			})
			s.Require().NoError(err)
			return nil
		})
	s.mockPlayerRepo.EXPECT().RecordResult(gomock.Any(), gomock.Any()).Return(nil).Times(5)
	s.mockNotifier.EXPECT().GameEnded(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.gameService.ChooseAssassinationTarget(s.ctx, &game.ChooseAssassinationTargetInput{
		SessionID:  s.testSessionID,
		AssassinID: assassin.ID,
		TargetID:   merlin.ID,
	})
	s.Require().NoError(err)

	out, err := s.gameService.GetGame(s.ctx, &game.GetGameInput{SessionID: s.testSessionID})
	s.Require().NoError(err)
	s.Equal("new-host", out.State.CreatorID)
	s.Equal(models.GamePhaseLobby, out.State.Phase)
}

// gatedSource holds its caller inside Shuffle until released
type gatedSource struct {
	random.Source
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedSource) Shuffle(n int, swap func(i, j int)) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	g.Source.Shuffle(n, swap)
}

func (s *GameServiceTestSuite) TestStartGame_GamesDealIndependently() {
	gated := &gatedSource{
		Source:  random.New(&random.Config{Seed: 5}),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	sources := []random.Source{gated, random.New(&random.Config{Seed: 6})}

	var created int
	svc, err := game.New(&game.Config{
		GameRepo:      gameRepo.NewMemory(),
		PlayerRepo:    s.mockPlayerRepo,
		HistoryRepo:   s.mockHistoryRepo,
		Notifier:      s.mockNotifier,
		Random:        random.New(&random.Config{Seed: 1}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        log.New(io.Discard),
		NewRandom: func() random.Source {
			src := sources[created]
			created++
			return src
		},
	})
	s.Require().NoError(err)

	for _, sessionID := range []string{"table-a", "table-b"} {
		_, err := svc.CreateGame(s.ctx, &game.CreateGameInput{SessionID: sessionID, CreatorID: "p0", CreatorName: "P0"})
		s.Require().NoError(err)
		for i := 1; i < 5; i++ {
			_, err := svc.JoinGame(s.ctx, &game.JoinGameInput{SessionID: sessionID, PlayerID: s.playerID(i), PlayerName: s.playerID(i)})
			s.Require().NoError(err)
		}
	}

	s.mockNotifier.EXPECT().RoleAssigned(gomock.Any(), gomock.Any()).Return(nil).Times(10)
	s.mockNotifier.EXPECT().TeamRequested(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	startedA := make(chan error, 1)
	go func() {
		_, err := svc.StartGame(s.ctx, &game.StartGameInput{SessionID: "table-a", RequesterID: "p0"})
		startedA <- err
	}()
	<-gated.entered

	startedB := make(chan error, 1)
	go func() {
		_, err := svc.StartGame(s.ctx, &game.StartGameInput{SessionID: "table-b", RequesterID: "p0"})
		startedB <- err
	}()

	select {
	case err := <-startedB:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.Fail("table-b waited on table-a's dealing")
	}

	close(gated.release)
	s.NoError(<-startedA)
}

// GetRecord Tests

func (s *GameServiceTestSuite) TestGetRecord() {
	record := &models.GameRecord{ID: "rec-1", SessionID: s.testSessionID, Winner: models.WinnerGood}

	s.mockHistoryRepo.EXPECT().
		GetRecord(gomock.Any(), &historyRepo.GetRecordInput{RecordID: "rec-1"}).
		Return(record, nil)

	out, err := s.gameService.GetRecord(s.ctx, &game.GetRecordInput{
		SessionID: s.testSessionID,
		RecordID:  "rec-1",
	})
	s.Require().NoError(err)
	s.Equal(record, out.Record)
}

func (s *GameServiceTestSuite) TestGetRecord_OtherChannel() {
	s.mockHistoryRepo.EXPECT().
		GetRecord(gomock.Any(), gomock.Any()).
		Return(&models.GameRecord{ID: "rec-1", SessionID: "elsewhere"}, nil)

	_, err := s.gameService.GetRecord(s.ctx, &game.GetRecordInput{
		SessionID: s.testSessionID,
		RecordID:  "rec-1",
	})
	s.ErrorIs(err, game.ErrRecordNotFound)
}

func (s *GameServiceTestSuite) TestGetRecord_Errors() {
	s.mockHistoryRepo.EXPECT().
		GetRecord(gomock.Any(), gomock.Any()).
		Return(nil, historyRepo.ErrRecordNotFound)

	_, err := s.gameService.GetRecord(s.ctx, &game.GetRecordInput{SessionID: s.testSessionID, RecordID: "missing"})
	s.ErrorIs(err, game.ErrRecordNotFound)

	expectedError := errors.New("redis down")
	s.mockHistoryRepo.EXPECT().
		GetRecord(gomock.Any(), gomock.Any()).
		Return(nil, expectedError)

	_, err = s.gameService.GetRecord(s.ctx, &game.GetRecordInput{SessionID: s.testSessionID, RecordID: "rec-1"})
	s.ErrorIs(err, expectedError)

	_, err = s.gameService.GetRecord(s.ctx, &game.GetRecordInput{SessionID: s.testSessionID})
	s.ErrorIs(err, game.ErrEmptyRecordID)
}

// GetPlayerStats Tests

func (s *GameServiceTestSuite) TestGetPlayerStats() {
	stats := &models.PlayerStats{PlayerID: "player-1", PlayerName: "Player 1", GamesPlayed: 2, GoodGames: 2, GoodWins: 1}

	s.mockPlayerRepo.EXPECT().
		GetPlayer(gomock.Any(), &playerRepo.GetPlayerInput{SessionID: s.testSessionID, PlayerID: "player-1"}).
		Return(stats, nil)

	out, err := s.gameService.GetPlayerStats(s.ctx, &game.GetPlayerStatsInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)
	s.Equal(stats, out.Stats)
}

func (s *GameServiceTestSuite) TestGetPlayerStats_NoGamesYet() {
	s.mockPlayerRepo.EXPECT().
		GetPlayer(gomock.Any(), gomock.Any()).
		Return(nil, playerRepo.ErrPlayerNotFound)

	_, err := s.gameService.GetPlayerStats(s.ctx, &game.GetPlayerStatsInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
	})
	s.ErrorIs(err, game.ErrNoPlayerRecord)

	_, err = s.gameService.GetPlayerStats(s.ctx, &game.GetPlayerStatsInput{SessionID: s.testSessionID})
	s.ErrorIs(err, game.ErrEmptyPlayerID)
}
