package game

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/common/clock"
	"github.com/KirkDiggler/avalon/internal/common/uuid"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
	gameRepo "github.com/KirkDiggler/avalon/internal/repositories/game"
	historyRepo "github.com/KirkDiggler/avalon/internal/repositories/history"
	playerRepo "github.com/KirkDiggler/avalon/internal/repositories/player"
	"github.com/charmbracelet/log"
)

// service implements the Service interface
type service struct {
	gameRepo      gameRepo.Repository
	playerRepo    playerRepo.Repository
	historyRepo   historyRepo.Repository
	notifier      Notifier
	newRandom     func() random.Source
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *log.Logger
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	newRandom := cfg.NewRandom
	if newRandom == nil {
		newRandom = seededFrom(cfg.Random)
	}

	return &service{
		gameRepo:      cfg.GameRepo,
		playerRepo:    cfg.PlayerRepo,
		historyRepo:   cfg.HistoryRepo,
		notifier:      cfg.Notifier,
		newRandom:     newRandom,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger,
	}, nil
}

// CreateGame opens a lobby in a channel with the creator seated
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.SessionID == "" {
		return nil, ErrEmptySessionID
	}
	if input.CreatorID == "" {
		return nil, ErrEmptyPlayerID
	}

	g, err := avalon.New(&avalon.Config{
		ID:            input.SessionID,
		CreatorID:     input.CreatorID,
		CreatorName:   input.CreatorName,
		Random:        s.newRandom(),
		UUIDGenerator: s.uuidGenerator,
		Clock:         s.clock,
	})
	if err != nil {
		return nil, err
	}

	err = s.gameRepo.CreateGame(ctx, &gameRepo.CreateGameInput{
		Game: g,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameAlreadyExists) {
			return nil, ErrGameAlreadyExists
		}
		return nil, fmt.Errorf("failed to register game: %w", err)
	}

	s.logger.Info("game created", "session", input.SessionID, "creator", input.CreatorID)

	return &CreateGameOutput{
		State: g.State(),
	}, nil
}

// JoinGame seats a player in the lobby or brings an offline player back
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := g.Join(input.PlayerID, input.PlayerName)
	if err != nil {
		return nil, err
	}

	if result.Started {
		s.logger.Info("table full, game started", "session", input.SessionID)
		s.announceStart(ctx, g)
	}

	return &JoinGameOutput{
		Rejoined: result.Rejoined,
		Started:  result.Started,
		State:    g.State(),
	}, nil
}

// LeaveGame removes a player from the lobby or marks them offline. The game
// is closed once nobody is left online.
func (s *service) LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := g.Leave(input.PlayerID)
	if err != nil {
		return nil, err
	}

	output := &LeaveGameOutput{
		Removed:      result.Removed,
		NewCreatorID: result.NewCreatorID,
		State:        g.State(),
	}

	if !result.AnyOnline {
		if err := s.removeGame(ctx, g); err != nil {
			return nil, err
		}
		output.GameDeleted = true
		s.logger.Info("game abandoned", "session", input.SessionID)
	}

	return output, nil
}

// PassCreator hands host privileges to another player
func (s *service) PassCreator(ctx context.Context, input *PassCreatorInput) (*PassCreatorOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := g.PassCreator(input.RequesterID, input.NewCreatorID); err != nil {
		return nil, err
	}

	return &PassCreatorOutput{
		State: g.State(),
	}, nil
}

// SetSpecialRoles picks the special roles dealt at start
func (s *service) SetSpecialRoles(ctx context.Context, input *SetSpecialRolesInput) (*SetSpecialRolesOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	roles, err := g.SetSpecialRoles(input.RequesterID, input.Roles)
	if err != nil {
		return nil, err
	}

	return &SetSpecialRolesOutput{
		Roles: roles,
	}, nil
}

// StartGame deals roles and asks the first leader for a team
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := g.Start(input.RequesterID); err != nil {
		return nil, err
	}

	s.logger.Info("game started", "session", input.SessionID, "players", len(g.Players()))
	s.announceStart(ctx, g)

	return &StartGameOutput{
		State: g.State(),
	}, nil
}

// ProposeTeam puts the leader's team to an approval vote
func (s *service) ProposeTeam(ctx context.Context, input *ProposeTeamInput) (*ProposeTeamOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	round, err := g.ProposeTeam(input.LeaderID, input.PlayerIDs)
	if err != nil {
		return nil, err
	}

	state := g.State()
	s.report("VoteRequested", input.SessionID, s.notifier.VoteRequested(ctx, &VoteRequestedInput{
		State: state,
		Round: round,
	}))

	return &ProposeTeamOutput{
		Round: round,
		State: state,
	}, nil
}

// CastApprovalVote records a vote on the proposed team and moves the game on
// once everyone has voted
func (s *service) CastApprovalVote(ctx context.Context, input *CastApprovalVoteInput) (*CastApprovalVoteOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := g.CastApprovalVote(input.PlayerID, input.Approve, roundOptions(input.RoundID)...)
	if err != nil {
		return nil, err
	}

	state := g.State()
	if result.Complete {
		s.logger.Debug("team vote finished",
			"session", input.SessionID,
			"approved", result.Approved,
			"yes", result.Tally.Yes,
			"no", result.Tally.No,
			"rejections", result.RejectionCount,
		)

		switch {
		case result.Winner != models.WinnerNone:
			s.finish(ctx, g, state)
		case result.Approved:
			s.report("VoteRequested", input.SessionID, s.notifier.VoteRequested(ctx, &VoteRequestedInput{
				State: state,
				Round: result.MissionRound,
			}))
		default:
			s.requestTeam(ctx, state)
		}
	}

	return &CastApprovalVoteOutput{
		Result: result,
		State:  state,
	}, nil
}

// CastMissionVote records a team member's mission card and resolves the
// mission once the whole team has played
func (s *service) CastMissionVote(ctx context.Context, input *CastMissionVoteInput) (*CastMissionVoteOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := g.CastMissionVote(input.PlayerID, input.Success, roundOptions(input.RoundID)...)
	if err != nil {
		return nil, err
	}

	state := g.State()
	if result.Complete {
		s.logger.Debug("mission finished",
			"session", input.SessionID,
			"mission", result.Mission+1,
			"succeeded", result.Succeeded,
			"fails", result.Tally.No,
		)

		switch {
		case result.Winner != models.WinnerNone:
			s.finish(ctx, g, state)
		case result.Phase == models.GamePhaseLastChance:
			s.requestAssassination(ctx, g, state)
		default:
			s.requestTeam(ctx, state)
		}
	}

	return &CastMissionVoteOutput{
		Result: result,
		State:  state,
	}, nil
}

// ChooseAssassinationTarget settles the game with the assassin's guess
func (s *service) ChooseAssassinationTarget(ctx context.Context, input *ChooseAssassinationTargetInput) (*ChooseAssassinationTargetOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := g.ChooseAssassinationTarget(input.AssassinID, input.TargetID)
	if err != nil {
		return nil, err
	}

	state := g.State()
	s.finish(ctx, g, state)

	return &ChooseAssassinationTargetOutput{
		Result: result,
		State:  state,
	}, nil
}

// DeleteGame abandons the game of a channel. Only the host may do this.
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if g.Creator() != input.RequesterID {
		return nil, avalon.ErrNotCreator
	}

	if err := s.removeGame(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("game deleted", "session", input.SessionID, "by", input.RequesterID)

	return &DeleteGameOutput{}, nil
}

// GetGame returns a snapshot of the game of a channel
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{
		State: g.State(),
	}, nil
}

// GetKnowledge returns what a player learned when roles were dealt
func (s *service) GetKnowledge(ctx context.Context, input *GetKnowledgeInput) (*GetKnowledgeOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	g, err := s.getGame(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	knowledge, err := g.Knowledge(input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetKnowledgeOutput{
		Knowledge: knowledge,
		State:     g.State(),
	}, nil
}

// GetLeaderboard ranks the players of a channel by wins
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.SessionID == "" {
		return nil, ErrEmptySessionID
	}

	leaderboard, err := s.playerRepo.GetLeaderboard(ctx, &playerRepo.GetLeaderboardInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return &GetLeaderboardOutput{
		Leaderboard: leaderboard,
	}, nil
}

// GetHistory lists the finished games of a channel, newest first
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.SessionID == "" {
		return nil, ErrEmptySessionID
	}

	out, err := s.historyRepo.GetRecordsForSession(ctx, &historyRepo.GetRecordsForSessionInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return &GetHistoryOutput{
		Records: out.Records,
	}, nil
}

// GetRecord returns one finished game of a channel. Records of other
// channels are reported as missing.
func (s *service) GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.SessionID == "" {
		return nil, ErrEmptySessionID
	}
	if input.RecordID == "" {
		return nil, ErrEmptyRecordID
	}

	record, err := s.historyRepo.GetRecord(ctx, &historyRepo.GetRecordInput{
		RecordID: input.RecordID,
	})
	if err != nil {
		if errors.Is(err, historyRepo.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	if record.SessionID != input.SessionID {
		return nil, ErrRecordNotFound
	}

	return &GetRecordOutput{
		Record: record,
	}, nil
}

// GetPlayerStats returns a player's record in a channel
func (s *service) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.SessionID == "" {
		return nil, ErrEmptySessionID
	}
	if input.PlayerID == "" {
		return nil, ErrEmptyPlayerID
	}

	stats, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		SessionID: input.SessionID,
		PlayerID:  input.PlayerID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, ErrNoPlayerRecord
		}
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	return &GetPlayerStatsOutput{
		Stats: stats,
	}, nil
}

func (s *service) getGame(ctx context.Context, sessionID string) (*avalon.Game, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	g, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return g, nil
}

// removeGame frees the session only while it still holds g, so a lobby
// opened in the meantime survives
func (s *service) removeGame(ctx context.Context, g *avalon.Game) error {
	err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		SessionID: g.ID(),
		Game:      g,
	})
	if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func roundOptions(roundID string) []avalon.VoteOption {
	if roundID == "" {
		return nil
	}
	return []avalon.VoteOption{avalon.InRound(roundID)}
}

// announceStart tells every player their role, then asks the leader for a team
func (s *service) announceStart(ctx context.Context, g *avalon.Game) {
	state := g.State()

	for _, p := range state.Players {
		knowledge, err := g.Knowledge(p.ID)
		if err != nil {
			s.logger.Error("failed to build knowledge", "session", state.ID, "player", p.ID, "err", err)
			continue
		}

		s.report("RoleAssigned", state.ID, s.notifier.RoleAssigned(ctx, &RoleAssignedInput{
			State:     state,
			Knowledge: knowledge,
		}))
	}

	s.requestTeam(ctx, state)
}

func (s *service) requestTeam(ctx context.Context, state *avalon.State) {
	s.report("TeamRequested", state.ID, s.notifier.TeamRequested(ctx, &TeamRequestedInput{
		State: state,
	}))
}

func (s *service) requestAssassination(ctx context.Context, g *avalon.Game, state *avalon.State) {
	assassin, ok := state.PlayerWithRole(models.RoleAssassin)
	if !ok {
		s.logger.Error("no assassin in a game that reached the finale", "session", state.ID)
		return
	}

	s.report("AssassinationRequested", state.ID, s.notifier.AssassinationRequested(ctx, &AssassinationRequestedInput{
		State:      state,
		AssassinID: assassin.ID,
		Candidates: g.AssassinationCandidates(),
	}))
}

// finish frees the channel, then archives the decided game, credits every
// player and announces the result. Storage failures are only logged.
func (s *service) finish(ctx context.Context, g *avalon.Game, state *avalon.State) {
	if err := s.removeGame(ctx, g); err != nil {
		s.logger.Error("failed to free channel", "session", state.ID, "err", err)
	}

	record := s.buildRecord(state)

	s.logger.Info("game over",
		"session", state.ID,
		"winner", state.Winner,
		"reason", state.EndReason,
	)

	err := s.historyRepo.AddRecord(ctx, &historyRepo.AddRecordInput{
		Record: record,
	})
	if err != nil {
		s.logger.Error("failed to archive game", "session", state.ID, "record", record.ID, "err", err)
	}

	for _, p := range state.Players {
		err := s.playerRepo.RecordResult(ctx, &playerRepo.RecordResultInput{
			SessionID:  state.ID,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Alignment:  p.Role.Alignment(),
			Won:        state.Winner.Favors(p.Role.Alignment()),
		})
		if err != nil {
			s.logger.Error("failed to record result", "session", state.ID, "player", p.ID, "err", err)
		}
	}

	s.report("GameEnded", state.ID, s.notifier.GameEnded(ctx, &GameEndedInput{
		State:  state,
		Record: record,
	}))
}

func (s *service) buildRecord(state *avalon.State) *models.GameRecord {
	missions := make([]models.MissionOutcome, 0, len(state.Missions))
	for _, m := range state.Missions {
		if m != models.MissionPending {
			missions = append(missions, m)
		}
	}

	players := make([]models.RecordedPlayer, 0, len(state.Players))
	for _, p := range state.Players {
		players = append(players, models.RecordedPlayer{
			ID:   p.ID,
			Name: p.Name,
			Role: p.Role,
		})
	}

	return &models.GameRecord{
		ID:               s.uuidGenerator.NewUUID(),
		SessionID:        state.ID,
		Winner:           state.Winner,
		Reason:           state.EndReason,
		Missions:         missions,
		AssassinTargetID: state.AssassinTargetID,
		Players:          players,
		StartedAt:        state.StartedAt,
		EndedAt:          s.clock.Now(),
	}
}

// seededFrom derives an independent source per game so concurrent games never
// share a lock. A fixed seed still reproduces the whole run.
func seededFrom(seeds random.Source) func() random.Source {
	return func() random.Source {
		return random.New(&random.Config{
			Seed: int64(seeds.Intn(math.MaxInt)) + 1,
		})
	}
}

// report logs a notifier failure; delivery problems never fail a game action
func (s *service) report(event, sessionID string, err error) {
	if err != nil {
		s.logger.Warn("notification failed", "event", event, "session", sessionID, "err", err)
	}
}
