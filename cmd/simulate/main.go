package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/common/uuid"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// maxSteps guards against a game that never ends; a real game needs at most 5 missions x 5 proposals
const maxSteps = 200

type CLI struct {
	Games      int      `default:"1000" help:"Number of games to play"`
	Players    int      `default:"7" help:"Players per game (5-10)"`
	Roles      []string `default:"percival,morgana" help:"Special roles besides Merlin and Assassin"`
	ApprovePct int      `default:"60" help:"Chance in percent that a good player approves a team"`
	FailPct    int      `default:"80" help:"Chance in percent that an evil team member fails a mission"`
	Workers    int      `default:"4" help:"Games played concurrently"`
	Seed       int64    `default:"0" help:"RNG seed (0 for random)"`
	Verbose    bool     `short:"v" help:"Verbose logging"`
}

// Outcome is how one simulated game ended
type Outcome struct {
	Winner    models.Winner
	Reason    models.EndReason
	Proposals int
	Missions  int
}

// Statistics aggregates outcomes across games
type Statistics struct {
	mu sync.Mutex

	Games     int
	GoodWins  int
	EvilWins  int
	ByReason  map[models.EndReason]int
	Proposals int
	Missions  int
}

func (s *Statistics) Add(o *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Games++
	switch o.Winner {
	case models.WinnerGood:
		s.GoodWins++
	case models.WinnerEvil:
		s.EvilWins++
	}
	s.ByReason[o.Reason]++
	s.Proposals += o.Proposals
	s.Missions += o.Missions
}

func (s *Statistics) percent(n int) float64 {
	if s.Games == 0 {
		return 0
	}
	return 100 * float64(n) / float64(s.Games)
}

func (s *Statistics) average(n int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(n) / float64(s.Games)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	roles := make([]models.Role, 0, len(cli.Roles))
	for _, name := range cli.Roles {
		role, ok := models.ParseRole(name)
		if !ok {
			ctx.Fatalf("unknown role %q", name)
		}
		roles = append(roles, role)
	}
	if cli.Players < avalon.MinPlayers || cli.Players > avalon.MaxPlayers {
		ctx.Fatalf("players must be between %d and %d", avalon.MinPlayers, avalon.MaxPlayers)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Simulating", "games", cli.Games, "players", cli.Players, "roles", roles, "seed", seed)

	stats := &Statistics{ByReason: make(map[models.EndReason]int)}
	startTime := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(max(cli.Workers, 1))
	for n := 0; n < cli.Games; n++ {
		g.Go(func() error {
			sim := &simulator{
				rng:        random.New(&random.Config{Seed: seed + int64(n)}),
				approvePct: cli.ApprovePct,
				failPct:    cli.FailPct,
				logger:     logger.With("game", n),
			}
			outcome, err := sim.play(fmt.Sprintf("sim-%d", n), cli.Players, roles)
			if err != nil {
				return fmt.Errorf("game %d: %w", n, err)
			}
			stats.Add(outcome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("Simulation failed", "err", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Games:            %d (%s)\n", stats.Games, elapsed.Round(time.Millisecond))
	fmt.Printf("Good wins:        %.1f%%\n", stats.percent(stats.GoodWins))
	fmt.Printf("Evil wins:        %.1f%%\n", stats.percent(stats.EvilWins))
	for _, reason := range []models.EndReason{models.EndReasonMissions, models.EndReasonRejections, models.EndReasonAssassination} {
		fmt.Printf("  by %-14s %.1f%%\n", reason, stats.percent(stats.ByReason[reason]))
	}
	fmt.Printf("Proposals/game:   %.2f\n", stats.average(stats.Proposals))
	fmt.Printf("Missions/game:    %.2f\n", stats.average(stats.Missions))
}

// simulator plays one game with simple scripted players
type simulator struct {
	rng        *random.Rand
	approvePct int
	failPct    int
	logger     *log.Logger
}

func (s *simulator) chance(pct int) bool {
	return s.rng.Intn(100) < pct
}

func (s *simulator) play(id string, players int, roles []models.Role) (*Outcome, error) {
	game, err := avalon.New(&avalon.Config{
		ID:            id,
		CreatorID:     "p0",
		CreatorName:   "Player 0",
		Random:        s.rng,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := game.SetSpecialRoles("p0", roles); err != nil {
		return nil, err
	}

	started := false
	for n := 1; n < players; n++ {
		res, err := game.Join(fmt.Sprintf("p%d", n), fmt.Sprintf("Player %d", n))
		if err != nil {
			return nil, err
		}
		started = res.Started
	}
	if !started {
		if err := game.Start("p0"); err != nil {
			return nil, err
		}
	}

	outcome := &Outcome{}
	for step := 0; step < maxSteps; step++ {
		state := game.State()
		if state.Winner != models.WinnerNone {
			outcome.Winner = state.Winner
			outcome.Reason = state.EndReason
			outcome.Missions = state.Turn
			s.logger.Debug("Game over", "winner", state.Winner, "reason", state.EndReason, "missions", state.Turn)
			return outcome, nil
		}

		switch state.Phase {
		case models.GamePhaseBuildTeam:
			outcome.Proposals++
			if err := s.proposeAndVote(game, state); err != nil {
				return nil, err
			}
		case models.GamePhaseQuest:
			if err := s.runMission(game, state); err != nil {
				return nil, err
			}
		case models.GamePhaseLastChance:
			if err := s.assassinate(game, state); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected phase %s", state.Phase)
		}
	}

	return nil, errors.New("game did not finish")
}

// proposeAndVote has the leader pick themselves plus random players, then the table votes
func (s *simulator) proposeAndVote(game *avalon.Game, state *avalon.State) error {
	size := state.TeamSizes[state.Turn]

	others := make([]string, 0, len(state.Players)-1)
	for _, p := range state.Players {
		if p.ID != state.LeaderID {
			others = append(others, p.ID)
		}
	}
	s.rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	team := append([]string{state.LeaderID}, others[:size-1]...)

	round, err := game.ProposeTeam(state.LeaderID, team)
	if err != nil {
		return err
	}

	evilOnTeam := false
	for _, id := range team {
		if p, _ := state.PlayerByID(id); p.IsEvil() {
			evilOnTeam = true
		}
	}
	lastProposal := state.RejectionCount == avalon.MaxRejections-1

	for _, id := range round.Voters {
		p, _ := state.PlayerByID(id)
		var approve bool
		switch {
		case p.IsEvil():
			approve = evilOnTeam
		case lastProposal:
			approve = true
		default:
			approve = s.chance(s.approvePct)
		}
		if _, err := game.CastApprovalVote(id, approve, avalon.InRound(round.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulator) runMission(game *avalon.Game, state *avalon.State) error {
	if state.Round == nil {
		return errors.New("quest without a mission round")
	}
	for _, id := range state.Round.Voters {
		p, _ := state.PlayerByID(id)
		success := !p.IsEvil() || !s.chance(s.failPct)
		if _, err := game.CastMissionVote(id, success, avalon.InRound(state.Round.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulator) assassinate(game *avalon.Game, state *avalon.State) error {
	assassin, ok := state.PlayerWithRole(models.RoleAssassin)
	if !ok {
		return errors.New("no assassin in play")
	}
	candidates := game.AssassinationCandidates()
	if len(candidates) == 0 {
		return errors.New("no assassination candidates")
	}

	_, err := game.ChooseAssassinationTarget(assassin.ID, candidates[s.rng.Intn(len(candidates))])
	return err
}
