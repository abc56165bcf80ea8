// Package avalon is the rules engine for a game of Avalon: roster, role
// dealing, team votes, missions and the assassination finale. A Game never
// performs I/O; callers translate its results into messages.
package avalon

import (
	"sync"
	"time"

	"github.com/KirkDiggler/avalon/internal/common/clock"
	"github.com/KirkDiggler/avalon/internal/common/uuid"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
)

// Config holds what a new game needs
type Config struct {
	// ID is the session the game is played in and its registry key
	ID string

	// CreatorID and CreatorName identify the host, who is also the first player
	CreatorID   string
	CreatorName string

	// Random deals roles and draws the first leader
	Random random.Source

	// UUIDGenerator names vote rounds
	UUIDGenerator uuid.UUID

	// Clock stamps the start of the game; defaults to the system clock
	Clock clock.Clock
}

// Game is the aggregate root of one game. All methods are safe for
// concurrent use; each Game is its own unit of mutual exclusion.
type Game struct {
	mu sync.Mutex

	id        string
	creatorID string
	players   []*models.Player
	phase     models.GamePhase

	turn        int
	teamSizes   [MissionCount]int
	missions    [MissionCount]models.MissionOutcome
	leaderIndex int

	proposal       []string
	team           []string
	round          *round
	rejectionCount int
	specialRoles   []models.Role

	winner         models.Winner
	endReason      models.EndReason
	assassinTarget string
	startedAt      time.Time

	random random.Source
	ids    uuid.UUID
	clock  clock.Clock
}

// New creates a game in the lobby with the creator seated
func New(cfg *Config) (*Game, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ID == "" {
		return nil, ErrEmptyGameID
	}
	if cfg.CreatorID == "" {
		return nil, ErrEmptyCreatorID
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	creator := &models.Player{
		ID:     cfg.CreatorID,
		Name:   cfg.CreatorName,
		Online: true,
	}

	return &Game{
		id:           cfg.ID,
		creatorID:    cfg.CreatorID,
		players:      []*models.Player{creator},
		phase:        models.GamePhaseLobby,
		leaderIndex:  -1,
		specialRoles: MandatoryRoles(),
		random:       cfg.Random,
		ids:          cfg.UUIDGenerator,
		clock:        c,
	}, nil
}

// ID returns the session identifier of the game
func (g *Game) ID() string {
	return g.id
}

// Phase returns the current phase
func (g *Game) Phase() models.GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Turn returns the zero-based index of the next mission
func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// Missions returns the outcome of every mission, pending ones included
func (g *Game) Missions() []models.MissionOutcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.missionsLocked()
}

// RejectionCount returns the consecutive rejected teams since the last approval
func (g *Game) RejectionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rejectionCount
}

// Team returns the approved team for the running mission
func (g *Game) Team() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneIDs(g.team)
}

// Leader returns the ID of the player proposing the next team
func (g *Game) Leader() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leaderLocked()
}

// Creator returns the ID of the host
func (g *Game) Creator() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.creatorID
}

// Winner returns the final verdict, empty until the game is decided
func (g *Game) Winner() models.Winner {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

// Players returns a copy of the roster in seating order
func (g *Game) Players() []models.Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playersLocked()
}

// State is a point in time copy of a game
type State struct {
	ID               string
	CreatorID        string
	Phase            models.GamePhase
	Players          []models.Player
	Turn             int
	TeamSizes        []int
	Missions         []models.MissionOutcome
	SpecialMission   int
	LeaderID         string
	Proposal         []string
	Team             []string
	Round            *RoundInfo
	RejectionCount   int
	SpecialRoles     []models.Role
	Winner           models.Winner
	EndReason        models.EndReason
	AssassinTargetID string
	StartedAt        time.Time
}

// PlayerByID finds a player in the snapshot
func (s *State) PlayerByID(id string) (models.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

// PlayerWithRole finds the holder of a role in the snapshot
func (s *State) PlayerWithRole(role models.Role) (models.Player, bool) {
	for _, p := range s.Players {
		if p.Role == role {
			return p, true
		}
	}
	return models.Player{}, false
}

// State returns a snapshot of the whole game
func (g *Game) State() *State {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &State{
		ID:               g.id,
		CreatorID:        g.creatorID,
		Phase:            g.phase,
		Players:          g.playersLocked(),
		Turn:             g.turn,
		Missions:         g.missionsLocked(),
		SpecialMission:   -1,
		LeaderID:         g.leaderLocked(),
		Proposal:         cloneIDs(g.proposal),
		Team:             cloneIDs(g.team),
		RejectionCount:   g.rejectionCount,
		SpecialRoles:     append([]models.Role(nil), g.specialRoles...),
		Winner:           g.winner,
		EndReason:        g.endReason,
		AssassinTargetID: g.assassinTarget,
		StartedAt:        g.startedAt,
	}
	if g.phase.IsRunning() {
		s.TeamSizes = append([]int(nil), g.teamSizes[:]...)
		if IsSpecialMission(len(g.players), specialMission) {
			s.SpecialMission = specialMission
		}
	}
	if g.round != nil {
		s.Round = g.round.info()
	}
	return s
}

func (g *Game) playersLocked() []models.Player {
	out := make([]models.Player, len(g.players))
	for i, p := range g.players {
		out[i] = *p
	}
	return out
}

func (g *Game) missionsLocked() []models.MissionOutcome {
	return append([]models.MissionOutcome(nil), g.missions[:]...)
}

func (g *Game) leaderLocked() string {
	if g.leaderIndex < 0 || g.leaderIndex >= len(g.players) {
		return ""
	}
	return g.players[g.leaderIndex].ID
}

func (g *Game) findPlayer(id string) (int, *models.Player) {
	for i, p := range g.players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (g *Game) playerIDs() []string {
	ids := make([]string, len(g.players))
	for i, p := range g.players {
		ids[i] = p.ID
	}
	return ids
}

// checkMutable rejects any change once the winner is decided
func (g *Game) checkMutable() error {
	if g.winner != models.WinnerNone {
		return ErrGameOver
	}
	return nil
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
