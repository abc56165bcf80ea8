package avalon

import "github.com/KirkDiggler/avalon/internal/models"

const (
	// MinPlayers is the smallest supported table
	MinPlayers = 5

	// MaxPlayers is the largest supported table; reaching it in the lobby starts the game
	MaxPlayers = 10

	// MissionCount is the number of missions in a game
	MissionCount = 5

	// MaxRejections is the number of consecutive rejected teams that hands evil the game
	MaxRejections = 5

	// specialMission is the zero-based mission that tolerates a single fail vote
	specialMission = 3

	// specialMissionMinPlayers is the smallest table where the special mission applies
	specialMissionMinPlayers = 7
)

// Setup is the fixed table configuration for a roster size
type Setup struct {
	// TeamSizes is the team size required for each mission
	TeamSizes [MissionCount]int

	// GoodSeats is the number of players on the good side
	GoodSeats int
}

// EvilSeats returns the number of players on the evil side for n players
func (s Setup) EvilSeats(n int) int {
	return n - s.GoodSeats
}

var setups = map[int]Setup{
	5:  {TeamSizes: [MissionCount]int{2, 3, 2, 3, 3}, GoodSeats: 3},
	6:  {TeamSizes: [MissionCount]int{2, 3, 4, 3, 4}, GoodSeats: 4},
	7:  {TeamSizes: [MissionCount]int{2, 3, 3, 4, 4}, GoodSeats: 4},
	8:  {TeamSizes: [MissionCount]int{3, 4, 4, 5, 5}, GoodSeats: 5},
	9:  {TeamSizes: [MissionCount]int{3, 4, 4, 5, 5}, GoodSeats: 6},
	10: {TeamSizes: [MissionCount]int{3, 4, 4, 5, 5}, GoodSeats: 6},
}

// SetupFor returns the table configuration for n players
func SetupFor(n int) (Setup, bool) {
	s, ok := setups[n]
	return s, ok
}

// MandatoryRoles are part of every game
func MandatoryRoles() []models.Role {
	return []models.Role{models.RoleMerlin, models.RoleAssassin}
}

// IsSpecialMission reports whether the mission at index turn tolerates one fail vote for n players
func IsSpecialMission(n, turn int) bool {
	return n >= specialMissionMinPlayers && turn == specialMission
}

// toleratedFails returns how many fail votes a mission can absorb and still succeed
func toleratedFails(n, turn int) int {
	if IsSpecialMission(n, turn) {
		return 1
	}
	return 0
}

// majority is the number of missions a faction needs to win
func majority() int {
	return MissionCount/2 + 1
}

// requiredPlayers is the smallest roster that can seat the given special roles
func requiredPlayers(roles []models.Role) int {
	if len(roles) > MinPlayers {
		return len(roles)
	}
	return MinPlayers
}

// countAlignments splits roles into good and evil counts
func countAlignments(roles []models.Role) (good, evil int) {
	for _, r := range roles {
		if r.IsGood() {
			good++
		} else {
			evil++
		}
	}
	return good, evil
}

// checkFeasible validates that n players can be dealt the given special roles
func checkFeasible(n int, roles []models.Role) error {
	if n < requiredPlayers(roles) {
		return ErrNotEnoughPlayers
	}
	if n > MaxPlayers {
		return ErrTooManyPlayers
	}

	setup := setups[n]
	good, evil := countAlignments(roles)
	if good > setup.GoodSeats || evil > setup.EvilSeats(n) {
		return ErrRolesInfeasible
	}
	return nil
}

// normalizeRoles unions the mandatory roles, removes duplicates and sorts into declared order
func normalizeRoles(roles []models.Role) ([]models.Role, error) {
	seen := make(map[models.Role]bool, len(roles)+2)
	for _, r := range append(MandatoryRoles(), roles...) {
		if !r.IsValid() || !r.IsSpecial() {
			return nil, ErrInvalidRole
		}
		seen[r] = true
	}

	out := make([]models.Role, 0, len(seen))
	for _, r := range models.SpecialRoles() {
		if seen[r] {
			out = append(out, r)
		}
	}
	return out, nil
}
