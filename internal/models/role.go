package models

// Alignment is the faction a role fights for
type Alignment string

const (
	// AlignmentGood is the loyal servants of Arthur
	AlignmentGood Alignment = "good"

	// AlignmentEvil is the minions of Mordred
	AlignmentEvil Alignment = "evil"
)

// Role identifies a character card. Roles are immutable and keyed by name.
type Role string

const (
	RoleMerlin       Role = "merlin"
	RolePercival     Role = "percival"
	RoleLoyalServant Role = "loyal_servant"
	RoleAssassin     Role = "assassin"
	RoleMorgana      Role = "morgana"
	RoleMordred      Role = "mordred"
	RoleOberon       Role = "oberon"
	RoleMinion       Role = "minion"
)

type roleInfo struct {
	displayName string
	alignment   Alignment
	special     bool
}

var roleTable = map[Role]roleInfo{
	RoleMerlin:       {"Merlin", AlignmentGood, true},
	RolePercival:     {"Percival", AlignmentGood, true},
	RoleLoyalServant: {"Loyal Servant of Arthur", AlignmentGood, false},
	RoleAssassin:     {"Assassin", AlignmentEvil, true},
	RoleMorgana:      {"Morgana", AlignmentEvil, true},
	RoleMordred:      {"Mordred", AlignmentEvil, true},
	RoleOberon:       {"Oberon", AlignmentEvil, true},
	RoleMinion:       {"Minion of Mordred", AlignmentEvil, false},
}

// declaredOrder is the order special roles are dealt in
var declaredOrder = []Role{
	RoleMerlin,
	RolePercival,
	RoleAssassin,
	RoleMorgana,
	RoleMordred,
	RoleOberon,
	RoleLoyalServant,
	RoleMinion,
}

// Roles returns every known role in declared order
func Roles() []Role {
	out := make([]Role, len(declaredOrder))
	copy(out, declaredOrder)
	return out
}

// SpecialRoles returns the roles that can be selected for a game, in declared order
func SpecialRoles() []Role {
	out := make([]Role, 0, len(declaredOrder))
	for _, r := range declaredOrder {
		if r.IsSpecial() {
			out = append(out, r)
		}
	}
	return out
}

// ParseRole looks a role up by name
func ParseRole(name string) (Role, bool) {
	r := Role(name)
	_, ok := roleTable[r]
	return r, ok
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	_, ok := roleTable[r]
	return ok
}

// DisplayName returns the human readable name of the role
func (r Role) DisplayName() string {
	return roleTable[r].displayName
}

// Alignment returns the faction of the role
func (r Role) Alignment() Alignment {
	return roleTable[r].alignment
}

// IsGood reports whether the role belongs to the good faction
func (r Role) IsGood() bool {
	return r.IsValid() && roleTable[r].alignment == AlignmentGood
}

// IsEvil reports whether the role belongs to the evil faction
func (r Role) IsEvil() bool {
	return r.IsValid() && roleTable[r].alignment == AlignmentEvil
}

// IsSpecial reports whether the role has a power beyond its alignment
func (r Role) IsSpecial() bool {
	return roleTable[r].special
}

// Order returns the position of the role in declared order, or -1 if unknown
func (r Role) Order() int {
	for i, d := range declaredOrder {
		if d == r {
			return i
		}
	}
	return -1
}
