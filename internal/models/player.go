package models

// Player is a participant in a single game
type Player struct {
	// ID is the stable external identity of the player (chat platform user ID)
	ID string

	// Name is the display name of the player
	Name string

	// Role is the card dealt to the player, empty until the game starts
	Role Role

	// Online is false while a player has left a running game
	Online bool
}

// IsGood reports whether the player holds a good role
func (p *Player) IsGood() bool {
	return p.Role.IsGood()
}

// IsEvil reports whether the player holds an evil role
func (p *Player) IsEvil() bool {
	return p.Role.IsEvil()
}
