package models

// GamePhase represents where a game is in its lifecycle
type GamePhase string

const (
	// GamePhaseLobby indicates players are still gathering
	GamePhaseLobby GamePhase = "lobby"

	// GamePhaseBuildTeam indicates the leader must propose a team and everyone votes on it
	GamePhaseBuildTeam GamePhase = "build_team"

	// GamePhaseQuest indicates the approved team is voting on the mission
	GamePhaseQuest GamePhase = "quest"

	// GamePhaseLastChance indicates good has won the missions and the assassin gets one guess
	GamePhaseLastChance GamePhase = "last_chance"
)

// IsLobby returns true if the game has not started
func (p GamePhase) IsLobby() bool {
	return p == GamePhaseLobby
}

// IsRunning returns true once roles have been dealt
func (p GamePhase) IsRunning() bool {
	return p == GamePhaseBuildTeam || p == GamePhaseQuest || p == GamePhaseLastChance
}

// MissionOutcome is the recorded result of a mission
type MissionOutcome string

const (
	// MissionPending indicates the mission has not been played
	MissionPending MissionOutcome = ""

	// MissionSucceeded indicates the mission passed
	MissionSucceeded MissionOutcome = "succeeded"

	// MissionFailed indicates the mission was sabotaged
	MissionFailed MissionOutcome = "failed"
)

// Winner is the final verdict of a game
type Winner string

const (
	WinnerNone Winner = ""
	WinnerGood Winner = "good"
	WinnerEvil Winner = "evil"
)

// Favors reports whether the verdict went to the given faction
func (w Winner) Favors(a Alignment) bool {
	return w != WinnerNone && string(w) == string(a)
}

// VoteKind separates the two kinds of vote rounds
type VoteKind string

const (
	// VoteKindApproval is the whole table voting on a proposed team
	VoteKindApproval VoteKind = "approval"

	// VoteKindMission is the team voting on mission success
	VoteKindMission VoteKind = "mission"
)
