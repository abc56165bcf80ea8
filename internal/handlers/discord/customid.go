package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/avalon/internal/models"
)

// Component custom ID prefixes. The session travels in the ID because
// mission ballots and the assassin's menu are sent by DM, outside the channel.
const (
	prefixApproval    = "approval"
	prefixMission     = "mission"
	prefixAssassinate = "assassinate"

	// Lobby buttons only appear in the game channel
	ButtonJoinGame  = "join_game"
	ButtonBeginGame = "begin_game"

	ballotYes = "yes"
	ballotNo  = "no"
)

var errMalformedCustomID = errors.New("malformed component ID")

// VoteButton is a ballot decoded from a button click
type VoteButton struct {
	Kind      models.VoteKind
	SessionID string
	RoundID   string
	Yes       bool
}

// VoteButtonID encodes a ballot as approval:<session>:<round>:<yes|no> or
// mission:<session>:<round>:<yes|no>
func VoteButtonID(kind models.VoteKind, sessionID, roundID string, yes bool) string {
	prefix := prefixApproval
	if kind == models.VoteKindMission {
		prefix = prefixMission
	}

	ballot := ballotNo
	if yes {
		ballot = ballotYes
	}

	return strings.Join([]string{prefix, sessionID, roundID, ballot}, ":")
}

// ParseVoteButtonID decodes an ID built by VoteButtonID
func ParseVoteButtonID(customID string) (*VoteButton, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: %q", errMalformedCustomID, customID)
	}

	vote := &VoteButton{
		SessionID: parts[1],
		RoundID:   parts[2],
	}

	switch parts[0] {
	case prefixApproval:
		vote.Kind = models.VoteKindApproval
	case prefixMission:
		vote.Kind = models.VoteKindMission
	default:
		return nil, fmt.Errorf("%w: unknown prefix %q", errMalformedCustomID, parts[0])
	}

	switch parts[3] {
	case ballotYes:
		vote.Yes = true
	case ballotNo:
	default:
		return nil, fmt.Errorf("%w: unknown ballot %q", errMalformedCustomID, parts[3])
	}

	if vote.SessionID == "" || vote.RoundID == "" {
		return nil, fmt.Errorf("%w: %q", errMalformedCustomID, customID)
	}

	return vote, nil
}

// AssassinateMenuID names the assassin's target menu for a session
func AssassinateMenuID(sessionID string) string {
	return prefixAssassinate + ":" + sessionID
}

// ParseAssassinateMenuID returns the session of an assassin's target menu
func ParseAssassinateMenuID(customID string) (string, error) {
	sessionID, ok := strings.CutPrefix(customID, prefixAssassinate+":")
	if !ok || sessionID == "" || strings.Contains(sessionID, ":") {
		return "", fmt.Errorf("%w: %q", errMalformedCustomID, customID)
	}
	return sessionID, nil
}

// componentPrefix returns the routing prefix of a custom ID
func componentPrefix(customID string) string {
	prefix, _, _ := strings.Cut(customID, ":")
	return prefix
}
