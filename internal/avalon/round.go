package avalon

import "github.com/KirkDiggler/avalon/internal/models"

// round is one open vote: the players required to vote and the ballots cast so far
type round struct {
	id     string
	kind   models.VoteKind
	voters []string
	votes  map[string]bool
}

func newRound(id string, kind models.VoteKind, voters []string) *round {
	v := make([]string, len(voters))
	copy(v, voters)
	return &round{
		id:     id,
		kind:   kind,
		voters: v,
		votes:  make(map[string]bool, len(voters)),
	}
}

// eligible reports whether the player is in the required voter set
func (r *round) eligible(playerID string) bool {
	for _, id := range r.voters {
		if id == playerID {
			return true
		}
	}
	return false
}

// cast records a ballot; it never overwrites an earlier one
func (r *round) cast(playerID string, vote bool) error {
	if !r.eligible(playerID) {
		return ErrNotEligible
	}
	if _, voted := r.votes[playerID]; voted {
		return ErrAlreadyVoted
	}
	r.votes[playerID] = vote
	return nil
}

// complete is true exactly when every required voter has voted once
func (r *round) complete() bool {
	return len(r.votes) == len(r.voters)
}

// pending returns the voters still to vote, in voter order
func (r *round) pending() []string {
	out := make([]string, 0, len(r.voters)-len(r.votes))
	for _, id := range r.voters {
		if _, voted := r.votes[id]; !voted {
			out = append(out, id)
		}
	}
	return out
}

func (r *round) tally() Tally {
	t := Tally{}
	for _, v := range r.votes {
		if v {
			t.Yes++
		} else {
			t.No++
		}
	}
	return t
}

func (r *round) info() *RoundInfo {
	voters := make([]string, len(r.voters))
	copy(voters, r.voters)
	return &RoundInfo{
		ID:      r.id,
		Kind:    r.kind,
		Voters:  voters,
		Pending: r.pending(),
	}
}

// Tally counts the ballots of a completed round
type Tally struct {
	Yes int
	No  int
}

// Total returns the number of ballots
func (t Tally) Total() int {
	return t.Yes + t.No
}

// RoundInfo describes an open vote round
type RoundInfo struct {
	// ID identifies the round so late ballots from an old poll can be refused
	ID string

	// Kind is approval (whole table) or mission (team only)
	Kind models.VoteKind

	// Voters is every player required to vote
	Voters []string

	// Pending is the voters that have not voted yet
	Pending []string
}

// VoteOption adjusts how a ballot is validated
type VoteOption func(*voteOptions)

type voteOptions struct {
	roundID string
}

// InRound rejects the ballot with ErrStaleRound unless roundID is the open round
func InRound(roundID string) VoteOption {
	return func(o *voteOptions) {
		o.roundID = roundID
	}
}

func applyVoteOptions(opts []VoteOption) voteOptions {
	o := voteOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
