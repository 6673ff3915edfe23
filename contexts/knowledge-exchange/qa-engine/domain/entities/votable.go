package entities

import domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"

type VoteDirection string

const (
	VoteDirectionUp   VoteDirection = "up"
	VoteDirectionDown VoteDirection = "down"
)

type VotableKind string

const (
	VotableKindQuestion VotableKind = "question"
	VotableKindAnswer   VotableKind = "answer"
)

// VoteBook holds the per-entity vote membership sets. A voter id appears in
// at most one of the two sets; Apply is the only mutation path and preserves
// that exclusivity.
type VoteBook struct {
	Upvoters   []string
	Downvoters []string
}

// Apply computes the next vote-set state for one voter:
// same-direction repeat retracts the vote, opposite direction switches it,
// otherwise the vote is recorded fresh. Returns a new VoteBook; the receiver
// is never mutated so callers can retry against fresh snapshots safely.
func (b VoteBook) Apply(voterID string, direction VoteDirection) (VoteBook, error) {
	if direction != VoteDirectionUp && direction != VoteDirectionDown {
		return VoteBook{}, domainerrors.ErrInvalidVoteDirection
	}

	hadUpvote := containsVoter(b.Upvoters, voterID)
	hadDownvote := containsVoter(b.Downvoters, voterID)

	next := VoteBook{
		Upvoters:   withoutVoter(b.Upvoters, voterID),
		Downvoters: withoutVoter(b.Downvoters, voterID),
	}
	switch direction {
	case VoteDirectionUp:
		if !hadUpvote {
			next.Upvoters = append(next.Upvoters, voterID)
		}
	case VoteDirectionDown:
		if !hadDownvote {
			next.Downvoters = append(next.Downvoters, voterID)
		}
	}
	return next, nil
}

// Score is always derived from the sets, never cached.
func (b VoteBook) Score() int {
	return len(b.Upvoters) - len(b.Downvoters)
}

func (b VoteBook) HasUpvoted(voterID string) bool {
	return containsVoter(b.Upvoters, voterID)
}

func (b VoteBook) HasDownvoted(voterID string) bool {
	return containsVoter(b.Downvoters, voterID)
}

func containsVoter(voters []string, voterID string) bool {
	for _, id := range voters {
		if id == voterID {
			return true
		}
	}
	return false
}

func withoutVoter(voters []string, voterID string) []string {
	filtered := make([]string, 0, len(voters))
	for _, id := range voters {
		if id != voterID {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
