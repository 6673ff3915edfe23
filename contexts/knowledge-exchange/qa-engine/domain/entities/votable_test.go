package entities

import (
	"errors"
	"testing"

	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
)

func TestApplyRecordsSwitchesAndRetracts(t *testing.T) {
	book := VoteBook{}

	book, err := book.Apply("user-1", VoteDirectionUp)
	if err != nil {
		t.Fatalf("new upvote failed: %v", err)
	}
	if !book.HasUpvoted("user-1") || book.Score() != 1 {
		t.Fatalf("expected upvote with score 1, got %+v", book)
	}

	book, err = book.Apply("user-1", VoteDirectionDown)
	if err != nil {
		t.Fatalf("vote switch failed: %v", err)
	}
	if book.HasUpvoted("user-1") || !book.HasDownvoted("user-1") || book.Score() != -1 {
		t.Fatalf("expected switched downvote with score -1, got %+v", book)
	}

	book, err = book.Apply("user-1", VoteDirectionDown)
	if err != nil {
		t.Fatalf("vote retract failed: %v", err)
	}
	if book.HasUpvoted("user-1") || book.HasDownvoted("user-1") || book.Score() != 0 {
		t.Fatalf("expected retracted vote with score 0, got %+v", book)
	}
}

func TestApplyDoubleUpvoteReturnsToNoVote(t *testing.T) {
	book := VoteBook{}

	book, err := book.Apply("user-1", VoteDirectionUp)
	if err != nil {
		t.Fatalf("first upvote failed: %v", err)
	}
	if book.Score() != 1 {
		t.Fatalf("expected score 1, got %d", book.Score())
	}

	book, err = book.Apply("user-1", VoteDirectionUp)
	if err != nil {
		t.Fatalf("second upvote failed: %v", err)
	}
	if book.Score() != 0 || book.HasUpvoted("user-1") {
		t.Fatalf("expected no vote after double upvote, got %+v", book)
	}
}

func TestApplyKeepsVoterInAtMostOneSet(t *testing.T) {
	book := VoteBook{}
	sequence := []VoteDirection{
		VoteDirectionUp,
		VoteDirectionDown,
		VoteDirectionDown,
		VoteDirectionUp,
		VoteDirectionUp,
		VoteDirectionDown,
	}
	for step, direction := range sequence {
		var err error
		book, err = book.Apply("user-1", direction)
		if err != nil {
			t.Fatalf("step %d failed: %v", step, err)
		}
		if book.HasUpvoted("user-1") && book.HasDownvoted("user-1") {
			t.Fatalf("voter present in both sets after step %d", step)
		}
		if book.Score() != len(book.Upvoters)-len(book.Downvoters) {
			t.Fatalf("score drifted from sets after step %d", step)
		}
	}
}

func TestApplyRejectsUnknownDirection(t *testing.T) {
	book := VoteBook{}
	if _, err := book.Apply("user-1", VoteDirection("sideways")); !errors.Is(err, domainerrors.ErrInvalidVoteDirection) {
		t.Fatalf("expected invalid direction error, got %v", err)
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	original := VoteBook{Upvoters: []string{"user-1"}}

	updated, err := original.Apply("user-2", VoteDirectionDown)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(original.Downvoters) != 0 {
		t.Fatalf("receiver was mutated: %+v", original)
	}
	if updated.Score() != 0 {
		t.Fatalf("expected score 0, got %d", updated.Score())
	}
}
