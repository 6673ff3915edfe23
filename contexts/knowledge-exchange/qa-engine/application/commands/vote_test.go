package commands_test

import (
	"context"
	"errors"
	"testing"

	"devexchange/contexts/knowledge-exchange/qa-engine/adapters/memory"
	"devexchange/contexts/knowledge-exchange/qa-engine/application/commands"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
)

func seedAnsweredQuestion(store *memory.Store) {
	store.SeedQuestion(entities.Question{
		QuestionID: "q-1",
		AuthorID:   "u-1",
		AnswerIDs:  []string{"a-1"},
		Version:    1,
	})
	store.SeedAnswer(entities.Answer{
		AnswerID:   "a-1",
		QuestionID: "q-1",
		AuthorID:   "u-2",
		Version:    1,
	})
}

func TestVoteToggleAndSwitchOnAnswer(t *testing.T) {
	store := memory.NewStore()
	seedAnsweredQuestion(store)
	uc := newVoteUseCase(store)

	cmd := commands.VoteCommand{
		VoterID:    "u-3",
		TargetKind: entities.VotableKindAnswer,
		TargetID:   "a-1",
		Direction:  entities.VoteDirectionUp,
	}

	result, err := uc.Vote(context.Background(), cmd)
	if err != nil {
		t.Fatalf("upvote failed: %v", err)
	}
	if result.Score != 1 || !result.Upvoted {
		t.Fatalf("expected upvoted score 1, got %+v", result)
	}

	result, err = uc.Vote(context.Background(), cmd)
	if err != nil {
		t.Fatalf("repeat upvote failed: %v", err)
	}
	if result.Score != 0 || result.Upvoted || result.Downvoted {
		t.Fatalf("expected retracted vote with score 0, got %+v", result)
	}

	cmd.Direction = entities.VoteDirectionDown
	result, err = uc.Vote(context.Background(), cmd)
	if err != nil {
		t.Fatalf("downvote failed: %v", err)
	}
	if result.Score != -1 || !result.Downvoted {
		t.Fatalf("expected downvoted score -1, got %+v", result)
	}

	answer, err := store.GetAnswer(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("get answer failed: %v", err)
	}
	if answer.Votes.Score() != len(answer.Votes.Upvoters)-len(answer.Votes.Downvoters) {
		t.Fatalf("stored score drifted from sets: %+v", answer.Votes)
	}
}

func TestVoteOnQuestion(t *testing.T) {
	store := memory.NewStore()
	seedAnsweredQuestion(store)
	uc := newVoteUseCase(store)

	result, err := uc.Vote(context.Background(), commands.VoteCommand{
		VoterID:    "u-2",
		TargetKind: entities.VotableKindQuestion,
		TargetID:   "q-1",
		Direction:  entities.VoteDirectionUp,
	})
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if result.Score != 1 {
		t.Fatalf("expected score 1, got %d", result.Score)
	}

	question, err := store.GetQuestion(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	if !question.Votes.HasUpvoted("u-2") {
		t.Fatalf("vote not persisted: %+v", question.Votes)
	}
}

func TestVoteValidation(t *testing.T) {
	store := memory.NewStore()
	seedAnsweredQuestion(store)
	uc := newVoteUseCase(store)

	if _, err := uc.Vote(context.Background(), commands.VoteCommand{
		VoterID:    "u-3",
		TargetKind: entities.VotableKindAnswer,
		TargetID:   "a-1",
		Direction:  entities.VoteDirection("sideways"),
	}); !errors.Is(err, domainerrors.ErrInvalidVoteDirection) {
		t.Fatalf("expected invalid direction, got %v", err)
	}

	if _, err := uc.Vote(context.Background(), commands.VoteCommand{
		VoterID:    "u-3",
		TargetKind: entities.VotableKind("comment"),
		TargetID:   "a-1",
		Direction:  entities.VoteDirectionUp,
	}); !errors.Is(err, domainerrors.ErrInvalidVoteTarget) {
		t.Fatalf("expected invalid target kind, got %v", err)
	}

	if _, err := uc.Vote(context.Background(), commands.VoteCommand{
		TargetKind: entities.VotableKindAnswer,
		TargetID:   "a-1",
		Direction:  entities.VoteDirectionUp,
	}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank voter, got %v", err)
	}

	if _, err := uc.Vote(context.Background(), commands.VoteCommand{
		VoterID:    "u-3",
		TargetKind: entities.VotableKindAnswer,
		TargetID:   "a-404",
		Direction:  entities.VoteDirectionUp,
	}); !errors.Is(err, domainerrors.ErrAnswerNotFound) {
		t.Fatalf("expected answer not found, got %v", err)
	}
}

func TestVoteContentionExhaustsBudget(t *testing.T) {
	store := memory.NewStore()
	seedAnsweredQuestion(store)
	questions := &conflictingQuestions{store: store}

	uc := commands.VoteUseCase{
		Questions:   questions,
		Answers:     store,
		Clock:       store,
		MaxAttempts: 3,
	}

	_, err := uc.Vote(context.Background(), commands.VoteCommand{
		VoterID:    "u-3",
		TargetKind: entities.VotableKindQuestion,
		TargetID:   "q-1",
		Direction:  entities.VoteDirectionUp,
	})
	if !errors.Is(err, domainerrors.ErrContention) {
		t.Fatalf("expected contention error, got %v", err)
	}
	if questions.saveAttempts() != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", questions.saveAttempts())
	}
}
