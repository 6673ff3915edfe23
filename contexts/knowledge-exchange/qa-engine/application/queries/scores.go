package queries

import (
	"context"
	"strings"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

// VoteTally is derived from the vote sets on every read; the score is never
// stored independently of them.
type VoteTally struct {
	TargetKind entities.VotableKind
	TargetID   string
	Upvotes    int
	Downvotes  int
	Score      int
	Accepted   bool
}

type ScoreUseCase struct {
	Questions ports.QuestionRepository
	Answers   ports.AnswerRepository
}

func (uc ScoreUseCase) Tally(
	ctx context.Context,
	kind entities.VotableKind,
	targetID string,
) (VoteTally, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return VoteTally{}, domainerrors.ErrInvalidInput
	}

	switch kind {
	case entities.VotableKindQuestion:
		question, err := uc.Questions.GetQuestion(ctx, targetID)
		if err != nil {
			return VoteTally{}, err
		}
		return VoteTally{
			TargetKind: entities.VotableKindQuestion,
			TargetID:   question.QuestionID,
			Upvotes:    len(question.Votes.Upvoters),
			Downvotes:  len(question.Votes.Downvoters),
			Score:      question.Votes.Score(),
		}, nil
	case entities.VotableKindAnswer:
		answer, err := uc.Answers.GetAnswer(ctx, targetID)
		if err != nil {
			return VoteTally{}, err
		}
		return VoteTally{
			TargetKind: entities.VotableKindAnswer,
			TargetID:   answer.AnswerID,
			Upvotes:    len(answer.Votes.Upvoters),
			Downvotes:  len(answer.Votes.Downvoters),
			Score:      answer.Votes.Score(),
			Accepted:   answer.Accepted,
		}, nil
	default:
		return VoteTally{}, domainerrors.ErrInvalidVoteTarget
	}
}
