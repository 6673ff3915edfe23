package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "devexchange/contexts/knowledge-exchange/qa-engine/application"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

const defaultMaxAttempts = 5

// VoteCommand is the write-model input for casting, switching, or
// retracting a vote on a question or answer.
type VoteCommand struct {
	VoterID    string
	TargetKind entities.VotableKind
	TargetID   string
	Direction  entities.VoteDirection
}

type VoteResult struct {
	TargetKind entities.VotableKind
	TargetID   string
	Score      int
	Upvoted    bool
	Downvoted  bool
}

// VoteUseCase serializes logically-concurrent votes on one entity through
// the store's version counter: each attempt is a full read-apply-save cycle,
// a version conflict discards the stale snapshot and retries, and the
// bounded budget turns livelock into ErrContention.
type VoteUseCase struct {
	Questions   ports.QuestionRepository
	Answers     ports.AnswerRepository
	Clock       ports.Clock
	MaxAttempts int
	Logger      *slog.Logger
}

func (uc VoteUseCase) Vote(ctx context.Context, cmd VoteCommand) (VoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	voterID := strings.TrimSpace(cmd.VoterID)
	targetID := strings.TrimSpace(cmd.TargetID)
	if voterID == "" || targetID == "" {
		return VoteResult{}, domainerrors.ErrInvalidInput
	}
	if cmd.TargetKind != entities.VotableKindQuestion && cmd.TargetKind != entities.VotableKindAnswer {
		return VoteResult{}, domainerrors.ErrInvalidVoteTarget
	}
	if cmd.Direction != entities.VoteDirectionUp && cmd.Direction != entities.VoteDirectionDown {
		return VoteResult{}, domainerrors.ErrInvalidVoteDirection
	}

	maxAttempts := uc.resolveMaxAttempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var (
			result VoteResult
			err    error
		)
		switch cmd.TargetKind {
		case entities.VotableKindQuestion:
			result, err = uc.voteOnQuestion(ctx, targetID, voterID, cmd.Direction)
		case entities.VotableKindAnswer:
			result, err = uc.voteOnAnswer(ctx, targetID, voterID, cmd.Direction)
		}
		if errors.Is(err, domainerrors.ErrVersionConflict) {
			logger.Info("vote snapshot went stale; retrying",
				"event", "qa_vote_version_conflict",
				"module", "knowledge-exchange/qa-engine",
				"layer", "application",
				"target_kind", string(cmd.TargetKind),
				"target_id", targetID,
				"voter_id", voterID,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return VoteResult{}, err
		}

		logger.Info("vote applied",
			"event", "qa_vote_applied",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"target_kind", string(cmd.TargetKind),
			"target_id", targetID,
			"voter_id", voterID,
			"direction", string(cmd.Direction),
			"score", result.Score,
		)
		return result, nil
	}

	logger.Warn("vote retry budget exhausted",
		"event", "qa_vote_contention",
		"module", "knowledge-exchange/qa-engine",
		"layer", "application",
		"target_kind", string(cmd.TargetKind),
		"target_id", targetID,
		"voter_id", voterID,
		"attempts", maxAttempts,
	)
	return VoteResult{}, domainerrors.ErrContention
}

func (uc VoteUseCase) voteOnQuestion(
	ctx context.Context,
	questionID string,
	voterID string,
	direction entities.VoteDirection,
) (VoteResult, error) {
	question, err := uc.Questions.GetQuestion(ctx, questionID)
	if err != nil {
		return VoteResult{}, err
	}
	votes, err := question.Votes.Apply(voterID, direction)
	if err != nil {
		return VoteResult{}, err
	}
	question.Votes = votes
	question.UpdatedAt = uc.now()
	if err := uc.Questions.SaveQuestion(ctx, question); err != nil {
		return VoteResult{}, err
	}
	return VoteResult{
		TargetKind: entities.VotableKindQuestion,
		TargetID:   question.QuestionID,
		Score:      votes.Score(),
		Upvoted:    votes.HasUpvoted(voterID),
		Downvoted:  votes.HasDownvoted(voterID),
	}, nil
}

func (uc VoteUseCase) voteOnAnswer(
	ctx context.Context,
	answerID string,
	voterID string,
	direction entities.VoteDirection,
) (VoteResult, error) {
	answer, err := uc.Answers.GetAnswer(ctx, answerID)
	if err != nil {
		return VoteResult{}, err
	}
	votes, err := answer.Votes.Apply(voterID, direction)
	if err != nil {
		return VoteResult{}, err
	}
	answer.Votes = votes
	answer.UpdatedAt = uc.now()
	if err := uc.Answers.SaveAnswer(ctx, answer); err != nil {
		return VoteResult{}, err
	}
	return VoteResult{
		TargetKind: entities.VotableKindAnswer,
		TargetID:   answer.AnswerID,
		Score:      votes.Score(),
		Upvoted:    votes.HasUpvoted(voterID),
		Downvoted:  votes.HasDownvoted(voterID),
	}, nil
}

func (uc VoteUseCase) resolveMaxAttempts() int {
	if uc.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return uc.MaxAttempts
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
