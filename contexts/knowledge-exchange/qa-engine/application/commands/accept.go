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

type AcceptAnswerCommand struct {
	QuestionID  string
	AnswerID    string
	RequesterID string
}

type AcceptAnswerResult struct {
	AcceptedAnswerID string
	AlreadyAccepted  bool
}

// AcceptUseCase enforces the single-accepted-answer invariant. The three
// field mutations of a handover (old flag off, new flag on, question
// pointer) go through one version-checked multi-record commit; accepting a
// different answer is the only way to un-accept the previous one.
type AcceptUseCase struct {
	Questions   ports.QuestionRepository
	Answers     ports.AnswerRepository
	Acceptance  ports.AcceptanceCommitter
	Notifier    NotificationDispatcher
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAttempts int
	Logger      *slog.Logger
}

func (uc AcceptUseCase) AcceptAnswer(ctx context.Context, cmd AcceptAnswerCommand) (AcceptAnswerResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	questionID := strings.TrimSpace(cmd.QuestionID)
	answerID := strings.TrimSpace(cmd.AnswerID)
	requesterID := strings.TrimSpace(cmd.RequesterID)
	if questionID == "" || answerID == "" || requesterID == "" {
		return AcceptAnswerResult{}, domainerrors.ErrInvalidInput
	}

	maxAttempts := uc.resolveMaxAttempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		question, err := uc.Questions.GetQuestion(ctx, questionID)
		if err != nil {
			return AcceptAnswerResult{}, err
		}
		answer, err := uc.Answers.GetAnswer(ctx, answerID)
		if err != nil {
			return AcceptAnswerResult{}, err
		}
		if question.AuthorID != requesterID {
			return AcceptAnswerResult{}, domainerrors.ErrNotQuestionAuthor
		}
		if answer.QuestionID != question.QuestionID {
			return AcceptAnswerResult{}, domainerrors.ErrAnswerQuestionMismatch
		}

		// Re-accepting the current answer is a no-op success, which also
		// lets the loser of a concurrent acceptance race re-issue safely.
		if question.AcceptedAnswerID == answer.AnswerID {
			return AcceptAnswerResult{AcceptedAnswerID: answer.AnswerID, AlreadyAccepted: true}, nil
		}

		now := uc.now()
		var previous *entities.Answer
		if question.AcceptedAnswerID != "" {
			prev, err := uc.Answers.GetAnswer(ctx, question.AcceptedAnswerID)
			switch {
			case errors.Is(err, domainerrors.ErrAnswerNotFound):
				// The pointer is ground truth; a dangling previous answer
				// leaves nothing to clear.
				logger.Warn("previously accepted answer missing; proceeding",
					"event", "qa_accept_previous_answer_missing",
					"module", "knowledge-exchange/qa-engine",
					"layer", "application",
					"question_id", question.QuestionID,
					"previous_answer_id", question.AcceptedAnswerID,
				)
			case err != nil:
				return AcceptAnswerResult{}, err
			default:
				prev.Accepted = false
				prev.UpdatedAt = now
				previous = &prev
			}
		}

		answer.Accepted = true
		answer.UpdatedAt = now
		question.AcceptedAnswerID = answer.AnswerID
		question.UpdatedAt = now

		err = uc.Acceptance.CommitAcceptance(ctx, ports.AcceptanceCommit{
			Question:       question,
			Answer:         answer,
			PreviousAnswer: previous,
		})
		if errors.Is(err, domainerrors.ErrVersionConflict) {
			logger.Info("acceptance snapshot went stale; retrying",
				"event", "qa_accept_version_conflict",
				"module", "knowledge-exchange/qa-engine",
				"layer", "application",
				"question_id", questionID,
				"answer_id", answerID,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return AcceptAnswerResult{}, err
		}

		logger.Info("answer accepted",
			"event", "qa_answer_accepted",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"question_id", question.QuestionID,
			"answer_id", answer.AnswerID,
			"requester_id", requesterID,
		)

		// Single emission point: once, after the commit, outside the retry
		// loop's reach. Fan-out failures never undo the acceptance.
		uc.emitAccepted(ctx, AnswerAcceptedEvent{
			Question: question,
			Answer:   answer,
			ActorID:  requesterID,
		})
		return AcceptAnswerResult{AcceptedAnswerID: answer.AnswerID}, nil
	}

	logger.Warn("acceptance retry budget exhausted",
		"event", "qa_accept_contention",
		"module", "knowledge-exchange/qa-engine",
		"layer", "application",
		"question_id", questionID,
		"answer_id", answerID,
		"attempts", maxAttempts,
	)
	return AcceptAnswerResult{}, domainerrors.ErrContention
}

func (uc AcceptUseCase) emitAccepted(ctx context.Context, event AnswerAcceptedEvent) {
	logger := application.ResolveLogger(uc.Logger)

	if err := uc.Notifier.AnswerAccepted(ctx, event); err != nil {
		logger.Warn("accepted-answer notification delivery failed",
			"event", "qa_notification_delivery_failed",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"question_id", event.Question.QuestionID,
			"answer_id", event.Answer.AnswerID,
			"error", err.Error(),
		)
	}
	if uc.Publisher == nil {
		return
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Warn("event id generation failed; skipping publish",
			"event", "qa_event_publish_failed",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}
	envelope := newAnswerEnvelope(eventID, EventTypeAnswerAccepted, event.Question, event.Answer, event.ActorID, uc.now())
	if err := uc.Publisher.Publish(ctx, envelope); err != nil {
		logger.Warn("accepted-answer event publish failed",
			"event", "qa_event_publish_failed",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"event_id", eventID,
			"error", err.Error(),
		)
	}
}

func (uc AcceptUseCase) resolveMaxAttempts() int {
	if uc.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return uc.MaxAttempts
}

func (uc AcceptUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
