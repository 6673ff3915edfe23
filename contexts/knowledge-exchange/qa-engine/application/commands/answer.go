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

type PostAnswerCommand struct {
	QuestionID string
	AuthorID   string
}

type PostAnswerResult struct {
	Answer entities.Answer
}

// AnswerUseCase creates an answer and links it to its question. The answer
// record is created once; only the question-side append runs inside the
// optimistic retry loop.
type AnswerUseCase struct {
	Questions   ports.QuestionRepository
	Answers     ports.AnswerRepository
	Notifier    NotificationDispatcher
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAttempts int
	Logger      *slog.Logger
}

func (uc AnswerUseCase) PostAnswer(ctx context.Context, cmd PostAnswerCommand) (PostAnswerResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	questionID := strings.TrimSpace(cmd.QuestionID)
	authorID := strings.TrimSpace(cmd.AuthorID)
	if questionID == "" || authorID == "" {
		return PostAnswerResult{}, domainerrors.ErrInvalidInput
	}

	question, err := uc.Questions.GetQuestion(ctx, questionID)
	if err != nil {
		return PostAnswerResult{}, err
	}

	answerID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return PostAnswerResult{}, err
	}
	now := uc.now()
	answer := entities.Answer{
		AnswerID:   answerID,
		QuestionID: question.QuestionID,
		AuthorID:   authorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Answers.CreateAnswer(ctx, answer); err != nil {
		return PostAnswerResult{}, err
	}

	maxAttempts := uc.resolveMaxAttempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		question, err = uc.Questions.GetQuestion(ctx, questionID)
		if err != nil {
			return PostAnswerResult{}, err
		}
		if !question.HasAnswer(answer.AnswerID) {
			question.AnswerIDs = append(question.AnswerIDs, answer.AnswerID)
		}
		question.UpdatedAt = uc.now()
		err = uc.Questions.SaveQuestion(ctx, question)
		if errors.Is(err, domainerrors.ErrVersionConflict) {
			logger.Info("answer link snapshot went stale; retrying",
				"event", "qa_answer_link_version_conflict",
				"module", "knowledge-exchange/qa-engine",
				"layer", "application",
				"question_id", questionID,
				"answer_id", answer.AnswerID,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return PostAnswerResult{}, err
		}

		logger.Info("answer posted",
			"event", "qa_answer_posted",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"question_id", question.QuestionID,
			"answer_id", answer.AnswerID,
			"author_id", authorID,
		)
		uc.emitCreated(ctx, AnswerCreatedEvent{
			Question: question,
			Answer:   answer,
			ActorID:  authorID,
		})
		return PostAnswerResult{Answer: answer}, nil
	}

	logger.Warn("answer link retry budget exhausted",
		"event", "qa_answer_link_contention",
		"module", "knowledge-exchange/qa-engine",
		"layer", "application",
		"question_id", questionID,
		"answer_id", answer.AnswerID,
		"attempts", maxAttempts,
	)
	return PostAnswerResult{}, domainerrors.ErrContention
}

func (uc AnswerUseCase) emitCreated(ctx context.Context, event AnswerCreatedEvent) {
	logger := application.ResolveLogger(uc.Logger)

	if err := uc.Notifier.AnswerCreated(ctx, event); err != nil {
		logger.Warn("answer-posted notification delivery failed",
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
	envelope := newAnswerEnvelope(eventID, EventTypeAnswerCreated, event.Question, event.Answer, event.ActorID, uc.now())
	if err := uc.Publisher.Publish(ctx, envelope); err != nil {
		logger.Warn("answer-posted event publish failed",
			"event", "qa_event_publish_failed",
			"module", "knowledge-exchange/qa-engine",
			"layer", "application",
			"event_id", eventID,
			"error", err.Error(),
		)
	}
}

func (uc AnswerUseCase) resolveMaxAttempts() int {
	if uc.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return uc.MaxAttempts
}

func (uc AnswerUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
