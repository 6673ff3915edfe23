package commands

import (
	"time"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

const (
	EventTypeAnswerCreated  = "qa.answer.created"
	EventTypeAnswerAccepted = "qa.answer.accepted"
)

// AnswerCreatedEvent and AnswerAcceptedEvent are transient: produced exactly
// once per successful commit, consumed by the notification dispatcher and
// any in-process subscribers, never persisted.
type AnswerCreatedEvent struct {
	Question entities.Question
	Answer   entities.Answer
	ActorID  string
}

type AnswerAcceptedEvent struct {
	Question entities.Question
	Answer   entities.Answer
	ActorID  string
}

func newAnswerEnvelope(
	eventID string,
	eventType string,
	question entities.Question,
	answer entities.Answer,
	actorID string,
	occurredAt time.Time,
) ports.EventEnvelope {
	return ports.EventEnvelope{
		EventID:      eventID,
		EventType:    eventType,
		PartitionKey: question.QuestionID,
		OccurredAt:   occurredAt.UTC(),
		Payload: map[string]any{
			"question_id":        question.QuestionID,
			"question_author_id": question.AuthorID,
			"answer_id":          answer.AnswerID,
			"answer_author_id":   answer.AuthorID,
			"actor_id":           actorID,
			"occurred_at":        occurredAt.UTC().Format(time.RFC3339),
		},
	}
}
