package ports

import (
	"context"
	"time"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
)

// QuestionRepository and AnswerRepository use optimistic versioning: Save
// persists the snapshot only if the stored version still equals the
// snapshot's Version field, then advances it by one. A stale snapshot fails
// with domainerrors.ErrVersionConflict and the caller re-reads and retries.
type QuestionRepository interface {
	GetQuestion(ctx context.Context, questionID string) (entities.Question, error)
	SaveQuestion(ctx context.Context, question entities.Question) error
}

type AnswerRepository interface {
	GetAnswer(ctx context.Context, answerID string) (entities.Answer, error)
	SaveAnswer(ctx context.Context, answer entities.Answer) error
	CreateAnswer(ctx context.Context, answer entities.Answer) error
}

// AcceptanceCommit is the multi-record commit unit for an acceptance
// handover. PreviousAnswer is nil on first acceptance. All records are
// version-checked and either all land or none do, so no reader ever observes
// two accepted answers for one question.
type AcceptanceCommit struct {
	Question       entities.Question
	Answer         entities.Answer
	PreviousAnswer *entities.Answer
}

type AcceptanceCommitter interface {
	CommitAcceptance(ctx context.Context, commit AcceptanceCommit) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification entities.Notification) error
	ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]entities.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

// UnreadCountCache is an optional read-through cache in front of
// CountUnread. Dispatch invalidates it; misses fall back to the repository.
type UnreadCountCache interface {
	GetUnreadCount(ctx context.Context, recipientID string) (int, bool, error)
	SetUnreadCount(ctx context.Context, recipientID string, count int) error
	InvalidateUnreadCount(ctx context.Context, recipientID string) error
}

// EventEnvelope is the committed-event shape handed to in-process
// subscribers. Publishing is best-effort and strictly after the primary
// commit.
type EventEnvelope struct {
	EventID      string         `json:"event_id"`
	EventType    string         `json:"event_type"`
	PartitionKey string         `json:"partition_key"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Payload      map[string]any `json:"payload"`
}

type EventPublisher interface {
	Publish(ctx context.Context, envelope EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
