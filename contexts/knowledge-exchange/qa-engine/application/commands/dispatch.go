package commands

import (
	"context"
	"log/slog"
	"time"

	application "devexchange/contexts/knowledge-exchange/qa-engine/application"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

// NotificationDispatcher turns a committed domain event into zero or one
// notification record. It runs strictly after the primary commit; failures
// are reported to the caller, which logs them and still returns success for
// the primary operation. Self-triggered events produce nothing.
type NotificationDispatcher struct {
	Notifications ports.NotificationRepository
	Cache         ports.UnreadCountCache
	IDGen         ports.IDGenerator
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (d NotificationDispatcher) AnswerCreated(ctx context.Context, event AnswerCreatedEvent) error {
	if event.ActorID == event.Question.AuthorID {
		return nil
	}
	return d.create(ctx, entities.Notification{
		RecipientID: event.Question.AuthorID,
		SenderID:    event.ActorID,
		Kind:        entities.NotificationKindAnswerPosted,
		Message:     "Your question received a new answer.",
		QuestionID:  event.Question.QuestionID,
		AnswerID:    event.Answer.AnswerID,
	})
}

func (d NotificationDispatcher) AnswerAccepted(ctx context.Context, event AnswerAcceptedEvent) error {
	if event.ActorID == event.Answer.AuthorID {
		return nil
	}
	return d.create(ctx, entities.Notification{
		RecipientID: event.Answer.AuthorID,
		SenderID:    event.ActorID,
		Kind:        entities.NotificationKindAnswerAccepted,
		Message:     "Your answer was accepted by the question author.",
		QuestionID:  event.Question.QuestionID,
		AnswerID:    event.Answer.AnswerID,
	})
}

func (d NotificationDispatcher) create(ctx context.Context, notification entities.Notification) error {
	logger := application.ResolveLogger(d.Logger)

	notificationID, err := d.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	notification.NotificationID = notificationID
	notification.CreatedAt = d.now()

	if err := d.Notifications.CreateNotification(ctx, notification); err != nil {
		return err
	}

	// Cache invalidation is advisory; a stale unread count self-heals on the
	// next read-through.
	if d.Cache != nil {
		if err := d.Cache.InvalidateUnreadCount(ctx, notification.RecipientID); err != nil {
			logger.Warn("unread count cache invalidation failed",
				"event", "qa_unread_cache_invalidate_failed",
				"module", "knowledge-exchange/qa-engine",
				"layer", "application",
				"recipient_id", notification.RecipientID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("notification dispatched",
		"event", "qa_notification_dispatched",
		"module", "knowledge-exchange/qa-engine",
		"layer", "application",
		"notification_id", notification.NotificationID,
		"recipient_id", notification.RecipientID,
		"sender_id", notification.SenderID,
		"kind", string(notification.Kind),
	)
	return nil
}

func (d NotificationDispatcher) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
