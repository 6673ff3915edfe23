package queries

import (
	"context"
	"log/slog"
	"strings"

	application "devexchange/contexts/knowledge-exchange/qa-engine/application"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// NotificationUseCase is the read-only notification surface for the request
// layer. Marking notifications read belongs to the surrounding platform.
type NotificationUseCase struct {
	Notifications ports.NotificationRepository
	Cache         ports.UnreadCountCache
	Logger        *slog.Logger
}

func (uc NotificationUseCase) List(
	ctx context.Context,
	recipientID string,
	unreadOnly bool,
	limit int,
) ([]entities.Notification, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	return uc.Notifications.ListNotifications(ctx, recipientID, unreadOnly, limit)
}

// UnreadCount reads through the optional cache. Cache failures degrade to
// the repository count and never fail the query.
func (uc NotificationUseCase) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	logger := application.ResolveLogger(uc.Logger)

	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return 0, domainerrors.ErrInvalidInput
	}

	if uc.Cache != nil {
		count, found, err := uc.Cache.GetUnreadCount(ctx, recipientID)
		if err != nil {
			logger.Warn("unread count cache read failed",
				"event", "qa_unread_cache_read_failed",
				"module", "knowledge-exchange/qa-engine",
				"layer", "application",
				"recipient_id", recipientID,
				"error", err.Error(),
			)
		} else if found {
			return count, nil
		}
	}

	count, err := uc.Notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	if uc.Cache != nil {
		if err := uc.Cache.SetUnreadCount(ctx, recipientID, count); err != nil {
			logger.Warn("unread count cache write failed",
				"event", "qa_unread_cache_write_failed",
				"module", "knowledge-exchange/qa-engine",
				"layer", "application",
				"recipient_id", recipientID,
				"error", err.Error(),
			)
		}
	}
	return count, nil
}
