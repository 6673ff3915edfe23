package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the postgres adapter. All writes are guarded by
// WHERE version = ?; zero affected rows on an existing record means the
// snapshot went stale and surfaces as ErrVersionConflict.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates or updates the engine's tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&questionModel{}, &answerModel{}, &notificationModel{})
}

func (r *Repository) GetQuestion(ctx context.Context, questionID string) (entities.Question, error) {
	var row questionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(questionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Question{}, domainerrors.ErrQuestionNotFound
		}
		return entities.Question{}, r.logError("qa_repo_get_question_failed", err,
			"question_id", strings.TrimSpace(questionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveQuestion(ctx context.Context, question entities.Question) error {
	return r.saveQuestionTx(r.db.WithContext(ctx), question)
}

func (r *Repository) GetAnswer(ctx context.Context, answerID string) (entities.Answer, error) {
	var row answerModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(answerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Answer{}, domainerrors.ErrAnswerNotFound
		}
		return entities.Answer{}, r.logError("qa_repo_get_answer_failed", err,
			"answer_id", strings.TrimSpace(answerID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveAnswer(ctx context.Context, answer entities.Answer) error {
	return r.saveAnswerTx(r.db.WithContext(ctx), answer)
}

func (r *Repository) CreateAnswer(ctx context.Context, answer entities.Answer) error {
	answer.Version = 1
	row := answerModelFromEntity(answer)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrVersionConflict
		}
		return r.logError("qa_repo_create_answer_failed", err,
			"answer_id", strings.TrimSpace(answer.AnswerID),
			"question_id", strings.TrimSpace(answer.QuestionID),
		)
	}
	return nil
}

// CommitAcceptance runs the acceptance handover in one transaction so no
// reader observes a half-applied handover. Any stale version rolls back the
// whole unit.
func (r *Repository) CommitAcceptance(ctx context.Context, commit ports.AcceptanceCommit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveQuestionTx(tx, commit.Question); err != nil {
			return err
		}
		if err := r.saveAnswerTx(tx, commit.Answer); err != nil {
			return err
		}
		if commit.PreviousAnswer != nil {
			if err := r.saveAnswerTx(tx, *commit.PreviousAnswer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil &&
		!errors.Is(err, domainerrors.ErrVersionConflict) &&
		!errors.Is(err, domainerrors.ErrQuestionNotFound) &&
		!errors.Is(err, domainerrors.ErrAnswerNotFound) {
		return r.logError("qa_repo_commit_acceptance_failed", err,
			"question_id", strings.TrimSpace(commit.Question.QuestionID),
			"answer_id", strings.TrimSpace(commit.Answer.AnswerID),
		)
	}
	return err
}

func (r *Repository) CreateNotification(ctx context.Context, notification entities.Notification) error {
	row := notificationModelFromEntity(notification)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("qa_repo_create_notification_failed", err,
			"notification_id", strings.TrimSpace(notification.NotificationID),
			"recipient_id", strings.TrimSpace(notification.RecipientID),
		)
	}
	return nil
}

func (r *Repository) ListNotifications(
	ctx context.Context,
	recipientID string,
	unreadOnly bool,
	limit int,
) ([]entities.Notification, error) {
	tx := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("recipient_id = ?", strings.TrimSpace(recipientID))
	if unreadOnly {
		tx = tx.Where("read = ?", false)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []notificationModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.logError("qa_repo_list_notifications_failed", err,
			"recipient_id", strings.TrimSpace(recipientID),
		)
	}
	items := make([]entities.Notification, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("recipient_id = ?", strings.TrimSpace(recipientID)).
		Where("read = ?", false).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("qa_repo_count_unread_failed", err,
			"recipient_id", strings.TrimSpace(recipientID),
		)
	}
	return int(count), nil
}

func (r *Repository) saveQuestionTx(tx *gorm.DB, question entities.Question) error {
	row := questionModelFromEntity(question)
	result := tx.Model(&questionModel{}).
		Where("id = ? AND version = ?", row.ID, question.Version).
		Updates(map[string]any{
			"answer_ids":         row.AnswerIDs,
			"accepted_answer_id": row.AcceptedAnswerID,
			"upvoters":           row.Upvoters,
			"downvoters":         row.Downvoters,
			"version":            question.Version + 1,
			"updated_at":         row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleOrMissingQuestion(tx, row.ID)
	}
	return nil
}

func (r *Repository) saveAnswerTx(tx *gorm.DB, answer entities.Answer) error {
	row := answerModelFromEntity(answer)
	result := tx.Model(&answerModel{}).
		Where("id = ? AND version = ?", row.ID, answer.Version).
		Updates(map[string]any{
			"accepted":   row.Accepted,
			"upvoters":   row.Upvoters,
			"downvoters": row.Downvoters,
			"version":    answer.Version + 1,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleOrMissingAnswer(tx, row.ID)
	}
	return nil
}

func (r *Repository) staleOrMissingQuestion(tx *gorm.DB, questionID string) error {
	var count int64
	if err := tx.Model(&questionModel{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrQuestionNotFound
	}
	return domainerrors.ErrVersionConflict
}

func (r *Repository) staleOrMissingAnswer(tx *gorm.DB, answerID string) error {
	var count int64
	if err := tx.Model(&answerModel{}).Where("id = ?", answerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrAnswerNotFound
	}
	return domainerrors.ErrVersionConflict
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "knowledge-exchange/qa-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("postgres repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
