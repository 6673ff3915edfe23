package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local wiring. The mutex
// only protects the maps themselves; cross-request correctness still comes
// from the same version checks the postgres adapter enforces.
type Store struct {
	mu sync.RWMutex

	questions     map[string]entities.Question
	answers       map[string]entities.Answer
	notifications map[string]entities.Notification
}

func NewStore() *Store {
	return &Store{
		questions:     make(map[string]entities.Question),
		answers:       make(map[string]entities.Answer),
		notifications: make(map[string]entities.Notification),
	}
}

// SeedQuestion and SeedAnswer install records directly, bypassing version
// checks. Test setup only.
func (s *Store) SeedQuestion(question entities.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[strings.TrimSpace(question.QuestionID)] = cloneQuestion(question)
}

func (s *Store) SeedAnswer(answer entities.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[strings.TrimSpace(answer.AnswerID)] = cloneAnswer(answer)
}

func (s *Store) GetQuestion(_ context.Context, questionID string) (entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.questions[strings.TrimSpace(questionID)]
	if !ok {
		return entities.Question{}, domainerrors.ErrQuestionNotFound
	}
	return cloneQuestion(question), nil
}

func (s *Store) SaveQuestion(_ context.Context, question entities.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveQuestionLocked(question)
}

func (s *Store) GetAnswer(_ context.Context, answerID string) (entities.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answer, ok := s.answers[strings.TrimSpace(answerID)]
	if !ok {
		return entities.Answer{}, domainerrors.ErrAnswerNotFound
	}
	return cloneAnswer(answer), nil
}

func (s *Store) SaveAnswer(_ context.Context, answer entities.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAnswerLocked(answer)
}

func (s *Store) CreateAnswer(_ context.Context, answer entities.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	answerID := strings.TrimSpace(answer.AnswerID)
	if _, exists := s.answers[answerID]; exists {
		return domainerrors.ErrVersionConflict
	}
	answer.Version = 1
	s.answers[answerID] = cloneAnswer(answer)
	return nil
}

// CommitAcceptance applies the handover under one lock hold: every record is
// version-checked first, then all of them land. No observer can see a state
// with two accepted answers.
func (s *Store) CommitAcceptance(_ context.Context, commit ports.AcceptanceCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.questions[strings.TrimSpace(commit.Question.QuestionID)]
	if !ok {
		return domainerrors.ErrQuestionNotFound
	}
	if current.Version != commit.Question.Version {
		return domainerrors.ErrVersionConflict
	}
	answer, ok := s.answers[strings.TrimSpace(commit.Answer.AnswerID)]
	if !ok {
		return domainerrors.ErrAnswerNotFound
	}
	if answer.Version != commit.Answer.Version {
		return domainerrors.ErrVersionConflict
	}
	if commit.PreviousAnswer != nil {
		previous, ok := s.answers[strings.TrimSpace(commit.PreviousAnswer.AnswerID)]
		if !ok {
			return domainerrors.ErrAnswerNotFound
		}
		if previous.Version != commit.PreviousAnswer.Version {
			return domainerrors.ErrVersionConflict
		}
	}

	if err := s.saveQuestionLocked(commit.Question); err != nil {
		return err
	}
	if err := s.saveAnswerLocked(commit.Answer); err != nil {
		return err
	}
	if commit.PreviousAnswer != nil {
		if err := s.saveAnswerLocked(*commit.PreviousAnswer); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[strings.TrimSpace(notification.NotificationID)] = notification
	return nil
}

func (s *Store) ListNotifications(
	_ context.Context,
	recipientID string,
	unreadOnly bool,
	limit int,
) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipientID = strings.TrimSpace(recipientID)
	items := make([]entities.Notification, 0)
	for _, notification := range s.notifications {
		if notification.RecipientID != recipientID {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		items = append(items, notification)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) CountUnread(_ context.Context, recipientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipientID = strings.TrimSpace(recipientID)
	count := 0
	for _, notification := range s.notifications {
		if notification.RecipientID == recipientID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) saveQuestionLocked(question entities.Question) error {
	questionID := strings.TrimSpace(question.QuestionID)
	current, ok := s.questions[questionID]
	if !ok {
		return domainerrors.ErrQuestionNotFound
	}
	if current.Version != question.Version {
		return domainerrors.ErrVersionConflict
	}
	question.Version++
	s.questions[questionID] = cloneQuestion(question)
	return nil
}

func (s *Store) saveAnswerLocked(answer entities.Answer) error {
	answerID := strings.TrimSpace(answer.AnswerID)
	current, ok := s.answers[answerID]
	if !ok {
		return domainerrors.ErrAnswerNotFound
	}
	if current.Version != answer.Version {
		return domainerrors.ErrVersionConflict
	}
	answer.Version++
	s.answers[answerID] = cloneAnswer(answer)
	return nil
}

func cloneQuestion(question entities.Question) entities.Question {
	question.AnswerIDs = append([]string(nil), question.AnswerIDs...)
	question.Votes = cloneVoteBook(question.Votes)
	return question
}

func cloneAnswer(answer entities.Answer) entities.Answer {
	answer.Votes = cloneVoteBook(answer.Votes)
	return answer
}

func cloneVoteBook(votes entities.VoteBook) entities.VoteBook {
	return entities.VoteBook{
		Upvoters:   append([]string(nil), votes.Upvoters...),
		Downvoters: append([]string(nil), votes.Downvoters...),
	}
}
