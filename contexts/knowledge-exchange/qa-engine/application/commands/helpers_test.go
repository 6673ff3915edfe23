package commands_test

import (
	"context"
	"sync"

	"devexchange/contexts/knowledge-exchange/qa-engine/adapters/memory"
	"devexchange/contexts/knowledge-exchange/qa-engine/application/commands"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

func newVoteUseCase(store *memory.Store) commands.VoteUseCase {
	return commands.VoteUseCase{
		Questions: store,
		Answers:   store,
		Clock:     store,
	}
}

func newDispatcher(store *memory.Store) commands.NotificationDispatcher {
	return commands.NotificationDispatcher{
		Notifications: store,
		IDGen:         store,
		Clock:         store,
	}
}

func newAcceptUseCase(store *memory.Store) commands.AcceptUseCase {
	return commands.AcceptUseCase{
		Questions:  store,
		Answers:    store,
		Acceptance: store,
		Notifier:   newDispatcher(store),
		Clock:      store,
		IDGen:      store,
	}
}

func newAnswerUseCase(store *memory.Store) commands.AnswerUseCase {
	return commands.AnswerUseCase{
		Questions: store,
		Answers:   store,
		Notifier:  newDispatcher(store),
		Clock:     store,
		IDGen:     store,
	}
}

// conflictingQuestions always rejects saves with a version conflict and
// counts the attempts, to exercise the bounded retry budget.
type conflictingQuestions struct {
	store    *memory.Store
	mu       sync.Mutex
	attempts int
}

func (c *conflictingQuestions) GetQuestion(ctx context.Context, questionID string) (entities.Question, error) {
	return c.store.GetQuestion(ctx, questionID)
}

func (c *conflictingQuestions) SaveQuestion(context.Context, entities.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	return domainerrors.ErrVersionConflict
}

func (c *conflictingQuestions) saveAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// flakyCommitter fails the first n commits with a version conflict, then
// delegates to the real store.
type flakyCommitter struct {
	store     *memory.Store
	remaining int
}

func (f *flakyCommitter) CommitAcceptance(ctx context.Context, commit ports.AcceptanceCommit) error {
	if f.remaining > 0 {
		f.remaining--
		return domainerrors.ErrVersionConflict
	}
	return f.store.CommitAcceptance(ctx, commit)
}

// failingNotifications rejects every write, standing in for a broken
// notification store.
type failingNotifications struct {
	ports.NotificationRepository
}

func (failingNotifications) CreateNotification(context.Context, entities.Notification) error {
	return context.DeadlineExceeded
}

// capturePublisher records published envelopes.
type capturePublisher struct {
	mu        sync.Mutex
	envelopes []ports.EventEnvelope
}

func (p *capturePublisher) Publish(_ context.Context, envelope ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envelopes = append(p.envelopes, envelope)
	return nil
}

func (p *capturePublisher) published() []ports.EventEnvelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.EventEnvelope(nil), p.envelopes...)
}
