package commands_test

import (
	"context"
	"errors"
	"testing"

	"devexchange/contexts/knowledge-exchange/qa-engine/adapters/memory"
	"devexchange/contexts/knowledge-exchange/qa-engine/application/commands"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
)

func TestPostAnswerLinksAndNotifies(t *testing.T) {
	store := memory.NewStore()
	store.SeedQuestion(entities.Question{QuestionID: "q-1", AuthorID: "u-1", Version: 1})
	uc := newAnswerUseCase(store)

	result, err := uc.PostAnswer(context.Background(), commands.PostAnswerCommand{
		QuestionID: "q-1",
		AuthorID:   "u-2",
	})
	if err != nil {
		t.Fatalf("post answer failed: %v", err)
	}
	if result.Answer.AnswerID == "" || result.Answer.QuestionID != "q-1" {
		t.Fatalf("unexpected answer: %+v", result.Answer)
	}

	answer, err := store.GetAnswer(context.Background(), result.Answer.AnswerID)
	if err != nil {
		t.Fatalf("answer not persisted: %v", err)
	}
	if answer.Accepted {
		t.Fatalf("new answer must not be accepted: %+v", answer)
	}

	question, _ := store.GetQuestion(context.Background(), "q-1")
	if !question.HasAnswer(result.Answer.AnswerID) {
		t.Fatalf("answer not linked to question: %+v", question)
	}

	notifications, _ := store.ListNotifications(context.Background(), "u-1", false, 0)
	if len(notifications) != 1 {
		t.Fatalf("expected one notification for question author, got %d", len(notifications))
	}
	if notifications[0].Kind != entities.NotificationKindAnswerPosted ||
		notifications[0].SenderID != "u-2" {
		t.Fatalf("unexpected notification: %+v", notifications[0])
	}
}

func TestPostAnswerToOwnQuestionDoesNotNotify(t *testing.T) {
	store := memory.NewStore()
	store.SeedQuestion(entities.Question{QuestionID: "q-1", AuthorID: "u-1", Version: 1})
	uc := newAnswerUseCase(store)

	if _, err := uc.PostAnswer(context.Background(), commands.PostAnswerCommand{
		QuestionID: "q-1",
		AuthorID:   "u-1",
	}); err != nil {
		t.Fatalf("post answer failed: %v", err)
	}

	notifications, _ := store.ListNotifications(context.Background(), "u-1", false, 0)
	if len(notifications) != 0 {
		t.Fatalf("self-answer must not notify, got %d notifications", len(notifications))
	}
}

func TestPostAnswerToUnknownQuestionFails(t *testing.T) {
	store := memory.NewStore()
	uc := newAnswerUseCase(store)

	if _, err := uc.PostAnswer(context.Background(), commands.PostAnswerCommand{
		QuestionID: "q-404",
		AuthorID:   "u-2",
	}); !errors.Is(err, domainerrors.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestPostAnswerPublishesCommittedEvent(t *testing.T) {
	store := memory.NewStore()
	store.SeedQuestion(entities.Question{QuestionID: "q-1", AuthorID: "u-1", Version: 1})

	publisher := &capturePublisher{}
	uc := newAnswerUseCase(store)
	uc.Publisher = publisher

	if _, err := uc.PostAnswer(context.Background(), commands.PostAnswerCommand{
		QuestionID: "q-1",
		AuthorID:   "u-2",
	}); err != nil {
		t.Fatalf("post answer failed: %v", err)
	}

	envelopes := publisher.published()
	if len(envelopes) != 1 || envelopes[0].EventType != commands.EventTypeAnswerCreated {
		t.Fatalf("expected one answer-created event, got %+v", envelopes)
	}
}
