package memory

import (
	"context"
	"errors"
	"testing"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

func TestSaveQuestionRejectsStaleSnapshot(t *testing.T) {
	store := NewStore()
	store.SeedQuestion(entities.Question{QuestionID: "q-1", AuthorID: "u-1", Version: 1})

	first, err := store.GetQuestion(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	second, err := store.GetQuestion(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}

	if err := store.SaveQuestion(context.Background(), first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveQuestion(context.Background(), second); !errors.Is(err, domainerrors.ErrVersionConflict) {
		t.Fatalf("expected version conflict for stale snapshot, got %v", err)
	}
}

func TestSaveAnswerAdvancesVersion(t *testing.T) {
	store := NewStore()
	store.SeedAnswer(entities.Answer{AnswerID: "a-1", QuestionID: "q-1", AuthorID: "u-1", Version: 1})

	answer, err := store.GetAnswer(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("get answer failed: %v", err)
	}
	if err := store.SaveAnswer(context.Background(), answer); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := store.GetAnswer(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("get answer failed: %v", err)
	}
	if reloaded.Version != 2 {
		t.Fatalf("expected version 2, got %d", reloaded.Version)
	}
}

func TestCommitAcceptanceAppliesAllOrNothing(t *testing.T) {
	store := NewStore()
	store.SeedQuestion(entities.Question{
		QuestionID:       "q-1",
		AuthorID:         "u-1",
		AnswerIDs:        []string{"a-1", "a-2"},
		AcceptedAnswerID: "a-1",
		Version:          1,
	})
	store.SeedAnswer(entities.Answer{AnswerID: "a-1", QuestionID: "q-1", AuthorID: "u-2", Accepted: true, Version: 1})
	store.SeedAnswer(entities.Answer{AnswerID: "a-2", QuestionID: "q-1", AuthorID: "u-3", Version: 1})

	question, _ := store.GetQuestion(context.Background(), "q-1")
	newAnswer, _ := store.GetAnswer(context.Background(), "a-2")
	previous, _ := store.GetAnswer(context.Background(), "a-1")

	question.AcceptedAnswerID = "a-2"
	newAnswer.Accepted = true
	previous.Accepted = false
	// Stale previous-answer version must reject the whole commit.
	previous.Version = 99

	err := store.CommitAcceptance(context.Background(), ports.AcceptanceCommit{
		Question:       question,
		Answer:         newAnswer,
		PreviousAnswer: &previous,
	})
	if !errors.Is(err, domainerrors.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	storedQuestion, _ := store.GetQuestion(context.Background(), "q-1")
	storedNew, _ := store.GetAnswer(context.Background(), "a-2")
	storedPrevious, _ := store.GetAnswer(context.Background(), "a-1")
	if storedQuestion.AcceptedAnswerID != "a-1" || storedNew.Accepted || !storedPrevious.Accepted {
		t.Fatalf("partial commit observed: question=%+v new=%+v previous=%+v",
			storedQuestion, storedNew, storedPrevious)
	}
}

func TestCommitAcceptanceHandover(t *testing.T) {
	store := NewStore()
	store.SeedQuestion(entities.Question{
		QuestionID:       "q-1",
		AuthorID:         "u-1",
		AnswerIDs:        []string{"a-1", "a-2"},
		AcceptedAnswerID: "a-1",
		Version:          1,
	})
	store.SeedAnswer(entities.Answer{AnswerID: "a-1", QuestionID: "q-1", AuthorID: "u-2", Accepted: true, Version: 1})
	store.SeedAnswer(entities.Answer{AnswerID: "a-2", QuestionID: "q-1", AuthorID: "u-3", Version: 1})

	question, _ := store.GetQuestion(context.Background(), "q-1")
	newAnswer, _ := store.GetAnswer(context.Background(), "a-2")
	previous, _ := store.GetAnswer(context.Background(), "a-1")
	question.AcceptedAnswerID = "a-2"
	newAnswer.Accepted = true
	previous.Accepted = false

	err := store.CommitAcceptance(context.Background(), ports.AcceptanceCommit{
		Question:       question,
		Answer:         newAnswer,
		PreviousAnswer: &previous,
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	storedQuestion, _ := store.GetQuestion(context.Background(), "q-1")
	storedNew, _ := store.GetAnswer(context.Background(), "a-2")
	storedPrevious, _ := store.GetAnswer(context.Background(), "a-1")
	if storedQuestion.AcceptedAnswerID != "a-2" || !storedNew.Accepted || storedPrevious.Accepted {
		t.Fatalf("handover not applied: question=%+v new=%+v previous=%+v",
			storedQuestion, storedNew, storedPrevious)
	}
}

func TestListNotificationsFiltersAndOrders(t *testing.T) {
	store := NewStore()
	for _, notification := range []entities.Notification{
		{NotificationID: "n-1", RecipientID: "u-1", Kind: entities.NotificationKindAnswerPosted, CreatedAt: store.Now()},
		{NotificationID: "n-2", RecipientID: "u-1", Kind: entities.NotificationKindAnswerAccepted, Read: true, CreatedAt: store.Now().Add(1)},
		{NotificationID: "n-3", RecipientID: "u-2", Kind: entities.NotificationKindAnswerPosted, CreatedAt: store.Now()},
	} {
		if err := store.CreateNotification(context.Background(), notification); err != nil {
			t.Fatalf("create notification failed: %v", err)
		}
	}

	all, err := store.ListNotifications(context.Background(), "u-1", false, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 || all[0].NotificationID != "n-2" {
		t.Fatalf("expected newest-first pair for u-1, got %+v", all)
	}

	unread, err := store.ListNotifications(context.Background(), "u-1", true, 0)
	if err != nil {
		t.Fatalf("unread list failed: %v", err)
	}
	if len(unread) != 1 || unread[0].NotificationID != "n-1" {
		t.Fatalf("expected single unread notification, got %+v", unread)
	}

	count, err := store.CountUnread(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected unread count 1, got %d", count)
	}
}
