package entities

import "time"

type NotificationKind string

const (
	NotificationKindAnswerPosted   NotificationKind = "answer_posted"
	NotificationKindAnswerAccepted NotificationKind = "answer_accepted"
)

// Notification is an append-only fan-out record. The engine only creates
// notifications; marking them read is owned by the surrounding platform.
type Notification struct {
	NotificationID string
	RecipientID    string
	SenderID       string
	Kind           NotificationKind
	Message        string
	QuestionID     string
	AnswerID       string
	Read           bool
	CreatedAt      time.Time
}
