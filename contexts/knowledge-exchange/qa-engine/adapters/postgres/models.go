package postgresadapter

import (
	"encoding/json"
	"time"

	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
)

type questionModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	AuthorID         string    `gorm:"column:author_id;index"`
	AnswerIDs        []byte    `gorm:"column:answer_ids;type:jsonb"`
	AcceptedAnswerID string    `gorm:"column:accepted_answer_id"`
	Upvoters         []byte    `gorm:"column:upvoters;type:jsonb"`
	Downvoters       []byte    `gorm:"column:downvoters;type:jsonb"`
	Version          int64     `gorm:"column:version"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (questionModel) TableName() string { return "questions" }

type answerModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	QuestionID string    `gorm:"column:question_id;index"`
	AuthorID   string    `gorm:"column:author_id;index"`
	Accepted   bool      `gorm:"column:accepted"`
	Upvoters   []byte    `gorm:"column:upvoters;type:jsonb"`
	Downvoters []byte    `gorm:"column:downvoters;type:jsonb"`
	Version    int64     `gorm:"column:version"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (answerModel) TableName() string { return "answers" }

type notificationModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	RecipientID string    `gorm:"column:recipient_id;index"`
	SenderID    string    `gorm:"column:sender_id"`
	Kind        string    `gorm:"column:kind"`
	Message     string    `gorm:"column:message"`
	QuestionID  string    `gorm:"column:question_id"`
	AnswerID    string    `gorm:"column:answer_id"`
	Read        bool      `gorm:"column:read"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func questionModelFromEntity(question entities.Question) questionModel {
	return questionModel{
		ID:               question.QuestionID,
		AuthorID:         question.AuthorID,
		AnswerIDs:        marshalStrings(question.AnswerIDs),
		AcceptedAnswerID: question.AcceptedAnswerID,
		Upvoters:         marshalStrings(question.Votes.Upvoters),
		Downvoters:       marshalStrings(question.Votes.Downvoters),
		Version:          question.Version,
		CreatedAt:        question.CreatedAt,
		UpdatedAt:        question.UpdatedAt,
	}
}

func (m questionModel) toEntity() entities.Question {
	return entities.Question{
		QuestionID:       m.ID,
		AuthorID:         m.AuthorID,
		AnswerIDs:        unmarshalStrings(m.AnswerIDs),
		AcceptedAnswerID: m.AcceptedAnswerID,
		Votes: entities.VoteBook{
			Upvoters:   unmarshalStrings(m.Upvoters),
			Downvoters: unmarshalStrings(m.Downvoters),
		},
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func answerModelFromEntity(answer entities.Answer) answerModel {
	return answerModel{
		ID:         answer.AnswerID,
		QuestionID: answer.QuestionID,
		AuthorID:   answer.AuthorID,
		Accepted:   answer.Accepted,
		Upvoters:   marshalStrings(answer.Votes.Upvoters),
		Downvoters: marshalStrings(answer.Votes.Downvoters),
		Version:    answer.Version,
		CreatedAt:  answer.CreatedAt,
		UpdatedAt:  answer.UpdatedAt,
	}
}

func (m answerModel) toEntity() entities.Answer {
	return entities.Answer{
		AnswerID:   m.ID,
		QuestionID: m.QuestionID,
		AuthorID:   m.AuthorID,
		Accepted:   m.Accepted,
		Votes: entities.VoteBook{
			Upvoters:   unmarshalStrings(m.Upvoters),
			Downvoters: unmarshalStrings(m.Downvoters),
		},
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func notificationModelFromEntity(notification entities.Notification) notificationModel {
	return notificationModel{
		ID:          notification.NotificationID,
		RecipientID: notification.RecipientID,
		SenderID:    notification.SenderID,
		Kind:        string(notification.Kind),
		Message:     notification.Message,
		QuestionID:  notification.QuestionID,
		AnswerID:    notification.AnswerID,
		Read:        notification.Read,
		CreatedAt:   notification.CreatedAt,
	}
}

func (m notificationModel) toEntity() entities.Notification {
	return entities.Notification{
		NotificationID: m.ID,
		RecipientID:    m.RecipientID,
		SenderID:       m.SenderID,
		Kind:           entities.NotificationKind(m.Kind),
		Message:        m.Message,
		QuestionID:     m.QuestionID,
		AnswerID:       m.AnswerID,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

func marshalStrings(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return raw
}

func unmarshalStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}
