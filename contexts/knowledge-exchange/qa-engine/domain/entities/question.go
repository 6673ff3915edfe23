package entities

import "time"

// Question owns the accepted-answer pointer. AcceptedAnswerID is empty until
// the author accepts an answer; once set it only ever moves to another
// answer of the same question, never back to empty.
type Question struct {
	QuestionID       string
	AuthorID         string
	AnswerIDs        []string
	AcceptedAnswerID string
	Votes            VoteBook
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q Question) HasAnswer(answerID string) bool {
	for _, id := range q.AnswerIDs {
		if id == answerID {
			return true
		}
	}
	return false
}

type Answer struct {
	AnswerID   string
	QuestionID string
	AuthorID   string
	Accepted   bool
	Votes      VoteBook
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
