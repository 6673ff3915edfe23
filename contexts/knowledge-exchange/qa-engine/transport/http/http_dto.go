package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VoteRequest struct {
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
	Direction  string `json:"direction"`
}

type VoteResponse struct {
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
	Score      int    `json:"score"`
	Upvoted    bool   `json:"upvoted"`
	Downvoted  bool   `json:"downvoted"`
}

type AcceptAnswerRequest struct {
	AnswerID string `json:"answer_id"`
}

type AcceptAnswerResponse struct {
	QuestionID       string `json:"question_id"`
	AcceptedAnswerID string `json:"accepted_answer_id"`
	AlreadyAccepted  bool   `json:"already_accepted"`
}

type PostAnswerResponse struct {
	AnswerID   string    `json:"answer_id"`
	QuestionID string    `json:"question_id"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type NotificationItem struct {
	NotificationID string    `json:"notification_id"`
	SenderID       string    `json:"sender_id"`
	Kind           string    `json:"kind"`
	Message        string    `json:"message"`
	QuestionID     string    `json:"question_id,omitempty"`
	AnswerID       string    `json:"answer_id,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationItem `json:"items"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type ScoreResponse struct {
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
	Upvotes    int    `json:"upvotes"`
	Downvotes  int    `json:"downvotes"`
	Score      int    `json:"score"`
	Accepted   bool   `json:"accepted,omitempty"`
}
