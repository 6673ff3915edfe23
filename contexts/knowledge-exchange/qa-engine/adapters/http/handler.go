package httpadapter

import (
	"context"
	"log/slog"

	"devexchange/contexts/knowledge-exchange/qa-engine/application/commands"
	"devexchange/contexts/knowledge-exchange/qa-engine/application/queries"
	"devexchange/contexts/knowledge-exchange/qa-engine/domain/entities"
	httptransport "devexchange/contexts/knowledge-exchange/qa-engine/transport/http"
)

// Handler is the facade surface the platform server binds routes to. It maps
// transport DTOs onto commands/queries and never carries business rules.
type Handler struct {
	Votes         commands.VoteUseCase
	Acceptance    commands.AcceptUseCase
	Answers       commands.AnswerUseCase
	Notifications queries.NotificationUseCase
	Scores        queries.ScoreUseCase
	Logger        *slog.Logger
}

func (h Handler) VoteHandler(
	ctx context.Context,
	userID string,
	req httptransport.VoteRequest,
) (httptransport.VoteResponse, error) {
	result, err := h.Votes.Vote(ctx, commands.VoteCommand{
		VoterID:    userID,
		TargetKind: entities.VotableKind(req.TargetKind),
		TargetID:   req.TargetID,
		Direction:  entities.VoteDirection(req.Direction),
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		TargetKind: string(result.TargetKind),
		TargetID:   result.TargetID,
		Score:      result.Score,
		Upvoted:    result.Upvoted,
		Downvoted:  result.Downvoted,
	}, nil
}

func (h Handler) AcceptAnswerHandler(
	ctx context.Context,
	userID string,
	questionID string,
	req httptransport.AcceptAnswerRequest,
) (httptransport.AcceptAnswerResponse, error) {
	result, err := h.Acceptance.AcceptAnswer(ctx, commands.AcceptAnswerCommand{
		QuestionID:  questionID,
		AnswerID:    req.AnswerID,
		RequesterID: userID,
	})
	if err != nil {
		return httptransport.AcceptAnswerResponse{}, err
	}
	return httptransport.AcceptAnswerResponse{
		QuestionID:       questionID,
		AcceptedAnswerID: result.AcceptedAnswerID,
		AlreadyAccepted:  result.AlreadyAccepted,
	}, nil
}

func (h Handler) PostAnswerHandler(
	ctx context.Context,
	userID string,
	questionID string,
) (httptransport.PostAnswerResponse, error) {
	result, err := h.Answers.PostAnswer(ctx, commands.PostAnswerCommand{
		QuestionID: questionID,
		AuthorID:   userID,
	})
	if err != nil {
		return httptransport.PostAnswerResponse{}, err
	}
	return httptransport.PostAnswerResponse{
		AnswerID:   result.Answer.AnswerID,
		QuestionID: result.Answer.QuestionID,
		AuthorID:   result.Answer.AuthorID,
		CreatedAt:  result.Answer.CreatedAt,
	}, nil
}

func (h Handler) ListNotificationsHandler(
	ctx context.Context,
	userID string,
	unreadOnly bool,
	limit int,
) (httptransport.NotificationListResponse, error) {
	items, err := h.Notifications.List(ctx, userID, unreadOnly, limit)
	if err != nil {
		return httptransport.NotificationListResponse{}, err
	}
	mapped := make([]httptransport.NotificationItem, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, httptransport.NotificationItem{
			NotificationID: item.NotificationID,
			SenderID:       item.SenderID,
			Kind:           string(item.Kind),
			Message:        item.Message,
			QuestionID:     item.QuestionID,
			AnswerID:       item.AnswerID,
			Read:           item.Read,
			CreatedAt:      item.CreatedAt,
		})
	}
	return httptransport.NotificationListResponse{Items: mapped}, nil
}

func (h Handler) UnreadCountHandler(ctx context.Context, userID string) (httptransport.UnreadCountResponse, error) {
	count, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		return httptransport.UnreadCountResponse{}, err
	}
	return httptransport.UnreadCountResponse{Count: count}, nil
}

func (h Handler) ScoreHandler(
	ctx context.Context,
	kind string,
	targetID string,
) (httptransport.ScoreResponse, error) {
	tally, err := h.Scores.Tally(ctx, entities.VotableKind(kind), targetID)
	if err != nil {
		return httptransport.ScoreResponse{}, err
	}
	return httptransport.ScoreResponse{
		TargetKind: string(tally.TargetKind),
		TargetID:   tally.TargetID,
		Upvotes:    tally.Upvotes,
		Downvotes:  tally.Downvotes,
		Score:      tally.Score,
		Accepted:   tally.Accepted,
	}, nil
}
