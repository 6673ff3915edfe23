package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	qaengine "devexchange/contexts/knowledge-exchange/qa-engine"
	domainerrors "devexchange/contexts/knowledge-exchange/qa-engine/domain/errors"
	qahttp "devexchange/contexts/knowledge-exchange/qa-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "devexchange/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	engine qaengine.Module
}

func New(engine qaengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/qa/v1/votes", s.handleVote)
	s.mux.HandleFunc("POST /api/qa/v1/questions/{question_id}/accept", s.handleAcceptAnswer)
	s.mux.HandleFunc("POST /api/qa/v1/questions/{question_id}/answers", s.handlePostAnswer)
	s.mux.HandleFunc("GET /api/qa/v1/questions/{question_id}/score", s.handleQuestionScore)
	s.mux.HandleFunc("GET /api/qa/v1/answers/{answer_id}/score", s.handleAnswerScore)
	s.mux.HandleFunc("GET /api/qa/v1/notifications", s.handleListNotifications)
	s.mux.HandleFunc("GET /api/qa/v1/notifications/unread-count", s.handleUnreadCount)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req qahttp.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.engine.Handler.VoteHandler(r.Context(), userID, req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptAnswer(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req qahttp.AcceptAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	questionID := r.PathValue("question_id")
	resp, err := s.engine.Handler.AcceptAnswerHandler(r.Context(), userID, questionID, req)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePostAnswer(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	questionID := r.PathValue("question_id")
	resp, err := s.engine.Handler.PostAnswerHandler(r.Context(), userID, questionID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleQuestionScore(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.ScoreHandler(r.Context(), "question", r.PathValue("question_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnswerScore(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.ScoreHandler(r.Context(), "answer", r.PathValue("answer_id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	query := r.URL.Query()
	unreadOnly := strings.EqualFold(query.Get("unread"), "true")
	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.engine.Handler.ListNotificationsHandler(r.Context(), userID, unreadOnly, limit)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.engine.Handler.UnreadCountHandler(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrQuestionNotFound),
		errors.Is(err, domainerrors.ErrAnswerNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrNotQuestionAuthor):
		writeError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domainerrors.ErrAnswerQuestionMismatch):
		writeError(w, http.StatusBadRequest, "invalid_reference", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidVoteDirection),
		errors.Is(err, domainerrors.ErrInvalidVoteTarget),
		errors.Is(err, domainerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, domainerrors.ErrContention):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logger.Error("unhandled domain error",
			"event", "http_unhandled_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, qahttp.ErrorResponse{Code: code, Message: message})
}
