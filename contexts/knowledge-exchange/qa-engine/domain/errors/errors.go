package errors

import "errors"

var (
	ErrQuestionNotFound       = errors.New("question not found")
	ErrAnswerNotFound         = errors.New("answer not found")
	ErrNotQuestionAuthor      = errors.New("only the question author may accept answers")
	ErrAnswerQuestionMismatch = errors.New("answer does not belong to the question")
	ErrInvalidVoteDirection   = errors.New("vote direction must be up or down")
	ErrInvalidVoteTarget      = errors.New("vote target kind must be question or answer")
	ErrInvalidInput           = errors.New("invalid input")

	// ErrVersionConflict is the store-level optimistic concurrency signal.
	// Use cases retry on it; it never crosses the transport boundary.
	ErrVersionConflict = errors.New("entity version conflict")

	// ErrContention surfaces once the bounded retry budget is exhausted.
	ErrContention = errors.New("operation lost the optimistic retry budget under contention")
)
