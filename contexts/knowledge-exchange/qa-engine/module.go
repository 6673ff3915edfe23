package qaengine

import (
	"log/slog"

	httpadapter "devexchange/contexts/knowledge-exchange/qa-engine/adapters/http"
	"devexchange/contexts/knowledge-exchange/qa-engine/adapters/memory"
	"devexchange/contexts/knowledge-exchange/qa-engine/application/commands"
	"devexchange/contexts/knowledge-exchange/qa-engine/application/queries"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Questions     ports.QuestionRepository
	Answers       ports.AnswerRepository
	Acceptance    ports.AcceptanceCommitter
	Notifications ports.NotificationRepository
	UnreadCache   ports.UnreadCountCache
	Publisher     ports.EventPublisher
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	MaxAttempts   int
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	dispatcher := commands.NotificationDispatcher{
		Notifications: deps.Notifications,
		Cache:         deps.UnreadCache,
		IDGen:         deps.IDGen,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Questions:   deps.Questions,
		Answers:     deps.Answers,
		Clock:       deps.Clock,
		MaxAttempts: deps.MaxAttempts,
		Logger:      deps.Logger,
	}
	acceptUseCase := commands.AcceptUseCase{
		Questions:   deps.Questions,
		Answers:     deps.Answers,
		Acceptance:  deps.Acceptance,
		Notifier:    dispatcher,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		MaxAttempts: deps.MaxAttempts,
		Logger:      deps.Logger,
	}
	answerUseCase := commands.AnswerUseCase{
		Questions:   deps.Questions,
		Answers:     deps.Answers,
		Notifier:    dispatcher,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		MaxAttempts: deps.MaxAttempts,
		Logger:      deps.Logger,
	}
	notificationUseCase := queries.NotificationUseCase{
		Notifications: deps.Notifications,
		Cache:         deps.UnreadCache,
		Logger:        deps.Logger,
	}
	scoreUseCase := queries.ScoreUseCase{
		Questions: deps.Questions,
		Answers:   deps.Answers,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:         voteUseCase,
			Acceptance:    acceptUseCase,
			Answers:       answerUseCase,
			Notifications: notificationUseCase,
			Scores:        scoreUseCase,
			Logger:        deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Questions:     store,
		Answers:       store,
		Acceptance:    store,
		Notifications: store,
		Clock:         store,
		IDGen:         store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
