// Package service implements the conversation orchestrator.
package service

import (
	"context"

	"godchat/internal/config"
	"godchat/internal/domain"
	"godchat/internal/observability"
	"godchat/internal/prompt"
	"godchat/internal/store"
)

// CompletionGateway issues one completion request per call. The concrete
// implementation lives in internal/llm; tests substitute fakes.
type CompletionGateway interface {
	Complete(ctx context.Context, prompt []domain.Entry) (domain.Entry, error)
}

// Service sequences assemble -> complete -> persist for each chat request.
// It holds no per-request state; every call is independent. Two concurrent
// requests on one session may interleave their appends; append order in the
// store decides final ordering, an accepted race rather than a bug.
type Service struct {
	store     store.Store
	gateway   CompletionGateway
	assembler *prompt.Assembler
	metrics   *observability.Metrics
}

// New creates the orchestrator. metrics may be nil.
func New(s store.Store, gateway CompletionGateway, cfg *config.Config, metrics *observability.Metrics) *Service {
	return &Service{
		store:     s,
		gateway:   gateway,
		assembler: prompt.NewAssembler(s, cfg.Persona, cfg.HistoryWindow),
		metrics:   metrics,
	}
}
