package service

import (
	"context"
	"log"
	"time"

	"godchat/internal/domain"
)

// Chat handles one conversation request end to end:
//
//  1. validate input
//  2. assemble the prompt (history read failure is a hard PersistenceError;
//     answering from a silently truncated context would give the user a
//     reply they cannot audit)
//  3. call the completion gateway; any gateway error aborts before any
//     write, so no user turn is persisted without its assistant reply
//  4. append the user turn(s), then the assistant turn
//  5. return the assistant turn
//
// The two appends in step 4 are independent writes, not one transaction. If
// the user-turn append fails the assistant append is never attempted. If the
// assistant-turn append fails the request still reports PersistenceError:
// the caller never receives a reply that is missing from the transcript,
// trading a wasted model call for transcript consistency.
//
// Nothing in this path retries. Blind retries against a paid completion
// endpoint risk duplicate billable calls; resubmission is the caller's call.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if err := validate(req); err != nil {
		s.countOutcome(err)
		return nil, err
	}

	assembled, err := s.assembler.Assemble(ctx, req.SessionID, req.ClientMemory, req.Turns)
	if err != nil {
		s.countStoreError("history")
		s.countOutcome(err)
		return nil, err
	}

	start := time.Now()
	reply, err := s.gateway.Complete(ctx, assembled)
	if s.metrics != nil {
		s.metrics.ObserveCompletionLatency(time.Since(start))
	}
	if err != nil {
		log.Printf("ERROR: completion failed for session %s: %v", req.SessionID, err)
		s.countOutcome(err)
		return nil, err
	}

	for _, turn := range req.Turns {
		if _, err := s.store.Append(ctx, req.SessionID, turn.Role, turn.Content); err != nil {
			s.countStoreError("append")
			return nil, s.persistFailed(req.SessionID, err)
		}
	}
	if _, err := s.store.Append(ctx, req.SessionID, reply.Role, reply.Content); err != nil {
		// The model already replied; surfacing the failure anyway keeps
		// "turn exists in the transcript" consistent with "turn was shown".
		s.countStoreError("append")
		return nil, s.persistFailed(req.SessionID, err)
	}

	s.countCompleted()
	return &domain.ChatResponse{Role: reply.Role, Content: reply.Content}, nil
}

// validate rejects malformed requests before any I/O.
func validate(req domain.ChatRequest) error {
	if req.SessionID == "" {
		return domain.NewError(domain.ErrInvalidRequest, nil, "session_id is required")
	}
	if len(req.Turns) == 0 {
		return domain.NewError(domain.ErrInvalidRequest, nil, "turns must not be empty")
	}
	for i, turn := range req.Turns {
		if !turn.Role.Valid() {
			return domain.NewError(domain.ErrInvalidRequest, nil, "turns[%d] has unknown role %q", i, turn.Role)
		}
		if turn.Content == "" {
			return domain.NewError(domain.ErrInvalidRequest, nil, "turns[%d] has empty content", i)
		}
	}
	return nil
}

func (s *Service) persistFailed(sessionID string, err error) error {
	log.Printf("ERROR: transcript append failed for session %s: %v", sessionID, err)
	wrapped := domain.NewError(domain.ErrPersistence, err, "failed to persist turn")
	s.countOutcome(wrapped)
	return wrapped
}

func (s *Service) countOutcome(err error) {
	if s.metrics == nil {
		return
	}
	kind := domain.KindOf(err)
	if kind == "" {
		kind = "unknown"
	}
	s.metrics.ChatRequests.WithLabelValues(string(kind)).Inc()
}

func (s *Service) countCompleted() {
	if s.metrics != nil {
		s.metrics.ChatRequests.WithLabelValues("completed").Inc()
	}
}

func (s *Service) countStoreError(op string) {
	if s.metrics != nil {
		s.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
}
