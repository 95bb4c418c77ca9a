package codecompletion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/inoxlang/jscompletion/internal/jscode"
	"github.com/inoxlang/jscompletion/internal/logs"
	"github.com/inoxlang/jscompletion/internal/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

const (
	SESSION_LOG_SRC = "completion-session"
)

var (
	ErrSuperseded = errors.New("completion request superseded by a newer request")
)

type SessionConfig struct {
	Backend ResolutionBackend

	//if not zero only the last request of a burst of requests closer than Debounce
	//reaches the backend, the other ones fail with ErrSuperseded.
	Debounce time.Duration

	MaxCandidates int
	Logger        zerolog.Logger
}

// A Session runs the completion requests of a single editor. Starting a request cancels the
// in-flight one: the superseded request fails with ErrSuperseded and its result is dropped,
// stale results never reach the caller.
type Session struct {
	id            uuid.UUID
	backend       ResolutionBackend
	maxCandidates int
	debounced     func(f func()) //nil if debouncing is disabled
	logger        zerolog.Logger

	lock    sync.Mutex
	current *inFlightRequest
}

type inFlightRequest struct {
	id     ulid.ULID
	cancel context.CancelCauseFunc
}

func NewSession(config SessionConfig) (*Session, error) {
	if config.Backend == nil {
		return nil, ErrNilBackend
	}

	id := uuid.New()

	session := &Session{
		id:            id,
		backend:       config.Backend,
		maxCandidates: config.MaxCandidates,
		logger:        logs.ChildLoggerForSource(config.Logger, SESSION_LOG_SRC).With().Str("session", id.String()).Logger(),
	}

	if config.Debounce > 0 {
		session.debounced = debounce.New(config.Debounce)
	}

	return session, nil
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Complete finds the completions at cursor. It returns ErrSuperseded if another request is
// started before the completion is done.
func (s *Session) Complete(ctx context.Context, provider jscode.TokenProvider, cursor jscode.Position) (result CompletionResult, finalErr error) {
	requestID, requestCtx, debounced := s.start(ctx)
	defer s.finish(requestID)

	logger := s.logger.With().Str("request", requestID.String()).Logger()

	defer utils.Recover(logger, func(err error) {
		result = CompletionResult{}
		finalErr = fmt.Errorf("completion failed: %w", err)
	})

	if debounced != nil {
		select {
		case <-debounced:
		case <-requestCtx.Done():
			return CompletionResult{}, cancellationError(requestCtx)
		}
	}

	start := time.Now()

	result, err := FindCompletions(requestCtx, SearchArgs{
		Provider:      provider,
		Cursor:        cursor,
		Backend:       s.backend,
		MaxCandidates: s.maxCandidates,
		Logger:        logger,
	})

	if requestCtx.Err() != nil {
		logger.Debug().Dur("duration", time.Since(start)).Msg("completion result dropped")
		return CompletionResult{}, cancellationError(requestCtx)
	}

	if err != nil {
		return result, err
	}

	logger.Debug().Dur("duration", time.Since(start)).Int("candidates", len(result.Results)).Msg("completion done")
	return result, nil
}

// Cancel cancels the in-flight request, if any.
func (s *Session) Cancel() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.current != nil {
		s.current.cancel(context.Canceled)
		s.current = nil
	}
}

// start registers a new request and supersedes the in-flight one. If debouncing is enabled the
// returned channel is closed when the request can proceed.
func (s *Session) start(ctx context.Context) (ulid.ULID, context.Context, chan struct{}) {
	requestCtx, cancel := context.WithCancelCause(ctx)
	id := ulid.Make()

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.current != nil {
		s.logger.Debug().Str("request", s.current.id.String()).Str("by", id.String()).Msg("request superseded")
		s.current.cancel(ErrSuperseded)
	}

	s.current = &inFlightRequest{id: id, cancel: cancel}

	//the debounced function is replaced while holding the lock, so the function
	//of the current request is always the last one.
	var debounced chan struct{}
	if s.debounced != nil {
		debounced = make(chan struct{})
		s.debounced(func() {
			close(debounced)
		})
	}

	return id, requestCtx, debounced
}

func (s *Session) finish(id ulid.ULID) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.current != nil && s.current.id == id {
		s.current.cancel(context.Canceled)
		s.current = nil
	}
}

func cancellationError(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrSuperseded) {
		return ErrSuperseded
	}
	if cause != nil {
		return cause
	}
	return ctx.Err()
}
