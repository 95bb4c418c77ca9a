package codecompletion

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inoxlang/jscompletion/internal/jsparse"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingBackend blocks the first variable resolution until its context is done.
type blockingBackend struct {
	fakeBackend
	calls   atomic.Int32
	started chan struct{}
}

func newBlockingBackend() *blockingBackend {
	return &blockingBackend{started: make(chan struct{})}
}

func (b *blockingBackend) ResolveVariable(ctx context.Context, req VariableRequest) (Resolution, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
		<-ctx.Done()
		return Resolution{}, ctx.Err()
	}
	return Resolution{Results: map[string]any{req.CursorToken.Text: 1}}, nil
}

func TestSession(t *testing.T) {
	doc := jsparse.NewDocument("abc")
	cursor := doc.EndPosition()

	t.Run("nil backend", func(t *testing.T) {
		session, err := NewSession(SessionConfig{})
		assert.ErrorIs(t, err, ErrNilBackend)
		assert.Nil(t, session)
	})

	t.Run("single request", func(t *testing.T) {
		session, err := NewSession(SessionConfig{
			Backend: &fakeBackend{
				variable: func(req VariableRequest) (Resolution, error) {
					return Resolution{Results: map[string]any{"abcd": 1}}, nil
				},
			},
			Logger: zerolog.Nop(),
		})
		require.NoError(t, err)

		result, err := session.Complete(context.Background(), doc, cursor)
		require.NoError(t, err)
		assert.Equal(t, []Candidate{{Name: "abcd", Value: "1"}}, result.Results)
	})

	t.Run("sessions have distinct IDs", func(t *testing.T) {
		session1, _ := NewSession(SessionConfig{Backend: &fakeBackend{}, Logger: zerolog.Nop()})
		session2, _ := NewSession(SessionConfig{Backend: &fakeBackend{}, Logger: zerolog.Nop()})

		assert.NotEqual(t, session1.ID(), session2.ID())
	})

	t.Run("a new request supersedes the in-flight one", func(t *testing.T) {
		backend := newBlockingBackend()
		session, err := NewSession(SessionConfig{Backend: backend, Logger: zerolog.Nop()})
		require.NoError(t, err)

		var firstErr error
		done := make(chan struct{})

		go func() {
			defer close(done)
			_, firstErr = session.Complete(context.Background(), doc, cursor)
		}()

		<-backend.started

		result, err := session.Complete(context.Background(), doc, cursor)
		require.NoError(t, err)
		assert.Equal(t, []Candidate{{Name: "abc", Value: "1"}}, result.Results)

		<-done
		assert.ErrorIs(t, firstErr, ErrSuperseded)
	})

	t.Run("cancellation", func(t *testing.T) {
		backend := newBlockingBackend()
		session, err := NewSession(SessionConfig{Backend: backend, Logger: zerolog.Nop()})
		require.NoError(t, err)

		go func() {
			<-backend.started
			session.Cancel()
		}()

		_, err = session.Complete(context.Background(), doc, cursor)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrSuperseded)
	})

	t.Run("cancellation of the parent context", func(t *testing.T) {
		backend := newBlockingBackend()
		session, err := NewSession(SessionConfig{Backend: backend, Logger: zerolog.Nop()})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			<-backend.started
			cancel()
		}()

		_, err = session.Complete(ctx, doc, cursor)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("panicking backend", func(t *testing.T) {
		session, err := NewSession(SessionConfig{
			Backend: &fakeBackend{
				variable: func(req VariableRequest) (Resolution, error) {
					panic(errors.New("unexpected"))
				},
			},
			Logger: zerolog.Nop(),
		})
		require.NoError(t, err)

		_, err = session.Complete(context.Background(), doc, cursor)
		assert.ErrorContains(t, err, "unexpected")

		//the session is still usable.
		_, err = session.Complete(context.Background(), doc, cursor)
		assert.Error(t, err)
	})

	t.Run("debouncing", func(t *testing.T) {
		backend := &fakeBackend{}
		session, err := NewSession(SessionConfig{
			Backend:  backend,
			Debounce: 100 * time.Millisecond,
			Logger:   zerolog.Nop(),
		})
		require.NoError(t, err)

		const REQUEST_COUNT = 3

		errs := make([]error, REQUEST_COUNT)
		wg := new(sync.WaitGroup)

		for i := 0; i < REQUEST_COUNT; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = session.Complete(context.Background(), doc, cursor)
			}(i)
			time.Sleep(10 * time.Millisecond)
		}

		wg.Wait()

		assert.Equal(t, 1, backend.requestCount())

		supersededCount := 0
		for _, err := range errs {
			if errors.Is(err, ErrSuperseded) {
				supersededCount++
			} else {
				assert.NoError(t, err)
			}
		}
		assert.Equal(t, REQUEST_COUNT-1, supersededCount)
	})
}
