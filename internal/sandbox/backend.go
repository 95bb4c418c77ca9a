package sandbox

import (
	"context"
	"errors"

	"github.com/inoxlang/jscompletion/internal/codecompletion"
	"github.com/inoxlang/jscompletion/internal/jsparse"
	"github.com/inoxlang/jscompletion/internal/logs"
	"github.com/inoxlang/jscompletion/internal/utils"
	"github.com/rs/zerolog"
)

const (
	BACKEND_LOG_SRC = "sandbox"
)

// Backend is a codecompletion.ResolutionBackend that statically evaluates paths against the
// globals of a Scope. Candidates are filtered by the text of the cursor token (case-insensitive
// prefix), candidate values are the names to insert.
type Backend struct {
	scope  *Scope
	logger zerolog.Logger
}

var _ codecompletion.ResolutionBackend = (*Backend)(nil)

func NewBackend(scope *Scope, logger zerolog.Logger) *Backend {
	return &Backend{
		scope:  scope,
		logger: logs.ChildLoggerForSource(logger, BACKEND_LOG_SRC),
	}
}

func (b *Backend) Scope() *Scope {
	return b.scope
}

// ResolveVariable suggests globals and keywords, keywords are special candidates.
func (b *Backend) ResolveVariable(ctx context.Context, req codecompletion.VariableRequest) (codecompletion.Resolution, error) {
	prefix := req.CursorToken.Text
	globals := b.scope.Snapshot()
	results := map[string]any{}

	for name := range globals {
		if utils.HasPrefixCaseInsensitive(name, prefix) {
			results[name] = name
		}
	}

	for keyword := range jsparse.KEYWORDS {
		if utils.HasPrefixCaseInsensitive(keyword, prefix) {
			results[keyword] = codecompletion.Entry{Value: keyword, IsSpecial: true}
		}
	}

	return codecompletion.Resolution{
		Context: globals,
		Results: results,
	}, nil
}

// ResolveProperty suggests the properties (inherited ones included) of the value of the path.
// Paths that cannot be evaluated yield no results.
func (b *Backend) ResolveProperty(ctx context.Context, req codecompletion.PropertyRequest) (codecompletion.Resolution, error) {
	if req.Path.IsEmpty() {
		return codecompletion.Resolution{}, nil
	}

	object, err := b.scope.Evaluate(ctx, req.Path)
	if err != nil {
		if isEvaluationFailure(err) {
			b.logger.Debug().Err(err).Str("path", req.Path.String()).Msg("failed to evaluate path")
			return codecompletion.Resolution{}, nil
		}
		return codecompletion.Resolution{}, err
	}

	prefix := req.CursorToken.Text
	results := map[string]any{}

	for name := range Properties(object) {
		if utils.HasPrefixCaseInsensitive(name, prefix) {
			results[name] = name
		}
	}

	return codecompletion.Resolution{
		Context: object,
		Results: results,
	}, nil
}

// ResolveArguments returns the parameters of the called function, nothing is returned if the
// target is not a function.
func (b *Backend) ResolveArguments(ctx context.Context, req codecompletion.ArgumentsRequest) (codecompletion.ArgumentsResolution, error) {
	var (
		parent any
		target any
		err    error
	)

	if req.Parent.IsEmpty() {
		parent = b.scope.Snapshot()
		target, err = GetProperty(parent, req.Target.Text)
	} else {
		parent, err = b.scope.Evaluate(ctx, req.Parent)
		if err == nil {
			target, err = GetProperty(parent, req.Target.Text)
		}
	}

	if err != nil {
		if isEvaluationFailure(err) {
			b.logger.Debug().Err(err).Str("path", req.Parent.String()).Str("target", req.Target.Text).Msg("failed to evaluate call target")
			return codecompletion.ArgumentsResolution{}, nil
		}
		return codecompletion.ArgumentsResolution{}, err
	}

	fn, ok := target.(*Function)
	if !ok {
		return codecompletion.ArgumentsResolution{}, nil
	}

	return codecompletion.ArgumentsResolution{
		Context:   parent,
		Arguments: fn.Params,
	}, nil
}

func isEvaluationFailure(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotCallable) || errors.Is(err, ErrInvalidPath)
}
