package codecompletion

import (
	"context"
	"errors"
	"fmt"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/jscode"
	"github.com/inoxlang/jscompletion/internal/logs"
	"github.com/rs/zerolog"
)

var (
	ErrNilBackend = errors.New("nil resolution backend")
)

// A Candidate represents a single completion item.
type Candidate struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	IsSpecial bool   `json:"isSpecial,omitempty"`
}

// A CompletionResult is the result of FindCompletions, From and To delimit the text replaced
// by the selected candidate.
type CompletionResult struct {
	CursorToken jscode.Token    `json:"cursorToken"`
	Context     any             `json:"context,omitempty"`
	Results     []Candidate     `json:"results"`
	From        jscode.Position `json:"from"`
	To          jscode.Position `json:"to"`
}

// Strategy is the way completions are searched, it depends on the token at the cursor.
type Strategy int

const (
	NoStrategy Strategy = iota
	ArgumentsStrategy
	VariableStrategy
	PropertyStrategy
)

func (s Strategy) String() string {
	switch s {
	case NoStrategy:
		return "none"
	case ArgumentsStrategy:
		return "arguments"
	case VariableStrategy:
		return "variable"
	case PropertyStrategy:
		return "property"
	default:
		panic(fmt.Errorf("unknown strategy %d", int(s)))
	}
}

// SelectStrategy returns the strategy matching the (corrected) token at the cursor.
func SelectStrategy(token jscode.Token) Strategy {
	switch {
	case token.Is("("):
		return ArgumentsStrategy
	case token.Kind == jscode.Keyword, token.Kind == jscode.Variable:
		return VariableStrategy
	case token.Kind == jscode.Property:
		return PropertyStrategy
	default:
		return NoStrategy
	}
}

type SearchArgs struct {
	Provider jscode.TokenProvider
	Cursor   jscode.Position
	Backend  ResolutionBackend

	//maximum number of candidates, 0 means no limit.
	MaxCandidates int

	Logger zerolog.Logger
}

// FindCompletions classifies the token at the cursor and asks the backend for candidates.
// A cursor token matching no strategy (string, comment, operator ...) is not an error:
// the result has no candidates. Backend errors are returned wrapped, the other fields of the
// result are set.
func FindCompletions(ctx context.Context, args SearchArgs) (CompletionResult, error) {
	if args.Backend == nil {
		return CompletionResult{}, ErrNilBackend
	}

	token := CorrectToken(args.Provider, args.Cursor)
	result := CompletionResult{
		CursorToken: token,
		From:        jscode.Position{Line: args.Cursor.Line, Column: token.Span.Start},
		To:          jscode.Position{Line: args.Cursor.Line, Column: token.Span.End},
	}

	search := completionSearch{
		provider: args.Provider,
		backend:  args.Backend,
		token:    token,
		logger:   logs.ChildLoggerForSource(args.Logger, COMPLETION_LOG_SRC),
	}

	strategy := SelectStrategy(token)
	search.logger.Debug().
		Str("strategy", strategy.String()).
		Str("kind", string(token.Kind)).
		Str("text", token.Text).
		Msg("strategy selected")

	var (
		found completion
		err   error
	)

	switch strategy {
	case ArgumentsStrategy:
		found, err = findArgumentCompletions(ctx, search)
	case VariableStrategy:
		found, err = findVariableCompletions(ctx, search)
	case PropertyStrategy:
		found, err = findPropertyCompletions(ctx, search)
	default:
		return result, nil
	}

	if err != nil {
		search.logger.Warn().Err(err).Str("strategy", strategy.String()).Msg("backend failure")
		return result, fmt.Errorf("%s completion: %w", strategy, err)
	}

	result.Context = found.context
	result.Results = found.candidates

	if args.MaxCandidates > 0 && len(result.Results) > args.MaxCandidates {
		result.Results = result.Results[:args.MaxCandidates]
	}

	return result, nil
}

// CorrectToken returns the token at the cursor, adjusted for completion: a dot directly before the
// cursor becomes an empty property token located after the dot, and whitespace becomes an empty
// token at the cursor.
func CorrectToken(provider jscode.TokenProvider, cursor jscode.Position) jscode.Token {
	token := provider.TokenAt(cursor)

	if accesspath.IsMemberAccessOperator(token) {
		state := token.State
		state.Offset += token.Span.Len()
		state.AfterDot = true

		return jscode.Token{
			Kind: jscode.Property,
			Span: jscode.Span{
				Line:  token.Span.Line,
				Start: token.Span.End,
				End:   token.Span.End,
			},
			State: state,
		}
	}

	if token.IsBlank() {
		token.Text = ""
		token.Span.Start = token.Span.End
	}

	return token
}

type completionSearch struct {
	provider jscode.TokenProvider
	backend  ResolutionBackend
	token    jscode.Token //corrected cursor token
	logger   zerolog.Logger
}

type completion struct {
	context    any
	candidates []Candidate
}

func findVariableCompletions(ctx context.Context, search completionSearch) (completion, error) {
	resolution, err := search.backend.ResolveVariable(ctx, VariableRequest{
		CursorToken: search.token,
	})
	if err != nil {
		return completion{}, err
	}

	return completion{
		context:    resolution.Context,
		candidates: NormalizeResults(resolution.Results),
	}, nil
}
