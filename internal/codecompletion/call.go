package codecompletion

import (
	"context"
	"strings"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/jscode"
)

// GetCallTargetPath returns the path of the callee of the call whose opening parenthesis is
// openParen.
func GetCallTargetPath(provider jscode.TokenProvider, openParen jscode.Token) accesspath.Path {
	callee, ok := accesspath.StepAndSkip(provider, openParen, true)
	return accesspath.Resolve(provider, callee, ok)
}

func findArgumentCompletions(ctx context.Context, search completionSearch) (completion, error) {
	path := GetCallTargetPath(search.provider, search.token)

	target, ok := path.Nearest()
	if !ok || (target.Kind != jscode.Property && target.Kind != jscode.Variable) {
		search.logger.Debug().Str("path", path.String()).Msg("call target is not a property or a variable")
		return completion{}, nil
	}

	resolution, err := search.backend.ResolveArguments(ctx, ArgumentsRequest{
		Target:      target,
		Parent:      path.Parent(),
		CursorToken: search.token,
	})
	if err != nil {
		return completion{}, err
	}

	if len(resolution.Arguments) == 0 {
		return completion{}, nil
	}

	return completion{
		context: resolution.Context,
		candidates: []Candidate{
			{
				Name:      ARGUMENTS_CANDIDATE_NAME,
				Value:     strings.Join(resolution.Arguments, ARGUMENT_SEPARATOR) + ")",
				IsSpecial: true,
			},
		},
	}, nil
}
