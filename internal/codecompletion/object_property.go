package codecompletion

import (
	"context"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/jscode"
)

// GetPropertyPath returns the path of the object whose property is being typed. The path is
// empty if token is not a property or if it is not preceded by a dot.
func GetPropertyPath(provider jscode.TokenProvider, token jscode.Token) accesspath.Path {
	if token.Kind != jscode.Property {
		return accesspath.Path{}
	}

	dot, ok := accesspath.StepAndSkip(provider, token, true)
	if !ok || !accesspath.IsMemberAccessOperator(dot) {
		return accesspath.Path{}
	}

	return accesspath.Resolve(provider, dot, true)
}

func findPropertyCompletions(ctx context.Context, search completionSearch) (completion, error) {
	path := GetPropertyPath(search.provider, search.token)

	search.logger.Debug().Str("path", path.String()).Bool("pendingNew", path.PendingNew).Msg("property path resolved")

	resolution, err := search.backend.ResolveProperty(ctx, PropertyRequest{
		Path:        path,
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
