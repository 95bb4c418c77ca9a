package codecompletion

import (
	"context"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/jscode"
)

// A ResolutionBackend evaluates resolved paths against program state (live or sandboxed)
// and returns completion candidates. Implementations may block, they should respect ctx.
type ResolutionBackend interface {
	ResolveVariable(ctx context.Context, req VariableRequest) (Resolution, error)
	ResolveProperty(ctx context.Context, req PropertyRequest) (Resolution, error)
	ResolveArguments(ctx context.Context, req ArgumentsRequest) (ArgumentsResolution, error)
}

type VariableRequest struct {
	CursorToken jscode.Token //keyword or variable, its text is the prefix to complete.
}

type PropertyRequest struct {
	//path of the object whose properties are requested, empty if no member
	//expression precedes the cursor token.
	Path        accesspath.Path
	CursorToken jscode.Token
}

type ArgumentsRequest struct {
	Target accesspath.Segment //called property or variable

	//path of the object Target is a property of, empty if Target is a variable.
	Parent      accesspath.Path
	CursorToken jscode.Token //'('
}

// A Resolution maps candidate names to plain values or to Entry values.
type Resolution struct {
	Context any
	Results map[string]any
}

type ArgumentsResolution struct {
	Context   any
	Arguments []string //display strings, no suggestion is made if empty.
}
