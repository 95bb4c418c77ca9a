package accesspath

import (
	"slices"

	"github.com/inoxlang/jscompletion/internal/jscode"
)

// CanContinueChain returns true if property or call access can follow the token:
// all tokens except punctuation, keywords and invalid tokens. The closing delimiters ')' and ']'
// are chain-continuing, they start a sub-resolution.
func CanContinueChain(token jscode.Token) bool {
	switch token.Kind {
	case jscode.KindNone:
		return token.Text == ")" || token.Text == "]"
	case jscode.Keyword, jscode.Invalid:
		return false
	}
	return true
}

// IsMemberAccessOperator returns true for '.' and '?.'.
func IsMemberAccessOperator(token jscode.Token) bool {
	return token.Is(".") || token.Is("?.")
}

// Resolve reconstructs the access path ending at token (included) by scanning the tokens
// right to left. ok should be false if there is no token (start of the document), in this case
// an empty path is returned. Resolve is deterministic and does not mutate the provider's tokens.
func Resolve(provider jscode.TokenProvider, token jscode.Token, ok bool) Path {
	r := resolver{provider: provider}

	segments, pendingNew := r.resolve(token, ok)
	slices.Reverse(segments)

	return Path{
		Segments:   segments,
		PendingNew: pendingNew,
	}
}

type resolver struct {
	provider jscode.TokenProvider
}

// a step is the result of the resolution of a single token or bracketed region.
type step struct {
	next   jscode.Token
	nextOk bool

	//the next token is called (it precedes a '(...)' region).
	nextCallable bool

	//the scan has to stop (invalid segment or spliced group).
	stop bool

	//segments appended by the step, nearest to the cursor first.
	segments []Segment
}

// resolve returns the segments of the chain ending at token, nearest to the cursor first.
func (r resolver) resolve(token jscode.Token, ok bool) (segments []Segment, pendingNew bool) {
	callable := false
	stopped := false

	for ok && (IsMemberAccessOperator(token) || CanContinueChain(token)) {
		//skip the dot of a member expression.
		if IsMemberAccessOperator(token) {
			token, ok = StepAndSkip(r.provider, token, true)
			callable = false
			if !ok {
				break
			}
		}

		var s step

		switch {
		case token.Is("]"):
			s = r.resolveBracketedProperty(token, callable)
		case token.Is(")"):
			s = r.resolveCall(token, callable)
		case token.Kind == jscode.Property, CanContinueChain(token):
			s.segments = []Segment{plainSegment(token, callable)}
			s.next, s.nextOk = StepAndSkip(r.provider, token, true)
		default:
			s.segments = []Segment{invalidSegment(token)}
			s.stop = true
		}

		segments = append(segments, s.segments...)
		if s.stop {
			stopped = true
			break
		}

		token, ok, callable = s.next, s.nextOk, s.nextCallable
	}

	//'new' does not require parentheses to invoke the constructor,
	//the first callable segment (source order) is the constructor.
	if !stopped && ok && token.IsKeyword(jscode.NEW_KEYWORD_STRING) {
		pendingNew = true

		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i].IsFunction {
				segments[i].IsConstructor = true
				pendingNew = false
				break
			}
		}
	}

	return
}

// accessorOf returns the token preceding the opening bracket of an index or call, an optional
// chaining operator before the bracket (a?.[b], a?.()) is skipped.
func (r resolver) accessorOf(opener jscode.Token) (jscode.Token, bool) {
	accessor, ok := StepAndSkip(r.provider, opener, true)
	if ok && accessor.Is("?.") {
		return StepAndSkip(r.provider, accessor, true)
	}
	return accessor, ok
}

// resolveBracketedProperty resolves a '[...]' region ending at closeToken: a dynamic property if an
// accessible token precedes the region, an array literal otherwise.
func (r resolver) resolveBracketedProperty(closeToken jscode.Token, callable bool) step {
	match, ok := SquareBrackets.FindOpener(r.provider, closeToken)
	if !ok {
		return step{segments: []Segment{invalidSegment(closeToken)}, stop: true}
	}

	accessor, accessorOk := r.accessorOf(match.Opener)
	span := match.Span()

	if !accessorOk || !CanContinueChain(accessor) {
		array := Segment{
			Token: jscode.Token{
				Kind:  jscode.Array,
				Text:  match.Text(),
				Span:  span,
				State: closeToken.State,
			},
			IsFunction: callable,
			EndLine:    closeToken.Span.Line,
		}
		return step{
			next:     accessor,
			nextOk:   accessorOk,
			segments: []Segment{array},
		}
	}

	inner, innerOk := StepAndSkip(r.provider, closeToken, true)

	//empty brackets
	if !innerOk || inner.Span == match.Opener.Span {
		return step{segments: []Segment{invalidSegment(accessor)}, stop: true}
	}

	subSegments, _ := r.resolve(inner, innerOk)
	if len(subSegments) == 0 {
		return step{segments: []Segment{invalidSegment(accessor)}, stop: true}
	}

	//only statically resolvable contents are accepted: the token before the leftmost segment
	//should be the opening bracket, otherwise the brackets contain an expression such as 1+1.
	leftmost := subSegments[len(subSegments)-1]
	before, beforeOk := StepAndSkip(r.provider, leftmost.Token, true)
	if !beforeOk || before.Span != match.Opener.Span || leftmost.Kind == jscode.Invalid {
		return step{segments: []Segment{invalidSegment(accessor)}, stop: true}
	}

	slices.Reverse(subSegments)

	property := Segment{
		Token: jscode.Token{
			Kind:  jscode.DynamicProperty,
			Text:  match.Text(),
			Span:  span,
			State: closeToken.State,
		},
		IsFunction: callable,
		EndLine:    closeToken.Span.Line,
		Tokens:     subSegments,
	}

	return step{
		next:     accessor,
		nextOk:   true,
		segments: []Segment{property},
	}
}

// resolveCall resolves a '(...)' region ending at closeToken: a call if an accessible token
// precedes the region, a parenthesized expression otherwise.
func (r resolver) resolveCall(closeToken jscode.Token, callable bool) step {
	match, ok := Parens.FindOpener(r.provider, closeToken)
	if !ok {
		return step{segments: []Segment{invalidSegment(closeToken)}, stop: true}
	}

	accessor, accessorOk := r.accessorOf(match.Opener)

	if accessorOk && CanContinueChain(accessor) {
		var segments []Segment

		//the call result is itself called: a()()
		if callable {
			segments = append(segments, Segment{
				Token: jscode.Token{
					Kind:  jscode.Immed,
					Span:  match.Span(),
					State: closeToken.State,
				},
				IsFunction: true,
				EndLine:    closeToken.Span.Line,
			})
		}

		//the accessor is not consumed, the next iteration emits it.
		return step{
			next:         accessor,
			nextOk:       true,
			nextCallable: true,
			segments:     segments,
		}
	}

	//parenthesized expression: the contents are resolved as their own path and spliced.
	inner, innerOk := StepAndSkip(r.provider, closeToken, true)
	subSegments, pendingNew := r.resolve(inner, innerOk)

	if len(subSegments) > 0 {
		if callable {
			subSegments[0].IsFunction = true
		}
		if pendingNew {
			subSegments[0].IsFunction = true
			subSegments[0].IsConstructor = true
		} else if callable && accessorOk && accessor.IsKeyword(jscode.NEW_KEYWORD_STRING) {
			//new (a.B)(): the group is the constructor.
			subSegments[0].IsConstructor = true
		}
	}

	return step{segments: subSegments, stop: true}
}
