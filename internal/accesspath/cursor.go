package accesspath

import (
	"github.com/inoxlang/jscompletion/internal/jscode"
)

// TokenBefore returns the token that ends at or covers pos. At column 0 the last token of the
// previous line is returned, ok is false at the start of the document.
func TokenBefore(provider jscode.TokenProvider, pos jscode.Position) (_ jscode.Token, ok bool) {
	if pos.Column == 0 {
		if pos.Line > 0 {
			return provider.TokenAt(jscode.Position{Line: pos.Line - 1, Column: jscode.EndOfLine}), true
		}
		return jscode.Token{}, false
	}

	return provider.TokenAt(pos), true
}

// previous returns the token before token. ok is false at the start of the document or if the
// provider does not move backward.
func previous(provider jscode.TokenProvider, token jscode.Token) (jscode.Token, bool) {
	prev, ok := TokenBefore(provider, token.Span.StartPosition())
	if !ok {
		return jscode.Token{}, false
	}

	//a provider returning a token that does not start before the current one would make the
	//backward scans loop forever.
	if prev.Span.Line == token.Span.Line && token.Span.Start > 0 && prev.Span.Start >= token.Span.Start {
		return jscode.Token{}, false
	}
	if prev.Span.Line > token.Span.Line {
		return jscode.Token{}, false
	}
	return prev, true
}

// IsBlank returns true if the token is whitespace or empty.
func IsBlank(token jscode.Token) bool {
	return token.IsBlank()
}

// SkipBlank walks backward while the token is blank, ok is false once the start of the
// document is reached.
func SkipBlank(provider jscode.TokenProvider, token jscode.Token, ok bool) (jscode.Token, bool) {
	for ok && IsBlank(token) {
		token, ok = previous(provider, token)
	}
	return token, ok
}

// StepAndSkip returns the previous meaningful token.
func StepAndSkip(provider jscode.TokenProvider, token jscode.Token, ok bool) (jscode.Token, bool) {
	if !ok {
		return jscode.Token{}, false
	}

	prev, ok := previous(provider, token)
	return SkipBlank(provider, prev, ok)
}
