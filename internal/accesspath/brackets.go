package accesspath

import (
	"slices"
	"strings"

	"github.com/inoxlang/jscompletion/internal/jscode"
)

var (
	Parens         = BracketMatcher{Open: "(", Close: ")", SameLine: true}
	SquareBrackets = BracketMatcher{Open: "[", Close: "]"}
)

// A BracketMatcher finds the opening delimiter matching a closing one by walking backward
// and counting the nesting depth.
type BracketMatcher struct {
	Open  string
	Close string

	//if true the opening delimiter has to be on the same line as the closing one.
	SameLine bool
}

// A BracketMatch is the result of a successful FindOpener call.
type BracketMatch struct {
	Opener jscode.Token
	Closer jscode.Token

	//tokens from the opener to the closer (both included), in source order.
	Tokens []jscode.Token
}

// FindOpener walks backward from closeToken until the depth reaches 0. ok is false if the
// start of the document is reached first (unresolved span), or if SameLine is set and the walk
// leaves the line of closeToken.
func (m BracketMatcher) FindOpener(provider jscode.TokenProvider, closeToken jscode.Token) (match BracketMatch, ok bool) {
	depth := 1
	token := closeToken
	walked := []jscode.Token{closeToken}

	for depth > 0 {
		token, ok = previous(provider, token)
		if !ok {
			return BracketMatch{}, false
		}
		if m.SameLine && token.Span.Line != closeToken.Span.Line {
			return BracketMatch{}, false
		}

		walked = append(walked, token)

		if token.Is(m.Close) {
			depth++
		} else if token.Is(m.Open) {
			depth--
		}
	}

	slices.Reverse(walked)

	return BracketMatch{
		Opener: token,
		Closer: closeToken,
		Tokens: walked,
	}, true
}

// Text returns the source text covered by the match, brackets included.
func (m BracketMatch) Text() string {
	var buf strings.Builder
	line := m.Opener.Span.Line

	for _, t := range m.Tokens {
		for line < t.Span.Line {
			buf.WriteByte('\n')
			line++
		}
		buf.WriteString(t.Text)
	}
	return buf.String()
}

// Span returns the span of the match: it starts at the opener, End is the end column of the
// closer on the closer's line.
func (m BracketMatch) Span() jscode.Span {
	return jscode.Span{
		Line:  m.Opener.Span.Line,
		Start: m.Opener.Span.Start,
		End:   m.Closer.Span.End,
	}
}
