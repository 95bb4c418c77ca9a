package jscode

import (
	"math"
	"strings"
)

const (
	// EndOfLine is the column sentinel meaning "end of line".
	EndOfLine = int32(math.MaxInt32)

	NEW_KEYWORD_STRING = "new"
)

// A Token is a lexical unit of a single line. Tokens are values: the resolver never mutates a
// token returned by a TokenProvider.
type Token struct {
	Kind Kind   `json:"kind"` //can be empty
	Text string `json:"text"`
	Span Span   `json:"span"`

	State LexerState `json:"state"`
}

// Span is a half-open column range on a single line, all fields are 0-indexed.
type Span struct {
	Line  int32 `json:"line"`
	Start int32 `json:"start"`
	End   int32 `json:"end"` //exclusive
}

func (s Span) Len() int32 {
	return s.End - s.Start
}

func (s Span) StartPosition() Position {
	return Position{Line: s.Line, Column: s.Start}
}

func (s Span) EndPosition() Position {
	return Position{Line: s.Line, Column: s.End}
}

// Position is a 0-indexed line & column pair. Column can be EndOfLine.
type Position struct {
	Line   int32 `json:"line"`
	Column int32 `json:"column"`
}

// LexerState is a snapshot of the tokenizer state at the start of a token,
// it is opaque to the completion logic and only carried along.
type LexerState struct {
	Offset     int32 `json:"offset"` //rune offset of the token in the document
	AfterDot   bool  `json:"afterDot,omitempty"`
	InTemplate bool  `json:"inTemplate,omitempty"`
	InComment  bool  `json:"inComment,omitempty"`
}

// Is returns true if the token has no kind and the given text (punctuation, operators).
func (t Token) Is(text string) bool {
	return t.Kind == KindNone && t.Text == text
}

func (t Token) IsKeyword(text string) bool {
	return t.Kind == Keyword && t.Text == text
}

// IsBlank returns true if the token has no kind and only contains whitespace (or nothing).
func (t Token) IsBlank() bool {
	return t.Kind == KindNone && strings.TrimSpace(t.Text) == ""
}

// Invalid returns a copy of the token marked as invalid, the span is kept.
func (t Token) Invalid() Token {
	t.Kind = Invalid
	t.Text = ""
	return t
}

type Kind string

const (
	KindNone Kind = "" //punctuation, operators and whitespace

	Keyword  Kind = "keyword"
	Property Kind = "property"
	Variable Kind = "variable"
	Atom     Kind = "atom"
	Number   Kind = "number"
	String   Kind = "string"
	String2  Kind = "string-2" //template literals and regular expressions
	Comment  Kind = "comment"
	Invalid  Kind = "invalid"

	//kinds only produced by the access path resolver

	DynamicProperty Kind = "dynamic-property"
	Array           Kind = "array"
	Immed           Kind = "immed"
)

// A TokenProvider gives access to the tokens of a document. TokenAt should return the token
// that ends at or covers pos; if pos.Column is EndOfLine the last token of the line is returned.
// Repeated calls with the same position should return equal tokens.
type TokenProvider interface {
	TokenAt(pos Position) Token
}
