package jsparse

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/inoxlang/jscompletion/internal/jscode"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

var (
	ErrInvalidSource = errors.New("invalid source")
)

// Lexer splits JavaScript source into lines of classified tokens, the classification mimics the one
// of editor tokenizers: identifiers after a dot are properties, reserved words are keywords, etc.
// Whitespace and comments are kept so that the tokens of a line cover the whole line.
type Lexer struct {
	lexer *js.Lexer

	lines  [][]jscode.Token
	line   int32
	column int32 //rune column
	offset int32 //rune offset
	read   int   //byte offset

	lastKind jscode.Kind
	lastText string //last significant token (not whitespace nor comment)

	templateDepth int
}

func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize returns the tokens of each line of source. Lines without tokens are empty.
// Lexing does not stop at the first error: an unterminated string ends with its line, an
// unterminated template or comment extends to the end of the source and unknown characters
// become Invalid tokens. The first error is returned, it wraps ErrInvalidSource.
func (l *Lexer) Tokenize(source string) ([][]jscode.Token, error) {
	l.lines = [][]jscode.Token{nil}
	l.line = 0
	l.column = 0
	l.offset = 0
	l.read = 0
	l.lastKind = jscode.KindNone
	l.lastText = ""
	l.templateDepth = 0

	var firstErr error

	for l.read < len(source) {
		err := l.lex(source[l.read:])
		if err == nil {
			break
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%w: %w", ErrInvalidSource, err)
		}
		l.recover(source)
	}

	return l.lines, firstErr
}

func (l *Lexer) lex(source string) error {
	l.lexer = js.NewLexer(parse.NewInputString(source))
	l.templateDepth = 0

	for {
		tt, data := l.lexer.Next()

		if tt == js.ErrorToken {
			err := l.lexer.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if (tt == js.DivToken || tt == js.DivEqToken) && !isOperand(l.lastKind, l.lastText) {
			tt, data = l.lexer.RegExp()
			if tt == js.ErrorToken {
				return l.lexer.Err()
			}
		}

		l.read += len(data)
		l.consume(tt, string(data))
	}
}

func (l *Lexer) consume(tt js.TokenType, text string) {
	switch {
	case tt == js.LineTerminatorToken:
		l.newline(text)
	case tt == js.WhitespaceToken:
		l.addToken(jscode.KindNone, text)
	case tt == js.CommentToken || tt == js.CommentLineTerminatorToken:
		l.addMultilineToken(jscode.Comment, text, jscode.LexerState{InComment: true})
	case tt == js.StringToken:
		l.addSignificantToken(jscode.String, text)
	case tt == js.TemplateToken || tt == js.TemplateEndToken:
		if tt == js.TemplateEndToken {
			l.templateDepth--
		}
		l.addMultilineToken(jscode.String2, text, jscode.LexerState{InTemplate: true})
		l.lastKind, l.lastText = jscode.String2, text
	case tt == js.TemplateStartToken || tt == js.TemplateMiddleToken:
		if tt == js.TemplateStartToken {
			l.templateDepth++
		}
		head := strings.TrimSuffix(text, TEMPLATE_EXPR_START)
		l.addMultilineToken(jscode.String2, head, jscode.LexerState{InTemplate: true})
		l.lastKind, l.lastText = jscode.String2, head

		//an expression starts after '${', it is a separate token so that chains stop there.
		l.addSignificantToken(jscode.KindNone, TEMPLATE_EXPR_START)
	case tt == js.RegExpToken:
		l.addSignificantToken(jscode.String2, text)
	case js.IsNumeric(tt):
		l.addSignificantToken(jscode.Number, text)
	case tt == js.PrivateIdentifierToken || js.IsIdentifierName(tt):
		l.addSignificantToken(l.classifyIdentifier(text), text)
	default:
		l.addSignificantToken(jscode.KindNone, text)
	}
}

func (l *Lexer) classifyIdentifier(name string) jscode.Kind {
	if l.lastKind == jscode.KindNone && isDotLike(l.lastText) {
		return jscode.Property
	}
	if ATOMS[name] {
		return jscode.Atom
	}
	if KEYWORDS[name] {
		return jscode.Keyword
	}
	return jscode.Variable
}

func (l *Lexer) addSignificantToken(kind jscode.Kind, text string) {
	l.addToken(kind, text)
	l.lastKind, l.lastText = kind, text
}

func (l *Lexer) addToken(kind jscode.Kind, text string) {
	l.addTokenWithState(kind, text, jscode.LexerState{})
}

func (l *Lexer) addTokenWithState(kind jscode.Kind, text string, state jscode.LexerState) {
	length := int32(utf8.RuneCountInString(text))

	state.Offset = l.offset
	state.AfterDot = isDotLike(l.lastText) && l.lastKind == jscode.KindNone
	state.InTemplate = state.InTemplate || l.templateDepth > 0

	l.lines[l.line] = append(l.lines[l.line], jscode.Token{
		Kind: kind,
		Text: text,
		Span: jscode.Span{
			Line:  l.line,
			Start: l.column,
			End:   l.column + length,
		},
		State: state,
	})

	l.column += length
	l.offset += length
}

// addMultilineToken adds a token that may contain line terminators (comments, templates),
// each line gets its own token.
func (l *Lexer) addMultilineToken(kind jscode.Kind, text string, continuationState jscode.LexerState) {
	state := jscode.LexerState{InTemplate: continuationState.InTemplate}

	for {
		index := strings.IndexAny(text, "\r\n")
		if index < 0 {
			if text != "" {
				l.addTokenWithState(kind, text, state)
			}
			return
		}

		if index > 0 {
			l.addTokenWithState(kind, text[:index], state)
		}

		terminatorLen := 1
		if text[index] == '\r' && index+1 < len(text) && text[index+1] == '\n' {
			terminatorLen = 2
		}
		l.newline(text[index : index+terminatorLen])
		text = text[index+terminatorLen:]
		state = continuationState
	}
}

func (l *Lexer) newline(terminator string) {
	l.offset += int32(utf8.RuneCountInString(terminator))
	l.line++
	l.column = 0
	l.lines = append(l.lines, nil)
}

// recover consumes the token that caused a lexing error.
func (l *Lexer) recover(source string) {
	rest := source[l.read:]

	//leading whitespace and line terminators are not part of the invalid token.
	for rest != "" && (rest[0] == ' ' || rest[0] == '\t' || isNewline(rest[0])) {
		n := 1
		if rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n' {
			n = 2
		}
		if isNewline(rest[0]) {
			l.newline(rest[:n])
		} else {
			l.addToken(jscode.KindNone, rest[:n])
		}
		rest = rest[n:]
		l.read += n
	}

	if rest == "" {
		return
	}

	switch rest[0] {
	case '"', '\'':
		end := strings.IndexAny(rest, "\r\n")
		if end < 0 {
			end = len(rest)
		}
		l.addSignificantToken(jscode.String, rest[:end])
		l.read += end
	case '`':
		l.addMultilineToken(jscode.String2, rest, jscode.LexerState{InTemplate: true})
		l.lastKind, l.lastText = jscode.String2, rest
		l.read = len(source)
	case '/':
		l.addMultilineToken(jscode.Comment, rest, jscode.LexerState{InComment: true})
		l.read = len(source)
	default:
		_, size := utf8.DecodeRuneInString(rest)
		l.addSignificantToken(jscode.Invalid, rest[:size])
		l.read += size
	}
}
