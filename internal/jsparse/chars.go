package jsparse

import (
	"github.com/inoxlang/jscompletion/internal/jscode"
)

const (
	TEMPLATE_EXPR_START = "${"
)

var (
	KEYWORDS = map[string]bool{
		"await": true, "break": true, "case": true, "catch": true, "class": true, "const": true,
		"continue": true, "debugger": true, "default": true, "delete": true, "do": true, "else": true,
		"export": true, "extends": true, "finally": true, "for": true, "function": true, "if": true,
		"import": true, "in": true, "instanceof": true, "let": true, "new": true, "return": true,
		"static": true, "super": true, "switch": true, "throw": true, "try": true, "typeof": true,
		"var": true, "void": true, "while": true, "with": true, "yield": true,
	}

	ATOMS = map[string]bool{
		"true": true, "false": true, "null": true, "undefined": true, "NaN": true, "Infinity": true,
	}
)

func isNewline(c byte) bool {
	return c == '\r' || c == '\n'
}

// isOperand returns true if a token of the given kind & text ends an operand, in which case
// a following '/' is a division and not the start of a regular expression.
func isOperand(kind jscode.Kind, text string) bool {
	switch kind {
	case jscode.Variable, jscode.Property, jscode.Atom, jscode.Number, jscode.String, jscode.String2:
		return true
	case jscode.KindNone:
		return text == ")" || text == "]" || text == "}"
	}
	return false
}

func isDotLike(text string) bool {
	return text == "." || text == "?."
}
