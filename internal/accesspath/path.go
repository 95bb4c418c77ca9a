package accesspath

import (
	"strings"

	"github.com/inoxlang/jscompletion/internal/jscode"
	"github.com/inoxlang/jscompletion/internal/utils"
)

// A Segment is an element of an access path: a plain token (variable, property, literal ...)
// or a synthetic token summarizing a bracketed region (dynamic-property, array, immed).
type Segment struct {
	jscode.Token

	IsFunction    bool `json:"isFunction,omitempty"`
	IsConstructor bool `json:"isConstructor,omitempty"`

	//line of the end of the segment, it differs from Span.Line only for bracketed regions
	//spanning several lines.
	EndLine int32 `json:"endLine"`

	//resolved path inside the brackets of a dynamic-property segment.
	Tokens []Segment `json:"tokens,omitempty"`
}

func plainSegment(token jscode.Token, isFunction bool) Segment {
	return Segment{
		Token:      token,
		IsFunction: isFunction,
		EndLine:    token.Span.Line,
	}
}

func invalidSegment(token jscode.Token) Segment {
	return plainSegment(token.Invalid(), false)
}

// A Path is an access chain ending at the cursor, Segments are in source order:
// the leftmost segment comes first.
type Path struct {
	Segments []Segment `json:"segments"`

	//true if a 'new' keyword precedes the chain but no callable segment was found to be
	//the constructor.
	PendingNew bool `json:"pendingNew,omitempty"`
}

func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Nearest returns the segment adjacent to the cursor (the rightmost one).
func (p Path) Nearest() (Segment, bool) {
	if len(p.Segments) == 0 {
		return Segment{}, false
	}
	return p.Segments[len(p.Segments)-1], true
}

// Parent returns the path without its nearest segment.
func (p Path) Parent() Path {
	if len(p.Segments) == 0 {
		return Path{}
	}
	return Path{Segments: p.Segments[:len(p.Segments)-1]}
}

func (p Path) HasInvalid() bool {
	for _, segment := range p.Segments {
		if segment.Kind == jscode.Invalid {
			return true
		}
	}
	return false
}

func (p Path) Kinds() []jscode.Kind {
	return utils.MapSlice(p.Segments, func(segment Segment) jscode.Kind {
		return segment.Kind
	})
}

func (p Path) Texts() []string {
	return utils.MapSlice(p.Segments, func(segment Segment) string {
		return segment.Text
	})
}

// String returns a compact, human readable representation of the path, mainly for logs:
// foo.bar()[baz].
func (p Path) String() string {
	var buf strings.Builder

	for i, segment := range p.Segments {
		switch segment.Kind {
		case jscode.DynamicProperty, jscode.Array:
			buf.WriteString(segment.Text)
		case jscode.Immed:
			buf.WriteString("()")
			continue
		case jscode.Invalid:
			if i > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString("<invalid>")
		default:
			if i > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(segment.Text)
		}

		if segment.IsConstructor {
			buf.WriteString("<new>")
		}
		if segment.IsFunction {
			buf.WriteString("()")
		}
	}
	return buf.String()
}
