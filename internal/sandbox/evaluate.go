package sandbox

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/jscode"
)

// Evaluate statically computes the value of an access path. Calls are not executed: the result
// of a call is the value described by the function.
func (s *Scope) Evaluate(ctx context.Context, path accesspath.Path) (any, error) {
	return s.evaluateSegments(ctx, path.Segments)
}

func (s *Scope) evaluateSegments(ctx context.Context, segments []accesspath.Segment) (any, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var current any

	for i, segment := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		if i == 0 {
			current, err = s.evaluateFirstSegment(ctx, segment)
		} else {
			current, err = s.evaluateMember(ctx, current, segment)
		}

		if err != nil {
			return nil, err
		}

		if segment.IsFunction {
			fn, ok := current.(*Function)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrNotCallable, describeSegment(segment))
			}
			current = fn.Call(segment.IsConstructor)
		}
	}

	return current, nil
}

func (s *Scope) evaluateFirstSegment(ctx context.Context, segment accesspath.Segment) (any, error) {
	switch segment.Kind {
	case jscode.Variable:
		value, ok := s.Get(segment.Text)
		if !ok {
			return nil, fmt.Errorf("%w: variable %s", ErrNotFound, segment.Text)
		}
		return value, nil
	case jscode.Array:
		return []any{}, nil
	case jscode.String:
		return unquote(segment.Text), nil
	case jscode.String2:
		return "", nil
	case jscode.Number:
		return parseNumber(segment.Text), nil
	case jscode.Atom:
		return atomValue(segment.Text), nil
	}

	return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidPath, describeSegment(segment))
}

func (s *Scope) evaluateMember(ctx context.Context, object any, segment accesspath.Segment) (any, error) {
	switch segment.Kind {
	case jscode.Property:
		return GetProperty(object, segment.Text)
	case jscode.DynamicProperty:
		key, err := s.evaluateKey(ctx, segment.Tokens)
		if err != nil {
			return nil, err
		}
		return GetProperty(object, key)
	case jscode.Immed:
		//the previous call result is called.
		return object, nil
	}

	return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidPath, describeSegment(segment))
}

// evaluateKey computes the property name of a dynamic property.
func (s *Scope) evaluateKey(ctx context.Context, segments []accesspath.Segment) (string, error) {
	key, err := s.evaluateSegments(ctx, segments)
	if err != nil {
		return "", err
	}

	switch k := key.(type) {
	case string:
		return k, nil
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(k), nil
	case nil:
		return "null", nil
	default:
		return "", fmt.Errorf("%w: unsupported property key %s", ErrInvalidPath, Describe(key))
	}
}

func describeSegment(segment accesspath.Segment) string {
	if segment.Text == "" {
		return string(segment.Kind)
	}
	return string(segment.Kind) + " " + segment.Text
}

func unquote(literal string) string {
	if len(literal) < 2 {
		return ""
	}

	if literal[0] == '"' {
		if s, err := strconv.Unquote(literal); err == nil {
			return s
		}
	}

	quote := literal[0]
	literal = literal[1:]
	if literal[len(literal)-1] == quote {
		literal = literal[:len(literal)-1]
	}
	return strings.ReplaceAll(literal, `\`+string(quote), string(quote))
}

func parseNumber(literal string) float64 {
	literal = strings.ReplaceAll(literal, "_", "")

	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		return f
	}
	if i, err := strconv.ParseInt(literal, 0, 64); err == nil {
		return float64(i)
	}
	return math.NaN()
}

func atomValue(atom string) any {
	switch atom {
	case "true":
		return true
	case "false":
		return false
	case "NaN":
		return math.NaN()
	case "Infinity":
		return math.Inf(1)
	default: //null, undefined
		return nil
	}
}
