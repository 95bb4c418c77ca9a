package sandbox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inoxlang/jscompletion/internal/utils"
)

const (
	ARGS_DESCRIPTION_KEY     = "$args"
	RETURNS_DESCRIPTION_KEY  = "$returns"
	INSTANCE_DESCRIPTION_KEY = "$instance"
)

// Values of the sandbox are the values produced by decoding JSON or YAML: map[string]any
// (objects), []any (arrays), string, float64, bool and nil; plus *Function.

// A Function is a callable value, calling it does not execute anything: the result is the
// Returns value (or the Instance value for constructor calls).
type Function struct {
	Name       string         `json:"name,omitempty"`
	Params     []string       `json:"params"`
	Returns    any            `json:"returns,omitempty"`
	Instance   any            `json:"instance,omitempty"`
	Properties map[string]any `json:"properties,omitempty"` //static properties
}

// Call returns the result of a call, a constructor call without instance description
// creates an empty object.
func (f *Function) Call(isConstructor bool) any {
	if isConstructor {
		if f.Instance == nil {
			return map[string]any{}
		}
		return f.Instance
	}
	return f.Returns
}

func (f *Function) Signature() string {
	return "function " + f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

// ValueFromDescription converts a decoded JSON or YAML value into a sandbox value: objects with a
// $args key describe functions, integers become float64.
func ValueFromDescription(name string, description any) (any, error) {
	switch d := description.(type) {
	case map[string]any:
		return objectFromDescription(name, d)
	case map[any]any:
		object := make(map[string]any, len(d))
		for k, v := range d {
			object[fmt.Sprint(k)] = v
		}
		return objectFromDescription(name, object)
	case []any:
		array := make([]any, len(d))
		for i, elem := range d {
			value, err := ValueFromDescription(name+"["+strconv.Itoa(i)+"]", elem)
			if err != nil {
				return nil, err
			}
			array[i] = value
		}
		return array, nil
	case int:
		return float64(d), nil
	case int64:
		return float64(d), nil
	case uint64:
		return float64(d), nil
	case float32:
		return float64(d), nil
	case nil, string, float64, bool, *Function:
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %s has an unsupported type %T", ErrInvalidDescription, name, description)
	}
}

func objectFromDescription(name string, description map[string]any) (any, error) {
	args, isFunction := description[ARGS_DESCRIPTION_KEY]
	if !isFunction {
		object := make(map[string]any, len(description))
		for key, propDesc := range description {
			value, err := ValueFromDescription(name+"."+key, propDesc)
			if err != nil {
				return nil, err
			}
			object[key] = value
		}
		return object, nil
	}

	fn := &Function{
		Name:   name[strings.LastIndexByte(name, '.')+1:],
		Params: []string{},
	}

	switch a := args.(type) {
	case nil:
	case []any:
		for _, param := range a {
			paramName, ok := param.(string)
			if !ok {
				return nil, fmt.Errorf("%w: parameters of %s should be strings", ErrInvalidDescription, name)
			}
			fn.Params = append(fn.Params, paramName)
		}
	default:
		return nil, fmt.Errorf("%w: %s of %s should be a list", ErrInvalidDescription, ARGS_DESCRIPTION_KEY, name)
	}

	for key, propDesc := range description {
		var err error

		switch key {
		case ARGS_DESCRIPTION_KEY:
		case RETURNS_DESCRIPTION_KEY:
			fn.Returns, err = ValueFromDescription(name+"()", propDesc)
		case INSTANCE_DESCRIPTION_KEY:
			fn.Instance, err = ValueFromDescription("new "+name+"()", propDesc)
		default:
			if fn.Properties == nil {
				fn.Properties = map[string]any{}
			}
			fn.Properties[key], err = ValueFromDescription(name+"."+key, propDesc)
		}

		if err != nil {
			return nil, err
		}
	}

	return fn, nil
}

// Describe returns a short human readable description of a value.
func Describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case *Function:
		return v.Signature()
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		return "Array(" + strconv.Itoa(len(v)) + ")"
	case map[string]any:
		return "{" + strings.Join(utils.GetSortedMapKeys(v), ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
