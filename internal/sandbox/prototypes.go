package sandbox

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/inoxlang/jscompletion/internal/utils"
)

var (
	//go:embed prototypes.yaml
	prototypesYAML string

	OBJECT_PROTOTYPE   map[string]any
	FUNCTION_PROTOTYPE map[string]any
	STRING_PROTOTYPE   map[string]any
	NUMBER_PROTOTYPE   map[string]any
	BOOLEAN_PROTOTYPE  map[string]any
	ARRAY_PROTOTYPE    map[string]any
)

func init() {
	var descriptions map[string]any
	utils.PanicIfErr(yaml.Unmarshal(utils.StringAsBytes(prototypesYAML), &descriptions))

	prototypes := map[string]*map[string]any{
		"object":   &OBJECT_PROTOTYPE,
		"function": &FUNCTION_PROTOTYPE,
		"string":   &STRING_PROTOTYPE,
		"number":   &NUMBER_PROTOTYPE,
		"boolean":  &BOOLEAN_PROTOTYPE,
		"array":    &ARRAY_PROTOTYPE,
	}

	for name, prototype := range prototypes {
		value := utils.Must(ValueFromDescription(name, descriptions[name]))
		object, ok := value.(map[string]any)
		if !ok {
			panic(fmt.Errorf("prototype %s is not an object", name))
		}
		*prototype = object
	}
}

// prototypeChain returns the prototypes of a value, the nearest first.
func prototypeChain(value any) []map[string]any {
	switch value.(type) {
	case nil:
		return nil
	case string:
		return []map[string]any{STRING_PROTOTYPE, OBJECT_PROTOTYPE}
	case float64:
		return []map[string]any{NUMBER_PROTOTYPE, OBJECT_PROTOTYPE}
	case bool:
		return []map[string]any{BOOLEAN_PROTOTYPE, OBJECT_PROTOTYPE}
	case []any:
		return []map[string]any{ARRAY_PROTOTYPE, OBJECT_PROTOTYPE}
	case *Function:
		return []map[string]any{FUNCTION_PROTOTYPE, OBJECT_PROTOTYPE}
	default:
		return []map[string]any{OBJECT_PROTOTYPE}
	}
}

// ownProperties returns the properties of a value that are not inherited.
func ownProperties(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case *Function:
		props := utils.CopyMap(v.Properties)
		props["name"] = v.Name
		props["length"] = float64(len(v.Params))
		return props
	case string:
		return map[string]any{"length": float64(len([]rune(v)))}
	case []any:
		props := make(map[string]any, len(v)+1)
		for i, elem := range v {
			props[strconv.Itoa(i)] = elem
		}
		props["length"] = float64(len(v))
		return props
	default:
		return nil
	}
}

// GetProperty returns the value of a property, own properties shadow inherited ones.
func GetProperty(value any, name string) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: cannot read property %q of null", ErrNotFound, name)
	}

	if propValue, ok := ownProperties(value)[name]; ok {
		return propValue, nil
	}

	for _, prototype := range prototypeChain(value) {
		if propValue, ok := prototype[name]; ok {
			return propValue, nil
		}
	}

	return nil, fmt.Errorf("%w: property %q", ErrNotFound, name)
}

// Properties returns all the properties of a value, inherited properties included.
func Properties(value any) map[string]any {
	props := map[string]any{}

	chain := prototypeChain(value)
	for i := len(chain) - 1; i >= 0; i-- {
		for name, propValue := range chain[i] {
			props[name] = propValue
		}
	}

	for name, propValue := range ownProperties(value) {
		props[name] = propValue
	}

	return props
}
