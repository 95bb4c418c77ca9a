package sandbox

import (
	_ "embed"
)

var (
	//go:embed builtins.yaml
	builtinsYAML []byte
)

// NewScopeWithBuiltins returns a scope defining the usual globals of a browser (Math, JSON,
// console, document ...).
func NewScopeWithBuiltins() (*Scope, error) {
	scope := NewScope()
	if err := scope.Load(builtinsYAML, YAMLFormat); err != nil {
		return nil, err
	}
	return scope, nil
}
