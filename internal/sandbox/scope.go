package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNotCallable        = errors.New("value is not callable")
	ErrInvalidPath        = errors.New("path cannot be evaluated")
	ErrInvalidDescription = errors.New("invalid value description")
)

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

// FormatOfFile returns the format of a globals file, .json files are JSON and other files are YAML.
func FormatOfFile(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONFormat
	}
	return YAMLFormat
}

// A Scope holds global variables, it can be read and modified concurrently.
type Scope struct {
	globals cmap.ConcurrentMap[string, any]
}

func NewScope() *Scope {
	return &Scope{
		globals: cmap.New[any](),
	}
}

func (s *Scope) Define(name string, value any) {
	s.globals.Set(name, value)
}

func (s *Scope) Get(name string) (any, bool) {
	return s.globals.Get(name)
}

func (s *Scope) Has(name string) bool {
	return s.globals.Has(name)
}

func (s *Scope) Names() []string {
	return s.globals.Keys()
}

// Snapshot returns a copy of the globals.
func (s *Scope) Snapshot() map[string]any {
	return s.globals.Items()
}

// Load decodes a mapping of global names to value descriptions and defines the globals.
// Nothing is defined if the data is invalid.
func (s *Scope) Load(data []byte, format Format) error {
	var descriptions map[string]any

	var err error
	switch format {
	case JSONFormat:
		err = json.Unmarshal(data, &descriptions)
	default:
		err = yaml.Unmarshal(data, &descriptions)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}

	values := make(map[string]any, len(descriptions))
	for name, description := range descriptions {
		value, err := ValueFromDescription(name, description)
		if err != nil {
			return err
		}
		values[name] = value
	}

	s.globals.MSet(values)
	return nil
}

func (s *Scope) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read globals file: %w", err)
	}

	if err := s.Load(data, FormatOfFile(path)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
