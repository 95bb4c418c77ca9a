package sandbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/jsparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const TEST_GLOBALS = `
document:
  title: "Page"
  body:
    children: []
  getElementById:
    $args: [id]
    $returns:
      id: ""
      tagName: "DIV"
Date:
  $args: [value]
  $instance:
    getTime: {$args: [], $returns: 0}
  now: {$args: [], $returns: 0}
makeCounter:
  $args: [start]
  $returns:
    $args: []
    $returns: 0
items: [1, "two", {three: 3}]
keys:
  first: title
`

func newTestScope(t *testing.T) *Scope {
	scope := NewScope()
	require.NoError(t, scope.Load([]byte(TEST_GLOBALS), YAMLFormat))
	return scope
}

// evaluateAtEnd evaluates the path ending at the end of source.
func evaluateAtEnd(scope *Scope, source string) (any, error) {
	doc := jsparse.NewDocument(source)
	token, ok := accesspath.TokenBefore(doc, doc.EndPosition())
	return scope.Evaluate(context.Background(), accesspath.Resolve(doc, token, ok))
}

func TestScopeLoad(t *testing.T) {

	t.Run("YAML", func(t *testing.T) {
		scope := newTestScope(t)

		assert.ElementsMatch(t, []string{"document", "Date", "makeCounter", "items", "keys"}, scope.Names())

		date, ok := scope.Get("Date")
		require.True(t, ok)
		require.IsType(t, (*Function)(nil), date)

		fn := date.(*Function)
		assert.Equal(t, "Date", fn.Name)
		assert.Equal(t, []string{"value"}, fn.Params)
		assert.Contains(t, fn.Properties, "now")
		assert.Equal(t, "function Date(value)", fn.Signature())

		items, _ := scope.Get("items")
		assert.Equal(t, []any{float64(1), "two", map[string]any{"three": float64(3)}}, items)
	})

	t.Run("JSON", func(t *testing.T) {
		scope := NewScope()
		err := scope.Load([]byte(`{"answer": 42, "greet": {"$args": ["name"], "$returns": ""}}`), JSONFormat)
		require.NoError(t, err)

		answer, _ := scope.Get("answer")
		assert.Equal(t, float64(42), answer)

		greet, _ := scope.Get("greet")
		require.IsType(t, (*Function)(nil), greet)
		assert.Equal(t, []string{"name"}, greet.(*Function).Params)
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "globals.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"a": true}`), 0o600))

		scope := NewScope()
		require.NoError(t, scope.LoadFile(path))
		assert.True(t, scope.Has("a"))

		err := scope.LoadFile(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid data", func(t *testing.T) {
		scope := NewScope()

		err := scope.Load([]byte(`{`), JSONFormat)
		assert.ErrorIs(t, err, ErrInvalidDescription)

		err = scope.Load([]byte(`f: {$args: [1]}`), YAMLFormat)
		assert.ErrorIs(t, err, ErrInvalidDescription)

		err = scope.Load([]byte(`f: {$args: "a"}`), YAMLFormat)
		assert.ErrorIs(t, err, ErrInvalidDescription)

		assert.Empty(t, scope.Names())
	})

	t.Run("globals can be defined concurrently", func(t *testing.T) {
		scope := NewScope()
		done := make(chan struct{})

		go func() {
			defer close(done)
			for i := 0; i < 100; i++ {
				scope.Define("a", float64(i))
			}
		}()

		for i := 0; i < 100; i++ {
			scope.Snapshot()
		}
		<-done

		value, _ := scope.Get("a")
		assert.Equal(t, float64(99), value)
	})
}

func TestFormatOfFile(t *testing.T) {
	assert.Equal(t, JSONFormat, FormatOfFile("globals.JSON"))
	assert.Equal(t, YAMLFormat, FormatOfFile("globals.yaml"))
	assert.Equal(t, YAMLFormat, FormatOfFile("globals"))
}

func TestEvaluate(t *testing.T) {
	scope := newTestScope(t)

	t.Run("member expression", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, "document.title")
		require.NoError(t, err)
		assert.Equal(t, "Page", value)
	})

	t.Run("call", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, "document.getElementById('main').tagName")
		require.NoError(t, err)
		assert.Equal(t, "DIV", value)
	})

	t.Run("call of a call result", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, "makeCounter(0)()")
		require.NoError(t, err)
		assert.Equal(t, float64(0), value)
	})

	t.Run("constructor", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, "new Date()")
		require.NoError(t, err)
		assert.Contains(t, value, "getTime")

		value, err = evaluateAtEnd(scope, "new Date().getTime()")
		require.NoError(t, err)
		assert.Equal(t, float64(0), value)
	})

	t.Run("static property of a function", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, "Date.now")
		require.NoError(t, err)
		assert.IsType(t, (*Function)(nil), value)
	})

	t.Run("dynamic properties", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, `document["title"]`)
		require.NoError(t, err)
		assert.Equal(t, "Page", value)

		value, err = evaluateAtEnd(scope, `items[2].three`)
		require.NoError(t, err)
		assert.Equal(t, float64(3), value)

		value, err = evaluateAtEnd(scope, `document[keys.first]`)
		require.NoError(t, err)
		assert.Equal(t, "Page", value)
	})

	t.Run("primitive prototypes", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, `"abc".toUpperCase()`)
		require.NoError(t, err)
		assert.Equal(t, "", value)

		value, err = evaluateAtEnd(scope, `"abc".length`)
		require.NoError(t, err)
		assert.Equal(t, float64(3), value)

		value, err = evaluateAtEnd(scope, `items.map`)
		require.NoError(t, err)
		assert.IsType(t, (*Function)(nil), value)

		value, err = evaluateAtEnd(scope, `[1, 2].length`)
		require.NoError(t, err)
		assert.Equal(t, float64(0), value)

		value, err = evaluateAtEnd(scope, `document.hasOwnProperty`)
		require.NoError(t, err)
		assert.IsType(t, (*Function)(nil), value)
	})

	t.Run("literals", func(t *testing.T) {
		value, err := evaluateAtEnd(scope, "0x10")
		require.NoError(t, err)
		assert.Equal(t, float64(16), value)

		value, err = evaluateAtEnd(scope, "true")
		require.NoError(t, err)
		assert.Equal(t, true, value)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := evaluateAtEnd(scope, "unknown.a")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = evaluateAtEnd(scope, "document.missing")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = evaluateAtEnd(scope, "null.a")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = evaluateAtEnd(scope, "document.title()")
		assert.ErrorIs(t, err, ErrNotCallable)

		_, err = evaluateAtEnd(scope, "document[1+1]")
		assert.ErrorIs(t, err, ErrInvalidPath)

		_, err = evaluateAtEnd(scope, "")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		doc := jsparse.NewDocument("document.title")
		token, ok := accesspath.TokenBefore(doc, doc.EndPosition())

		_, err := scope.Evaluate(ctx, accesspath.Resolve(doc, token, ok))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "null", Describe(nil))
	assert.Equal(t, `"a"`, Describe("a"))
	assert.Equal(t, "1.5", Describe(1.5))
	assert.Equal(t, "Array(2)", Describe([]any{1, 2}))
	assert.Equal(t, "{a, b}", Describe(map[string]any{"b": 1, "a": 2}))
	assert.Equal(t, "function f(x)", Describe(&Function{Name: "f", Params: []string{"x"}}))
}
