package sandbox

import (
	"context"
	"testing"

	"github.com/inoxlang/jscompletion/internal/codecompletion"
	"github.com/inoxlang/jscompletion/internal/jsparse"
	"github.com/inoxlang/jscompletion/internal/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complete(t *testing.T, backend *Backend, source string) codecompletion.CompletionResult {
	doc := jsparse.NewDocument(source)

	result, err := codecompletion.FindCompletions(context.Background(), codecompletion.SearchArgs{
		Provider: doc,
		Cursor:   doc.EndPosition(),
		Backend:  backend,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	return result
}

func candidateNames(result codecompletion.CompletionResult) []string {
	return utils.MapSlice(result.Results, func(c codecompletion.Candidate) string {
		return c.Name
	})
}

func TestBackend(t *testing.T) {
	backend := NewBackend(newTestScope(t), zerolog.Nop())

	t.Run("globals and keywords", func(t *testing.T) {
		result := complete(t, backend, "d")

		assert.Equal(t, []codecompletion.Candidate{
			{Name: "Date", Value: "Date"},
			{Name: "document", Value: "document"},
			{Name: "debugger", Value: "debugger", IsSpecial: true},
			{Name: "default", Value: "default", IsSpecial: true},
			{Name: "delete", Value: "delete", IsSpecial: true},
			{Name: "do", Value: "do", IsSpecial: true},
		}, result.Results)
	})

	t.Run("properties", func(t *testing.T) {
		result := complete(t, backend, "document.")
		assert.Subset(t, candidateNames(result), []string{"title", "body", "getElementById", "hasOwnProperty"})
	})

	t.Run("properties with a prefix", func(t *testing.T) {
		result := complete(t, backend, "document.ti")
		assert.Equal(t, []string{"title"}, candidateNames(result))
		assert.Equal(t, "Page", result.Context.(map[string]any)["title"])
	})

	t.Run("properties of a call result", func(t *testing.T) {
		result := complete(t, backend, "document.getElementById('a').t")
		assert.Equal(t, []string{"tagName", "toLocaleString", "toString"}, candidateNames(result))
	})

	t.Run("properties of a constructed object", func(t *testing.T) {
		result := complete(t, backend, "new Date().get")
		assert.Equal(t, []string{"getTime"}, candidateNames(result))
	})

	t.Run("properties of a string literal", func(t *testing.T) {
		result := complete(t, backend, "'abc'.toU")
		assert.Equal(t, []string{"toUpperCase"}, candidateNames(result))
	})

	t.Run("properties of an array element", func(t *testing.T) {
		result := complete(t, backend, "items[1].len")
		assert.Equal(t, []string{"length"}, candidateNames(result))
	})

	t.Run("properties after optional chaining", func(t *testing.T) {
		result := complete(t, backend, "items?.[1].len")
		assert.Equal(t, []string{"length"}, candidateNames(result))

		result = complete(t, backend, "document.getElementById?.('a').t")
		assert.Equal(t, []string{"tagName", "toLocaleString", "toString"}, candidateNames(result))
	})

	t.Run("properties inside a template expression", func(t *testing.T) {
		result := complete(t, backend, "`title: ${document.ti")
		assert.Equal(t, []string{"title"}, candidateNames(result))
	})

	t.Run("unknown object", func(t *testing.T) {
		result := complete(t, backend, "unknown.")
		assert.Empty(t, result.Results)
	})

	t.Run("arguments of a global function", func(t *testing.T) {
		result := complete(t, backend, "makeCounter(")

		assert.Equal(t, []codecompletion.Candidate{
			{Name: codecompletion.ARGUMENTS_CANDIDATE_NAME, Value: "start)", IsSpecial: true},
		}, result.Results)
	})

	t.Run("arguments of a method", func(t *testing.T) {
		result := complete(t, backend, "document.getElementById(")

		assert.Equal(t, []codecompletion.Candidate{
			{Name: codecompletion.ARGUMENTS_CANDIDATE_NAME, Value: "id)", IsSpecial: true},
		}, result.Results)
		assert.Contains(t, result.Context, "getElementById")
	})

	t.Run("arguments of a prototype method", func(t *testing.T) {
		result := complete(t, backend, "items.slice(")
		require.Len(t, result.Results, 1)
		assert.Equal(t, "start, end)", result.Results[0].Value)
	})

	t.Run("function without parameters", func(t *testing.T) {
		result := complete(t, backend, "Date.now(")
		assert.Empty(t, result.Results)
	})

	t.Run("not a function", func(t *testing.T) {
		result := complete(t, backend, "document.title(")
		assert.Empty(t, result.Results)

		result = complete(t, backend, "unknown.f(")
		assert.Empty(t, result.Results)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		doc := jsparse.NewDocument("document.t")
		_, err := codecompletion.FindCompletions(ctx, codecompletion.SearchArgs{
			Provider: doc,
			Cursor:   doc.EndPosition(),
			Backend:  backend,
			Logger:   zerolog.Nop(),
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
