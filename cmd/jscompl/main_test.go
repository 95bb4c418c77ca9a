package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/goccy/go-json"
	"github.com/inoxlang/jscompletion/internal/codecompletion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Setenv("JSCOMPL_LOG_LEVEL", "")
	t.Setenv("JSCOMPL_GLOBALS_FILE", "")
	xdg.Reload()
}

func run(args []string, stdin string) (exitCode int, out string, errOut string) {
	outW := bytes.NewBuffer(nil)
	errW := bytes.NewBuffer(nil)

	exitCode = _main(append([]string{COMMAND_NAME}, args...), strings.NewReader(stdin), outW, errW)
	return exitCode, outW.String(), errW.String()
}

func TestCLI(t *testing.T) {
	isolateConfig(t)

	t.Run("no subcommand", func(t *testing.T) {
		exitCode, _, errOut := run(nil, "")
		assert.Equal(t, ERROR_STATUS_CODE, exitCode)
		assert.Contains(t, errOut, "commands:")
	})

	t.Run("help", func(t *testing.T) {
		exitCode, out, _ := run([]string{"help"}, "")
		assert.Zero(t, exitCode)
		assert.Contains(t, out, COMPLETE_SUBCMD+" - ")
	})

	t.Run("subcommand help", func(t *testing.T) {
		exitCode, out, _ := run([]string{"help", COMPLETE_SUBCMD}, "")
		assert.Zero(t, exitCode)
		assert.Contains(t, out, "-globals")
	})

	t.Run("misspelled subcommand", func(t *testing.T) {
		exitCode, _, errOut := run([]string{"compelte"}, "")
		assert.Equal(t, ERROR_STATUS_CODE, exitCode)
		assert.Contains(t, errOut, "did you mean 'complete'")
	})
}

func TestTokensSubcommand(t *testing.T) {

	t.Run("stdin", func(t *testing.T) {
		exitCode, out, _ := run([]string{TOKENS_SUBCMD}, "a.b\n")
		require.Zero(t, exitCode)

		var lines [][]map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &lines))
		require.Len(t, lines, 2)
		assert.Len(t, lines[0], 3)
		assert.Empty(t, lines[1])
		assert.Equal(t, "property", lines[0][2]["kind"])
	})

	t.Run("single line", func(t *testing.T) {
		exitCode, out, _ := run([]string{TOKENS_SUBCMD, "-line", "1"}, "a\nfoo")
		require.Zero(t, exitCode)
		assert.Contains(t, out, `"text": "foo"`)
		assert.NotContains(t, out, `"text": "a"`)
	})

	t.Run("line out of range", func(t *testing.T) {
		exitCode, _, errOut := run([]string{TOKENS_SUBCMD, "-line", "3"}, "a")
		assert.Equal(t, ERROR_STATUS_CODE, exitCode)
		assert.Contains(t, errOut, "out of range")
	})

	t.Run("file", func(t *testing.T) {
		fpath := filepath.Join(t.TempDir(), "script.js")
		require.NoError(t, os.WriteFile(fpath, []byte("x"), 0o600))

		exitCode, out, _ := run([]string{TOKENS_SUBCMD, fpath}, "")
		require.Zero(t, exitCode)
		assert.Contains(t, out, `"text": "x"`)
	})

	t.Run("missing file", func(t *testing.T) {
		exitCode, _, _ := run([]string{TOKENS_SUBCMD, filepath.Join(t.TempDir(), "missing.js")}, "")
		assert.Equal(t, ERROR_STATUS_CODE, exitCode)
	})
}

func TestPathSubcommand(t *testing.T) {

	t.Run("string", func(t *testing.T) {
		exitCode, out, _ := run([]string{PATH_SUBCMD, "-string"}, "new Foo().bar")
		require.Zero(t, exitCode)
		assert.Equal(t, "Foo<new>().bar\n", out)
	})

	t.Run("cursor", func(t *testing.T) {
		exitCode, out, _ := run([]string{PATH_SUBCMD, "-string", "-line", "0", "-col", "3"}, "a.b.c\n")
		require.Zero(t, exitCode)
		assert.Equal(t, "a.b\n", out)
	})

	t.Run("JSON", func(t *testing.T) {
		exitCode, out, _ := run([]string{PATH_SUBCMD}, "a[b]")
		require.Zero(t, exitCode)
		assert.Contains(t, out, `"kind": "dynamic-property"`)
	})

	t.Run("empty path", func(t *testing.T) {
		exitCode, out, _ := run([]string{PATH_SUBCMD}, "")
		require.Zero(t, exitCode)
		assert.Contains(t, out, `"segments": []`)
	})
}

func TestCompleteSubcommand(t *testing.T) {
	isolateConfig(t)

	complete := func(t *testing.T, args []string, source string) codecompletion.CompletionResult {
		exitCode, out, errOut := run(append([]string{COMPLETE_SUBCMD}, args...), source)
		require.Zero(t, exitCode, errOut)

		var result codecompletion.CompletionResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		return result
	}

	names := func(result codecompletion.CompletionResult) []string {
		var names []string
		for _, candidate := range result.Results {
			names = append(names, candidate.Name)
		}
		return names
	}

	t.Run("builtins", func(t *testing.T) {
		result := complete(t, nil, "Math.fl")
		assert.Equal(t, []string{"floor"}, names(result))
		assert.Nil(t, result.Context)
	})

	t.Run("without builtins", func(t *testing.T) {
		result := complete(t, []string{"-no-builtins"}, "Math.fl")
		assert.Empty(t, result.Results)
	})

	t.Run("globals file", func(t *testing.T) {
		fpath := filepath.Join(t.TempDir(), "globals.json")
		require.NoError(t, os.WriteFile(fpath, []byte(`{"app": {"start": {"$args": ["port"]}}}`), 0o600))

		result := complete(t, []string{"-globals", fpath}, "app.")
		assert.Contains(t, names(result), "start")

		result = complete(t, []string{"-globals", fpath}, "app.start(")
		require.Len(t, result.Results, 1)
		assert.Equal(t, codecompletion.Candidate{Name: "Arguments", Value: "port)", IsSpecial: true}, result.Results[0])
	})

	t.Run("max candidates", func(t *testing.T) {
		result := complete(t, []string{"-max", "2"}, "Math.")
		assert.Len(t, result.Results, 2)
	})

	t.Run("context", func(t *testing.T) {
		result := complete(t, []string{"-context"}, "JSON.")
		assert.NotNil(t, result.Context)
	})

	t.Run("invalid log level", func(t *testing.T) {
		exitCode, _, errOut := run([]string{COMPLETE_SUBCMD, "-log-level", "verbose"}, "a")
		assert.Equal(t, ERROR_STATUS_CODE, exitCode)
		assert.Contains(t, errOut, "verbose")
	})

	t.Run("invalid globals file", func(t *testing.T) {
		fpath := filepath.Join(t.TempDir(), "globals.yaml")
		require.NoError(t, os.WriteFile(fpath, []byte("a: [1"), 0o600))

		exitCode, _, _ := run([]string{COMPLETE_SUBCMD, "-globals", fpath}, "a")
		assert.Equal(t, ERROR_STATUS_CODE, exitCode)
	})
}

func TestCancelOnSigintSigterm(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())

	ctx, cancel := cancelOnSigintSigterm(parent)
	defer cancel()

	cancelParent()
	<-ctx.Done()
}
