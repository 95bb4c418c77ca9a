package jsparse

import (
	"slices"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/inoxlang/jscompletion/internal/jscode"
	"github.com/inoxlang/jscompletion/internal/utils"
)

const (
	DEFAULT_MAX_SOURCE_LENGTH = 1_000_000
	MAX_CACHE_ENTRY_COUNT     = 1_000
)

var (
	cache     = lru.New(MAX_CACHE_ENTRY_COUNT)
	cacheLock sync.Mutex
)

type cacheEntry struct {
	lines [][]jscode.Token
	err   error
}

// A Document is an immutable, tokenized snapshot of a JavaScript source. It implements
// jscode.TokenProvider.
type Document struct {
	source string
	lines  [][]jscode.Token
	err    error
}

// NewDocument tokenizes source. Lexing results are cached by source, the returned document
// owns its tokens. Sources longer than DEFAULT_MAX_SOURCE_LENGTH are not cached.
func NewDocument(source string) *Document {
	cacheable := len(source) <= DEFAULT_MAX_SOURCE_LENGTH

	if cacheable {
		cacheLock.Lock()
		cached, ok := cache.Get(source)
		cacheLock.Unlock()

		if ok {
			entry := cached.(cacheEntry)
			return &Document{
				source: source,
				lines:  cloneLines(entry.lines),
				err:    entry.err,
			}
		}
	}

	lines, err := NewLexer().Tokenize(source)

	if cacheable {
		cacheLock.Lock()
		cache.Add(source, cacheEntry{lines: cloneLines(lines), err: err})
		cacheLock.Unlock()
	}

	return &Document{
		source: source,
		lines:  lines,
		err:    err,
	}
}

func (d *Document) Source() string {
	return d.source
}

// Err returns the lexing error, if any. Tokens are available even if there is an error.
func (d *Document) Err() error {
	return d.err
}

func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns a copy of the tokens of a line, nil if the line does not exist.
func (d *Document) Line(line int32) []jscode.Token {
	if line < 0 || int(line) >= len(d.lines) {
		return nil
	}
	return slices.Clone(d.lines[line])
}

// Lines returns a copy of the tokens of all lines.
func (d *Document) Lines() [][]jscode.Token {
	return cloneLines(d.lines)
}

func (d *Document) TokenAt(pos jscode.Position) jscode.Token {
	return jscode.Lines(d.lines).TokenAt(pos)
}

// EndPosition returns the position of the end of the document.
func (d *Document) EndPosition() jscode.Position {
	line := int32(len(d.lines) - 1)
	tokens := d.lines[line]
	if len(tokens) == 0 {
		return jscode.Position{Line: line}
	}
	return tokens[len(tokens)-1].Span.EndPosition()
}

func cloneLines(lines [][]jscode.Token) [][]jscode.Token {
	return utils.MapSlice(lines, func(line []jscode.Token) []jscode.Token {
		return slices.Clone(line)
	})
}
