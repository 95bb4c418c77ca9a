package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/inoxlang/jscompletion/internal/jscode"
	"github.com/inoxlang/jscompletion/internal/jsparse"
	"github.com/inoxlang/jscompletion/internal/utils"
	"github.com/muesli/cancelreader"
)

const (
	STDIN_PATH = "-"
)

var (
	ErrSourceTooLarge = errors.New("source is too large")
	ErrInvalidCursor  = errors.New("invalid cursor position")
)

// cursorFlags are the flags shared by the subcommands working on a position of a document.
type cursorFlags struct {
	line   int
	column int
}

func (c *cursorFlags) register(flags *flag.FlagSet) {
	flags.IntVar(&c.line, "line", -1, "0-indexed line of the cursor, the last line by default")
	flags.IntVar(&c.column, "col", -1, "0-indexed column (in characters) of the cursor, the end of the line by default")
}

// position returns the cursor position in doc.
func (c cursorFlags) position(doc *jsparse.Document) (jscode.Position, error) {
	if c.line < 0 {
		if c.column < 0 {
			return doc.EndPosition(), nil
		}
		return jscode.Position{Line: int32(doc.LineCount() - 1), Column: int32(c.column)}, nil
	}

	if c.line >= doc.LineCount() {
		return jscode.Position{}, fmt.Errorf("%w: line %d is out of range (%d lines)", ErrInvalidCursor, c.line, doc.LineCount())
	}

	pos := jscode.Position{Line: int32(c.line), Column: jscode.EndOfLine}
	if c.column >= 0 {
		pos.Column = int32(c.column)
	}
	return pos, nil
}

// readDocument reads the document whose path is the only positional argument, stdin is read
// if there is no argument or if the argument is STDIN_PATH. Reading stdin stops when ctx is done.
func readDocument(ctx context.Context, flags *flag.FlagSet, inR io.Reader) (*jsparse.Document, error) {
	var source []byte

	switch flags.NArg() {
	case 0:
	case 1:
		if flags.Arg(0) != STDIN_PATH {
			fpath := flags.Arg(0)

			info, err := os.Stat(fpath)
			if err != nil {
				return nil, err
			}
			if info.Size() > jsparse.DEFAULT_MAX_SOURCE_LENGTH {
				return nil, fmt.Errorf("%w: %s", ErrSourceTooLarge, fpath)
			}

			source, err = os.ReadFile(fpath)
			if err != nil {
				return nil, err
			}
			return jsparse.NewDocument(string(source)), nil
		}
	default:
		return nil, errors.New("a single file path is expected")
	}

	source, err := readStdin(ctx, inR)
	if err != nil {
		return nil, err
	}

	return jsparse.NewDocument(string(source)), nil
}

func readStdin(ctx context.Context, inR io.Reader) ([]byte, error) {
	if f, ok := inR.(*os.File); ok {
		reader, err := cancelreader.NewReader(f)
		if err == nil {
			defer reader.Close()
			stop := context.AfterFunc(ctx, func() {
				reader.Cancel()
			})
			defer stop()
			inR = reader
		}
	}

	source, err := io.ReadAll(io.LimitReader(inR, jsparse.DEFAULT_MAX_SOURCE_LENGTH+1))
	if errors.Is(err, cancelreader.ErrCanceled) {
		return nil, fmt.Errorf("stdin reading cancelled: %w", context.Cause(ctx))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(source) > jsparse.DEFAULT_MAX_SOURCE_LENGTH {
		return nil, fmt.Errorf("%w: stdin", ErrSourceTooLarge)
	}
	return source, nil
}

func printJSON(outW io.Writer, v any) error {
	data, err := utils.MarshalIndentJsonNoHTMLEspace(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(outW, "%s\n", data)
	return err
}
