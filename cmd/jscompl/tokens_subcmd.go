package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/inoxlang/jscompletion/internal/utils"
)

// PrintTokens prints the tokens of each line of a document as JSON, or the tokens of a single
// line if -line is set.
func PrintTokens(args []string, inR io.Reader, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(TOKENS_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var line int
	flags.IntVar(&line, "line", -1, "0-indexed line, all lines are printed by default")

	if showHelp(flags, args, outW) {
		return 0
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	doc, err := readDocument(context.Background(), flags, inR)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	if doc.Err() != nil {
		//tokens are available even if the source is invalid.
		fmt.Fprintln(errW, "warning:", doc.Err())
	}

	var v any
	if line >= 0 {
		if line >= doc.LineCount() {
			fmt.Fprintf(errW, "%s: line %d is out of range (%d lines)\n", ErrInvalidCursor, line, doc.LineCount())
			return ERROR_STATUS_CODE
		}
		v = utils.EmptySliceIfNil(doc.Line(int32(line)))
	} else {
		lines := doc.Lines()
		for i := range lines {
			lines[i] = utils.EmptySliceIfNil(lines[i])
		}
		v = lines
	}

	if err := printJSON(outW, v); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return 0
}
