package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/inoxlang/jscompletion/internal/accesspath"
	"github.com/inoxlang/jscompletion/internal/utils"
)

// PrintPath prints the access path ending at the token before the cursor.
func PrintPath(args []string, inR io.Reader, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(PATH_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var cursor cursorFlags
	var printString bool

	cursor.register(flags)
	flags.BoolVar(&printString, "string", false, "print the path as a string (e.g. a.b().c) instead of JSON")

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

	pos, err := cursor.position(doc)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	token, ok := accesspath.TokenBefore(doc, pos)
	path := accesspath.Resolve(doc, token, ok)

	if printString {
		fmt.Fprintln(outW, path.String())
		return 0
	}

	path.Segments = utils.EmptySliceIfNil(path.Segments)

	if err := printJSON(outW, path); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return 0
}
