package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/inoxlang/jscompletion/internal/codecompletion"
	"github.com/inoxlang/jscompletion/internal/config"
	"github.com/inoxlang/jscompletion/internal/logs"
	"github.com/inoxlang/jscompletion/internal/sandbox"
	"github.com/inoxlang/jscompletion/internal/utils"
)

// Complete prints the completions at the cursor as JSON. Globals are the builtins and the globals
// of the configured globals file.
func Complete(ctx context.Context, args []string, inR io.Reader, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(COMPLETE_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var (
		cursor        cursorFlags
		globalsFile   string
		noBuiltins    bool
		maxCandidates int
		logLevel      string
		printContext  bool
	)

	cursor.register(flags)
	flags.StringVar(&globalsFile, "globals", "", "JSON or YAML file describing global variables, overrides the configuration")
	flags.BoolVar(&noBuiltins, "no-builtins", false, "do not define the builtin globals (Math, JSON, console ...)")
	flags.IntVar(&maxCandidates, "max", -1, "maximum number of candidates (0 means no limit), overrides the configuration")
	flags.BoolVar(&printContext, "context", false, "also print the value the candidates have been searched in")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled), overrides the configuration")

	if showHelp(flags, args, outW) {
		return 0
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	//configuration

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	if globalsFile != "" {
		cfg.GlobalsFile = globalsFile
	}
	if maxCandidates >= 0 {
		cfg.MaxCandidates = maxCandidates
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	level, _ := logs.ParseLevel(cfg.LogLevel) //already validated
	logger := logs.NewConsoleLogger(errW, level, isColorized(errW))

	if cfg.Path != "" {
		logger.Debug().Str("path", cfg.Path).Msg("configuration file loaded")
	}

	//globals

	scope, err := createScope(cfg.GlobalsFile, !noBuiltins)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create the sandbox")
		return ERROR_STATUS_CODE
	}

	//document

	doc, err := readDocument(ctx, flags, inR)
	if err != nil {
		logger.Error().Err(err).Send()
		return ERROR_STATUS_CODE
	}

	if doc.Err() != nil {
		logger.Warn().Err(doc.Err()).Msg("the source is not valid JavaScript")
	}

	pos, err := cursor.position(doc)
	if err != nil {
		logger.Error().Err(err).Send()
		return ERROR_STATUS_CODE
	}

	//completion

	session, err := codecompletion.NewSession(codecompletion.SessionConfig{
		Backend:       sandbox.NewBackend(scope, logger),
		Debounce:      cfg.Debounce,
		MaxCandidates: cfg.MaxCandidates,
		Logger:        logger,
	})
	if err != nil {
		logger.Error().Err(err).Send()
		return ERROR_STATUS_CODE
	}

	result, err := session.Complete(ctx, doc, pos)
	if err != nil {
		logger.Error().Err(err).Msg("completion failed")
		return ERROR_STATUS_CODE
	}

	result.Results = utils.EmptySliceIfNil(result.Results)
	if !printContext {
		result.Context = nil
	}

	if err := printJSON(outW, result); err != nil {
		logger.Error().Err(err).Send()
		return ERROR_STATUS_CODE
	}
	return 0
}

func createScope(globalsFile string, builtins bool) (*sandbox.Scope, error) {
	scope := sandbox.NewScope()

	if builtins {
		var err error
		scope, err = sandbox.NewScopeWithBuiltins()
		if err != nil {
			return nil, err
		}
	}

	if globalsFile != "" {
		if err := scope.LoadFile(globalsFile); err != nil {
			return nil, err
		}
	}

	return scope, nil
}

func isColorized(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && config.ShouldColorize(f)
}
