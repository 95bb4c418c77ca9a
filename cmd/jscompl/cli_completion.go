package main

import (
	"maps"

	"github.com/inoxlang/jscompletion/internal/utils"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictJSFiles = predict.Files("*.js")

	cursorFlagPredictors = map[string]complete.Predictor{
		"line": predict.Nothing,
		"col":  predict.Nothing,
	}

	completer = &complete.Command{
		Sub: map[string]*complete.Command{
			TOKENS_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"line": predict.Nothing,
				},
				Args:  predictJSFiles,
			},
			PATH_SUBCMD: {
				Flags: withFlags(cursorFlagPredictors, map[string]complete.Predictor{
					"string": predict.Nothing,
				}),
				Args: predictJSFiles,
			},
			COMPLETE_SUBCMD: {
				Flags: withFlags(cursorFlagPredictors, map[string]complete.Predictor{
					"globals":     predict.Or(predict.Files("*.json"), predict.Files("*.yaml"), predict.Files("*.yml")),
					"no-builtins": predict.Nothing,
					"context":     predict.Nothing,
					"max":         predict.Nothing,
					"log-level":   predict.Set{"debug", "info", "warn", "error", "disabled"},
				}),
				Args: predictJSFiles,
			},
			INSTALL_COMPLETIONS_SUBCMD:   {},
			UNINSTALL_COMPLETIONS_SUBCMD: {},
			HELP_SUBCMD: {
				Args: predict.Set(SUBCOMMANDS),
			},
		},
	}
)

func withFlags(base map[string]complete.Predictor, additional map[string]complete.Predictor) map[string]complete.Predictor {
	flags := utils.CopyMap(base)
	maps.Copy(flags, additional)
	return flags
}
