package config

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ShouldColorize reports whether console output written to f should be colorized.
// NO_COLOR and FORCE_COLOR are honored, otherwise f should be a terminal supporting colors.
func ShouldColorize(f *os.File) bool {
	return shouldColorize(os.LookupEnv, func() bool {
		return term.IsTerminal(int(f.Fd())) && termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
	})
}

func shouldColorize(lookup func(string) (string, bool), terminalSupportsColors func() bool) bool {
	if s, ok := lookup("NO_COLOR"); ok && isTruthy(s) {
		return false
	}

	if s, ok := lookup("FORCE_COLOR"); ok {
		return isTruthy(s)
	}

	if colorterm, _ := lookup("COLORTERM"); colorterm == "truecolor" {
		return true
	}

	if term, _ := lookup("TERM"); strings.Contains(term, "256color") {
		return true
	}

	return terminalSupportsColors()
}

func isTruthy(s string) bool {
	return len(s) != 0 && s != "false" && s != "0"
}
