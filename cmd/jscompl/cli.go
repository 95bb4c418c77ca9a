package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
)

const (
	TOKENS_SUBCMD                = "tokens"
	PATH_SUBCMD                  = "path"
	COMPLETE_SUBCMD              = "complete"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{
		TOKENS_SUBCMD, PATH_SUBCMD, COMPLETE_SUBCMD,
		INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD,
	}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	CLI_SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{TOKENS_SUBCMD, "print the tokens of a JavaScript file (stdin if no file is given)"},
		{PATH_SUBCMD, "print the access path ending at the cursor"},
		{COMPLETE_SUBCMD, "print the completions at the cursor"},

		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by addding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	CLI_SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	CMD_HELP = "commands:\n"
)

func init() {
	for _, entry := range CLI_SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		CLI_SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
	CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	//only show help
	if slices.ContainsFunc(args, func(arg string) bool { return slices.Contains(HELP_SUBCMD_EQUIVALENTS, arg) }) {

		cmd := flags.Name()
		if desc, ok := CLI_SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
