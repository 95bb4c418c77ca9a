// Package codecompletion finds completions for JavaScript code: the token at the cursor is
// classified, the access path ending at the cursor is resolved and a ResolutionBackend is asked
// for candidates.
package codecompletion

const (
	ARGUMENTS_CANDIDATE_NAME = "Arguments"
	ARGUMENT_SEPARATOR       = ", "

	COMPLETION_LOG_SRC = "completion"
)
