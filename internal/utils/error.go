package utils

import (
	"bytes"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("%#v", v)
}

// Recover should be called with defer, it recovers from a panic, logs the error with the stack
// and calls onPanic (optional) with the error.
func Recover(logger zerolog.Logger, onPanic func(err error)) {
	v := recover()
	if v == nil {
		return
	}

	err := ConvertPanicValueToError(v)
	logger.Error().Err(err).Str("stack", string(debug.Stack())).Msg("recovered from panic")

	if onPanic != nil {
		onPanic(err)
	}
}

// CombineErrors combines errors into a single error with a multiline message.
func CombineErrors(errs ...error) error {

	if len(errs) == 0 {
		return nil
	}

	finalErrBuff := bytes.NewBuffer(nil)

	for _, err := range errs {
		if err != nil {
			finalErrBuff.WriteString(err.Error())
			finalErrBuff.WriteRune('\n')
		}
	}

	if finalErrBuff.Len() == 0 {
		return nil
	}

	return errors.New(strings.TrimRight(finalErrBuff.String(), "\n"))
}
