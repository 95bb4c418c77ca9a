package utils

import (
	"testing"
)

// TestWriter writes to the log of a test, it is mostly used as the output of test loggers.
type TestWriter struct {
	T *testing.T
}

func (w *TestWriter) Write(p []byte) (n int, err error) {
	w.T.Log(string(p))
	return len(p), nil
}
