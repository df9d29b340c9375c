package cli

import (
	"fmt"
	"io"
	"strings"
)

// printf prints a message with a trailing newline, unless the message already ends in one.
func printf(w io.Writer, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	//nolint:errcheck
	fmt.Fprint(w, msg)
}

// warningf prints a message prefixed with "Warning: " to w.
func warningf(w io.Writer, format string, a ...interface{}) {
	printf(w, "Warning: "+format, a...)
}
