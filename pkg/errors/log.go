package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to a writer,
// os.Stderr by default. When the terminal backend owns the screen,
// route this through its deferred log sink instead so error text does
// not tear the alternate screen.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out is the destination writer. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a TideError.
func (h *LogHandler) HandleError(err *TideError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(h.out(), "[tide error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(h.out(), "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(h.out(), "[tide error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(h.out(), "[tide panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(h.out(), "[tide panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(h.out(), "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	fmt.Fprintf(h.out(), "[tide build error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(h.out(), "Stack trace:\n%s\n", err.StackTrace)
	}
}
