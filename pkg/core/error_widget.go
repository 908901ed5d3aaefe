package core

import (
	"sync"

	"github.com/go-drift/tide/pkg/errors"
)

// ErrorWidgetBuilder creates a fallback widget for a build failure
// with no previous subtree to keep showing. The builder receives the
// build error and returns a widget to mount in the failed position.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorWidgetBuilder ErrorWidgetBuilder = DefaultErrorWidgetBuilder
	errorBuilderMu     sync.RWMutex
)

// SetErrorWidgetBuilder configures the global error widget builder.
// Pass nil to restore the default builder.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorBuilderMu.Lock()
	defer errorBuilderMu.Unlock()
	if builder == nil {
		errorWidgetBuilder = DefaultErrorWidgetBuilder
	} else {
		errorWidgetBuilder = builder
	}
}

// GetErrorWidgetBuilder returns the current error widget builder.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorBuilderMu.RLock()
	defer errorBuilderMu.RUnlock()
	return errorWidgetBuilder
}

// DefaultErrorWidgetBuilder returns nil, which makes the framework
// mount a minimal placeholder that renders nothing. The richer error
// display lives in pkg/widgets to avoid a circular dependency;
// applications that want it install it with SetErrorWidgetBuilder.
func DefaultErrorWidgetBuilder(err *errors.BuildError) Widget {
	return nil
}

// ErrorBoundaryCapture is implemented by error boundary elements to capture
// build errors from descendant widgets.
type ErrorBoundaryCapture interface {
	// CaptureError captures a build error from a descendant widget.
	// Returns true if the error was captured and handled.
	CaptureError(err *errors.BuildError) bool
}
