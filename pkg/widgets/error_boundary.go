package widgets

import (
	"github.com/go-drift/tide/pkg/cells"
	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/errors"
)

// ErrorBoundary shows a fallback subtree when a descendant build
// panics or fails, instead of letting the failure climb to the root.
// The first failure is latched; while the fallback is showing, further
// descendant failures are offered to the next boundary up, so a broken
// fallback cannot capture its own errors.
//
// The Fallback builder receives the error and a retry function that
// clears the latch and rebuilds the original child.
type ErrorBoundary struct {
	core.StatefulBase
	ChildWidget core.Widget

	// Fallback builds the replacement subtree. Nil uses a bordered
	// error display.
	Fallback func(err *errors.BuildError, retry func()) core.Widget

	// OnError observes captured failures, e.g. for logging.
	OnError func(err *errors.BuildError)
}

func (e ErrorBoundary) CreateState() core.State {
	return &errorBoundaryState{}
}

func (e ErrorBoundary) Child() core.Widget {
	return e.ChildWidget
}

type errorBoundaryState struct {
	core.StateBase
	err *errors.BuildError
}

func (s *errorBoundaryState) widget() ErrorBoundary {
	return s.Element().Widget().(ErrorBoundary)
}

// CaptureError latches the first descendant failure and declines while
// the fallback is showing, letting the offer continue to an outer
// boundary.
func (s *errorBoundaryState) CaptureError(err *errors.BuildError) bool {
	if s.err != nil {
		return false
	}
	s.SetState(func() { s.err = err })
	if fn := s.widget().OnError; fn != nil {
		fn(err)
	}
	return true
}

func (s *errorBoundaryState) retry() {
	s.SetState(func() { s.err = nil })
}

func (s *errorBoundaryState) Build(ctx core.BuildContext) core.Widget {
	w := s.widget()
	if s.err == nil {
		return w.ChildWidget
	}
	if w.Fallback != nil {
		return w.Fallback(s.err, s.retry)
	}
	return ErrorDisplay(s.err)
}

// ErrorDisplay renders a build failure as a bordered red message. It
// is the default ErrorBoundary fallback and, via InstallErrorDisplay,
// the widget mounted where a failed build left no subtree to keep.
func ErrorDisplay(err *errors.BuildError) core.Widget {
	style := cells.Style{FG: cells.BrightRed}
	return Border{
		Set:   BorderLight,
		Style: style,
		Title: "build failed",
		ChildWidget: PaddingSymmetric(1, 0, Text{
			Content: err.Error(),
			Style:   style,
		}),
	}
}

// InstallErrorDisplay routes root-level build failures through
// [ErrorDisplay]. The hook lives here rather than defaulting in core
// so that core does not depend on this package.
func InstallErrorDisplay() {
	core.SetErrorWidgetBuilder(func(err *errors.BuildError) core.Widget {
		return ErrorDisplay(err)
	})
}
