package testing

import (
	"testing"
	"time"

	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/testing/internal/testbed"
	"github.com/go-drift/tide/pkg/widgets"
)

func TestNewTester_Defaults(t *testing.T) {
	tester := NewTesterWithT(t)

	size := tester.Backend().Size()
	if size.Width != DefaultWidth || size.Height != DefaultHeight {
		t.Errorf("default size = %dx%d, want %dx%d", size.Width, size.Height, DefaultWidth, DefaultHeight)
	}
	if tester.Clock() == nil {
		t.Fatal("expected a fake clock")
	}
	if tester.App() != nil {
		t.Error("expected no app before PumpWidget")
	}
}

func TestPumpWidget_MountsTree(t *testing.T) {
	tester := NewTesterWithT(t)

	if err := tester.PumpWidget(widgets.Text{Content: "hello"}); err != nil {
		t.Fatal(err)
	}
	if tester.RootElement() == nil {
		t.Fatal("expected a root element after PumpWidget")
	}
	if !tester.Find(ByText("hello")).Exists() {
		t.Error("expected to find the pumped text")
	}
}

func TestPumpWidget_ReconcilesNewRoot(t *testing.T) {
	tester := NewTesterWithT(t)

	tester.PumpWidget(widgets.Text{Content: "first"})
	tester.PumpWidget(widgets.Text{Content: "second"})

	if tester.Find(ByText("first")).Exists() {
		t.Error("old root content still present")
	}
	if !tester.Find(ByText("second")).Exists() {
		t.Error("expected the new root content")
	}
}

func TestPress_DrivesBindings(t *testing.T) {
	tester := NewTesterWithT(t)
	var last int
	tester.PumpWidget(testbed.Counter{Initial: 5, OnChange: func(count int) { last = count }})

	tester.Press("+ + -")
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	if last != 6 {
		t.Errorf("count = %d, want 6", last)
	}
	if !tester.Find(ByText("6")).Exists() {
		t.Error("expected the tree to show 6")
	}
}

func TestSendText_TypesRunes(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	tester.SendText("+++")
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	if !tester.Find(ByText("3")).Exists() {
		t.Error("expected three increments")
	}
}

func TestResize_Repaints(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "hi"})
	frames := tester.App().Stats().Frames

	tester.Resize(geometry.Size{Width: 10, Height: 2})
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	if got := tester.Screen().Size(); got != (geometry.Size{Width: 10, Height: 2}) {
		t.Errorf("screen size = %v after resize", got)
	}
	if tester.App().Stats().Frames != frames+1 {
		t.Error("expected the resize to flush a frame")
	}
}

func TestPumpAndSettle_IdleWidget(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "static"})

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Errorf("static widget should settle: %v", err)
	}
}

// TestPumpAndSettle_RunsTickerToCompletion verifies that settling
// advances the fake clock until a tickable stops requesting frames.
func TestPumpAndSettle_RunsTickerToCompletion(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(testbed.Ticker{Frames: 3})

	if err := tester.PumpAndSettle(5 * time.Second); err != nil {
		t.Fatalf("ticker should settle: %v", err)
	}
	if !tester.Find(ByText("frame 3")).Exists() {
		t.Error("expected the final frame after settling")
	}
}

func TestPumpAndSettle_Timeout(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.PumpWidget(testbed.Ticker{Frames: -1})

	if err := tester.PumpAndSettle(time.Second); err != ErrSettleTimeout {
		t.Fatalf("err = %v, want ErrSettleTimeout", err)
	}
}

func TestCleanup_UnmountsTree(t *testing.T) {
	tester := NewTester()
	tester.PumpWidget(widgets.Text{Content: "x"})

	tester.Cleanup()

	if tester.RootElement() != nil {
		t.Error("expected no root element after Cleanup")
	}
}
