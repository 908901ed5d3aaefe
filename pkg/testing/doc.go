// Package testing drives tide apps against the headless backend for
// deterministic tests.
//
// # Quick Start
//
// Create a tester, pump a widget, send keys, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := tidetest.NewTesterWithT(t)
//	    tester.PumpWidget(MyWidget{})
//
//	    tester.Press("C-n")
//	    tester.Pump()
//
//	    if !tester.Find(tidetest.ByText("item 2")).Exists() {
//	        t.Error("expected selection to move")
//	    }
//	}
//
// # Screen Assertions
//
// The rendered screen is a cell buffer; compare it as text:
//
//	tester.ExpectScreen(t, `
//	┌─────┐
//	│hello│
//	└─────┘
//	`)
//
// or against a golden file, updated with TIDE_UPDATE_SCREENS=1:
//
//	tester.ScreenMatches(t, "testdata/picker.screen")
//
// # Time
//
// The tester installs a fake clock on the app, so chord timeouts and
// tick polling are driven explicitly:
//
//	tester.Clock().Advance(time.Second)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import tidetest "github.com/go-drift/tide/pkg/testing"
package testing
