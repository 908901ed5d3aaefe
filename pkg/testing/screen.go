package testing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// TestingT is the subset of *testing.T the assertion helpers need,
// allowing test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// updateEnv switches ScreenMatches from comparing golden files to
// rewriting them.
const updateEnv = "TIDE_UPDATE_SCREENS"

// ExpectScreen compares the rendered screen against want. One leading
// and one trailing newline are stripped from want, so raw string
// literals can open and close on their own lines. Trailing spaces per
// row are already trimmed by the buffer's text form.
func (t *Tester) ExpectScreen(tt TestingT, want string) {
	tt.Helper()
	want = strings.TrimPrefix(want, "\n")
	want = strings.TrimSuffix(want, "\n")
	got := t.Screen().String()
	if diff := cmp.Diff(want, got); diff != "" {
		tt.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
}

// ScreenMatches compares the rendered screen against a golden file.
// On mismatch it reports a diff and how to regenerate. When
// TIDE_UPDATE_SCREENS=1 is set, the file is rewritten instead.
func (t *Tester) ScreenMatches(tt TestingT, path string) {
	tt.Helper()
	got := t.Screen().String()

	if os.Getenv(updateEnv) == "1" {
		if err := writeScreen(path, got); err != nil {
			tt.Fatalf("failed to update screen file: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			tt.Fatalf("screen file missing: %s\n\nTo create: %s=1 go test -run %s", path, updateEnv, tt.Name())
			return
		}
		tt.Fatalf("failed to read screen file: %v", err)
		return
	}

	want := strings.TrimSuffix(string(data), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		tt.Errorf("screen mismatch against %s (-want +got):\n%s\nTo update: %s=1 go test -run %s", path, diff, updateEnv, tt.Name())
	}
}

func writeScreen(path, screen string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(screen+"\n"), 0o644)
}
