package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/layout"
	"github.com/go-drift/tide/pkg/widgets"
)

// Finder locates elements in the widget tree.
type Finder interface {
	// Evaluate returns all matching elements under root in depth-first
	// pre-order.
	Evaluate(root core.Element) []core.Element
	// Description returns a human-readable description for failures.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if there are none.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("finder found no elements: %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if there are none.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("finder index %d out of range (found %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists reports whether at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the widget of the first matched element. Panics if
// there are no matches.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// RenderObject returns the render object of the first matched element,
// or nil when the element has none.
func (r FinderResult) RenderObject() layout.RenderObject {
	return elementRenderObject(r.First())
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type typeFinder struct {
	widgetType reflect.Type
	typeName   string
}

func (f *typeFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches elements whose widget is type T.
func ByType[T core.Widget]() Finder {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return &typeFinder{widgetType: t, typeName: t.String()}
}

type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		k := e.Widget().Key()
		if k == nil || f.key == nil {
			return k == nil && f.key == nil
		}
		// Keys are usually comparable; fall back to DeepEqual for the
		// rest rather than panicking on ==.
		if !reflect.TypeOf(k).Comparable() || !reflect.TypeOf(f.key).Comparable() {
			return reflect.DeepEqual(k, f.key)
		}
		return k == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey returns a finder that matches elements whose widget key equals
// key.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		t, ok := e.Widget().(widgets.Text)
		return ok && t.Content == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches [widgets.Text] with exact
// content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		t, ok := e.Widget().(widgets.Text)
		return ok && strings.Contains(t.Content, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches [widgets.Text]
// containing the given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

type predicateFinder struct {
	fn   func(core.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(core.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root core.Element) []core.Element {
	var results []core.Element
	seen := make(map[core.Element]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// Search each ancestor's subtree, excluding the ancestor.
		ancestor.VisitChildren(func(child core.Element) bool {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
			return true
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches elements satisfying
// matching that are descendants of elements matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root core.Element) []core.Element {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	var results []core.Element
	for _, candidate := range f.matching.Evaluate(root) {
		for _, descendant := range descendants {
			if candidate != descendant && isAncestorOf(candidate, descendant) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches elements satisfying matching
// that are ancestors of elements matching of.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

func isAncestorOf(ancestor, descendant core.Element) bool {
	found := false
	walkTree(ancestor, func(e core.Element) bool {
		if e == descendant {
			found = true
			return false
		}
		return true
	})
	return found
}

func collectMatches(root core.Element, predicate func(core.Element) bool) []core.Element {
	var results []core.Element
	walkTree(root, func(e core.Element) bool {
		if predicate(e) {
			results = append(results, e)
		}
		return true
	})
	return results
}

// walkTree visits the element tree depth-first in pre-order. The
// visitor returns false to stop.
func walkTree(root core.Element, visitor func(core.Element) bool) {
	if !visitor(root) {
		return
	}
	root.VisitChildren(func(child core.Element) bool {
		walkTree(child, visitor)
		return true
	})
}

func elementRenderObject(element core.Element) layout.RenderObject {
	if element == nil {
		return nil
	}
	if provider, ok := element.(interface{ RenderObject() layout.RenderObject }); ok {
		return provider.RenderObject()
	}
	return nil
}
