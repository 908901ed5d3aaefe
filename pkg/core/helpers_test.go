package core

import (
	"reflect"
	"testing"
)

// --- StatelessBase tests ---

type testStatelessBaseWidget struct {
	StatelessBase
	label string
}

func (w testStatelessBaseWidget) Build(ctx BuildContext) Widget { return nil }

func TestStatelessBase_SatisfiesInterface(t *testing.T) {
	var w any = testStatelessBaseWidget{label: "hello"}
	if _, ok := w.(StatelessWidget); !ok {
		t.Error("widget embedding StatelessBase should satisfy StatelessWidget")
	}
}

func TestStatelessBase_DefaultKey(t *testing.T) {
	w := testStatelessBaseWidget{}
	if w.Key() != nil {
		t.Errorf("expected nil key, got %v", w.Key())
	}
}

func TestStatelessBase_CreateElement(t *testing.T) {
	w := testStatelessBaseWidget{}
	elem := w.CreateElement()
	if elem == nil {
		t.Fatal("CreateElement should return non-nil element")
	}
	if _, ok := elem.(*StatelessElement); !ok {
		t.Errorf("expected *StatelessElement, got %T", elem)
	}
}

func TestStatelessBase_InflatedWidgetIsSet(t *testing.T) {
	// CreateElement on an embedded base cannot see the outer widget;
	// inflation must install it before the element mounts.
	owner := NewBuildOwner()
	w := testStatelessBaseWidget{label: "inflated"}

	element := inflateWidget(w, owner)
	element.Mount(nil, nil)

	got, ok := element.Widget().(testStatelessBaseWidget)
	if !ok {
		t.Fatalf("expected testStatelessBaseWidget, got %T", element.Widget())
	}
	if got.label != "inflated" {
		t.Errorf("expected label 'inflated', got %q", got.label)
	}
}

type keyedStatelessBaseWidget struct {
	StatelessBase
	myKey string
}

func (w keyedStatelessBaseWidget) Build(ctx BuildContext) Widget { return nil }
func (w keyedStatelessBaseWidget) Key() any                      { return w.myKey }

func TestStatelessBase_KeyOverride(t *testing.T) {
	w := keyedStatelessBaseWidget{myKey: "custom"}
	if w.Key() != "custom" {
		t.Errorf("expected key 'custom', got %v", w.Key())
	}
}

// --- StatefulBase tests ---

type testStatefulBaseWidget struct {
	StatefulBase
}

type testStateA struct {
	StateBase
}

func (s *testStateA) Build(ctx BuildContext) Widget { return nil }

func (testStatefulBaseWidget) CreateState() State { return &testStateA{} }

func TestStatefulBase_SatisfiesInterface(t *testing.T) {
	var w any = testStatefulBaseWidget{}
	if _, ok := w.(StatefulWidget); !ok {
		t.Error("widget embedding StatefulBase should satisfy StatefulWidget")
	}
}

func TestStatefulBase_DefaultKey(t *testing.T) {
	w := testStatefulBaseWidget{}
	if w.Key() != nil {
		t.Errorf("expected nil key, got %v", w.Key())
	}
}

func TestStatefulBase_CreateElement(t *testing.T) {
	w := testStatefulBaseWidget{}
	elem := w.CreateElement()
	if elem == nil {
		t.Fatal("CreateElement should return non-nil element")
	}
	if _, ok := elem.(*StatefulElement); !ok {
		t.Errorf("expected *StatefulElement, got %T", elem)
	}
}

type keyedStatefulBaseWidget struct {
	StatefulBase
	myKey string
}

func (keyedStatefulBaseWidget) CreateState() State { return &testStateA{} }
func (w keyedStatefulBaseWidget) Key() any         { return w.myKey }

func TestStatefulBase_KeyOverride(t *testing.T) {
	w := keyedStatefulBaseWidget{myKey: "my-key"}
	if w.Key() != "my-key" {
		t.Errorf("expected key 'my-key', got %v", w.Key())
	}
}

func TestStatefulBase_DifferentOuterTypes(t *testing.T) {
	type widgetA struct {
		StatefulBase
	}
	type widgetB struct {
		StatefulBase
	}

	typeA := reflect.TypeOf((*widgetA)(nil)).Elem()
	typeB := reflect.TypeOf((*widgetB)(nil)).Elem()

	if typeA == typeB {
		t.Error("different outer struct types should produce different reflect.TypeOf results")
	}
}

// --- InheritedBase tests ---

type testInheritedBaseWidget struct {
	InheritedBase
	value int
	child Widget
}

func (w testInheritedBaseWidget) ChildWidget() Widget { return w.child }
func (w testInheritedBaseWidget) UpdateShouldNotify(old InheritedWidget) bool {
	return w.value != old.(testInheritedBaseWidget).value
}

func TestInheritedBase_SatisfiesInterface(t *testing.T) {
	var w any = testInheritedBaseWidget{value: 1}
	if _, ok := w.(InheritedWidget); !ok {
		t.Error("widget embedding InheritedBase should satisfy InheritedWidget")
	}
}

func TestInheritedBase_DefaultKey(t *testing.T) {
	w := testInheritedBaseWidget{}
	if w.Key() != nil {
		t.Errorf("expected nil key, got %v", w.Key())
	}
}

func TestInheritedBase_CreateElement(t *testing.T) {
	w := testInheritedBaseWidget{}
	elem := w.CreateElement()
	if elem == nil {
		t.Fatal("CreateElement should return non-nil element")
	}
	if _, ok := elem.(*InheritedElement); !ok {
		t.Errorf("expected *InheritedElement, got %T", elem)
	}
}

type keyedInheritedBaseWidget struct {
	InheritedBase
	myKey string
	child Widget
}

func (w keyedInheritedBaseWidget) Key() any                                { return w.myKey }
func (w keyedInheritedBaseWidget) ChildWidget() Widget                     { return w.child }
func (w keyedInheritedBaseWidget) UpdateShouldNotify(InheritedWidget) bool { return false }

func TestInheritedBase_KeyOverride(t *testing.T) {
	w := keyedInheritedBaseWidget{myKey: "custom"}
	if w.Key() != "custom" {
		t.Errorf("expected key 'custom', got %v", w.Key())
	}
}

// --- Inherited dependency tests ---

// inheritedReader depends on testInheritedBaseWidget and records the
// value it observed during each build.
type inheritedReader struct {
	StatelessBase
	observed *[]int
}

func (w inheritedReader) Build(ctx BuildContext) Widget {
	result := ctx.DependOnInherited(reflect.TypeOf((*testInheritedBaseWidget)(nil)).Elem())
	if provider, ok := result.(testInheritedBaseWidget); ok {
		*w.observed = append(*w.observed, provider.value)
	} else {
		*w.observed = append(*w.observed, -1)
	}
	return nil
}

func TestDependOnInherited_FindsNearestProvider(t *testing.T) {
	owner := NewBuildOwner()
	var observed []int

	root := testInheritedBaseWidget{
		value: 7,
		child: inheritedReader{observed: &observed},
	}

	MountRoot(root, owner)

	if len(observed) != 1 || observed[0] != 7 {
		t.Fatalf("expected observed [7], got %v", observed)
	}
}

func TestDependOnInherited_NotifiesOnChange(t *testing.T) {
	owner := NewBuildOwner()
	var observed []int

	element := MountRoot(testInheritedBaseWidget{
		value: 1,
		child: inheritedReader{observed: &observed},
	}, owner)

	inherited := element.(*InheritedElement)
	inherited.Update(testInheritedBaseWidget{
		value: 2,
		child: inheritedReader{observed: &observed},
	})
	owner.FlushBuild()

	if len(observed) < 2 || observed[len(observed)-1] != 2 {
		t.Fatalf("expected dependent to rebuild with value 2, got %v", observed)
	}
}

func TestDependOnInherited_NoProviderReturnsNil(t *testing.T) {
	owner := NewBuildOwner()
	var observed []int

	MountRoot(inheritedReader{observed: &observed}, owner)

	if len(observed) != 1 || observed[0] != -1 {
		t.Fatalf("expected observed [-1] with no provider, got %v", observed)
	}
}

func TestProviderOf_ReturnsProvidedValue(t *testing.T) {
	owner := NewBuildOwner()

	var got string
	var found bool
	reader := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			got, found = ProviderOf[string](ctx)
			return nil
		},
	}

	MountRoot(InheritedProvider[string]{
		Value: "session-42",
		Child: reader,
	}, owner)

	if !found {
		t.Fatal("expected ProviderOf to find the provider")
	}
	if got != "session-42" {
		t.Errorf("expected 'session-42', got %q", got)
	}
}

func TestProviderOf_MissingProvider(t *testing.T) {
	owner := NewBuildOwner()

	var found bool
	reader := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			_, found = ProviderOf[string](ctx)
			return nil
		},
	}

	MountRoot(reader, owner)

	if found {
		t.Error("expected ProviderOf to miss with no provider mounted")
	}
}

// --- Stateful helper tests ---

func TestStateful_ReturnsStatefulWidget(t *testing.T) {
	w := Stateful(
		func() int { return 0 },
		func(state int, ctx BuildContext, setState func(func(int) int)) Widget { return nil },
	)
	if _, ok := w.(StatefulWidget); !ok {
		t.Error("Stateful should return a StatefulWidget")
	}
}

func TestStateful_InitSetsState(t *testing.T) {
	sw := Stateful(
		func() int { return 42 },
		func(state int, ctx BuildContext, setState func(func(int) int)) Widget { return nil },
	).(StatefulWidget)

	state := sw.CreateState().(*inlineStatefulState[int])
	state.InitState()

	if state.value != 42 {
		t.Errorf("expected initial state 42, got %d", state.value)
	}
}

func TestStateful_BuildReceivesStateAndContext(t *testing.T) {
	var gotState int
	var gotCtx BuildContext

	sw := Stateful(
		func() int { return 7 },
		func(state int, ctx BuildContext, setState func(func(int) int)) Widget {
			gotState = state
			gotCtx = ctx
			return nil
		},
	).(StatefulWidget)

	state := sw.CreateState().(*inlineStatefulState[int])
	state.InitState()

	var sentinel BuildContext = &mockBuildContext{}
	state.Build(sentinel)

	if gotState != 7 {
		t.Errorf("expected state 7, got %d", gotState)
	}
	if gotCtx != sentinel {
		t.Error("expected BuildContext to be passed through")
	}
}

func TestStateful_SetStateUpdatesValue(t *testing.T) {
	var setStateFn func(func(int) int)

	sw := Stateful(
		func() int { return 0 },
		func(state int, ctx BuildContext, setState func(func(int) int)) Widget {
			setStateFn = setState
			return nil
		},
	).(StatefulWidget)

	state := sw.CreateState().(*inlineStatefulState[int])
	state.InitState()

	elem := &StatefulElement{}
	state.SetElement(elem)

	state.Build(nil) // captures setState

	setStateFn(func(v int) int { return v + 10 })

	if state.value != 10 {
		t.Errorf("expected state 10 after setState, got %d", state.value)
	}
}

func TestStateful_KeyIsNil(t *testing.T) {
	w := Stateful(
		func() int { return 0 },
		func(state int, ctx BuildContext, setState func(func(int) int)) Widget { return nil },
	)
	if w.(StatefulWidget).Key() != nil {
		t.Error("Stateful widget key should be nil")
	}
}

// mockBuildContext satisfies BuildContext for testing.
type mockBuildContext struct{}

func (m *mockBuildContext) Widget() Widget                                    { return nil }
func (m *mockBuildContext) FindAncestor(predicate func(Element) bool) Element { return nil }
func (m *mockBuildContext) DependOnInherited(inheritedType reflect.Type) any  { return nil }
