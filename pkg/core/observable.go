package core

import "sync"

// Listenable is anything that can notify listeners of changes.
// AddListener returns an unsubscribe function.
type Listenable interface {
	AddListener(fn func()) func()
}

// Observable holds a value and notifies listeners when it changes.
// Unlike [Managed], Observable is thread-safe and not tied to a
// particular state, so it can back shared models updated from
// background goroutines.
type Observable[T any] struct {
	mu        sync.Mutex
	value     T
	listeners map[int]func(T)
	nextID    int
	equals    func(a, b T) bool
}

// NewObservable creates an observable with an initial value.
// Every Set notifies listeners.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// NewObservableWithEquality creates an observable that only notifies
// listeners when equals reports the new value as different.
func NewObservableWithEquality[T any](initial T, equals func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: initial, equals: equals}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set stores a new value and notifies listeners. When an equality
// function is configured and reports the values equal, listeners are
// not notified.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equals != nil && o.equals(o.value, value) {
		o.value = value
		o.mu.Unlock()
		return
	}
	o.value = value
	listeners := make([]func(T), 0, len(o.listeners))
	for _, fn := range o.listeners {
		listeners = append(listeners, fn)
	}
	o.mu.Unlock()

	// Notify outside the lock so listeners can read or update the
	// observable without deadlocking.
	for _, fn := range listeners {
		fn(value)
	}
}

// AddListener registers a callback invoked with the new value on
// every change. Returns an unsubscribe function.
func (o *Observable[T]) AddListener(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.listeners == nil {
		o.listeners = make(map[int]func(T))
	}
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// Notifier broadcasts events to listeners without holding a value.
type Notifier struct {
	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

// NewNotifier creates a new Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a callback invoked on every Notify.
// Returns an unsubscribe function. Notifier satisfies [Listenable].
func (n *Notifier) AddListener(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Notify invokes all registered listeners.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]func(), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// ControllerBase provides listener management for controllers. Embed
// it in a controller struct and call NotifyListeners after mutating:
//
//	type ScrollController struct {
//	    core.ControllerBase
//	    offset int
//	}
//
//	func (c *ScrollController) SetOffset(offset int) {
//	    c.offset = offset
//	    c.NotifyListeners()
//	}
//
// ControllerBase satisfies [Listenable].
type ControllerBase struct {
	notifier Notifier
}

// AddListener registers a callback invoked on every NotifyListeners.
// Returns an unsubscribe function.
func (c *ControllerBase) AddListener(fn func()) func() {
	return c.notifier.AddListener(fn)
}

// NotifyListeners invokes all registered listeners.
func (c *ControllerBase) NotifyListeners() {
	c.notifier.Notify()
}

// ListenerCount returns the number of registered listeners.
func (c *ControllerBase) ListenerCount() int {
	return c.notifier.ListenerCount()
}

// Dispose drops all listeners. Controllers embedding ControllerBase
// satisfy [Disposable] and work with [UseController]; override Dispose
// to release additional resources and call the embedded Dispose last.
func (c *ControllerBase) Dispose() {
	c.notifier.mu.Lock()
	defer c.notifier.mu.Unlock()
	c.notifier.listeners = nil
}
