package core

import (
	"slices"
	"sync"

	"github.com/go-drift/tide/pkg/errors"
	"github.com/go-drift/tide/pkg/layout"
)

// TreeObserver receives element lifecycle notifications as the
// reconciler applies widget trees. The runtime uses it for frame
// statistics; tests use it to assert which elements a rebuild touched.
// Callbacks run on the UI goroutine, one per element.
type TreeObserver interface {
	ElementMounted(element Element)
	ElementUpdated(element Element)
	ElementUnmounted(element Element)
}

// BuildOwner tracks dirty elements that need rebuilding.
type BuildOwner struct {
	dirty       []Element
	dirtySet    map[Element]bool
	buildErrors []*errors.BuildError
	pipeline    *layout.PipelineOwner
	mu          sync.Mutex

	// OnNeedsFrame is called when a new element is scheduled for
	// rebuild, signalling the runtime that another frame is due. Used
	// for on-demand frame scheduling where the loop sleeps until work
	// arrives.
	OnNeedsFrame func()

	// Observer, when set, is notified of every element mount, update
	// and unmount.
	Observer TreeObserver
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{
		pipeline: &layout.PipelineOwner{},
	}
}

// Pipeline returns the PipelineOwner for render object scheduling.
func (b *BuildOwner) Pipeline() *layout.PipelineOwner {
	return b.pipeline
}

// ScheduleBuild marks an element as needing rebuild.
func (b *BuildOwner) ScheduleBuild(element Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork returns true if there are dirty elements or pending layout/paint.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	hasDirty := len(b.dirty) > 0
	b.mu.Unlock()
	if hasDirty {
		return true
	}
	return b.pipeline.NeedsLayout() || b.pipeline.NeedsPaint()
}

// FlushBuild rebuilds all dirty elements in depth order. Elements
// that were unmounted while waiting are skipped.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(a, b Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if mountable, ok := element.(interface{ isMounted() bool }); ok && !mountable.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}

// noteBuildError records a build failure so the runtime can surface
// it after the current tick.
func (b *BuildOwner) noteBuildError(err *errors.BuildError) {
	if err == nil {
		return
	}
	b.mu.Lock()
	b.buildErrors = append(b.buildErrors, err)
	b.mu.Unlock()
}

// TakeBuildErrors drains and returns the build failures recorded
// since the last call. Returns nil when no builds failed.
func (b *BuildOwner) TakeBuildErrors() []*errors.BuildError {
	b.mu.Lock()
	defer b.mu.Unlock()
	taken := b.buildErrors
	b.buildErrors = nil
	return taken
}
