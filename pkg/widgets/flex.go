package widgets

import (
	"fmt"

	"github.com/go-drift/tide/pkg/core"
	"github.com/go-drift/tide/pkg/geometry"
	"github.com/go-drift/tide/pkg/layout"
)

// Axis represents the layout direction.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MainAxisAlignment controls how children are positioned along the main axis
// (horizontal for [Row], vertical for [Column]).
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart packs children at the start (left for Row, top for Column).
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentEnd packs children at the end (right for Row, bottom for Column).
	MainAxisAlignmentEnd
	// MainAxisAlignmentCenter centers children along the main axis.
	MainAxisAlignmentCenter
	// MainAxisAlignmentSpaceBetween distributes free cells evenly between children.
	// No space before the first or after the last child.
	MainAxisAlignmentSpaceBetween
	// MainAxisAlignmentSpaceAround distributes free cells evenly, with half-sized
	// spaces at the start and end.
	MainAxisAlignmentSpaceAround
	// MainAxisAlignmentSpaceEvenly distributes free cells evenly, including
	// equal space before the first and after the last child.
	MainAxisAlignmentSpaceEvenly
)

// String returns a human-readable representation of the main axis alignment.
func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentSpaceBetween:
		return "space_between"
	case MainAxisAlignmentSpaceAround:
		return "space_around"
	case MainAxisAlignmentSpaceEvenly:
		return "space_evenly"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// CrossAxisAlignment controls how children are positioned along the cross axis
// (vertical for [Row], horizontal for [Column]).
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentStretch gives children the full cross axis extent.
	// This is the zero value: cells are cheap and panes that fill their
	// lane are what terminal layouts want almost everywhere.
	CrossAxisAlignmentStretch CrossAxisAlignment = iota
	// CrossAxisAlignmentStart places children at the start of the cross axis.
	CrossAxisAlignmentStart
	// CrossAxisAlignmentCenter centers children along the cross axis.
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentEnd places children at the end of the cross axis.
	CrossAxisAlignmentEnd
)

// String returns a human-readable representation of the cross axis alignment.
func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStretch:
		return "stretch"
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentEnd:
		return "end"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// MainAxisSize controls how much space the flex container takes along its main axis.
type MainAxisSize int

const (
	// MainAxisSizeMax expands to fill all available cells along the main axis.
	// This is the zero value: a container fills the frame it was given, and
	// Fill items receive the leftover. Use MainAxisSizeMin for shrink-wrap.
	MainAxisSizeMax MainAxisSize = iota
	// MainAxisSizeMin sizes the container to fit its children.
	MainAxisSizeMin
)

// String returns a human-readable representation of the main axis size.
func (s MainAxisSize) String() string {
	switch s {
	case MainAxisSizeMax:
		return "max"
	case MainAxisSizeMin:
		return "min"
	default:
		return fmt.Sprintf("MainAxisSize(%d)", int(s))
	}
}

// ItemSizing reports the main-axis size request for a render box.
// Render objects without it are sized to content.
type ItemSizing interface {
	ItemSizing() layout.Sizing
}

// Row lays out children horizontally from left to right.
//
// Row is a flex container where the main axis is horizontal. Children are
// laid out in a single horizontal run and do not wrap.
//
// # Sizing Behavior
//
// By default (MainAxisSizeMax), Row fills the width it was granted and
// [Item] children with Fill sizing split the leftover cells. Set
// MainAxisSizeMin to shrink-wrap instead; Fill items then collapse to zero.
// When the width is unbounded (inside a scroller) Row always shrink-wraps
// and Percent and Fill items collapse to zero.
//
// # Alignment
//
// Use MainAxisAlignment to place the run inside free main-axis cells.
// Use CrossAxisAlignment for the vertical placement; the default stretches
// every child to the full height.
//
// # Sized Children
//
// Wrap children in [Item] to claim cells explicitly:
//
//	Row{Items: []core.Widget{
//	    Item{Sizing: layout.Fixed(20), ChildWidget: sidebar},
//	    Item{Sizing: layout.Fill(1), ChildWidget: content},
//	}}
//
// For vertical layout, use [Column].
type Row struct {
	Items              []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// RowOf creates a Row from the given children with default alignment.
func RowOf(items ...core.Widget) Row {
	return Row{Items: items}
}

func (r Row) CreateElement() core.Element {
	return core.NewRenderObjectElement(r, nil)
}

func (r Row) Key() any {
	return nil
}

func (r Row) Children() []core.Widget {
	return r.Items
}

func (r Row) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	flex := &renderFlex{
		direction:      AxisHorizontal,
		alignment:      r.MainAxisAlignment,
		crossAlignment: r.CrossAxisAlignment,
		axisSize:       r.MainAxisSize,
	}
	flex.SetSelf(flex)
	return flex
}

func (r Row) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if flex, ok := renderObject.(*renderFlex); ok {
		flex.direction = AxisHorizontal
		flex.alignment = r.MainAxisAlignment
		flex.crossAlignment = r.CrossAxisAlignment
		flex.axisSize = r.MainAxisSize
		flex.MarkNeedsLayout()
	}
}

// Column lays out children vertically from top to bottom.
//
// Column is a flex container where the main axis is vertical. Children are
// laid out in a single vertical run and do not wrap.
//
// Sizing and alignment behave as in [Row] with the axes swapped: by default
// the Column fills the height it was granted, Fill items split the leftover
// rows, and every child stretches to the full width.
type Column struct {
	Items              []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// ColumnOf creates a Column from the given children with default alignment.
func ColumnOf(items ...core.Widget) Column {
	return Column{Items: items}
}

func (c Column) CreateElement() core.Element {
	return core.NewRenderObjectElement(c, nil)
}

func (c Column) Key() any {
	return nil
}

func (c Column) Children() []core.Widget {
	return c.Items
}

func (c Column) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	flex := &renderFlex{
		direction:      AxisVertical,
		alignment:      c.MainAxisAlignment,
		crossAlignment: c.CrossAxisAlignment,
		axisSize:       c.MainAxisSize,
	}
	flex.SetSelf(flex)
	return flex
}

func (c Column) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if flex, ok := renderObject.(*renderFlex); ok {
		flex.direction = AxisVertical
		flex.alignment = c.MainAxisAlignment
		flex.crossAlignment = c.CrossAxisAlignment
		flex.axisSize = c.MainAxisSize
		flex.MarkNeedsLayout()
	}
}

type renderFlex struct {
	layout.RenderBoxBase
	children       []layout.RenderBox
	direction      Axis
	alignment      MainAxisAlignment
	crossAlignment CrossAxisAlignment
	axisSize       MainAxisSize
}

func (r *renderFlex) SetChildren(children []layout.RenderObject) {
	for _, child := range r.children {
		layout.SetParentOnChild(child, nil)
	}
	r.children = r.children[:0]
	for _, child := range children {
		if box, ok := child.(layout.RenderBox); ok {
			r.children = append(r.children, box)
			layout.SetParentOnChild(box, r)
		}
	}
}

func (r *renderFlex) VisitChildren(visitor func(layout.RenderObject)) {
	for _, child := range r.children {
		visitor(child)
	}
}

func (r *renderFlex) mainAxis(size geometry.Size) int {
	if r.direction == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (r *renderFlex) crossAxis(size geometry.Size) int {
	if r.direction == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (r *renderFlex) makeSize(main, cross int) geometry.Size {
	if r.direction == AxisHorizontal {
		return geometry.Size{Width: main, Height: cross}
	}
	return geometry.Size{Width: cross, Height: main}
}

func (r *renderFlex) makeOffset(main, cross int) geometry.Point {
	if r.direction == AxisHorizontal {
		return geometry.Point{X: main, Y: cross}
	}
	return geometry.Point{X: cross, Y: main}
}

func (r *renderFlex) mainBounded(c layout.Constraints) bool {
	if r.direction == AxisHorizontal {
		return c.HasBoundedWidth()
	}
	return c.HasBoundedHeight()
}

func (r *renderFlex) crossBounded(c layout.Constraints) bool {
	if r.direction == AxisHorizontal {
		return c.HasBoundedHeight()
	}
	return c.HasBoundedWidth()
}

// PerformLayout resolves each child's main-axis extent from its Sizing
// request, lays children out with that extent tight, and positions the
// run per the main axis alignment.
//
// Fixed, Percent and Content claims resolve in declaration order, each
// clamped to the cells still unclaimed, so the run never overflows the
// container. Fill items split whatever remains by weight. An unbounded
// main axis shrink-wraps instead: Percent and Fill have nothing to
// claim against and collapse to zero.
func (r *renderFlex) PerformLayout() {
	constraints := r.Constraints()
	maxMain := r.mainAxis(constraints.MaxSize())
	n := len(r.children)

	items := make([]layout.Sizing, n)
	content := make([]int, n)
	for i, child := range r.children {
		items[i] = r.itemSizing(child)
		if items[i].Mode == layout.SizingContent {
			child.Layout(r.measureConstraints(constraints), true)
			content[i] = r.mainAxis(child.Size())
		}
	}

	var sizes []int
	if !r.mainBounded(constraints) {
		sizes = make([]int, n)
		for i, item := range items {
			switch item.Mode {
			case layout.SizingFixed:
				if item.Value > 0 {
					sizes[i] = item.Value
				}
			case layout.SizingContent:
				sizes[i] = content[i]
			}
		}
	} else {
		resolved := items
		if r.axisSize == MainAxisSizeMin {
			resolved = make([]layout.Sizing, n)
			copy(resolved, items)
			for i := range resolved {
				if resolved[i].Mode == layout.SizingFill {
					resolved[i] = layout.Fixed(0)
				}
			}
		}
		sizes = layout.ResolveSizes(maxMain, resolved, content)
	}

	sumMain := 0
	maxChildCross := 0
	for i, child := range r.children {
		child.Layout(r.childConstraints(constraints, sizes[i]), true)
		sumMain += sizes[i]
		if cross := r.crossAxis(child.Size()); cross > maxChildCross {
			maxChildCross = cross
		}
	}

	finalMain := sumMain
	if r.mainBounded(constraints) && r.axisSize == MainAxisSizeMax {
		finalMain = maxMain
	}
	finalCross := maxChildCross
	if r.crossBounded(constraints) && r.crossAlignment == CrossAxisAlignmentStretch {
		finalCross = r.crossAxis(constraints.MaxSize())
	}
	size := constraints.Constrain(r.makeSize(finalMain, finalCross))
	r.SetSize(size)

	free := r.mainAxis(size) - sumMain
	if free < 0 {
		free = 0
	}
	cursor := 0
	for i, child := range r.children {
		main := cursor + r.leadingSpace(free, i, n)
		cross := r.crossAxisOffset(child.Size())
		child.SetParentData(&layout.BoxParentData{Offset: r.makeOffset(main, cross)})
		cursor += sizes[i]
	}
}

func (r *renderFlex) itemSizing(child layout.RenderBox) layout.Sizing {
	if item, ok := child.(ItemSizing); ok {
		return item.ItemSizing()
	}
	return layout.Content()
}

// measureConstraints loosens the main axis so a content child reports
// its natural extent. Stretch tightens a bounded cross axis so the
// child measures at the extent it will actually be painted with.
func (r *renderFlex) measureConstraints(c layout.Constraints) layout.Constraints {
	maxSize := c.MaxSize()
	if r.crossAlignment != CrossAxisAlignmentStretch || !r.crossBounded(c) {
		return layout.Loose(maxSize)
	}
	if r.direction == AxisHorizontal {
		return layout.Constraints{
			MaxWidth:  maxSize.Width,
			MinHeight: maxSize.Height,
			MaxHeight: maxSize.Height,
		}
	}
	return layout.Constraints{
		MinWidth:  maxSize.Width,
		MaxWidth:  maxSize.Width,
		MaxHeight: maxSize.Height,
	}
}

// childConstraints pins the resolved main extent and applies the cross
// axis policy: stretch makes a bounded cross axis tight, anything else
// leaves it loose.
func (r *renderFlex) childConstraints(c layout.Constraints, main int) layout.Constraints {
	crossMax := r.crossAxis(c.MaxSize())
	crossMin := 0
	if r.crossAlignment == CrossAxisAlignmentStretch && r.crossBounded(c) {
		crossMin = crossMax
	}
	if r.direction == AxisHorizontal {
		return layout.Constraints{
			MinWidth:  main,
			MaxWidth:  main,
			MinHeight: crossMin,
			MaxHeight: crossMax,
		}
	}
	return layout.Constraints{
		MinWidth:  crossMin,
		MaxWidth:  crossMax,
		MinHeight: main,
		MaxHeight: main,
	}
}

// leadingSpace returns the free cells inserted before child i. The
// formulas are cumulative so positions stay monotonic and rounding
// never makes neighbors overlap.
func (r *renderFlex) leadingSpace(free, i, n int) int {
	switch r.alignment {
	case MainAxisAlignmentEnd:
		return free
	case MainAxisAlignmentCenter:
		return free / 2
	case MainAxisAlignmentSpaceBetween:
		if n > 1 {
			return free * i / (n - 1)
		}
		return 0
	case MainAxisAlignmentSpaceAround:
		if n > 0 {
			return free * (2*i + 1) / (2 * n)
		}
		return 0
	case MainAxisAlignmentSpaceEvenly:
		return free * (i + 1) / (n + 1)
	default:
		return 0
	}
}

func (r *renderFlex) crossAxisOffset(childSize geometry.Size) int {
	free := r.crossAxis(r.Size()) - r.crossAxis(childSize)
	if free <= 0 {
		return 0
	}
	switch r.crossAlignment {
	case CrossAxisAlignmentEnd:
		return free
	case CrossAxisAlignmentCenter:
		return free / 2
	default:
		return 0
	}
}

func (r *renderFlex) Paint(ctx *layout.PaintContext) {
	for _, child := range r.children {
		ctx.PaintChild(child, layout.ChildOffset(child))
	}
}
