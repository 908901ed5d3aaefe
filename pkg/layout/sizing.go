package layout

// SizingMode selects how a flex item claims main-axis space.
type SizingMode uint8

const (
	// SizingContent sizes the item to its child's natural extent.
	// This is the zero value, so bare children default to it.
	SizingContent SizingMode = iota
	// SizingFixed claims an exact number of cells.
	SizingFixed
	// SizingPercent claims a percentage of the container extent,
	// rounded down.
	SizingPercent
	// SizingFill claims a weighted share of whatever is left after
	// all other items are sized.
	SizingFill
)

// String returns the mode name for debugging.
func (m SizingMode) String() string {
	switch m {
	case SizingContent:
		return "Content"
	case SizingFixed:
		return "Fixed"
	case SizingPercent:
		return "Percent"
	case SizingFill:
		return "Fill"
	default:
		return "Unknown"
	}
}

// Sizing is a flex item's main-axis size request. The zero value is
// content sizing.
type Sizing struct {
	Mode  SizingMode
	Value int
}

// Fixed requests exactly n cells, clamped to what remains in the
// container.
func Fixed(n int) Sizing {
	return Sizing{Mode: SizingFixed, Value: n}
}

// Percent requests p percent of the container's main-axis extent,
// rounded down.
func Percent(p int) Sizing {
	return Sizing{Mode: SizingPercent, Value: p}
}

// Fill requests a share of the leftover space proportional to weight.
// Weights of zero or less receive no space.
func Fill(weight int) Sizing {
	return Sizing{Mode: SizingFill, Value: weight}
}

// Content requests the child's natural extent.
func Content() Sizing {
	return Sizing{}
}

// Distribute splits total across weights so the parts sum to exactly
// total. Each part is the difference of consecutive cumulative
// rounded shares, which keeps any two equal weights within one cell
// of each other and pushes the rounding spare toward the last
// positive weight. Non-positive weights receive zero.
func Distribute(total int, weights []int) []int {
	parts := make([]int, len(weights))
	if total <= 0 {
		return parts
	}
	sum := 0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		return parts
	}
	acc := 0
	cum := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		share := total * cum / sum
		parts[i] = share - acc
		acc = share
	}
	return parts
}

// ResolveSizes computes the main-axis extent of each item in a flex
// container with the given available extent. Items are resolved in
// declaration order; each claim is clamped to the space still
// remaining, so the results never sum past available. Fill items
// split the final remainder by weight via Distribute.
//
// content[i] supplies the natural extent for items with
// SizingContent and is ignored for other modes. A nil content slice
// treats every content item as zero.
func ResolveSizes(available int, items []Sizing, content []int) []int {
	sizes := make([]int, len(items))
	if available < 0 {
		available = 0
	}
	remaining := available

	claim := func(n int) int {
		if n < 0 {
			n = 0
		}
		if n > remaining {
			n = remaining
		}
		remaining -= n
		return n
	}

	fillIdx := make([]int, 0, len(items))
	fillWeights := make([]int, 0, len(items))
	for i, item := range items {
		switch item.Mode {
		case SizingFixed:
			sizes[i] = claim(item.Value)
		case SizingPercent:
			sizes[i] = claim(available * item.Value / 100)
		case SizingContent:
			c := 0
			if content != nil && i < len(content) {
				c = content[i]
			}
			sizes[i] = claim(c)
		case SizingFill:
			fillIdx = append(fillIdx, i)
			fillWeights = append(fillWeights, item.Value)
		}
	}

	if len(fillIdx) > 0 {
		parts := Distribute(remaining, fillWeights)
		for k, idx := range fillIdx {
			sizes[idx] = parts[k]
		}
	}
	return sizes
}
