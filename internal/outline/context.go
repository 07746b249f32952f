package outline

import "sort"

// Context is per-document state derived once after line assembly and
// read-only afterwards, so classification can run concurrently over it.
// Rank 1 is the largest distinct font size in the document. MedianRank is
// the median rank across all candidate lines (not distinct sizes), so body
// text anchors it: in a typical document most lines share the body size and
// the median sits at the body rank.
type Context struct {
	ranks      map[int]int // sizeKey -> rank, 1 = largest
	numSizes   int
	MedianRank float64
}

// NewContext ranks the distinct font sizes across lines and records the
// median rank of the line population.
func NewContext(lines []Line) *Context {
	ctx := &Context{ranks: make(map[int]int)}
	if len(lines) == 0 {
		return ctx
	}

	keys := make([]int, 0, 8)
	seen := make(map[int]struct{}, 8)
	for _, ln := range lines {
		k := sizeKey(ln.FontSize)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	for i, k := range keys {
		ctx.ranks[k] = i + 1
	}
	ctx.numSizes = len(keys)

	all := make([]int, len(lines))
	for i, ln := range lines {
		all[i] = ctx.ranks[sizeKey(ln.FontSize)]
	}
	sort.Ints(all)
	mid := len(all) / 2
	if len(all)%2 == 1 {
		ctx.MedianRank = float64(all[mid])
	} else {
		ctx.MedianRank = float64(all[mid-1]+all[mid]) / 2
	}

	return ctx
}

// Rank returns the size rank for a font size, 1 = largest. Sizes the
// document never produced rank after everything else.
func (c *Context) Rank(size float64) int {
	if r, ok := c.ranks[sizeKey(size)]; ok {
		return r
	}
	return c.numSizes + 1
}

// Sizes returns the number of distinct font sizes in the document.
func (c *Context) Sizes() int {
	return c.numSizes
}
