// Package window holds the viewport math shared by the list renderers:
// which rows are visible, when scrolling should pull in another page, and
// the display-only quick filters of the table view.
package window

// Range returns the half-open row span [start, stop) visible in a viewport
// of height rows scrolled to offset, over count rows of fixed height.
func Range(offset, height, count int) (start, stop int) {
	if count <= 0 || height <= 0 {
		return 0, 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > count-1 {
		offset = count - 1
	}
	stop = offset + height
	if stop > count {
		stop = count
	}
	return offset, stop
}

// ClampOffset keeps cursor inside [offset, offset+height) by moving the
// offset as little as possible.
func ClampOffset(cursor, offset, height, count int) int {
	if count <= 0 || height <= 0 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	maxOffset := count - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// DefaultThreshold is how many rows before the end the table starts
// fetching the next page
const DefaultThreshold = 10

// Trigger decides when a scrolled window should request the next page.
// It fires at most once per trigger index: the index is derived from the
// raw loaded length, so it only moves when a page actually lands.
type Trigger struct {
	threshold int
	fired     bool
	last      int
}

// NewTrigger returns a trigger that fires threshold rows before the end.
// A non-positive threshold uses DefaultThreshold.
func NewTrigger(threshold int) *Trigger {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Trigger{threshold: threshold}
}

// Index returns the raw row index at which loading starts
func (t *Trigger) Index(rawLen int) int {
	idx := rawLen - t.threshold
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Check reports whether a load should be scheduled now. stopRaw is the raw
// index of the last visible row (see StopRawIndex). canLoad folds in "more
// pages exist and nothing is in flight or scheduled".
func (t *Trigger) Check(rawLen, stopRaw int, canLoad bool) bool {
	idx := t.Index(rawLen)
	if t.fired && t.last != idx {
		t.fired = false
	}
	if !canLoad || rawLen == 0 || stopRaw < idx {
		return false
	}
	if t.fired && t.last == idx {
		return false
	}
	t.fired = true
	t.last = idx
	return true
}

// Reset clears the guard; used when the query key changes
func (t *Trigger) Reset() {
	t.fired = false
	t.last = 0
}

// StopRawIndex maps the exclusive stop of a window over a quick-filtered
// view back to a raw index. rawIdx[i] is the raw index of filtered row i.
// When the last filtered row is visible (or nothing survives the filters)
// the window counts as being at the raw end.
func StopRawIndex(rawIdx []int, stop, rawLen int) int {
	if rawLen == 0 {
		return -1
	}
	if len(rawIdx) == 0 || stop >= len(rawIdx) {
		return rawLen - 1
	}
	if stop <= 0 {
		return rawIdx[0]
	}
	return rawIdx[stop-1]
}
