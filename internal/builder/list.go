package builder

import "presentty/internal/markdown"

// indexedListItem pairs a list item with its 0-based ordinal among siblings
// at the same depth.
type indexedListItem struct {
	index int
	item  markdown.ListItem
}

// listIterator walks a flattened list and assigns per-depth ordinals.
// Descending a level pushes the parent's counter; ascending pops back to it,
// so siblings keep counting where they left off.
type listIterator struct {
	items        []markdown.ListItem
	position     int
	nextIndex    int
	currentDepth int
	savedIndexes []int
}

func newListIterator(items []markdown.ListItem, startIndex int) *listIterator {
	return &listIterator{items: items, nextIndex: startIndex}
}

func (it *listIterator) next() (indexedListItem, bool) {
	if it.position >= len(it.items) {
		return indexedListItem{}, false
	}
	item := it.items[it.position]
	it.position++
	if item.Depth > it.currentDepth {
		for level := it.currentDepth; level < item.Depth; level++ {
			it.savedIndexes = append(it.savedIndexes, it.nextIndex)
		}
		it.nextIndex = 0
		it.currentDepth = item.Depth
	} else if item.Depth < it.currentDepth {
		for level := it.currentDepth; level > item.Depth; level-- {
			// Malformed depth sequences can ascend past the start; missing
			// saved counters restart at zero.
			if len(it.savedIndexes) == 0 {
				it.nextIndex = 0
				continue
			}
			it.nextIndex = it.savedIndexes[len(it.savedIndexes)-1]
			it.savedIndexes = it.savedIndexes[:len(it.savedIndexes)-1]
		}
		it.currentDepth = item.Depth
	}
	index := it.nextIndex
	it.nextIndex++
	return indexedListItem{index: index, item: item}, true
}
