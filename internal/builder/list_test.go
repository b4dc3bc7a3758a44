package builder

import (
	"testing"

	"presentty/internal/markdown"
)

func items(depths ...int) []markdown.ListItem {
	list := make([]markdown.ListItem, 0, len(depths))
	for _, depth := range depths {
		list = append(list, markdown.ListItem{Depth: depth, Type: markdown.OrderedPeriod})
	}
	return list
}

func collectIndexes(iterator *listIterator) []int {
	var indexes []int
	for item, ok := iterator.next(); ok; item, ok = iterator.next() {
		indexes = append(indexes, item.index)
	}
	return indexes
}

func TestListIteratorNestedIndexes(t *testing.T) {
	iterator := newListIterator(items(0, 0, 1, 1, 1, 2, 0), 0)
	expected := []int{0, 1, 0, 1, 2, 0, 2}
	got := collectIndexes(iterator)
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("index %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestListIteratorStartIndex(t *testing.T) {
	iterator := newListIterator(items(0, 0), 3)
	got := collectIndexes(iterator)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("expected [3 4], got %v", got)
	}
}

func TestListIteratorMalformedDepths(t *testing.T) {
	// Depths that ascend past where the list started have no saved counter
	// to return to; numbering restarts at zero instead of failing.
	iterator := newListIterator(items(0, -1, -1), 0)
	expected := []int{0, 0, 1}
	got := collectIndexes(iterator)
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("index %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}
