package markdown

// highlightEntry is one piece of a reveal step: all lines or a 1-based
// inclusive line range.
type highlightEntry struct {
	all      bool
	from, to int
}

// HighlightGroup is one progressive-reveal step of a code block: the set
// of 1-based line numbers highlighted together.
type HighlightGroup struct {
	entries []highlightEntry
}

// AllLines is the group covering every line of the block.
func AllLines() HighlightGroup {
	return HighlightGroup{entries: []highlightEntry{{all: true}}}
}

// LineRange adds an inclusive 1-based range to the group.
func (g HighlightGroup) LineRange(from, to int) HighlightGroup {
	g.entries = append(g.entries, highlightEntry{from: from, to: to})
	return g
}

// Line adds a single 1-based line to the group.
func (g HighlightGroup) Line(number int) HighlightGroup {
	return g.LineRange(number, number)
}

// Contains reports whether the 1-based line number is part of this step.
func (g HighlightGroup) Contains(line int) bool {
	for _, entry := range g.entries {
		if entry.all || (line >= entry.from && line <= entry.to) {
			return true
		}
	}
	return false
}
