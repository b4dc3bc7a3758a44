package presentation

// Modification is the first point at which two compiled presentations
// diverge.
type Modification struct {
	SlideIndex int
	ChunkIndex int
}

// FindFirstModification compares two presentations and returns the first
// slide/chunk at which they differ, or false if they are identical. Used
// to keep the cursor on the edited slide across a live reload.
func FindFirstModification(original, updated *Presentation) (Modification, bool) {
	originalSlides := original.Slides()
	updatedSlides := updated.Slides()
	count := len(originalSlides)
	if len(updatedSlides) < count {
		count = len(updatedSlides)
	}
	for i := 0; i < count; i++ {
		if chunk, differs := firstModifiedChunk(&originalSlides[i], &updatedSlides[i]); differs {
			return Modification{SlideIndex: i, ChunkIndex: chunk}, true
		}
	}
	if len(originalSlides) != len(updatedSlides) {
		return Modification{SlideIndex: count}, true
	}
	return Modification{}, false
}

func firstModifiedChunk(original, updated *Slide) (int, bool) {
	count := len(original.chunks)
	if len(updated.chunks) < count {
		count = len(updated.chunks)
	}
	for i := 0; i < count; i++ {
		if !operationsEqual(original.chunks[i].operations, updated.chunks[i].operations) {
			return i, true
		}
	}
	if len(original.chunks) != len(updated.chunks) {
		return count, true
	}
	return 0, false
}

func operationsEqual(original, updated []RenderOperation) bool {
	if len(original) != len(updated) {
		return false
	}
	for i := range original {
		if !operationEqual(original[i], updated[i]) {
			return false
		}
	}
	return true
}

func operationEqual(original, updated RenderOperation) bool {
	switch a := original.(type) {
	case SetColors:
		b, ok := updated.(SetColors)
		return ok && a.Colors == b.Colors
	case ApplyMargin:
		b, ok := updated.(ApplyMargin)
		return ok && a.Properties.BottomSlideMargin == b.Properties.BottomSlideMargin &&
			a.Properties.Horizontal.Columns(100) == b.Properties.Horizontal.Columns(100)
	case JumpToBottomRow:
		b, ok := updated.(JumpToBottomRow)
		return ok && a.Index == b.Index
	case RenderText:
		b, ok := updated.(RenderText)
		return ok && a.Line.Equal(b.Line) && a.Alignment.Equal(b.Alignment)
	case RenderImage:
		b, ok := updated.(RenderImage)
		return ok && a.Image.Path == b.Image.Path
	case RenderPreformattedLine:
		b, ok := updated.(RenderPreformattedLine)
		return ok && a.Text == b.Text && a.BlockLength == b.BlockLength &&
			a.UnformattedLength == b.UnformattedLength && a.Alignment.Equal(b.Alignment)
	case InitColumnLayout:
		b, ok := updated.(InitColumnLayout)
		if !ok || len(a.Columns) != len(b.Columns) {
			return false
		}
		for i := range a.Columns {
			if a.Columns[i] != b.Columns[i] {
				return false
			}
		}
		return true
	case EnterColumn:
		b, ok := updated.(EnterColumn)
		return ok && a.Column == b.Column
	case RenderDynamic:
		b, ok := updated.(RenderDynamic)
		return ok && dynamicEqual(a.Source, b.Source)
	case RenderOnDemand:
		b, ok := updated.(RenderOnDemand)
		return ok && dynamicEqual(a.Source, b.Source)
	default:
		// Stateless markers: equal when the types match.
		return sameType(original, updated)
	}
}

func dynamicEqual(original, updated DynamicOperation) bool {
	a, aOK := original.DiffableContent()
	b, bOK := updated.DiffableContent()
	if !aOK || !bOK {
		// Non-diffable content never counts as a modification.
		return true
	}
	return a == b
}

func sameType(original, updated RenderOperation) bool {
	switch original.(type) {
	case ClearScreen:
		_, ok := updated.(ClearScreen)
		return ok
	case PopMargin:
		_, ok := updated.(PopMargin)
		return ok
	case JumpToVerticalCenter:
		_, ok := updated.(JumpToVerticalCenter)
		return ok
	case RenderLineBreak:
		_, ok := updated.(RenderLineBreak)
		return ok
	case ExitLayout:
		_, ok := updated.(ExitLayout)
		return ok
	default:
		return false
	}
}
