package presentation

// SlideChunk is the unit revealed by a single pause step: a run of
// operations plus the mutators that animate them.
type SlideChunk struct {
	operations []RenderOperation
	mutators   []ChunkMutator
}

// NewSlideChunk seals a chunk.
func NewSlideChunk(operations []RenderOperation, mutators []ChunkMutator) SlideChunk {
	return SlideChunk{operations: operations, mutators: mutators}
}

// Operations returns the chunk's operations in emission order.
func (c *SlideChunk) Operations() []RenderOperation {
	return c.operations
}

// Mutators returns the chunk's mutators.
func (c *SlideChunk) Mutators() []ChunkMutator {
	return c.mutators
}

// PopLastOperation drops the trailing operation. Used to merge list
// fragments split by a pause.
func (c *SlideChunk) PopLastOperation() {
	if len(c.operations) > 0 {
		c.operations = c.operations[:len(c.operations)-1]
	}
}

// Slide is an ordered chunk sequence plus its footer. The footer is
// generated once per slide but reads total-slide information lazily at
// render time.
type Slide struct {
	chunks []SlideChunk
	footer []RenderOperation
}

// NewSlide builds a slide from sealed chunks and a footer.
func NewSlide(chunks []SlideChunk, footer []RenderOperation) Slide {
	return Slide{chunks: chunks, footer: footer}
}

// Chunks returns the slide's chunks.
func (s *Slide) Chunks() []SlideChunk {
	return s.chunks
}

// Operations returns every operation of every chunk plus the footer.
func (s *Slide) Operations() []RenderOperation {
	var operations []RenderOperation
	for i := range s.chunks {
		operations = append(operations, s.chunks[i].operations...)
	}
	return append(operations, s.footer...)
}

// VisibleOperations returns the operations of chunks 0..=chunk plus the
// footer. Chunks render cumulatively.
func (s *Slide) VisibleOperations(chunk int) []RenderOperation {
	var operations []RenderOperation
	for i := 0; i <= chunk && i < len(s.chunks); i++ {
		operations = append(operations, s.chunks[i].operations...)
	}
	return append(operations, s.footer...)
}

// Presentation is the compiled deck plus the navigation cursor. The cursor
// is always clamped to valid indexes.
type Presentation struct {
	slides       []Slide
	currentSlide int
	currentChunk int
}

// New wraps built slides into a presentation with the cursor at the start.
func New(slides []Slide) *Presentation {
	return &Presentation{slides: slides}
}

// Slides exposes the slide list.
func (p *Presentation) Slides() []Slide {
	return p.slides
}

// CurrentSlideIndex returns the cursor's slide index.
func (p *Presentation) CurrentSlideIndex() int {
	return p.currentSlide
}

// CurrentChunk returns the cursor's chunk index within the current slide.
func (p *Presentation) CurrentChunk() int {
	return p.currentChunk
}

// CurrentSlide returns the slide under the cursor.
func (p *Presentation) CurrentSlide() *Slide {
	return &p.slides[p.currentSlide]
}

// JumpNextSlide moves one step forward: first any mutator of the current
// chunk, then the next chunk, then the next slide. Returns whether
// anything moved.
func (p *Presentation) JumpNextSlide() bool {
	if len(p.slides) == 0 {
		return false
	}
	slide := p.CurrentSlide()
	if p.currentChunk < len(slide.chunks) {
		for _, mutator := range slide.chunks[p.currentChunk].mutators {
			if mutator.Advance() {
				return true
			}
		}
	}
	if p.currentChunk+1 < len(slide.chunks) {
		p.currentChunk++
		return true
	}
	if p.currentSlide+1 < len(p.slides) {
		p.currentSlide++
		p.currentChunk = 0
		p.resetSlideMutations(p.currentSlide)
		return true
	}
	return false
}

// JumpPreviousSlide moves one step backward, mirroring JumpNextSlide.
func (p *Presentation) JumpPreviousSlide() bool {
	if len(p.slides) == 0 {
		return false
	}
	slide := p.CurrentSlide()
	if p.currentChunk < len(slide.chunks) {
		mutators := slide.chunks[p.currentChunk].mutators
		for i := len(mutators) - 1; i >= 0; i-- {
			if mutators[i].Retreat() {
				return true
			}
		}
	}
	if p.currentChunk > 0 {
		p.currentChunk--
		return true
	}
	if p.currentSlide > 0 {
		p.currentSlide--
		slide = p.CurrentSlide()
		p.currentChunk = maxChunk(slide)
		p.applyAllSlideMutations(p.currentSlide)
		return true
	}
	return false
}

// JumpFirstSlide jumps to the start of the deck, fully hidden.
func (p *Presentation) JumpFirstSlide() bool {
	if len(p.slides) == 0 {
		return false
	}
	moved := p.currentSlide != 0 || p.currentChunk != 0
	p.currentSlide = 0
	p.currentChunk = 0
	p.resetSlideMutations(0)
	return moved
}

// JumpLastSlide jumps to the end of the deck, fully revealed.
func (p *Presentation) JumpLastSlide() bool {
	if len(p.slides) == 0 {
		return false
	}
	last := len(p.slides) - 1
	moved := p.currentSlide != last || p.currentChunk != maxChunk(&p.slides[last])
	p.currentSlide = last
	p.currentChunk = maxChunk(&p.slides[last])
	p.applyAllSlideMutations(last)
	return moved
}

// JumpSlide jumps to a 0-based slide index, clamped, with its first chunk
// visible.
func (p *Presentation) JumpSlide(index int) bool {
	if len(p.slides) == 0 {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index >= len(p.slides) {
		index = len(p.slides) - 1
	}
	moved := index != p.currentSlide
	p.currentSlide = index
	p.currentChunk = 0
	p.resetSlideMutations(index)
	return moved
}

// JumpChunk moves the chunk cursor within the current slide, clamped.
// Chunks before the cursor show their final mutation step.
func (p *Presentation) JumpChunk(chunk int) {
	slide := p.CurrentSlide()
	if chunk < 0 {
		chunk = 0
	}
	if last := maxChunk(slide); chunk > last {
		chunk = last
	}
	p.currentChunk = chunk
	for i := 0; i < chunk; i++ {
		for _, mutator := range slide.chunks[i].mutators {
			mutator.JumpToEnd()
		}
	}
}

// RenderSlideWidgets starts every on-demand operation visible on the
// current slide. Returns whether at least one actually started.
func (p *Presentation) RenderSlideWidgets() bool {
	started := false
	for _, operation := range p.visibleOnDemand() {
		if operation.Start() {
			started = true
		}
	}
	return started
}

// WidgetsRendered polls the current slide's on-demand operations and
// reports whether none is still rendering.
func (p *Presentation) WidgetsRendered() bool {
	for _, operation := range p.visibleOnDemand() {
		if operation.Poll() == Rendering {
			return false
		}
	}
	return true
}

func (p *Presentation) visibleOnDemand() []OnDemandOperation {
	if len(p.slides) == 0 {
		return nil
	}
	var operations []OnDemandOperation
	for _, op := range p.CurrentSlide().VisibleOperations(p.currentChunk) {
		if onDemand, ok := op.(RenderOnDemand); ok {
			operations = append(operations, onDemand.Source)
		}
	}
	return operations
}

func (p *Presentation) resetSlideMutations(index int) {
	for i := range p.slides[index].chunks {
		for _, mutator := range p.slides[index].chunks[i].mutators {
			mutator.Reset()
		}
	}
}

func (p *Presentation) applyAllSlideMutations(index int) {
	for i := range p.slides[index].chunks {
		for _, mutator := range p.slides[index].chunks[i].mutators {
			mutator.JumpToEnd()
		}
	}
}

func maxChunk(s *Slide) int {
	if len(s.chunks) == 0 {
		return 0
	}
	return len(s.chunks) - 1
}
