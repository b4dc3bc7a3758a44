// Package builder compiles parsed content elements into a presentation:
// slides made of pause-separated chunks of render operations. All layout
// decisions that don't depend on the terminal size happen here; anything
// size dependent is deferred behind a dynamic operation.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	yaml "gopkg.in/yaml.v2"

	"presentty/internal/highlight"
	"presentty/internal/markdown"
	"presentty/internal/presentation"
	"presentty/internal/render"
	"presentty/internal/resource"
	"presentty/internal/style"
	"presentty/internal/theme"
)

const defaultBottomSlideMargin = 3

// Options tweaks how the builder compiles.
type Options struct {
	// AllowMutations enables stateful chunk behavior: progressive code
	// highlighting steps. Exports and other non-interactive consumers turn
	// it off to get a single static rendering per chunk.
	AllowMutations bool
}

// DefaultOptions is the interactive configuration.
func DefaultOptions() Options {
	return Options{AllowMutations: true}
}

type layoutKind int

const (
	layoutDefault layoutKind = iota
	layoutInLayout
	layoutInColumn
)

type layoutState struct {
	kind         layoutKind
	column       int
	columnsCount int
}

type lastElement struct {
	isList        bool
	listLastIndex int
}

// slideState is reset on every slide boundary. It tracks the bits of
// context that only matter between adjacent elements of one slide.
type slideState struct {
	ignoreElementLineBreak bool
	needsEnterColumn       bool
	lastChunkEndedInList   bool
	lastElement            lastElement
	layout                 layoutState
}

// Builder accumulates operations for the chunk being built, chunks for
// the slide being built, and finished slides. It is single use: one Build
// call per Builder.
type Builder struct {
	chunkOperations []presentation.RenderOperation
	chunkMutators   []presentation.ChunkMutator
	slideChunks     []presentation.SlideChunk
	slides          []presentation.Slide
	highlighter     highlight.CodeHighlighter
	theme           theme.Theme
	resources       *resource.Resources
	footerContext   *footerContext
	state           slideState
	options         Options
}

// New prepares a builder with a default theme. Front matter may still
// replace the theme before any content is compiled.
func New(highlighter highlight.CodeHighlighter, defaultTheme theme.Theme, resources *resource.Resources, options Options) *Builder {
	return &Builder{
		highlighter:   highlighter,
		theme:         defaultTheme,
		resources:     resources,
		footerContext: &footerContext{},
		options:       options,
	}
}

// Build compiles elements into a presentation. Any error aborts the whole
// build.
func (b *Builder) Build(elements []markdown.Element) (*presentation.Presentation, error) {
	if len(elements) > 0 {
		if front, ok := elements[0].(markdown.FrontMatter); ok {
			if err := b.processFrontMatter(front.Contents); err != nil {
				return nil, err
			}
			elements = elements[1:]
		}
	}
	if err := b.setCodeTheme(); err != nil {
		return nil, err
	}
	for _, element := range elements {
		b.state.ignoreElementLineBreak = false
		if err := b.processElement(element); err != nil {
			return nil, err
		}
		if err := b.validateLastOperation(); err != nil {
			return nil, err
		}
		if !b.state.ignoreElementLineBreak {
			b.pushLineBreak()
		}
	}
	if len(b.chunkOperations) > 0 || len(b.slideChunks) > 0 {
		b.terminateSlide()
	}
	b.footerContext.totalSlides = len(b.slides)
	return presentation.New(b.slides), nil
}

func (b *Builder) processElement(element markdown.Element) error {
	if len(b.slideChunks) == 0 && len(b.chunkOperations) == 0 {
		b.pushSlidePrelude()
	}
	shouldClearLast := true
	var err error
	switch el := element.(type) {
	case markdown.FrontMatter:
		err = &InvalidMetadataError{Reason: "front matter must be the first element"}
	case markdown.SetexHeading:
		b.pushSlideTitle(el)
	case markdown.Heading:
		b.pushHeading(el)
	case markdown.Paragraph:
		b.pushParagraph(el)
	case markdown.List:
		b.pushList(el)
		shouldClearLast = false
	case markdown.Code:
		err = b.pushCode(el)
	case markdown.Table:
		b.pushTable(el)
	case markdown.ThematicBreak:
		b.pushSeparator()
	case markdown.Comment:
		err = b.processComment(el)
		shouldClearLast = false
	case markdown.BlockQuote:
		b.pushBlockQuote(el)
	case markdown.Image:
		err = b.pushImage(el)
	}
	if err != nil {
		return err
	}
	if shouldClearLast {
		b.state.lastElement = lastElement{}
	}
	return nil
}

// validateLastOperation enforces that content after a column_layout command
// only appears once a column has been entered.
func (b *Builder) validateLastOperation() error {
	if !b.state.needsEnterColumn || len(b.chunkOperations) == 0 {
		return nil
	}
	last := b.chunkOperations[len(b.chunkOperations)-1]
	if _, ok := last.(presentation.InitColumnLayout); ok {
		return nil
	}
	b.state.needsEnterColumn = false
	switch last.(type) {
	case presentation.EnterColumn, presentation.ExitLayout:
		return nil
	default:
		return ErrNotInsideColumn
	}
}

func (b *Builder) processFrontMatter(contents string) error {
	var metadata Metadata
	if err := yaml.Unmarshal([]byte(contents), &metadata); err != nil {
		return &InvalidMetadataError{Reason: cleanYAMLError(err)}
	}
	b.footerContext.author = metadata.Author
	if err := b.setTheme(metadata.Theme); err != nil {
		return err
	}
	if metadata.hasIntroContent() {
		b.pushSlidePrelude()
		b.pushIntroSlide(metadata)
	}
	return nil
}

func (b *Builder) setTheme(metadata ThemeMetadata) error {
	if metadata.Name != "" && metadata.Path != "" {
		return &InvalidMetadataError{Reason: "cannot have both theme path and theme name"}
	}
	if metadata.Name != "" {
		loaded, ok := theme.FromName(metadata.Name)
		if !ok {
			return &InvalidMetadataError{Reason: fmt.Sprintf("theme %q does not exist", metadata.Name)}
		}
		b.theme = loaded
	}
	if metadata.Path != "" {
		loaded, err := b.resources.Theme(metadata.Path)
		if err != nil {
			return &InvalidMetadataError{Reason: err.Error()}
		}
		b.theme = loaded
	}
	if len(metadata.Overrides) > 0 {
		merged, err := theme.Merge(b.theme, metadata.Overrides)
		if err != nil {
			return &InvalidMetadataError{Reason: fmt.Sprintf("invalid theme overrides: %v", err)}
		}
		b.theme = merged
	}
	return nil
}

func (b *Builder) setCodeTheme() error {
	if name := b.theme.Code.ThemeName; name != "" {
		highlighter, err := highlight.New(name)
		if err != nil {
			return fmt.Errorf("%w %q", ErrInvalidCodeTheme, name)
		}
		b.highlighter = highlighter
	}
	return nil
}

func (b *Builder) pushSlidePrelude() {
	margin := style.Margin{}
	if b.theme.DefaultStyle.Margin != nil {
		margin = *b.theme.DefaultStyle.Margin
	}
	b.chunkOperations = append(b.chunkOperations,
		presentation.SetColors{Colors: b.theme.DefaultStyle.Colors},
		presentation.ClearScreen{},
		presentation.ApplyMargin{Properties: presentation.MarginProperties{
			Horizontal:        margin,
			BottomSlideMargin: defaultBottomSlideMargin,
		}},
	)
	b.pushLineBreak()
}

func (b *Builder) pushIntroSlide(metadata Metadata) {
	b.chunkOperations = append(b.chunkOperations, presentation.JumpToVerticalCenter{})
	titleStyle := style.TextStyle{Bold: true, Colors: b.theme.IntroSlide.Title.Colors}
	b.pushIntroText(metadata.Title, titleStyle, theme.ElementPresentationTitle)
	b.pushLineBreak()
	if metadata.SubTitle != "" {
		subtitleStyle := style.TextStyle{Colors: b.theme.IntroSlide.Subtitle.Colors}
		b.pushIntroText(metadata.SubTitle, subtitleStyle, theme.ElementPresentationSubTitle)
		b.pushLineBreak()
	}
	if metadata.Author != "" {
		switch b.theme.IntroSlide.Author.Positioning {
		case theme.AuthorBelowTitle:
			b.pushLineBreak()
			b.pushLineBreak()
			b.pushLineBreak()
		default:
			b.chunkOperations = append(b.chunkOperations, presentation.JumpToBottomRow{Index: 0})
		}
		authorStyle := style.TextStyle{Colors: b.theme.IntroSlide.Author.Colors}
		b.pushIntroText(metadata.Author, authorStyle, theme.ElementPresentationAuthor)
	}
	b.terminateSlide()
}

func (b *Builder) pushIntroText(contents string, st style.TextStyle, element theme.ElementType) {
	if contents == "" {
		return
	}
	b.chunkOperations = append(b.chunkOperations, presentation.RenderText{
		Line:      markdown.Styled(contents, st),
		Alignment: b.theme.Alignment(element),
	})
}

func (b *Builder) processComment(comment markdown.Comment) error {
	if shouldIgnoreComment(comment.Comment) {
		b.state.ignoreElementLineBreak = true
		return nil
	}
	command, err := parseCommentCommand(strings.Trim(comment.Comment, " \t\r"))
	if err != nil {
		return &CommandParseError{Line: comment.Line, Inner: err.Error()}
	}
	switch cmd := command.(type) {
	case pauseCommand:
		b.processPause()
	case endSlideCommand:
		b.terminateSlide()
	case initColumnLayoutCommand:
		if err := validateColumnLayout(cmd.columns); err != nil {
			return err
		}
		b.state.layout = layoutState{kind: layoutInLayout, columnsCount: len(cmd.columns)}
		b.state.needsEnterColumn = true
		b.chunkOperations = append(b.chunkOperations, presentation.InitColumnLayout{Columns: cmd.columns})
	case resetLayoutCommand:
		b.state.layout = layoutState{}
		b.chunkOperations = append(b.chunkOperations, presentation.ExitLayout{})
		b.pushLineBreak()
	case enterColumnCommand:
		if err := b.enterColumn(cmd.column); err != nil {
			return err
		}
	}
	b.state.ignoreElementLineBreak = true
	return nil
}

func validateColumnLayout(columns []int) error {
	if len(columns) == 0 {
		return &InvalidLayoutError{Reason: "need at least one column"}
	}
	for _, width := range columns {
		if width == 0 {
			return &InvalidLayoutError{Reason: "can't have zero sized columns"}
		}
	}
	return nil
}

func (b *Builder) enterColumn(column int) error {
	switch b.state.layout.kind {
	case layoutDefault:
		return ErrNoLayout
	case layoutInColumn:
		if column == b.state.layout.column {
			return ErrAlreadyInColumn
		}
	}
	if column < 0 || column >= b.state.layout.columnsCount {
		return ErrColumnIndexTooLarge
	}
	b.state.layout = layoutState{kind: layoutInColumn, column: column, columnsCount: b.state.layout.columnsCount}
	b.state.needsEnterColumn = false
	b.chunkOperations = append(b.chunkOperations, presentation.EnterColumn{Column: column})
	return nil
}

// processPause seals the current chunk so everything after it is revealed
// by the next advance.
func (b *Builder) processPause() {
	b.state.lastChunkEndedInList = b.state.lastElement.isList
	b.sealChunk()
}

func (b *Builder) sealChunk() {
	b.slideChunks = append(b.slideChunks, presentation.NewSlideChunk(b.chunkOperations, b.chunkMutators))
	b.chunkOperations = nil
	b.chunkMutators = nil
}

func (b *Builder) terminateSlide() {
	footer := b.generateFooter()
	b.sealChunk()
	b.slides = append(b.slides, presentation.NewSlide(b.slideChunks, footer))
	b.slideChunks = nil
	b.state = slideState{}
}

// generateFooter emits the per-slide footer. The slide count placeholder is
// resolved lazily at render time, after the whole document is built.
func (b *Builder) generateFooter() []presentation.RenderOperation {
	generator := &footerGenerator{
		currentSlide: len(b.slides),
		context:      b.footerContext,
		style:        b.theme.Footer,
	}
	return []presentation.RenderOperation{
		presentation.ExitLayout{},
		presentation.PopMargin{},
		presentation.RenderDynamic{Source: generator},
	}
}

func (b *Builder) pushSlideTitle(title markdown.SetexHeading) {
	st := b.theme.SlideTitle
	text := title.Text
	text.ApplyStyle(style.TextStyle{Bold: true, Colors: st.Colors})
	for i := 0; i < st.PaddingTop; i++ {
		b.pushLineBreak()
	}
	b.chunkOperations = append(b.chunkOperations, presentation.RenderText{
		Line:      text,
		Alignment: b.theme.Alignment(theme.ElementSlideTitle),
	})
	b.pushLineBreak()
	for i := 0; i < st.PaddingBottom; i++ {
		b.pushLineBreak()
	}
	if st.Separator {
		b.chunkOperations = append(b.chunkOperations, presentation.RenderDynamic{Source: &renderSeparator{}})
	}
	b.pushLineBreak()
	b.state.ignoreElementLineBreak = true
}

func (b *Builder) pushHeading(heading markdown.Heading) {
	st := b.theme.HeadingStyle(heading.Level)
	text := heading.Text
	if st.Prefix != "" {
		text.Chunks = append([]markdown.StyledText{{Text: st.Prefix + " "}}, text.Chunks...)
	}
	text.ApplyStyle(style.TextStyle{Bold: true, Colors: st.Colors})
	b.chunkOperations = append(b.chunkOperations, presentation.RenderText{
		Line:      text,
		Alignment: b.theme.Alignment(headingElement(heading.Level)),
	})
	b.pushLineBreak()
}

func headingElement(level int) theme.ElementType {
	switch level {
	case 1:
		return theme.ElementHeading1
	case 2:
		return theme.ElementHeading2
	case 3:
		return theme.ElementHeading3
	case 4:
		return theme.ElementHeading4
	case 5:
		return theme.ElementHeading5
	default:
		return theme.ElementHeading6
	}
}

func (b *Builder) pushParagraph(paragraph markdown.Paragraph) {
	for _, run := range paragraph.Runs {
		b.pushText(run, theme.ElementParagraph)
		b.pushLineBreak()
	}
}

func (b *Builder) pushList(list markdown.List) {
	// A list resuming right after a pause is the same list: drop the blank
	// line the previous chunk ended with and keep counting where the last
	// top level item left off.
	if b.state.lastChunkEndedInList && len(b.chunkOperations) == 0 && len(b.slideChunks) > 0 {
		b.slideChunks[len(b.slideChunks)-1].PopLastOperation()
	}
	startIndex := 0
	if b.state.lastElement.isList {
		startIndex = b.state.lastElement.listLastIndex + 1
	}
	iterator := newListIterator(list.Items, startIndex)
	for item, ok := iterator.next(); ok; item, ok = iterator.next() {
		b.pushListItem(item.index, item.item)
	}
}

func (b *Builder) pushListItem(index int, item markdown.ListItem) {
	prefix := strings.Repeat(" ", (item.Depth+1)*3)
	switch item.Type {
	case markdown.Unordered:
		prefix += unorderedDelimiter(item.Depth) + " "
	case markdown.OrderedPeriod:
		prefix += strconv.Itoa(index+1) + ". "
	case markdown.OrderedParens:
		prefix += strconv.Itoa(index+1) + ") "
	}
	b.chunkOperations = append(b.chunkOperations, presentation.RenderText{
		Line:      markdown.Plain(prefix),
		Alignment: style.LeftAlignment(0),
	})
	b.pushAlignedText(item.Contents, style.LeftAlignment(runewidth.StringWidth(prefix)))
	b.pushLineBreak()
	if item.Depth == 0 {
		b.state.lastElement = lastElement{isList: true, listLastIndex: index}
	}
}

// unorderedDelimiter picks the bullet glyph for a nesting depth.
func unorderedDelimiter(depth int) string {
	switch depth {
	case 0:
		return "•"
	case 1:
		return "◦"
	default:
		return "▪"
	}
}

func (b *Builder) pushText(text markdown.Text, element theme.ElementType) {
	b.pushAlignedText(text, b.theme.Alignment(element))
}

// pushAlignedText emits one line of styled text, filling in the theme's
// inline code colors for code spans that carry none of their own.
func (b *Builder) pushAlignedText(text markdown.Text, alignment style.Alignment) {
	if len(text.Chunks) == 0 {
		return
	}
	chunks := make([]markdown.StyledText, len(text.Chunks))
	copy(chunks, text.Chunks)
	for i := range chunks {
		if !chunks[i].Style.Code {
			continue
		}
		if chunks[i].Style.Colors.Foreground == "" {
			chunks[i].Style.Colors.Foreground = b.theme.InlineCode.Colors.Foreground
		}
		if chunks[i].Style.Colors.Background == "" {
			chunks[i].Style.Colors.Background = b.theme.InlineCode.Colors.Background
		}
	}
	b.chunkOperations = append(b.chunkOperations, presentation.RenderText{
		Line:      markdown.Text{Chunks: chunks},
		Alignment: alignment,
	})
}

func (b *Builder) pushCode(code markdown.Code) error {
	preparer := codePreparer{theme: &b.theme}
	lines := preparer.prepare(code)
	blockLength := 0
	for _, line := range lines {
		if width := line.width(); width > blockLength {
			blockLength = width
		}
	}
	groups := code.Attributes.HighlightGroups
	if !b.options.AllowMutations || len(groups) == 0 {
		groups = []markdown.HighlightGroup{markdown.AllLines()}
	}
	context := &highlightContext{
		groups:      groups,
		blockLength: blockLength,
		alignment:   b.theme.Alignment(theme.ElementCode),
		blockColors: b.highlighter.BlockColors(),
	}
	languageHighlighter := b.highlighter.LanguageHighlighter(code.Language)
	plainHighlighter := b.highlighter.LanguageHighlighter("")
	paddingStyle := b.highlighter.PaddingStyle()
	for _, line := range lines {
		prefix := applyPadding(line.prefix, paddingStyle)
		suffix := applyPadding(line.suffix, paddingStyle)
		b.chunkOperations = append(b.chunkOperations, presentation.RenderDynamic{Source: &highlightedLine{
			highlighted: prefix + languageHighlighter.HighlightLine(line.code) + suffix,
			plain:       prefix + plainHighlighter.HighlightLine(line.code) + suffix,
			lineNumber:  line.lineNumber,
			width:       line.width(),
			context:     context,
		}})
	}
	if b.options.AllowMutations && len(context.groups) > 1 {
		b.chunkMutators = append(b.chunkMutators, &highlightMutator{context: context})
	}
	if code.Attributes.Execute {
		b.pushCodeExecution(code)
	}
	return nil
}

func applyPadding(padding string, st style.TextStyle) string {
	if padding == "" {
		return ""
	}
	return render.ApplyStyle(padding, st, style.Colors{})
}

func (b *Builder) pushCodeExecution(code markdown.Code) {
	operation := newRunCodeOperation(code, b.theme.DefaultStyle.Colors, b.theme.ExecutionOutput.Colors)
	b.chunkOperations = append(b.chunkOperations, presentation.RenderOnDemand{Source: operation})
}

func (b *Builder) pushTable(table markdown.Table) {
	widths := make([]int, table.Columns())
	for column := range widths {
		for _, cell := range table.ColumnCells(column) {
			if width := cell.Width(); width > widths[column] {
				widths[column] = width
			}
		}
	}
	b.pushTableRow(table.Header, widths)
	b.pushTableSeparator(widths)
	for _, row := range table.Rows {
		b.pushTableRow(row, widths)
	}
}

func (b *Builder) pushTableRow(row markdown.TableRow, widths []int) {
	var chunks []markdown.StyledText
	for column, width := range widths {
		var cell markdown.Text
		if column < len(row) {
			cell = row[column]
		}
		chunks = append(chunks, cell.Chunks...)
		filler := strings.Repeat(" ", width-cell.Width())
		if column < len(widths)-1 {
			filler += " │ "
		}
		if filler != "" {
			chunks = append(chunks, markdown.StyledText{Text: filler})
		}
	}
	b.pushText(markdown.Text{Chunks: chunks}, theme.ElementTable)
	b.pushLineBreak()
}

// pushTableSeparator draws the header rule. Every column contributes its
// width plus the cell padding around it, with a cross where separators
// meet.
func (b *Builder) pushTableSeparator(widths []int) {
	var sb strings.Builder
	for column, width := range widths {
		extra := 2
		if column == 0 {
			extra--
		}
		if column == len(widths)-1 {
			extra--
		}
		sb.WriteString(strings.Repeat("─", width+extra))
		if column < len(widths)-1 {
			sb.WriteString("┼")
		}
	}
	b.pushText(markdown.Plain(sb.String()), theme.ElementTable)
	b.pushLineBreak()
}

func (b *Builder) pushSeparator() {
	b.chunkOperations = append(b.chunkOperations, presentation.RenderDynamic{Source: &renderSeparator{}})
	b.pushLineBreak()
}

func (b *Builder) pushBlockQuote(quote markdown.BlockQuote) {
	prefix := b.theme.BlockQuote.Prefix
	prefixWidth := runewidth.StringWidth(prefix)
	blockLength := 0
	for _, line := range quote.Lines {
		if width := runewidth.StringWidth(line) + prefixWidth; width > blockLength {
			blockLength = width
		}
	}
	colors := b.theme.BlockQuote.Colors
	for _, line := range quote.Lines {
		contents := prefix + line
		b.chunkOperations = append(b.chunkOperations,
			presentation.RenderPreformattedLine{
				Text:              render.ApplyStyle(contents, style.TextStyle{Colors: colors}, b.theme.DefaultStyle.Colors),
				UnformattedLength: runewidth.StringWidth(contents),
				BlockLength:       blockLength,
				Alignment:         b.theme.Alignment(theme.ElementBlockQuote),
				BlockColors:       colors,
			},
			presentation.RenderLineBreak{},
		)
	}
}

func (b *Builder) pushImage(image markdown.Image) error {
	img, err := b.resources.Image(image.Path)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	b.chunkOperations = append(b.chunkOperations, presentation.RenderImage{Image: img})
	return nil
}

func (b *Builder) pushLineBreak() {
	b.chunkOperations = append(b.chunkOperations, presentation.RenderLineBreak{})
}
