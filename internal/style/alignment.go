package style

// Margin is a horizontal margin, either a fixed column count or a
// percentage of the drawing rect.
type Margin struct {
	Fixed   *int `yaml:"fixed,omitempty"`
	Percent *int `yaml:"percent,omitempty"`
}

// FixedMargin is a convenience constructor for a fixed margin.
func FixedMargin(columns int) Margin {
	return Margin{Fixed: &columns}
}

// Columns resolves the margin against a total width.
func (m Margin) Columns(total int) int {
	switch {
	case m.Fixed != nil:
		return *m.Fixed
	case m.Percent != nil:
		return total * *m.Percent / 100
	default:
		return 0
	}
}

// AlignmentKind says how a piece of content sits inside its rect.
type AlignmentKind int

const (
	AlignLeft AlignmentKind = iota
	AlignCenter
	AlignRight
)

// Alignment positions content inside the current drawing rect.
type Alignment struct {
	Kind AlignmentKind
	// Margin applies on the alignment side (left margin for left-aligned,
	// right margin for right-aligned, minimum side margin for centered).
	Margin Margin
	// MinimumSize is the smallest width a centered block claims, so short
	// code blocks still get a stable left edge.
	MinimumSize int
}

// LeftAlignment returns a left alignment with the given fixed margin.
func LeftAlignment(margin int) Alignment {
	return Alignment{Kind: AlignLeft, Margin: FixedMargin(margin)}
}

// CenterAlignment returns a centered alignment.
func CenterAlignment(minimumSize, minimumMargin int) Alignment {
	return Alignment{Kind: AlignCenter, Margin: FixedMargin(minimumMargin), MinimumSize: minimumSize}
}

// RightAlignment returns a right alignment with the given fixed margin.
func RightAlignment(margin int) Alignment {
	return Alignment{Kind: AlignRight, Margin: FixedMargin(margin)}
}

// Equal reports whether two alignments resolve identically.
func (a Alignment) Equal(other Alignment) bool {
	return a.Kind == other.Kind &&
		a.MinimumSize == other.MinimumSize &&
		marginEqual(a.Margin, other.Margin)
}

func marginEqual(a, b Margin) bool {
	switch {
	case a.Fixed != nil && b.Fixed != nil:
		return *a.Fixed == *b.Fixed
	case a.Percent != nil && b.Percent != nil:
		return *a.Percent == *b.Percent
	default:
		return a.Fixed == nil && b.Fixed == nil && a.Percent == nil && b.Percent == nil
	}
}
