package widget

// Box is a rectangle positioned by its anchors. The zero value is not usable; create
// boxes with [NewBox] so anchors know their owner.
type Box struct {
	ID string

	// Geometry. X and Y are relative to the container; the engine writes them back.
	// Gone boxes are written back with zero size.
	X, Y          int
	Width, Height int

	// Baseline is the distance from the top edge to the text baseline.
	Baseline    int
	HasBaseline bool

	Visibility Visibility

	// Per-axis sizing, indexed by Axis.
	Behavior     [2]DimensionBehavior
	Match        [2]MatchKind
	MatchMin     [2]int
	MatchMax     [2]int
	MatchPercent [2]float64
	Weight       [2]float64
	Bias         [2]float64
	ChainStyle   [2]ChainStyle

	// Ratio is width / height, used when a MatchConstraint axis follows the other.
	Ratio     float64
	RatioSide RatioSide

	// Guide is set on guideline boxes.
	Guide *Guide

	anchors [6]Anchor
	parent  *Container
}

// Guide turns a box into a guideline: a zero-size line placed on Axis at a fixed
// offset from the container's start or end edge, or at a fraction of its size.
// A guideline on the horizontal axis is a vertical line.
type Guide struct {
	Axis    Axis
	Mode    GuideMode
	Offset  int
	Percent float64
}

// GuideMode selects how a guideline is placed.
type GuideMode int

const (
	GuideBegin GuideMode = iota
	GuideEnd
	GuidePercent
)

// NewBox returns a visible fixed-size box with centered bias and percent 1.
func NewBox(id string, width, height int) *Box {
	b := &Box{
		ID:           id,
		Width:        width,
		Height:       height,
		MatchPercent: [2]float64{1, 1},
		Weight:       [2]float64{-1, -1},
		Bias:         [2]float64{0.5, 0.5},
	}
	for i := range b.anchors {
		b.anchors[i] = Anchor{Type: AnchorType(i), owner: b}
	}
	return b
}

// NewGuideline returns a guideline box.
func NewGuideline(id string, guide Guide) *Box {
	b := NewBox(id, 0, 0)
	b.Guide = &guide
	return b
}

// Anchor returns the anchor of the given type.
func (b *Box) Anchor(t AnchorType) *Anchor {
	return &b.anchors[t]
}

// Parent returns the container holding the box, or nil.
func (b *Box) Parent() *Container { return b.parent }

// IsGuideline reports whether the box is a guideline.
func (b *Box) IsGuideline() bool { return b.Guide != nil }

// IsGone reports whether the box is gone.
func (b *Box) IsGone() bool { return b.Visibility == Gone }

// Size returns the box's size on axis. Gone boxes have zero size.
func (b *Box) Size(axis Axis) int {
	if b.Visibility == Gone {
		return 0
	}
	if axis == Vertical {
		return b.Height
	}
	return b.Width
}

// SetSize sets the size on axis.
func (b *Box) SetSize(axis Axis, v int) {
	if axis == Vertical {
		b.Height = v
	} else {
		b.Width = v
	}
}

// Pos returns the position on axis.
func (b *Box) Pos(axis Axis) int {
	if axis == Vertical {
		return b.Y
	}
	return b.X
}

// SetPos sets the position on axis.
func (b *Box) SetPos(axis Axis, v int) {
	if axis == Vertical {
		b.Y = v
	} else {
		b.X = v
	}
}

// StartOf returns the start anchor on axis (left or top).
func (b *Box) StartOf(axis Axis) *Anchor { return b.Anchor(StartAnchor(axis)) }

// EndOf returns the end anchor on axis (right or bottom).
func (b *Box) EndOf(axis Axis) *Anchor { return b.Anchor(EndAnchor(axis)) }

// InChain reports whether the box belongs to a chain on axis.
func (b *Box) InChain(axis Axis) bool {
	return b.StartOf(axis).IsChainLink() || b.EndOf(axis).IsChainLink()
}

// PrevInChain returns the previous chain member on axis, or nil.
func (b *Box) PrevInChain(axis Axis) *Box {
	if a := b.StartOf(axis); a.IsChainLink() {
		return a.target.owner
	}
	return nil
}

// NextInChain returns the next chain member on axis, or nil.
func (b *Box) NextInChain(axis Axis) *Box {
	if a := b.EndOf(axis); a.IsChainLink() {
		return a.target.owner
	}
	return nil
}
