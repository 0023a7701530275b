package widget

import "errors"

// ErrIncompatibleAnchor is returned by [Anchor.Connect] when the two anchors cannot be
// connected (different axes, same box, or a nil target).
var ErrIncompatibleAnchor = errors.New("incompatible anchors")

// Anchor is a connection point on a box. It points at most at one target anchor.
type Anchor struct {
	Type AnchorType

	// Margin is the distance kept from the target.
	Margin int

	// GoneMargin replaces Margin while the target's box is gone, when HasGoneMargin
	// is set.
	GoneMargin    int
	HasGoneMargin bool

	owner  *Box
	target *Anchor
}

// Owner returns the box the anchor belongs to.
func (a *Anchor) Owner() *Box { return a.owner }

// Target returns the anchor this one is connected to, or nil.
func (a *Anchor) Target() *Anchor { return a.target }

// IsConnected reports whether the anchor has a target.
func (a *Anchor) IsConnected() bool { return a.target != nil }

// Connect points a at to with the given margin.
func (a *Anchor) Connect(to *Anchor, margin int) error {
	if !a.compatible(to) {
		return ErrIncompatibleAnchor
	}
	a.target = to
	a.Margin = margin
	a.HasGoneMargin = false
	return nil
}

// ConnectGone is Connect plus a margin used while the target's box is gone.
func (a *Anchor) ConnectGone(to *Anchor, margin, goneMargin int) error {
	if err := a.Connect(to, margin); err != nil {
		return err
	}
	a.GoneMargin = goneMargin
	a.HasGoneMargin = true
	return nil
}

// Reset disconnects the anchor and clears its margins.
func (a *Anchor) Reset() {
	a.target = nil
	a.Margin = 0
	a.GoneMargin = 0
	a.HasGoneMargin = false
}

// EffectiveMargin returns the margin that applies right now: zero when the owner is
// gone, the gone margin when the target's box is gone and one is set, else Margin.
func (a *Anchor) EffectiveMargin() int {
	if a.owner != nil && a.owner.Visibility == Gone {
		return 0
	}
	if a.HasGoneMargin && a.target != nil && a.target.owner != nil && a.target.owner.Visibility == Gone {
		return a.GoneMargin
	}
	return a.Margin
}

// IsChainLink reports whether a and its target point at each other.
func (a *Anchor) IsChainLink() bool {
	return a.target != nil && a.target.target == a
}

func (a *Anchor) compatible(to *Anchor) bool {
	if to == nil || to.owner == a.owner {
		return false
	}
	switch a.Type {
	case Left, Right:
		return to.Type == Left || to.Type == Right
	case Top, Bottom:
		return to.Type == Top || to.Type == Bottom
	case Baseline:
		return to.Type == Baseline
	case Center:
		return to.Type == Center
	}
	return false
}
