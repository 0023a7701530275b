// Package widget is the box and anchor model read by the direct resolution engine.
//
// A [Container] holds child [Box] values. Each box exposes six anchors (left, top,
// right, bottom, baseline, center); an anchor may be connected to one target anchor on
// another box or on the container, with a margin. A box's size on each [Axis] follows
// a [DimensionBehavior]; boxes whose size is constrained by their anchors use
// [MatchKind] to say how.
//
// Two boxes are chained on an axis when their facing anchors point at each other:
//
//	a.Anchor(widget.Right).Connect(b.Anchor(widget.Left), 0)
//	b.Anchor(widget.Left).Connect(a.Anchor(widget.Right), 0)
//
// [CreateChain] wires a whole chain at once.
//
// The engine never measures content itself. It asks a [Measurer] supplied by the
// host, passing a [MeasureSpec] per request.
package widget

import (
	"fmt"
	"strings"
)

// Axis is one of the two layout axes.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Axes lists both axes in resolution order.
var Axes = [...]Axis{Horizontal, Vertical}

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	return 1 - a
}

// ParseAxis parses "horizontal"/"vertical" (or "h"/"v", "x"/"y").
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "x", "":
		return Horizontal, nil
	case "vertical", "v", "y":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q", s)
}

// AnchorType names one of the anchors of a box.
type AnchorType int

const (
	Left AnchorType = iota
	Top
	Right
	Bottom
	Baseline
	Center
)

var anchorNames = [...]string{"left", "top", "right", "bottom", "baseline", "center"}

func (t AnchorType) String() string {
	if int(t) < len(anchorNames) {
		return anchorNames[t]
	}
	return fmt.Sprintf("anchor(%d)", int(t))
}

// ParseAnchorType parses an anchor name such as "left" or "baseline".
// "start" and "end" are accepted as aliases for left and right.
func ParseAnchorType(s string) (AnchorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return Left, nil
	case "end":
		return Right, nil
	}
	for i, n := range anchorNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return AnchorType(i), nil
		}
	}
	return Left, fmt.Errorf("unknown anchor %q", s)
}

// StartAnchor returns the anchor a run starts from on the given axis.
func StartAnchor(axis Axis) AnchorType {
	if axis == Vertical {
		return Top
	}
	return Left
}

// EndAnchor returns the anchor a run ends at on the given axis.
func EndAnchor(axis Axis) AnchorType {
	if axis == Vertical {
		return Bottom
	}
	return Right
}

// DimensionBehavior says how a box's size on one axis is obtained.
type DimensionBehavior int

const (
	// Fixed sizes are set by the host.
	Fixed DimensionBehavior = iota
	// WrapContent sizes come from the Measurer.
	WrapContent
	// MatchParent sizes follow the container minus margins.
	MatchParent
	// MatchConstraint sizes are computed from the anchors.
	MatchConstraint
)

var behaviorNames = [...]string{"fixed", "wrap_content", "match_parent", "match_constraint"}

func (b DimensionBehavior) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return fmt.Sprintf("behavior(%d)", int(b))
}

// ParseDimensionBehavior parses a behavior name. Dashes and the short forms "wrap",
// "parent" and "constraint"/"match" are accepted.
func ParseDimensionBehavior(s string) (DimensionBehavior, error) {
	switch normalize(s) {
	case "", "fixed":
		return Fixed, nil
	case "wrap_content", "wrap":
		return WrapContent, nil
	case "match_parent", "parent":
		return MatchParent, nil
	case "match_constraint", "constraint", "match":
		return MatchConstraint, nil
	}
	return Fixed, fmt.Errorf("unknown dimension behavior %q", s)
}

// MatchKind refines how a MatchConstraint dimension is computed.
type MatchKind int

const (
	// MatchSpread fills the space between the anchors.
	MatchSpread MatchKind = iota
	// MatchWrap uses the wrapped size, bounded by the space between the anchors.
	MatchWrap
	// MatchPercent takes a fraction of the container size.
	MatchPercent
	// MatchRatio derives the size from the other axis.
	MatchRatio
)

var matchNames = [...]string{"spread", "wrap", "percent", "ratio"}

func (m MatchKind) String() string {
	if int(m) < len(matchNames) {
		return matchNames[m]
	}
	return fmt.Sprintf("match(%d)", int(m))
}

// ParseMatchKind parses a match-constraint kind.
func ParseMatchKind(s string) (MatchKind, error) {
	n := normalize(s)
	if n == "" {
		return MatchSpread, nil
	}
	for i, name := range matchNames {
		if n == name {
			return MatchKind(i), nil
		}
	}
	return MatchSpread, fmt.Errorf("unknown match constraint %q", s)
}

// ChainStyle controls how free space is distributed in a chain.
type ChainStyle int

const (
	// ChainSpread puts equal gaps before, between and after the members.
	ChainSpread ChainStyle = iota
	// ChainSpreadInside pins the first and last members to the chain ends and
	// spreads the rest evenly between them.
	ChainSpreadInside
	// ChainPacked keeps the members together and places the group by the head's bias.
	ChainPacked
)

var chainNames = [...]string{"spread", "spread_inside", "packed"}

func (c ChainStyle) String() string {
	if int(c) < len(chainNames) {
		return chainNames[c]
	}
	return fmt.Sprintf("chain(%d)", int(c))
}

// ParseChainStyle parses a chain style name.
func ParseChainStyle(s string) (ChainStyle, error) {
	n := normalize(s)
	if n == "" {
		return ChainSpread, nil
	}
	for i, name := range chainNames {
		if n == name {
			return ChainStyle(i), nil
		}
	}
	return ChainSpread, fmt.Errorf("unknown chain style %q", s)
}

// Visibility of a box. Gone boxes take no space and their margins collapse.
type Visibility int

const (
	Visible Visibility = iota
	Invisible
	Gone
)

var visibilityNames = [...]string{"visible", "invisible", "gone"}

func (v Visibility) String() string {
	if int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return fmt.Sprintf("visibility(%d)", int(v))
}

// ParseVisibility parses a visibility name.
func ParseVisibility(s string) (Visibility, error) {
	n := normalize(s)
	if n == "" {
		return Visible, nil
	}
	for i, name := range visibilityNames {
		if n == name {
			return Visibility(i), nil
		}
	}
	return Visible, fmt.Errorf("unknown visibility %q", s)
}

// RatioSide says which dimension a ratio constrains.
type RatioSide int

const (
	// RatioUnknown lets the engine pick the side from the box behaviors.
	RatioUnknown RatioSide = iota
	// RatioWidth means the width is derived from the height.
	RatioWidth
	// RatioHeight means the height is derived from the width.
	RatioHeight
)

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
