package scene

import (
	stderrors "errors"
	"slices"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/anchorflow/pkg/errors"
	"github.com/matzehuels/anchorflow/pkg/widget"
)

// ParentID names the container in anchor references.
const ParentID = errors.ReservedParentID

// Build turns the scene into a container ready for the engine, plus a measurer
// answering with each box's declared content size.
//
// Chains are wired before anchors, so an explicit anchor on a chain's head or tail
// replaces the container binding the chain made.
func (s *Scene) Build() (*widget.Container, widget.StaticMeasurer, error) {
	c := widget.NewContainer(ParentID, s.Container.Width, s.Container.Height)
	c.RTL = s.Container.RTL
	for axis, name := range [2]string{s.Container.Horizontal, s.Container.Vertical} {
		b, err := widget.ParseDimensionBehavior(name)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "container").In(ParentID)
		}
		if b == widget.MatchConstraint {
			return nil, nil, errors.New(errors.ErrCodeInvalidScene, "container cannot be match_constraint").In(ParentID)
		}
		c.Behavior[axis] = b
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidScene, "container size %dx%d is negative", c.Width, c.Height).In(ParentID)
	}

	measurer := widget.StaticMeasurer{}
	seen := map[string]bool{}
	claim := func(id string) error {
		if err := errors.ValidateBoxID(id); err != nil {
			return err
		}
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate id %q", id).In(id)
		}
		seen[id] = true
		return nil
	}

	for _, spec := range s.Boxes {
		if err := claim(spec.ID); err != nil {
			return nil, nil, err
		}
		b, err := buildBox(spec)
		if err != nil {
			return nil, nil, err
		}
		if spec.Content != nil {
			measurer[spec.ID] = intrinsic(*spec.Content)
		}
		c.Add(b)
	}

	for _, spec := range s.Guidelines {
		if err := claim(spec.ID); err != nil {
			return nil, nil, err
		}
		guide, err := buildGuide(spec)
		if err != nil {
			return nil, nil, err
		}
		c.Add(widget.NewGuideline(spec.ID, guide))
	}

	for i, spec := range s.Chains {
		if err := buildChain(c, i, spec); err != nil {
			return nil, nil, err
		}
	}

	for _, spec := range s.Boxes {
		if err := connect(c, c.Child(spec.ID), spec.Anchors); err != nil {
			return nil, nil, err
		}
	}
	return c, measurer, nil
}

// intrinsic resolves a content table to a measured size.
func intrinsic(c Content) widget.Intrinsic {
	in := widget.Intrinsic{Width: c.Width, Height: c.Height}
	if c.Text != "" {
		face := basicfont.Face7x13
		if in.Width == 0 {
			in.Width = font.MeasureString(face, c.Text).Round()
		}
		if in.Height == 0 {
			in.Height = face.Height
		}
		in.Baseline, in.HasBaseline = face.Ascent, true
	}
	if c.Baseline != nil {
		in.Baseline, in.HasBaseline = *c.Baseline, true
	}
	return in
}

func buildBox(spec Box) (*widget.Box, error) {
	if spec.Width < 0 || spec.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "box %q: negative size", spec.ID).In(spec.ID)
	}
	b := widget.NewBox(spec.ID, spec.Width, spec.Height)
	b.X, b.Y = spec.X, spec.Y
	if spec.Baseline != nil {
		b.Baseline, b.HasBaseline = *spec.Baseline, true
	}
	if spec.Content != nil && (spec.Content.Baseline != nil || spec.Content.Text != "") {
		b.HasBaseline = true
	}

	var err error
	if b.Visibility, err = widget.ParseVisibility(spec.Visibility); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "box %q", spec.ID).In(spec.ID)
	}
	if spec.Ratio != "" {
		if b.Ratio, b.RatioSide, err = widget.ParseRatio(spec.Ratio); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "box %q", spec.ID).In(spec.ID)
		}
	}
	for axis, d := range [2]Dimension{spec.Horizontal, spec.Vertical} {
		if err := applyDimension(b, widget.Axis(axis), d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "box %q %s", spec.ID, widget.Axis(axis)).In(spec.ID)
		}
	}
	return b, nil
}

func applyDimension(b *widget.Box, axis widget.Axis, d Dimension) error {
	var err error
	if b.Behavior[axis], err = widget.ParseDimensionBehavior(d.Behavior); err != nil {
		return err
	}
	if b.Match[axis], err = widget.ParseMatchKind(d.Match); err != nil {
		return err
	}
	if b.ChainStyle[axis], err = widget.ParseChainStyle(d.ChainStyle); err != nil {
		return err
	}
	if d.Min < 0 || d.Max < 0 {
		return stderrors.New("min and max must not be negative")
	}
	if d.Max > 0 && d.Min > d.Max {
		return stderrors.New("min is larger than max")
	}
	b.MatchMin[axis], b.MatchMax[axis] = d.Min, d.Max
	if d.Percent < 0 || d.Percent > 1 {
		return stderrors.New("percent must be within [0, 1]")
	}
	if d.Percent > 0 {
		b.MatchPercent[axis] = d.Percent
	}
	if d.Weight != nil {
		b.Weight[axis] = *d.Weight
	}
	if d.Bias != nil {
		if *d.Bias < 0 || *d.Bias > 1 {
			return stderrors.New("bias must be within [0, 1]")
		}
		b.Bias[axis] = *d.Bias
	}
	return nil
}

func buildGuide(spec Guideline) (widget.Guide, error) {
	axis, err := widget.ParseAxis(spec.Axis)
	if err != nil {
		return widget.Guide{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "guideline %q", spec.ID).In(spec.ID)
	}
	g := widget.Guide{Axis: axis}
	set := 0
	if spec.Begin != nil {
		g.Mode, g.Offset = widget.GuideBegin, *spec.Begin
		set++
	}
	if spec.End != nil {
		g.Mode, g.Offset = widget.GuideEnd, *spec.End
		set++
	}
	if spec.Percent != nil {
		if *spec.Percent < 0 || *spec.Percent > 1 {
			return widget.Guide{}, errors.New(errors.ErrCodeInvalidScene, "guideline %q: percent must be within [0, 1]", spec.ID).In(spec.ID)
		}
		g.Mode, g.Percent = widget.GuidePercent, *spec.Percent
		set++
	}
	if set != 1 {
		return widget.Guide{}, errors.New(errors.ErrCodeInvalidScene, "guideline %q needs exactly one of begin, end or percent", spec.ID).In(spec.ID)
	}
	return g, nil
}

func buildChain(c *widget.Container, index int, spec Chain) error {
	axis, err := widget.ParseAxis(spec.Axis)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "chain %d", index).In(chainSubject(index))
	}
	style, err := widget.ParseChainStyle(spec.Style)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "chain %d", index).In(chainSubject(index))
	}
	if len(spec.Boxes) < 2 {
		return errors.New(errors.ErrCodeInvalidScene, "chain %d needs at least two boxes", index).In(chainSubject(index))
	}
	boxes := make([]*widget.Box, 0, len(spec.Boxes))
	for _, id := range spec.Boxes {
		b := c.Child(id)
		if b == nil || b.IsGuideline() {
			return errors.New(errors.ErrCodeInvalidScene, "chain %d: unknown box %q", index, id).In(chainSubject(index))
		}
		if slices.Contains(boxes, b) {
			return errors.New(errors.ErrCodeInvalidScene, "chain %d: box %q listed twice", index, id).In(chainSubject(index))
		}
		boxes = append(boxes, b)
	}
	if err := widget.CreateChain(axis, style, boxes...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAnchor, err, "chain %d", index).In(chainSubject(index))
	}
	if spec.Bias != nil {
		boxes[0].Bias[axis] = *spec.Bias
	}
	return nil
}

// connect wires a box's anchors. Sides are processed in a fixed order so errors
// are reported deterministically.
func connect(c *widget.Container, b *widget.Box, anchors map[string]Link) error {
	sides := make([]string, 0, len(anchors))
	for side := range anchors {
		sides = append(sides, side)
	}
	slices.Sort(sides)

	for _, side := range sides {
		link := anchors[side]
		from, err := widget.ParseAnchorType(side)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAnchor, err, "box %q", b.ID).In(b.ID)
		}
		boxID, targetSide, err := errors.ValidateAnchorRef(link.To)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAnchor, err, "box %q %s", b.ID, side).In(b.ID)
		}
		target := &c.Box
		if boxID != ParentID {
			if target = c.Child(boxID); target == nil {
				return errors.New(errors.ErrCodeInvalidAnchor, "box %q %s: unknown target %q", b.ID, side, boxID).In(b.ID)
			}
		}
		to, err := widget.ParseAnchorType(targetSide)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAnchor, err, "box %q %s", b.ID, side).In(b.ID)
		}

		a := b.Anchor(from)
		if link.GoneMargin != nil {
			err = a.ConnectGone(target.Anchor(to), link.Margin, *link.GoneMargin)
		} else {
			err = a.Connect(target.Anchor(to), link.Margin)
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAnchor, err, "box %q: %s -> %s", b.ID, side, link.To).In(b.ID)
		}
	}
	return nil
}

func chainSubject(index int) string { return "chain " + strconv.Itoa(index) }
