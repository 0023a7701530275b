package direct

import "github.com/matzehuels/anchorflow/pkg/widget"

// basicMeasure normalizes the sizing kinds of every child and measures the boxes
// whose size doesn't depend on constraints. Wrap-constrained boxes get their
// content size recorded as a wrap value.
func (g *Graph) basicMeasure() {
	c := g.container
	rootH, rootV := g.rootBehavior[widget.Horizontal], g.rootBehavior[widget.Vertical]
	rootSized := func(b widget.DimensionBehavior) bool {
		return b == widget.Fixed || b == widget.MatchParent
	}

	for _, b := range c.Children() {
		st := g.stateOf(b)
		if b.IsGone() || b.IsGuideline() {
			st.measured = true
			continue
		}

		horiz, vert := b.Behavior[widget.Horizontal], b.Behavior[widget.Vertical]
		mh, mv := b.Match[widget.Horizontal], b.Match[widget.Vertical]
		if b.MatchPercent[widget.Horizontal] < 1 && horiz == widget.MatchConstraint {
			mh = widget.MatchPercent
		}
		if b.MatchPercent[widget.Vertical] < 1 && vert == widget.MatchConstraint {
			mv = widget.MatchPercent
		}
		if b.Ratio > 0 {
			switch {
			case horiz == widget.MatchConstraint && (vert == widget.WrapContent || vert == widget.Fixed):
				mh = widget.MatchRatio
			case vert == widget.MatchConstraint && (horiz == widget.WrapContent || horiz == widget.Fixed):
				mv = widget.MatchRatio
			case horiz == widget.MatchConstraint && vert == widget.MatchConstraint:
				if mh == widget.MatchSpread {
					mh = widget.MatchRatio
				}
				if mv == widget.MatchSpread {
					mv = widget.MatchRatio
				}
			}
		}
		if horiz == widget.MatchConstraint && mh == widget.MatchWrap &&
			(!b.Anchor(widget.Left).IsConnected() || !b.Anchor(widget.Right).IsConnected()) {
			horiz = widget.WrapContent
		}
		if vert == widget.MatchConstraint && mv == widget.MatchWrap &&
			(!b.Anchor(widget.Top).IsConnected() || !b.Anchor(widget.Bottom).IsConnected()) {
			vert = widget.WrapContent
		}
		st.behavior = [2]widget.DimensionBehavior{horiz, vert}
		st.match = [2]widget.MatchKind{mh, mv}

		if horiz != widget.MatchConstraint && vert != widget.MatchConstraint {
			width, height := b.Width, b.Height
			if horiz == widget.MatchParent {
				width = c.Width - b.Anchor(widget.Left).Margin - b.Anchor(widget.Right).Margin
				horiz = widget.Fixed
			}
			if vert == widget.MatchParent {
				height = c.Height - b.Anchor(widget.Top).Margin - b.Anchor(widget.Bottom).Margin
				vert = widget.Fixed
			}
			g.measure(b, horiz, width, vert, height)
			st.measured = true
			continue
		}

		if horiz == widget.MatchConstraint && (vert == widget.WrapContent || vert == widget.Fixed) {
			switch mh {
			case widget.MatchRatio:
				if vert == widget.WrapContent {
					g.measure(b, widget.WrapContent, 0, widget.WrapContent, 0)
				}
				height := b.Height
				g.measure(b, widget.Fixed, round(float64(height)*b.Ratio), widget.Fixed, height)
				st.measured = true
				continue
			case widget.MatchWrap:
				g.measure(b, widget.WrapContent, 0, vert, b.Height)
				st.wrap[widget.Horizontal] = b.Width
				continue
			case widget.MatchPercent:
				if rootSized(rootH) {
					width := round(b.MatchPercent[widget.Horizontal] * float64(c.Width))
					g.measure(b, widget.Fixed, width, vert, b.Height)
					st.measured = true
					continue
				}
			default:
				if !b.Anchor(widget.Left).IsConnected() || !b.Anchor(widget.Right).IsConnected() {
					g.measure(b, widget.WrapContent, 0, vert, b.Height)
					st.measured = true
					continue
				}
			}
		}

		if vert == widget.MatchConstraint && (horiz == widget.WrapContent || horiz == widget.Fixed) {
			switch mv {
			case widget.MatchRatio:
				if horiz == widget.WrapContent {
					g.measure(b, widget.WrapContent, 0, widget.WrapContent, 0)
				}
				width := b.Width
				g.measure(b, widget.Fixed, width, widget.Fixed, round(float64(width)/b.Ratio))
				st.measured = true
				continue
			case widget.MatchWrap:
				g.measure(b, horiz, b.Width, widget.WrapContent, 0)
				st.wrap[widget.Vertical] = b.Height
				continue
			case widget.MatchPercent:
				if rootSized(rootV) {
					height := round(b.MatchPercent[widget.Vertical] * float64(c.Height))
					g.measure(b, horiz, b.Width, widget.Fixed, height)
					st.measured = true
					continue
				}
			default:
				if !b.Anchor(widget.Top).IsConnected() || !b.Anchor(widget.Bottom).IsConnected() {
					g.measure(b, horiz, b.Width, widget.WrapContent, 0)
					st.measured = true
					continue
				}
			}
		}

		if horiz == widget.MatchConstraint && vert == widget.MatchConstraint {
			switch {
			case mh == widget.MatchWrap || mv == widget.MatchWrap:
				g.measure(b, widget.WrapContent, 0, widget.WrapContent, 0)
				st.wrap = [2]int{b.Width, b.Height}
			case mh == widget.MatchPercent && mv == widget.MatchPercent &&
				rootH == widget.Fixed && rootV == widget.Fixed:
				width := round(b.MatchPercent[widget.Horizontal] * float64(c.Width))
				height := round(b.MatchPercent[widget.Vertical] * float64(c.Height))
				g.measure(b, widget.Fixed, width, widget.Fixed, height)
				st.measured = true
			}
		}
	}
}

// measureBoxes measures the boxes that became measurable because one or both of
// their dimensions resolved.
func (g *Graph) measureBoxes() {
	for _, b := range g.container.Children() {
		st := g.state[b]
		if st == nil || st.measured {
			continue
		}
		h, v := g.boxRun(b, widget.Horizontal), g.boxRun(b, widget.Vertical)
		hd, vd := &g.nodes[h.dimension], &g.nodes[v.dimension]
		horiz, vert := st.behavior[widget.Horizontal], st.behavior[widget.Vertical]
		horizWrap := horiz == widget.WrapContent ||
			(horiz == widget.MatchConstraint && st.match[widget.Horizontal] == widget.MatchWrap)
		vertWrap := vert == widget.WrapContent ||
			(vert == widget.MatchConstraint && st.match[widget.Vertical] == widget.MatchWrap)

		switch {
		case hd.Resolved && vd.Resolved:
			g.measure(b, widget.Fixed, hd.Value, widget.Fixed, vd.Value)
			st.measured = true
		case hd.Resolved && vertWrap:
			g.measure(b, widget.Fixed, hd.Value, widget.WrapContent, vd.Value)
			if vert == widget.MatchConstraint {
				st.wrap[widget.Vertical] = b.Height
				g.nodes[v.dimension].WrapValue = b.Height
			} else {
				g.resolve(v.dimension, b.Height)
				st.measured = true
			}
		case vd.Resolved && horizWrap:
			g.measure(b, widget.WrapContent, hd.Value, widget.Fixed, vd.Value)
			if horiz == widget.MatchConstraint {
				st.wrap[widget.Horizontal] = b.Width
				g.nodes[h.dimension].WrapValue = b.Width
			} else {
				g.resolve(h.dimension, b.Width)
				st.measured = true
			}
		}
		if st.measured && v.baselineDimension != NoNode {
			g.resolve(v.baselineDimension, b.Baseline)
		}
	}
}

// measure asks the measurer for b's size and stores the result on the box.
func (g *Graph) measure(b *widget.Box, horiz widget.DimensionBehavior, width int, vert widget.DimensionBehavior, height int) {
	res := g.measurer.Measure(b, widget.MeasureSpec{
		Horizontal: horiz,
		Vertical:   vert,
		Width:      width,
		Height:     height,
	})
	b.Width, b.Height = res.Width, res.Height
	b.Baseline, b.HasBaseline = res.Baseline, res.HasBaseline
}
