package direct

import "github.com/matzehuels/anchorflow/pkg/widget"

// newChainRun builds the chain containing box on axis: it walks back to the head,
// then forward collecting members. The chain style and bias come from the head,
// or from the tail for right-to-left horizontal chains.
func (g *Graph) newChainRun(box *widget.Box, axis widget.Axis) *ChainRun {
	seen := map[*widget.Box]bool{box: true}
	head := box
	for p := head.PrevInChain(axis); p != nil && !seen[p]; p = head.PrevInChain(axis) {
		if _, ok := g.state[p]; !ok {
			break
		}
		seen[p] = true
		head = p
	}

	members := []*widget.Box{head}
	clear(seen)
	seen[head] = true
	for n := head.NextInChain(axis); n != nil && !seen[n]; n = n.NextInChain(axis) {
		if _, ok := g.state[n]; !ok {
			break
		}
		seen[n] = true
		members = append(members, n)
	}

	id := RunID(len(g.runs))
	c := &ChainRun{runBase: g.newBase(id, head, axis)}
	c.behavior = widget.MatchConstraint
	for _, m := range members {
		c.members = append(c.members, g.state[m].runs[axis])
		g.chains[chainKey{m, axis}] = id
	}
	if axis == widget.Horizontal && g.container.RTL && len(members) > 1 {
		c.box = members[len(members)-1]
	}
	c.style = c.box.ChainStyle[axis]
	g.runs = append(g.runs, c)
	return c
}

func (g *Graph) memberBox(id RunID) *widget.Box { return g.runs[id].base().box }

func (g *Graph) firstVisible(c *ChainRun) int {
	for i, m := range c.members {
		if !g.memberBox(m).IsGone() {
			return i
		}
	}
	return -1
}

func (g *Graph) lastVisible(c *ChainRun) int {
	for i := len(c.members) - 1; i >= 0; i-- {
		if !g.memberBox(c.members[i]).IsGone() {
			return i
		}
	}
	return -1
}

// applyChain wires the members, then binds the chain ends to the free anchors of
// the first and last member.
func (g *Graph) applyChain(c *ChainRun) {
	for _, m := range c.members {
		g.applyRun(m)
	}
	if len(c.members) == 0 {
		return
	}
	axis := c.axis
	first, last := g.memberBox(c.members[0]), g.memberBox(c.members[len(c.members)-1])

	startA, endA := first.StartOf(axis), last.EndOf(axis)
	startMargin, endMargin := startA.EffectiveMargin(), endA.EffectiveMargin()
	if i := g.firstVisible(c); i >= 0 {
		startMargin = g.memberBox(c.members[i]).StartOf(axis).EffectiveMargin()
	}
	if i := g.lastVisible(c); i >= 0 {
		endMargin = g.memberBox(c.members[i]).EndOf(axis).EffectiveMargin()
	}
	if t := g.targetOf(startA); t != NoNode {
		g.addTarget(c.start, t, startMargin)
	}
	if t := g.targetOf(endA); t != NoNode {
		g.addTarget(c.end, t, -endMargin)
	}
	g.nodes[c.start].updateDelegate = c.id
	g.nodes[c.end].updateDelegate = c.id

	// Fixed members measured later wake the chain up again.
	for _, m := range c.members {
		mr := g.runs[m].base()
		if mr.behavior != widget.MatchConstraint && !g.nodes[mr.dimension].Resolved {
			g.addDependency(mr.dimension, runDep(c.id))
		}
	}
}

// updateChain distributes the space between the chain ends once both are known.
func (g *Graph) updateChain(c *ChainRun) {
	if !g.nodes[c.start].Resolved || !g.nodes[c.end].Resolved {
		return
	}
	axis := c.axis
	rtl := axis == widget.Horizontal && g.container.RTL
	distance := g.nodes[c.end].Value - g.nodes[c.start].Value
	count := len(c.members)
	firstVisible, lastVisible := g.firstVisible(c), g.lastVisible(c)

	var (
		size       int
		numMatch   int
		numVisible int
		weights    float64
	)
	for pass := 0; pass < 2; pass++ {
		for i, m := range c.members {
			r := g.runs[m].base()
			if r.box.IsGone() {
				continue
			}
			numVisible++
			if i > 0 && i >= firstVisible {
				size += g.nodes[r.start].Margin
			}
			dim := g.nodes[r.dimension]
			dimension := dim.Value
			fixed := r.behavior != widget.MatchConstraint
			switch {
			case fixed:
				if !dim.Resolved {
					return
				}
			case r.match == widget.MatchWrap && pass == 0:
				fixed = true
				dimension = dim.WrapValue
				numMatch++
			case dim.Resolved:
				fixed = true
			}
			if fixed {
				size += dimension
			} else {
				numMatch++
				if w := r.box.Weight[axis]; w >= 0 {
					weights += w
				}
			}
			if i < count-1 && i < lastVisible {
				size -= g.nodes[r.end].Margin
			}
		}
		if size < distance || numMatch == 0 {
			break
		}
		size, numMatch, numVisible, weights = 0, 0, 0, 0
	}

	position := g.nodes[c.start].Value
	if rtl {
		position = g.nodes[c.end].Value
	}
	if size > distance {
		shift := round(float64(size-distance) / 2)
		if rtl {
			position += shift
		} else {
			position -= shift
		}
	}

	style := c.style
	if numMatch > 0 {
		share := round(float64(distance-size) / float64(numMatch))
		applied := 0
		for _, m := range c.members {
			r := g.runs[m].base()
			if r.box.IsGone() || r.behavior != widget.MatchConstraint || g.nodes[r.dimension].Resolved {
				continue
			}
			dimension := share
			if weights > 0 {
				dimension = round(r.box.Weight[axis] * float64(distance-size) / weights)
			}
			value := dimension
			if r.match == widget.MatchWrap {
				value = min(value, g.nodes[r.dimension].WrapValue)
			}
			value = limited(r.box, axis, value)
			if value != dimension {
				applied++
				dimension = value
			}
			g.resolve(r.dimension, dimension)
		}
		if applied > 0 {
			numMatch -= applied
			size = 0
			for i, m := range c.members {
				r := g.runs[m].base()
				if r.box.IsGone() {
					continue
				}
				if i > 0 && i >= firstVisible {
					size += g.nodes[r.start].Margin
				}
				size += g.nodes[r.dimension].Value
				if i < count-1 && i < lastVisible {
					size -= g.nodes[r.end].Margin
				}
			}
		}
		if style == widget.ChainPacked && applied == 0 {
			style = widget.ChainSpread
		}
	}
	if size > distance {
		style = widget.ChainPacked
	}
	if numVisible > 0 && numMatch == 0 && firstVisible == lastVisible {
		style = widget.ChainPacked
	}

	var gap int
	switch style {
	case widget.ChainSpreadInside:
		if numVisible > 1 {
			gap = (distance - size) / (numVisible - 1)
		} else if numVisible == 1 {
			gap = (distance - size) / 2
		}
	case widget.ChainSpread:
		gap = (distance - size) / (numVisible + 1)
	case widget.ChainPacked:
		bias := c.box.Bias[axis]
		if rtl {
			bias = 1 - bias
		}
		gap = round(float64(distance-size) * bias)
		if gap < 0 {
			gap = 0
		}
	}
	if numMatch > 0 {
		gap = 0
	}

	step := func(d int) {
		if rtl {
			position -= d
		} else {
			position += d
		}
	}
	if style == widget.ChainPacked {
		step(gap)
	}
	for i := range c.members {
		index := i
		if rtl {
			index = count - (i + 1)
		}
		r := g.runs[c.members[index]].base()
		if r.box.IsGone() {
			g.resolve(r.start, position)
			g.resolve(r.end, position)
			continue
		}
		switch {
		case style == widget.ChainSpread:
			step(gap)
		case style == widget.ChainSpreadInside && i > 0:
			step(gap)
		}
		if i > 0 && i >= firstVisible {
			step(g.nodes[r.start].Margin)
		}
		if rtl {
			g.resolve(r.end, position)
		} else {
			g.resolve(r.start, position)
		}

		dim := g.nodes[r.dimension]
		dimension := dim.Value
		if r.behavior == widget.MatchConstraint && r.match == widget.MatchWrap {
			if style == widget.ChainSpread {
				dimension = min(dimension, dim.WrapValue)
			} else {
				dimension = dim.WrapValue
			}
		}
		step(dimension)

		if rtl {
			g.resolve(r.start, position)
		} else {
			g.resolve(r.end, position)
		}
		if i < count-1 && i < lastVisible {
			step(-g.nodes[r.end].Margin)
		}
	}
}
