package widget

import (
	"fmt"
	"strconv"
	"strings"
)

// CreateChain links boxes into a chain on axis: consecutive boxes point at each other,
// the first box's start anchor targets the container start and the last box's end
// anchor targets the container end. All boxes must share a container. The head box
// carries the chain style.
func CreateChain(axis Axis, style ChainStyle, boxes ...*Box) error {
	if len(boxes) == 0 {
		return nil
	}
	parent := boxes[0].parent
	if parent == nil {
		return fmt.Errorf("chain head %q has no container", boxes[0].ID)
	}
	for _, b := range boxes[1:] {
		if b.parent != parent {
			return fmt.Errorf("chain member %q is not in container %q", b.ID, parent.ID)
		}
	}
	if err := boxes[0].StartOf(axis).Connect(parent.StartOf(axis), 0); err != nil {
		return err
	}
	for i := 0; i+1 < len(boxes); i++ {
		a, b := boxes[i], boxes[i+1]
		if err := a.EndOf(axis).Connect(b.StartOf(axis), 0); err != nil {
			return err
		}
		if err := b.StartOf(axis).Connect(a.EndOf(axis), 0); err != nil {
			return err
		}
	}
	if err := boxes[len(boxes)-1].EndOf(axis).Connect(parent.EndOf(axis), 0); err != nil {
		return err
	}
	boxes[0].ChainStyle[axis] = style
	return nil
}

// ParseRatio parses a ratio such as "16:9", "1.5", "W,16:9" or "H,16:9" and returns
// width / height with the constrained side. A "W" prefix derives the width from the
// height, "H" the height from the width.
func ParseRatio(s string) (float64, RatioSide, error) {
	side := RatioUnknown
	if len(s) > 2 && s[1] == ',' {
		switch s[0] {
		case 'W', 'w':
			side = RatioWidth
		case 'H', 'h':
			side = RatioHeight
		default:
			return 0, side, fmt.Errorf("invalid ratio side in %q", s)
		}
		s = s[2:]
	}
	if num, den, ok := strings.Cut(s, ":"); ok {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
			return 0, side, fmt.Errorf("invalid ratio %q", s)
		}
		return n / d, side, nil
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || r <= 0 {
		return 0, side, fmt.Errorf("invalid ratio %q", s)
	}
	return r, side, nil
}
