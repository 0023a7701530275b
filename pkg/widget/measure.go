package widget

// MeasureSpec is a measurement request. Each axis is either Fixed with an exact size
// or WrapContent, in which case the size is only a hint.
type MeasureSpec struct {
	Horizontal DimensionBehavior
	Vertical   DimensionBehavior
	Width      int
	Height     int
}

// MeasureResult is what a Measurer reports back.
type MeasureResult struct {
	Width       int
	Height      int
	Baseline    int
	HasBaseline bool
}

// Measurer measures a box's content. It is implemented by the host.
type Measurer interface {
	Measure(b *Box, spec MeasureSpec) MeasureResult
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(b *Box, spec MeasureSpec) MeasureResult

// Measure calls f.
func (f MeasurerFunc) Measure(b *Box, spec MeasureSpec) MeasureResult { return f(b, spec) }

// Intrinsic is the content size of a box as reported by [StaticMeasurer].
type Intrinsic struct {
	Width       int
	Height      int
	Baseline    int
	HasBaseline bool
}

// StaticMeasurer answers wrap requests from a table of intrinsic sizes keyed by box ID.
// Fixed requests get the requested size. Boxes missing from the table wrap to their
// current size.
type StaticMeasurer map[string]Intrinsic

// Measure implements Measurer.
func (m StaticMeasurer) Measure(b *Box, spec MeasureSpec) MeasureResult {
	in, ok := m[b.ID]
	if !ok {
		in = Intrinsic{Width: b.Width, Height: b.Height, Baseline: b.Baseline, HasBaseline: b.HasBaseline}
	}
	res := MeasureResult{Width: in.Width, Height: in.Height, Baseline: in.Baseline, HasBaseline: in.HasBaseline}
	if spec.Horizontal == Fixed {
		res.Width = spec.Width
	}
	if spec.Vertical == Fixed {
		res.Height = spec.Height
	}
	return res
}
