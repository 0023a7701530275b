package scene

// Scene is a declarative description of one container and its children.
type Scene struct {
	Name       string      `toml:"name" yaml:"name" json:"name,omitempty"`
	Container  Container   `toml:"container" yaml:"container" json:"container"`
	Boxes      []Box       `toml:"box" yaml:"boxes" json:"boxes"`
	Guidelines []Guideline `toml:"guideline" yaml:"guidelines" json:"guidelines,omitempty"`
	Chains     []Chain     `toml:"chain" yaml:"chains" json:"chains,omitempty"`
}

// Container is the root box. Horizontal and Vertical take a dimension behavior
// name: "fixed" (default), "wrap" or "parent".
type Container struct {
	Width      int    `toml:"width" yaml:"width" json:"width"`
	Height     int    `toml:"height" yaml:"height" json:"height"`
	Horizontal string `toml:"horizontal" yaml:"horizontal" json:"horizontal,omitempty"`
	Vertical   string `toml:"vertical" yaml:"vertical" json:"vertical,omitempty"`
	RTL        bool   `toml:"rtl" yaml:"rtl" json:"rtl,omitempty"`
}

// Box is a child box. Anchors maps an anchor name ("left", "top", "right",
// "bottom", "baseline", "center") to its connection.
type Box struct {
	ID         string          `toml:"id" yaml:"id" json:"id"`
	X          int             `toml:"x" yaml:"x" json:"x,omitempty"`
	Y          int             `toml:"y" yaml:"y" json:"y,omitempty"`
	Width      int             `toml:"width" yaml:"width" json:"width,omitempty"`
	Height     int             `toml:"height" yaml:"height" json:"height,omitempty"`
	Baseline   *int            `toml:"baseline" yaml:"baseline" json:"baseline,omitempty"`
	Visibility string          `toml:"visibility" yaml:"visibility" json:"visibility,omitempty"`
	Ratio      string          `toml:"ratio" yaml:"ratio" json:"ratio,omitempty"`
	Content    *Content        `toml:"content" yaml:"content" json:"content,omitempty"`
	Horizontal Dimension       `toml:"horizontal" yaml:"horizontal" json:"horizontal,omitzero"`
	Vertical   Dimension       `toml:"vertical" yaml:"vertical" json:"vertical,omitzero"`
	Anchors    map[string]Link `toml:"anchors" yaml:"anchors" json:"anchors,omitempty"`
}

// Content is the intrinsic size a wrap-content box measures to. When Text is
// set, missing sizes and the baseline are taken from the text set in the
// built-in 7x13 monospace face.
type Content struct {
	Width    int    `toml:"width" yaml:"width" json:"width,omitempty"`
	Height   int    `toml:"height" yaml:"height" json:"height,omitempty"`
	Baseline *int   `toml:"baseline" yaml:"baseline" json:"baseline,omitempty"`
	Text     string `toml:"text" yaml:"text" json:"text,omitempty"`
}

// Dimension configures a box on one axis.
type Dimension struct {
	Behavior   string   `toml:"behavior" yaml:"behavior" json:"behavior,omitempty"`
	Match      string   `toml:"match" yaml:"match" json:"match,omitempty"`
	Min        int      `toml:"min" yaml:"min" json:"min,omitempty"`
	Max        int      `toml:"max" yaml:"max" json:"max,omitempty"`
	Percent    float64  `toml:"percent" yaml:"percent" json:"percent,omitempty"`
	Weight     *float64 `toml:"weight" yaml:"weight" json:"weight,omitempty"`
	Bias       *float64 `toml:"bias" yaml:"bias" json:"bias,omitempty"`
	ChainStyle string   `toml:"chain_style" yaml:"chain_style" json:"chain_style,omitempty"`
}

// Link connects an anchor to "<box>.<anchor>", where box may be "parent".
type Link struct {
	To         string `toml:"to" yaml:"to" json:"to"`
	Margin     int    `toml:"margin" yaml:"margin" json:"margin,omitempty"`
	GoneMargin *int   `toml:"gone_margin" yaml:"gone_margin" json:"gone_margin,omitempty"`
}

// Guideline is placed on Axis at Begin from the container start, End from the
// container end, or at Percent of the container size. Exactly one must be set.
type Guideline struct {
	ID      string   `toml:"id" yaml:"id" json:"id"`
	Axis    string   `toml:"axis" yaml:"axis" json:"axis"`
	Begin   *int     `toml:"begin" yaml:"begin" json:"begin,omitempty"`
	End     *int     `toml:"end" yaml:"end" json:"end,omitempty"`
	Percent *float64 `toml:"percent" yaml:"percent" json:"percent,omitempty"`
}

// Chain links Boxes, in order, into a chain on Axis bound to the container edges.
type Chain struct {
	Axis  string   `toml:"axis" yaml:"axis" json:"axis"`
	Style string   `toml:"style" yaml:"style" json:"style,omitempty"`
	Bias  *float64 `toml:"bias" yaml:"bias" json:"bias,omitempty"`
	Boxes []string `toml:"boxes" yaml:"boxes" json:"boxes"`
}
