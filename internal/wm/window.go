package wm

// Axis is a set of maximized axes.
type Axis uint8

const (
	// AxisNone means the window is not maximized.
	AxisNone Axis = 0
	// AxisHorizontal maximizes width only.
	AxisHorizontal Axis = 1 << 0
	// AxisVertical maximizes height only.
	AxisVertical Axis = 1 << 1
	// AxisBoth maximizes in both directions.
	AxisBoth = AxisHorizontal | AxisVertical
)

// String returns the configuration name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	case AxisBoth:
		return "both"
	default:
		return "none"
	}
}

// ParseAxis parses an axis name. The empty string means both.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "", "both":
		return AxisBoth, true
	case "horizontal":
		return AxisHorizontal, true
	case "vertical":
		return AxisVertical, true
	default:
		return AxisNone, false
	}
}

// Decorations selects how much server-side decoration a window gets.
type Decorations uint8

const (
	// DecorFull draws border and titlebar.
	DecorFull Decorations = iota
	// DecorBorder draws the border only.
	DecorBorder
	// DecorNone draws nothing; the client decorates itself.
	DecorNone
)

// String returns the configuration name.
func (d Decorations) String() string {
	switch d {
	case DecorBorder:
		return "border"
	case DecorNone:
		return "none"
	default:
		return "full"
	}
}

// ParseDecorations parses a decoration mode name.
func ParseDecorations(s string) (Decorations, bool) {
	switch s {
	case "full":
		return DecorFull, true
	case "border":
		return DecorBorder, true
	case "none":
		return DecorNone, true
	default:
		return DecorFull, false
	}
}

// SurfaceID identifies a client wire surface.
type SurfaceID uint64

// Window is a managed toplevel. Fields are owned by the Manager; callers
// read them and mutate through Manager methods.
type Window struct {
	ref Ref

	AppID string
	Title string

	// Surface is the main client surface.
	Surface SurfaceID

	// Geometry is the content box in layout coordinates.
	Geometry Box
	// Natural is the floating geometry restored on unmaximize/unsnap.
	Natural Box

	Maximized  Axis
	Tiled      Direction
	Region     string
	Fullscreen bool
	Minimized  bool
	Shaded     bool

	AlwaysOnTop    bool
	AlwaysOnBottom bool
	Omnipresent    bool

	Decorations Decorations

	// CSDOffsetX/Y is the invisible client-side border around the content.
	CSDOffsetX, CSDOffsetY int

	MinWidth, MinHeight int

	Workspace *Workspace
	Output    *Output

	// InhibitsKeybinds is set while the client holds a shortcuts inhibitor.
	InhibitsKeybinds bool

	// NoFocus marks windows that never take keyboard focus.
	NoFocus bool

	// Tearing allows tearing page flips for this window.
	Tearing bool
}

// Ref returns the window handle.
func (w *Window) Ref() Ref {
	return w.ref
}

// Floating reports whether the window is neither maximized, tiled,
// region-snapped nor fullscreen.
func (w *Window) Floating() bool {
	return w.Maximized == AxisNone && w.Tiled == DirNone && w.Region == "" && !w.Fullscreen
}

// Mapped reports whether the window is visible on its workspace.
func (w *Window) Mapped() bool {
	return !w.Minimized
}

// HasTitlebar reports whether server-side titlebar decoration is drawn.
func (w *Window) HasTitlebar() bool {
	return w.Decorations == DecorFull && !w.Fullscreen
}

// HasBorder reports whether a server-side border is drawn.
func (w *Window) HasBorder() bool {
	return w.Decorations != DecorNone && !w.Fullscreen
}

// Output is a physical or virtual display.
type Output struct {
	Name string
	// Box is the output's layout box.
	Box Box
	// Usable is the area not reserved by panels.
	Usable Box
	// RefreshMHz is the refresh rate in millihertz; 0 when unknown.
	RefreshMHz int
	Scale      float64
	Virtual    bool

	// Magnify is the zoom factor; 1 means no magnification.
	Magnify   float64
	Magnified bool
}

// Workspace is a named virtual desktop.
type Workspace struct {
	Name  string
	Index int
}
