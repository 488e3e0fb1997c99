package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/wm"
)

// Option configures a Terminal.
type Option func(*Terminal)

// WithCellSize sets the layout pixels per cell.
func WithCellSize(w, h int) Option {
	return func(t *Terminal) {
		t.tr = NewTranslator(w, h)
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(t *Terminal) {
		t.log = logging.OrNull(log).WithComponent("backend")
	}
}

// Terminal drives a tcell screen.
type Terminal struct {
	screen tcell.Screen
	tr     *Translator
	log    *logging.Logger
	events chan any

	mu     sync.Mutex
	closed bool
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen: screen,
		tr:     NewTranslator(DefaultCellWidth, DefaultCellHeight),
		log:    logging.Null,
		events: make(chan any, 64),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	cols, rows := t.screen.Size()
	t.tr.SetSize(cols, rows)
	w, h := t.tr.LayoutSize()
	t.log.Debug("screen %dx%d cells, layout %dx%d", cols, rows, w, h)
	return nil
}

// Size returns the layout size in pixels.
func (t *Terminal) Size() (int, int) {
	return t.tr.LayoutSize()
}

// Events delivers device events (seat and key event values), Resize and
// Quit. It is closed when polling stops.
func (t *Terminal) Events() <-chan any {
	return t.events
}

// Start polls the screen on its own goroutine until ctx ends or the
// screen is shut down.
func (t *Terminal) Start(ctx context.Context) {
	go t.poll(ctx)
}

func (t *Terminal) poll(ctx context.Context) {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		for _, out := range t.tr.Translate(ev) {
			select {
			case t.events <- out:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Shutdown restores the terminal. Polling stops.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

var styles = map[ShapeKind][2]tcell.Style{
	ShapeSurface:  {tcell.StyleDefault.Background(tcell.ColorDarkSlateGray), tcell.StyleDefault.Background(tcell.ColorTeal)},
	ShapeBorder:   {tcell.StyleDefault.Background(tcell.ColorGray), tcell.StyleDefault.Background(tcell.ColorNavy)},
	ShapeTitlebar: {tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack), tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)},
	ShapeButton:   {tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack), tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)},
	ShapeLayer:    {tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite), tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)},
	ShapeMenu:     {tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack), tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)},
	ShapeMenuItem: {tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack), tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)},
	ShapeSwitcher: {tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite), tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)},
}

var desktopStyle = tcell.StyleDefault.Background(tcell.ColorBlack)

// Draw paints a frame.
func (t *Terminal) Draw(sc Scene) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.screen.Fill(' ', desktopStyle)
	for _, sh := range sc.Shapes {
		t.drawShape(sh)
	}
	cols, rows := t.screen.Size()
	if sc.Status != "" && rows > 0 {
		t.text(0, rows-1, cols, sc.Status, tcell.StyleDefault.Reverse(true))
	}
	if sc.CursorVisible {
		t.screen.ShowCursor(int(sc.CursorX)/t.tr.cellW, int(sc.CursorY)/t.tr.cellH)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

// cells converts a pixel box to an inclusive cell rectangle.
func (t *Terminal) cells(b wm.Box) (x0, y0, x1, y1 int) {
	x0 = floorDiv(b.X, t.tr.cellW)
	y0 = floorDiv(b.Y, t.tr.cellH)
	x1 = floorDiv(b.X+b.Width-1, t.tr.cellW)
	y1 = floorDiv(b.Y+b.Height-1, t.tr.cellH)
	return
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func (t *Terminal) drawShape(sh Shape) {
	if sh.Box.Empty() {
		return
	}
	x0, y0, x1, y1 := t.cells(sh.Box)
	if sh.Kind == ShapePreview {
		st := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		for x := x0; x <= x1; x++ {
			t.screen.SetContent(x, y0, tcell.RuneHLine, nil, st)
			t.screen.SetContent(x, y1, tcell.RuneHLine, nil, st)
		}
		for y := y0; y <= y1; y++ {
			t.screen.SetContent(x0, y, tcell.RuneVLine, nil, st)
			t.screen.SetContent(x1, y, tcell.RuneVLine, nil, st)
		}
		return
	}
	pair := styles[sh.Kind]
	st := pair[0]
	if sh.Active {
		st = pair[1]
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t.screen.SetContent(x, y, ' ', nil, st)
		}
	}
	if sh.Label != "" {
		t.text(x0, y0, x1-x0+1, sh.Label, st)
	}
}

// text writes s at (x, y), cut to width cells.
func (t *Terminal) text(x, y, width int, s string, st tcell.Style) {
	i := 0
	for _, r := range s {
		if i >= width {
			return
		}
		t.screen.SetContent(x+i, y, r, nil, st)
		i++
	}
}
