package scratch

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle means no grid is allocated: nothing has been drawn yet, or
	// the surface has no area.
	StateIdle State = iota

	// StateReady means a mask is (being) shown and progress is tracked.
	StateReady

	// StateScratched means the clear threshold was crossed and the surface
	// has been wiped. Only a reset leaves this state.
	StateScratched
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateScratched:
		return "scratched"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session drives one scratch card: it turns pointer samples into cleared
// surface regions, estimates the erased fraction on a CoverageGrid and
// reports progress to an EventSink.
//
// A Session owns its grid exclusively and must not be used concurrently.
// Hosts deliver pointer samples, progress checks and mask loads from a
// single goroutine; see PaintMask for loading masks asynchronously.
type Session struct {
	surface  Surface
	cfg      Config
	sink     EventSink
	loader   ImageLoader
	disabled bool

	grid      *CoverageGrid
	eraser    Eraser
	estimator Estimator

	state     State
	lastPoint Point
	hasLast   bool
}

// NewSession creates a session drawing on surface. The session starts
// Idle; call Reset, SetImage or LoadMask to allocate the grid.
func NewSession(surface Surface, opts ...SessionOption) (*Session, error) {
	if surface == nil {
		return nil, errors.New("scratch: nil surface")
	}
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		surface:  surface,
		sink:     o.sink,
		loader:   o.loader,
		disabled: o.disabled,
	}
	s.applyConfig(o.config)
	return s, nil
}

func (s *Session) applyConfig(cfg Config) {
	s.cfg = cfg
	s.grid = NewCoverageGrid(cfg.ErasePointRadius, cfg.ErasingCellScale)
	s.eraser = Eraser{Radius: cfg.ErasePointRadius, Gap: cfg.InterpolationGap}
	s.estimator = Estimator{grid: s.grid, radius: cfg.ErasePointRadius}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Config returns the active configuration.
func (s *Session) Config() Config { return s.cfg }

// Grid returns the coverage grid. Callers must not mark it.
func (s *Session) Grid() *CoverageGrid { return s.grid }

// Surface returns the surface the session draws on.
func (s *Session) Surface() Surface { return s.surface }

// Disabled reports whether pointer input is ignored.
func (s *Session) Disabled() bool { return s.disabled }

// SetDisabled turns pointer input and progress checks off or on.
func (s *Session) SetDisabled(disabled bool) { s.disabled = disabled }

// SetConfig validates and applies cfg. When the brush radius or cell scale
// change, the grid is rebuilt empty for the current surface; the surface
// itself is left alone. A Scratched session stays Scratched until a mask or
// image is drawn, so it never reports a second clear for the same card. The
// stroke in progress is always ended.
func (s *Session) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	rebuild := cfg.ErasePointRadius != s.cfg.ErasePointRadius ||
		cfg.ErasingCellScale != s.cfg.ErasingCellScale
	if !rebuild {
		s.cfg = cfg
		s.eraser = Eraser{Radius: cfg.ErasePointRadius, Gap: cfg.InterpolationGap}
		s.hasLast = false
		return nil
	}
	s.applyConfig(cfg)
	s.hasLast = false
	prev := s.state
	if prev == StateIdle {
		return nil
	}
	if err := s.resetGrid(); err != nil {
		return err
	}
	if prev == StateScratched {
		s.state = StateScratched
	}
	return nil
}

// SetSurface switches to a new surface, for example after the host
// resized, and resets onto it. The mask must be drawn again.
func (s *Session) SetSurface(surface Surface) error {
	if surface == nil {
		return errors.New("scratch: nil surface")
	}
	s.surface = surface
	return s.Reset()
}

// Reset wipes the surface and rebuilds an empty grid sized for it. The
// session becomes Ready, or stays Idle with ErrInvalidDimension if the
// surface has no area.
func (s *Session) Reset() error {
	s.hasLast = false
	s.surface.ClearRect(0, 0, float64(s.surface.Width()), float64(s.surface.Height()))
	return s.resetGrid()
}

func (s *Session) resetGrid() error {
	cols, rows := gridSize(s.surface.Width(), s.surface.Height(), s.cfg)
	if err := s.grid.Reset(cols, rows); err != nil {
		s.grid.drop()
		s.state = StateIdle
		return fmt.Errorf("scratch: reset %dx%d surface: %w", s.surface.Width(), s.surface.Height(), err)
	}
	s.state = StateReady
	Logger().Debug("scratch: coverage grid reset",
		"cols", cols, "rows", rows,
		"width", s.surface.Width(), "height", s.surface.Height())
	return nil
}

// SetImage resets the session and draws img at its natural size in the
// top-left corner. A nil img leaves the surface blank, like Reset.
func (s *Session) SetImage(img image.Image) error {
	if err := s.Reset(); err != nil {
		return err
	}
	if img == nil {
		return nil
	}
	b := img.Bounds()
	s.surface.DrawImage(img, 0, 0, float64(b.Dx()), float64(b.Dy()))
	return nil
}

// LoadMask resets the session, then fetches source with the session's
// ImageLoader and stretches it over the surface. An empty source leaves the
// surface blank. A failed load is returned as *LoadError; the grid is
// already rebuilt by then, so the session stays usable on a blank surface.
//
// LoadMask blocks while fetching. Hosts that cannot block call Reset,
// fetch on their own goroutine and hand the result to PaintMask.
func (s *Session) LoadMask(ctx context.Context, source string) error {
	if err := s.Reset(); err != nil {
		return err
	}
	if source == "" {
		return nil
	}
	img, err := s.loader.Load(ctx, source)
	if err != nil {
		var le *LoadError
		if !errors.As(err, &le) {
			le = &LoadError{Source: source, Err: err}
		}
		Logger().Warn("scratch: mask load failed", "source", source, "err", le.Err)
		return le
	}
	s.PaintMask(img)
	return nil
}

// PaintMask stretches img over the whole surface without touching the grid
// or the session state. Samples taken since the last reset stay counted,
// though the pixels they cleared are painted over.
//
// Concurrent loads are not cancelled: when several fetches are in flight,
// whichever result reaches PaintMask last is what the user sees.
func (s *Session) PaintMask(img image.Image) {
	s.surface.DrawImage(img, 0, 0, float64(s.surface.Width()), float64(s.surface.Height()))
}

// OnPointerSample erases the brush footprint at p and the gap from the
// previous sample of the current stroke, then records p as that previous
// sample. Samples are snapped to whole pixels. Samples are ignored while
// disabled or Idle; coordinates outside the surface are clipped, never
// rejected.
func (s *Session) OnPointerSample(p Point) {
	if s.disabled || s.state == StateIdle {
		return
	}
	p = p.Round()

	s.eraser.Bounds = Rect{W: float64(s.surface.Width()), H: float64(s.surface.Height())}
	s.eraser.Disk(p, s.clear)
	if s.hasLast {
		n := s.eraser.Segment(s.lastPoint, p, s.clearAndMark)
		if n > 1 {
			Logger().Debug("scratch: interpolated segment",
				"from", s.lastPoint, "to", p, "rects", n)
		}
	}
	s.estimator.Stamp(p)

	s.lastPoint = p
	s.hasLast = true
}

func (s *Session) clear(r Rect) {
	s.surface.ClearRect(r.X, r.Y, r.W, r.H)
}

func (s *Session) clearAndMark(r Rect) {
	s.surface.ClearRect(r.X, r.Y, r.W, r.H)
	s.grid.MarkRect(Point{X: r.X, Y: r.Y}, r.W, r.H)
}

// CheckProgress ends the current stroke and, unless disabled, Idle or
// already Scratched, emits EventScratch with the erased fraction. When the
// fraction reaches the clear threshold the whole surface is wiped, the
// session becomes Scratched and EventCleared is emitted once.
func (s *Session) CheckProgress() {
	s.hasLast = false
	if s.disabled || s.state != StateReady {
		return
	}
	ratio, err := s.grid.ErasedRatio()
	if err != nil {
		return
	}

	s.sink.Emit(Event{Kind: EventScratch, ScratchedPercentage: ratio})
	if ratio < s.cfg.ClearThreshold {
		return
	}

	s.surface.ClearRect(0, 0, float64(s.surface.Width()), float64(s.surface.Height()))
	s.state = StateScratched
	Logger().Info("scratch: surface cleared",
		"ratio", ratio, "threshold", s.cfg.ClearThreshold)
	s.sink.Emit(Event{Kind: EventCleared, ScratchedPercentage: ratio})
}

// ErasedRatio returns the grid's current erased fraction, or ErrEmptyGrid
// while Idle.
func (s *Session) ErasedRatio() (float64, error) {
	return s.grid.ErasedRatio()
}

// HasStroke reports whether a previous sample is recorded, meaning the next
// sample will be joined to it.
func (s *Session) HasStroke() bool { return s.hasLast }
