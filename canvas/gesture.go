package canvas

import "armario-outfits/models"

// DragState is the state of a single drag gesture
type DragState int

const (
	Idle DragState = iota
	Dragging
	Released
)

func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// EventKind identifies a gesture event
type EventKind int

const (
	EventMove EventKind = iota
	EventRelease
	EventCancel
)

// DragEvent is one event of a pointer gesture.
// For EventMove, DX and DY are the cumulative delta since the gesture started.
type DragEvent struct {
	Kind EventKind
	DX   float64
	DY   float64
}

// gesture holds the baseline and cumulative delta shared by placed-item drags
// and picker drags
type gesture struct {
	state    DragState
	baseline models.Point
	delta    models.Point
}

func (g *gesture) begin(baseline models.Point) error {
	if g.state == Dragging {
		return ErrDragInProgress
	}
	g.state = Dragging
	g.baseline = baseline
	g.delta = models.Point{}
	return nil
}

func (g *gesture) move(dx, dy float64) error {
	if g.state != Dragging {
		return ErrNotDragging
	}
	g.delta = models.Point{X: dx, Y: dy}
	return nil
}

func (g *gesture) live() models.Point {
	return models.Point{X: g.baseline.X + g.delta.X, Y: g.baseline.Y + g.delta.Y}
}

// release moves the gesture to Released and returns baseline + total delta
func (g *gesture) release() (models.Point, error) {
	if g.state != Dragging {
		return models.Point{}, ErrNotDragging
	}
	g.state = Released
	return g.live(), nil
}

func (g *gesture) reset() {
	g.state = Idle
	g.baseline = models.Point{}
	g.delta = models.Point{}
}
