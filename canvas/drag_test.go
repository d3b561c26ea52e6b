package canvas

import (
	"context"
	"errors"
	"testing"
	"time"

	"armario-outfits/models"
)

// countingSurface records writes so tests can assert that cancelled drags never write
type countingSurface struct {
	*Surface
	writes int
}

func (c *countingSurface) UpdateItemPosition(id string, x, y float64) (models.PlacedItem, error) {
	c.writes++
	return c.Surface.UpdateItemPosition(id, x, y)
}

func newDragFixture(t *testing.T) (*countingSurface, models.PlacedItem) {
	t.Helper()
	s := &countingSurface{Surface: newTestSurface(390, 422)}
	item, err := s.AddItem(miniDress, models.Point{X: 130, Y: 130})
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	return s, item
}

func TestDragController_Lifecycle(t *testing.T) {
	s, item := newDragFixture(t)
	c := NewDragController(item.InstanceID, s, DefaultDragScale)

	if c.State() != Idle || c.Scale() != 1 {
		t.Fatalf("new controller state = %v scale %v", c.State(), c.Scale())
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if c.State() != Dragging || c.Scale() != DefaultDragScale {
		t.Fatalf("after Start state = %v scale %v", c.State(), c.Scale())
	}

	live, err := c.Move(15, -20)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if live != (models.Point{X: 115, Y: 80}) {
		t.Fatalf("live = %v, want (115, 80)", live)
	}
	live, _ = c.Move(40, 25)
	if live != (models.Point{X: 140, Y: 125}) {
		t.Fatalf("cumulative live = %v, want (140, 125)", live)
	}
	if s.writes != 0 {
		t.Fatalf("moves wrote to the surface %d times", s.writes)
	}
	if committed, _ := s.Item(item.InstanceID); committed.X != 100 || committed.Y != 100 {
		t.Fatalf("committed position changed during drag: %+v", committed)
	}

	released, err := c.Release()
	if err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if released.X != 140 || released.Y != 125 || s.writes != 1 {
		t.Fatalf("released = %+v writes=%d", released, s.writes)
	}
	if c.State() != Idle || c.Live() != (models.Point{X: 140, Y: 125}) {
		t.Fatalf("after release state = %v live = %v", c.State(), c.Live())
	}
}

func TestDragController_ReleaseClamps(t *testing.T) {
	tests := []struct {
		name         string
		dx, dy       float64
		wantX, wantY float64
	}{
		{name: "huge positive", dx: 1e6, dy: 1e6, wantX: 320, wantY: 352},
		{name: "huge negative", dx: -1e6, dy: -1e6, wantX: 10, wantY: 10},
		{name: "mixed", dx: -95, dy: 260, wantX: 10, wantY: 352},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, item := newDragFixture(t)
			c := NewDragController(item.InstanceID, s, 0)
			c.Start()
			c.Move(tt.dx, tt.dy)
			got, err := c.Release()
			if err != nil {
				t.Fatalf("Release returned error: %v", err)
			}
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Fatalf("released at (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDragController_CancelNeverWrites(t *testing.T) {
	s, item := newDragFixture(t)
	c := NewDragController(item.InstanceID, s, DefaultDragScale)
	c.Start()
	c.Move(50, 50)
	c.Cancel()

	if s.writes != 0 {
		t.Fatalf("Cancel wrote to the surface")
	}
	if c.State() != Idle || c.Live() != item.Position() || c.Scale() != 1 {
		t.Fatalf("after cancel state=%v live=%v scale=%v", c.State(), c.Live(), c.Scale())
	}
	if _, err := c.Release(); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("Release after cancel err = %v, want ErrNotDragging", err)
	}
}

func TestDragController_RefreshAfterResize(t *testing.T) {
	s, item := newDragFixture(t)
	idle := NewDragController(item.InstanceID, s, 1)
	if err := s.Resize(150, 150); err != nil {
		t.Fatalf("Resize returned error: %v", err)
	}
	if idle.Live() != item.Position() {
		t.Fatalf("live before refresh = %v, want stale %v", idle.Live(), item.Position())
	}
	idle.Refresh()
	if want := (models.Point{X: 80, Y: 80}); idle.Live() != want {
		t.Fatalf("live after refresh = %v, want %v", idle.Live(), want)
	}

	dragging := NewDragController(item.InstanceID, s, 1)
	dragging.Start()
	dragging.Move(-20, -20)
	dragging.Refresh()
	if want := (models.Point{X: 60, Y: 60}); dragging.Live() != want {
		t.Fatalf("live during drag after refresh = %v, want %v", dragging.Live(), want)
	}
	if s.writes != 0 {
		t.Fatalf("Refresh wrote to the surface")
	}
}

func TestDragController_Errors(t *testing.T) {
	s, item := newDragFixture(t)
	c := NewDragController(item.InstanceID, s, 1)
	if _, err := c.Move(1, 1); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("Move before Start err = %v", err)
	}
	c.Start()
	if err := c.Start(); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("second Start err = %v", err)
	}

	s.RemoveItem(item.InstanceID)
	if _, err := c.Release(); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Release of removed item err = %v", err)
	}
	if c.State() != Idle {
		t.Fatalf("state after failed release = %v", c.State())
	}

	ghost := NewDragController("ghost", s, 1)
	if err := ghost.Start(); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Start of unknown item err = %v", err)
	}
}

func TestDragController_IndependentControllers(t *testing.T) {
	s, a := newDragFixture(t)
	b, _ := s.AddItem(miniDress, models.Point{X: 230, Y: 230})
	ca := NewDragController(a.InstanceID, s, 1)
	cb := NewDragController(b.InstanceID, s, 1)

	ca.Start()
	cb.Start()
	ca.Move(10, 10)
	cb.Move(-10, -10)
	if _, err := cb.Release(); err != nil {
		t.Fatalf("release b: %v", err)
	}
	if _, err := ca.Release(); err != nil {
		t.Fatalf("release a: %v", err)
	}

	gotA, _ := s.Item(a.InstanceID)
	gotB, _ := s.Item(b.InstanceID)
	if gotA.X != 110 || gotB.X != 190 {
		t.Fatalf("positions a=%v b=%v, want 110 and 190", gotA.X, gotB.X)
	}
}

func TestDragController_Track(t *testing.T) {
	s, item := newDragFixture(t)
	c := NewDragController(item.InstanceID, s, 1)

	events := make(chan DragEvent, 4)
	events <- DragEvent{Kind: EventMove, DX: 5, DY: 5}
	events <- DragEvent{Kind: EventMove, DX: 20, DY: 30}
	events <- DragEvent{Kind: EventRelease}

	got, err := c.Track(context.Background(), events)
	if err != nil {
		t.Fatalf("Track returned error: %v", err)
	}
	if got.X != 120 || got.Y != 130 {
		t.Fatalf("tracked position = (%v, %v), want (120, 130)", got.X, got.Y)
	}
}

func TestDragController_TrackCancellation(t *testing.T) {
	t.Run("cancel event", func(t *testing.T) {
		s, item := newDragFixture(t)
		c := NewDragController(item.InstanceID, s, 1)
		events := make(chan DragEvent, 2)
		events <- DragEvent{Kind: EventMove, DX: 50, DY: 50}
		events <- DragEvent{Kind: EventCancel}
		if _, err := c.Track(context.Background(), events); !errors.Is(err, ErrGestureCancelled) {
			t.Fatalf("err = %v, want ErrGestureCancelled", err)
		}
		if s.writes != 0 {
			t.Fatalf("cancelled gesture wrote to the surface")
		}
	})

	t.Run("closed stream", func(t *testing.T) {
		s, item := newDragFixture(t)
		c := NewDragController(item.InstanceID, s, 1)
		events := make(chan DragEvent, 1)
		events <- DragEvent{Kind: EventMove, DX: 50, DY: 50}
		close(events)
		if _, err := c.Track(context.Background(), events); !errors.Is(err, ErrGestureCancelled) {
			t.Fatalf("err = %v, want ErrGestureCancelled", err)
		}
		if s.writes != 0 {
			t.Fatalf("closed stream wrote to the surface")
		}
	})

	t.Run("context done", func(t *testing.T) {
		s, item := newDragFixture(t)
		c := NewDragController(item.InstanceID, s, 1)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		events := make(chan DragEvent)
		if _, err := c.Track(ctx, events); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want DeadlineExceeded", err)
		}
		if s.writes != 0 || c.State() != Idle {
			t.Fatalf("context cancellation wrote or left state %v", c.State())
		}
	})
}
