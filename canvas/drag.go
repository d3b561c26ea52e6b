package canvas

import (
	"context"
	"fmt"

	"armario-outfits/models"
)

// PositionUpdater is the part of the Surface a DragController writes through
type PositionUpdater interface {
	Item(instanceID string) (models.PlacedItem, bool)
	UpdateItemPosition(instanceID string, x, y float64) (models.PlacedItem, error)
}

// DragController turns a pointer gesture on one placed item into a single
// committed position update on release. Live positions are never written back.
type DragController struct {
	instanceID string
	canvas     PositionUpdater
	emphasis   float64
	committed  models.Point
	g          gesture
}

// NewDragController creates a controller for the placed item instanceID.
// emphasis is the scale applied while dragging; values <= 0 disable it.
func NewDragController(instanceID string, canvas PositionUpdater, emphasis float64) *DragController {
	if emphasis <= 0 {
		emphasis = 1
	}
	c := &DragController{
		instanceID: instanceID,
		canvas:     canvas,
		emphasis:   emphasis,
	}
	if item, ok := canvas.Item(instanceID); ok {
		c.committed = item.Position()
	}
	return c
}

// InstanceID returns the placed item this controller moves
func (c *DragController) InstanceID() string {
	return c.instanceID
}

// State returns the current gesture state
func (c *DragController) State() DragState {
	return c.g.state
}

// Scale returns the emphasis scale for rendering
func (c *DragController) Scale() float64 {
	if c.g.state == Dragging {
		return c.emphasis
	}
	return 1
}

// Start captures the committed position as the baseline of a new drag
func (c *DragController) Start() error {
	item, ok := c.canvas.Item(c.instanceID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, c.instanceID)
	}
	if err := c.g.begin(item.Position()); err != nil {
		return err
	}
	c.committed = item.Position()
	return nil
}

// Move records the cumulative delta since Start and returns the live position
func (c *DragController) Move(dx, dy float64) (models.Point, error) {
	if err := c.g.move(dx, dy); err != nil {
		return models.Point{}, err
	}
	return c.g.live(), nil
}

// Live returns the position to render: baseline + delta while dragging,
// otherwise the last committed position
func (c *DragController) Live() models.Point {
	if c.g.state == Dragging {
		return c.g.live()
	}
	return c.committed
}

// Release commits baseline + total delta through the canvas, which clamps it
func (c *DragController) Release() (models.PlacedItem, error) {
	final, err := c.g.release()
	if err != nil {
		return models.PlacedItem{}, err
	}
	defer c.g.reset()

	item, err := c.canvas.UpdateItemPosition(c.instanceID, final.X, final.Y)
	if err != nil {
		return models.PlacedItem{}, err
	}
	c.committed = item.Position()
	return item, nil
}

// Refresh re-reads the committed position after the canvas moved the item
// outside of a gesture. A drag in progress keeps its baseline.
func (c *DragController) Refresh() {
	if c.g.state == Dragging {
		return
	}
	if item, ok := c.canvas.Item(c.instanceID); ok {
		c.committed = item.Position()
	}
}

// Cancel abandons the gesture; the live render reverts to the committed position
func (c *DragController) Cancel() {
	c.g.reset()
}

// Track drives a full gesture from a stream of events.
// The gesture is cancelled without writing when ctx is done, when the stream
// closes, or on an EventCancel.
func (c *DragController) Track(ctx context.Context, events <-chan DragEvent) (models.PlacedItem, error) {
	if err := c.Start(); err != nil {
		return models.PlacedItem{}, err
	}
	for {
		select {
		case <-ctx.Done():
			c.Cancel()
			return models.PlacedItem{}, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				c.Cancel()
				return models.PlacedItem{}, ErrGestureCancelled
			}
			switch ev.Kind {
			case EventMove:
				if _, err := c.Move(ev.DX, ev.DY); err != nil {
					c.Cancel()
					return models.PlacedItem{}, err
				}
			case EventRelease:
				return c.Release()
			case EventCancel:
				c.Cancel()
				return models.PlacedItem{}, ErrGestureCancelled
			}
		}
	}
}
