package canvas

import (
	"strings"

	"armario-outfits/models"
)

// DropTarget receives catalog items released from the picker
type DropTarget interface {
	AcceptsDrop(p models.Point) bool
	AddItem(candidate models.CatalogItem, drop models.Point) (models.PlacedItem, error)
}

// HandOff reports a released catalog item to the target.
// AddItem is only invoked when the target accepts the release point;
// otherwise ok is false and nothing is created.
func HandOff(target DropTarget, item models.CatalogItem, release models.Point) (placed models.PlacedItem, ok bool, err error) {
	if !target.AcceptsDrop(release) {
		return models.PlacedItem{}, false, nil
	}
	placed, err = target.AddItem(item, release)
	if err != nil {
		return models.PlacedItem{}, false, err
	}
	return placed, true, nil
}

// SourceDrag is a drag of a picker entry. It follows the same gesture
// mechanics as DragController but never moves the entry itself: on release
// it hands the item to the drop target.
type SourceDrag struct {
	item   models.CatalogItem
	target DropTarget
	g      gesture
}

// NewSourceDrag starts dragging item from its on-screen origin
func NewSourceDrag(item models.CatalogItem, origin models.Point, target DropTarget) *SourceDrag {
	d := &SourceDrag{item: item, target: target}
	_ = d.g.begin(origin)
	return d
}

// Item returns the dragged catalog item
func (d *SourceDrag) Item() models.CatalogItem {
	return d.item
}

// State returns the current gesture state
func (d *SourceDrag) State() DragState {
	return d.g.state
}

// Move records the cumulative delta since the drag started
func (d *SourceDrag) Move(dx, dy float64) (models.Point, error) {
	if err := d.g.move(dx, dy); err != nil {
		return models.Point{}, err
	}
	return d.g.live(), nil
}

// Release hands the item to the target at origin + total delta
func (d *SourceDrag) Release() (models.PlacedItem, bool, error) {
	point, err := d.g.release()
	if err != nil {
		return models.PlacedItem{}, false, err
	}
	defer d.g.reset()
	return HandOff(d.target, d.item, point)
}

// Cancel abandons the drag without dropping anything
func (d *SourceDrag) Cancel() {
	d.g.reset()
}

// FilterCatalog filters an already-fetched list by category and by a
// case-insensitive name search. An empty category or "all" matches everything.
func FilterCatalog(items []models.CatalogItem, category, query string) []models.CatalogItem {
	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))
	matchAll := category == "" || strings.EqualFold(category, "all")

	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if !matchAll && !strings.EqualFold(item.Type, category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}
