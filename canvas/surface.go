package canvas

import (
	"fmt"

	"github.com/google/uuid"

	"armario-outfits/models"
	"armario-outfits/utils"
)

// Surface owns the ordered collection of placed items of one composition
// session and enforces its spatial bounds
type Surface struct {
	layout     Layout
	items      []models.PlacedItem
	newID      func() string
	generation uint64
}

// Option configures a Surface
type Option func(*Surface)

// WithIDGenerator replaces the instance id generator (UUIDs by default)
func WithIDGenerator(gen func() string) Option {
	return func(s *Surface) {
		s.newID = gen
	}
}

// NewSurface creates an empty Surface with the given layout.
// Zero layout fields fall back to the defaults.
func NewSurface(layout Layout, opts ...Option) *Surface {
	s := &Surface{
		layout: layout.WithDefaults(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout returns the current layout
func (s *Surface) Layout() Layout {
	return s.layout
}

// Generation changes every time the collection is mutated
func (s *Surface) Generation() uint64 {
	return s.generation
}

// AcceptsDrop reports whether p is inside the drop region of the canvas
func (s *Surface) AcceptsDrop(p models.Point) bool {
	return s.layout.AcceptsDrop(p)
}

// AddItem places a new instance of candidate at the drop point.
// The drop point is the grab point of the item handle, not its top-left corner.
func (s *Surface) AddItem(candidate models.CatalogItem, drop models.Point) (models.PlacedItem, error) {
	if !utils.IsValidReference(candidate.ID) {
		return models.PlacedItem{}, &InvalidReferenceError{Names: []string{displayNameOrPlaceholder(candidate.Name)}}
	}
	if !s.AcceptsDrop(drop) {
		return models.PlacedItem{}, ErrDropOutside
	}

	item := models.PlacedItem{
		InstanceID:    s.uniqueID(),
		CatalogItemID: candidate.ID,
		ImageRef:      candidate.ImageRef,
		DisplayName:   candidate.Name,
		X:             s.layout.ClampX(drop.X - s.layout.HandleHalf),
		Y:             s.layout.ClampY(drop.Y - s.layout.HandleHalf),
		Width:         s.layout.ItemWidth,
		Height:        s.layout.ItemHeight,
		Rotation:      0,
		ZIndex:        DefaultZIndex,
	}
	s.items = append(s.items, item)
	s.generation++
	return item, nil
}

// RemoveItem removes the item with the given instance id.
// Removing an unknown id is a no-op; the return value reports whether anything was removed.
func (s *Surface) RemoveItem(instanceID string) bool {
	idx := s.indexOf(instanceID)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.generation++
	return true
}

// UpdateItemPosition re-clamps and overwrites the position of an item.
// Every other field is left unchanged.
func (s *Surface) UpdateItemPosition(instanceID string, x, y float64) (models.PlacedItem, error) {
	idx := s.indexOf(instanceID)
	if idx < 0 {
		return models.PlacedItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, instanceID)
	}
	s.items[idx].X = s.layout.ClampX(x)
	s.items[idx].Y = s.layout.ClampY(y)
	s.generation++
	return s.items[idx], nil
}

// Clear empties the collection
func (s *Surface) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.generation++
}

// IsEmpty gates the save action
func (s *Surface) IsEmpty() bool {
	return len(s.items) == 0
}

// Len returns the number of placed items
func (s *Surface) Len() int {
	return len(s.items)
}

// Items returns a copy of the placed items in insertion order
func (s *Surface) Items() []models.PlacedItem {
	out := make([]models.PlacedItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the placed item with the given instance id
func (s *Surface) Item(instanceID string) (models.PlacedItem, bool) {
	idx := s.indexOf(instanceID)
	if idx < 0 {
		return models.PlacedItem{}, false
	}
	return s.items[idx], true
}

// Resize changes the canvas bounds and re-clamps every item
func (s *Surface) Resize(width, height float64) error {
	next := s.layout
	next.Width = width
	next.Height = height
	if err := next.Validate(); err != nil {
		return err
	}
	s.layout = next
	for i := range s.items {
		s.items[i].X = s.layout.ClampX(s.items[i].X)
		s.items[i].Y = s.layout.ClampY(s.items[i].Y)
	}
	s.generation++
	return nil
}

// Validate checks every placed item reference and names the offending items
func (s *Surface) Validate() error {
	return ValidateItems(s.items)
}

// Restore replaces the collection with a previously saved snapshot.
// Items are re-validated and re-clamped; missing or duplicate instance ids are regenerated.
func (s *Surface) Restore(items []models.PlacedItem) error {
	if err := ValidateItems(items); err != nil {
		return err
	}

	restored := make([]models.PlacedItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.InstanceID == "" || seen[item.InstanceID] {
			item.InstanceID = s.newID()
			for seen[item.InstanceID] {
				item.InstanceID = s.newID()
			}
		}
		seen[item.InstanceID] = true

		if item.Width <= 0 {
			item.Width = s.layout.ItemWidth
		}
		if item.Height <= 0 {
			item.Height = s.layout.ItemHeight
		}
		if item.ZIndex == 0 {
			item.ZIndex = DefaultZIndex
		}
		item.X = s.layout.ClampX(item.X)
		item.Y = s.layout.ClampY(item.Y)
		restored = append(restored, item)
	}

	s.items = restored
	s.generation++
	return nil
}

func (s *Surface) indexOf(instanceID string) int {
	for i := range s.items {
		if s.items[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

func (s *Surface) uniqueID() string {
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	return id
}

// ValidateItems checks the catalog reference of every item and names the
// offending ones in an InvalidReferenceError
func ValidateItems(items []models.PlacedItem) error {
	var names []string
	for _, item := range items {
		if !utils.IsValidReference(item.CatalogItemID) {
			names = append(names, displayNameOrPlaceholder(item.DisplayName))
		}
	}
	if len(names) > 0 {
		return &InvalidReferenceError{Names: names}
	}
	return nil
}
