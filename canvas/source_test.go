package canvas

import (
	"errors"
	"testing"

	"armario-outfits/models"
)

func TestSourceDrag_DropsOnCanvas(t *testing.T) {
	s := newTestSurface(390, 422)
	d := NewSourceDrag(miniDress, models.Point{X: 60, Y: 600}, s)
	if d.State() != Dragging {
		t.Fatalf("new source drag state = %v", d.State())
	}
	d.Move(40, -400)

	placed, ok, err := d.Release()
	if err != nil || !ok {
		t.Fatalf("Release = %v, %v", ok, err)
	}
	if placed.X != 70 || placed.Y != 170 {
		t.Fatalf("placed at (%v, %v), want (70, 170)", placed.X, placed.Y)
	}
	if s.Len() != 1 || d.State() != Idle {
		t.Fatalf("len=%d state=%v", s.Len(), d.State())
	}
}

// recordingTarget fails the test if AddItem is called
type recordingTarget struct {
	*Surface
	calls int
}

func (r *recordingTarget) AddItem(c models.CatalogItem, p models.Point) (models.PlacedItem, error) {
	r.calls++
	return r.Surface.AddItem(c, p)
}

func TestSourceDrag_BelowToleranceNeverInvokesAddItem(t *testing.T) {
	target := &recordingTarget{Surface: newTestSurface(390, 422)}
	for _, y := range []float64{472, 500, 844} {
		d := NewSourceDrag(miniDress, models.Point{X: 60, Y: 700}, target)
		d.Move(0, y-700)
		_, ok, err := d.Release()
		if ok || err != nil {
			t.Fatalf("release at y=%v: ok=%v err=%v", y, ok, err)
		}
	}
	if target.calls != 0 || !target.IsEmpty() {
		t.Fatalf("AddItem invoked %d times", target.calls)
	}
}

func TestSourceDrag_InsideToleranceCounts(t *testing.T) {
	s := newTestSurface(390, 422)
	placed, ok, err := HandOff(s, miniDress, models.Point{X: 100, Y: 460})
	if err != nil || !ok {
		t.Fatalf("HandOff = %v, %v", ok, err)
	}
	if placed.Y != 352 {
		t.Fatalf("Y = %v, want clamped 352", placed.Y)
	}
}

func TestSourceDrag_CancelAndInvalid(t *testing.T) {
	s := newTestSurface(390, 422)
	d := NewSourceDrag(miniDress, models.Point{X: 60, Y: 600}, s)
	d.Cancel()
	if _, _, err := d.Release(); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("Release after Cancel err = %v", err)
	}

	bad := NewSourceDrag(models.CatalogItem{ID: "undefined", Name: "Hat"}, models.Point{X: 60, Y: 100}, s)
	if _, ok, err := bad.Release(); ok || !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("invalid item release ok=%v err=%v", ok, err)
	}
	if !s.IsEmpty() {
		t.Fatalf("nothing should be placed")
	}
}

func TestFilterCatalog(t *testing.T) {
	items := []models.CatalogItem{
		{ID: "1", Name: "Mini Dress", Type: "Dress"},
		{ID: "2", Name: "Silk Dress", Type: "Dress"},
		{ID: "3", Name: "Denim Jacket", Type: "Jacket"},
		{ID: "4", Name: "Pleated Skirt", Type: "Skirt"},
	}

	tests := []struct {
		name     string
		category string
		query    string
		expected []string
	}{
		{name: "no filter", expected: []string{"1", "2", "3", "4"}},
		{name: "all category", category: "All", expected: []string{"1", "2", "3", "4"}},
		{name: "category case-insensitive", category: "dress", expected: []string{"1", "2"}},
		{name: "search", query: "DENIM", expected: []string{"3"}},
		{name: "category and search", category: "Dress", query: "silk", expected: []string{"2"}},
		{name: "no match", category: "Jacket", query: "silk", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCatalog(items, tt.category, tt.query)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d items, want %d", len(got), len(tt.expected))
			}
			for i, item := range got {
				if item.ID != tt.expected[i] {
					t.Errorf("item %d = %s, want %s", i, item.ID, tt.expected[i])
				}
			}
		})
	}
}
