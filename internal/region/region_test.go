package region

import (
	"image"
	"math"
	"testing"

	"github.com/maax3v3/cellgraph/internal/imaging"
)

func labelMapFrom(t *testing.T, rows [][]int) *imaging.LabelMap {
	t.Helper()
	lm := imaging.NewLabelMap(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, label := range row {
			lm.Set(x, y, label)
		}
	}
	return lm
}

func TestBuildCatalog(t *testing.T) {
	lm := labelMapFrom(t, [][]int{
		{0, 0, 2, 2},
		{1, 0, 2, 2},
		{3, 3, 0, 0},
	})

	cat := BuildCatalog(lm)

	if got, want := cat.Len(), 2; got != want {
		t.Fatalf("Len: got %d, want %d", got, want)
	}
	if got := cat.IDs(); got[0] != 2 || got[1] != 3 {
		t.Fatalf("IDs: got %v, want [2 3]", got)
	}

	reg2 := cat.Get(2)
	if len(reg2.Pixels) != 4 {
		t.Errorf("region 2 pixel count: got %d, want 4", len(reg2.Pixels))
	}
	if reg2.Centroid.X != 2.5 || reg2.Centroid.Y != 0.5 {
		t.Errorf("region 2 centroid: got (%g,%g), want (2.5,0.5)", reg2.Centroid.X, reg2.Centroid.Y)
	}
	if reg2.Bounds != image.Rect(2, 0, 4, 2) {
		t.Errorf("region 2 bounds: got %v", reg2.Bounds)
	}

	reg3 := cat.Get(3)
	if len(reg3.Pixels) != 2 {
		t.Errorf("region 3 pixel count: got %d, want 2", len(reg3.Pixels))
	}
	if reg3.Centroid.X != 0.5 || reg3.Centroid.Y != 2 {
		t.Errorf("region 3 centroid: got (%g,%g), want (0.5,2)", reg3.Centroid.X, reg3.Centroid.Y)
	}
}

func TestBuildCatalog_ReservedLabelsIgnored(t *testing.T) {
	lm := labelMapFrom(t, [][]int{
		{0, 1},
		{1, 0},
	})

	cat := BuildCatalog(lm)
	if cat.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d regions", cat.Len())
	}
	if cat.Get(1) != nil {
		t.Error("label 1 must not be cataloged")
	}
}

func TestBuildCatalog_SparseLabelRange(t *testing.T) {
	// Labels 2 and 9 present, 3..8 absent: absent ids simply do not appear.
	lm := labelMapFrom(t, [][]int{
		{2, 0, 9},
	})

	cat := BuildCatalog(lm)
	if cat.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cat.Len())
	}
	for _, id := range []int{3, 4, 5, 6, 7, 8} {
		if cat.Get(id) != nil {
			t.Errorf("label %d must not be cataloged", id)
		}
	}
}

func TestBuildCatalog_SinglePixelRegion(t *testing.T) {
	lm := labelMapFrom(t, [][]int{
		{0, 0, 0},
		{0, 5, 0},
		{0, 0, 0},
	})

	cat := BuildCatalog(lm)
	r := cat.Get(5)
	if r == nil {
		t.Fatal("region 5 missing")
	}
	if math.Abs(r.Centroid.X-1) > 1e-12 || math.Abs(r.Centroid.Y-1) > 1e-12 {
		t.Errorf("centroid: got (%g,%g), want (1,1)", r.Centroid.X, r.Centroid.Y)
	}
}

func TestCatalogCentroid(t *testing.T) {
	lm := labelMapFrom(t, [][]int{
		{2, 2, 2, 2, 2},
	})

	cat := BuildCatalog(lm)
	c := cat.Centroid(2)
	if c.X != 2 || c.Y != 0 {
		t.Errorf("centroid: got (%g,%g), want (2,0)", c.X, c.Y)
	}
}
