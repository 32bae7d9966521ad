package raster

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/termdraw/framebuffer"
)

type pos = framebuffer.CellPos
type norm = framebuffer.NormPos

func newFB(t *testing.T, w, h int) *framebuffer.Framebuffer {
	t.Helper()
	fb, err := framebuffer.New(w, h)
	if err != nil {
		t.Fatalf("framebuffer.New(%d, %d) failed: %v", w, h, err)
	}
	return fb
}

// recorder captures writes in order on top of a real framebuffer
type recorder struct {
	*framebuffer.Framebuffer
	writes []pos
}

func (r *recorder) Write(p pos, c framebuffer.RGB) {
	r.writes = append(r.writes, p)
	r.Framebuffer.Write(p, c)
}

func TestLineMainDiagonal(t *testing.T) {
	rec := &recorder{Framebuffer: newFB(t, 10, 10)}
	Line(rec, norm{X: 0, Y: 0}, norm{X: 1, Y: 1}, framebuffer.RGB{R: 255, G: 0, B: 0})

	if len(rec.writes) != 10 {
		t.Fatalf("wrote %d cells, want 10", len(rec.writes))
	}
	for i, p := range rec.writes {
		if p != (pos{X: i, Y: i}) {
			t.Errorf("write %d at %v, want (%d,%d)", i, p, i, i)
		}
		if c := rec.At(p); c.Color != (framebuffer.RGB{R: 255, G: 0, B: 0}) || c.Density != 1 {
			t.Errorf("cell %v = %+v", p, c)
		}
	}
}

func TestLineHorizontal(t *testing.T) {
	rec := &recorder{Framebuffer: newFB(t, 10, 10)}
	green := framebuffer.RGB{R: 0, G: 255, B: 0}
	Line(rec, norm{X: 0, Y: 0}, norm{X: 1, Y: 0}, green)

	if len(rec.writes) != 10 {
		t.Fatalf("wrote %d cells, want 10", len(rec.writes))
	}
	for i, p := range rec.writes {
		if p != (pos{X: i, Y: 0}) {
			t.Errorf("write %d at %v, want (%d,0)", i, p, i)
		}
		if c := rec.At(p); c.Color != green || c.Density != 1 {
			t.Errorf("cell %v = %+v, want {%v 1}", p, c, green)
		}
	}
}

func TestLineToItselfWritesOneCell(t *testing.T) {
	rec := &recorder{Framebuffer: newFB(t, 10, 10)}
	Line(rec, norm{X: 0.3, Y: 0.7}, norm{X: 0.3, Y: 0.7}, framebuffer.RGB{R: 1, G: 2, B: 3})

	if len(rec.writes) != 1 {
		t.Fatalf("wrote %d cells, want 1", len(rec.writes))
	}
	if rec.writes[0] != rec.Scale(norm{X: 0.3, Y: 0.7}) {
		t.Errorf("wrote %v, want %v", rec.writes[0], rec.Scale(norm{X: 0.3, Y: 0.7}))
	}
}

func TestLineCornerCellCount(t *testing.T) {
	fb := newFB(t, 17, 12)
	corners := []norm{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}

	for _, a := range corners {
		for _, b := range corners {
			cells := Cells(fb, a, b)
			sa, sb := fb.Scale(a), fb.Scale(b)
			want := max(abs(sb.X-sa.X), abs(sb.Y-sa.Y)) + 1
			if len(cells) != want {
				t.Errorf("%v -> %v: %d cells, want %d", a, b, len(cells), want)
			}
			if cells[0] != sa || cells[len(cells)-1] != sb {
				t.Errorf("%v -> %v: endpoints %v..%v, want %v..%v", a, b, cells[0], cells[len(cells)-1], sa, sb)
			}
		}
	}
}

func TestLineTieFavorsVertical(t *testing.T) {
	fb := newFB(t, 5, 6)
	// Scaled: (0,0) -> (4,4), equal deltas
	got := Cells(fb, norm{X: 0, Y: 0}, norm{X: 1, Y: 0.8})
	if got[len(got)-1] != (pos{X: 4, Y: 4}) {
		t.Fatalf("end = %v, want (4,4)", got[len(got)-1])
	}
	for i, p := range got {
		if p.Y != i {
			t.Errorf("step %d: y = %d, want driving y = %d", i, p.Y, i)
		}
	}
}

func TestLineDependentAxisTruncates(t *testing.T) {
	fb := newFB(t, 11, 4)
	// Scaled: (0,0) -> (10,3), x drives, y = 3*i/10
	got := Cells(fb, norm{X: 0, Y: 0}, norm{X: 1, Y: 1})
	want := []pos{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 1}, {X: 5, Y: 1},
		{X: 6, Y: 1}, {X: 7, Y: 2}, {X: 8, Y: 2}, {X: 9, Y: 2}, {X: 10, Y: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d cells, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLineQuadrantsMirror(t *testing.T) {
	fb := newFB(t, 11, 4)
	forward := Cells(fb, norm{X: 0, Y: 0}, norm{X: 1, Y: 1})

	tests := []struct {
		name     string
		from, to norm
		mirror   func(p pos) pos
	}{
		{"Right-up", norm{X: 0, Y: 1}, norm{X: 1, Y: 0}, func(p pos) pos { return pos{X: p.X, Y: 3 - p.Y} }},
		{"Left-down", norm{X: 1, Y: 0}, norm{X: 0, Y: 1}, func(p pos) pos { return pos{X: 10 - p.X, Y: p.Y} }},
		{"Left-up", norm{X: 1, Y: 1}, norm{X: 0, Y: 0}, func(p pos) pos { return pos{X: 10 - p.X, Y: 3 - p.Y} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cells(fb, tt.from, tt.to)
			if len(got) != len(forward) {
				t.Fatalf("got %d cells, want %d", len(got), len(forward))
			}
			for i := range forward {
				if want := tt.mirror(forward[i]); got[i] != want {
					t.Errorf("cell %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestLineConnectedProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	fb := newFB(t, 40, 30)

	for trial := 0; trial < 300; trial++ {
		a := norm{X: rng.Float64(), Y: rng.Float64()}
		b := norm{X: rng.Float64(), Y: rng.Float64()}
		cells := Cells(fb, a, b)

		for i := 1; i < len(cells); i++ {
			stepX := abs(cells[i].X - cells[i-1].X)
			stepY := abs(cells[i].Y - cells[i-1].Y)
			if stepX > 1 || stepY > 1 || stepX+stepY == 0 {
				t.Fatalf("trial %d: gap between %v and %v", trial, cells[i-1], cells[i])
			}
		}
	}
}

func TestDotAccumulates(t *testing.T) {
	fb := newFB(t, 10, 10)
	p := norm{X: 0.5, Y: 0.5}
	Dot(fb, p, framebuffer.RGB{R: 255, G: 0, B: 0})
	Dot(fb, p, framebuffer.RGB{R: 0, G: 0, B: 255})

	got := fb.At(fb.Scale(p))
	want := framebuffer.Cell{Color: framebuffer.RGB{R: 127, G: 0, B: 127}, Density: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPolyline(t *testing.T) {
	rec := &recorder{Framebuffer: newFB(t, 10, 10)}
	Polyline(rec, []norm{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, framebuffer.RGB{R: 9, G: 9, B: 9})

	// Two 10-cell segments sharing the corner
	if len(rec.writes) != 20 {
		t.Fatalf("wrote %d cells, want 20", len(rec.writes))
	}
	if c := rec.At(pos{X: 9, Y: 0}); c.Density != 2 {
		t.Errorf("shared vertex density = %d, want 2", c.Density)
	}

	rec.writes = nil
	Polyline(rec, []norm{{X: 0.5, Y: 0.5}}, framebuffer.RGB{R: 9, G: 9, B: 9})
	if len(rec.writes) != 1 {
		t.Errorf("single-point polyline wrote %d cells, want 1", len(rec.writes))
	}
}

func TestLineOutOfRangePanics(t *testing.T) {
	fb := newFB(t, 10, 10)
	defer func() {
		if _, ok := recover().(*framebuffer.BoundsError); !ok {
			t.Error("expected *framebuffer.BoundsError panic")
		}
	}()
	Line(fb, norm{X: 0, Y: 0}, norm{X: 1.5, Y: 0}, framebuffer.RGB{R: 1, G: 1, B: 1})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
