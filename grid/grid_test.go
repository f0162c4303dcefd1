package grid

import (
	"testing"
)

func TestNewRejectsInvalidShape(t *testing.T) {
	cases := []struct {
		nx, ny int
	}{
		{0, 4},
		{4, 0},
		{-1, 4},
		{4, -3},
	}
	for _, c := range cases {
		if _, err := New[float64](c.nx, c.ny); err == nil {
			t.Errorf("New(%d, %d) should fail", c.nx, c.ny)
		}
	}
}

func TestRowMajorLayout(t *testing.T) {
	g, err := New[float64](3, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	g.Set(1, 2, 7.5)
	if got := g.Data()[1*4+2]; got != 7.5 {
		t.Errorf("expected data[6]=7.5, got %v", got)
	}
	if got := g.At(1, 2); got != 7.5 {
		t.Errorf("At(1,2)=%v, want 7.5", got)
	}
	if got := g.AtU(1, 2); got != 7.5 {
		t.Errorf("AtU(1,2)=%v, want 7.5", got)
	}
}

func TestCheckedAccessPanics(t *testing.T) {
	g, _ := New[float64](2, 2)

	cases := []struct {
		name string
		i, j int
	}{
		{"i negative", -1, 0},
		{"i too large", 2, 0},
		{"j negative", 0, -1},
		{"j too large", 0, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d, %d) should panic", c.i, c.j)
				}
			}()
			g.At(c.i, c.j)
		})
	}
}

func TestZeroInitialized(t *testing.T) {
	g, _ := New[float64](5, 5)
	for _, v := range g.Data() {
		if v != 0 {
			t.Fatalf("fresh grid contains %v, want 0", v)
		}
	}
}

func TestFillZeroAddU(t *testing.T) {
	g, _ := New[float64](3, 3)
	g.Fill(2.0)
	g.AddU(0, 0, 1.5)
	if got := g.At(0, 0); got != 3.5 {
		t.Errorf("AddU result %v, want 3.5", got)
	}
	g.Zero()
	if got := g.At(0, 0); got != 0 {
		t.Errorf("Zero left %v", got)
	}
}

func TestCloneAndCopyFrom(t *testing.T) {
	g, _ := New[int](2, 3)
	g.Set(1, 1, 42)

	c := g.Clone()
	if c.At(1, 1) != 42 {
		t.Errorf("clone lost value: %d", c.At(1, 1))
	}
	c.Set(1, 1, 7)
	if g.At(1, 1) != 42 {
		t.Error("clone aliases the original")
	}

	dst, _ := New[int](2, 3)
	if err := dst.CopyFrom(g); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}
	if dst.At(1, 1) != 42 {
		t.Errorf("CopyFrom result %d, want 42", dst.At(1, 1))
	}

	bad, _ := New[int](3, 2)
	if err := bad.CopyFrom(g); err == nil {
		t.Error("CopyFrom across shapes should fail")
	}
}

func TestMatrixSharesStorage(t *testing.T) {
	g, _ := New[float64](2, 2)
	m := Matrix(g)
	m.Set(0, 1, 3.0)
	if got := g.At(0, 1); got != 3.0 {
		t.Errorf("Matrix write not visible through grid: %v", got)
	}

	g2 := FromDense(m)
	if got := g2.At(0, 1); got != 3.0 {
		t.Errorf("FromDense lost value: %v", got)
	}
	g2.Set(0, 1, 9.0)
	if g.At(0, 1) != 3.0 {
		t.Error("FromDense should copy, not alias")
	}
}
