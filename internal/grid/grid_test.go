package grid

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name                        string
		width, height, stride, rows int
		wantErr                     error
	}{
		{name: "fits", width: 4, height: 3, stride: 8, rows: 6},
		{name: "exact capacity", width: 8, height: 6, stride: 8, rows: 6},
		{name: "too wide", width: 9, height: 6, stride: 8, rows: 6, wantErr: ErrCapacity},
		{name: "too tall", width: 8, height: 7, stride: 8, rows: 6, wantErr: ErrCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.width, tt.height, tt.stride, tt.rows)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(g.Cells) != tt.stride*tt.rows {
				t.Errorf("cells: got %d, want %d", len(g.Cells), tt.stride*tt.rows)
			}
		})
	}
}

func TestNew_NegativeSize(t *testing.T) {
	if _, err := New(-1, 2, 4, 4); err == nil {
		t.Fatal("expected error for negative width")
	}
}

func TestAtSetAdd(t *testing.T) {
	g, _ := New(3, 3, 6, 6)
	g.Set(1, 2, 7)
	g.Add(1, 2, 3)
	if got := g.At(1, 2); got != 10 {
		t.Errorf("At(1,2): got %d, want 10", got)
	}
	// stride, not width, separates rows
	if got := g.Cells[1*6+2]; got != 10 {
		t.Errorf("backing cell: got %d, want 10", got)
	}
}

func TestAt_OutOfRangePanics(t *testing.T) {
	g, _ := New(3, 3, 6, 6)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for column beyond logical width")
		}
	}()
	g.At(0, 3)
}

func TestRow_AliasesGrid(t *testing.T) {
	g, _ := New(4, 2, 8, 2)
	row := g.Row(1)
	if len(row) != 4 || cap(row) != 8 {
		t.Fatalf("row len/cap: got %d/%d, want 4/8", len(row), cap(row))
	}
	row[3] = 42
	if g.At(1, 3) != 42 {
		t.Error("row slice does not alias grid storage")
	}
}

func TestResize(t *testing.T) {
	g, _ := New(4, 4, 8, 8)
	if err := g.Resize(8, 4); err != nil {
		t.Fatalf("Resize within capacity: %v", err)
	}
	if err := g.Resize(9, 4); !errors.Is(err, ErrCapacity) {
		t.Fatalf("Resize beyond capacity: got %v, want ErrCapacity", err)
	}
	if g.Width != 8 {
		t.Errorf("failed resize changed width to %d", g.Width)
	}
}

func TestCopyFromAndClone(t *testing.T) {
	src, _ := New(3, 2, 5, 4)
	src.Set(0, 0, 1)
	src.Set(1, 2, 9)

	dst, _ := New(5, 4, 5, 4)
	dst.Fill(-3)
	dst.CopyFrom(src)
	if dst.Width != 3 || dst.Height != 2 {
		t.Fatalf("size: got %dx%d, want 3x2", dst.Width, dst.Height)
	}
	if dst.At(1, 2) != 9 || dst.At(0, 0) != 1 {
		t.Error("contents not copied")
	}

	c := src.Clone()
	c.Set(0, 0, 100)
	if src.At(0, 0) != 1 {
		t.Error("Clone shares storage with source")
	}
}

func TestMaxBelow(t *testing.T) {
	g, _ := New(4, 4, 4, 4)
	g.Fill(1000)
	g.Set(1, 1, 5)
	g.Set(1, 2, 12)
	g.Set(2, 1, 3)
	g.Set(2, 2, 999)
	if got := g.MaxBelow(999); got != 12 {
		t.Errorf("MaxBelow: got %d, want 12", got)
	}
	empty, _ := New(2, 2, 2, 2)
	if got := empty.MaxBelow(10); got != 0 {
		t.Errorf("MaxBelow on grid without interior: got %d, want 0", got)
	}
}
