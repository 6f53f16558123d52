package tensor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 5, 8}, 80},
		{Shape{3, 0, 2}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	valid := []Shape{{}, {1}, {2, 3}, {0, 4}}
	for _, s := range valid {
		if err := s.Validate(); err != nil {
			t.Errorf("%v.Validate() = %v, want nil", s, err)
		}
	}

	invalid := []Shape{{-1}, {2, -3}, {4, 5, -1}}
	for _, s := range invalid {
		if err := s.Validate(); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("%v.Validate() = %v, want ErrInvalidShape", s, err)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{7}, []int{1}},
		{Shape{3, 4}, []int{4, 1}},
		{Shape{2, 5, 8}, []int{40, 8, 1}},
		{Shape{1, 2, 5, 8}, []int{80, 40, 8, 1}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.shape.ComputeStrides()); diff != "" {
			t.Errorf("%v.ComputeStrides() mismatch (-want +got):\n%s", tt.shape, diff)
		}
	}
}

// Walking indices lexicographically must visit offsets 0, 1, 2, ... in order.
func TestShapeComputeStridesRowMajorOrder(t *testing.T) {
	shapes := []Shape{{4}, {3, 4}, {2, 3, 4}, {2, 1, 3, 2}}

	for _, shape := range shapes {
		strides := shape.ComputeStrides()
		index := make([]int, len(shape))
		for want := 0; want < shape.NumElements(); want++ {
			off := 0
			for d := range index {
				off += index[d] * strides[d]
			}
			if off != want {
				t.Fatalf("%v: index %v maps to offset %d, want %d", shape, index, off, want)
			}
			for d := len(index) - 1; d >= 0; d-- {
				index[d]++
				if index[d] < shape[d] {
					break
				}
				index[d] = 0
			}
		}
	}
}

func TestShapeEqualAndClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c[0] = 9
	if s[0] != 2 {
		t.Error("clone must not alias the original")
	}
	if s.Equal(Shape{2, 3, 1}) {
		t.Error("shapes of different rank must not be equal")
	}
}

func TestBroadcastBatchShape(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want Shape
	}{
		{"plain matrices", Shape{5, 8}, Shape{8, 5}, Shape{}},
		{"equal batch", Shape{2, 5, 8}, Shape{2, 8, 5}, Shape{2}},
		{"equal 4d batch", Shape{1, 2, 5, 8}, Shape{1, 2, 8, 5}, Shape{1, 2}},
		{"size one left", Shape{1, 5, 8}, Shape{4, 8, 5}, Shape{4}},
		{"size one right", Shape{3, 5, 8}, Shape{1, 8, 5}, Shape{3}},
		{"both directions", Shape{3, 1, 5, 8}, Shape{1, 4, 8, 5}, Shape{3, 4}},
		{"missing leading", Shape{3, 1, 5, 8}, Shape{4, 8, 5}, Shape{3, 4}},
		{"matrix against batch", Shape{5, 8}, Shape{6, 8, 5}, Shape{6}},
		{"matrix dims ignored", Shape{2, 5, 8}, Shape{2, 3, 9}, Shape{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastBatchShape(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBroadcastBatchShapeMismatch(t *testing.T) {
	_, err := BroadcastBatchShape(Shape{2, 5, 8}, Shape{3, 8, 5})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("error = %v, want ErrShapeMismatch", err)
	}
}

func TestMatMulOutputShape(t *testing.T) {
	tests := []struct {
		a, b Shape
		want Shape
	}{
		{Shape{5, 8}, Shape{8, 5}, Shape{5, 5}},
		{Shape{2, 5, 8}, Shape{2, 8, 5}, Shape{2, 5, 5}},
		{Shape{1, 2, 5, 8}, Shape{1, 2, 8, 5}, Shape{1, 2, 5, 5}},
		{Shape{3, 4, 2}, Shape{3, 2, 4}, Shape{3, 4, 4}},
		{Shape{1, 6, 3}, Shape{4, 3, 2}, Shape{4, 6, 2}},
		{Shape{2, 0, 3}, Shape{2, 3, 4}, Shape{2, 0, 4}},
	}

	for _, tt := range tests {
		got, err := MatMulOutputShape(tt.a, tt.b)
		if err != nil {
			t.Errorf("%v @ %v: unexpected error %v", tt.a, tt.b, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%v @ %v mismatch (-want +got):\n%s", tt.a, tt.b, diff)
		}
	}
}

func TestMatMulOutputShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want error
	}{
		{"inner mismatch", Shape{2, 5, 8}, Shape{2, 7, 5}, ErrMatMulShape},
		{"rank one left", Shape{8}, Shape{8, 5}, ErrMatMulShape},
		{"rank one right", Shape{5, 8}, Shape{8}, ErrMatMulShape},
		{"scalar", Shape{}, Shape{2, 2}, ErrMatMulShape},
		{"batch mismatch", Shape{2, 5, 8}, Shape{3, 8, 5}, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MatMulOutputShape(tt.a, tt.b)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
