package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1}, // scalar
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, expected %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("unequal shapes reported equal")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 4}) {
		t.Error("shapes of different rank reported equal")
	}
}

func TestShapeHasSuffix(t *testing.T) {
	tests := []struct {
		shape    Shape
		suffix   Shape
		expected bool
	}{
		{Shape{2, 3, 8}, Shape{8}, true},
		{Shape{2, 3, 8}, Shape{3, 8}, true},
		{Shape{2, 3, 8}, Shape{2, 3, 8}, true},
		{Shape{2, 3, 8}, Shape{2, 8}, false},
		{Shape{8}, Shape{3, 8}, false}, // suffix longer than shape
		{Shape{}, Shape{8}, false},
	}

	for _, tt := range tests {
		if got := tt.shape.HasSuffix(tt.suffix); got != tt.expected {
			t.Errorf("Shape%v.HasSuffix(%v) = %v, expected %v", tt.shape, tt.suffix, got, tt.expected)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := (Shape{2, 3, 4}).ComputeStrides()
	expected := []int{12, 4, 1}
	for i := range expected {
		if strides[i] != expected[i] {
			t.Errorf("ComputeStrides() = %v, expected %v", strides, expected)
			break
		}
	}
}

func TestShapeClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 7
	if s[0] != 2 {
		t.Error("Clone shares memory with original")
	}
}
