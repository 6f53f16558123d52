package tensor

import (
	"errors"
	"testing"
)

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Uint8, 1},
		{Int32, 4},
		{Float32, 4},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dtype DataType
		str   string
	}{
		{Uint8, "uint8"},
		{Int32, "int32"},
		{Float32, "float32"},
		{DataType(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.dtype.String(); got != tt.str {
			t.Errorf("%d.String() = %q, want %q", int(tt.dtype), got, tt.str)
		}
	}
}

func TestDataTypeSizePanicsOnUnknown(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown dtype")
		}
	}()
	DataType(7).Size()
}

func TestPromote(t *testing.T) {
	if got := Promote(Uint8, Int32); got != Int32 {
		t.Errorf("Promote(uint8, int32) = %s", got)
	}
	if got := Promote(Float32, Int32); got != Float32 {
		t.Errorf("Promote(float32, int32) = %s", got)
	}
	if got := Promote(Uint8, Uint8); got != Uint8 {
		t.Errorf("Promote(uint8, uint8) = %s", got)
	}
}

func TestParseDataType(t *testing.T) {
	for name, want := range map[string]DataType{
		"uint8":   Uint8,
		"U8":      Uint8,
		"int32":   Int32,
		" i32 ":   Int32,
		"FLOAT32": Float32,
		"f32":     Float32,
	} {
		got, err := ParseDataType(name)
		if err != nil {
			t.Errorf("ParseDataType(%q) error: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDataType(%q) = %s, want %s", name, got, want)
		}
	}

	if _, err := ParseDataType("float64"); !errors.Is(err, ErrUnsupportedDType) {
		t.Errorf("ParseDataType(float64) error = %v, want ErrUnsupportedDType", err)
	}
}

func TestDataTypeOf(t *testing.T) {
	if dt := DataTypeOf[uint8](); dt != Uint8 {
		t.Errorf("DataTypeOf[uint8] = %v", dt)
	}
	if dt := DataTypeOf[int32](); dt != Int32 {
		t.Errorf("DataTypeOf[int32] = %v", dt)
	}
	if dt := DataTypeOf[float32](); dt != Float32 {
		t.Errorf("DataTypeOf[float32] = %v", dt)
	}
}
