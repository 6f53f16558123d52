// Package tensor provides the storage, shape and view model of the strided engine.
package tensor

import (
	"fmt"
	"strings"
)

// Numeric is the constraint satisfied by the Go element types of every DataType.
type Numeric interface {
	~uint8 | ~int32 | ~float32
}

// DataType represents runtime type information for tensors.
//
// The set is closed and ordered by promotion rank: Uint8 < Int32 < Float32.
type DataType int

// Supported data types for tensors.
const (
	Uint8 DataType = iota
	Int32
	Float32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Uint8:
		return 1
	case Int32, Float32:
		return 4
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Uint8:
		return "uint8"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}

// Valid reports whether dt belongs to the supported set.
func (dt DataType) Valid() bool {
	return dt >= Uint8 && dt <= Float32
}

// IsInteger reports whether elements of dt are integers.
func (dt DataType) IsInteger() bool {
	return dt == Uint8 || dt == Int32
}

// Promote returns the wider of two data types.
func Promote(a, b DataType) DataType {
	if a > b {
		return a
	}
	return b
}

// ParseDataType resolves a data type by name. Names are case-insensitive and
// accept the short forms "u8", "i32" and "f32".
func ParseDataType(name string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uint8", "u8":
		return Uint8, nil
	case "int32", "i32":
		return Int32, nil
	case "float32", "f32":
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDType, name)
	}
}

// DataTypeOf infers the DataType of a Go element type.
func DataTypeOf[T Numeric]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case uint8:
		return Uint8
	case int32:
		return Int32
	case float32:
		return Float32
	default:
		panic("unsupported element type")
	}
}
