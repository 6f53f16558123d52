package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	formatDecimals      = 4
	formatValuesPerLine = 8
)

// String renders the tensor's values followed by its metadata.
//
//	Tensor([[1, 1],
//	        [1, 1]],
//	       shape=[2 2], strides=[2 1], dtype=int32, offset=0)
func (r *RawTensor) String() string {
	values := make([]string, 0, r.NumElements())
	r.ForEachOffset(func(_, off int) {
		values = append(values, r.formatElement(off))
	})

	var sb strings.Builder
	sb.WriteString("Tensor(")
	if len(r.shape) == 0 {
		sb.WriteString(values[0])
	} else {
		writeNested(&sb, r.shape, values, len("Tensor("))
	}
	fmt.Fprintf(&sb, ",\n       shape=%v, strides=%v, dtype=%s, offset=%d)",
		[]int(r.shape), r.stride, r.dtype, r.offset)
	return sb.String()
}

func (r *RawTensor) formatElement(off int) string {
	switch r.dtype {
	case Uint8:
		return strconv.Itoa(int(Elements[uint8](r)[off]))
	case Int32:
		return strconv.Itoa(int(Elements[int32](r)[off]))
	case Float32:
		return strconv.FormatFloat(float64(Elements[float32](r)[off]), 'f', formatDecimals, 32)
	default:
		return "?"
	}
}

// writeNested writes values as bracketed rows. indent is the column of the
// outermost opening bracket.
func writeNested(sb *strings.Builder, shape Shape, values []string, indent int) {
	sb.WriteByte('[')
	if len(shape) == 1 {
		for i, v := range values {
			if i > 0 {
				sb.WriteString(", ")
				if i%formatValuesPerLine == 0 {
					sb.WriteString("\n")
					sb.WriteString(strings.Repeat(" ", indent+1))
				}
			}
			sb.WriteString(v)
		}
		sb.WriteByte(']')
		return
	}

	stride := 1
	if shape[0] > 0 {
		stride = len(values) / shape[0]
	}
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			sb.WriteString(",")
			sb.WriteString(strings.Repeat("\n", len(shape)-1))
			sb.WriteString(strings.Repeat(" ", indent+1))
		}
		writeNested(sb, shape[1:], values[i*stride:(i+1)*stride], indent+1)
	}
	sb.WriteByte(']')
}
