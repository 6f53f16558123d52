// Package interop converts tensors to and from representations consumed by
// external dense-array libraries.
//
// Array is the byte-level form (buffer, shape, byte strides, type string) a
// binding layer hands to another array library; it shares memory with the
// tensor whenever the tensor is contiguous. ToDense and FromDense convert
// between tensors and gonum matrices.
package interop
