// Package wire implements a minimalistic, streaming, zero-copy codec
// for the Protocol Buffers wire format: a Reader that walks a byte
// buffer field by field without copying it, and a Writer that appends
// fields to a Buffer with nested-submessage length back-patching.
//
// There is no schema, no generated code, and no reflection anywhere
// in this package — callers supply field numbers and wire types
// directly and decide for themselves which typed accessor to call.
package wire
