// Package jsoncodec serializes values to and from JSON text with one of a
// fixed set of date patterns.
//
// A Registry holds one Codec per supported pattern. It is built once with
// NewRegistry, never changes afterwards, and may be shared between
// goroutines. Every codec omits null members when encoding, ignores unknown
// members when decoding, and accepts relaxed input: unquoted member names,
// single-quoted strings and raw control characters inside strings.
//
// Two families of calls sit side by side. ToJSON, FromJSON and their
// WithPattern variants log failures and report them with a false second
// return value. Marshal, Unmarshal and Decode return the error instead.
// Generic containers need no special handling: the type argument carries
// the element types, as in FromJSON[[]Company] or FromJSON[map[string]Event].
package jsoncodec
