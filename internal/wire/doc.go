// Package wire provides the ordered JSON representation that every query
// kind is assembled into before it is written out.
//
// Serialization is an explicit two-phase process:
//
//  1. Assemble: an adapter builds an *Object, inserting mandatory keys with
//     Set and optional keys with SetOptional. SetOptional consults the
//     Skipper protocol, so absent values never reach the output.
//  2. Encode: Marshal or MarshalIndent walks the assembled tree and writes
//     it through a json-iterator Stream.
//
// Objects keep insertion order. Two calls to Marshal with the same input
// always produce the same bytes.
//
// This package imports nothing internal; scalar and query build on it.
package wire
