// Package query models the search service's structured query language as Go
// values and converts them to the nested JSON wire format.
//
// ARCHITECTURE:
//
// Every query kind follows the same pipeline:
//
//	[builder] → [query value] → ShouldSkip? → [WireValue adapter] → [wire.Marshal]
//
// Builders are value-receiver methods. Each returns a modified copy, so a
// query handed to an enclosing container is never changed afterwards.
//
// SKIP PROTOCOL:
//
// Every query implements wire.Skipper:
//
//   - A field-addressed query with a mandatory value (term, prefix, match)
//     skips when that value is absent.
//   - Terms skips when none of its values are present; range skips when no
//     bound is set.
//   - Bool skips when all of its clause lists are empty. Clauses that skip are
//     dropped as they are added, so Bool().Filter(Term("f", scalar.None))
//     renders {"bool":{}} when serialized on its own and is omitted entirely
//     when nested in another bool.
//   - Exists and match_all never skip.
//
// Optional per-kind keys and the shared conveniences (boost, _name) are
// filtered by the same protocol through wire.Object.SetOptional.
//
// WIRE SHAPE:
//
// Field-addressed kinds nest their inner bag under the field name, then under
// the kind tag:
//
//	{"term": {"user": {"value": "kimchy", "boost": 2.0, "_name": "t"}}}
//
// Other kinds put the inner bag directly under the tag:
//
//	{"bool": {"filter": [...], "boost": 1.0}}
//
// SEALED INTERFACE:
//
// Query uses the marker method pattern; only types in this package
// implement it.
package query
