package query

import (
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// TermQuery returns documents that contain an exact term in a field.
//
// Use it for precise values such as a price, a product ID or a username.
// The term must match the indexed value exactly, including whitespace and
// capitalization.
//
//	query.Term("user.id", "kimchy").Boost(2).Name("by-user")
//
// renders
//
//	{"term":{"user.id":{"value":"kimchy","boost":2.0,"_name":"by-user"}}}
type TermQuery struct {
	field  string
	value  scalar.Scalar
	params params
}

// Term creates a TermQuery. The field is stored verbatim. Passing
// scalar.None is allowed and yields a query that skips itself, which lets
// callers build conditional clauses without branching.
func Term[T scalar.Value](field string, value T) TermQuery {
	return TermQuery{
		field: field,
		value: scalar.Of(value),
	}
}

// Boost sets the relevance weight.
func (q TermQuery) Boost(v float64) TermQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q TermQuery) Name(v string) TermQuery {
	q.params = q.params.withName(v)
	return q
}

// Field returns the target field.
func (q TermQuery) Field() string { return q.field }

// Value returns the term.
func (q TermQuery) Value() scalar.Scalar { return q.value }

// ShouldSkip reports whether the term is absent.
func (q TermQuery) ShouldSkip() bool {
	return q.value.ShouldSkip()
}

// WireValue implements Query.
func (q TermQuery) WireValue() wire.Value {
	inner := wire.NewObject().Set("value", q.value)
	q.params.encode(inner)
	return fieldAddressed("term", q.field, inner)
}

// MarshalJSON implements json.Marshaler.
func (q TermQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (TermQuery) queryNode() {}
