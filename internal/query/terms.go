package query

import (
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// TermsQuery returns documents that contain one or more exact terms in a
// field. Unlike term, the conveniences sit beside the field key:
//
//	{"terms":{"tags":["a","b"],"boost":1.5}}
//
// Because the field shares an object with the conveniences, a field named
// "boost" or "_name" collides with them once they are set:
// Terms("boost", 1).Boost(2) renders {"terms":{"boost":[1],"boost":2.0}}.
// Field names are not checked, so avoid setting a convenience whose key
// equals the field.
type TermsQuery struct {
	field  string
	values []scalar.Scalar
	params params
}

// Terms creates a TermsQuery. Absent values are dropped; if none remain the
// query skips itself.
func Terms[T scalar.Value](field string, values ...T) TermsQuery {
	q := TermsQuery{field: field}
	for _, v := range values {
		s := scalar.Of(v)
		if s.IsAbsent() {
			continue
		}
		q.values = append(q.values, s)
	}
	return q
}

// Boost sets the relevance weight.
func (q TermsQuery) Boost(v float64) TermsQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q TermsQuery) Name(v string) TermsQuery {
	q.params = q.params.withName(v)
	return q
}

// Field returns the target field.
func (q TermsQuery) Field() string { return q.field }

// Values returns a copy of the present terms.
func (q TermsQuery) Values() []scalar.Scalar {
	return append([]scalar.Scalar(nil), q.values...)
}

// ShouldSkip reports whether no term is present.
func (q TermsQuery) ShouldSkip() bool {
	return len(q.values) == 0
}

// WireValue implements Query.
func (q TermsQuery) WireValue() wire.Value {
	values := make(wire.Array, len(q.values))
	for i, v := range q.values {
		values[i] = v
	}

	inner := wire.NewObject().Set(q.field, values)
	q.params.encode(inner)
	return wire.Wrap("terms", inner)
}

// MarshalJSON implements json.Marshaler.
func (q TermsQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (TermsQuery) queryNode() {}
