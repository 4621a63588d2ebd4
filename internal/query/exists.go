package query

import (
	"github.com/roach88/querydsl/internal/wire"
)

// ExistsQuery returns documents that contain an indexed value for a field.
// The field name is a value here, not an indirection layer:
//
//	{"exists":{"field":"user"}}
type ExistsQuery struct {
	field  string
	params params
}

// Exists creates an ExistsQuery.
func Exists(field string) ExistsQuery {
	return ExistsQuery{field: field}
}

// Boost sets the relevance weight.
func (q ExistsQuery) Boost(v float64) ExistsQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q ExistsQuery) Name(v string) ExistsQuery {
	q.params = q.params.withName(v)
	return q
}

// ShouldSkip always returns false.
func (q ExistsQuery) ShouldSkip() bool { return false }

// WireValue implements Query.
func (q ExistsQuery) WireValue() wire.Value {
	inner := wire.NewObject().Set("field", wire.String(q.field))
	q.params.encode(inner)
	return wire.Wrap("exists", inner)
}

// MarshalJSON implements json.Marshaler.
func (q ExistsQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (ExistsQuery) queryNode() {}
