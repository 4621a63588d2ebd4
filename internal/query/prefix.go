package query

import (
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// PrefixQuery returns documents that contain a specific prefix in a field.
type PrefixQuery struct {
	field           string
	value           scalar.Scalar
	caseInsensitive scalar.Scalar
	params          params
}

// Prefix creates a PrefixQuery. It skips itself when value is absent.
func Prefix[T scalar.Value](field string, value T) PrefixQuery {
	return PrefixQuery{
		field: field,
		value: scalar.Of(value),
	}
}

// CaseInsensitive sets case_insensitive. An explicit false is rendered.
func (q PrefixQuery) CaseInsensitive(v bool) PrefixQuery {
	q.caseInsensitive = scalar.Bool(v)
	return q
}

// Boost sets the relevance weight.
func (q PrefixQuery) Boost(v float64) PrefixQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q PrefixQuery) Name(v string) PrefixQuery {
	q.params = q.params.withName(v)
	return q
}

// ShouldSkip reports whether the prefix is absent.
func (q PrefixQuery) ShouldSkip() bool {
	return q.value.ShouldSkip()
}

// WireValue implements Query.
func (q PrefixQuery) WireValue() wire.Value {
	inner := wire.NewObject().
		Set("value", q.value).
		SetOptional("case_insensitive", q.caseInsensitive)
	q.params.encode(inner)
	return fieldAddressed("prefix", q.field, inner)
}

// MarshalJSON implements json.Marshaler.
func (q PrefixQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (PrefixQuery) queryNode() {}
