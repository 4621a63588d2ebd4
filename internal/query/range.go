package query

import (
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// RangeQuery returns documents that contain terms within a provided range.
// Bounds are scalars so numbers and date math strings ("now-1d/d") both fit.
type RangeQuery struct {
	field  string
	gt     scalar.Scalar
	gte    scalar.Scalar
	lt     scalar.Scalar
	lte    scalar.Scalar
	format scalar.Scalar
	params params
}

// Range creates a RangeQuery with no bounds. It skips itself until at least
// one bound is set.
func Range(field string) RangeQuery {
	return RangeQuery{field: field}
}

// Gt sets the exclusive lower bound.
func (q RangeQuery) Gt(v scalar.Scalar) RangeQuery {
	q.gt = v
	return q
}

// Gte sets the inclusive lower bound.
func (q RangeQuery) Gte(v scalar.Scalar) RangeQuery {
	q.gte = v
	return q
}

// Lt sets the exclusive upper bound.
func (q RangeQuery) Lt(v scalar.Scalar) RangeQuery {
	q.lt = v
	return q
}

// Lte sets the inclusive upper bound.
func (q RangeQuery) Lte(v scalar.Scalar) RangeQuery {
	q.lte = v
	return q
}

// Format sets the date format used to parse date bounds.
func (q RangeQuery) Format(v string) RangeQuery {
	q.format = scalar.String(v)
	return q
}

// Boost sets the relevance weight.
func (q RangeQuery) Boost(v float64) RangeQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q RangeQuery) Name(v string) RangeQuery {
	q.params = q.params.withName(v)
	return q
}

// ShouldSkip reports whether every bound is absent.
func (q RangeQuery) ShouldSkip() bool {
	return q.gt.ShouldSkip() &&
		q.gte.ShouldSkip() &&
		q.lt.ShouldSkip() &&
		q.lte.ShouldSkip()
}

// WireValue implements Query.
func (q RangeQuery) WireValue() wire.Value {
	inner := wire.NewObject().
		SetOptional("gt", q.gt).
		SetOptional("gte", q.gte).
		SetOptional("lt", q.lt).
		SetOptional("lte", q.lte).
		SetOptional("format", q.format)
	q.params.encode(inner)
	return fieldAddressed("range", q.field, inner)
}

// MarshalJSON implements json.Marshaler.
func (q RangeQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (RangeQuery) queryNode() {}
