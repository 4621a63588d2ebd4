package query

import (
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// BoolQuery matches documents matching boolean combinations of other
// queries.
//
// Semantics:
//
//	must      clauses must match and contribute to the score
//	filter    clauses must match; scoring is ignored
//	should    clauses should match
//	must_not  clauses must not match; scoring is ignored
//
// Clauses that skip are dropped when added. An empty clause list is not
// rendered. A bool with no clauses at all skips itself inside another
// container but still renders as {"bool":{}} when serialized directly.
type BoolQuery struct {
	must               Queries
	filter             Queries
	should             Queries
	mustNot            Queries
	minimumShouldMatch scalar.Scalar
	params             params
}

// Bool creates an empty BoolQuery.
func Bool() BoolQuery {
	return BoolQuery{}
}

// Must adds clauses that must match.
func (q BoolQuery) Must(queries ...Query) BoolQuery {
	q.must = q.must.append(queries...)
	return q
}

// Filter adds clauses that must match in filter context.
func (q BoolQuery) Filter(queries ...Query) BoolQuery {
	q.filter = q.filter.append(queries...)
	return q
}

// Should adds clauses that should match.
func (q BoolQuery) Should(queries ...Query) BoolQuery {
	q.should = q.should.append(queries...)
	return q
}

// MustNot adds clauses that must not match.
func (q BoolQuery) MustNot(queries ...Query) BoolQuery {
	q.mustNot = q.mustNot.append(queries...)
	return q
}

// MinimumShouldMatch sets how many should clauses must match. Both counts
// (scalar.Int(2)) and percentages (scalar.String("75%")) are accepted.
func (q BoolQuery) MinimumShouldMatch(v scalar.Scalar) BoolQuery {
	q.minimumShouldMatch = v
	return q
}

// Boost sets the relevance weight.
func (q BoolQuery) Boost(v float64) BoolQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q BoolQuery) Name(v string) BoolQuery {
	q.params = q.params.withName(v)
	return q
}

// ShouldSkip reports whether all clause lists are empty.
func (q BoolQuery) ShouldSkip() bool {
	return q.must.ShouldSkip() &&
		q.filter.ShouldSkip() &&
		q.should.ShouldSkip() &&
		q.mustNot.ShouldSkip()
}

// WireValue implements Query.
func (q BoolQuery) WireValue() wire.Value {
	inner := wire.NewObject().
		SetOptional("must", q.must).
		SetOptional("filter", q.filter).
		SetOptional("should", q.should).
		SetOptional("must_not", q.mustNot).
		SetOptional("minimum_should_match", q.minimumShouldMatch)
	q.params.encode(inner)
	return wire.Wrap("bool", inner)
}

// MarshalJSON implements json.Marshaler.
func (q BoolQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (BoolQuery) queryNode() {}
