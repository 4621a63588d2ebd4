package query

import (
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// Operator is the boolean logic used to combine analyzed match terms.
type Operator string

const (
	OperatorOr  Operator = "or"
	OperatorAnd Operator = "and"
)

// MatchQuery returns documents that match a provided text, number, date or
// boolean value. The text is analyzed before matching.
type MatchQuery struct {
	field    string
	query    scalar.Scalar
	operator scalar.Scalar
	analyzer scalar.Scalar
	params   params
}

// Match creates a MatchQuery. It skips itself when query is absent.
func Match[T scalar.Value](field string, query T) MatchQuery {
	return MatchQuery{
		field: field,
		query: scalar.Of(query),
	}
}

// Operator sets how analyzed terms are combined.
func (q MatchQuery) Operator(op Operator) MatchQuery {
	q.operator = scalar.String(string(op))
	return q
}

// Analyzer overrides the analyzer used for the query text.
func (q MatchQuery) Analyzer(name string) MatchQuery {
	q.analyzer = scalar.String(name)
	return q
}

// Boost sets the relevance weight.
func (q MatchQuery) Boost(v float64) MatchQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q MatchQuery) Name(v string) MatchQuery {
	q.params = q.params.withName(v)
	return q
}

// ShouldSkip reports whether the query text is absent.
func (q MatchQuery) ShouldSkip() bool {
	return q.query.ShouldSkip()
}

// WireValue implements Query.
func (q MatchQuery) WireValue() wire.Value {
	inner := wire.NewObject().
		Set("query", q.query).
		SetOptional("operator", q.operator).
		SetOptional("analyzer", q.analyzer)
	q.params.encode(inner)
	return fieldAddressed("match", q.field, inner)
}

// MarshalJSON implements json.Marshaler.
func (q MatchQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (MatchQuery) queryNode() {}
