package query

import (
	"github.com/roach88/querydsl/internal/wire"
)

// MatchAllQuery matches all documents, giving them all a _score of 1.0
// unless boosted.
type MatchAllQuery struct {
	params params
}

// MatchAll creates a MatchAllQuery.
func MatchAll() MatchAllQuery {
	return MatchAllQuery{}
}

// Boost sets the score given to every document.
func (q MatchAllQuery) Boost(v float64) MatchAllQuery {
	q.params = q.params.withBoost(v)
	return q
}

// Name sets the _name label.
func (q MatchAllQuery) Name(v string) MatchAllQuery {
	q.params = q.params.withName(v)
	return q
}

// ShouldSkip always returns false.
func (q MatchAllQuery) ShouldSkip() bool { return false }

// WireValue implements Query.
func (q MatchAllQuery) WireValue() wire.Value {
	inner := wire.NewObject()
	q.params.encode(inner)
	return wire.Wrap("match_all", inner)
}

// MarshalJSON implements json.Marshaler.
func (q MatchAllQuery) MarshalJSON() ([]byte, error) { return marshal(q) }

func (MatchAllQuery) queryNode() {}
