// Package search provides the search request body that carries a query.
//
// Only the parts that exercise query serialization live here: the query
// itself plus paging and score cut-off. The query key is omitted when the
// query skips, so a request built from only absent conditions renders {}.
package search

import (
	"github.com/roach88/querydsl/internal/query"
	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// Request is the body of a _search call.
type Request struct {
	query    query.Query
	from     scalar.Scalar
	size     scalar.Scalar
	minScore scalar.Scalar
}

// NewRequest creates an empty request.
func NewRequest() Request {
	return Request{}
}

// Query sets the query.
func (r Request) Query(q query.Query) Request {
	r.query = q
	return r
}

// From sets the starting offset.
func (r Request) From(v int64) Request {
	r.from = scalar.Int(v)
	return r
}

// Size sets the number of hits to return.
func (r Request) Size(v int64) Request {
	r.size = scalar.Int(v)
	return r
}

// MinScore drops hits scoring below v.
func (r Request) MinScore(v float64) Request {
	r.minScore = scalar.Float(v)
	return r
}

// QueryValue returns the query, or nil when none is set.
func (r Request) QueryValue() query.Query {
	return r.query
}

// ShouldSkip reports whether the request carries nothing.
func (r Request) ShouldSkip() bool {
	return (r.query == nil || r.query.ShouldSkip()) &&
		r.from.ShouldSkip() &&
		r.size.ShouldSkip() &&
		r.minScore.ShouldSkip()
}

// WireValue converts the request into its wire shape.
func (r Request) WireValue() wire.Value {
	body := wire.NewObject()
	if r.query != nil && !r.query.ShouldSkip() {
		body.Set("query", r.query.WireValue())
	}
	body.SetOptional("from", r.from).
		SetOptional("size", r.size).
		SetOptional("min_score", r.minScore)
	return body
}

// MarshalJSON implements json.Marshaler.
func (r Request) MarshalJSON() ([]byte, error) {
	return wire.Marshal(r.WireValue())
}
