package query

import (
	"encoding/json"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/roach88/querydsl/internal/scalar"
	"github.com/roach88/querydsl/internal/wire"
)

// Query is any query kind.
//
// This is a sealed interface: only types in this package implement it.
// MarshalJSON is the hook the host encoder calls; WireValue is the same
// conversion without the final encoding step, used by enclosing containers.
type Query interface {
	wire.Skipper
	json.Marshaler

	// WireValue converts the query into its wire shape, tag layer included.
	WireValue() wire.Value

	queryNode()
}

// Queries is an ordered list of clauses.
type Queries []Query

// append returns a new list with the non-skipped queries added.
// The receiver's backing array is never written, so copies of a builder
// that share it are unaffected.
func (qs Queries) append(queries ...Query) Queries {
	out := slices.Clip(qs)
	for _, q := range queries {
		if q == nil || q.ShouldSkip() {
			continue
		}
		out = append(out, q)
	}
	return out
}

// ShouldSkip reports whether the list is empty.
func (qs Queries) ShouldSkip() bool {
	return len(qs) == 0
}

// WriteJSON implements wire.Value.
func (qs Queries) WriteJSON(stream *jsoniter.Stream) {
	arr := make(wire.Array, len(qs))
	for i, q := range qs {
		arr[i] = q.WireValue()
	}
	arr.WriteJSON(stream)
}

// params holds the conveniences shared by every query kind: a relevance
// boost and a caller-supplied name echoed back in matched_queries.
type params struct {
	boost scalar.Scalar
	name  scalar.Scalar
}

func (p params) withBoost(v float64) params {
	p.boost = scalar.Float(v)
	return p
}

func (p params) withName(v string) params {
	p.name = scalar.String(v)
	return p
}

// Number is any numeric type a boost can be given as.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// WithBoost sets the boost of any query kind from any numeric type. The
// Boost methods take float64, which untyped constants satisfy; typed
// values go through here instead of a conversion at the call site:
//
//	var weight int = 3
//	q := query.WithBoost(query.Term("user", "kimchy"), weight)
func WithBoost[Q interface{ Boost(float64) Q }, N Number](q Q, v N) Q {
	return q.Boost(float64(v))
}

// encode appends boost and _name when set.
func (p params) encode(obj *wire.Object) {
	obj.SetOptional("boost", p.boost)
	obj.SetOptional("_name", p.name)
}

// fieldAddressed wraps inner as {tag: {field: inner}}.
func fieldAddressed(tag, field string, inner wire.Value) wire.Value {
	return wire.Wrap(tag, wire.Wrap(field, inner))
}

func marshal(q Query) ([]byte, error) {
	return wire.Marshal(q.WireValue())
}
