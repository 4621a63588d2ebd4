package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querydsl/internal/query"
	"github.com/roach88/querydsl/internal/scalar"
)

func TestRequestRendering(t *testing.T) {
	tests := []struct {
		name     string
		request  Request
		expected string
		skip     bool
	}{
		{
			name:     "empty",
			request:  NewRequest(),
			expected: `{}`,
			skip:     true,
		},
		{
			name:     "query only",
			request:  NewRequest().Query(query.Term("user", "kimchy")),
			expected: `{"query":{"term":{"user":{"value":"kimchy"}}}}`,
		},
		{
			name:     "paging",
			request:  NewRequest().Query(query.MatchAll()).From(20).Size(10).MinScore(0.5),
			expected: `{"query":{"match_all":{}},"from":20,"size":10,"min_score":0.5}`,
		},
		{
			name:     "skipped query omitted",
			request:  NewRequest().Query(query.Term("user", scalar.None)).Size(5),
			expected: `{"size":5}`,
		},
		{
			name:     "empty bool omitted inside request",
			request:  NewRequest().Query(query.Bool().Filter(query.Term("user", scalar.None))),
			expected: `{}`,
			skip:     true,
		},
		{
			name:     "zero paging is present",
			request:  NewRequest().From(0).Size(0),
			expected: `{"from":0,"size":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.request.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
			assert.Equal(t, tt.skip, tt.request.ShouldSkip())
		})
	}
}

func TestRequestQueryValue(t *testing.T) {
	assert.Nil(t, NewRequest().QueryValue())

	q := query.Exists("user")
	assert.Equal(t, q, NewRequest().Query(q).QueryValue())
}

func TestRequestEmbeddedInHostValue(t *testing.T) {
	payload := struct {
		Index string  `json:"index"`
		Body  Request `json:"body"`
	}{
		Index: "logs",
		Body:  NewRequest().Query(query.Term("level", "error").Boost(2)),
	}

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":"logs","body":{"query":{"term":{"level":{"value":"error","boost":2.0}}}}}`, string(out))
}
