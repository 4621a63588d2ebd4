package definition

import (
	"fmt"
	"slices"

	"github.com/roach88/querydsl/internal/query"
	"github.com/roach88/querydsl/internal/scalar"
)

// Kinds lists the query kinds a definition may name, in sorted order.
var Kinds = []string{"bool", "exists", "match", "match_all", "prefix", "range", "term", "terms"}

// ParseQuery builds a query from its decoded definition, a single-key
// mapping {kind: body}.
func ParseQuery(v any) (query.Query, error) {
	return parseQuery("query", v)
}

func parseQuery(path string, v any) (query.Query, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, errorf(path, ErrInvalidType, "expected a mapping with one query kind, got %s", typeName(v))
	}
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return nil, errorf(path, ErrInvalidType, "expected exactly one query kind, got %d %v", len(m), keys)
	}

	var kind string
	var raw any
	for k, val := range m {
		kind, raw = k, val
	}

	b, err := newBody(path+"."+kind, raw)
	if err != nil {
		return nil, err
	}

	var q query.Query
	switch kind {
	case "term":
		q, err = parseTerm(b)
	case "terms":
		q, err = parseTerms(b)
	case "match":
		q, err = parseMatch(b)
	case "prefix":
		q, err = parsePrefix(b)
	case "range":
		q, err = parseRange(b)
	case "exists":
		q, err = parseExists(b)
	case "match_all":
		q, err = applyParams(b, query.MatchAll())
	case "bool":
		q, err = parseBool(b)
	default:
		return nil, errorf(path+"."+kind, ErrUnknownKind, "unknown query kind %q (expected one of %v)", kind, Kinds)
	}
	if err != nil {
		return nil, err
	}
	if err := b.done(); err != nil {
		return nil, err
	}
	return q, nil
}

// applyParams reads the boost and name keys shared by every kind.
func applyParams[Q interface {
	Boost(float64) Q
	Name(string) Q
}](b *body, q Q) (Q, error) {
	boost, ok, err := b.optionalFloat("boost")
	if err != nil {
		return q, err
	}
	if ok {
		q = q.Boost(boost)
	}
	name, ok, err := b.optionalString("name")
	if err != nil {
		return q, err
	}
	if ok {
		q = q.Name(name)
	}
	return q, nil
}

func parseTerm(b *body) (query.Query, error) {
	field, err := b.requiredString("field")
	if err != nil {
		return nil, err
	}
	value, err := b.requiredScalar("value")
	if err != nil {
		return nil, err
	}
	return applyParams(b, query.Term(field, value))
}

func parseTerms(b *body) (query.Query, error) {
	field, err := b.requiredString("field")
	if err != nil {
		return nil, err
	}
	if _, present := b.m["values"]; !present {
		return nil, errorf(b.child("values"), ErrMissingField, "values is required")
	}
	list, _, err := b.optionalList("values")
	if err != nil {
		return nil, err
	}
	values := make([]scalar.Scalar, 0, len(list))
	for i, item := range list {
		s, err := toScalar(fmt.Sprintf("%s[%d]", b.child("values"), i), item)
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return applyParams(b, query.Terms(field, values...))
}

func parseMatch(b *body) (query.Query, error) {
	field, err := b.requiredString("field")
	if err != nil {
		return nil, err
	}
	text, err := b.requiredScalar("query")
	if err != nil {
		return nil, err
	}
	q := query.Match(field, text)

	op, ok, err := b.optionalString("operator")
	if err != nil {
		return nil, err
	}
	if ok {
		switch query.Operator(op) {
		case query.OperatorOr, query.OperatorAnd:
			q = q.Operator(query.Operator(op))
		default:
			return nil, errorf(b.child("operator"), ErrInvalidType, "operator must be %q or %q, got %q",
				query.OperatorOr, query.OperatorAnd, op)
		}
	}

	analyzer, ok, err := b.optionalString("analyzer")
	if err != nil {
		return nil, err
	}
	if ok {
		q = q.Analyzer(analyzer)
	}
	return applyParams(b, q)
}

func parsePrefix(b *body) (query.Query, error) {
	field, err := b.requiredString("field")
	if err != nil {
		return nil, err
	}
	value, err := b.requiredScalar("value")
	if err != nil {
		return nil, err
	}
	q := query.Prefix(field, value)

	ci, ok, err := b.optionalBool("case_insensitive")
	if err != nil {
		return nil, err
	}
	if ok {
		q = q.CaseInsensitive(ci)
	}
	return applyParams(b, q)
}

func parseRange(b *body) (query.Query, error) {
	field, err := b.requiredString("field")
	if err != nil {
		return nil, err
	}
	q := query.Range(field)

	bounds := []struct {
		key string
		set func(query.RangeQuery, scalar.Scalar) query.RangeQuery
	}{
		{"gt", query.RangeQuery.Gt},
		{"gte", query.RangeQuery.Gte},
		{"lt", query.RangeQuery.Lt},
		{"lte", query.RangeQuery.Lte},
	}
	for _, bound := range bounds {
		v, err := b.optionalScalar(bound.key)
		if err != nil {
			return nil, err
		}
		q = bound.set(q, v)
	}

	format, ok, err := b.optionalString("format")
	if err != nil {
		return nil, err
	}
	if ok {
		q = q.Format(format)
	}
	return applyParams(b, q)
}

func parseExists(b *body) (query.Query, error) {
	field, err := b.requiredString("field")
	if err != nil {
		return nil, err
	}
	return applyParams(b, query.Exists(field))
}

func parseBool(b *body) (query.Query, error) {
	q := query.Bool()

	clauses := []struct {
		key string
		add func(query.BoolQuery, ...query.Query) query.BoolQuery
	}{
		{"must", query.BoolQuery.Must},
		{"filter", query.BoolQuery.Filter},
		{"should", query.BoolQuery.Should},
		{"must_not", query.BoolQuery.MustNot},
	}
	for _, clause := range clauses {
		list, _, err := b.optionalList(clause.key)
		if err != nil {
			return nil, err
		}
		children := make([]query.Query, 0, len(list))
		for i, item := range list {
			child, err := parseQuery(fmt.Sprintf("%s[%d]", b.child(clause.key), i), item)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		q = clause.add(q, children...)
	}

	msm, err := b.optionalScalar("minimum_should_match")
	if err != nil {
		return nil, err
	}
	if !msm.IsAbsent() {
		q = q.MinimumShouldMatch(msm)
	}
	return applyParams(b, q)
}
