package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/roach88/querydsl/internal/definition"
)

// jsonNumbers keeps number literals as written, so 2 and 2.0 compare unequal.
var jsonNumbers = jsoniter.Config{UseNumber: true}.Froze()

// canonicalJSON lays out both sides of a diff the same way.
var canonicalJSON = jsoniter.Config{
	UseNumber:   true,
	SortMapKeys: true,
}.Froze()

// Renderable is what a scenario builds: a query or a search request.
type Renderable interface {
	MarshalJSON() ([]byte, error)
	ShouldSkip() bool
}

// Build constructs the query or request a scenario describes.
func Build(s *Scenario) (Renderable, error) {
	if s.Query != nil {
		q, err := definition.ParseQuery(s.Query)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	req, err := definition.ParseRequest(s.Request)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Run executes a scenario and returns the result.
//
// The rendered bytes are compared with Expect structurally: object key
// order is ignored but number literals must match exactly. A returned
// error means the scenario itself is broken; a mismatch is reported
// through Result.Pass.
func Run(scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	value, err := Build(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", scenario.Name, err)
	}
	out, err := value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", scenario.Name, err)
	}

	result := NewResult(scenario.Name)
	result.Rendered = string(out)
	result.Skipped = value.ShouldSkip()

	equal, err := SemanticEqual([]byte(scenario.Expect), out)
	if err != nil {
		return nil, err
	}
	if !equal {
		result.AddError("rendered JSON does not match expect")
		diff, err := Diff([]byte(scenario.Expect), out)
		if err != nil {
			return nil, err
		}
		result.Diff = diff
	}

	if scenario.Skip != nil && *scenario.Skip != result.Skipped {
		result.AddError(fmt.Sprintf("expected skip=%t, got skip=%t", *scenario.Skip, result.Skipped))
	}
	return result, nil
}

// SemanticEqual reports whether two JSON documents hold the same values,
// ignoring object key order and whitespace.
func SemanticEqual(a, b []byte) (bool, error) {
	var av, bv any
	if err := jsonNumbers.Unmarshal(a, &av); err != nil {
		return false, fmt.Errorf("failed to decode expected JSON: %w", err)
	}
	if err := jsonNumbers.Unmarshal(b, &bv); err != nil {
		return false, fmt.Errorf("failed to decode rendered JSON: %w", err)
	}
	return reflect.DeepEqual(av, bv), nil
}

// Diff computes a line diff of expected against actual after laying both
// out as indented JSON with sorted keys.
func Diff(expected, actual []byte) ([]DiffLine, error) {
	left, err := canonicalText(expected)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize expected JSON: %w", err)
	}
	right, err := canonicalText(actual)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize rendered JSON: %w", err)
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out, nil
}

// canonicalText sorts keys with jsoniter, then indents with json.Indent,
// which only rewrites whitespace and keeps number literals intact.
func canonicalText(data []byte) (string, error) {
	var v any
	if err := jsonNumbers.Unmarshal(data, &v); err != nil {
		return "", err
	}
	compact, err := canonicalJSON.Marshal(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}
