// Package harness runs conformance scenarios against the query builders.
//
// A scenario is a YAML file holding a query (or search request)
// definition and the wire JSON it must render:
//
//	name: term_all_fields
//	description: conveniences follow the value inside the field object
//	query:
//	  term: {field: test, value: 123, boost: 2, name: test}
//	expect: '{"term":{"test":{"value":123,"boost":2.0,"_name":"test"}}}'
//
// Run compares structurally and reports a line diff on mismatch.
// RunWithGolden pins the exact bytes in testdata/golden.
package harness
