// Package definition loads declarative query documents.
//
// A document is a YAML, JSON or CUE file describing one search request:
//
//	name: recent-posts
//	query:
//	  bool:
//	    filter:
//	      - term: {field: status, value: published}
//	      - term: {field: author, value: null}
//	size: 10
//
// Every query is a mapping with a single key naming its kind. Body keys
// follow the builder methods of package query. A null value produces an
// absent scalar, so the author filter above skips itself and the request
// renders the same bytes as the equivalent Go builder chain.
//
// Failures are reported as *Error carrying the path of the offending key,
// for example "query.bool.filter[1].term.value".
package definition
