package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	data := []byte(`{"term":{"user":{"value":"kimchy"}}}`)

	a := Fingerprint(DomainQuery, data)
	b := Fingerprint(DomainQuery, data)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintDomainSeparation(t *testing.T) {
	data := []byte(`{"match_all":{}}`)

	assert.NotEqual(t,
		Fingerprint(DomainQuery, data),
		Fingerprint(DomainRequest, data),
	)
}

func TestFingerprintNormalizesComposition(t *testing.T) {
	composed := []byte("{\"term\":{\"name\":{\"value\":\"caf\u00e9\"}}}")
	decomposed := []byte("{\"term\":{\"name\":{\"value\":\"cafe\u0301\"}}}")

	assert.Equal(t,
		Fingerprint(DomainQuery, composed),
		Fingerprint(DomainQuery, decomposed),
	)
}

func TestFingerprintDiffersOnContent(t *testing.T) {
	assert.NotEqual(t,
		Fingerprint(DomainQuery, []byte(`{"term":{"a":{"value":1}}}`)),
		Fingerprint(DomainQuery, []byte(`{"term":{"a":{"value":2}}}`)),
	)
}
