package wire

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content fingerprints.
// The version suffix leaves room for changing the algorithm later.
const (
	DomainQuery   = "querydsl/query/v1"
	DomainRequest = "querydsl/request/v1"
)

// Fingerprint computes SHA256(domain + 0x00 + NFC(data)) as lowercase hex.
//
// Rendered output is never normalized; only the fingerprint is, so that two
// documents differing only in Unicode composition share an identity.
func Fingerprint(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(norm.NFC.Bytes(data))
	return hex.EncodeToString(h.Sum(nil))
}
