// Package fingerprint derives stable content fingerprints used to recognise
// the same real-world posting across boards and across repeated runs.
//
// Canonicalization is fixed as NFKC, then case folding, then dropping
// punctuation and symbol runes, then collapsing whitespace. Two postings
// with equal (title, company, location) under these rules share a
// fingerprint regardless of source.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const fieldSeparator = "|"

var folder = cases.Fold()

// Job returns the hex fingerprint for a posting's identifying fields.
// Deterministic across process restarts; truncated SHA-256 — collision
// resistance, not secrecy, is the goal.
func Job(title, company, location string) string {
	key := canonical(title) + fieldSeparator + canonical(company) + fieldSeparator + canonical(location)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

// canonical normalizes one field: NFKC, casefold, strip punctuation and
// symbols, collapse whitespace runs to a single space.
func canonical(s string) string {
	s = folder.String(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// dropped
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
