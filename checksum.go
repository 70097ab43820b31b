// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"crypto/sha256"
	"strings"
)

// Checksum holds the first Len bits of SHA-256(entropy). The bits are
// left-aligned in a single byte; at most 8 are ever used.
type Checksum struct {
	value byte
	n     int
}

// ComputeChecksum derives the checksum of e: SHA-256 over the packed
// entropy, truncated to e.Bits()/32 bits.
func ComputeChecksum(e Entropy) Checksum {
	hash := sha256.Sum256(e.data)
	n := e.Bits() / 32
	return Checksum{value: hash[0] & checksumMask(n), n: n}
}

// Len returns the checksum length in bits.
func (c Checksum) Len() int { return c.n }

// Bit returns checksum bit i.
func (c Checksum) Bit(i int) byte {
	return (c.value >> (7 - i)) & 1
}

// String renders the checksum as '0' and '1' characters.
func (c Checksum) String() string {
	var b strings.Builder
	for i := 0; i < c.n; i++ {
		b.WriteByte('0' + c.Bit(i))
	}
	return b.String()
}

// Equal compares two checksums bit for bit.
func (c Checksum) Equal(o Checksum) bool {
	return c.n == o.n && c.value == o.value
}

// checksumMask keeps the top n bits of a byte.
func checksumMask(n int) byte {
	return byte(0xff << (8 - n))
}
