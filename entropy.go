// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// InsecureConfirmationPhrase must be typed by the user before
// GenerateInsecureEntropy will produce anything.
const InsecureConfirmationPhrase = "LEARNING"

// Entropy is the raw bit material a mnemonic encodes. Bits are packed
// most significant bit first. The zero value is empty and invalid.
type Entropy struct {
	data []byte
}

// NewEntropy wraps a copy of b. len(b)*8 must be a supported entropy size.
func NewEntropy(b []byte) (Entropy, error) {
	if err := checkEntropyBits(len(b) * 8); err != nil {
		return Entropy{}, err
	}
	data := make([]byte, len(b))
	copy(data, b)
	return Entropy{data: data}, nil
}

// ParseEntropy parses a string of '0' and '1' characters, one per coin
// toss, as pasted in one go. The string must be exactly bits long.
func ParseEntropy(s string, bits int) (Entropy, error) {
	if err := checkEntropyBits(bits); err != nil {
		return Entropy{}, err
	}
	if len(s) != bits {
		return Entropy{}, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidEntropyLength, len(s), bits)
	}

	data := make([]byte, bits/8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			data[i/8] |= 0x80 >> (i % 8)
		default:
			return Entropy{}, fmt.Errorf("%w: %q at position %d (only 0 and 1 are allowed)", ErrInvalidEntropyCharacter, s[i], i+1)
		}
	}
	return Entropy{data: data}, nil
}

// GenerateInsecureEntropy draws every bit from a non-cryptographic
// pseudo-random generator.
//
// DO NOT use the result to protect real value. It exists so the tool can
// be demonstrated without tossing a coin 256 times. The call fails with
// ErrInsecureNotConfirmed unless confirmation equals
// InsecureConfirmationPhrase. If r is nil a time-seeded generator is used.
func GenerateInsecureEntropy(bits int, confirmation string, r *rand.Rand) (Entropy, error) {
	if confirmation != InsecureConfirmationPhrase {
		return Entropy{}, fmt.Errorf("%w: type %q to continue", ErrInsecureNotConfirmed, InsecureConfirmationPhrase)
	}
	if err := checkEntropyBits(bits); err != nil {
		return Entropy{}, err
	}
	if r == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec
		r = rand.New(rand.NewPCG(seed, seed>>32|seed<<32)) //nolint:gosec
	}

	data := make([]byte, bits/8)
	for i := 0; i < bits; i++ {
		if r.IntN(2) == 1 {
			data[i/8] |= 0x80 >> (i % 8)
		}
	}
	return Entropy{data: data}, nil
}

// Bits returns the entropy length in bits.
func (e Entropy) Bits() int {
	return len(e.data) * 8
}

// Bytes returns a copy of the packed entropy.
func (e Entropy) Bytes() []byte {
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out
}

// Bit returns bit i, counting from the first toss.
func (e Entropy) Bit(i int) byte {
	return (e.data[i/8] >> (7 - i%8)) & 1
}

// String renders the entropy as '0' and '1' characters.
func (e Entropy) String() string {
	var b strings.Builder
	b.Grow(e.Bits())
	for i := 0; i < e.Bits(); i++ {
		b.WriteByte('0' + e.Bit(i))
	}
	return b.String()
}

// Equal reports whether e and o hold the same bits.
func (e Entropy) Equal(o Entropy) bool {
	return bytes.Equal(e.data, o.data)
}

// Wipe zeroes the backing array. Copies made with Bytes are not affected.
func (e Entropy) Wipe() {
	clear(e.data)
}

// BitCollector accumulates entropy one toss at a time. Invalid tokens are
// rejected without changing the collected state, so callers can simply
// prompt again.
type BitCollector struct {
	bits int
	data []byte
	n    int
}

// NewBitCollector returns a collector for bits tosses.
func NewBitCollector(bits int) (*BitCollector, error) {
	if err := checkEntropyBits(bits); err != nil {
		return nil, err
	}
	return &BitCollector{bits: bits, data: make([]byte, bits/8)}, nil
}

// Add records one toss. token must be "0" or "1" once surrounding
// whitespace is removed.
func (c *BitCollector) Add(token string) error {
	if c.Done() {
		return fmt.Errorf("%w: all %d tosses already recorded", ErrInvalidEntropyLength, c.bits)
	}
	switch strings.TrimSpace(token) {
	case "0":
	case "1":
		c.data[c.n/8] |= 0x80 >> (c.n % 8)
	default:
		return fmt.Errorf("%w: %q (enter only 0 or 1)", ErrInvalidEntropyCharacter, token)
	}
	c.n++
	return nil
}

// Len returns the number of tosses recorded so far.
func (c *BitCollector) Len() int { return c.n }

// Total returns the number of tosses the collector expects.
func (c *BitCollector) Total() int { return c.bits }

// Remaining returns the number of tosses still missing.
func (c *BitCollector) Remaining() int { return c.bits - c.n }

// Done reports whether every toss has been recorded.
func (c *BitCollector) Done() bool { return c.n == c.bits }

// Entropy returns the collected entropy. It fails with ErrIncomplete until
// Done reports true.
func (c *BitCollector) Entropy() (Entropy, error) {
	if !c.Done() {
		return Entropy{}, fmt.Errorf("%w: %d of %d tosses recorded", ErrIncomplete, c.n, c.bits)
	}
	return NewEntropy(c.data)
}

// Wipe zeroes the collected tosses and resets the collector.
func (c *BitCollector) Wipe() {
	clear(c.data)
	c.n = 0
}
