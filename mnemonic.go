// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"fmt"
	"strings"
)

// Mnemonic is an ordered sequence of words, one per 11-bit group.
type Mnemonic []string

// ParseMnemonic splits s on runs of whitespace and lower-cases each word
// into NFKD form.
// It does not check the words against any list; use Decode or Validate
// for that.
func ParseMnemonic(s string) Mnemonic {
	fields := strings.Fields(s)
	m := make(Mnemonic, len(fields))
	for i, f := range fields {
		m[i] = normalizeWord(f)
	}
	return m
}

// String joins the words with single spaces.
func (m Mnemonic) String() string {
	return strings.Join(m, " ")
}

// Len returns the number of words.
func (m Mnemonic) Len() int { return len(m) }

// NewMnemonic computes the checksum of e and encodes both with wl.
func NewMnemonic(e Entropy, wl *Wordlist) (Mnemonic, Checksum, error) {
	cs := ComputeChecksum(e)
	m, err := Encode(e, cs, wl)
	if err != nil {
		return nil, Checksum{}, err
	}
	return m, cs, nil
}

// Encode appends cs to e, splits the result into 11-bit big-endian
// groups and maps each group to a word.
func Encode(e Entropy, cs Checksum, wl *Wordlist) (Mnemonic, error) {
	if err := checkEntropyBits(e.Bits()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if cs.Len() != e.Bits()/32 {
		return nil, fmt.Errorf("%w: %d checksum bits for %d entropy bits", ErrInternal, cs.Len(), e.Bits())
	}
	total := e.Bits() + cs.Len()
	if total%bitsPerWord != 0 {
		return nil, fmt.Errorf("%w: %d bits do not split into %d-bit groups", ErrInternal, total, bitsPerWord)
	}

	combined := make([]byte, 0, len(e.data)+1)
	combined = append(combined, e.data...)
	combined = append(combined, cs.value)
	defer clear(combined)

	words := make(Mnemonic, total/bitsPerWord)
	for i := range words {
		idx := readGroup(combined, i*bitsPerWord)
		w, err := wl.WordAt(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		words[i] = w
	}
	return words, nil
}

// Decode maps each word back to its index and splits the reassembled bits
// into entropy and checksum. The checksum is returned as found in the
// phrase; it is not verified here.
func Decode(m Mnemonic, wl *Wordlist) (Entropy, Checksum, error) {
	entBits, err := EntropyBitsForWords(len(m))
	if err != nil {
		return Entropy{}, Checksum{}, err
	}
	csBits := entBits / 32

	combined := make([]byte, (entBits+csBits+7)/8)
	defer clear(combined)
	for i, w := range m {
		idx, ok := wl.IndexOf(w)
		if !ok {
			return Entropy{}, Checksum{}, fmt.Errorf("%w: %q (word %d)", ErrUnknownWord, w, i+1)
		}
		writeGroup(combined, i*bitsPerWord, idx)
	}

	e, err := NewEntropy(combined[:entBits/8])
	if err != nil {
		return Entropy{}, Checksum{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	cs := Checksum{value: combined[entBits/8] & checksumMask(csBits), n: csBits}
	return e, cs, nil
}

// Validate decodes m and recomputes the checksum of its entropy. It
// returns nil for a valid mnemonic, ErrChecksumMismatch when the checksum
// differs, and the Decode error otherwise.
func Validate(m Mnemonic, wl *Wordlist) error {
	e, cs, err := Decode(m, wl)
	if err != nil {
		return err
	}
	defer e.Wipe()

	if want := ComputeChecksum(e); !want.Equal(cs) {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, cs, want)
	}
	return nil
}

// IsValid reports whether Validate accepts m.
func IsValid(m Mnemonic, wl *Wordlist) bool {
	return Validate(m, wl) == nil
}

// readGroup reads the 11-bit big-endian value starting at bit offset off.
func readGroup(buf []byte, off int) int {
	v := 0
	for j := 0; j < bitsPerWord; j++ {
		p := off + j
		v = v<<1 | int((buf[p/8]>>(7-p%8))&1)
	}
	return v
}

// writeGroup stores the low 11 bits of v at bit offset off.
func writeGroup(buf []byte, off, v int) {
	for j := 0; j < bitsPerWord; j++ {
		if v&(1<<(bitsPerWord-1-j)) == 0 {
			continue
		}
		p := off + j
		buf[p/8] |= 0x80 >> (p % 8)
	}
}
