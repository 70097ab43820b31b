// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package cointoss turns binary entropy, typically written down one coin
// toss at a time, into a BIP39 mnemonic phrase, and validates existing
// phrases against their checksum.
//
// The package works purely on bits, integers and a fixed 2048-word table.
// It never stores the entropy it is given; callers should Wipe an Entropy
// value once the mnemonic has been written down.
//
// Supported entropy sizes and the resulting phrase lengths:
//   - 128 bits = 12 words (4 checksum bits)
//   - 160 bits = 15 words (5 checksum bits)
//   - 192 bits = 18 words (6 checksum bits)
//   - 224 bits = 21 words (7 checksum bits)
//   - 256 bits = 24 words (8 checksum bits)
package cointoss

import (
	"errors"
	"fmt"
)

// bitsPerWord is the width of one word index.
const bitsPerWord = 11

// EntropySizes lists every supported entropy length in bits.
var EntropySizes = []int{128, 160, 192, 224, 256}

// WordCounts lists every supported mnemonic length in words, in the same
// order as EntropySizes.
var WordCounts = []int{12, 15, 18, 21, 24}

var (
	ErrInvalidEntropyLength    = errors.New("invalid entropy length")
	ErrInvalidEntropyCharacter = errors.New("invalid entropy character")
	ErrUnknownWord             = errors.New("unknown word in mnemonic")
	ErrChecksumMismatch        = errors.New("checksum does not match")
	ErrWordlistFormat          = errors.New("invalid wordlist")
	ErrUnsupportedEntropyBits  = errors.New("unsupported entropy size")
	ErrUnsupportedWordCount    = errors.New("unsupported word count")
	ErrIndexOutOfRange         = errors.New("word index out of range")
	ErrUnsupportedLanguage     = errors.New("language is not supported")
	ErrInsecureNotConfirmed    = errors.New("insecure generation was not confirmed")
	ErrIncomplete              = errors.New("entropy is incomplete")
	ErrInternal                = errors.New("internal invariant violated")
)

// ChecksumBits returns the checksum length for the given entropy size.
func ChecksumBits(entropyBits int) (int, error) {
	if err := checkEntropyBits(entropyBits); err != nil {
		return 0, err
	}
	return entropyBits / 32, nil
}

// WordCount returns the number of words produced from entropyBits of
// entropy.
func WordCount(entropyBits int) (int, error) {
	if err := checkEntropyBits(entropyBits); err != nil {
		return 0, err
	}
	return (entropyBits + entropyBits/32) / bitsPerWord, nil
}

// EntropyBitsForWords returns the entropy size encoded by a mnemonic of
// the given length.
func EntropyBitsForWords(words int) (int, error) {
	for i, n := range WordCounts {
		if n == words {
			return EntropySizes[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %d (must be 12, 15, 18, 21, or 24)", ErrUnsupportedWordCount, words)
}

func checkEntropyBits(bits int) error {
	for _, n := range EntropySizes {
		if n == bits {
			return nil
		}
	}
	return fmt.Errorf("%w: %d bits (must be 128, 160, 192, 224, or 256)", ErrUnsupportedEntropyBits, bits)
}
