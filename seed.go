// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	// SeedSize is the length of a BIP39 seed in bytes.
	SeedSize = 64

	seedIterations = 2048
	seedSaltPrefix = "mnemonic"
)

// Seed stretches a mnemonic and optional passphrase into the 64-byte seed
// consumed by hierarchical key derivation. Both inputs are normalised to
// NFKD first, so a passphrase typed with composed or decomposed accents
// yields the same seed.
//
// Seed does not validate m; call Validate first.
func Seed(m Mnemonic, passphrase string) []byte {
	password := norm.NFKD.String(m.String())
	salt := seedSaltPrefix + norm.NFKD.String(passphrase)
	return pbkdf2.Key([]byte(password), []byte(salt), seedIterations, SeedSize, sha512.New)
}
