// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"encoding/hex"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/tyler-smith/go-bip39"
)

// Reference vectors published with BIP39.
var referenceVectors = []struct {
	entropy  string
	mnemonic string
}{
	{
		"00000000000000000000000000000000",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
	},
	{
		"7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f",
		"legal winner thank year wave sausage worth useful legal winner thank yellow",
	},
	{
		"80808080808080808080808080808080",
		"letter advice cage absurd amount doctor acoustic avoid letter advice cage above",
	},
	{
		"ffffffffffffffffffffffffffffffff",
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
	},
	{
		"9e885d952ad362caeb4efe34a8e91bd2",
		"ozone drill grab fiber curtain grace pudding thank cruise elder eight picnic",
	},
	{
		"000000000000000000000000000000000000000000000000",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon agent",
	},
	{
		"7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f",
		"legal winner thank year wave sausage worth useful legal winner thank year wave sausage worth useful legal will",
	},
	{
		"ffffffffffffffffffffffffffffffffffffffffffffffff",
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo when",
	},
	{
		"0000000000000000000000000000000000000000000000000000000000000000",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
	},
	{
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo vote",
	},
}

func mustEntropyHex(t *testing.T, s string) Entropy {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	e, err := NewEntropy(b)
	if err != nil {
		t.Fatalf("NewEntropy(%s): %v", s, err)
	}
	return e
}

func TestNewMnemonic_ReferenceVectors(t *testing.T) {
	wl := English()
	for _, v := range referenceVectors {
		t.Run(v.entropy, func(t *testing.T) {
			is := is.New(t)
			e := mustEntropyHex(t, v.entropy)

			m, _, err := NewMnemonic(e, wl)
			is.NoErr(err)
			is.Equal(m.String(), v.mnemonic)
			is.NoErr(Validate(m, wl))
		})
	}
}

// TestNewMnemonic_AllZeroTosses is the 128 coin tosses of heads case.
func TestNewMnemonic_AllZeroTosses(t *testing.T) {
	is := is.New(t)

	e, err := ParseEntropy(strings.Repeat("0", 128), 128)
	is.NoErr(err)

	m, cs, err := NewMnemonic(e, English())
	is.NoErr(err)
	is.Equal(cs.String(), "0011")
	is.Equal(m.String(), "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
}

func TestNewMnemonic_MatchesGoBIP39(t *testing.T) {
	wl := English()
	r := rand.New(rand.NewPCG(1, 2))

	for _, bits := range EntropySizes {
		for i := 0; i < 20; i++ {
			is := is.New(t)
			e, err := GenerateInsecureEntropy(bits, InsecureConfirmationPhrase, r)
			is.NoErr(err)

			m, _, err := NewMnemonic(e, wl)
			is.NoErr(err)

			want, err := bip39.NewMnemonic(e.Bytes())
			is.NoErr(err)
			is.Equal(m.String(), want)
		}
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	is := is.New(t)
	e := mustEntropyHex(t, "9e885d952ad362caeb4efe34a8e91bd2")

	cs1 := ComputeChecksum(e)
	cs2 := ComputeChecksum(e)
	cs3 := ComputeChecksum(e)

	is.True(cs1.Equal(cs2))
	is.True(cs2.Equal(cs3))
	is.Equal(cs1.Len(), 4)
}

func TestChecksum_Length(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, bits := range EntropySizes {
		is := is.New(t)
		e, err := GenerateInsecureEntropy(bits, InsecureConfirmationPhrase, r)
		is.NoErr(err)

		cs := ComputeChecksum(e)
		is.Equal(cs.Len(), bits/32)
		is.Equal(len(cs.String()), bits/32)
	}
}

func TestWordCount_LengthLaw(t *testing.T) {
	is := is.New(t)
	for i, bits := range EntropySizes {
		n, err := WordCount(bits)
		is.NoErr(err)
		is.Equal(n, (bits+bits/32)/11)
		is.Equal(n, WordCounts[i])

		back, err := EntropyBitsForWords(n)
		is.NoErr(err)
		is.Equal(back, bits)
	}

	_, err := WordCount(100)
	is.True(errors.Is(err, ErrUnsupportedEntropyBits))
	_, err = EntropyBitsForWords(13)
	is.True(errors.Is(err, ErrUnsupportedWordCount))
}

func TestDecode_RoundTrip(t *testing.T) {
	wl := English()
	r := rand.New(rand.NewPCG(5, 6))

	for _, bits := range EntropySizes {
		for i := 0; i < 50; i++ {
			is := is.New(t)
			e, err := GenerateInsecureEntropy(bits, InsecureConfirmationPhrase, r)
			is.NoErr(err)

			m, cs, err := NewMnemonic(e, wl)
			is.NoErr(err)
			n, _ := WordCount(bits)
			is.Equal(m.Len(), n)

			gotE, gotCS, err := Decode(m, wl)
			is.NoErr(err)
			is.True(gotE.Equal(e))
			is.True(gotCS.Equal(cs))
		}
	}
}

func TestDecode_UnknownWord(t *testing.T) {
	is := is.New(t)
	m := ParseMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon bitcoin")

	_, _, err := Decode(m, English())
	is.True(errors.Is(err, ErrUnknownWord))
	is.True(strings.Contains(err.Error(), "bitcoin"))
}

func TestDecode_NeverPanics(t *testing.T) {
	wl := English()
	inputs := []string{
		"",
		"abandon",
		"abandon abandon abandon",
		strings.Repeat("zoo ", 13),
		strings.Repeat("zoo ", 25),
		"not enough words here",
		"ABANDON Abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ABOUT",
	}
	for _, in := range inputs {
		is := is.New(t)
		_, _, err := Decode(ParseMnemonic(in), wl)
		if err != nil {
			is.True(errors.Is(err, ErrUnknownWord) || errors.Is(err, ErrUnsupportedWordCount))
		}
	}
}

func TestValidate(t *testing.T) {
	wl := English()
	tests := []struct {
		name     string
		mnemonic string
		wantErr  error
	}{
		{
			name:     "valid 12 words",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		},
		{
			name:     "valid 24 words",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
		},
		{
			name:     "mixed case and extra spaces",
			mnemonic: "  Abandon abandon  abandon abandon abandon abandon abandon abandon abandon abandon abandon ABOUT ",
		},
		{
			name:     "wrong checksum",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
			wantErr:  ErrChecksumMismatch,
		},
		{
			name:     "24 words wrong checksum",
			mnemonic: strings.TrimSpace(strings.Repeat("abandon ", 24)),
			wantErr:  ErrChecksumMismatch,
		},
		{
			name:     "unknown word",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abcd",
			wantErr:  ErrUnknownWord,
		},
		{
			name:     "empty",
			mnemonic: "",
			wantErr:  ErrUnsupportedWordCount,
		},
		{
			name:     "single word",
			mnemonic: "abandon",
			wantErr:  ErrUnsupportedWordCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			err := Validate(ParseMnemonic(tt.mnemonic), wl)
			if tt.wantErr == nil {
				is.NoErr(err)
				return
			}
			is.True(errors.Is(err, tt.wantErr))
		})
	}
}

func TestValidate_SingleBitMutations(t *testing.T) {
	wl := English()
	r := rand.New(rand.NewPCG(7, 8))

	for _, bits := range []int{128, 256} {
		is := is.New(t)
		e, err := GenerateInsecureEntropy(bits, InsecureConfirmationPhrase, r)
		is.NoErr(err)
		m, _, err := NewMnemonic(e, wl)
		is.NoErr(err)

		total := m.Len() * bitsPerWord
		rejected := 0
		for p := 0; p < total; p++ {
			mutated := make(Mnemonic, m.Len())
			copy(mutated, m)
			word := p / bitsPerWord
			idx, _ := wl.IndexOf(mutated[word])
			idx ^= 1 << (bitsPerWord - 1 - p%bitsPerWord)
			mutated[word], _ = wl.WordAt(idx)

			if !IsValid(mutated, wl) {
				rejected++
			}
		}
		// Flipping a checksum bit is always caught; flipping an entropy bit
		// slips through with probability 2^-(bits/32).
		is.True(rejected >= total*3/4)
	}
}

func TestValidate_ConcurrentUse(t *testing.T) {
	is := is.New(t)
	wl := English()

	var wg sync.WaitGroup
	errs := make(chan error, len(referenceVectors)*8)
	for i := 0; i < 8; i++ {
		for _, v := range referenceVectors {
			wg.Add(1)
			go func(s string) {
				defer wg.Done()
				errs <- Validate(ParseMnemonic(s), wl)
			}(v.mnemonic)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		is.NoErr(err)
	}
}

func TestEncode_InvariantViolation(t *testing.T) {
	is := is.New(t)
	e := mustEntropyHex(t, "00000000000000000000000000000000")

	_, err := Encode(e, Checksum{n: 5}, English())
	is.True(errors.Is(err, ErrInternal))

	_, err = Encode(Entropy{}, Checksum{}, English())
	is.True(errors.Is(err, ErrInternal))
}

func TestMnemonic_String(t *testing.T) {
	is := is.New(t)
	m := ParseMnemonic("\tzoo  Zoo\nzoo ")
	is.Equal(m.String(), "zoo zoo zoo")
	is.Equal(m.Len(), 3)
}
