package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/complex-gh/cointoss"
	"github.com/complex-gh/cointoss/derive"
	"github.com/matryer/is"
)

func TestParseCount(t *testing.T) {
	is := is.New(t)

	for _, ok := range []string{"1", "5", "100"} {
		_, err := parseCount(ok)
		is.NoErr(err)
	}
	for _, bad := range []string{"", "0", "-1", "101", "five", "2.5"} {
		_, err := parseCount(bad)
		is.True(err != nil)
	}
}

func TestPrintMnemonic(t *testing.T) {
	is := is.New(t)

	e, err := cointoss.ParseEntropy(strings.Repeat("0", 128), 128)
	is.NoErr(err)

	var out bytes.Buffer
	is.NoErr(printMnemonic(&out, e, cointoss.English(), false))
	is.Equal(out.String(), "[12 word seed phrase]\n\n"+abandonAbout+"\n")

	out.Reset()
	is.NoErr(printMnemonic(&out, e, cointoss.English(), true))
	is.True(strings.Contains(out.String(), "[128 coin tosses]"))
	is.True(strings.Contains(out.String(), "[checksum]\n\n0011\n"))
}

func TestPrintAddresses(t *testing.T) {
	is := is.New(t)

	var out bytes.Buffer
	printAddresses(&out, derive.Segwit, []derive.Address{
		{Index: 0, Path: "m/84'/0'/0'/0/0", Value: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu"},
	})
	is.Equal(out.String(), "[segwit addresses]\n\nbc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu (m/84'/0'/0'/0/0)\n")
}

func TestReadMnemonic_Args(t *testing.T) {
	is := is.New(t)

	m, err := readMnemonic(strings.Fields(strings.ToUpper(abandonAbout)))
	is.NoErr(err)
	is.Equal(m.String(), abandonAbout)

	m, err = readMnemonic([]string{abandonAbout})
	is.NoErr(err)
	is.Equal(m.Len(), 12)
}

func TestCreateEntropy_Flags(t *testing.T) {
	t.Cleanup(func() {
		bitsInput, insecureRandom, confirmPhrase = "", false, ""
	})

	t.Run("bits", func(t *testing.T) {
		is := is.New(t)
		bitsInput = strings.Repeat("1", 160)
		e, err := createEntropy(15)
		is.NoErr(err)
		is.Equal(e.Bits(), 160)
	})

	t.Run("bits length mismatch", func(t *testing.T) {
		is := is.New(t)
		bitsInput = strings.Repeat("1", 128)
		_, err := createEntropy(24)
		is.True(errors.Is(err, cointoss.ErrInvalidEntropyLength))
	})

	t.Run("word count", func(t *testing.T) {
		is := is.New(t)
		_, err := createEntropy(13)
		is.True(errors.Is(err, cointoss.ErrUnsupportedWordCount))
	})

	t.Run("insecure without confirmation", func(t *testing.T) {
		is := is.New(t)
		bitsInput, insecureRandom, confirmPhrase = "", true, "yes"
		_, err := createEntropy(12)
		is.True(errors.Is(err, cointoss.ErrInsecureNotConfirmed))
	})

	t.Run("insecure confirmed", func(t *testing.T) {
		is := is.New(t)
		insecureRandom, confirmPhrase = true, cointoss.InsecureConfirmationPhrase
		e, err := createEntropy(21)
		is.NoErr(err)
		is.Equal(e.Bits(), 224)
	})
}

func TestReportError(t *testing.T) {
	is := is.New(t)

	var out bytes.Buffer
	reportError(&out, errors.New("no seed phrase given"))
	is.Equal(out.String(), "Error: no seed phrase given\n")

	out.Reset()
	err := shownError{fmt.Errorf("invalid mnemonic: %w", cointoss.ErrChecksumMismatch)}
	reportError(&out, err)
	is.Equal(out.Len(), 0)
	is.True(errors.Is(err, cointoss.ErrChecksumMismatch))
}

func TestLoadWordlist(t *testing.T) {
	t.Cleanup(func() { language, wordlistPath = "en", "" })
	is := is.New(t)

	language = "es"
	wl, err := loadWordlist()
	is.NoErr(err)
	is.Equal(wl.Len(), cointoss.WordlistSize)
	is.True(!wl.Contains("abandon"))

	language = "tlh"
	_, err = loadWordlist()
	is.True(errors.Is(err, cointoss.ErrUnsupportedLanguage))

	wordlistPath = "does-not-exist.txt"
	_, err = loadWordlist()
	is.True(err != nil)
}
