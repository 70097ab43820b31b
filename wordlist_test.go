// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

func englishLines(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, wordlists.English[i%len(wordlists.English)])
	}
	return strings.Join(words, "\n") + "\n"
}

func TestLoadWordlist(t *testing.T) {
	is := is.New(t)

	wl, err := LoadWordlist(strings.NewReader(englishLines(2048)))
	is.NoErr(err)
	is.Equal(wl.Len(), 2048)

	first, err := wl.WordAt(0)
	is.NoErr(err)
	is.Equal(first, "abandon")

	last, err := wl.WordAt(2047)
	is.NoErr(err)
	is.Equal(last, "zoo")
}

func TestLoadWordlist_CRLF(t *testing.T) {
	is := is.New(t)

	text := strings.ReplaceAll(englishLines(2048), "\n", "\r\n")
	wl, err := LoadWordlist(strings.NewReader(text))
	is.NoErr(err)

	i, ok := wl.IndexOf("about")
	is.True(ok)
	is.Equal(i, 3)
}

func TestLoadWordlist_BadFormat(t *testing.T) {
	dup := wordlists.English[:2047]
	dup = append(append([]string{}, dup...), "abandon")

	withBlank := append([]string{}, wordlists.English...)
	withBlank[100] = ""

	withUpper := append([]string{}, wordlists.English...)
	withUpper[5] = "Absent"

	tests := []struct {
		name string
		text string
	}{
		{"2047 lines", englishLines(2047)},
		{"2049 lines", englishLines(2049)},
		{"empty", ""},
		{"duplicate word", strings.Join(dup, "\n")},
		{"blank line", strings.Join(withBlank, "\n")},
		{"uppercase word", strings.Join(withUpper, "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			_, err := LoadWordlist(strings.NewReader(tt.text))
			is.True(errors.Is(err, ErrWordlistFormat))
		})
	}
}

func TestLoadWordlistFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "english.txt")
	is.NoErr(os.WriteFile(path, []byte(englishLines(2048)), 0o600))

	wl, err := LoadWordlistFile(path)
	is.NoErr(err)
	is.Equal(wl.Words(), English().Words())

	_, err = LoadWordlistFile(filepath.Join(t.TempDir(), "missing.txt"))
	is.True(err != nil)
}

func TestWordlist_WordAt(t *testing.T) {
	is := is.New(t)
	wl := English()

	for _, i := range []int{0, 1, 1024, 2047} {
		w, err := wl.WordAt(i)
		is.NoErr(err)
		j, ok := wl.IndexOf(w)
		is.True(ok)
		is.Equal(i, j)
	}

	_, err := wl.WordAt(-1)
	is.True(errors.Is(err, ErrIndexOutOfRange))
	_, err = wl.WordAt(2048)
	is.True(errors.Is(err, ErrIndexOutOfRange))
}

func TestWordlist_IndexOf(t *testing.T) {
	is := is.New(t)
	wl := English()

	i, ok := wl.IndexOf("  ABOUT ")
	is.True(ok)
	is.Equal(i, 3)

	_, ok = wl.IndexOf("bitcoin")
	is.True(!ok)
	is.True(!wl.Contains(""))
	is.True(wl.Contains("Zoo"))
}

func TestWordlist_ComposedInput(t *testing.T) {
	is := is.New(t)

	wl, err := BuiltinWordlist("es")
	is.NoErr(err)

	// "ábaco" typed with a precomposed á.
	i, ok := wl.IndexOf("\u00e1baco")
	is.True(ok)
	is.Equal(i, 0)
	is.Equal(wl.Complete("\u00c1ba", 1), []string{norm.NFKD.String("\u00e1baco")})

	for _, language := range []string{"es", "fr", "ja"} {
		wl, err := BuiltinWordlist(language)
		is.NoErr(err)
		for idx, w := range wl.Words() {
			got, ok := wl.IndexOf(norm.NFC.String(w))
			is.True(ok)
			is.Equal(got, idx)
		}
	}
}

func TestValidate_ComposedSpanishPhrase(t *testing.T) {
	is := is.New(t)

	wl, err := BuiltinWordlist("es")
	is.NoErr(err)
	e, err := NewEntropy(make([]byte, 16))
	is.NoErr(err)
	m, _, err := NewMnemonic(e, wl)
	is.NoErr(err)

	typed := norm.NFC.String(m.String())
	is.True(typed != m.String())

	parsed := ParseMnemonic(typed)
	is.NoErr(Validate(parsed, wl))
	is.Equal(parsed, m)
	is.Equal(Seed(parsed, ""), Seed(m, ""))
}

func TestWordlist_Complete(t *testing.T) {
	is := is.New(t)
	wl := English()

	is.Equal(wl.Complete("ab", 3), []string{"abandon", "ability", "able"})
	is.Equal(wl.Complete("ZO", 0), []string{"zone", "zoo"})
	is.Equal(len(wl.Complete("", 10)), 0)
	is.Equal(len(wl.Complete("qq", 10)), 0)
}

func TestBuiltinWordlist(t *testing.T) {
	tests := []struct {
		language string
		first    string
	}{
		{"en", "abandon"},
		{"english", "abandon"},
		{"English", "abandon"},
		{"en-US", "abandon"},
		{"en-GB", "abandon"},
		{"japanese", wordlists.Japanese[0]},
		{"zh-Hant", wordlists.ChineseTraditional[0]},
		{"traditional chinese", wordlists.ChineseTraditional[0]},
		{"zh-TW", wordlists.ChineseTraditional[0]},
		{"zh-HK", wordlists.ChineseTraditional[0]},
		{"zh", wordlists.ChineseSimplified[0]},
		{"zh-CN", wordlists.ChineseSimplified[0]},
		{"chinese", wordlists.ChineseSimplified[0]},
		{"es", wordlists.Spanish[0]},
		{"es-419", wordlists.Spanish[0]},
		{"fr", wordlists.French[0]},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			is := is.New(t)
			wl, err := BuiltinWordlist(tt.language)
			is.NoErr(err)
			w, err := wl.WordAt(0)
			is.NoErr(err)
			is.Equal(w, norm.NFKD.String(tt.first))
		})
	}
}

func TestBuiltinWordlist_TraditionalRegions(t *testing.T) {
	is := is.New(t)

	diff := -1
	for i := range wordlists.ChineseTraditional {
		if wordlists.ChineseTraditional[i] != wordlists.ChineseSimplified[i] {
			diff = i
			break
		}
	}
	is.True(diff >= 0)

	for _, language := range []string{"zh-TW", "zh-HK", "zh-Hant-TW"} {
		wl, err := BuiltinWordlist(language)
		is.NoErr(err)
		w, err := wl.WordAt(diff)
		is.NoErr(err)
		is.Equal(w, wordlists.ChineseTraditional[diff])
	}
}

func TestBuiltinWordlist_Unsupported(t *testing.T) {
	for _, language := range []string{"", "klingon", "de", "x-nonsense-tag-value"} {
		is := is.New(t)
		_, err := BuiltinWordlist(language)
		is.True(errors.Is(err, ErrUnsupportedLanguage))
	}
}
