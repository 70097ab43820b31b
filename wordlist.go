// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package cointoss

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/tyler-smith/go-bip39/wordlists"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"
)

// WordlistSize is the number of entries in every BIP39 wordlist.
const WordlistSize = 1 << bitsPerWord

// Wordlist is an immutable table of 2048 words. The position of a word is
// its 11-bit index. A *Wordlist is safe for concurrent use.
type Wordlist struct {
	words [WordlistSize]string
	index map[string]int
}

// NewWordlist builds a Wordlist from words. The slice must hold exactly
// 2048 unique, non-empty, lowercase tokens without whitespace. Words are
// stored in NFKD form.
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordlistSize {
		return nil, fmt.Errorf("%w: got %d words, want %d", ErrWordlistFormat, len(words), WordlistSize)
	}

	wl := &Wordlist{index: make(map[string]int, WordlistSize)}
	for i, w := range words {
		w = norm.NFKD.String(w)
		if w == "" {
			return nil, fmt.Errorf("%w: empty word at line %d", ErrWordlistFormat, i+1)
		}
		if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: word %q at line %d contains whitespace", ErrWordlistFormat, w, i+1)
		}
		if w != strings.ToLower(w) {
			return nil, fmt.Errorf("%w: word %q at line %d is not lowercase", ErrWordlistFormat, w, i+1)
		}
		if prev, ok := wl.index[w]; ok {
			return nil, fmt.Errorf("%w: duplicate word %q at lines %d and %d", ErrWordlistFormat, w, prev+1, i+1)
		}
		wl.words[i] = w
		wl.index[w] = i
	}
	return wl, nil
}

// LoadWordlist reads one word per line from r. Surrounding whitespace,
// including a trailing carriage return, is ignored.
func LoadWordlist(r io.Reader) (*Wordlist, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, strings.TrimSpace(scanner.Text()))
		// Bail out early on oversized input instead of buffering it all.
		if len(words) > WordlistSize {
			return nil, fmt.Errorf("%w: more than %d lines", ErrWordlistFormat, WordlistSize)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read wordlist: %w", err)
	}
	return NewWordlist(words)
}

// LoadWordlistFile loads a wordlist from the file at path.
func LoadWordlistFile(path string) (*Wordlist, error) {
	// G304: path is user-provided input, which is expected for a CLI tool
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("could not open wordlist: %w", err)
	}
	defer f.Close() //nolint:errcheck

	wl, err := LoadWordlist(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return wl, nil
}

// WordAt returns the word with the given index.
func (wl *Wordlist) WordAt(i int) (string, error) {
	if i < 0 || i >= WordlistSize {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return wl.words[i], nil
}

// IndexOf looks up a word. Case, surrounding whitespace and Unicode
// composition are ignored, so "\u00e1baco" finds "a\u0301baco".
func (wl *Wordlist) IndexOf(word string) (int, bool) {
	i, ok := wl.index[normalizeWord(word)]
	return i, ok
}

// Contains reports whether word is in the list.
func (wl *Wordlist) Contains(word string) bool {
	_, ok := wl.IndexOf(word)
	return ok
}

// Complete returns up to limit words starting with prefix, in table order.
// A limit of zero or less means no limit.
func (wl *Wordlist) Complete(prefix string, limit int) []string {
	prefix = normalizeWord(prefix)
	if prefix == "" {
		return nil
	}
	var matches []string
	for _, w := range wl.words {
		if !strings.HasPrefix(w, prefix) {
			continue
		}
		matches = append(matches, w)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches
}

// normalizeWord puts user input in the form the table is stored in.
func normalizeWord(w string) string {
	return norm.NFKD.String(strings.ToLower(strings.TrimSpace(w)))
}

// Len returns the number of words, always 2048.
func (wl *Wordlist) Len() int {
	return len(wl.words)
}

// Words returns a copy of the table.
func (wl *Wordlist) Words() []string {
	out := make([]string, len(wl.words))
	copy(out, wl.words[:])
	return out
}

var builtinWordlists = map[lang.Tag][]string{
	lang.English:            wordlists.English,
	lang.SimplifiedChinese:  wordlists.ChineseSimplified,
	lang.TraditionalChinese: wordlists.ChineseTraditional,
	lang.Czech:              wordlists.Czech,
	lang.French:             wordlists.French,
	lang.Italian:            wordlists.Italian,
	lang.Japanese:           wordlists.Japanese,
	lang.Korean:             wordlists.Korean,
	lang.Spanish:            wordlists.Spanish,
}

// builtinTags fixes the matcher order; the first entry is only returned
// with confidence No, which lookupWordlist rejects.
var builtinTags = []lang.Tag{
	lang.English,
	lang.SimplifiedChinese,
	lang.TraditionalChinese,
	lang.Czech,
	lang.French,
	lang.Italian,
	lang.Japanese,
	lang.Korean,
	lang.Spanish,
}

var wordlistMatcher = lang.NewMatcher(builtinTags)

// BuiltinWordlist returns one of the reference BIP39 lists. language may be
// an English language name ("english", "Simplified Chinese") or a BCP 47
// tag ("en", "zh-Hant").
func BuiltinWordlist(language string) (*Wordlist, error) {
	words := lookupWordlist(language)
	if words == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return NewWordlist(words)
}

// English returns the reference English wordlist.
func English() *Wordlist {
	wl, err := NewWordlist(wordlists.English)
	if err != nil {
		panic(fmt.Sprintf("english wordlist: %v", err))
	}
	return wl
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// lookupWordlist accepts English display names ("traditional chinese")
// and BCP 47 tags. Regional tags resolve through the matcher, so zh-TW
// and zh-HK get the Traditional list and es-419 gets Spanish.
func lookupWordlist(language string) []string {
	language = sanitizeLang(language)
	if language == "" {
		return nil
	}
	en := display.English.Languages()
	for _, t := range builtinTags {
		if sanitizeLang(en.Name(t)) == language {
			return builtinWordlists[t]
		}
	}
	if language == "chinese" {
		return builtinWordlists[lang.SimplifiedChinese]
	}

	tag, err := lang.Parse(language)
	if err != nil || tag == lang.Und {
		return nil
	}
	_, i, conf := wordlistMatcher.Match(tag)
	if conf < lang.High {
		return nil
	}
	return builtinWordlists[builtinTags[i]]
}
