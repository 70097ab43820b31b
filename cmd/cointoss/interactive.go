package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/complex-gh/cointoss"
	"github.com/complex-gh/cointoss/derive"
	"github.com/complex-gh/cointoss/internal/log"
	"github.com/complex-gh/cointoss/internal/prompt"
)

const insecureWarning = `WARNING: random generation uses a predictable, non-cryptographic
generator. It is for learning only. Never store real funds behind a
phrase created this way. Use coin tosses for anything that matters.`

// session is one run of the interactive flow.
type session struct {
	p       *prompt.Prompter
	wl      *cointoss.Wordlist
	deriver derive.Deriver

	// warn decorates warning text; identity unless stdout is a terminal.
	warn func(string) string
	// rng backs insecure generation; nil seeds from the clock.
	rng *rand.Rand
}

func newSession(in io.Reader, out io.Writer, wl *cointoss.Wordlist, d derive.Deriver) *session {
	return &session{
		p:       prompt.New(in, out),
		wl:      wl,
		deriver: d,
		warn:    func(s string) string { return s },
	}
}

func (s *session) run() error {
	s.p.Println("cointoss: turn coin tosses into a BIP39 seed phrase")
	s.p.Printf("Type %q at any prompt to quit.\n\n", prompt.AbandonToken)

	mode, err := s.p.Choose("Choose mode:", []string{
		"Create a NEW seed phrase from coin tosses",
		"Enter an EXISTING seed phrase",
	})
	if err != nil {
		return s.done(err)
	}

	var m cointoss.Mnemonic
	if mode == 0 {
		m, err = s.create()
	} else {
		m, err = s.existing()
	}
	if err != nil || m == nil {
		return s.done(err)
	}
	return s.done(s.offerAddresses(m))
}

// done turns an abandoned flow into a clean exit.
func (s *session) done(err error) error {
	if errors.Is(err, prompt.ErrAbandoned) {
		s.p.Println("Bye.")
		return nil
	}
	return err
}

func (s *session) chooseLength() (int, error) {
	options := make([]string, len(cointoss.WordCounts))
	for i, words := range cointoss.WordCounts {
		options[i] = fmt.Sprintf("%d words (%d coin tosses)", words, cointoss.EntropySizes[i])
	}
	choice, err := s.p.Choose("\nChoose seed phrase length:", options)
	if err != nil {
		return 0, err
	}
	return cointoss.WordCounts[choice], nil
}

// create returns nil without an error when the user backs out of insecure
// generation.
func (s *session) create() (cointoss.Mnemonic, error) {
	words, err := s.chooseLength()
	if err != nil {
		return nil, err
	}
	bits, err := cointoss.EntropyBitsForWords(words)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	source, err := s.p.Choose("\nChoose entropy source:", []string{
		"Coin tosses, one at a time (recommended)",
		"Coin tosses, paste all at once",
		"Random generation (INSECURE, learning only)",
	})
	if err != nil {
		return nil, err
	}

	var e cointoss.Entropy
	switch source {
	case 0:
		c, err := cointoss.NewBitCollector(bits)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		defer c.Wipe()
		if err := s.p.CollectBits(c); err != nil {
			return nil, err
		}
		if e, err = c.Entropy(); err != nil {
			return nil, err //nolint:wrapcheck
		}
	case 1:
		if e, err = s.p.PasteBits(bits); err != nil {
			return nil, err
		}
	default:
		s.p.Printf("\n%s\n", s.warn(insecureWarning))
		ok, err := s.p.ConfirmPhrase(cointoss.InsecureConfirmationPhrase)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.p.Println("Cancelled. Nothing was generated.")
			return nil, nil
		}
		if e, err = cointoss.GenerateInsecureEntropy(bits, cointoss.InsecureConfirmationPhrase, s.rng); err != nil {
			return nil, err //nolint:wrapcheck
		}
		log.CLI.Warn().Str("entropy", e.String()).Msg("insecure random entropy generated, do not use for real funds")
	}
	defer e.Wipe()

	m, cs, err := cointoss.NewMnemonic(e, s.wl)
	if err != nil {
		return nil, fmt.Errorf("could not create mnemonic: %w", err)
	}

	s.p.Printf("\n[%d coin tosses]\n%s\n", e.Bits(), e)
	s.p.Printf("\n[checksum]\n%s\n", cs)
	s.p.Printf("\n[%d word seed phrase]\n", m.Len())
	for i, w := range m {
		s.p.Printf("%2d. %s\n", i+1, w)
	}
	s.p.Printf("\n%s\n", s.warn("Write these words down in order and keep them offline."))
	return m, nil
}

func (s *session) existing() (cointoss.Mnemonic, error) {
	words, err := s.chooseLength()
	if err != nil {
		return nil, err
	}
	return s.p.Mnemonic(words, s.wl, maxMnemonicAttempts) //nolint:wrapcheck
}

func (s *session) offerAddresses(m cointoss.Mnemonic) error {
	want, err := s.p.Confirm("\nGenerate receiving addresses?")
	if err != nil || !want {
		return err
	}

	var passphrase string
	use, err := s.p.Confirm("Use a BIP39 passphrase?")
	if err != nil {
		return err
	}
	if use {
		if passphrase, err = s.p.Ask("Enter passphrase: "); err != nil {
			return err
		}
	}

	schemes := derive.Schemes()
	options := make([]string, len(schemes))
	for i, sc := range schemes {
		options[i] = schemeLabel(sc)
	}
	choice, err := s.p.Choose("\nChoose address type:", options)
	if err != nil {
		return err
	}
	scheme := schemes[choice]

	answer, err := s.p.Until(fmt.Sprintf("How many addresses (1-%d)? ", derive.MaxCount), func(a string) error {
		_, err := parseCount(a)
		return err
	})
	if err != nil {
		return err
	}
	n, _ := parseCount(answer)

	phrase := m.String()
	for from := 0; ; from += n {
		addrs, err := s.deriver.Addresses(phrase, passphrase, scheme, from, n)
		if err != nil {
			return fmt.Errorf("could not derive addresses: %w", err)
		}
		s.p.Println()
		for _, a := range addrs {
			s.p.Printf("%4d  %s  %s\n", a.Index, a.Value, a.Path)
		}

		more, err := s.p.Confirm(fmt.Sprintf("\nLoad %d more?", n))
		if err != nil || !more {
			return err
		}
	}
}

func schemeLabel(sc derive.Scheme) string {
	switch sc {
	case derive.Segwit:
		return "Native SegWit, BIP84 (bc1q...)"
	case derive.Legacy:
		return "Legacy, BIP44 (1...)"
	case derive.Nested:
		return "Nested SegWit, BIP49 (3...)"
	case derive.Taproot:
		return "Taproot, BIP86 (bc1p...)"
	case derive.Ethereum:
		return "Ethereum (0x...)"
	case derive.Nostr:
		return "Nostr, NIP-06 (npub1...)"
	}
	return strings.ToUpper(string(sc))
}
