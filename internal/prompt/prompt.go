// Package prompt implements the line-oriented question and answer loops
// used by the interactive CLI. Every loop re-asks on malformed input and
// stops only on well-formed input, end of input, or the abandon token.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/complex-gh/cointoss"
)

// AbandonToken typed at any prompt abandons the current flow.
const AbandonToken = "q"

var (
	ErrAbandoned       = errors.New("abandoned")
	ErrTooManyAttempts = errors.New("too many attempts")
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Ask prints question and returns the trimmed answer. It returns
// ErrAbandoned at end of input or when the answer is AbandonToken.
func (p *Prompter) Ask(question string) (string, error) {
	p.Printf("%s", question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			p.Println()
			return "", ErrAbandoned
		}
		return "", fmt.Errorf("could not read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == AbandonToken {
		return "", ErrAbandoned
	}
	return answer, nil
}

// Until asks question until accept returns nil, printing each rejection.
func (p *Prompter) Until(question string, accept func(answer string) error) (string, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return "", err
		}
		if err := accept(answer); err != nil {
			p.Printf("Invalid input: %v\n", err)
			continue
		}
		return answer, nil
	}
}

// Choose lists options numbered from 1 and returns the zero-based index
// of the one picked.
func (p *Prompter) Choose(question string, options []string) (int, error) {
	p.Println(question)
	for i, opt := range options {
		p.Printf("[%d] %s\n", i+1, opt)
	}
	hint := fmt.Sprintf("Enter 1 to %d: ", len(options))
	if len(options) == 2 {
		hint = "Enter 1 or 2: "
	}

	var choice int
	_, err := p.Until(hint, func(answer string) error {
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(options) {
			return fmt.Errorf("pick a number from 1 to %d", len(options))
		}
		choice = n - 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return choice, nil
}

// Confirm asks a yes/no question. Anything but "y" or "yes" is a no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question + " [y/n] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ConfirmPhrase asks the user to type phrase exactly and reports whether
// they did. A plain "y" does not pass.
func (p *Prompter) ConfirmPhrase(phrase string) (bool, error) {
	answer, err := p.Ask(fmt.Sprintf("Type '%s' to confirm you understand: ", phrase))
	if err != nil {
		return false, err
	}
	return answer == phrase, nil
}

// CollectBits asks for one toss at a time until c is full.
func (p *Prompter) CollectBits(c *cointoss.BitCollector) error {
	p.Printf("Please enter %d coin toss results (0 for heads, 1 for tails).\n", c.Total())
	for !c.Done() {
		q := fmt.Sprintf("Toss %d/%d: Enter 0 or 1: ", c.Len()+1, c.Total())
		_, err := p.Until(q, c.Add)
		if err != nil {
			return err
		}
	}
	p.Println("All tosses entered.")
	return nil
}

// PasteBits asks for all tosses at once.
func (p *Prompter) PasteBits(bits int) (cointoss.Entropy, error) {
	var e cointoss.Entropy
	q := fmt.Sprintf("Paste your %d toss results (0s and 1s):\n", bits)
	_, err := p.Until(q, func(answer string) error {
		parsed, err := cointoss.ParseEntropy(answer, bits)
		if err != nil {
			return err
		}
		e = parsed
		return nil
	})
	if err != nil {
		return cointoss.Entropy{}, err
	}
	return e, nil
}

// Words asks for n words one at a time, rejecting words not in wl.
func (p *Prompter) Words(n int, wl *cointoss.Wordlist) (cointoss.Mnemonic, error) {
	m := make(cointoss.Mnemonic, 0, n)
	for i := 0; i < n; i++ {
		q := fmt.Sprintf("Word %d/%d: ", i+1, n)
		var word string
		_, err := p.Until(q, func(answer string) error {
			idx, ok := wl.IndexOf(answer)
			if !ok {
				return fmt.Errorf("%w: %q", cointoss.ErrUnknownWord, answer)
			}
			word, _ = wl.WordAt(idx)
			return nil
		})
		if err != nil {
			return nil, err
		}
		m = append(m, word)
	}
	return m, nil
}

// Mnemonic reads an n-word phrase and validates its checksum. On a
// mismatch the user may start over, up to maxAttempts times in total.
func (p *Prompter) Mnemonic(n int, wl *cointoss.Wordlist, maxAttempts int) (cointoss.Mnemonic, error) {
	var m cointoss.Mnemonic
	err := Retry(maxAttempts, func(attempt int) error {
		if attempt > 1 {
			again, err := p.Confirm("Would you like to try again?")
			if err != nil {
				return err
			}
			if !again {
				return ErrAbandoned
			}
		}

		p.Printf("\nEnter your %d-word mnemonic phrase:\n", n)
		words, err := p.Words(n, wl)
		if err != nil {
			return err
		}
		if err := cointoss.Validate(words, wl); err != nil {
			p.Println("\n✗ Invalid mnemonic.")
			return err
		}
		m = words
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.Println("\n✓ Valid mnemonic!")
	return m, nil
}

// Retry calls fn until it succeeds, returns ErrAbandoned, or has been
// called maxAttempts times. attempt counts from 1.
func Retry(maxAttempts int, fn func(attempt int) error) error {
	maxAttempts = max(maxAttempts, 1)
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last = fn(attempt)
		if last == nil {
			return nil
		}
		if errors.Is(last, ErrAbandoned) {
			return last
		}
	}
	return fmt.Errorf("%w (%d): %w", ErrTooManyAttempts, maxAttempts, last)
}
