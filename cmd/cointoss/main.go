// Package main provides the cointoss CLI tool for turning coin tosses into
// BIP39 seed phrases.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/complex-gh/cointoss"
	"github.com/complex-gh/cointoss/derive"
	"github.com/complex-gh/cointoss/internal/log"
	"github.com/complex-gh/cointoss/internal/prompt"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	maxWidth = 72

	// maxMnemonicAttempts bounds how often the interactive flow lets the
	// user re-enter a phrase that fails its checksum.
	maxMnemonicAttempts = 5
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	yellow     = lipgloss.Color(completeColor("#FFCC00", "220", "11"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd
	warnStyle = baseStyle.
			Foreground(yellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(yellow).
			Padding(0, 1) //nolint:mnd

	language     string
	wordlistPath string
	logLevel     string
	logJSON      bool

	wordCount      int
	bitsInput      string
	insecureRandom bool
	confirmPhrase  string
	showBits       bool

	schemeName  string
	addrCount   int
	addrFrom    int
	network     string
	testnet     bool
	askPassword bool

	completeLimit int

	rootCmd = &cobra.Command{
		Use:   "cointoss",
		Short: "Turn coin tosses into a BIP39 seed phrase",
		Long: `Turn coin tosses into a BIP39 seed phrase, validate existing
phrases, and list their receiving addresses.

Toss a coin 128 to 256 times and enter 0 for heads and 1 for tails. The
tosses plus a SHA-256 checksum become 12 to 24 words from the BIP39 list.

Run without arguments for the interactive flow.

SECURITY TIP: run this on an offline computer. Add a space before the
command to keep phrases out of your shell history.`,
		Example: `  cointoss
  cointoss create --words 24
  cointoss create --words 12 --bits 0110...
  cointoss validate "abandon abandon ... about"
  cointoss addresses --scheme taproot --count 10 "abandon abandon ... about"
  cointoss words aba`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return cmd.Help()
			}
			wl, err := loadWordlist()
			if err != nil {
				return err
			}
			s := newSession(os.Stdin, os.Stdout, wl, derive.NewWallet(derive.WithWordlist(wl)))
			s.warn = styleWarning
			return s.run()
		},
	}

	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a new seed phrase from coin tosses",
		Long: `Create a new seed phrase from coin tosses.

Without --bits the tosses are asked for one at a time. Pass --bits with all
tosses as a string of 0s and 1s, or --bits - to read them from stdin.

--insecure-random draws the bits from a non-cryptographic generator. It is
for learning only and requires --confirm LEARNING.`,
		Example: `  cointoss create --words 12
  echo 0101... | cointoss create --words 12 --bits -
  cointoss create --insecure-random --confirm LEARNING`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			wl, err := loadWordlist()
			if err != nil {
				return err
			}
			e, err := createEntropy(wordCount)
			if err != nil {
				return err
			}
			defer e.Wipe()

			return printMnemonic(os.Stdout, e, wl, showBits || insecureRandom)
		},
	}

	validateCmd = &cobra.Command{
		Use:   "validate [words...]",
		Short: "Check the words and checksum of a seed phrase",
		Long: `Check that every word of a seed phrase is in the wordlist and that
its checksum matches. The phrase is read from stdin when no words are given.
Exits with a non-zero status when the phrase is rejected.`,
		Example: `  cointoss validate abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about
  cointoss validate < phrase.txt`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			wl, err := loadWordlist()
			if err != nil {
				return err
			}
			m, err := readMnemonic(args)
			if err != nil {
				return err
			}
			if err := cointoss.Validate(m, wl); err != nil {
				return formatError(fmt.Errorf("invalid mnemonic: %w", err))
			}
			fmt.Printf("valid %d word seed phrase\n", m.Len())
			return nil
		},
	}

	addressesCmd = &cobra.Command{
		Use:   "addresses [words...]",
		Short: "List receiving addresses for a seed phrase",
		Long: `List receiving addresses for a seed phrase. The phrase is read from
stdin when no words are given.

Schemes: segwit (BIP84, default), legacy (BIP44), nested (BIP49),
taproot (BIP86), ethereum, nostr (NIP-06 npub).`,
		Example: `  cointoss addresses --count 10 abandon abandon ... about
  cointoss addresses --scheme legacy --passphrase < phrase.txt
  cointoss addresses --scheme segwit --testnet --from 20 --count 5 < phrase.txt`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			wl, err := loadWordlist()
			if err != nil {
				return err
			}
			scheme, err := derive.ParseScheme(schemeName)
			if err != nil {
				return err
			}
			if testnet {
				network = "testnet"
			}
			net, err := derive.NetworkParams(network)
			if err != nil {
				return err
			}
			m, err := readMnemonic(args)
			if err != nil {
				return err
			}

			var passphrase string
			if askPassword {
				pass, err := readPassword("Enter the seed passphrase (BIP39 25th word): ")
				if err != nil {
					return err
				}
				passphrase = string(pass)
				defer clear(pass)
			}

			w := derive.NewWallet(derive.WithNetwork(net), derive.WithWordlist(wl))
			addrs, err := w.Addresses(m.String(), passphrase, scheme, addrFrom, addrCount)
			if err != nil {
				return formatError(fmt.Errorf("could not derive addresses: %w", err))
			}
			printAddresses(os.Stdout, scheme, addrs)
			return nil
		},
	}

	wordsCmd = &cobra.Command{
		Use:          "words <prefix>",
		Short:        "List wordlist entries starting with a prefix",
		Example:      `  cointoss words aba`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			wl, err := loadWordlist()
			if err != nil {
				return err
			}
			matches := wl.Complete(args[0], completeLimit)
			if len(matches) == 0 {
				return fmt.Errorf("no word starts with %q", args[0])
			}
			for _, w := range matches {
				fmt.Println(w)
			}
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for cointoss.

To load completions:

Bash:
  $ source <(cointoss completion bash)

Zsh:
  $ cointoss completion zsh > "${fpath[1]}/_cointoss"

Fish:
  $ cointoss completion fish | source

PowerShell:
  PS> cointoss completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "en", "Wordlist language")
	rootCmd.PersistentFlags().StringVar(&wordlistPath, "wordlist", "", "Load the wordlist from a file (one word per line) instead of --language")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs to stderr as JSON")

	createCmd.Flags().IntVarP(&wordCount, "words", "w", 24, "Number of words (12, 15, 18, 21, or 24)") //nolint:mnd
	createCmd.Flags().StringVar(&bitsInput, "bits", "", "All coin tosses as 0s and 1s, or - to read them from stdin")
	createCmd.Flags().BoolVar(&insecureRandom, "insecure-random", false, "Generate the bits with a non-cryptographic PRNG (learning only)")
	createCmd.Flags().StringVar(&confirmPhrase, "confirm", "", "Must be "+cointoss.InsecureConfirmationPhrase+" when --insecure-random is set")
	createCmd.Flags().BoolVar(&showBits, "show-bits", false, "Also print the tosses and checksum bits")
	createCmd.MarkFlagsMutuallyExclusive("bits", "insecure-random")

	addressesCmd.Flags().StringVarP(&schemeName, "scheme", "s", string(derive.Segwit), "Address scheme (segwit, legacy, nested, taproot, ethereum, nostr)")
	addressesCmd.Flags().IntVarP(&addrCount, "count", "n", 5, "Number of addresses (1 to 100)") //nolint:mnd
	addressesCmd.Flags().IntVar(&addrFrom, "from", 0, "Index of the first address")
	addressesCmd.Flags().StringVar(&network, "network", "mainnet", "Bitcoin network (mainnet, testnet, signet, regtest)")
	addressesCmd.Flags().BoolVar(&testnet, "testnet", false, "Shorthand for --network testnet")
	addressesCmd.MarkFlagsMutuallyExclusive("network", "testnet")
	addressesCmd.Flags().BoolVarP(&askPassword, "passphrase", "p", false, "Ask for a BIP39 passphrase")

	wordsCmd.Flags().IntVar(&completeLimit, "limit", 10, "Maximum number of matches, 0 for all") //nolint:mnd

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(*cobra.Command, []string) error {
	log.Init(logLevel, logJSON)
	return nil
}

// loadWordlist loads the list selected by --wordlist or --language.
func loadWordlist() (*cointoss.Wordlist, error) {
	if wordlistPath != "" {
		wl, err := cointoss.LoadWordlistFile(wordlistPath)
		if err != nil {
			return nil, fmt.Errorf("could not load wordlist: %w", err)
		}
		log.CLI.Debug().Str("path", wordlistPath).Msg("wordlist loaded from file")
		return wl, nil
	}
	wl, err := cointoss.BuiltinWordlist(language)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	log.CLI.Debug().Str("language", language).Msg("builtin wordlist selected")
	return wl, nil
}

// createEntropy produces entropy for the create command from --bits,
// --insecure-random, or interactive tosses.
func createEntropy(words int) (cointoss.Entropy, error) {
	bits, err := cointoss.EntropyBitsForWords(words)
	if err != nil {
		return cointoss.Entropy{}, err //nolint:wrapcheck
	}

	switch {
	case insecureRandom:
		e, err := cointoss.GenerateInsecureEntropy(bits, confirmPhrase, nil)
		if err != nil {
			return cointoss.Entropy{}, err //nolint:wrapcheck
		}
		log.CLI.Warn().Str("entropy", e.String()).Msg("insecure random entropy generated, do not use for real funds")
		return e, nil

	case bitsInput == "-":
		line, err := readStdin()
		if err != nil {
			return cointoss.Entropy{}, err
		}
		return cointoss.ParseEntropy(strings.TrimSpace(line), bits) //nolint:wrapcheck

	case bitsInput != "":
		return cointoss.ParseEntropy(strings.TrimSpace(bitsInput), bits) //nolint:wrapcheck
	}

	c, err := cointoss.NewBitCollector(bits)
	if err != nil {
		return cointoss.Entropy{}, err //nolint:wrapcheck
	}
	defer c.Wipe()
	if err := prompt.New(os.Stdin, os.Stderr).CollectBits(c); err != nil {
		return cointoss.Entropy{}, err //nolint:wrapcheck
	}
	return c.Entropy() //nolint:wrapcheck
}

func printMnemonic(w io.Writer, e cointoss.Entropy, wl *cointoss.Wordlist, withBits bool) error {
	m, cs, err := cointoss.NewMnemonic(e, wl)
	if err != nil {
		return fmt.Errorf("could not create mnemonic: %w", err)
	}

	if withBits {
		_, _ = fmt.Fprintf(w, "[%d coin tosses]\n\n%s\n\n", e.Bits(), e)
		_, _ = fmt.Fprintf(w, "[checksum]\n\n%s\n\n", cs)
	}
	_, _ = fmt.Fprintf(w, "[%d word seed phrase]\n\n%s\n", m.Len(), m)
	return nil
}

func printAddresses(w io.Writer, scheme derive.Scheme, addrs []derive.Address) {
	_, _ = fmt.Fprintf(w, "[%s addresses]\n\n", scheme)
	for _, a := range addrs {
		_, _ = fmt.Fprintf(w, "%s (%s)\n", a.Value, a.Path)
	}
}

// readMnemonic joins args, or reads stdin when there are none.
func readMnemonic(args []string) (cointoss.Mnemonic, error) {
	if len(args) > 0 {
		return cointoss.ParseMnemonic(strings.Join(args, " ")), nil
	}
	text, err := readStdin()
	if err != nil {
		return nil, err
	}
	m := cointoss.ParseMnemonic(text)
	if m.Len() == 0 {
		return nil, errors.New("no seed phrase given")
	}
	return m, nil
}

func readStdin() (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		_, _ = fmt.Fprint(os.Stderr, "Reading from stdin, finish with Ctrl-D:\n")
	}
	bts, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("could not read stdin: %w", err)
	}
	return string(bts), nil
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	defer fmt.Fprintf(os.Stderr, "\n")                  //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// shownError marks an error already rendered by formatError.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

// formatError shows err in a red block when stdout is a terminal and
// returns it so the command exits non-zero.
func formatError(err error) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return err
	}
	b := strings.Builder{}
	b.WriteRune('\n')
	renderBlock(&b, errorStyle, getWidth(maxWidth), err.Error())
	fmt.Print(b.String())
	return shownError{err}
}

// reportError prints err unless formatError already showed it.
func reportError(w io.Writer, err error) {
	var shown shownError
	if errors.As(err, &shown) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// styleWarning renders a warning box when stdout is a terminal.
func styleWarning(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	b := strings.Builder{}
	renderBlock(&b, warnStyle, getWidth(maxWidth)-4, s) //nolint:mnd
	return b.String()
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

// parseCount parses an address count typed at the interactive prompt.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > derive.MaxCount {
		return 0, fmt.Errorf("please enter a number from 1 to %d", derive.MaxCount)
	}
	return n, nil
}
