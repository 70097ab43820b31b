// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package derive turns a validated BIP39 mnemonic into receiving addresses.
//
// All key derivation is delegated to third-party HD wallet libraries; this
// package only picks derivation paths and address encodings. Private keys
// never leave the functions that derive them.
package derive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/complex-gh/cointoss"
	"github.com/complex-gh/cointoss/internal/log"
)

// MaxCount is the largest number of addresses returned by one call.
const MaxCount = 100

// Scheme selects a derivation path and address encoding.
type Scheme string

const (
	// Legacy is BIP44 pay-to-pubkey-hash, m/44'/coin'/0'/0/i ("1...").
	Legacy Scheme = "legacy"
	// Nested is BIP49 P2WPKH nested in P2SH, m/49'/coin'/0'/0/i ("3...").
	Nested Scheme = "nested"
	// Segwit is BIP84 native segwit P2WPKH, m/84'/coin'/0'/0/i ("bc1q...").
	Segwit Scheme = "segwit"
	// Taproot is BIP86 key-path P2TR, m/86'/coin'/0'/0/i ("bc1p...").
	Taproot Scheme = "taproot"
	// Ethereum is m/44'/60'/0'/0/i, EIP-55 checksummed.
	Ethereum Scheme = "ethereum"
	// Nostr is NIP-06, m/44'/1237'/i'/0/0, bech32 npub.
	Nostr Scheme = "nostr"
)

var (
	ErrUnknownScheme = errors.New("unknown address scheme")
	ErrInvalidRange  = errors.New("invalid address range")
)

// Schemes returns every supported scheme, default first.
func Schemes() []Scheme {
	return []Scheme{Segwit, Legacy, Nested, Taproot, Ethereum, Nostr}
}

func (s Scheme) valid() bool {
	for _, v := range Schemes() {
		if s == v {
			return true
		}
	}
	return false
}

// ParseScheme resolves a scheme name. A few common aliases are accepted.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segwit", "native-segwit", "bech32", "p2wpkh", "bip84":
		return Segwit, nil
	case "legacy", "p2pkh", "bip44":
		return Legacy, nil
	case "nested", "nested-segwit", "p2sh-p2wpkh", "bip49":
		return Nested, nil
	case "taproot", "p2tr", "bip86":
		return Taproot, nil
	case "ethereum", "eth":
		return Ethereum, nil
	case "nostr", "npub", "nip06":
		return Nostr, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// Address is one derived address.
type Address struct {
	Index int
	Path  string
	Value string
}

// Deriver derives count addresses starting at index from.
type Deriver interface {
	Addresses(mnemonic, passphrase string, scheme Scheme, from, count int) ([]Address, error)
}

// Wallet is the Deriver backed by btcd, go-ethereum-hdwallet and go-nostr.
type Wallet struct {
	net      *chaincfg.Params
	wordlist *cointoss.Wordlist
}

var _ Deriver = (*Wallet)(nil)

// Option configures a Wallet.
type Option func(*Wallet)

// WithNetwork selects the Bitcoin network. The default is mainnet.
func WithNetwork(net *chaincfg.Params) Option {
	return func(w *Wallet) { w.net = net }
}

// WithWordlist sets the list used to validate mnemonics. The default is
// English.
func WithWordlist(wl *cointoss.Wordlist) Option {
	return func(w *Wallet) { w.wordlist = wl }
}

// NewWallet returns a Wallet.
func NewWallet(opts ...Option) *Wallet {
	w := &Wallet{net: &chaincfg.MainNetParams}
	for _, opt := range opts {
		opt(w)
	}
	if w.wordlist == nil {
		w.wordlist = cointoss.English()
	}
	return w
}

// NetworkParams returns the chaincfg.Params for the given network name.
func NetworkParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "", "mainnet", "main":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	}
	return nil, fmt.Errorf("unsupported network: %q", network)
}

// Addresses validates mnemonic and derives count addresses of the given
// scheme, starting at index from.
func (w *Wallet) Addresses(mnemonic, passphrase string, scheme Scheme, from, count int) ([]Address, error) {
	if !scheme.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	if count < 1 || count > MaxCount {
		return nil, fmt.Errorf("%w: count %d (must be 1 to %d)", ErrInvalidRange, count, MaxCount)
	}
	if from < 0 || uint64(from)+uint64(count) > hdkeychain.HardenedKeyStart {
		return nil, fmt.Errorf("%w: start index %d", ErrInvalidRange, from)
	}

	m := cointoss.ParseMnemonic(mnemonic)
	if err := cointoss.Validate(m, w.wordlist); err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	seed := cointoss.Seed(m, passphrase)
	defer clear(seed)

	log.Derive.Debug().
		Str("scheme", string(scheme)).
		Str("network", w.net.Name).
		Int("from", from).
		Int("count", count).
		Msg("deriving addresses")

	switch scheme {
	case Legacy, Nested, Segwit, Taproot:
		return w.bitcoinAddresses(seed, scheme, from, count)
	case Ethereum:
		return ethereumAddresses(seed, from, count)
	case Nostr:
		return nostrAddresses(seed, from, count)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}
