// derive_addresses prints the first receiving address of every supported
// scheme for a BIP39 mnemonic, for cross-checking against other wallets.
//
// Usage:
//
//	go run ./scripts/derive_addresses "your 12 word seed phrase here"
//
// Or with stdin:
//
//	echo "your 12 word seed phrase" | go run ./scripts/derive_addresses
//
// Note: Nostr keys use NIP-06 (m/44'/1237'/0'/0/0), so the account index
// moves instead of the address index when asking for more than one.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/cointoss/derive"
)

func main() {
	var mnemonic string

	if len(os.Args) > 1 {
		mnemonic = strings.Join(os.Args[1:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}

	if mnemonic == "" {
		fmt.Fprintln(os.Stderr, "Usage: derive_addresses \"12 word seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_addresses")
		os.Exit(1)
	}

	w := derive.NewWallet()
	for _, scheme := range derive.Schemes() {
		addrs, err := w.Addresses(mnemonic, "", scheme, 0, 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-9s %s  %s\n", scheme, addrs[0].Value, addrs[0].Path)
	}
}
