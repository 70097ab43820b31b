// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package derive

import (
	"fmt"

	hdwallet "github.com/stephenlacy/go-ethereum-hdwallet"
)

func ethereumAddresses(seed []byte, from, count int) ([]Address, error) {
	wallet, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("could not create ethereum wallet: %w", err)
	}

	addrs := make([]Address, 0, count)
	for i := from; i < from+count; i++ {
		path := fmt.Sprintf("m/44'/60'/0'/0/%d", i)
		dp, err := hdwallet.ParseDerivationPath(path)
		if err != nil {
			return nil, fmt.Errorf("could not parse derivation path %s: %w", path, err)
		}
		account, err := wallet.Derive(dp, false)
		if err != nil {
			return nil, fmt.Errorf("could not derive %s: %w", path, err)
		}
		addrs = append(addrs, Address{
			Index: i,
			Path:  path,
			Value: account.Address.Hex(),
		})
	}
	return addrs, nil
}
