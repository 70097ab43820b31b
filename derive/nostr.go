// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package derive

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// nostrCoinType is the SLIP-44 coin type registered for Nostr.
const nostrCoinType = 1237

func nostrAddresses(seed []byte, from, count int) ([]Address, error) {
	// NIP-06 keys do not depend on a Bitcoin network; mainnet params only
	// select the extended key version bytes, which are never serialised.
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("could not create master key: %w", err)
	}

	addrs := make([]Address, 0, count)
	for i := from; i < from+count; i++ {
		pubHex, err := nostrPublicKeyHex(master, i)
		if err != nil {
			return nil, err
		}
		npub, err := nip19.EncodePublicKey(pubHex)
		if err != nil {
			return nil, fmt.Errorf("failed to encode public key: %w", err)
		}
		addrs = append(addrs, Address{
			Index: i,
			Path:  fmt.Sprintf("m/44'/%d'/%d'/0/0", nostrCoinType, i),
			Value: npub,
		})
	}
	return addrs, nil
}

// nostrPublicKeyHex returns the x-only public key at m/44'/1237'/account'/0/0.
func nostrPublicKeyHex(master *hdkeychain.ExtendedKey, account int) (string, error) {
	key, err := derivePath(master,
		hdkeychain.HardenedKeyStart+44,
		hdkeychain.HardenedKeyStart+nostrCoinType,
		hdkeychain.HardenedKeyStart+uint32(account), //nolint:gosec
		0,
		0,
	)
	if err != nil {
		return "", err
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("could not get public key for account %d: %w", account, err)
	}
	return hex.EncodeToString(schnorr.SerializePubKey(pub)), nil
}
