// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package derive

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// purposes maps each Bitcoin scheme to its BIP43 purpose field.
var purposes = map[Scheme]uint32{
	Legacy:  44,
	Nested:  49,
	Segwit:  84,
	Taproot: 86,
}

func (w *Wallet) bitcoinAddresses(seed []byte, scheme Scheme, from, count int) ([]Address, error) {
	purpose := purposes[scheme]
	coin := w.net.HDCoinType

	master, err := hdkeychain.NewMaster(seed, w.net)
	if err != nil {
		return nil, fmt.Errorf("could not create master key: %w", err)
	}

	// m/purpose'/coin'/0'/0
	external, err := derivePath(master,
		hdkeychain.HardenedKeyStart+purpose,
		hdkeychain.HardenedKeyStart+coin,
		hdkeychain.HardenedKeyStart+0,
		0,
	)
	if err != nil {
		return nil, err
	}

	addrs := make([]Address, 0, count)
	for i := from; i < from+count; i++ {
		child, err := external.Derive(uint32(i)) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("could not derive index %d: %w", i, err)
		}
		pub, err := child.ECPubKey()
		if err != nil {
			return nil, fmt.Errorf("could not get public key for index %d: %w", i, err)
		}

		addr, err := encodeBitcoinAddress(scheme, pub.SerializeCompressed(), w.net)
		if err != nil {
			return nil, fmt.Errorf("could not encode address for index %d: %w", i, err)
		}
		addrs = append(addrs, Address{
			Index: i,
			Path:  fmt.Sprintf("m/%d'/%d'/0'/0/%d", purpose, coin, i),
			Value: addr,
		})
	}
	return addrs, nil
}

func encodeBitcoinAddress(scheme Scheme, pubKey []byte, net *chaincfg.Params) (string, error) {
	switch scheme {
	case Legacy:
		addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), net)
		if err != nil {
			return "", err //nolint:wrapcheck
		}
		return addr.EncodeAddress(), nil

	case Nested:
		// The redeem script is the P2WPKH witness program: OP_0 <20-byte hash>.
		script, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_0).
			AddData(btcutil.Hash160(pubKey)).
			Script()
		if err != nil {
			return "", fmt.Errorf("could not build redeem script: %w", err)
		}
		addr, err := btcutil.NewAddressScriptHash(script, net)
		if err != nil {
			return "", err //nolint:wrapcheck
		}
		return addr.EncodeAddress(), nil

	case Segwit:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pubKey), net)
		if err != nil {
			return "", err //nolint:wrapcheck
		}
		return addr.EncodeAddress(), nil

	case Taproot:
		internal, err := schnorr.ParsePubKey(pubKey[1:])
		if err != nil {
			return "", fmt.Errorf("could not parse internal key: %w", err)
		}
		output := txscript.ComputeTaprootKeyNoScript(internal)
		addr, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(output), net)
		if err != nil {
			return "", err //nolint:wrapcheck
		}
		return addr.EncodeAddress(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// derivePath walks a sequence of child indices from k.
func derivePath(k *hdkeychain.ExtendedKey, indices ...uint32) (*hdkeychain.ExtendedKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("could not derive child %d: %w", idx, err)
		}
		current = child
	}
	return current, nil
}
